package coverage

import (
	"testing"
	"time"

	"streamcover/internal/optimizer"
)

func date(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

func TestBuild_SingleSubscriptionCoversAllGames(t *testing.T) {
	inst := optimizer.ReducedInstance{
		Games:     []int64{1, 2},
		GameDates: map[int64]time.Time{1: date(1), 2: date(10)},
	}
	result := optimizer.SolverResult{
		ActiveMonthly: []optimizer.Subscription{{PackageID: 10, StartDate: date(1), Kind: optimizer.Monthly}},
	}
	out := Build(result, inst)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	for _, gc := range out {
		if !gc.Covered || gc.PackageID != 10 {
			t.Errorf("game %d coverage = %+v, want covered by package 10", gc.GameID, gc)
		}
	}
}

func TestBuild_GameWithNoOffersIsUncovered(t *testing.T) {
	inst := optimizer.ReducedInstance{
		Games:             []int64{1},
		GameDates:         map[int64]time.Time{1: date(1)},
		GamesWithNoOffers: []int64{2},
	}
	result := optimizer.SolverResult{ActiveMonthly: []optimizer.Subscription{{PackageID: 10, StartDate: date(1), Kind: optimizer.Monthly}}}
	out := Build(result, inst)

	var found bool
	for _, gc := range out {
		if gc.GameID == 2 {
			found = true
			if gc.Covered {
				t.Errorf("game 2 has no offers, want Covered=false")
			}
		}
	}
	if !found {
		t.Fatalf("game 2 missing from coverage output")
	}
}

func TestBuild_PrefersEarliestCoveringActivation(t *testing.T) {
	inst := optimizer.ReducedInstance{
		Games:     []int64{1},
		GameDates: map[int64]time.Time{1: date(15)},
	}
	result := optimizer.SolverResult{
		ActiveMonthly: []optimizer.Subscription{
			{PackageID: 20, StartDate: date(10), Kind: optimizer.Monthly}, // later start, still covers
			{PackageID: 10, StartDate: date(1), Kind: optimizer.Monthly}, // earliest covering start
		},
	}
	out := Build(result, inst)
	if len(out) != 1 || out[0].PackageID != 10 {
		t.Errorf("coverage = %+v, want package 10 (earliest covering activation)", out)
	}
}

func TestBuild_OutputIsSortedByGameID(t *testing.T) {
	inst := optimizer.ReducedInstance{
		Games:     []int64{5, 1, 3},
		GameDates: map[int64]time.Time{5: date(1), 1: date(1), 3: date(1)},
	}
	result := optimizer.SolverResult{ActiveMonthly: []optimizer.Subscription{{PackageID: 10, StartDate: date(1), Kind: optimizer.Monthly}}}
	out := Build(result, inst)
	for i := 1; i < len(out); i++ {
		if out[i-1].GameID > out[i].GameID {
			t.Fatalf("output not sorted by GameID: %+v", out)
		}
	}
}

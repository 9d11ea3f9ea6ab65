package optimizer

import (
	"context"
	"testing"

	"streamcover/internal/catalog"
)

// TestSolve_SingleMonthlySuffices covers scenario A: every requested game
// falls inside one 30-day window of a single package, so the cheapest
// solution is one monthly activation.
func TestSolve_SingleMonthlySuffices(t *testing.T) {
	req := SolveRequest{
		GameIDs: []int64{1, 2, 3},
		Games: []catalog.Game{
			{ID: 1, StartsAt: day(1)}, {ID: 2, StartsAt: day(10)}, {ID: 3, StartsAt: day(20)},
		},
		Packages: []catalog.Package{{ID: 10, MonthlyPriceCents: cents(500)}},
		Offers: []catalog.Offer{
			{GameID: 1, StreamingPackageID: 10, Live: true},
			{GameID: 2, StreamingPackageID: 10, Live: true},
			{GameID: 3, StreamingPackageID: 10, Live: true},
		},
		Options: Options{ReportTrueCost: true},
	}
	result := Solve(context.Background(), req, BranchAndBoundBackend{})
	if result.Status != StatusOptimal {
		t.Fatalf("Status = %v, want Optimal", result.Status)
	}
	if len(result.ActiveMonthly)+len(result.ActiveYearly) != 1 {
		t.Errorf("active subscriptions = %d, want exactly 1", len(result.ActiveMonthly)+len(result.ActiveYearly))
	}
	if *result.TotalCostCents != 500 {
		t.Errorf("TotalCostCents = %d, want 500", *result.TotalCostCents)
	}
}

// TestSolve_GapForcesTwoMonthlies covers scenario B: a 31-day gap between
// games means no single 30-day window spans both.
func TestSolve_GapForcesTwoMonthlies(t *testing.T) {
	req := SolveRequest{
		GameIDs: []int64{1, 2},
		Games: []catalog.Game{
			{ID: 1, StartsAt: day(1)}, {ID: 2, StartsAt: day(1).AddDate(0, 0, 31)},
		},
		Packages: []catalog.Package{{ID: 10, MonthlyPriceCents: cents(500)}},
		Offers: []catalog.Offer{
			{GameID: 1, StreamingPackageID: 10, Live: true},
			{GameID: 2, StreamingPackageID: 10, Live: true},
		},
		Options: Options{ReportTrueCost: true},
	}
	result := Solve(context.Background(), req, BranchAndBoundBackend{})
	if len(result.ActiveMonthly) != 2 {
		t.Errorf("ActiveMonthly = %v, want two separate monthly purchases", result.ActiveMonthly)
	}
	if *result.TotalCostCents != 1000 {
		t.Errorf("TotalCostCents = %d, want 1000 (two monthly purchases)", *result.TotalCostCents)
	}
}

// TestSolve_YearlyBeatsMonthlies covers scenario C: games spread across the
// year make a single yearly subscription cheaper than many monthlies.
func TestSolve_YearlyBeatsMonthlies(t *testing.T) {
	games := []catalog.Game{}
	offers := []catalog.Offer{}
	var ids []int64
	for i := 0; i < 8; i++ {
		id := int64(i + 1)
		ids = append(ids, id)
		games = append(games, catalog.Game{ID: id, StartsAt: day(1).AddDate(0, 0, i*40)})
		offers = append(offers, catalog.Offer{GameID: id, StreamingPackageID: 10, Live: true})
	}
	yearly := int64(100) // yearly quote (pre x12) -> CYear = 1200
	req := SolveRequest{
		GameIDs:  ids,
		Games:    games,
		Packages: []catalog.Package{{ID: 10, MonthlyPriceCents: cents(300), MonthlyPriceYearlySubscriptionInCents: &yearly}},
		Offers:   offers,
		Options:  Options{ReportTrueCost: true},
	}
	result := Solve(context.Background(), req, BranchAndBoundBackend{})
	if result.Status != StatusOptimal {
		t.Fatalf("Status = %v, want Optimal", result.Status)
	}
	// 8 disjoint 40-day gaps need 8 monthlies (2400 cents) vs one yearly
	// (1200 cents): the yearly subscription must win.
	if len(result.ActiveYearly) != 1 || len(result.ActiveMonthly) != 0 {
		t.Errorf("ActiveMonthly=%v ActiveYearly=%v, want a single yearly activation", result.ActiveMonthly, result.ActiveYearly)
	}
}

// TestSolve_HardLivePreferenceExcludesNonLiveOnlyOffers covers scenario D.
func TestSolve_HardLivePreferenceExcludesNonLiveOnlyOffers(t *testing.T) {
	req := SolveRequest{
		GameIDs: []int64{1},
		Games:   []catalog.Game{{ID: 1, StartsAt: day(1)}},
		Packages: []catalog.Package{
			{ID: 10, MonthlyPriceCents: cents(900)}, // live
			{ID: 20, MonthlyPriceCents: cents(100)}, // cheap but highlights-only
		},
		Offers: []catalog.Offer{
			{GameID: 1, StreamingPackageID: 10, Live: true},
			{GameID: 1, StreamingPackageID: 20, Live: false, Highlights: true},
		},
		Prefs:   Preferences{LiveWeight: 1},
		Options: Options{ReportTrueCost: true},
	}
	result := Solve(context.Background(), req, BranchAndBoundBackend{})
	if len(result.ActiveMonthly) != 1 || result.ActiveMonthly[0].PackageID != 10 {
		t.Errorf("ActiveMonthly = %v, want package 10 (the only live offer), despite being pricier", result.ActiveMonthly)
	}
}

// TestSolve_SoftLivePreferenceShiftsChoice covers scenario E: a soft
// preference doesn't exclude the cheap non-live package, but inflates its
// cost enough to flip the optimal choice.
func TestSolve_SoftLivePreferenceShiftsChoice(t *testing.T) {
	base := SolveRequest{
		GameIDs: []int64{1},
		Games:   []catalog.Game{{ID: 1, StartsAt: day(1)}},
		Packages: []catalog.Package{
			{ID: 10, MonthlyPriceCents: cents(150)}, // live, slightly pricier
			{ID: 20, MonthlyPriceCents: cents(100)}, // cheapest, non-live
		},
		Offers: []catalog.Offer{
			{GameID: 1, StreamingPackageID: 10, Live: true},
			{GameID: 1, StreamingPackageID: 20, Live: false},
		},
		Options: Options{ReportTrueCost: true},
	}

	noPref := base
	noPref.Prefs = Preferences{}
	withoutPenalty := Solve(context.Background(), noPref, BranchAndBoundBackend{})
	if withoutPenalty.ActiveMonthly[0].PackageID != 20 {
		t.Fatalf("sanity check failed: without a preference the cheaper package 20 should win, got %v", withoutPenalty.ActiveMonthly)
	}

	withPref := base
	withPref.Prefs = Preferences{LiveWeight: 0.9} // round(100^0.9) = 63, pushes 20's cost to 163 > 150
	withPenalty := Solve(context.Background(), withPref, BranchAndBoundBackend{})
	if withPenalty.ActiveMonthly[0].PackageID != 10 {
		t.Errorf("ActiveMonthly = %v, want the soft penalty to flip the choice to package 10", withPenalty.ActiveMonthly)
	}
}

// TestSolve_GameWithNoOfferIsReportedSeparately covers scenario F.
func TestSolve_GameWithNoOfferIsReportedSeparately(t *testing.T) {
	req := SolveRequest{
		GameIDs: []int64{1, 2},
		Games:   []catalog.Game{{ID: 1, StartsAt: day(1)}, {ID: 2, StartsAt: day(2)}},
		Packages: []catalog.Package{
			{ID: 10, MonthlyPriceCents: cents(500)},
		},
		Offers: []catalog.Offer{
			{GameID: 1, StreamingPackageID: 10, Live: true},
			// game 2 has no offer at all.
		},
		Options: Options{ReportTrueCost: true},
	}
	result := Solve(context.Background(), req, BranchAndBoundBackend{})
	if len(result.GamesWithNoOffers) != 1 || result.GamesWithNoOffers[0] != 2 {
		t.Errorf("GamesWithNoOffers = %v, want [2]", result.GamesWithNoOffers)
	}
	if result.Status != StatusOptimal {
		t.Errorf("Status = %v, want Optimal for the covered remainder", result.Status)
	}
}

func TestSolve_EmptyRequestIsOptimalZeroCost(t *testing.T) {
	result := Solve(context.Background(), SolveRequest{}, BranchAndBoundBackend{})
	if result.Status != StatusOptimal {
		t.Fatalf("Status = %v, want Optimal", result.Status)
	}
	if result.TotalCostCents == nil || *result.TotalCostCents != 0 {
		t.Errorf("TotalCostCents = %v, want 0", result.TotalCostCents)
	}
}

func TestSolve_AllGamesUnofferedNeverTouchesBackend(t *testing.T) {
	req := SolveRequest{
		GameIDs: []int64{1},
		Games:   []catalog.Game{{ID: 1, StartsAt: day(1)}},
	}
	result := Solve(context.Background(), req, BranchAndBoundBackend{})
	if result.Status != StatusOptimal {
		t.Fatalf("Status = %v, want Optimal", result.Status)
	}
	if len(result.GamesWithNoOffers) != 1 {
		t.Errorf("GamesWithNoOffers = %v, want [1]", result.GamesWithNoOffers)
	}
}

// TestSolve_PermutationInvariant checks that reordering the requested game
// ids never changes the reported total cost.
func TestSolve_PermutationInvariant(t *testing.T) {
	games := []catalog.Game{{ID: 1, StartsAt: day(1)}, {ID: 2, StartsAt: day(5)}, {ID: 3, StartsAt: day(40)}}
	packages := []catalog.Package{{ID: 10, MonthlyPriceCents: cents(500)}}
	offers := []catalog.Offer{
		{GameID: 1, StreamingPackageID: 10, Live: true},
		{GameID: 2, StreamingPackageID: 10, Live: true},
		{GameID: 3, StreamingPackageID: 10, Live: true},
	}
	opts := Options{ReportTrueCost: true}

	r1 := Solve(context.Background(), SolveRequest{GameIDs: []int64{1, 2, 3}, Games: games, Packages: packages, Offers: offers, Options: opts}, BranchAndBoundBackend{})
	r2 := Solve(context.Background(), SolveRequest{GameIDs: []int64{3, 1, 2}, Games: games, Packages: packages, Offers: offers, Options: opts}, BranchAndBoundBackend{})

	if *r1.TotalCostCents != *r2.TotalCostCents {
		t.Errorf("TotalCostCents differ by request order: %d vs %d", *r1.TotalCostCents, *r2.TotalCostCents)
	}
}

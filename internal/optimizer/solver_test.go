package optimizer

import (
	"context"
	"testing"
	"time"
)

func TestBranchAndBoundBackend_SingleColumnCoversEverything(t *testing.T) {
	inst := ReducedInstance{
		Packages:  []int64{10},
		Games:     []int64{1, 2, 3},
		GameDates: map[int64]time.Time{1: day(1), 2: day(2), 3: day(3)},
		CMonth:    map[int64]int64{10: 500},
		PG:        map[int64][]int64{1: {10}, 2: {10}, 3: {10}},
	}
	p := BuildProblem(inst)
	assignment, status, err := (BranchAndBoundBackend{}).Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != StatusOptimal {
		t.Fatalf("status = %v, want Optimal", status)
	}
	if len(assignment.Selected) != 1 {
		t.Errorf("Selected = %v, want a single column (one package covers every game)", assignment.Selected)
	}
}

func TestBranchAndBoundBackend_PicksCheaperOfTwoCoveringEverything(t *testing.T) {
	inst := ReducedInstance{
		Packages:  []int64{10, 20},
		Games:     []int64{1, 2},
		GameDates: map[int64]time.Time{1: day(1), 2: day(2)},
		CMonth:    map[int64]int64{10: 900, 20: 300},
		PG:        map[int64][]int64{1: {10, 20}, 2: {10, 20}},
	}
	p := BuildProblem(inst)
	assignment, status, _ := (BranchAndBoundBackend{}).Solve(context.Background(), p)
	if status != StatusOptimal {
		t.Fatalf("status = %v, want Optimal", status)
	}
	var total int64
	for _, idx := range assignment.Selected {
		total += p.Columns[idx].CostCents
	}
	if total != 300+costAdjustment {
		t.Errorf("total selected cost = %d, want the cheaper package's adjusted cost %d", total, 300+costAdjustment)
	}
}

func TestBranchAndBoundBackend_GapForcesTwoPurchases(t *testing.T) {
	// Games 31 days apart: a single 30-day monthly window cannot span both.
	inst := ReducedInstance{
		Packages:  []int64{10},
		Games:     []int64{1, 2},
		GameDates: map[int64]time.Time{1: day(1), 2: day(1).AddDate(0, 0, 31)},
		CMonth:    map[int64]int64{10: 500},
		PG:        map[int64][]int64{1: {10}, 2: {10}},
	}
	p := BuildProblem(inst)
	assignment, status, _ := (BranchAndBoundBackend{}).Solve(context.Background(), p)
	if status != StatusOptimal {
		t.Fatalf("status = %v, want Optimal", status)
	}
	if len(assignment.Selected) != 2 {
		t.Errorf("Selected = %v, want two monthly purchases for a 31-day gap", assignment.Selected)
	}
}

func TestBranchAndBoundBackend_InfeasibleWhenGameUncoverable(t *testing.T) {
	p := Problem{
		Games:       []int64{1},
		GameColumns: map[int64][]int{1: nil},
	}
	_, status, _ := (BranchAndBoundBackend{}).Solve(context.Background(), p)
	if status != StatusInfeasible {
		t.Errorf("status = %v, want Infeasible", status)
	}
}

func TestBranchAndBoundBackend_EmptyProblemIsTriviallyOptimal(t *testing.T) {
	_, status, err := (BranchAndBoundBackend{}).Solve(context.Background(), Problem{})
	if err != nil || status != StatusOptimal {
		t.Errorf("status=%v err=%v, want Optimal/nil for an empty problem", status, err)
	}
}

func TestBranchAndBoundBackend_CanceledContextYieldsNotSolved(t *testing.T) {
	// Cancel the context before solving: the backend checks ctx before the
	// search starts, so even a problem whose search would finish within one
	// node-check interval comes back NotSolved.
	games := make([]int64, 0, 40)
	dates := make(map[int64]time.Time)
	pg := make(map[int64][]int64)
	cmonth := map[int64]int64{}
	for i := int64(1); i <= 40; i++ {
		games = append(games, i)
		dates[i] = day(1).AddDate(0, 0, int(i)*40) // force disjoint windows -> exponential branching
		pg[i] = []int64{10, 20, 30}
		cmonth[10] = 500
		cmonth[20] = 600
		cmonth[30] = 700
	}
	inst := ReducedInstance{Packages: []int64{10, 20, 30}, Games: games, GameDates: dates, CMonth: cmonth, PG: pg}
	p := BuildProblem(inst)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, status, _ := (BranchAndBoundBackend{}).Solve(ctx, p)
	if status != StatusNotSolved {
		t.Errorf("status = %v, want NotSolved for an already-canceled context", status)
	}
}

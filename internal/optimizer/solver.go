package optimizer

import (
	"context"
	"sort"
)

// Assignment is the set of column indices a Backend selected.
type Assignment struct {
	Selected []int // indices into Problem.Columns
}

// Backend is the sole external coupling point of the rolling-window
// formulation: "a clean trait/interface over binary-variable MILP with
// linear constraints and an objective isolates the choice of backend"
// (spec §9). Swapping in CBC/HiGHS/OR-Tools bindings later means
// implementing this interface; nothing else in the pipeline changes.
type Backend interface {
	Solve(ctx context.Context, problem Problem) (Assignment, Status, error)
}

// BranchAndBoundBackend is an exact, in-process branch-and-bound solver for
// the weighted set-cover formulation. No MILP library (CBC/HiGHS/GLPK/OR
// bindings) appears anywhere in the example corpus this project was built
// against — every sibling project hand-rolls its optimization numerics — so
// this backend is a small depth-first branch-and-bound rather than a
// bound-to-library call. See DESIGN.md for the standing justification.
type BranchAndBoundBackend struct {
	// MaxNodes bounds the search for pathological inputs; zero means
	// unlimited (bounded only by ctx). It is checked every
	// nodeCheckInterval nodes, so the search may run slightly past it.
	MaxNodes int
}

// nodeCheckInterval is how often the search polls ctx.Err() and MaxNodes,
// balancing responsiveness against the overhead of a context check.
const nodeCheckInterval = 2048

func (b BranchAndBoundBackend) Solve(ctx context.Context, problem Problem) (Assignment, Status, error) {
	if len(problem.Games) == 0 {
		return Assignment{}, StatusOptimal, nil
	}

	for _, g := range problem.Games {
		if len(problem.GameColumns[g]) == 0 {
			// Per spec §7, this must not happen: games with no covering
			// column should already have been excluded into
			// GamesWithNoOffers before reaching the solver. Surfacing it
			// here (rather than silently returning an empty bundle) makes
			// the upstream bug visible.
			return Assignment{}, StatusInfeasible, nil
		}
	}

	if ctx.Err() != nil {
		// Already canceled or past its deadline: no search, no incumbent.
		return Assignment{}, StatusNotSolved, nil
	}

	s := &bnbSearch{
		problem:  problem,
		best:     nil,
		bestCost: -1,
		nodes:    0,
		maxNodes: b.MaxNodes,
	}

	covered := make(map[int64]bool, len(problem.Games))
	aborted := s.search(ctx, covered, nil, 0)

	if s.best == nil {
		if aborted {
			return Assignment{}, StatusNotSolved, nil
		}
		return Assignment{}, StatusInfeasible, nil
	}
	status := StatusOptimal
	if aborted {
		status = StatusNotSolved // feasible incumbent found, but search cut short — not proven optimal
	}
	return Assignment{Selected: s.best}, status, nil
}

type bnbSearch struct {
	problem  Problem
	best     []int
	bestCost int64
	nodes    int
	maxNodes int
}

// search explores inclusion/exclusion of columns covering the most
// constrained uncovered game (fewest covering columns first — a standard
// exact-cover branching heuristic), pruning with an admissible lower bound.
// Returns true if the search was aborted early (ctx canceled / node budget
// exhausted) before proving optimality.
func (s *bnbSearch) search(ctx context.Context, covered map[int64]bool, chosen []int, cost int64) bool {
	s.nodes++
	if s.nodes%nodeCheckInterval == 0 {
		if ctx.Err() != nil {
			return true
		}
		if s.maxNodes > 0 && s.nodes > s.maxNodes {
			return true
		}
	}

	if s.best != nil && cost+lowerBound(s.problem, covered) >= s.bestCost {
		return false // pruned, not aborted
	}

	game, ok := mostConstrainedGame(s.problem, covered)
	if !ok {
		// All games covered: this is a feasible complete assignment.
		if s.best == nil || cost < s.bestCost {
			s.best = append([]int(nil), chosen...)
			s.bestCost = cost
		}
		return false
	}

	cols := append([]int(nil), s.problem.GameColumns[game]...)
	sort.Slice(cols, func(i, j int) bool { return s.problem.Columns[cols[i]].CostCents < s.problem.Columns[cols[j]].CostCents })

	for _, colIdx := range cols {
		col := s.problem.Columns[colIdx]
		newlyCovered := markCovered(covered, col.Games)
		aborted := s.search(ctx, covered, append(chosen, colIdx), cost+col.CostCents)
		unmarkCovered(covered, newlyCovered)
		if aborted {
			return true
		}
	}
	return false
}

// mostConstrainedGame returns the uncovered game with the fewest covering
// columns (most-constrained-variable heuristic), or false if all games in
// the problem are covered.
func mostConstrainedGame(p Problem, covered map[int64]bool) (int64, bool) {
	best := int64(0)
	bestCount := -1
	found := false
	for _, g := range p.Games {
		if covered[g] {
			continue
		}
		n := len(p.GameColumns[g])
		if !found || n < bestCount || (n == bestCount && g < best) {
			best = g
			bestCount = n
			found = true
		}
	}
	return best, found
}

func markCovered(covered map[int64]bool, games []int64) []int64 {
	var newly []int64
	for _, g := range games {
		if !covered[g] {
			covered[g] = true
			newly = append(newly, g)
		}
	}
	return newly
}

func unmarkCovered(covered map[int64]bool, games []int64) {
	for _, g := range games {
		delete(covered, g)
	}
}

// lowerBound computes an admissible lower bound on the remaining cost to
// cover every currently-uncovered game: it greedily partitions the
// uncovered games into groups that share no common covering column, and
// sums each group's cheapest covering cost. Because two games with no
// shared covering column must be covered by two distinct purchases in any
// feasible completion, this sum never exceeds the true remaining cost.
func lowerBound(p Problem, covered map[int64]bool) int64 {
	remaining := make(map[int64]bool)
	for _, g := range p.Games {
		if !covered[g] {
			remaining[g] = true
		}
	}

	var bound int64
	for len(remaining) > 0 {
		// Pick any remaining game deterministically (lowest id).
		var pick int64
		first := true
		for g := range remaining {
			if first || g < pick {
				pick = g
				first = false
			}
		}

		minCost := int64(-1)
		conflict := make(map[int64]bool)
		for _, colIdx := range p.GameColumns[pick] {
			col := p.Columns[colIdx]
			if minCost < 0 || col.CostCents < minCost {
				minCost = col.CostCents
			}
			for _, g := range col.Games {
				conflict[g] = true
			}
		}
		if minCost < 0 {
			// Should not happen (checked upfront in Solve), but avoid an
			// infinite loop if it ever does.
			delete(remaining, pick)
			continue
		}
		bound += minCost
		for g := range conflict {
			delete(remaining, g)
		}
		delete(remaining, pick) // pick itself, in case it had no conflicts recorded
	}
	return bound
}

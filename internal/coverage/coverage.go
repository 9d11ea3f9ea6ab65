// Package coverage implements the second narrow contract the optimizer
// promises callers: solution -> per-game coverage map. Given a solved
// SolverResult and the ReducedInstance it was computed from, it reports
// which active subscription (if any) covers each requested game. This is a
// pure projection over data the solver already produced — no optimization
// happens here.
package coverage

import (
	"sort"

	"streamcover/internal/optimizer"
)

// GameCoverage is which active subscription, if any, covers one game.
type GameCoverage struct {
	GameID    int64
	Covered   bool
	PackageID int64
	Kind      optimizer.SubscriptionKind
}

// Build projects a SolverResult back onto the requested games. When more
// than one active subscription happens to cover the same game, the
// chronologically earliest one wins (ties broken by package id, for
// determinism). Games in GamesWithNoOffers are always reported uncovered.
func Build(result optimizer.SolverResult, inst optimizer.ReducedInstance) []GameCoverage {
	type candidate struct {
		packageID int64
		kind      optimizer.SubscriptionKind
	}
	best := make(map[int64]candidate)
	bestStart := make(map[int64]int64)

	consider := func(subs []optimizer.Subscription, windowDays int) {
		for _, sub := range subs {
			end := sub.StartDate.AddDate(0, 0, windowDays)
			for _, gameID := range inst.Games {
				gd, ok := inst.GameDates[gameID]
				if !ok || gd.Before(sub.StartDate) || gd.After(end) {
					continue
				}
				start := sub.StartDate.Unix()
				prev, exists := best[gameID]
				if !exists ||
					start < bestStart[gameID] ||
					(start == bestStart[gameID] && sub.PackageID < prev.packageID) {
					best[gameID] = candidate{packageID: sub.PackageID, kind: sub.Kind}
					bestStart[gameID] = start
				}
			}
		}
	}
	consider(result.ActiveMonthly, optimizer.MonthlyWindowDays)
	consider(result.ActiveYearly, optimizer.YearlyWindowDays)

	out := make([]GameCoverage, 0, len(inst.Games)+len(inst.GamesWithNoOffers))
	for _, gameID := range inst.Games {
		if c, ok := best[gameID]; ok {
			out = append(out, GameCoverage{GameID: gameID, Covered: true, PackageID: c.packageID, Kind: c.kind})
		} else {
			out = append(out, GameCoverage{GameID: gameID, Covered: false})
		}
	}
	for _, gameID := range inst.GamesWithNoOffers {
		out = append(out, GameCoverage{GameID: gameID, Covered: false})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].GameID < out[j].GameID })
	return out
}

package optimizer

import (
	"context"

	"streamcover/internal/catalog"
)

// SolveRequest is the in-process contract named in spec §6.1: a caller
// passes the requested games, the catalog tables that touch them, and the
// live/highlight preference weights; Solve returns a SolverResult.
type SolveRequest struct {
	GameIDs  []int64
	Offers   []catalog.Offer
	Packages []catalog.Package
	Games    []catalog.Game
	Prefs    Preferences
	Options  Options
}

// Solve runs the full pipeline: Instance Builder -> Preference Shaper ->
// Backend -> Solution Reporter. An empty request yields Optimal, zero cost,
// no active subscriptions (spec §7, EmptyRequest) without ever touching the
// backend.
func Solve(ctx context.Context, req SolveRequest, backend Backend) SolverResult {
	built := Build(req.GameIDs, req.Offers, req.Packages, req.Games)
	shaped := ApplyPreferences(built, req.Prefs)
	inst := shaped.Instance

	if len(inst.Games) == 0 {
		// EmptyRequest / AllGamesUnoffered (spec §7, items 1-2): the solver
		// is never invoked, but games_with_no_offers is still populated for
		// the caller.
		zero := int64(0)
		return SolverResult{Status: StatusOptimal, TotalCostCents: &zero, GamesWithNoOffers: inst.GamesWithNoOffers}
	}

	if req.Options.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Options.TimeLimit)
		defer cancel()
	}

	problem := BuildProblem(inst)
	assignment, status, err := backend.Solve(ctx, problem)
	if err != nil {
		return SolverResult{Status: StatusUndefined, GamesWithNoOffers: inst.GamesWithNoOffers}
	}

	return BuildResult(problem, inst, assignment, status, req.Options)
}

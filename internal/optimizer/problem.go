package optimizer

import (
	"sort"
	"time"
)

// costAdjustment is the +1-cent-per-variable guard from spec §4.3: it
// prevents the solver from freely purchasing a zero-cost subscription at
// every candidate start date (a degenerate optimum that would otherwise
// pick free packages everywhere).
const costAdjustment = 1

// MonthlyWindowDays and YearlyWindowDays are the rolling-window lengths a
// monthly or yearly activation covers, inclusive of both endpoints.
const (
	MonthlyWindowDays = 30
	YearlyWindowDays  = 365
)

// Column is one candidate (package, start_date, kind) decision variable.
// Only columns that actually cover at least one game are materialized —
// per spec §5, the resource policy requires iterating package-date pairs
// that contribute rather than a dense |packages|x|dates| table.
type Column struct {
	PackageID int64
	StartDate time.Time
	Kind      SubscriptionKind
	CostCents int64 // adjusted cost (includes the +1 guard)
	Games     []int64
}

// Problem is the sparse set-cover formulation the Backend solves: minimize
// the sum of selected column costs subject to every game being covered by
// at least one selected column.
type Problem struct {
	Columns     []Column
	Games       []int64         // games that must be covered (ReducedInstance.Games)
	GameColumns map[int64][]int // game id -> indices into Columns that cover it
}

// BuildProblem turns a ReducedInstance into the sparse column set the
// backend operates over. start_dates is the sorted set of distinct game
// dates (spec §4.3) — no other calendar points are considered as candidate
// activations.
func BuildProblem(inst ReducedInstance) Problem {
	startDates := distinctSortedDates(inst.GameDates)

	// Invert P_g once: package id -> sorted games it is allowed to stream,
	// so the per-(package,date) window scan below only touches games that
	// package could ever cover, not the whole game list.
	packageGames := make(map[int64][]int64)
	for _, g := range inst.Games {
		for _, p := range inst.PG[g] {
			packageGames[p] = append(packageGames[p], g)
		}
	}
	for _, games := range packageGames {
		sort.Slice(games, func(i, j int) bool { return inst.GameDates[games[i]].Before(inst.GameDates[games[j]]) })
	}

	var columns []Column
	for _, pkgID := range inst.Packages {
		candidates := packageGames[pkgID]
		if cost, ok := inst.CMonth[pkgID]; ok {
			for _, d := range startDates {
				if games := gamesInWindow(inst, candidates, d, MonthlyWindowDays); len(games) > 0 {
					columns = append(columns, Column{PackageID: pkgID, StartDate: d, Kind: Monthly, CostCents: cost + costAdjustment, Games: games})
				}
			}
		}
		if cost, ok := inst.CYear[pkgID]; ok {
			for _, d := range startDates {
				if games := gamesInWindow(inst, candidates, d, YearlyWindowDays); len(games) > 0 {
					columns = append(columns, Column{PackageID: pkgID, StartDate: d, Kind: Yearly, CostCents: cost + costAdjustment, Games: games})
				}
			}
		}
	}

	gameColumns := make(map[int64][]int, len(inst.Games))
	for idx, col := range columns {
		for _, g := range col.Games {
			gameColumns[g] = append(gameColumns[g], idx)
		}
	}

	return Problem{Columns: columns, Games: append([]int64(nil), inst.Games...), GameColumns: gameColumns}
}

// distinctSortedDates returns the sorted, deduplicated set of game dates —
// the only candidate activation points (spec §3 invariant).
func distinctSortedDates(gameDates map[int64]time.Time) []time.Time {
	seen := make(map[int64]time.Time)
	for _, d := range gameDates {
		seen[d.Unix()] = d
	}
	dates := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// gamesInWindow filters candidates (games a package is allowed to stream) to
// those whose date falls in [d, d+windowDays], inclusive on both ends
// (spec §3's half-open-by-upper-inclusivity coverage window).
func gamesInWindow(inst ReducedInstance, candidates []int64, d time.Time, windowDays int) []int64 {
	end := d.AddDate(0, 0, windowDays)
	var out []int64
	for _, g := range candidates {
		gd := inst.GameDates[g]
		if gd.Before(d) || gd.After(end) {
			continue
		}
		out = append(out, g)
	}
	return out
}

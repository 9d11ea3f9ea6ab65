package optimizer

// BuildResult maps a solver Assignment back onto (package, start_date, kind)
// records and undoes the +1-cent-per-variable adjustment (spec §4.4).
//
// Per spec §9's open question, the source's literal behavior subtracts the
// inflation applied to *every* variable's coefficient, not just the active
// ones — over-subtracting by the count of inactive variables and yielding a
// cost usable only for ranking, not as a true total. Options.ReportTrueCost
// switches to the principled variant (subtract exactly 1 per active
// subscription, recovering the real total).
func BuildResult(problem Problem, inst ReducedInstance, assignment Assignment, status Status, opts Options) SolverResult {
	if status != StatusOptimal && status != StatusNotSolved {
		return SolverResult{Status: status, GamesWithNoOffers: inst.GamesWithNoOffers}
	}
	if status == StatusNotSolved && assignment.Selected == nil {
		// BackendFailure with no incumbent at all: total_cost is undefined
		// (spec §7 item 4) — leave it nil and the active lists empty.
		return SolverResult{Status: status, GamesWithNoOffers: inst.GamesWithNoOffers}
	}

	var monthly, yearly []Subscription
	var rawObjective int64
	for _, idx := range assignment.Selected {
		col := problem.Columns[idx]
		rawObjective += col.CostCents
		sub := Subscription{PackageID: col.PackageID, StartDate: col.StartDate, Kind: col.Kind}
		if col.Kind == Monthly {
			monthly = append(monthly, sub)
		} else {
			yearly = append(yearly, sub)
		}
	}

	numStartDates := len(distinctSortedDates(inst.GameDates))
	var total int64
	if opts.ReportTrueCost {
		total = rawObjective - costAdjustment*int64(len(assignment.Selected))
	} else {
		total = rawObjective - costAdjustment*int64(len(inst.CMonth)*numStartDates+len(inst.CYear)*numStartDates)
	}

	return SolverResult{
		Status:            status,
		TotalCostCents:    &total,
		ActiveMonthly:     monthly,
		ActiveYearly:      yearly,
		GamesWithNoOffers: inst.GamesWithNoOffers,
	}
}

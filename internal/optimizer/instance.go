package optimizer

import (
	"sort"
	"time"

	"streamcover/internal/catalog"
)

// BuildOutput bundles the reduced instance together with the offers scoped
// to the request — the preference shaper (§4.2) needs both.
type BuildOutput struct {
	Instance       ReducedInstance
	FilteredOffers []catalog.Offer // offers restricted to the requested games
}

// Build reduces the full catalog to the packages and offers touching the
// requested games (spec §4.1). Each step strictly reduces data size; an
// empty requested list yields an empty instance.
func Build(gameIDs []int64, offers []catalog.Offer, packages []catalog.Package, games []catalog.Game) BuildOutput {
	requested := make(map[int64]bool, len(gameIDs))
	for _, id := range gameIDs {
		requested[id] = true
	}

	// Step 4: filtered_offers ← offers restricted to requested game ids.
	var filteredOffers []catalog.Offer
	for _, o := range offers {
		if requested[o.GameID] {
			filteredOffers = append(filteredOffers, o)
		}
	}

	// Step 1: relevant package ids touched by the filtered offers.
	relevantPkgIDs := make(map[int64]bool)
	for _, o := range filteredOffers {
		relevantPkgIDs[o.StreamingPackageID] = true
	}

	// Step 2: retain only relevant packages; compute yearly price.
	cMonth := make(map[int64]int64)
	cYear := make(map[int64]int64)
	for _, p := range packages {
		if !relevantPkgIDs[p.ID] {
			continue
		}
		if p.MonthlyPriceCents != nil {
			cMonth[p.ID] = *p.MonthlyPriceCents
		}
		if yp := p.YearlyPriceCents(); yp != nil {
			cYear[p.ID] = *yp
		}
	}

	// Step 3: games ← games_meta restricted to requested ids. starts_at is
	// already truncated to day resolution by catalog.LoadGames.
	gameDates := make(map[int64]time.Time)
	for _, g := range games {
		if requested[g.ID] {
			gameDates[g.ID] = g.StartsAt
		}
	}

	// Step 6: P_g ← distinct covering package ids per game, deduped.
	pgSets := make(map[int64]map[int64]bool)
	for _, o := range filteredOffers {
		if pgSets[o.GameID] == nil {
			pgSets[o.GameID] = make(map[int64]bool)
		}
		pgSets[o.GameID][o.StreamingPackageID] = true
	}
	pg := make(map[int64][]int64, len(pgSets))
	for gameID, set := range pgSets {
		ids := make([]int64, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		pg[gameID] = ids
	}

	// Step 7: partition requested games into kept (present in P_g) and
	// games_with_no_offers (absent), deduping repeated ids in the request.
	var keptGames, noOffers []int64
	seen := make(map[int64]bool, len(gameIDs))
	for _, id := range gameIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if len(pg[id]) > 0 {
			keptGames = append(keptGames, id)
		} else {
			noOffers = append(noOffers, id)
		}
	}
	sort.Slice(keptGames, func(i, j int) bool { return keptGames[i] < keptGames[j] })
	sort.Slice(noOffers, func(i, j int) bool { return noOffers[i] < noOffers[j] })

	packageIDs := make([]int64, 0, len(cMonth)+len(cYear))
	seenPkg := make(map[int64]bool)
	addPkg := func(id int64) {
		if !seenPkg[id] {
			seenPkg[id] = true
			packageIDs = append(packageIDs, id)
		}
	}
	for id := range cMonth {
		addPkg(id)
	}
	for id := range cYear {
		addPkg(id)
	}
	sort.Slice(packageIDs, func(i, j int) bool { return packageIDs[i] < packageIDs[j] })

	return BuildOutput{
		Instance: ReducedInstance{
			Packages:          packageIDs,
			Games:             keptGames,
			GameDates:         gameDates,
			CMonth:            cMonth,
			CYear:             cYear,
			PG:                pg,
			GamesWithNoOffers: noOffers,
		},
		FilteredOffers: filteredOffers,
	}
}

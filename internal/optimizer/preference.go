package optimizer

import (
	"math"
	"sort"

	"streamcover/internal/catalog"
)

// liveBase and highlightBase are the fixed soft-penalty bases from spec §4.2:
// live-preference penalties are stiffer than highlight-preference penalties.
const (
	liveBase      = 100.0
	highlightBase = 30.0
)

// ApplyPreferences shapes a BuildOutput by the caller's live/highlight
// weights. Hard mode (w >= 1) drops offers lacking the property and rebuilds
// P_g and games_with_no_offers; soft mode (0 < w < 1) leaves P_g untouched
// and inflates package costs instead. w == 0 is a no-op for that property.
func ApplyPreferences(in BuildOutput, prefs Preferences) BuildOutput {
	offers := in.FilteredOffers

	if prefs.hardLive() {
		offers = filterOffers(offers, func(o catalog.Offer) bool { return o.Live })
	}
	if prefs.hardHL() {
		offers = filterOffers(offers, func(o catalog.Offer) bool { return o.Highlights })
	}

	out := in
	if prefs.hardLive() || prefs.hardHL() {
		out = rebuild(in, offers)
	}

	if prefs.softLive() {
		base := math.Pow(liveBase, prefs.LiveWeight)
		monthly := int64(math.Round(base))
		yearly := int64(math.Round(base * 12))
		applySoftPenalty(&out.Instance, offers, func(o catalog.Offer) bool { return !o.Live }, monthly, yearly)
	}
	if prefs.softHL() {
		base := math.Pow(highlightBase, prefs.HighlightWeight)
		monthly := int64(math.Round(base))
		yearly := int64(math.Round(base * 12))
		applySoftPenalty(&out.Instance, offers, func(o catalog.Offer) bool { return !o.Highlights }, monthly, yearly)
	}

	out.FilteredOffers = offers
	return out
}

func filterOffers(offers []catalog.Offer, keep func(catalog.Offer) bool) []catalog.Offer {
	var out []catalog.Offer
	for _, o := range offers {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}

// rebuild recomputes P_g, Games, and GamesWithNoOffers from a (possibly
// hard-filtered) offer set, consistent with the original requested game set.
func rebuild(in BuildOutput, offers []catalog.Offer) BuildOutput {
	requested := make(map[int64]bool)
	for _, g := range in.Instance.Games {
		requested[g] = true
	}
	for _, g := range in.Instance.GamesWithNoOffers {
		requested[g] = true
	}

	pgSets := make(map[int64]map[int64]bool)
	for _, o := range offers {
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

	var keptGames, noOffers []int64
	allRequested := make([]int64, 0, len(requested))
	for id := range requested {
		allRequested = append(allRequested, id)
	}
	sort.Slice(allRequested, func(i, j int) bool { return allRequested[i] < allRequested[j] })
	for _, id := range allRequested {
		if len(pg[id]) > 0 {
			keptGames = append(keptGames, id)
		} else {
			noOffers = append(noOffers, id)
		}
	}

	inst := in.Instance
	inst.PG = pg
	inst.Games = keptGames
	inst.GamesWithNoOffers = noOffers
	return BuildOutput{Instance: inst, FilteredOffers: offers}
}

// applySoftPenalty inflates the monthly/yearly cost of every package that
// has at least one surviving offer lacking the preferred property, among
// the requested games. Granularity is per-package, not per-offer: the
// penalty is added once regardless of how many of that package's offers
// lack the property.
func applySoftPenalty(inst *ReducedInstance, offers []catalog.Offer, lacksProperty func(catalog.Offer) bool, monthlyPenalty, yearlyPenalty int64) {
	flagged := make(map[int64]bool)
	for _, o := range offers {
		if lacksProperty(o) {
			flagged[o.StreamingPackageID] = true
		}
	}
	for pkgID := range flagged {
		if _, ok := inst.CMonth[pkgID]; ok {
			inst.CMonth[pkgID] += monthlyPenalty
		}
		if _, ok := inst.CYear[pkgID]; ok {
			inst.CYear[pkgID] += yearlyPenalty
		}
	}
}

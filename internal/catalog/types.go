// Package catalog loads the three source tables (games, streaming offers,
// streaming packages) from CSV and exposes them, indexed by id, to the
// optimizer. It owns no optimization logic of its own.
package catalog

import "time"

// Game is a sporting event with a calendar start date.
type Game struct {
	ID       int64
	TeamHome string
	TeamAway string
	StartsAt time.Time // day-level resolution; time-of-day discarded
}

// Package is a purchasable streaming plan. Either price may be nil, meaning
// the package is not sold that way (a null price is never coerced to zero —
// a *zero* price is a distinct, legal "free package" value).
type Package struct {
	ID                                    int64
	Name                                  string
	MonthlyPriceCents                     *int64
	MonthlyPriceYearlySubscriptionInCents *int64
}

// YearlyPriceCents returns 12x the yearly-subscription monthly quote, or nil
// if the package has no yearly plan.
func (p Package) YearlyPriceCents() *int64 {
	if p.MonthlyPriceYearlySubscriptionInCents == nil {
		return nil
	}
	y := *p.MonthlyPriceYearlySubscriptionInCents * 12
	return &y
}

// Offer describes whether a package streams a given game live and/or as
// highlights. Multiple offers from distinct packages for the same game are
// expected; the same (game, package) pair should not repeat within a single
// offer table, but callers are not required to pre-dedupe.
type Offer struct {
	GameID             int64
	StreamingPackageID int64
	Live               bool
	Highlights         bool
}

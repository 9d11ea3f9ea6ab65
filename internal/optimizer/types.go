// Package optimizer is the subscription-optimization engine: it reduces a
// catalog to the packages and offers touching a requested set of games,
// shapes costs by live/highlight preference, formulates a minimum-cost
// rolling-window set cover, and reports the chosen bundle back.
//
// The pipeline is synchronous, reentrant, and owns no process-wide mutable
// state — every Solve call builds its own ReducedInstance and Problem.
package optimizer

import "time"

// SubscriptionKind distinguishes a monthly activation from a yearly one.
type SubscriptionKind string

const (
	Monthly SubscriptionKind = "monthly"
	Yearly  SubscriptionKind = "yearly"
)

// Status is the backend's terminal outcome, translated to the taxonomy the
// core promises callers.
type Status string

const (
	StatusOptimal    Status = "Optimal"
	StatusInfeasible Status = "Infeasible"
	StatusUnbounded  Status = "Unbounded"
	StatusNotSolved  Status = "Not Solved"
	StatusUndefined  Status = "Undefined"
)

// Preferences carries the caller's live/highlight weighting. Values are
// fractions in [0, 1]; 1 (or anything above) means hard-required.
type Preferences struct {
	LiveWeight      float64
	HighlightWeight float64
}

// hardLive and hardHL report whether a weight selects hard-filter mode
// (w >= 1); softLive and softHL report soft mode (0 < w < 1).
func (w Preferences) hardLive() bool { return w.LiveWeight >= 1 }
func (w Preferences) hardHL() bool   { return w.HighlightWeight >= 1 }
func (w Preferences) softLive() bool { return w.LiveWeight > 0 && w.LiveWeight < 1 }
func (w Preferences) softHL() bool   { return w.HighlightWeight > 0 && w.HighlightWeight < 1 }

// ReducedInstance is the minimal data structure the solver consumes,
// derived once per request from the full catalog.
type ReducedInstance struct {
	Packages          []int64             // packages retained (keys(CMonth) ∪ keys(CYear))
	Games             []int64             // requested games that have at least one offer
	GameDates         map[int64]time.Time // game id -> calendar start date
	CMonth            map[int64]int64     // package id -> monthly price cents
	CYear             map[int64]int64     // package id -> yearly price cents (12x yearly-subscription quote)
	PG                map[int64][]int64   // game id -> distinct covering package ids
	GamesWithNoOffers []int64             // requested games with no surviving offers
}

// Subscription is one solver-chosen activation.
type Subscription struct {
	PackageID int64
	StartDate time.Time
	Kind      SubscriptionKind
}

// SolverResult is the pipeline's terminal output.
type SolverResult struct {
	Status            Status
	TotalCostCents    *int64 // nil when Status is not a terminal success (BackendFailure convention, spec §7)
	ActiveMonthly     []Subscription
	ActiveYearly      []Subscription
	GamesWithNoOffers []int64
}

// Options tunes the solve beyond the request's own preferences.
type Options struct {
	// ReportTrueCost switches the reporter between the source's literal
	// over-subtraction behavior (false, the default — see DESIGN.md) and
	// the principled "subtract 1 per active subscription" variant (true).
	ReportTrueCost bool
	// TimeLimit bounds the branch-and-bound search; zero means no limit
	// beyond the caller's context.
	TimeLimit time.Duration
}

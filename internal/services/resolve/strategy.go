// Package resolve runs prioritized resolution strategies against a reference
//
// A strategy is one named way of turning a reference into a normalized result:
// a primary API, a mirror API, a scrape. Strategies are declared once at
// wiring time, ordered by priority, and tried sequentially until one
// produces a result. Failures below this boundary are absorbed into the next
// attempt; only total exhaustion surfaces to the caller
package resolve

import (
	"context"
	"time"

	"tunepipe/internal/core/ref"
)

// StrategyKind distinguishes structured API calls from page scraping
type StrategyKind string

const (
	// KindAPI calls a structured upstream endpoint
	KindAPI StrategyKind = "api"
	// KindScrape extracts from semi-structured HTML
	KindScrape StrategyKind = "scrape"
)

// RunFunc performs one strategy attempt. It fetches from the upstream and
// returns the already-normalized result, or an error describing why this
// attempt cannot produce one. A single attempt is never retried internally
type RunFunc func(ctx context.Context, r ref.Reference) (any, error)

// Strategy is one declarative resolution method. Immutable after registration
type Strategy struct {
	Name     string
	Kind     StrategyKind
	RefKind  ref.Kind
	Priority int
	Timeout  time.Duration
	Run      RunFunc
}

// Attempt records why one strategy failed, in attempt order
type Attempt struct {
	Strategy string `json:"strategy"`
	Reason   string `json:"reason"`
}

// Outcome is the resolver's return value: a result from the first strategy
// that succeeded plus the failures that preceded it, or no result and one
// attempt per tried strategy. Built fresh per request, never cached
type Outcome struct {
	// Result is the normalized value produced by the winning strategy,
	// nil when resolution exhausted every strategy
	Result any
	// Source names the winning strategy
	Source string
	// Attempts lists the failures recorded before the winner, or all of
	// them when resolution failed
	Attempts []Attempt
}

// OK reports whether resolution produced a result
func (o Outcome) OK() bool { return o.Result != nil }

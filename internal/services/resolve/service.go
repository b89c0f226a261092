package resolve

import (
	"context"
	"strings"

	perr "tunepipe/internal/platform/errors"
	"tunepipe/internal/platform/logger"

	"tunepipe/internal/core/ref"
)

// Service walks the registered strategies for a reference, strictly in
// priority order, and returns the first normalized result. One resolution is
// one pass over the table: no retries, no reordering, no concurrency
type Service struct {
	reg *Registry
	log logger.Logger
}

// New builds a resolver over a registry
func New(reg *Registry, log logger.Logger) *Service {
	return &Service{reg: reg, log: log.With().Str("component", "resolve").Logger()}
}

// Resolve tries each strategy for the reference's kind until one succeeds.
// A strategy failure (upstream error, malformed payload, normalization miss)
// is recorded and the next strategy runs under a fresh per-attempt deadline.
// When every strategy fails the returned error carries one reason per
// strategy, in attempt order. Cancellation of ctx stops the walk
func (s *Service) Resolve(ctx context.Context, r ref.Reference) (Outcome, error) {
	strategies := s.reg.Strategies(r.Kind())
	if len(strategies) == 0 {
		return Outcome{}, perr.Exhaustedf("no strategies registered for kind %q", r.Kind())
	}

	attempts := make([]Attempt, 0, len(strategies))
	for _, st := range strategies {
		if err := ctx.Err(); err != nil {
			return Outcome{Attempts: attempts}, perr.Upstreamf("resolution cancelled: %v", err)
		}

		res, err := s.attempt(ctx, st, r)
		if err == nil {
			s.log.Debug().
				Str("strategy", st.Name).
				Str("kind", string(r.Kind())).
				Int("failed_before", len(attempts)).
				Msg("reference resolved")
			return Outcome{Result: res, Source: st.Name, Attempts: attempts}, nil
		}

		reason := perr.WireFrom(err).Message
		attempts = append(attempts, Attempt{Strategy: st.Name, Reason: reason})
		s.log.Warn().
			Str("strategy", st.Name).
			Str("kind", string(r.Kind())).
			Str("reason", reason).
			Msg("strategy failed, falling through")
	}

	return Outcome{Attempts: attempts}, exhausted(attempts)
}

// attempt runs one strategy under its own deadline. A nil result with a nil
// error is normalized into a failure so the walk can continue
func (s *Service) attempt(ctx context.Context, st Strategy, r ref.Reference) (any, error) {
	actx, cancel := context.WithTimeout(ctx, st.Timeout)
	defer cancel()

	res, err := st.Run(actx, r)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, perr.Upstreamf("strategy %q returned no result", st.Name)
	}
	return res, nil
}

func exhausted(attempts []Attempt) error {
	var b strings.Builder
	for i, a := range attempts {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(a.Strategy)
		b.WriteString(": ")
		b.WriteString(a.Reason)
	}
	return perr.Exhaustedf("all strategies failed: %s", b.String())
}

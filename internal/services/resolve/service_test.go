package resolve

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	perr "tunepipe/internal/platform/errors"
	"tunepipe/internal/platform/logger"

	"tunepipe/internal/core/ref"

	"github.com/rs/zerolog"
)

func testLogger() logger.Logger { return zerolog.New(io.Discard) }

func strat(name string, prio int, run RunFunc) Strategy {
	return Strategy{Name: name, Kind: KindAPI, RefKind: ref.KindVideo, Priority: prio, Run: run}
}

func TestResolve_FirstSuccessShortCircuits(t *testing.T) {
	t.Parallel()

	var secondRan bool
	svc := New(MustRegistry(
		strat("primary", 1, func(context.Context, ref.Reference) (any, error) { return "hit", nil }),
		strat("mirror", 2, func(context.Context, ref.Reference) (any, error) {
			secondRan = true
			return "late", nil
		}),
	), testLogger())

	out, err := svc.Resolve(context.Background(), ref.Video{ID: "ArkDQvI_OPE"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if out.Result != "hit" || out.Source != "primary" {
		t.Fatalf("out = %+v, want result from primary", out)
	}
	if len(out.Attempts) != 0 {
		t.Fatalf("attempts = %+v, want none", out.Attempts)
	}
	if secondRan {
		t.Fatalf("mirror ran after primary succeeded")
	}
}

func TestResolve_FallsThroughToNextStrategy(t *testing.T) {
	t.Parallel()

	svc := New(MustRegistry(
		strat("primary", 1, func(context.Context, ref.Reference) (any, error) {
			return nil, perr.Upstreamf("primary response malformed")
		}),
		strat("mirror", 2, func(context.Context, ref.Reference) (any, error) { return "hit", nil }),
	), testLogger())

	out, err := svc.Resolve(context.Background(), ref.Video{ID: "ArkDQvI_OPE"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if out.Source != "mirror" {
		t.Fatalf("source = %q, want mirror", out.Source)
	}
	if len(out.Attempts) != 1 || out.Attempts[0].Strategy != "primary" {
		t.Fatalf("attempts = %+v, want one primary failure", out.Attempts)
	}
	if !strings.Contains(out.Attempts[0].Reason, "malformed") {
		t.Fatalf("reason = %q, want the strategy's own failure text", out.Attempts[0].Reason)
	}
}

func TestResolve_ExhaustionRecordsEveryAttemptInOrder(t *testing.T) {
	t.Parallel()

	fail := func(msg string) RunFunc {
		return func(context.Context, ref.Reference) (any, error) { return nil, perr.Upstreamf("%s", msg) }
	}
	svc := New(MustRegistry(
		strat("primary", 1, fail("primary down")),
		strat("mirror", 2, fail("mirror down")),
		strat("scrape", 3, fail("page changed")),
	), testLogger())

	out, err := svc.Resolve(context.Background(), ref.Video{ID: "ArkDQvI_OPE"})
	if err == nil {
		t.Fatalf("expected exhaustion error")
	}
	if !perr.IsCode(err, perr.ErrorCodeExhausted) {
		t.Fatalf("code = %v, want exhausted", perr.CodeOf(err))
	}
	if out.OK() {
		t.Fatalf("outcome reports success: %+v", out)
	}
	want := []string{"primary", "mirror", "scrape"}
	if len(out.Attempts) != len(want) {
		t.Fatalf("attempts = %d, want %d", len(out.Attempts), len(want))
	}
	for i, name := range want {
		if out.Attempts[i].Strategy != name {
			t.Fatalf("attempt %d = %q, want %q", i, out.Attempts[i].Strategy, name)
		}
	}
	// Aggregate message names each strategy with its reason
	for _, frag := range []string{"primary: primary down", "mirror: mirror down", "scrape: page changed"} {
		if !strings.Contains(err.Error(), frag) {
			t.Fatalf("error %q missing %q", err.Error(), frag)
		}
	}
}

func TestResolve_NilResultCountsAsFailure(t *testing.T) {
	t.Parallel()

	svc := New(MustRegistry(
		strat("primary", 1, func(context.Context, ref.Reference) (any, error) { return nil, nil }),
		strat("mirror", 2, func(context.Context, ref.Reference) (any, error) { return "hit", nil }),
	), testLogger())

	out, err := svc.Resolve(context.Background(), ref.Video{ID: "ArkDQvI_OPE"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if out.Source != "mirror" || len(out.Attempts) != 1 {
		t.Fatalf("out = %+v, want fall-through past nil result", out)
	}
}

func TestResolve_PerStrategyTimeoutIsIndependent(t *testing.T) {
	t.Parallel()

	slow := Strategy{
		Name: "slow", Kind: KindAPI, RefKind: ref.KindVideo, Priority: 1,
		Timeout: 20 * time.Millisecond,
		Run: func(ctx context.Context, _ ref.Reference) (any, error) {
			<-ctx.Done()
			return nil, perr.Upstreamf("deadline: %v", ctx.Err())
		},
	}
	svc := New(MustRegistry(
		slow,
		strat("fast", 2, func(ctx context.Context, _ ref.Reference) (any, error) {
			// A fresh deadline, not the leftovers of the slow attempt
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return "hit", nil
		}),
	), testLogger())

	out, err := svc.Resolve(context.Background(), ref.Video{ID: "ArkDQvI_OPE"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if out.Source != "fast" {
		t.Fatalf("source = %q, want fast", out.Source)
	}
}

func TestResolve_CancelledContextStopsWalk(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran bool
	svc := New(MustRegistry(
		strat("primary", 1, func(context.Context, ref.Reference) (any, error) {
			ran = true
			return "hit", nil
		}),
	), testLogger())

	if _, err := svc.Resolve(ctx, ref.Video{ID: "ArkDQvI_OPE"}); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
	if ran {
		t.Fatalf("strategy ran under a cancelled context")
	}
}

func TestResolve_NoStrategiesForKind(t *testing.T) {
	t.Parallel()

	svc := New(MustRegistry(
		strat("primary", 1, func(context.Context, ref.Reference) (any, error) { return "hit", nil }),
	), testLogger())

	_, err := svc.Resolve(context.Background(), ref.Search{Query: "dune", Page: 1})
	if !perr.IsCode(err, perr.ErrorCodeExhausted) {
		t.Fatalf("err = %v, want exhausted", err)
	}
}

func TestResolve_HardErrorStillFallsThrough(t *testing.T) {
	t.Parallel()

	svc := New(MustRegistry(
		strat("primary", 1, func(context.Context, ref.Reference) (any, error) {
			return nil, errors.New("connection refused")
		}),
		strat("mirror", 2, func(context.Context, ref.Reference) (any, error) { return "hit", nil }),
	), testLogger())

	out, err := svc.Resolve(context.Background(), ref.Video{ID: "ArkDQvI_OPE"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if out.Source != "mirror" {
		t.Fatalf("source = %q, want mirror", out.Source)
	}
}

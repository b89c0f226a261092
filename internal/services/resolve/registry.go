package resolve

import (
	"sort"
	"time"

	perr "tunepipe/internal/platform/errors"

	"tunepipe/internal/core/ref"
)

// DefaultTimeout bounds a single strategy attempt when the strategy does not
// declare its own
const DefaultTimeout = 12 * time.Second

// Registry holds the declared strategies grouped by reference kind, sorted
// ascending by priority. Read-only after construction
type Registry struct {
	byKind map[ref.Kind][]Strategy
}

// NewRegistry validates and indexes the given strategies.
// Within one reference kind every priority must be unique; a strategy must
// carry a name and a run function. Zero timeouts get DefaultTimeout
func NewRegistry(strategies ...Strategy) (*Registry, error) {
	byKind := make(map[ref.Kind][]Strategy, 3)
	seen := make(map[ref.Kind]map[int]string, 3)

	for _, s := range strategies {
		if s.Name == "" {
			return nil, perr.InvalidArgf("strategy with empty name")
		}
		if s.Run == nil {
			return nil, perr.InvalidArgf("strategy %q has no run function", s.Name)
		}
		if s.Timeout <= 0 {
			s.Timeout = DefaultTimeout
		}
		if seen[s.RefKind] == nil {
			seen[s.RefKind] = make(map[int]string, 4)
		}
		if prev, dup := seen[s.RefKind][s.Priority]; dup {
			return nil, perr.InvalidArgf("strategies %q and %q share priority %d for kind %q", prev, s.Name, s.Priority, s.RefKind)
		}
		seen[s.RefKind][s.Priority] = s.Name
		byKind[s.RefKind] = append(byKind[s.RefKind], s)
	}

	for k := range byKind {
		sort.Slice(byKind[k], func(i, j int) bool { return byKind[k][i].Priority < byKind[k][j].Priority })
	}
	return &Registry{byKind: byKind}, nil
}

// MustRegistry is NewRegistry for wiring paths where a bad table is a
// programming error
func MustRegistry(strategies ...Strategy) *Registry {
	g, err := NewRegistry(strategies...)
	if err != nil {
		panic(err)
	}
	return g
}

// Strategies returns the ordered strategies for a reference kind.
// The slice is a copy; callers cannot mutate the registry through it
func (g *Registry) Strategies(k ref.Kind) []Strategy {
	src := g.byKind[k]
	if len(src) == 0 {
		return nil
	}
	out := make([]Strategy, len(src))
	copy(out, src)
	return out
}

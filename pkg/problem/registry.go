package problem

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/arbor/pkg/domain"
)

// Config carries the run options shared by every kind.
type Config struct {
	// Context aborts the search between expansions. Nil means never.
	Context context.Context
	// MaxExpansions caps the expanded states of one search. Zero means no cap.
	MaxExpansions     int
	Logger            *slog.Logger
	Hooks             domain.SearchHooks
	IncludeFrontier   bool
	IncludeUnexplored bool
}

// Kind solves the problems of one state type.
type Kind interface {
	// Name is the value of the kind field in problem files.
	Name() string
	// Heuristics lists the accepted heuristic names, default first.
	Heuristics() []string
	// Solve runs the search described by d.
	Solve(d Definition, cfg Config) (*Report, error)
}

// Registry manages the available kinds.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]Kind
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		kinds: make(map[string]Kind),
	}
}

// DefaultRegistry returns a registry holding the built-in kinds.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(TaquinKind{})
	r.Register(BlocksKind{})
	return r
}

// Register adds a kind to the registry.
// If a kind with the same name exists, it is overwritten.
func (r *Registry) Register(k Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[k.Name()] = k
}

// Lookup returns the kind registered under name.
func (r *Registry) Lookup(name string) (Kind, error) {
	r.mu.RLock()
	k, ok := r.kinds[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, name)
	}
	return k, nil
}

// Names returns the registered kind names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Solve looks up the kind of d and runs it.
func (r *Registry) Solve(d Definition, cfg Config) (*Report, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	k, err := r.Lookup(d.Kind)
	if err != nil {
		return nil, err
	}
	return k.Solve(d, cfg)
}

package reduction

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownStrategy is returned when a strategy name is not registered.
var ErrUnknownStrategy = errors.New("unknown reduction strategy")

// Registry maps names to strategies. It is safe for concurrent use.
//
// A strategy may be registered under several names (aliases); the canonical
// name of an entry is the one equal to the strategy's own Name().
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{strategies: make(map[string]Strategy)}
}

// NewDefaultRegistry creates a registry with the built-in strategies:
// "sum", "product" and its alias "multiply".
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister("sum", Sum{})
	r.MustRegister("product", Product{})
	r.MustRegister("multiply", Product{})
	return r
}

var globalRegistry = NewDefaultRegistry()

// GlobalRegistry returns the process-wide registry of built-in strategies.
func GlobalRegistry() *Registry {
	return globalRegistry
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds a strategy under the given name, replacing any previous entry.
//
// Parameters:
//   - name: The lookup name (case-insensitive).
//   - s: The strategy implementation.
//
// Returns:
//   - error: An error if the name is empty or the strategy is nil.
func (r *Registry) Register(name string, s Strategy) error {
	key := normalizeName(name)
	if key == "" {
		return errors.New("strategy name must not be empty")
	}
	if s == nil {
		return fmt.Errorf("strategy %q must not be nil", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[key] = s
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, s Strategy) {
	if err := r.Register(name, s); err != nil {
		panic(err)
	}
}

// Get looks up a strategy by name. Lookup ignores case and surrounding spaces.
func (r *Registry) Get(name string) (Strategy, error) {
	key := normalizeName(name)

	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.strategies[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return s, nil
}

// MustGet is like Get but panics if the strategy is not registered.
func (r *Registry) MustGet(name string) Strategy {
	s, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return s
}

// List returns every registered name, aliases included, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Canonical returns the sorted names whose strategy reports the same Name(),
// i.e. the registry without aliases.
func (r *Registry) Canonical() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.strategies))
	for name, s := range r.strategies {
		if s.Name() == name {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

package plugin

import (
	"fmt"
	"sort"
	"sync"
)

// DefaultPriority is the default priority for registrations.
// Higher priority registrations are listed first.
const DefaultPriority = 100

// Factory returns a fresh descriptor on every call.
type Factory func() Descriptor

// Registration describes a plugin the registry can instantiate.
type Registration struct {
	// ID is the capability id the descriptor is registered under.
	ID ID
	// New builds the descriptor.
	New Factory
	// Priority orders Registrations(); zero means DefaultPriority.
	Priority int
}

func (r Registration) priority() int {
	if r.Priority == 0 {
		return DefaultPriority
	}
	return r.Priority
}

// Registry maps capability ids to descriptor factories.
type Registry struct {
	mu      sync.RWMutex
	entries []Registration
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds reg to the registry, replacing any registration with the same id.
func (r *Registry) Register(reg Registration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e.ID == reg.ID {
			r.entries[i] = reg
			r.sortByPriority()
			return
		}
	}
	r.entries = append(r.entries, reg)
	r.sortByPriority()
}

func (r *Registry) sortByPriority() {
	sort.SliceStable(r.entries, func(i, j int) bool {
		return r.entries[i].priority() > r.entries[j].priority()
	})
}

// New instantiates the descriptor registered under id.
func (r *Registry) New(id ID) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if e.ID == id && e.New != nil {
			return e.New(), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownPlugin, id)
}

// Spec instantiates the descriptor registered under id as a Spec.
func (r *Registry) Spec(id ID) (Spec, error) {
	d, err := r.New(id)
	if err != nil {
		return Spec{}, err
	}
	return Plugin(d...), nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id ID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

// Registrations returns a copy of all registrations, highest priority first.
func (r *Registry) Registrations() []Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]Registration, len(r.entries))
	copy(result, r.entries)
	return result
}

// Clear removes all registrations.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}

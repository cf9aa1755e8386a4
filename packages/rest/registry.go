package rest

import (
	"fmt"
	"slices"
	"sync"

	"github.com/abdul-hamid-achik/expectspec/packages/wiring"
)

// Registration is what a provider contributes to client assembly.
type Registration struct {
	ID       string
	Binding  Binding
	Overlays []wiring.Overlay
}

// Registry stores and manages provider registrations.
type Registry struct {
	mu   sync.RWMutex
	data map[string]Registration
}

// NewRegistry returns a new, empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		data: make(map[string]Registration),
	}
}

// Register adds one or more providers. It panics if any id is duplicated.
func (r *Registry) Register(regs ...Registration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, reg := range regs {
		if _, exists := r.data[reg.ID]; exists {
			panic("provider already registered: " + reg.ID)
		}
		r.data[reg.ID] = reg
	}
}

// Lookup returns the registration with the given id, if found.
func (r *Registry) Lookup(id string) (Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.data[id]
	return reg, ok
}

// Names returns a sorted list of all registered provider ids.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.data))
	for name := range r.data {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// UnknownProviderError is returned when a provider id is not registered.
type UnknownProviderError struct {
	Provider string
	Known    []string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider %q; registered providers: %v", e.Provider, e.Known)
}

package backend

import (
	"fmt"
	"sort"
	"sync"

	"github.com/agentpipe/agentpipe/config"
	"github.com/agentpipe/agentpipe/core"
)

// Factory builds a handle for one agent spec. Factories receive the full
// spec so they can honor per-agent model settings; credentials are captured
// in the factory closure by the caller.
type Factory func(spec config.AgentSpec) (core.Handle, error)

// Registry maps backend kinds to handle factories. Safe for concurrent use;
// registration normally happens once at startup.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry constructs an empty backend registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for the given backend kind, replacing any previous
// registration.
func (r *Registry) Register(kind string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = f
}

// New builds a handle for spec using the factory registered for its backend
// kind.
func (r *Registry) New(spec config.AgentSpec) (core.Handle, error) {
	r.mu.RLock()
	f, ok := r.factories[spec.Backend]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown backend %q for agent %q (registered: %v)", spec.Backend, spec.Name, r.Kinds())
	}
	return f(spec)
}

// Kinds returns all registered backend kinds in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

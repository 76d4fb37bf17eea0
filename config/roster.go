package config

import (
	"fmt"
	"sort"
)

// Roster is the set of agent specs available to pipeline runs, keyed by
// unique agent name. It is populated at configuration-load time and read-only
// afterwards, so concurrent runs may resolve against it without locking.
type Roster struct {
	agents map[string]AgentSpec
}

// NewRoster builds a roster from the given specs, rejecting duplicate names.
func NewRoster(specs ...AgentSpec) (*Roster, error) {
	r := &Roster{agents: make(map[string]AgentSpec, len(specs))}
	for _, spec := range specs {
		if err := r.Add(spec); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add registers a spec, applying defaults and validating it. Names must be
// unique within the roster.
func (r *Roster) Add(spec AgentSpec) error {
	if spec.Name == "" {
		return fmt.Errorf("roster: agent name must be non-empty")
	}
	if _, exists := r.agents[spec.Name]; exists {
		return fmt.Errorf("roster: duplicate agent name %q", spec.Name)
	}
	spec.ApplyDefaults()
	if err := spec.Validate(); err != nil {
		return err
	}
	r.agents[spec.Name] = spec
	return nil
}

// Get returns the spec registered under name.
func (r *Roster) Get(name string) (AgentSpec, bool) {
	spec, ok := r.agents[name]
	return spec, ok
}

// Names returns all registered agent names in sorted order.
func (r *Roster) Names() []string {
	names := make([]string, 0, len(r.agents))
	for name := range r.agents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered agents.
func (r *Roster) Len() int { return len(r.agents) }

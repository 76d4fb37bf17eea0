// Package config defines the static description of agents and pipelines and
// loads them from YAML or JSON files. Specs are validated once at load time
// and are read-only thereafter; many concurrent runs may share them without
// locking.
package config

import (
	"fmt"
	"strings"
)

// Strategy selects the turn-taking algorithm governing a pipeline run.
type Strategy string

const (
	// StrategySequential chains agents: each agent's output becomes the next
	// agent's input.
	StrategySequential Strategy = "sequential"
	// StrategyGroupChat has every roster agent respond to the evolving
	// transcript in round-robin order.
	StrategyGroupChat Strategy = "group_chat"
	// StrategySupervisor has a designated agent route the task to one
	// specialist by name.
	StrategySupervisor Strategy = "supervisor"
)

// Valid reports whether s names a known strategy.
func (s Strategy) Valid() bool {
	switch s {
	case StrategySequential, StrategyGroupChat, StrategySupervisor:
		return true
	}
	return false
}

// LLMSpec holds model connection settings for one agent. API keys are never
// read here; APIKeyEnv names the environment variable the caller resolves
// and passes into backend construction explicitly.
type LLMSpec struct {
	Model       string  `yaml:"model" json:"model"`
	APIKeyEnv   string  `yaml:"api_key_env" json:"api_key_env"`
	BaseURL     string  `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	Temperature float64 `yaml:"temperature" json:"temperature"`
	MaxTokens   int     `yaml:"max_tokens,omitempty" json:"max_tokens,omitempty"`
}

// ToolSpec references a tool by registry name and optionally overrides the
// description shown to the model.
type ToolSpec struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// AgentSpec is the full static description of one agent. Immutable once
// loaded; referenced by name from pipeline definitions.
type AgentSpec struct {
	Name         string     `yaml:"name" json:"name"`
	Backend      string     `yaml:"backend" json:"backend"`
	Instructions string     `yaml:"instructions" json:"instructions"`
	LLM          LLMSpec    `yaml:"llm" json:"llm"`
	Tools        []ToolSpec `yaml:"tools,omitempty" json:"tools,omitempty"`
	HumanInput   bool       `yaml:"human_input,omitempty" json:"human_input,omitempty"`
	MaxTurns     int        `yaml:"max_turns" json:"max_turns"`
}

// Summary returns the first line of the agent's instructions, used when
// presenting specialists to a supervisor.
func (s AgentSpec) Summary() string {
	line, _, _ := strings.Cut(strings.TrimSpace(s.Instructions), "\n")
	return line
}

// PipelineSpec is a named composition of agents plus a coordination strategy.
// Agent order matters for the sequential strategy and fixes the round-robin
// order for group chat.
type PipelineSpec struct {
	Name            string   `yaml:"name" json:"name"`
	Agents          []string `yaml:"agents" json:"agents"`
	Strategy        Strategy `yaml:"strategy" json:"strategy"`
	MaxRounds       int      `yaml:"max_rounds" json:"max_rounds"`
	SupervisorAgent string   `yaml:"supervisor_agent,omitempty" json:"supervisor_agent,omitempty"`
	// DoneSentinel opts the supervisor strategy into multi-round routing:
	// when set, the supervisor is re-consulted each round until its reply
	// equals the sentinel or MaxRounds consultations have happened. When
	// empty the supervisor runs single-shot.
	DoneSentinel string `yaml:"done_sentinel,omitempty" json:"done_sentinel,omitempty"`
}

const (
	defaultModel       = "gpt-4o-mini"
	defaultAPIKeyEnv   = "OPENAI_API_KEY"
	defaultTemperature = 0.1
	defaultBackend     = "openai"

	// DefaultMaxTurns bounds the tool-calling loop of a single invocation.
	DefaultMaxTurns = 10
	// DefaultMaxRounds bounds group chat rounds and supervisor consultations.
	DefaultMaxRounds = 10
)

// ApplyDefaults fills unset fields with the documented defaults. The loaders
// call it automatically; specs constructed in code go through Roster.Add,
// which does the same.
func (s *AgentSpec) ApplyDefaults() {
	if s.Backend == "" {
		s.Backend = defaultBackend
	}
	if s.LLM.Model == "" {
		s.LLM.Model = defaultModel
	}
	if s.LLM.APIKeyEnv == "" {
		s.LLM.APIKeyEnv = defaultAPIKeyEnv
	}
	if s.LLM.Temperature == 0 {
		s.LLM.Temperature = defaultTemperature
	}
	if s.MaxTurns == 0 {
		s.MaxTurns = DefaultMaxTurns
	}
}

// ApplyDefaults fills unset fields with the documented defaults.
func (p *PipelineSpec) ApplyDefaults() {
	if p.Strategy == "" {
		p.Strategy = StrategySequential
	}
	if p.MaxRounds == 0 {
		p.MaxRounds = DefaultMaxRounds
	}
}

// Validate checks the spec for internal consistency. Called automatically by
// the loaders; exported for specs constructed in code.
func (s AgentSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("agent spec: name is required")
	}
	if s.Instructions == "" {
		return fmt.Errorf("agent %q: instructions are required", s.Name)
	}
	if s.MaxTurns < 1 {
		return fmt.Errorf("agent %q: max_turns must be positive, got %d", s.Name, s.MaxTurns)
	}
	if s.LLM.Temperature < 0 || s.LLM.Temperature > 2 {
		return fmt.Errorf("agent %q: temperature must be in [0, 2], got %v", s.Name, s.LLM.Temperature)
	}
	for _, t := range s.Tools {
		if t.Name == "" {
			return fmt.Errorf("agent %q: tool entries require a name", s.Name)
		}
	}
	return nil
}

// Validate checks the pipeline definition for internal consistency. Roster
// resolution (every listed agent exists) happens later in the engine, since
// the roster is supplied per run.
func (p PipelineSpec) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("pipeline spec: name is required")
	}
	if len(p.Agents) == 0 {
		return fmt.Errorf("pipeline %q: agents must be non-empty", p.Name)
	}
	if !p.Strategy.Valid() {
		return fmt.Errorf("pipeline %q: unknown strategy %q", p.Name, p.Strategy)
	}
	if p.MaxRounds < 1 {
		return fmt.Errorf("pipeline %q: max_rounds must be positive, got %d", p.Name, p.MaxRounds)
	}
	seen := map[string]bool{}
	for _, name := range p.Agents {
		if name == "" {
			return fmt.Errorf("pipeline %q: agent names must be non-empty", p.Name)
		}
		if seen[name] {
			return fmt.Errorf("pipeline %q: duplicate agent %q", p.Name, name)
		}
		seen[name] = true
	}
	if p.Strategy == StrategySupervisor {
		if p.SupervisorAgent == "" {
			return fmt.Errorf("pipeline %q: supervisor_agent must be set for the supervisor strategy", p.Name)
		}
		if !seen[p.SupervisorAgent] {
			return fmt.Errorf("pipeline %q: supervisor_agent %q is not in the agent list", p.Name, p.SupervisorAgent)
		}
		if len(p.Agents) < 2 {
			return fmt.Errorf("pipeline %q: supervisor strategy needs at least one specialist besides %q", p.Name, p.SupervisorAgent)
		}
	}
	return nil
}

// Package agentpipe provides a high-level façade over the pipeline engine,
// backend registry and tool registry, enabling concise construction of
// multi-agent conversational pipelines. Most applications interact with this
// package by:
//  1. Creating an AgentPipe via New() (optionally overriding tools, backends
//     and logging)
//  2. Loading agent and pipeline specs from YAML (or building them in code)
//  3. Executing pipelines with Run, or a single agent with RunAgent
//
// The façade delegates orchestration to engine.Engine while keeping setup
// ergonomics terse. The zero-configuration default registers the "openai"
// and "anthropic" backends with API keys resolved from the environment
// variables the agent specs name.
package agentpipe

import (
	"context"
	"fmt"
	"os"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"

	"github.com/agentpipe/agentpipe/backend"
	"github.com/agentpipe/agentpipe/config"
	"github.com/agentpipe/agentpipe/core"
	"github.com/agentpipe/agentpipe/engine"
	"github.com/agentpipe/agentpipe/logging"
	"github.com/agentpipe/agentpipe/model"
	"github.com/agentpipe/agentpipe/model/anthropic"
	"github.com/agentpipe/agentpipe/model/openai"
	"github.com/agentpipe/agentpipe/strategy"
	"github.com/agentpipe/agentpipe/tool"
)

// Options configures the AgentPipe instance.
type Options struct {
	// Tools resolves the tool names agent specs declare. Defaults to the
	// builtin registry (fetch_page).
	Tools *tool.Registry

	// GroupChatTermination optionally completes group chat pipelines before
	// the round budget is spent.
	GroupChatTermination strategy.TerminationPredicate

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// AgentPipe is the high-level façade aggregating the engine and registries.
type AgentPipe struct {
	opts     Options
	backends *backend.Registry
	engine   *engine.Engine
}

// New creates an AgentPipe with the default model backends registered.
func New(optFns ...func(o *Options)) *AgentPipe {
	opts := Options{
		Tools:  tool.Builtin(),
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	backends := backend.NewRegistry()
	p := &AgentPipe{opts: opts, backends: backends}
	backends.Register("openai", p.openAIFactory)
	backends.Register("anthropic", p.anthropicFactory)

	p.engine = engine.New(backends, func(o *engine.Options) {
		o.GroupChatTermination = opts.GroupChatTermination
		o.Logger = opts.Logger
	})
	return p
}

// RegisterBackend adds or replaces a backend kind. Tests register stub
// backends this way; applications can add self-hosted providers.
func (p *AgentPipe) RegisterBackend(kind string, f backend.Factory) {
	p.backends.Register(kind, f)
}

// Run executes a pipeline against a roster of agent specs.
func (p *AgentPipe) Run(ctx context.Context, pipe config.PipelineSpec, roster *config.Roster, task string) (*core.RunResult, error) {
	return p.engine.Run(ctx, pipe, roster, task)
}

// RunAgent invokes a single agent with one message, outside any pipeline.
// The message is the sole user turn the agent sees.
func (p *AgentPipe) RunAgent(ctx context.Context, spec config.AgentSpec, message string) (*core.RunResult, error) {
	roster, err := config.NewRoster(spec)
	if err != nil {
		return nil, err
	}
	pipe := config.PipelineSpec{
		Name:      spec.Name,
		Agents:    []string{spec.Name},
		Strategy:  config.StrategySequential,
		MaxRounds: config.DefaultMaxRounds,
	}
	return p.engine.Run(ctx, pipe, roster, message)
}

func (p *AgentPipe) openAIFactory(spec config.AgentSpec) (core.Handle, error) {
	key, err := resolveAPIKey(spec)
	if err != nil {
		return nil, err
	}
	m := openai.NewModel(func(o *openai.Options) {
		o.Model = spec.LLM.Model
		o.Temperature = spec.LLM.Temperature
		if spec.LLM.MaxTokens > 0 {
			o.MaxCompletionTokens = int64(spec.LLM.MaxTokens)
		}
		o.APIKey = key
		o.BaseURL = spec.LLM.BaseURL
	})
	return p.newModelHandle(spec, m)
}

func (p *AgentPipe) anthropicFactory(spec config.AgentSpec) (core.Handle, error) {
	key, err := resolveAPIKey(spec)
	if err != nil {
		return nil, err
	}
	m := anthropic.NewModel(func(o *anthropic.Options) {
		o.Model = anthropicsdk.Model(spec.LLM.Model)
		o.Temperature = spec.LLM.Temperature
		if spec.LLM.MaxTokens > 0 {
			o.MaxTokens = int64(spec.LLM.MaxTokens)
		}
		o.APIKey = key
	})
	return p.newModelHandle(spec, m)
}

func (p *AgentPipe) newModelHandle(spec config.AgentSpec, m model.Model) (core.Handle, error) {
	return backend.NewModelHandle(spec, m, func(o *backend.ModelHandleOptions) {
		o.Tools = p.opts.Tools
		o.Logger = p.opts.Logger
	})
}

// resolveAPIKey reads the key from the env var the spec names. Key material
// is resolved here, at construction, and never inside orchestration.
func resolveAPIKey(spec config.AgentSpec) (string, error) {
	key := os.Getenv(spec.LLM.APIKeyEnv)
	if key == "" {
		return "", fmt.Errorf("agent %q: environment variable %s is not set", spec.Name, spec.LLM.APIKeyEnv)
	}
	return key, nil
}

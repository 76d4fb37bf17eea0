package engine

import (
	"context"
	"fmt"

	"github.com/agentpipe/agentpipe/backend"
	"github.com/agentpipe/agentpipe/config"
	"github.com/agentpipe/agentpipe/core"
	"github.com/agentpipe/agentpipe/logging"
	"github.com/agentpipe/agentpipe/strategy"
)

// Options configures an Engine.
type Options struct {
	// GroupChatTermination, when set, is handed to the group chat strategy
	// so runs can complete before the round budget is spent. Nil leaves
	// group chats bounded only by max_rounds.
	GroupChatTermination strategy.TerminationPredicate

	// Logger receives run lifecycle events. Defaults to logging.NoOpLogger.
	Logger logging.Logger
}

// Engine resolves pipeline definitions and executes them.
type Engine struct {
	backends  *backend.Registry
	terminate strategy.TerminationPredicate
	logger    logging.Logger
}

// New creates an Engine over the given backend registry.
func New(backends *backend.Registry, optFns ...func(o *Options)) *Engine {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Engine{
		backends:  backends,
		terminate: opts.GroupChatTermination,
		logger:    opts.Logger,
	}
}

// Run executes the pipeline against the roster. Every agent the pipeline
// names is resolved and its handle constructed before any invocation, so a
// misconfigured pipeline returns a *ConfigError without side effects. A
// started run always returns a non-nil result whose Reason says how it
// ended; the error return is reserved for configuration problems.
//
// Each call uses a fresh conversation, so concurrent and repeated runs of
// the same pipeline are independent.
func (e *Engine) Run(ctx context.Context, pipe config.PipelineSpec, roster *config.Roster, task string) (*core.RunResult, error) {
	pipe.ApplyDefaults()
	if err := pipe.Validate(); err != nil {
		return nil, &ConfigError{Pipeline: pipe.Name, Err: err}
	}
	if roster == nil {
		return nil, configErr(pipe.Name, "roster is required")
	}

	handles := make([]core.Handle, 0, len(pipe.Agents))
	for _, name := range pipe.Agents {
		spec, ok := roster.Get(name)
		if !ok {
			return nil, configErr(pipe.Name, "agent %q is not in the roster", name)
		}
		h, err := e.backends.New(spec)
		if err != nil {
			return nil, &ConfigError{Pipeline: pipe.Name, Err: fmt.Errorf("agent %q: %w", name, err)}
		}
		handles = append(handles, h)
	}

	strat := e.strategyFor(pipe)
	e.logger.Info("pipeline run starting", "pipeline", pipe.Name, "strategy", strat.Name(), "agents", len(handles))

	conv := core.NewConversation()
	out := strat.Run(ctx, task, handles, conv)

	e.logger.Info("pipeline run finished", "pipeline", pipe.Name, "reason", out.Reason.String(), "turns", conv.Len())
	return &core.RunResult{
		Content:      out.Content,
		AgentName:    out.AgentName,
		Reason:       out.Reason,
		Conversation: conv,
	}, nil
}

func (e *Engine) strategyFor(pipe config.PipelineSpec) strategy.Strategy {
	switch pipe.Strategy {
	case config.StrategyGroupChat:
		return strategy.NewGroupChat(func(o *strategy.GroupChatOptions) {
			o.MaxRounds = pipe.MaxRounds
			o.Terminate = e.terminate
			o.Logger = e.logger
		})
	case config.StrategySupervisor:
		return strategy.NewSupervisor(pipe.SupervisorAgent, func(o *strategy.SupervisorOptions) {
			o.MaxRounds = pipe.MaxRounds
			o.DoneSentinel = pipe.DoneSentinel
			o.Logger = e.logger
		})
	default:
		return strategy.NewSequential(func(o *strategy.SequentialOptions) {
			o.Logger = e.logger
		})
	}
}

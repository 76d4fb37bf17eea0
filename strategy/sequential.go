package strategy

import (
	"context"

	"github.com/agentpipe/agentpipe/core"
	"github.com/agentpipe/agentpipe/logging"
)

// SequentialOptions configures a Sequential strategy.
type SequentialOptions struct {
	Logger logging.Logger
}

// Sequential chains agents: the task feeds the first agent, each agent's
// output feeds the next, and the final agent's output is the run's content.
// Each agent sees only the latest message, never the accumulated transcript.
type Sequential struct {
	logger logging.Logger
}

// NewSequential creates the sequential chaining strategy.
func NewSequential(optFns ...func(o *SequentialOptions)) *Sequential {
	opts := SequentialOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Sequential{logger: opts.Logger}
}

// Name implements Strategy.
func (s *Sequential) Name() string { return "sequential" }

// Run implements Strategy. The transcript records one turn per agent; the
// task itself is not a turn, it is the first agent's input. On invocation
// failure the run stops immediately with the turns completed so far.
func (s *Sequential) Run(ctx context.Context, task string, roster []core.Handle, conv *core.Conversation) Outcome {
	view := core.Turn{Speaker: core.SpeakerUser, Content: task}

	for _, h := range roster {
		if ctx.Err() != nil {
			return canceled(ctx)
		}

		s.logger.Debug("sequential step", "agent", h.Name())

		reply, err := h.Invoke(ctx, []core.Turn{view})
		if err != nil {
			if ctx.Err() != nil {
				return canceled(ctx)
			}
			s.logger.Error("sequential step failed", "agent", h.Name(), "error", err)
			return failed(err)
		}

		view = conv.Append(h.Name(), reply)
	}

	return Outcome{Content: view.Content, AgentName: view.Speaker, Reason: core.ReasonCompleted}
}

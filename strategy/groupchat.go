package strategy

import (
	"context"

	"github.com/agentpipe/agentpipe/core"
	"github.com/agentpipe/agentpipe/logging"
)

// TerminationPredicate decides, after each turn, whether a group chat has
// reached a terminal utterance. It must be deterministic over the turn it is
// given; the orchestrator never infers "done-ness" from free text on its own.
type TerminationPredicate func(core.Turn) bool

// GroupChatOptions configures a GroupChat strategy.
type GroupChatOptions struct {
	// MaxRounds bounds the run; one round is one pass through every roster
	// agent in declared order.
	MaxRounds int
	// Terminate, when set, is checked after every turn and completes the run
	// early. When nil the chat always runs exactly MaxRounds rounds.
	Terminate TerminationPredicate
	Logger    logging.Logger
}

// GroupChat has every roster agent respond to the evolving transcript in
// fixed round-robin order. The task is the first turn of the transcript and
// every agent sees the full transcript so far.
type GroupChat struct {
	maxRounds int
	terminate TerminationPredicate
	logger    logging.Logger
}

// NewGroupChat creates the round-robin collaboration strategy.
func NewGroupChat(optFns ...func(o *GroupChatOptions)) *GroupChat {
	opts := GroupChatOptions{MaxRounds: 10, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &GroupChat{maxRounds: opts.MaxRounds, terminate: opts.Terminate, logger: opts.Logger}
}

// Name implements Strategy.
func (g *GroupChat) Name() string { return "group_chat" }

// Run implements Strategy. A failed invocation ends the run immediately
// rather than skipping the agent: downstream agents would otherwise reason
// over an incomplete round. Exhausting the round budget is a normal bounded
// outcome (MaxRoundsExceeded), not an error.
func (g *GroupChat) Run(ctx context.Context, task string, roster []core.Handle, conv *core.Conversation) Outcome {
	conv.Append(core.SpeakerUser, task)

	var last core.Turn
	for round := 0; round < g.maxRounds; round++ {
		for _, h := range roster {
			if ctx.Err() != nil {
				return canceled(ctx)
			}

			reply, err := h.Invoke(ctx, conv.Turns())
			if err != nil {
				if ctx.Err() != nil {
					return canceled(ctx)
				}
				g.logger.Error("group chat turn failed", "agent", h.Name(), "round", round+1, "error", err)
				return failed(err)
			}

			last = conv.Append(h.Name(), reply)
			g.logger.Debug("group chat turn", "agent", h.Name(), "round", round+1, "turn", last.Index)

			if g.terminate != nil && g.terminate(last) {
				return Outcome{Content: last.Content, AgentName: last.Speaker, Reason: core.ReasonCompleted}
			}
		}
	}

	return Outcome{Content: last.Content, AgentName: last.Speaker, Reason: core.ReasonMaxRoundsExceeded}
}

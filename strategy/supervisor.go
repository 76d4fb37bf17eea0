package strategy

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentpipe/agentpipe/core"
	"github.com/agentpipe/agentpipe/logging"
)

// SupervisorOptions configures a Supervisor strategy.
type SupervisorOptions struct {
	// MaxRounds bounds supervisor consultations in the multi-round variant.
	// With the default single-shot behavior (no DoneSentinel) only the first
	// consultation ever happens.
	MaxRounds int
	// DoneSentinel opts into multi-round routing: the supervisor is
	// re-consulted after every specialist reply until it answers with the
	// sentinel or MaxRounds consultations have happened. Empty means
	// single-shot.
	DoneSentinel string
	Logger       logging.Logger
}

// Supervisor consults a designated agent whose reply names exactly one
// specialist to hand the task to. The supervisor's raw reply is trimmed and
// matched case-sensitively against roster names excluding the supervisor
// itself; anything else is a terminal RoutingFailed. There is no fallback
// specialist, since silently picking one would mask a misconfigured
// supervisor.
type Supervisor struct {
	supervisorName string
	maxRounds      int
	doneSentinel   string
	logger         logging.Logger
}

// NewSupervisor creates the routing strategy around the named supervisor
// agent. The default is single-shot: one routing decision, one specialist
// reply. Multi-round routing is an explicit opt-in via DoneSentinel.
func NewSupervisor(supervisorName string, optFns ...func(o *SupervisorOptions)) *Supervisor {
	opts := SupervisorOptions{MaxRounds: 1, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.DoneSentinel == "" {
		opts.MaxRounds = 1
	}
	return &Supervisor{
		supervisorName: supervisorName,
		maxRounds:      opts.MaxRounds,
		doneSentinel:   opts.DoneSentinel,
		logger:         opts.Logger,
	}
}

// Name implements Strategy.
func (s *Supervisor) Name() string { return "supervisor" }

// Run implements Strategy. Supervisor and specialist invocation failures
// both end the run with AgentFailed; an unrecognized routing reply ends it
// with RoutingFailed. The two are distinguished because they have different
// root causes (backend execution vs. model output) and different operator
// remedies.
func (s *Supervisor) Run(ctx context.Context, task string, roster []core.Handle, conv *core.Conversation) Outcome {
	var sup core.Handle
	specialists := make(map[string]core.Handle, len(roster))
	for _, h := range roster {
		if h.Name() == s.supervisorName {
			sup = h
			continue
		}
		specialists[h.Name()] = h
	}
	if sup == nil {
		return Outcome{
			Content: fmt.Sprintf("supervisor agent %q is not in the roster", s.supervisorName),
			Reason:  core.ReasonRoutingFailed,
		}
	}

	taskTurn := conv.Append(core.SpeakerUser, task)
	routing := s.routingTurn(roster)

	var last core.Turn
	for round := 0; round < s.maxRounds; round++ {
		if ctx.Err() != nil {
			return canceled(ctx)
		}

		// The routing instruction is per-consultation scaffolding, shown to
		// the supervisor but never recorded in the transcript.
		view := append(conv.Turns(), routing)
		reply, err := sup.Invoke(ctx, view)
		if err != nil {
			if ctx.Err() != nil {
				return canceled(ctx)
			}
			s.logger.Error("supervisor consultation failed", "supervisor", s.supervisorName, "error", err)
			return failed(err)
		}

		choice := strings.TrimSpace(reply)
		if s.doneSentinel != "" && choice == s.doneSentinel {
			s.logger.Debug("supervisor done", "rounds", round)
			return Outcome{Content: last.Content, AgentName: last.Speaker, Reason: core.ReasonCompleted}
		}

		specialist, ok := specialists[choice]
		if !ok {
			s.logger.Warn("supervisor routing unresolved", "supervisor", s.supervisorName, "reply", choice)
			return Outcome{
				Content: fmt.Sprintf("supervisor %q routed to unknown specialist %q", s.supervisorName, choice),
				Reason:  core.ReasonRoutingFailed,
			}
		}
		conv.Append(s.supervisorName, choice)
		s.logger.Debug("supervisor routed", "specialist", choice, "round", round+1)

		if ctx.Err() != nil {
			return canceled(ctx)
		}

		// Round one hands the specialist the bare task; later rounds hand
		// over the evolving transcript.
		specView := []core.Turn{taskTurn}
		if round > 0 {
			specView = conv.Turns()
		}
		out, err := specialist.Invoke(ctx, specView)
		if err != nil {
			if ctx.Err() != nil {
				return canceled(ctx)
			}
			s.logger.Error("specialist invocation failed", "specialist", choice, "error", err)
			return failed(err)
		}

		last = conv.Append(choice, out)
	}

	reason := core.ReasonCompleted
	if s.doneSentinel != "" {
		// Multi-round variant ran out of consultations before the sentinel.
		reason = core.ReasonMaxRoundsExceeded
	}
	return Outcome{Content: last.Content, AgentName: last.Speaker, Reason: reason}
}

// routingTurn builds the consultation instruction listing the specialists
// the supervisor may choose between.
func (s *Supervisor) routingTurn(roster []core.Handle) core.Turn {
	var b strings.Builder
	b.WriteString("Available specialists:\n")
	for _, h := range roster {
		if h.Name() == s.supervisorName {
			continue
		}
		if desc := h.Description(); desc != "" {
			fmt.Fprintf(&b, "- %s: %s\n", h.Name(), desc)
		} else {
			fmt.Fprintf(&b, "- %s\n", h.Name())
		}
	}
	b.WriteString("\nReply with ONLY the name of the specialist that should handle the task.")
	if s.doneSentinel != "" {
		fmt.Fprintf(&b, " Reply %q when the task is complete.", s.doneSentinel)
	}
	return core.Turn{Speaker: core.SpeakerUser, Content: b.String()}
}

// Package strategy implements the turn-taking state machines that drive a
// pipeline run: Sequential, GroupChat and Supervisor.
//
// All strategies share the same execution model: turns are strictly ordered,
// each handle invocation is awaited to completion before the next begins,
// and the only suspension point is the invoke boundary. Cancellation is
// checked before every turn; an already-started invocation is allowed to
// finish or fail per the handle's own contract, but no new turn starts once
// cancellation is signaled.
//
// Failures are never swallowed: an invocation error ends the run with an
// AgentFailed outcome carrying the error message, and the transcript
// accumulated so far is preserved for diagnosability.
package strategy

import (
	"context"

	"github.com/agentpipe/agentpipe/core"
)

// Outcome is the strategy-level result of a run: final content, the agent
// that produced it (empty for failures) and the terminal reason. The engine
// combines it with the conversation into a core.RunResult.
type Outcome struct {
	Content   string
	AgentName string
	Reason    core.Reason
}

// Strategy drives one pipeline run over a roster of handles, mutating conv
// as turns complete. Implementations must be safe for reuse across
// concurrent runs: all per-run state lives in arguments and locals.
type Strategy interface {
	Name() string
	Run(ctx context.Context, task string, roster []core.Handle, conv *core.Conversation) Outcome
}

// canceled builds the uniform outcome for a cancellation observed at a turn
// boundary.
func canceled(ctx context.Context) Outcome {
	return Outcome{Content: context.Cause(ctx).Error(), Reason: core.ReasonCanceled}
}

// failed builds the uniform outcome for a handle invocation error.
func failed(err error) Outcome {
	return Outcome{Content: err.Error(), Reason: core.ReasonAgentFailed}
}

package core

import "context"

// Handle is a capability reference to one configured agent: given a read-only
// view of the conversation, produce a reply or fail.
//
// The view passed to Invoke depends on the strategy driving the run: a
// sequential pipeline hands each agent only the latest message, while group
// chat and supervisor runs hand over the full transcript so far. The handle
// is free to format that view into whatever structure its backend expects;
// orchestration never inspects it.
//
// Implementations must respect context cancellation and must not retry on
// their caller's behalf; a failed invocation surfaces as a terminal
// AgentFailed outcome for the run.
type Handle interface {
	// Name returns the unique agent name within the roster.
	Name() string

	// Description returns a short human-readable summary of the agent's
	// purpose, used when presenting specialists to a supervisor.
	Description() string

	// Invoke sends the transcript view to the backend and returns its reply.
	Invoke(ctx context.Context, view []Turn) (string, error)
}

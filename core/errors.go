package core

import "fmt"

// InvocationError wraps a backend failure with the name of the agent whose
// invocation failed. The orchestrator treats it uniformly regardless of
// backend: no retry, terminal AgentFailed outcome, transcript preserved.
type InvocationError struct {
	Agent string
	Err   error
}

// NewInvocationError wraps err as an invocation failure of the named agent.
func NewInvocationError(agent string, err error) *InvocationError {
	return &InvocationError{Agent: agent, Err: err}
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("agent %q invocation failed: %v", e.Agent, e.Err)
}

// Unwrap exposes the underlying backend error for errors.Is / errors.As.
func (e *InvocationError) Unwrap() error { return e.Err }

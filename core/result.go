package core

// Reason classifies why a pipeline run terminated. Callers branch on the
// reason, not just on whether text was produced.
type Reason int

const (
	// ReasonCompleted means the strategy reached its natural end.
	ReasonCompleted Reason = iota
	// ReasonMaxRoundsExceeded means the round budget ran out before any
	// termination condition was met. This is a normal bounded outcome, not
	// an error.
	ReasonMaxRoundsExceeded
	// ReasonAgentFailed means a backend invocation failed; the transcript is
	// preserved up to the failure point.
	ReasonAgentFailed
	// ReasonRoutingFailed means a supervisor produced an unknown or invalid
	// specialist name. Distinguished from ReasonAgentFailed because the cause
	// is agent output content, not execution failure.
	ReasonRoutingFailed
	// ReasonCanceled means external cancellation took effect at a turn
	// boundary.
	ReasonCanceled
)

// String returns the string representation of the terminal reason.
func (r Reason) String() string {
	switch r {
	case ReasonCompleted:
		return "completed"
	case ReasonMaxRoundsExceeded:
		return "max_rounds_exceeded"
	case ReasonAgentFailed:
		return "agent_failed"
	case ReasonRoutingFailed:
		return "routing_failed"
	case ReasonCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// IsFailure reports whether the run ended because something went wrong rather
// than because it finished or exhausted its budget.
func (r Reason) IsFailure() bool {
	return r == ReasonAgentFailed || r == ReasonRoutingFailed
}

// RunResult is the final outcome of one pipeline run: the produced content,
// the full transcript, the terminal reason and the agent that authored the
// final content (empty for failure outcomes).
type RunResult struct {
	Content      string        `json:"content"`
	AgentName    string        `json:"agent_name,omitempty"`
	Reason       Reason        `json:"reason"`
	Conversation *Conversation `json:"-"`
}

// Transcript returns the recorded turns of the run. It is nil-safe so
// failure results can be rendered uniformly.
func (r *RunResult) Transcript() []Turn {
	if r == nil || r.Conversation == nil {
		return nil
	}
	return r.Conversation.Turns()
}

package core

import "time"

// SpeakerUser is the synthetic speaker identity for the task originator.
// Agent-authored turns carry the agent's configured name instead.
const SpeakerUser = "user"

// Turn is one exchange in a conversation: who spoke, what they said, and
// where in the run it happened. Turns are immutable once appended; Index is
// monotonically increasing from 0 within a run.
type Turn struct {
	Index     int       `json:"index"`
	Speaker   string    `json:"speaker"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// IsUser reports whether the turn was authored by the task originator rather
// than an agent.
func (t Turn) IsUser() bool { return t.Speaker == SpeakerUser }

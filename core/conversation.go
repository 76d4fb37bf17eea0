package core

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Conversation is the ordered transcript of a single pipeline run. It is the
// sole mutable state during orchestration and is never shared across runs.
//
// Contract:
//   - Append is the only mutation; no reordering or deletion
//   - Turns returns a defensive copy to prevent external mutation
//   - Safe for concurrent access, although a single run only ever appends
//     from one goroutine at a time
type Conversation struct {
	id    string
	mu    sync.RWMutex
	turns []Turn
}

// NewConversation creates an empty transcript with a fresh identity.
func NewConversation() *Conversation {
	return &Conversation{id: uuid.NewString()}
}

// ID returns the unique identifier of this run's transcript.
func (c *Conversation) ID() string { return c.id }

// Append records a new turn and returns it with its assigned index and
// timestamp.
func (c *Conversation) Append(speaker, content string) Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	turn := Turn{
		Index:     len(c.turns),
		Speaker:   speaker,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	c.turns = append(c.turns, turn)
	return turn
}

// Turns returns a copy of the full transcript so far.
func (c *Conversation) Turns() []Turn {
	c.mu.RLock()
	defer c.mu.RUnlock()
	turns := make([]Turn, len(c.turns))
	copy(turns, c.turns)
	return turns
}

// Last returns the most recent turn, if any.
func (c *Conversation) Last() (Turn, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.turns) == 0 {
		return Turn{}, false
	}
	return c.turns[len(c.turns)-1], true
}

// Len returns the number of turns appended so far.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.turns)
}

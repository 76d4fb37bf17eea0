package strategy

import (
	"context"
	"fmt"

	"github.com/agentpipe/agentpipe/core"
)

// stubHandle is a deterministic core.Handle for tests. It records every view
// it is invoked with so tests can assert on both call counts and inputs.
type stubHandle struct {
	name        string
	description string
	fn          func(view []core.Turn) (string, error)
	views       [][]core.Turn
}

func (s *stubHandle) Name() string        { return s.name }
func (s *stubHandle) Description() string { return s.description }

func (s *stubHandle) Invoke(_ context.Context, view []core.Turn) (string, error) {
	copied := make([]core.Turn, len(view))
	copy(copied, view)
	s.views = append(s.views, copied)
	return s.fn(view)
}

func (s *stubHandle) calls() int { return len(s.views) }

// echoStub replies with a deterministic transformation of its latest input.
func echoStub(name string) *stubHandle {
	return &stubHandle{name: name, fn: func(view []core.Turn) (string, error) {
		last := view[len(view)-1]
		return fmt.Sprintf("%s(%s)", name, last.Content), nil
	}}
}

// fixedStub always replies with the same content.
func fixedStub(name, reply string) *stubHandle {
	return &stubHandle{name: name, fn: func([]core.Turn) (string, error) {
		return reply, nil
	}}
}

// failingStub always fails with the given error.
func failingStub(name string, err error) *stubHandle {
	return &stubHandle{name: name, fn: func([]core.Turn) (string, error) {
		return "", err
	}}
}

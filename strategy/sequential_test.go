package strategy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentpipe/agentpipe/core"
)

func TestSequentialRun(t *testing.T) {
	t.Run("chains output through every agent in order", func(t *testing.T) {
		a := echoStub("alpha")
		b := echoStub("beta")
		c := echoStub("gamma")

		s := NewSequential()
		conv := core.NewConversation()
		out := s.Run(context.Background(), "task", []core.Handle{a, b, c}, conv)

		assert.Equal(t, core.ReasonCompleted, out.Reason)
		assert.Equal(t, "gamma(beta(alpha(task)))", out.Content)
		assert.Equal(t, "gamma", out.AgentName)

		// The task itself is not recorded, so the transcript holds exactly
		// one turn per agent.
		turns := conv.Turns()
		require.Len(t, turns, 3)
		assert.Equal(t, "alpha", turns[0].Speaker)
		assert.Equal(t, "beta", turns[1].Speaker)
		assert.Equal(t, "gamma", turns[2].Speaker)
	})

	t.Run("each agent sees only the latest message", func(t *testing.T) {
		a := echoStub("alpha")
		b := echoStub("beta")

		s := NewSequential()
		s.Run(context.Background(), "task", []core.Handle{a, b}, core.NewConversation())

		require.Equal(t, 1, a.calls())
		require.Equal(t, 1, b.calls())
		require.Len(t, a.views[0], 1)
		assert.Equal(t, core.SpeakerUser, a.views[0][0].Speaker)
		assert.Equal(t, "task", a.views[0][0].Content)
		require.Len(t, b.views[0], 1)
		assert.Equal(t, "alpha", b.views[0][0].Speaker)
		assert.Equal(t, "alpha(task)", b.views[0][0].Content)
	})

	t.Run("failure preserves turns of prior agents", func(t *testing.T) {
		a := echoStub("alpha")
		b := failingStub("beta", errors.New("model unavailable"))
		c := echoStub("gamma")

		s := NewSequential()
		conv := core.NewConversation()
		out := s.Run(context.Background(), "task", []core.Handle{a, b, c}, conv)

		assert.Equal(t, core.ReasonAgentFailed, out.Reason)
		assert.Contains(t, out.Content, "model unavailable")
		assert.Empty(t, out.AgentName, "failure outcomes carry no agent name")
		assert.Equal(t, 0, c.calls(), "agents after the failure must not run")

		turns := conv.Turns()
		require.Len(t, turns, 1)
		assert.Equal(t, "alpha", turns[0].Speaker)
	})

	t.Run("pre-canceled context invokes nothing", func(t *testing.T) {
		a := echoStub("alpha")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		s := NewSequential()
		out := s.Run(ctx, "task", []core.Handle{a}, core.NewConversation())

		assert.Equal(t, core.ReasonCanceled, out.Reason)
		assert.Equal(t, 0, a.calls())
	})

	t.Run("cancellation between agents stops the chain", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		a := &stubHandle{name: "alpha", fn: func([]core.Turn) (string, error) {
			cancel()
			return "done", nil
		}}
		b := echoStub("beta")

		s := NewSequential()
		conv := core.NewConversation()
		out := s.Run(ctx, "task", []core.Handle{a, b}, conv)

		assert.Equal(t, core.ReasonCanceled, out.Reason)
		assert.Equal(t, 0, b.calls())
		assert.Equal(t, 1, conv.Len())
	})

	t.Run("run is idempotent across fresh conversations", func(t *testing.T) {
		a := echoStub("alpha")
		s := NewSequential()

		first := s.Run(context.Background(), "task", []core.Handle{a}, core.NewConversation())
		second := s.Run(context.Background(), "task", []core.Handle{a}, core.NewConversation())

		assert.Equal(t, first.Content, second.Content)
		assert.Equal(t, first.Reason, second.Reason)
		assert.Equal(t, 2, a.calls())
	})
}

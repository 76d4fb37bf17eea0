package agentpipe

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentpipe/agentpipe/config"
	"github.com/agentpipe/agentpipe/core"
)

type echoHandle struct{ name string }

func (h echoHandle) Name() string        { return h.name }
func (h echoHandle) Description() string { return "" }

func (h echoHandle) Invoke(_ context.Context, view []core.Turn) (string, error) {
	return fmt.Sprintf("%s(%s)", h.name, view[len(view)-1].Content), nil
}

func stubSpec(name string) config.AgentSpec {
	return config.AgentSpec{
		Name:         name,
		Backend:      "stub",
		Instructions: "You are " + name + ".",
		MaxTurns:     config.DefaultMaxTurns,
	}
}

func TestAgentPipe_Run(t *testing.T) {
	p := New()
	p.RegisterBackend("stub", func(spec config.AgentSpec) (core.Handle, error) {
		return echoHandle{name: spec.Name}, nil
	})

	roster, err := config.NewRoster(stubSpec("first"), stubSpec("second"))
	require.NoError(t, err)

	pipe := config.PipelineSpec{
		Name:      "demo",
		Agents:    []string{"first", "second"},
		Strategy:  config.StrategySequential,
		MaxRounds: config.DefaultMaxRounds,
	}
	result, err := p.Run(context.Background(), pipe, roster, "hello")

	require.NoError(t, err)
	assert.Equal(t, core.ReasonCompleted, result.Reason)
	assert.Equal(t, "second(first(hello))", result.Content)
}

func TestAgentPipe_RunAgent(t *testing.T) {
	p := New()
	p.RegisterBackend("stub", func(spec config.AgentSpec) (core.Handle, error) {
		return echoHandle{name: spec.Name}, nil
	})

	result, err := p.RunAgent(context.Background(), stubSpec("solo"), "ping")

	require.NoError(t, err)
	assert.Equal(t, core.ReasonCompleted, result.Reason)
	assert.Equal(t, "solo(ping)", result.Content)
	assert.Equal(t, "solo", result.AgentName)
	require.Len(t, result.Transcript(), 1)
}

func TestAgentPipe_MissingAPIKeyEnv(t *testing.T) {
	p := New()

	spec := stubSpec("real")
	spec.Backend = "openai"
	spec.LLM.APIKeyEnv = "AGENTPIPE_TEST_KEY_THAT_IS_NOT_SET"

	_, err := p.RunAgent(context.Background(), spec, "ping")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "AGENTPIPE_TEST_KEY_THAT_IS_NOT_SET")
}

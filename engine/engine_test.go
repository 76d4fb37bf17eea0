package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentpipe/agentpipe/backend"
	"github.com/agentpipe/agentpipe/config"
	"github.com/agentpipe/agentpipe/core"
)

// stubHandle invokes a per-agent reply function and counts calls.
type stubHandle struct {
	name  string
	fn    func(view []core.Turn) (string, error)
	mu    sync.Mutex
	calls int
}

func (s *stubHandle) Name() string        { return s.name }
func (s *stubHandle) Description() string { return "" }

func (s *stubHandle) Invoke(_ context.Context, view []core.Turn) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.fn(view)
}

// stubBackend registers a "stub" backend kind whose handles echo through
// replies, and tracks every handle it built.
type stubBackend struct {
	mu      sync.Mutex
	handles map[string]*stubHandle
	replies map[string]func(view []core.Turn) (string, error)
}

func newStubBackend() *stubBackend {
	return &stubBackend{
		handles: map[string]*stubHandle{},
		replies: map[string]func(view []core.Turn) (string, error){},
	}
}

func (b *stubBackend) reply(agent, text string) {
	b.replies[agent] = func([]core.Turn) (string, error) { return text, nil }
}

func (b *stubBackend) fail(agent string, err error) {
	b.replies[agent] = func([]core.Turn) (string, error) { return "", err }
}

func (b *stubBackend) factory(spec config.AgentSpec) (core.Handle, error) {
	fn, ok := b.replies[spec.Name]
	if !ok {
		fn = func(view []core.Turn) (string, error) {
			return fmt.Sprintf("%s(%s)", spec.Name, view[len(view)-1].Content), nil
		}
	}
	h := &stubHandle{name: spec.Name, fn: fn}
	b.mu.Lock()
	b.handles[spec.Name] = h
	b.mu.Unlock()
	return h, nil
}

func (b *stubBackend) callCount(agent string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	h, ok := b.handles[agent]
	if !ok {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls
}

func stubAgent(name string) config.AgentSpec {
	return config.AgentSpec{
		Name:         name,
		Backend:      "stub",
		Instructions: "You are " + name + ".",
		MaxTurns:     config.DefaultMaxTurns,
	}
}

func newTestEngine(t *testing.T, b *stubBackend, optFns ...func(o *Options)) *Engine {
	t.Helper()
	reg := backend.NewRegistry()
	reg.Register("stub", b.factory)
	return New(reg, optFns...)
}

func testRoster(t *testing.T, names ...string) *config.Roster {
	t.Helper()
	specs := make([]config.AgentSpec, len(names))
	for i, n := range names {
		specs[i] = stubAgent(n)
	}
	roster, err := config.NewRoster(specs...)
	require.NoError(t, err)
	return roster
}

func TestEngineRun_Sequential(t *testing.T) {
	b := newStubBackend()
	e := newTestEngine(t, b)

	pipe := config.PipelineSpec{
		Name:      "review",
		Agents:    []string{"drafter", "editor"},
		Strategy:  config.StrategySequential,
		MaxRounds: config.DefaultMaxRounds,
	}
	result, err := e.Run(context.Background(), pipe, testRoster(t, "drafter", "editor"), "write a haiku")

	require.NoError(t, err)
	assert.Equal(t, core.ReasonCompleted, result.Reason)
	assert.Equal(t, "editor(drafter(write a haiku))", result.Content)
	assert.Equal(t, "editor", result.AgentName)
	assert.Len(t, result.Transcript(), 2)
}

func TestEngineRun_GroupChat(t *testing.T) {
	b := newStubBackend()
	b.reply("a", "hm")
	b.reply("b", "ok")
	e := newTestEngine(t, b)

	pipe := config.PipelineSpec{
		Name:      "debate",
		Agents:    []string{"a", "b"},
		Strategy:  config.StrategyGroupChat,
		MaxRounds: 2,
	}
	result, err := e.Run(context.Background(), pipe, testRoster(t, "a", "b"), "discuss")

	require.NoError(t, err)
	assert.Equal(t, core.ReasonMaxRoundsExceeded, result.Reason)
	assert.Len(t, result.Transcript(), 1+2*2)
	assert.Equal(t, 2, b.callCount("a"))
	assert.Equal(t, 2, b.callCount("b"))
}

func TestEngineRun_Supervisor(t *testing.T) {
	b := newStubBackend()
	b.reply("boss", "coder")
	b.reply("coder", "shipped")
	e := newTestEngine(t, b)

	pipe := config.PipelineSpec{
		Name:            "triage",
		Agents:          []string{"boss", "coder"},
		Strategy:        config.StrategySupervisor,
		MaxRounds:       config.DefaultMaxRounds,
		SupervisorAgent: "boss",
	}
	result, err := e.Run(context.Background(), pipe, testRoster(t, "boss", "coder"), "fix the bug")

	require.NoError(t, err)
	assert.Equal(t, core.ReasonCompleted, result.Reason)
	assert.Equal(t, "shipped", result.Content)
	assert.Equal(t, "coder", result.AgentName)
}

func TestEngineRun_ConfigErrors(t *testing.T) {
	b := newStubBackend()
	e := newTestEngine(t, b)
	roster := testRoster(t, "solo")

	tests := []struct {
		name string
		pipe config.PipelineSpec
		want string
	}{
		{
			name: "unknown agent",
			pipe: config.PipelineSpec{
				Name:      "p",
				Agents:    []string{"ghost"},
				Strategy:  config.StrategySequential,
				MaxRounds: 1,
			},
			want: "not in the roster",
		},
		{
			name: "empty agents",
			pipe: config.PipelineSpec{
				Name:      "p",
				Strategy:  config.StrategySequential,
				MaxRounds: 1,
			},
			want: "agents must be non-empty",
		},
		{
			name: "invalid strategy",
			pipe: config.PipelineSpec{
				Name:      "p",
				Agents:    []string{"solo"},
				Strategy:  "round_table",
				MaxRounds: 1,
			},
			want: "unknown strategy",
		},
		{
			name: "supervisor outside agent list",
			pipe: config.PipelineSpec{
				Name:            "p",
				Agents:          []string{"solo", "other"},
				Strategy:        config.StrategySupervisor,
				MaxRounds:       1,
				SupervisorAgent: "ghost",
			},
			want: "not in the agent list",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := e.Run(context.Background(), tt.pipe, roster, "task")

			require.Error(t, err)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, ErrConfig)
			var cfgErr *ConfigError
			assert.ErrorAs(t, err, &cfgErr)
			assert.Contains(t, err.Error(), tt.want)
			assert.Equal(t, 0, b.callCount("solo"), "no agent may run on a config error")
		})
	}
}

func TestEngineRun_UnknownBackend(t *testing.T) {
	e := New(backend.NewRegistry())
	spec := stubAgent("solo")
	spec.Backend = "nonexistent"
	roster, err := config.NewRoster(spec)
	require.NoError(t, err)

	pipe := config.PipelineSpec{
		Name:      "p",
		Agents:    []string{"solo"},
		Strategy:  config.StrategySequential,
		MaxRounds: 1,
	}
	_, err = e.Run(context.Background(), pipe, roster, "task")

	assert.ErrorIs(t, err, ErrConfig)
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestEngineRun_AgentFailureIsTerminalNotError(t *testing.T) {
	b := newStubBackend()
	b.fail("solo", errors.New("model offline"))
	e := newTestEngine(t, b)

	pipe := config.PipelineSpec{
		Name:      "p",
		Agents:    []string{"solo"},
		Strategy:  config.StrategySequential,
		MaxRounds: 1,
	}
	result, err := e.Run(context.Background(), pipe, testRoster(t, "solo"), "task")

	require.NoError(t, err, "runtime failures are reasons, not errors")
	assert.Equal(t, core.ReasonAgentFailed, result.Reason)
	assert.Contains(t, result.Content, "model offline")
}

func TestEngineRun_ConcurrentRunsAreIndependent(t *testing.T) {
	b := newStubBackend()
	e := newTestEngine(t, b)
	roster := testRoster(t, "solo")
	pipe := config.PipelineSpec{
		Name:      "p",
		Agents:    []string{"solo"},
		Strategy:  config.StrategySequential,
		MaxRounds: 1,
	}

	const runs = 8
	results := make([]*core.RunResult, runs)
	var wg sync.WaitGroup
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := e.Run(context.Background(), pipe, roster, fmt.Sprintf("task %d", i))
			if !assert.NoError(t, err) {
				return
			}
			results[i] = r
		}(i)
	}
	wg.Wait()

	seen := map[string]bool{}
	for i, r := range results {
		require.NotNil(t, r)
		assert.Equal(t, core.ReasonCompleted, r.Reason)
		assert.Equal(t, fmt.Sprintf("solo(task %d)", i), r.Content)
		id := r.Conversation.ID()
		assert.False(t, seen[id], "conversations must not be shared across runs")
		seen[id] = true
	}
}

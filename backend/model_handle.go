package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/agentpipe/agentpipe/config"
	"github.com/agentpipe/agentpipe/core"
	"github.com/agentpipe/agentpipe/logging"
	"github.com/agentpipe/agentpipe/model"
	"github.com/agentpipe/agentpipe/tool"
)

// ModelHandleOptions configures a ModelHandle instance.
type ModelHandleOptions struct {
	// Tools supplies the registry the agent's declared tools are resolved
	// against. Agents with no declared tools never touch it.
	Tools *tool.Registry
	// Logger defaults to a no-op.
	Logger logging.Logger
}

// ModelHandle implements core.Handle over a model.Model. One invocation may
// span several model turns when the model requests tool calls; the loop is
// bounded by the spec's max_turns so a misbehaving model cannot run
// unbounded.
type ModelHandle struct {
	name         string
	instructions string
	description  string
	maxTurns     int
	tools        []tool.Tool
	defs         []model.ToolDefinition
	llm          model.Model
	logger       logging.Logger
}

// NewModelHandle builds a handle for spec driving the given model. Declared
// tools are resolved eagerly so a roster referencing an unregistered tool
// fails at construction, not mid-run.
func NewModelHandle(spec config.AgentSpec, llm model.Model, optFns ...func(o *ModelHandleOptions)) (*ModelHandle, error) {
	opts := ModelHandleOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	h := &ModelHandle{
		name:         spec.Name,
		instructions: spec.Instructions,
		description:  spec.Summary(),
		maxTurns:     spec.MaxTurns,
		llm:          llm,
		logger:       opts.Logger,
	}

	for _, ts := range spec.Tools {
		if opts.Tools == nil {
			return nil, fmt.Errorf("agent %q declares tool %q but no tool registry was supplied", spec.Name, ts.Name)
		}
		t, ok := opts.Tools.Get(ts.Name)
		if !ok {
			return nil, fmt.Errorf("agent %q declares unknown tool %q (registered: %v)", spec.Name, ts.Name, opts.Tools.Names())
		}
		description := t.Description()
		if ts.Description != "" {
			description = ts.Description
		}
		h.tools = append(h.tools, t)
		h.defs = append(h.defs, model.ToolDefinition{
			Name:        t.Name(),
			Description: description,
			Parameters:  t.Parameters(),
		})
	}

	return h, nil
}

// Name implements core.Handle.
func (h *ModelHandle) Name() string { return h.name }

// Description implements core.Handle.
func (h *ModelHandle) Description() string { return h.description }

// Invoke implements core.Handle. The transcript view is rendered into chat
// messages (own turns become assistant messages, everything else becomes
// attributed user messages), then the model is driven until it produces a
// final text reply or the turn budget runs out. Any model or tool failure
// surfaces as a *core.InvocationError.
func (h *ModelHandle) Invoke(ctx context.Context, view []core.Turn) (string, error) {
	messages := h.renderView(view)

	for turn := 0; turn < h.maxTurns; turn++ {
		resp, err := h.llm.Generate(ctx, model.Request{
			Instructions: h.instructions,
			Messages:     messages,
			Tools:        h.defs,
		})
		if err != nil {
			return "", core.NewInvocationError(h.name, err)
		}

		if len(resp.ToolCalls) == 0 {
			return resp.Text, nil
		}

		messages = append(messages, model.Message{
			Role:      model.RoleAssistant,
			Text:      resp.Text,
			ToolCalls: resp.ToolCalls,
		})

		for _, call := range resp.ToolCalls {
			result, err := h.execTool(ctx, call)
			if err != nil {
				return "", core.NewInvocationError(h.name, err)
			}
			messages = append(messages, model.Message{
				Role:       model.RoleTool,
				Text:       result,
				ToolCallID: call.ID,
				ToolName:   call.Name,
			})
		}
	}

	return "", core.NewInvocationError(h.name, fmt.Errorf("no final reply after %d model turns", h.maxTurns))
}

func (h *ModelHandle) execTool(ctx context.Context, call model.ToolCall) (string, error) {
	var impl tool.Tool
	for _, t := range h.tools {
		if t.Name() == call.Name {
			impl = t
			break
		}
	}
	if impl == nil {
		return "", fmt.Errorf("model requested unknown tool %q", call.Name)
	}

	args := map[string]any{}
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return "", fmt.Errorf("tool %q: malformed arguments: %w", call.Name, err)
		}
	}

	start := time.Now()
	result, err := impl.Call(ctx, args)
	if err != nil {
		h.logger.Error("tool call failed", "agent", h.name, "tool", call.Name, "error", err)
		return "", err
	}
	h.logger.Debug("tool call completed", "agent", h.name, "tool", call.Name, "duration_ms", time.Since(start).Milliseconds())

	if s, ok := result.(string); ok {
		return s, nil
	}
	return fmt.Sprintf("%v", result), nil
}

// renderView converts the transcript view into chat messages from this
// agent's perspective. Other agents' turns are attributed so the model can
// tell speakers apart in multi-agent transcripts.
func (h *ModelHandle) renderView(view []core.Turn) []model.Message {
	messages := make([]model.Message, 0, len(view))
	for _, t := range view {
		switch t.Speaker {
		case h.name:
			messages = append(messages, model.Message{Role: model.RoleAssistant, Text: t.Content})
		case core.SpeakerUser:
			messages = append(messages, model.Message{Role: model.RoleUser, Text: t.Content})
		default:
			messages = append(messages, model.Message{
				Role: model.RoleUser,
				Text: fmt.Sprintf("[%s]: %s", t.Speaker, t.Content),
			})
		}
	}
	return messages
}

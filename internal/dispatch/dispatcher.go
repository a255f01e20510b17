// Package dispatch implements the action-dispatch pipeline: validate an
// execution request, resolve the tool that serves it, invoke it, and record
// the outcome as an execution log entry.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/agenthub/agenthub/internal/domain"
	"github.com/agenthub/agenthub/internal/domain/agent"
	"github.com/agenthub/agenthub/internal/domain/execlog"
	"github.com/agenthub/agenthub/internal/domain/tool"
	"github.com/agenthub/agenthub/internal/port/agentcode"
	"github.com/agenthub/agenthub/internal/port/database"
	"github.com/agenthub/agenthub/internal/port/toolinvoker"
	"github.com/agenthub/agenthub/internal/registry"
)

// Result is the terminal response of one dispatch call.
type Result struct {
	AgentID   int64              `json:"agent_id"`
	AgentName string             `json:"agent_name"`
	Action    string             `json:"action"`
	Status    tool.OutcomeStatus `json:"status"`
	Data      any                `json:"data,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// LogWriter persists execution log entries. Writes are best-effort: a
// failing writer must never mask the invocation's own result.
type LogWriter interface {
	AppendLog(ctx context.Context, entry *execlog.Entry) (int64, error)
}

// Dispatcher validates execution requests and routes them to tool invokers
// or the agent's custom-code runner.
type Dispatcher struct {
	store         database.Store
	reg           *registry.Registry
	logs          LogWriter
	runner        agentcode.Runner
	newInvoker    func(name string, config map[string]string) (toolinvoker.Invoker, error)
	invokeTimeout time.Duration
}

// New creates a Dispatcher. runner may be nil; unrecognized actions then
// fail with ErrUnknownAction.
func New(store database.Store, reg *registry.Registry, logs LogWriter, runner agentcode.Runner, invokeTimeout time.Duration) *Dispatcher {
	if invokeTimeout <= 0 {
		invokeTimeout = 30 * time.Second
	}
	return &Dispatcher{
		store:         store,
		reg:           reg,
		logs:          logs,
		runner:        runner,
		newInvoker:    toolinvoker.New,
		invokeTimeout: invokeTimeout,
	}
}

// SetInvokerFactory replaces the invoker constructor. Used by tests to
// substitute fake invokers.
func (d *Dispatcher) SetInvokerFactory(f func(name string, config map[string]string) (toolinvoker.Invoker, error)) {
	d.newInvoker = f
}

// Dispatch runs the pipeline for one execution request:
// validate -> resolve -> invoke -> log. Every request that resolves a tool
// produces exactly one execution log entry, whatever the outcome; requests
// that fail before a tool is resolved produce none, because an entry must
// reference the tool it was written for.
func (d *Dispatcher) Dispatch(ctx context.Context, agentID int64, action string, params map[string]any) (*Result, error) {
	if action == "" {
		return nil, fmt.Errorf("%w: action is required", domain.ErrValidation)
	}
	if params == nil {
		params = map[string]any{}
	}

	ag, err := d.store.GetAgent(ctx, agentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("agent %d: %w", agentID, ErrAgentNotFound)
		}
		return nil, fmt.Errorf("get agent %d: %w", agentID, err)
	}
	if !ag.IsActive {
		return nil, fmt.Errorf("agent %d: %w", agentID, ErrAgentInactive)
	}

	spec, ok := Builtin(action)
	if !ok {
		return d.runCustom(ctx, ag, action, params)
	}

	t, err := d.reg.ResolveByType(ctx, agentID, spec.ToolType)
	if err != nil {
		if errors.Is(err, registry.ErrNoActiveToolOfType) {
			return nil, fmt.Errorf("action %s needs a %s tool: %w", action, spec.ToolType, ErrNoBoundTool)
		}
		return nil, err
	}

	if missing := spec.missingParam(params); missing != "" {
		failErr := fmt.Errorf("%w: %s", ErrMissingParameter, missing)
		d.record(ctx, t.ID, action, tool.Failure(failErr.Error()), params)
		return nil, failErr
	}

	invoker, err := d.newInvoker(string(t.Type), t.Config)
	if err != nil {
		outcome := tool.Failure(err.Error())
		d.record(ctx, t.ID, action, outcome, params)
		return resultFor(ag, action, outcome), nil
	}

	invokeCtx, cancel := context.WithTimeout(ctx, d.invokeTimeout)
	defer cancel()

	outcome, err := invoker.Invoke(invokeCtx, t, action, params)
	if err != nil {
		// Invokers fold external faults into the outcome; an error here
		// means the action/invoker pairing itself is broken.
		outcome = tool.Failure(err.Error())
	}

	d.record(ctx, t.ID, action, outcome, params)
	return resultFor(ag, action, outcome), nil
}

// runCustom forwards an unrecognized action to the agent's stored code.
func (d *Dispatcher) runCustom(ctx context.Context, ag *agent.Agent, action string, params map[string]any) (*Result, error) {
	if d.runner == nil {
		return nil, fmt.Errorf("action %q: %w", action, ErrUnknownAction)
	}

	outcome, err := d.runner.Run(ctx, ag, action, params)
	if err != nil {
		if errors.Is(err, agentcode.ErrNotSupported) {
			return nil, fmt.Errorf("action %q: %w", action, ErrUnknownAction)
		}
		outcome = tool.Failure(err.Error())
	}
	return resultFor(ag, action, outcome), nil
}

// record writes one execution log entry. Failures are logged server-side
// and swallowed so they never replace the primary result.
func (d *Dispatcher) record(ctx context.Context, toolID int64, action string, outcome tool.Outcome, params map[string]any) {
	details := logDetails(params, outcome)

	entry := &execlog.Entry{
		ToolID:       toolID,
		Action:       action,
		Status:       string(outcome.Status),
		Details:      details,
		ErrorMessage: outcome.ErrorMessage,
	}
	if _, err := d.logs.AppendLog(ctx, entry); err != nil {
		slog.Error("execution log write failed", "tool_id", toolID, "action", action, "error", err)
	}
}

// logDetails builds the structured details payload: the request parameters
// plus a result count on success. Raw response bodies and credentials are
// never persisted.
func logDetails(params map[string]any, outcome tool.Outcome) json.RawMessage {
	payload := map[string]any{"params": params}
	if outcome.Status == tool.StatusSuccess {
		count := 1
		if v := reflect.ValueOf(outcome.Data); v.Kind() == reflect.Slice {
			count = v.Len()
		}
		payload["result_count"] = count
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return data
}

func resultFor(ag *agent.Agent, action string, outcome tool.Outcome) *Result {
	return &Result{
		AgentID:   ag.ID,
		AgentName: ag.Name,
		Action:    action,
		Status:    outcome.Status,
		Data:      outcome.Data,
		Error:     outcome.ErrorMessage,
	}
}

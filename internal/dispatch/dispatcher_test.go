package dispatch

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/agenthub/agenthub/internal/domain"
	"github.com/agenthub/agenthub/internal/domain/agent"
	"github.com/agenthub/agenthub/internal/domain/execlog"
	"github.com/agenthub/agenthub/internal/domain/tool"
	"github.com/agenthub/agenthub/internal/port/agentcode"
	"github.com/agenthub/agenthub/internal/port/database"
	"github.com/agenthub/agenthub/internal/port/toolinvoker"
	"github.com/agenthub/agenthub/internal/registry"
)

// fakeStore implements only the Store methods the dispatch path touches.
// Anything else panics via the embedded nil interface.
type fakeStore struct {
	database.Store
	agents map[int64]*agent.Agent
}

func (f *fakeStore) GetAgent(_ context.Context, id int64) (*agent.Agent, error) {
	ag, ok := f.agents[id]
	if !ok {
		return nil, fmt.Errorf("agent %d: %w", id, domain.ErrNotFound)
	}
	cp := *ag
	return &cp, nil
}

// logRecorder captures appended execution log entries.
type logRecorder struct {
	entries []execlog.Entry
	fail    bool
}

func (l *logRecorder) AppendLog(_ context.Context, entry *execlog.Entry) (int64, error) {
	if l.fail {
		return 0, errors.New("log store down")
	}
	l.entries = append(l.entries, *entry)
	return int64(len(l.entries)), nil
}

// countingInvoker records Invoke calls and returns a fixed outcome.
type countingInvoker struct {
	calls   int
	outcome tool.Outcome
}

func (c *countingInvoker) Name() string { return "fake" }

func (c *countingInvoker) Capabilities() toolinvoker.Capabilities {
	return toolinvoker.Capabilities{}
}

func (c *countingInvoker) Invoke(_ context.Context, _ *tool.Tool, _ string, _ map[string]any) (tool.Outcome, error) {
	c.calls++
	return c.outcome, nil
}

func githubAgent() *agent.Agent {
	return &agent.Agent{
		ID:       1,
		Name:     "repo-bot",
		IsActive: true,
		Tools: []tool.Tool{
			{ID: 7, Name: "gh", Type: tool.TypeGitHub, IsActive: true},
		},
	}
}

func newTestDispatcher(store *fakeStore, logs *logRecorder, inv *countingInvoker) *Dispatcher {
	reg := registry.New(store, nil, 0)
	d := New(store, reg, logs, agentcode.Refusing{}, 0)
	d.SetInvokerFactory(func(_ string, _ map[string]string) (toolinvoker.Invoker, error) {
		return inv, nil
	})
	return d
}

func TestDispatchKnownAction(t *testing.T) {
	store := &fakeStore{agents: map[int64]*agent.Agent{1: githubAgent()}}
	logs := &logRecorder{}
	inv := &countingInvoker{outcome: tool.Success([]map[string]any{{"name": "a"}, {"name": "b"}})}
	d := newTestDispatcher(store, logs, inv)

	res, err := d.Dispatch(context.Background(), 1, "get_repositories", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inv.calls != 1 {
		t.Errorf("expected exactly 1 invoker call, got %d", inv.calls)
	}
	if len(logs.entries) != 1 {
		t.Fatalf("expected exactly 1 log entry, got %d", len(logs.entries))
	}
	entry := logs.entries[0]
	if entry.ToolID != 7 || entry.Action != "get_repositories" || entry.Status != "success" {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if res.Status != tool.StatusSuccess || res.AgentName != "repo-bot" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestDispatchMissingParameterSkipsInvocation(t *testing.T) {
	store := &fakeStore{agents: map[int64]*agent.Agent{1: githubAgent()}}
	logs := &logRecorder{}
	inv := &countingInvoker{outcome: tool.Success(nil)}
	d := newTestDispatcher(store, logs, inv)

	_, err := d.Dispatch(context.Background(), 1, "list_pull_requests", map[string]any{})
	if !errors.Is(err, ErrMissingParameter) {
		t.Fatalf("expected ErrMissingParameter, got %v", err)
	}

	if inv.calls != 0 {
		t.Errorf("expected zero external calls, got %d", inv.calls)
	}
	if len(logs.entries) != 1 {
		t.Fatalf("expected 1 error log entry, got %d", len(logs.entries))
	}
	if logs.entries[0].Status != "error" {
		t.Errorf("expected error status, got %s", logs.entries[0].Status)
	}
}

func TestDispatchEmptyActionRejected(t *testing.T) {
	store := &fakeStore{agents: map[int64]*agent.Agent{1: githubAgent()}}
	d := newTestDispatcher(store, &logRecorder{}, &countingInvoker{})

	_, err := d.Dispatch(context.Background(), 1, "", nil)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestDispatchUnknownAction(t *testing.T) {
	store := &fakeStore{agents: map[int64]*agent.Agent{1: githubAgent()}}
	logs := &logRecorder{}
	d := newTestDispatcher(store, logs, &countingInvoker{})

	_, err := d.Dispatch(context.Background(), 1, "mine_bitcoin", nil)
	if !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
	if len(logs.entries) != 0 {
		t.Errorf("unknown action must not write a log entry, got %d", len(logs.entries))
	}
}

func TestDispatchAgentNotFound(t *testing.T) {
	store := &fakeStore{agents: map[int64]*agent.Agent{}}
	d := newTestDispatcher(store, &logRecorder{}, &countingInvoker{})

	_, err := d.Dispatch(context.Background(), 42, "get_repositories", nil)
	if !errors.Is(err, ErrAgentNotFound) {
		t.Fatalf("expected ErrAgentNotFound, got %v", err)
	}
}

func TestDispatchAgentInactive(t *testing.T) {
	ag := githubAgent()
	ag.IsActive = false
	store := &fakeStore{agents: map[int64]*agent.Agent{1: ag}}
	d := newTestDispatcher(store, &logRecorder{}, &countingInvoker{})

	_, err := d.Dispatch(context.Background(), 1, "get_repositories", nil)
	if !errors.Is(err, ErrAgentInactive) {
		t.Fatalf("expected ErrAgentInactive, got %v", err)
	}
}

func TestDispatchNoBoundTool(t *testing.T) {
	ag := githubAgent()
	ag.Tools = nil
	store := &fakeStore{agents: map[int64]*agent.Agent{1: ag}}
	logs := &logRecorder{}
	d := newTestDispatcher(store, logs, &countingInvoker{})

	_, err := d.Dispatch(context.Background(), 1, "get_repositories", nil)
	if !errors.Is(err, ErrNoBoundTool) {
		t.Fatalf("expected ErrNoBoundTool, got %v", err)
	}
	if len(logs.entries) != 0 {
		t.Errorf("unresolved tool must not write a log entry, got %d", len(logs.entries))
	}
}

func TestDispatchInactiveToolSkipped(t *testing.T) {
	ag := githubAgent()
	ag.Tools[0].IsActive = false
	store := &fakeStore{agents: map[int64]*agent.Agent{1: ag}}
	d := newTestDispatcher(store, &logRecorder{}, &countingInvoker{})

	_, err := d.Dispatch(context.Background(), 1, "get_repositories", nil)
	if !errors.Is(err, ErrNoBoundTool) {
		t.Fatalf("expected ErrNoBoundTool for inactive tool, got %v", err)
	}
}

func TestDispatchNoResultCaching(t *testing.T) {
	store := &fakeStore{agents: map[int64]*agent.Agent{1: githubAgent()}}
	logs := &logRecorder{}
	inv := &countingInvoker{outcome: tool.Success([]string{"r"})}
	d := newTestDispatcher(store, logs, inv)

	for range 2 {
		if _, err := d.Dispatch(context.Background(), 1, "get_repositories", nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if inv.calls != 2 {
		t.Errorf("identical requests must both reach the invoker, got %d calls", inv.calls)
	}
	if len(logs.entries) != 2 {
		t.Errorf("expected 2 log entries, got %d", len(logs.entries))
	}
}

func TestDispatchInvokerFailureIsLogged(t *testing.T) {
	store := &fakeStore{agents: map[int64]*agent.Agent{1: githubAgent()}}
	logs := &logRecorder{}
	inv := &countingInvoker{outcome: tool.Failure("github API returned 500")}
	d := newTestDispatcher(store, logs, inv)

	res, err := d.Dispatch(context.Background(), 1, "get_repositories", nil)
	if err != nil {
		t.Fatalf("external faults must fold into the outcome, got error %v", err)
	}
	if res.Status != tool.StatusError || res.Error == "" {
		t.Errorf("unexpected result: %+v", res)
	}
	if len(logs.entries) != 1 || logs.entries[0].Status != "error" {
		t.Fatalf("expected 1 error entry, got %+v", logs.entries)
	}
}

func TestDispatchLogFailureDoesNotMaskResult(t *testing.T) {
	store := &fakeStore{agents: map[int64]*agent.Agent{1: githubAgent()}}
	logs := &logRecorder{fail: true}
	inv := &countingInvoker{outcome: tool.Success("ok")}
	d := newTestDispatcher(store, logs, inv)

	res, err := d.Dispatch(context.Background(), 1, "get_repositories", nil)
	if err != nil {
		t.Fatalf("log writer failure must not surface, got %v", err)
	}
	if res.Status != tool.StatusSuccess {
		t.Errorf("expected success result, got %+v", res)
	}
}

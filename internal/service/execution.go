package service

import (
	"context"

	"github.com/agenthub/agenthub/internal/dispatch"
	"github.com/agenthub/agenthub/internal/domain/execlog"
	"github.com/agenthub/agenthub/internal/port/database"
)

// ExecutionService runs agent actions through the dispatcher and serves the
// execution log.
type ExecutionService struct {
	store      database.Store
	dispatcher *dispatch.Dispatcher
}

// NewExecutionService creates a new ExecutionService.
func NewExecutionService(store database.Store, dispatcher *dispatch.Dispatcher) *ExecutionService {
	return &ExecutionService{store: store, dispatcher: dispatcher}
}

// Execute dispatches one action on behalf of an agent.
func (s *ExecutionService) Execute(ctx context.Context, agentID int64, action string, params map[string]any) (*dispatch.Result, error) {
	return s.dispatcher.Dispatch(ctx, agentID, action, params)
}

// ListLogs returns a page of execution log entries, newest first.
func (s *ExecutionService) ListLogs(ctx context.Context, limit, offset int) (*execlog.Page, error) {
	limit = normalizeLimit(limit)
	offset = max(offset, 0)

	entries, err := s.store.ListLogs(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.store.CountLogs(ctx)
	if err != nil {
		return nil, err
	}
	return &execlog.Page{Entries: entries, Total: total, Limit: limit, Offset: offset}, nil
}

// ListToolLogs returns the log entries of one tool, newest first.
func (s *ExecutionService) ListToolLogs(ctx context.Context, toolID int64, limit, offset int) ([]execlog.Entry, error) {
	return s.store.ListToolLogs(ctx, toolID, normalizeLimit(limit), max(offset, 0))
}

// DeleteLog removes a single log entry.
func (s *ExecutionService) DeleteLog(ctx context.Context, id int64) error {
	return s.store.DeleteLog(ctx, id)
}

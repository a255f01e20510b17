package service

import (
	"context"

	"github.com/agenthub/agenthub/internal/domain/tool"
	"github.com/agenthub/agenthub/internal/port/database"
	"github.com/agenthub/agenthub/internal/registry"
)

// ToolService handles tool CRUD. Mutations invalidate the registry cache so
// the dispatch path never serves a stale tool row past the TTL.
type ToolService struct {
	store database.Store
	reg   *registry.Registry
}

// NewToolService creates a new ToolService. reg may be nil when no cache
// invalidation is needed (tests).
func NewToolService(store database.Store, reg *registry.Registry) *ToolService {
	return &ToolService{store: store, reg: reg}
}

// List returns tools, paginated.
func (s *ToolService) List(ctx context.Context, limit, offset int) ([]tool.Tool, error) {
	return s.store.ListTools(ctx, normalizeLimit(limit), max(offset, 0))
}

// Get returns a tool by ID.
func (s *ToolService) Get(ctx context.Context, id int64) (*tool.Tool, error) {
	return s.store.GetTool(ctx, id)
}

// Create registers a new tool after validating the request.
func (s *ToolService) Create(ctx context.Context, req *tool.CreateRequest) (*tool.Tool, error) {
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}
	return s.store.CreateTool(ctx, *req)
}

// Update applies partial updates to a tool and drops it from the registry
// cache.
func (s *ToolService) Update(ctx context.Context, id int64, req tool.UpdateRequest) (*tool.Tool, error) {
	if req.Name != nil && *req.Name == "" {
		return nil, validationErrorf("name must not be empty")
	}
	t, err := s.store.UpdateTool(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return t, nil
}

// Delete removes a tool, its bindings, and its execution log entries.
func (s *ToolService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteTool(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *ToolService) invalidate(ctx context.Context, id int64) {
	if s.reg != nil {
		s.reg.Invalidate(ctx, id)
	}
}

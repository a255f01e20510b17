// Package service implements business logic on top of ports.
package service

import (
	"context"

	"github.com/agenthub/agenthub/internal/domain/agent"
	"github.com/agenthub/agenthub/internal/port/database"
)

// AgentService handles agent business logic.
type AgentService struct {
	store database.Store
}

// NewAgentService creates a new AgentService.
func NewAgentService(store database.Store) *AgentService {
	return &AgentService{store: store}
}

// List returns agents with their bound tools, paginated.
func (s *AgentService) List(ctx context.Context, limit, offset int) ([]agent.Agent, error) {
	return s.store.ListAgents(ctx, normalizeLimit(limit), max(offset, 0))
}

// Get returns an agent by ID.
func (s *AgentService) Get(ctx context.Context, id int64) (*agent.Agent, error) {
	return s.store.GetAgent(ctx, id)
}

// Create creates a new agent after validating the request.
func (s *AgentService) Create(ctx context.Context, req *agent.CreateRequest) (*agent.Agent, error) {
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}
	return s.store.CreateAgent(ctx, *req)
}

// Update applies partial updates to an agent.
func (s *AgentService) Update(ctx context.Context, id int64, req agent.UpdateRequest) (*agent.Agent, error) {
	if req.Name != nil && *req.Name == "" {
		return nil, validationErrorf("name must not be empty")
	}
	return s.store.UpdateAgent(ctx, id, req)
}

// Delete removes an agent. Tool bindings are removed with it; the tools
// themselves survive.
func (s *AgentService) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteAgent(ctx, id)
}

// BindTool attaches a tool to an agent. Binding twice is a no-op.
func (s *AgentService) BindTool(ctx context.Context, agentID, toolID int64) error {
	return s.store.BindTool(ctx, agentID, toolID)
}

// UnbindTool detaches a tool from an agent.
func (s *AgentService) UnbindTool(ctx context.Context, agentID, toolID int64) error {
	return s.store.UnbindTool(ctx, agentID, toolID)
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/agenthub/agenthub/internal/domain"
	"github.com/agenthub/agenthub/internal/domain/agent"
	"github.com/agenthub/agenthub/internal/domain/tool"
)

const agentColumns = `id, name, description, code, config, is_active, version, created_at, updated_at`

func scanAgent(row pgx.Row) (agent.Agent, error) {
	var a agent.Agent
	err := row.Scan(&a.ID, &a.Name, &a.Description, &a.Code, &a.Config, &a.IsActive, &a.Version, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return a, err
	}
	return a, nil
}

// ListAgents returns agents with their bound tools, ordered by id.
func (s *Store) ListAgents(ctx context.Context, limit, offset int) ([]agent.Agent, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+agentColumns+` FROM agents ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	defer rows.Close()

	var agents []agent.Agent
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan agent: %w", err)
		}
		agents = append(agents, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range agents {
		tools, err := s.agentTools(ctx, agents[i].ID)
		if err != nil {
			return nil, err
		}
		agents[i].Tools = tools
	}
	return agents, nil
}

// CountAgents returns the total number of agents.
func (s *Store) CountAgents(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM agents`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count agents: %w", err)
	}
	return count, nil
}

// GetAgent returns an agent by id with its bound tools loaded.
func (s *Store) GetAgent(ctx context.Context, id int64) (*agent.Agent, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+agentColumns+` FROM agents WHERE id = $1`, id)

	a, err := scanAgent(row)
	if err != nil {
		return nil, notFoundWrap(err, "get agent %d", id)
	}

	a.Tools, err = s.agentTools(ctx, id)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// agentTools loads the tools bound to an agent, ordered by tool id so that
// type-based resolution is deterministic.
func (s *Store) agentTools(ctx context.Context, agentID int64) ([]tool.Tool, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT t.id, t.name, t.description, t.type, t.config, t.is_active, t.version, t.created_at, t.updated_at
		 FROM tools t
		 JOIN agent_tools at ON at.tool_id = t.id
		 WHERE at.agent_id = $1
		 ORDER BY t.id`, agentID)
	if err != nil {
		return nil, fmt.Errorf("agent %d tools: %w", agentID, err)
	}
	defer rows.Close()

	tools := []tool.Tool{}
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, fmt.Errorf("scan agent tool: %w", err)
		}
		tools = append(tools, t)
	}
	return tools, rows.Err()
}

// CreateAgent creates a new agent with no tool bindings.
func (s *Store) CreateAgent(ctx context.Context, req agent.CreateRequest) (*agent.Agent, error) {
	configJSON, err := marshalConfig(req.Config)
	if err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO agents (name, description, code, config, is_active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+agentColumns,
		req.Name, req.Description, req.Code, configJSON, isActive)

	a, err := scanAgent(row)
	if err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}
	a.Tools = []tool.Tool{}
	return &a, nil
}

// UpdateAgent applies the non-nil fields of req to the agent.
func (s *Store) UpdateAgent(ctx context.Context, id int64, req agent.UpdateRequest) (*agent.Agent, error) {
	a, err := s.GetAgent(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.Code != nil {
		a.Code = *req.Code
	}
	if req.Config != nil {
		a.Config = *req.Config
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}

	configJSON, err := marshalConfig(a.Config)
	if err != nil {
		return nil, err
	}

	row := s.pool.QueryRow(ctx,
		`UPDATE agents
		 SET name = $2, description = $3, code = $4, config = $5, is_active = $6, version = version + 1, updated_at = NOW()
		 WHERE id = $1 AND version = $7
		 RETURNING `+agentColumns,
		id, a.Name, a.Description, a.Code, configJSON, a.IsActive, a.Version)

	updated, err := scanAgent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("update agent %d: %w", id, domain.ErrConflict)
		}
		return nil, fmt.Errorf("update agent %d: %w", id, err)
	}
	updated.Tools = a.Tools
	return &updated, nil
}

// DeleteAgent removes an agent. Its tool bindings cascade; the tools stay.
func (s *Store) DeleteAgent(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM agents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete agent %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete agent %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// BindTool binds a tool to an agent. Binding twice is a no-op.
func (s *Store) BindTool(ctx context.Context, agentID, toolID int64) error {
	if _, err := s.GetAgent(ctx, agentID); err != nil {
		return err
	}
	if _, err := s.GetTool(ctx, toolID); err != nil {
		return err
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO agent_tools (agent_id, tool_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`, agentID, toolID)
	if err != nil {
		return fmt.Errorf("bind tool %d to agent %d: %w", toolID, agentID, err)
	}
	return nil
}

// UnbindTool removes a tool binding from an agent.
func (s *Store) UnbindTool(ctx context.Context, agentID, toolID int64) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM agent_tools WHERE agent_id = $1 AND tool_id = $2`, agentID, toolID)
	if err != nil {
		return fmt.Errorf("unbind tool %d from agent %d: %w", toolID, agentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("unbind tool %d from agent %d: %w", toolID, agentID, domain.ErrNotFound)
	}
	return nil
}

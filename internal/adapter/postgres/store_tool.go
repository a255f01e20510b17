package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/agenthub/agenthub/internal/domain"
	"github.com/agenthub/agenthub/internal/domain/tool"
)

const toolColumns = `id, name, description, type, config, is_active, version, created_at, updated_at`

func scanTool(row pgx.Row) (tool.Tool, error) {
	var t tool.Tool
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Type, &t.Config, &t.IsActive, &t.Version, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return t, err
	}
	return t, nil
}

// ListTools returns tools ordered by id with limit/offset pagination.
func (s *Store) ListTools(ctx context.Context, limit, offset int) ([]tool.Tool, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+toolColumns+` FROM tools ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	defer rows.Close()

	var tools []tool.Tool
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tool: %w", err)
		}
		tools = append(tools, t)
	}
	return tools, rows.Err()
}

// CountTools returns the total number of tools.
func (s *Store) CountTools(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tools`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count tools: %w", err)
	}
	return count, nil
}

// GetTool returns a tool by id.
func (s *Store) GetTool(ctx context.Context, id int64) (*tool.Tool, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+toolColumns+` FROM tools WHERE id = $1`, id)

	t, err := scanTool(row)
	if err != nil {
		return nil, notFoundWrap(err, "get tool %d", id)
	}
	return &t, nil
}

// CreateTool registers a new tool.
func (s *Store) CreateTool(ctx context.Context, req tool.CreateRequest) (*tool.Tool, error) {
	configJSON, err := marshalConfig(req.Config)
	if err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO tools (name, description, type, config, is_active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+toolColumns,
		req.Name, req.Description, req.Type, configJSON, isActive)

	t, err := scanTool(row)
	if err != nil {
		return nil, fmt.Errorf("create tool: %w", err)
	}
	return &t, nil
}

// UpdateTool applies the non-nil fields of req to the tool.
func (s *Store) UpdateTool(ctx context.Context, id int64, req tool.UpdateRequest) (*tool.Tool, error) {
	t, err := s.GetTool(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Config != nil {
		t.Config = *req.Config
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	configJSON, err := marshalConfig(t.Config)
	if err != nil {
		return nil, err
	}

	row := s.pool.QueryRow(ctx,
		`UPDATE tools
		 SET name = $2, description = $3, config = $4, is_active = $5, version = version + 1, updated_at = NOW()
		 WHERE id = $1 AND version = $6
		 RETURNING `+toolColumns,
		id, t.Name, t.Description, configJSON, t.IsActive, t.Version)

	updated, err := scanTool(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("update tool %d: %w", id, domain.ErrConflict)
		}
		return nil, fmt.Errorf("update tool %d: %w", id, err)
	}
	return &updated, nil
}

// DeleteTool removes a tool. Bindings and execution logs referencing it are
// removed by the cascading foreign keys.
func (s *Store) DeleteTool(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tools WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tool %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete tool %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/agenthub/agenthub/internal/domain"
	"github.com/agenthub/agenthub/internal/domain/execlog"
)

const logColumns = `id, tool_id, action, status, details, error_message, created_at`

func scanLogEntry(row pgx.Row) (execlog.Entry, error) {
	var e execlog.Entry
	err := row.Scan(&e.ID, &e.ToolID, &e.Action, &e.Status, &e.Details, &e.ErrorMessage, &e.CreatedAt)
	if err != nil {
		return e, err
	}
	return e, nil
}

// AppendLog inserts one execution log entry and returns its id.
// Entries are append-only; there is no update path.
func (s *Store) AppendLog(ctx context.Context, entry *execlog.Entry) (int64, error) {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO execution_logs (tool_id, action, status, details, error_message)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		entry.ToolID, entry.Action, entry.Status, entry.Details, entry.ErrorMessage).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("append log: %w", err)
	}
	return entry.ID, nil
}

// ListLogs returns log entries ordered newest first.
func (s *Store) ListLogs(ctx context.Context, limit, offset int) ([]execlog.Entry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+logColumns+` FROM execution_logs ORDER BY id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	return collectLogEntries(rows)
}

// ListToolLogs returns log entries for one tool, newest first.
func (s *Store) ListToolLogs(ctx context.Context, toolID int64, limit, offset int) ([]execlog.Entry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+logColumns+` FROM execution_logs WHERE tool_id = $1 ORDER BY id DESC LIMIT $2 OFFSET $3`,
		toolID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tool %d logs: %w", toolID, err)
	}
	defer rows.Close()

	return collectLogEntries(rows)
}

func collectLogEntries(rows pgx.Rows) ([]execlog.Entry, error) {
	var entries []execlog.Entry
	for rows.Next() {
		e, err := scanLogEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountLogs returns the total number of execution log entries.
func (s *Store) CountLogs(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM execution_logs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count logs: %w", err)
	}
	return count, nil
}

// DeleteLog removes a single log entry. The tool it references is untouched.
func (s *Store) DeleteLog(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM execution_logs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete log %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete log %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/agenthub/agenthub/internal/domain"
	"github.com/agenthub/agenthub/internal/domain/settings"
)

const settingColumns = `key, value, description, is_secret, created_at, updated_at`

func scanSetting(row pgx.Row) (settings.Setting, error) {
	var st settings.Setting
	err := row.Scan(&st.Key, &st.Value, &st.Description, &st.IsSecret, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		return st, err
	}
	return st, nil
}

// ListSettings returns all settings ordered by key.
func (s *Store) ListSettings(ctx context.Context) ([]settings.Setting, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+settingColumns+` FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var result []settings.Setting
	for rows.Next() {
		st, err := scanSetting(rows)
		if err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		result = append(result, st)
	}
	return result, rows.Err()
}

// GetSetting returns a single setting by key.
func (s *Store) GetSetting(ctx context.Context, key string) (*settings.Setting, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+settingColumns+` FROM settings WHERE key = $1`, key)

	st, err := scanSetting(row)
	if err != nil {
		return nil, notFoundWrap(err, "get setting %s", key)
	}
	return &st, nil
}

// UpsertSetting inserts or updates a setting.
func (s *Store) UpsertSetting(ctx context.Context, key string, req settings.UpsertRequest) (*settings.Setting, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO settings (key, value, description, is_secret)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (key) DO UPDATE
		 SET value = EXCLUDED.value, description = EXCLUDED.description, is_secret = EXCLUDED.is_secret, updated_at = NOW()
		 RETURNING `+settingColumns,
		key, req.Value, req.Description, req.IsSecret)

	st, err := scanSetting(row)
	if err != nil {
		return nil, fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return &st, nil
}

// UpdateSettingValue replaces just the value of an existing setting.
func (s *Store) UpdateSettingValue(ctx context.Context, key string, value json.RawMessage) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE settings SET value = $2, updated_at = NOW() WHERE key = $1`, key, value)
	if err != nil {
		return fmt.Errorf("update setting %s: %w", key, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update setting %s: %w", key, domain.ErrNotFound)
	}
	return nil
}

// DeleteSetting removes a setting by key.
func (s *Store) DeleteSetting(ctx context.Context, key string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM settings WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("delete setting %s: %w", key, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete setting %s: %w", key, domain.ErrNotFound)
	}
	return nil
}

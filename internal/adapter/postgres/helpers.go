package postgres

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/agenthub/agenthub/internal/domain"
)

// notFoundWrap maps pgx.ErrNoRows onto domain.ErrNotFound, wrapping any
// other error with the given message.
func notFoundWrap(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", msg, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// marshalConfig encodes a config map for a JSONB column. A nil map becomes
// an empty object so the column default stays meaningful.
func marshalConfig(config map[string]string) ([]byte, error) {
	if config == nil {
		config = map[string]string{}
	}
	data, err := json.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

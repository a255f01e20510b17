// Package execlog defines the execution log entry recorded for every
// tool invocation attempt. Entries are append-only: they are created once
// per attempt and never mutated afterwards.
package execlog

import (
	"encoding/json"
	"time"
)

// Entry is the persisted record of one invocation attempt.
type Entry struct {
	ID           int64           `json:"id"`
	ToolID       int64           `json:"tool_id"`
	Action       string          `json:"action"`
	Status       string          `json:"status"` // "success" or "error"
	Details      json.RawMessage `json:"details,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Page is a paginated slice of log entries.
type Page struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
	Limit   int     `json:"limit"`
	Offset  int     `json:"offset"`
}

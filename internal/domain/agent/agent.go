// Package agent defines the Agent domain entity.
package agent

import (
	"errors"
	"time"

	"github.com/agenthub/agenthub/internal/domain/tool"
)

// Agent represents a named bundle of code and config with bound tools.
type Agent struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Code        string            `json:"code"`
	Config      map[string]string `json:"config"`
	IsActive    bool              `json:"is_active"`
	Tools       []tool.Tool       `json:"tools"`
	Version     int               `json:"version"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// HasActiveToolOfType reports whether the agent has at least one active
// bound tool of the given type.
func (a *Agent) HasActiveToolOfType(t tool.Type) bool {
	for i := range a.Tools {
		if a.Tools[i].Type == t && a.Tools[i].IsActive {
			return true
		}
	}
	return false
}

// CreateRequest holds the fields needed to create a new agent.
type CreateRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Code        string            `json:"code"`
	Config      map[string]string `json:"config"`
	IsActive    *bool             `json:"is_active,omitempty"`
}

// Validate checks that a CreateRequest is well-formed.
func (r *CreateRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// UpdateRequest holds the mutable fields of an agent. Nil fields are left unchanged.
type UpdateRequest struct {
	Name        *string            `json:"name,omitempty"`
	Description *string            `json:"description,omitempty"`
	Code        *string            `json:"code,omitempty"`
	Config      *map[string]string `json:"config,omitempty"`
	IsActive    *bool              `json:"is_active,omitempty"`
}

// ExecuteRequest is the body of POST /agents/{id}/execute.
type ExecuteRequest struct {
	Action     string         `json:"action"`
	Parameters map[string]any `json:"parameters"`
}

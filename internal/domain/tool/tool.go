// Package tool defines the Tool domain entity.
package tool

import (
	"errors"
	"time"
)

// Type identifies the external integration a tool talks to.
type Type string

const (
	TypeGitHub Type = "github"
	TypeSlack  Type = "slack"
	TypeJira   Type = "jira"
)

// ValidType reports whether t is a known tool type.
func ValidType(t string) bool {
	switch Type(t) {
	case TypeGitHub, TypeSlack, TypeJira:
		return true
	}
	return false
}

// Tool represents a typed third-party integration.
type Tool struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Type        Type              `json:"type"`
	Config      map[string]string `json:"config"`
	IsActive    bool              `json:"is_active"`
	Version     int               `json:"version"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// CreateRequest holds the fields needed to register a new tool.
type CreateRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Type        string            `json:"type"`
	Config      map[string]string `json:"config"`
	IsActive    *bool             `json:"is_active,omitempty"`
}

// Validate checks that a CreateRequest is well-formed.
func (r *CreateRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if !ValidType(r.Type) {
		return errors.New("type must be one of: github, slack, jira")
	}
	return nil
}

// UpdateRequest holds the mutable fields of a tool. Nil fields are left unchanged.
type UpdateRequest struct {
	Name        *string            `json:"name,omitempty"`
	Description *string            `json:"description,omitempty"`
	Config      *map[string]string `json:"config,omitempty"`
	IsActive    *bool              `json:"is_active,omitempty"`
}

// Package toolinvoker defines the tool invoker port (interface) and capabilities.
package toolinvoker

import (
	"context"

	"github.com/agenthub/agenthub/internal/domain/tool"
)

// Capabilities declares which actions an invoker supports.
type Capabilities struct {
	Actions []string `json:"actions"`
}

// Supports reports whether the invoker handles the given action.
func (c Capabilities) Supports(action string) bool {
	for _, a := range c.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// Invoker is the port interface for executing actions against a third-party
// integration. Invoke must always return a terminal Outcome: transport
// failures, non-2xx responses and missing credentials are folded into an
// error outcome, never returned as a Go error. The error return is reserved
// for programming mistakes (unknown action for this invoker).
type Invoker interface {
	// Name returns the unique tool type this invoker serves (e.g. "github").
	Name() string

	// Capabilities returns the actions this invoker supports.
	Capabilities() Capabilities

	// Invoke performs one action against the external service.
	Invoke(ctx context.Context, t *tool.Tool, action string, params map[string]any) (tool.Outcome, error)
}

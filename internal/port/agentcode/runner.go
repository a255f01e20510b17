// Package agentcode defines the port for executing an agent's stored code.
//
// Stored code is an explicit security boundary: this port exists so that a
// sandboxed, capability-scoped runner can be plugged in, but the repository
// ships no implementation that executes arbitrary code. A nil or refusing
// runner makes unrecognized actions fail with ErrUnknownAction at the
// dispatcher instead.
package agentcode

import (
	"context"
	"errors"

	"github.com/agenthub/agenthub/internal/domain/agent"
	"github.com/agenthub/agenthub/internal/domain/tool"
)

// ErrNotSupported is returned by runners that refuse to execute stored code.
var ErrNotSupported = errors.New("agent code execution is not supported")

// Runner executes an agent's custom code for an action the dispatcher does
// not recognize. The runner receives the same parameters mapping the
// dispatcher received and must return a terminal outcome.
type Runner interface {
	Run(ctx context.Context, ag *agent.Agent, action string, params map[string]any) (tool.Outcome, error)
}

// Refusing is the default Runner: it declines every execution request.
type Refusing struct{}

// Run always returns ErrNotSupported.
func (Refusing) Run(_ context.Context, _ *agent.Agent, _ string, _ map[string]any) (tool.Outcome, error) {
	return tool.Outcome{}, ErrNotSupported
}

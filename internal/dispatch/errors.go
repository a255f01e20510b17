package dispatch

import "errors"

// Dispatch failures. All of these are recovered at the HTTP boundary and
// surfaced as a structured {status, message} response; none propagate as
// unhandled faults.
var (
	// ErrUnknownAction indicates the action is not a built-in and no
	// custom-code runner accepted it.
	ErrUnknownAction = errors.New("unknown action")

	// ErrMissingParameter indicates a required parameter is absent. The
	// wrapping error names the first missing key.
	ErrMissingParameter = errors.New("missing parameter")

	// ErrAgentNotFound indicates the agent id does not resolve.
	ErrAgentNotFound = errors.New("agent not found")

	// ErrAgentInactive indicates the agent exists but is deactivated.
	ErrAgentInactive = errors.New("agent is not active")

	// ErrNoBoundTool indicates the action needs a tool type the agent has
	// no active binding for.
	ErrNoBoundTool = errors.New("no active bound tool for action")
)

package dispatch

import "github.com/agenthub/agenthub/internal/domain/tool"

// ActionSpec describes one built-in action: the tool type that serves it and
// the parameters that must be present before anything is invoked.
type ActionSpec struct {
	Name     string
	ToolType tool.Type
	Required []string
}

// The closed set of built-in actions. Everything else falls through to the
// agent's custom-code runner.
var builtins = map[string]ActionSpec{
	"get_repositories": {
		Name:     "get_repositories",
		ToolType: tool.TypeGitHub,
	},
	"get_repo_details": {
		Name:     "get_repo_details",
		ToolType: tool.TypeGitHub,
		Required: []string{"repo"},
	},
	"list_pull_requests": {
		Name:     "list_pull_requests",
		ToolType: tool.TypeGitHub,
		Required: []string{"repo"},
	},
	"get_pull_request_details": {
		Name:     "get_pull_request_details",
		ToolType: tool.TypeGitHub,
		Required: []string{"repo", "number"},
	},
	"send_message": {
		Name:     "send_message",
		ToolType: tool.TypeSlack,
		Required: []string{"channel", "message"},
	},
	"get_issues": {
		Name:     "get_issues",
		ToolType: tool.TypeJira,
	},
}

// Builtin returns the spec for a built-in action name.
func Builtin(action string) (ActionSpec, bool) {
	spec, ok := builtins[action]
	return spec, ok
}

// missingParam returns the first required key absent from params, or "".
// A key present with a nil value counts as absent.
func (s ActionSpec) missingParam(params map[string]any) string {
	for _, key := range s.Required {
		v, ok := params[key]
		if !ok || v == nil {
			return key
		}
		if str, isStr := v.(string); isStr && str == "" {
			return key
		}
	}
	return ""
}

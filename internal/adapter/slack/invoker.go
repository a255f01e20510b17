// Package slack implements a toolinvoker.Invoker for the Slack Web API.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/agenthub/agenthub/internal/domain/tool"
	"github.com/agenthub/agenthub/internal/port/toolinvoker"
	"github.com/agenthub/agenthub/internal/resilience"
)

const (
	invokerName    = "slack"
	defaultBaseURL = "https://slack.com/api"
	tokenEnvVar    = "SLACK_TOKEN"
)

// Invoker executes Slack actions via the Web API.
type Invoker struct {
	baseURL    string
	httpClient *http.Client
	breaker    *resilience.Breaker
	token      func() string
}

// NewInvoker creates a Slack invoker. config["base_url"] overrides the API
// endpoint (used in tests).
func NewInvoker(config map[string]string) *Invoker {
	baseURL := config["base_url"]
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Invoker{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		token: func() string { return os.Getenv(tokenEnvVar) },
	}
}

// SetBreaker attaches a circuit breaker to all outgoing HTTP calls.
func (inv *Invoker) SetBreaker(b *resilience.Breaker) {
	inv.breaker = b
}

func (inv *Invoker) Name() string { return invokerName }

func (inv *Invoker) Capabilities() toolinvoker.Capabilities {
	return toolinvoker.Capabilities{Actions: []string{"send_message"}}
}

// Invoke maps an action to a Slack Web API call.
func (inv *Invoker) Invoke(ctx context.Context, _ *tool.Tool, action string, params map[string]any) (tool.Outcome, error) {
	if action != "send_message" {
		return tool.Outcome{}, fmt.Errorf("slack: unsupported action %q", action)
	}
	if inv.token() == "" {
		return tool.Failure("slack credential missing: set " + tokenEnvVar), nil
	}

	channel, _ := params["channel"].(string)
	message, _ := params["message"].(string)
	if channel == "" || message == "" {
		return tool.Failure("channel and message required"), nil
	}

	result, err := inv.postMessage(ctx, channel, message)
	if err != nil {
		return tool.Failure(err.Error()), nil
	}
	return tool.Success(result), nil
}

func (inv *Invoker) postMessage(ctx context.Context, channel, message string) (map[string]any, error) {
	payload, err := json.Marshal(map[string]string{
		"channel": channel,
		"text":    message,
	})
	if err != nil {
		return nil, fmt.Errorf("slack marshal: %w", err)
	}

	var result map[string]any
	call := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, inv.baseURL+"/chat.postMessage", bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+inv.token())
		req.Header.Set("Content-Type", "application/json")

		resp, err := inv.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("slack request failed: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("slack API returned %d: %s", resp.StatusCode, body)
		}

		if err := json.Unmarshal(body, &result); err != nil {
			return fmt.Errorf("parse slack response: %w", err)
		}
		// Slack reports application errors with HTTP 200 and ok=false.
		if ok, _ := result["ok"].(bool); !ok {
			errName, _ := result["error"].(string)
			return fmt.Errorf("slack API error: %s", errName)
		}
		return nil
	}

	if inv.breaker != nil {
		if err := inv.breaker.Execute(call); err != nil {
			return nil, err
		}
		return result, nil
	}
	if err := call(); err != nil {
		return nil, err
	}
	return result, nil
}

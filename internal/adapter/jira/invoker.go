// Package jira implements a toolinvoker.Invoker for the Jira REST API.
package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/agenthub/agenthub/internal/domain/tool"
	"github.com/agenthub/agenthub/internal/port/toolinvoker"
	"github.com/agenthub/agenthub/internal/resilience"
)

const (
	invokerName = "jira"
	tokenEnvVar = "JIRA_TOKEN"
)

// Invoker executes Jira actions. The instance base URL comes from the tool's
// config ("base_url", e.g. https://company.atlassian.net); the credential is
// read from the environment at invocation time.
type Invoker struct {
	baseURL    string
	httpClient *http.Client
	breaker    *resilience.Breaker
	token      func() string
}

// NewInvoker creates a Jira invoker for the instance in config["base_url"].
func NewInvoker(config map[string]string) *Invoker {
	return &Invoker{
		baseURL: strings.TrimSuffix(config["base_url"], "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
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
	return toolinvoker.Capabilities{Actions: []string{"get_issues"}}
}

// Invoke maps an action to a Jira REST call.
func (inv *Invoker) Invoke(ctx context.Context, _ *tool.Tool, action string, params map[string]any) (tool.Outcome, error) {
	if action != "get_issues" {
		return tool.Outcome{}, fmt.Errorf("jira: unsupported action %q", action)
	}
	if inv.token() == "" {
		return tool.Failure("jira credential missing: set " + tokenEnvVar), nil
	}
	if inv.baseURL == "" {
		return tool.Failure("jira base_url missing from tool config"), nil
	}

	jql, _ := params["jql"].(string)
	result, err := inv.searchIssues(ctx, jql)
	if err != nil {
		return tool.Failure(err.Error()), nil
	}
	return tool.Success(result), nil
}

func (inv *Invoker) searchIssues(ctx context.Context, jql string) (map[string]any, error) {
	query := url.Values{}
	if jql != "" {
		query.Set("jql", jql)
	}

	var result map[string]any
	call := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, inv.baseURL+"/rest/api/2/search?"+query.Encode(), nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Authorization", "Basic "+inv.token())
		req.Header.Set("Content-Type", "application/json")

		resp, err := inv.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("jira request failed: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("jira API returned %d: %s", resp.StatusCode, body)
		}

		if err := json.Unmarshal(body, &result); err != nil {
			return fmt.Errorf("parse jira response: %w", err)
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

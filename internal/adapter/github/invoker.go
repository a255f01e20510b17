// Package github implements a toolinvoker.Invoker for the GitHub REST API v3.
package github

import (
	"context"
	"encoding/json"
	"errors"
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
	invokerName    = "github"
	defaultBaseURL = "https://api.github.com"
	tokenEnvVar    = "GITHUB_TOKEN"
)

// Invoker executes GitHub actions. The token is read from the environment at
// invocation time and is never persisted.
type Invoker struct {
	baseURL    string
	httpClient *http.Client
	breaker    *resilience.Breaker
	token      func() string
}

// NewInvoker creates a GitHub invoker. config["base_url"] overrides the API
// endpoint (used against GitHub Enterprise and in tests).
func NewInvoker(config map[string]string) *Invoker {
	baseURL := config["base_url"]
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Invoker{
		baseURL: strings.TrimSuffix(baseURL, "/"),
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
	return toolinvoker.Capabilities{
		Actions: []string{"get_repositories", "get_repo_details", "list_pull_requests", "get_pull_request_details"},
	}
}

// Invoke maps an action to the GitHub API call that serves it. External
// faults (missing credential, non-2xx, network failure, timeout) are folded
// into an error outcome; the error return is reserved for actions this
// invoker does not implement.
func (inv *Invoker) Invoke(ctx context.Context, _ *tool.Tool, action string, params map[string]any) (tool.Outcome, error) {
	if inv.token() == "" {
		return tool.Failure("github credential missing: set " + tokenEnvVar), nil
	}

	var (
		data any
		err  error
	)
	switch action {
	case "get_repositories":
		data, err = inv.getRepositories(ctx, params)
	case "get_repo_details":
		data, err = inv.getRepoDetails(ctx, params)
	case "list_pull_requests":
		data, err = inv.listPullRequests(ctx, params)
	case "get_pull_request_details":
		data, err = inv.getPullRequestDetails(ctx, params)
	default:
		return tool.Outcome{}, fmt.Errorf("github: unsupported action %q", action)
	}

	if err != nil {
		return tool.Failure(err.Error()), nil
	}
	return tool.Success(data), nil
}

func (inv *Invoker) getRepositories(ctx context.Context, params map[string]any) ([]Repository, error) {
	query := url.Values{}
	query.Set("per_page", paramString(params, "per_page", "10"))
	query.Set("sort", paramString(params, "sort_by", "updated"))
	query.Set("direction", paramString(params, "sort_direction", "desc"))

	body, err := inv.doRequest(ctx, "/user/repos?"+query.Encode())
	if err != nil {
		return nil, err
	}

	repos, err := decodeRepositories(body)
	if err != nil {
		return nil, err
	}

	repos = filterRepositories(repos, params)
	return applyLimit(repos, params), nil
}

func (inv *Invoker) getRepoDetails(ctx context.Context, params map[string]any) (any, error) {
	repo, err := inv.qualifyRepo(ctx, paramString(params, "repo", ""))
	if err != nil {
		return nil, err
	}

	body, err := inv.doRequest(ctx, "/repos/"+repo)
	if err != nil {
		return nil, err
	}

	var details map[string]any
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("parse repo details: %w", err)
	}
	return details, nil
}

func (inv *Invoker) listPullRequests(ctx context.Context, params map[string]any) ([]PullRequest, error) {
	repo, err := inv.qualifyRepo(ctx, paramString(params, "repo", ""))
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("state", paramString(params, "state", "open"))
	query.Set("sort", paramString(params, "sort_by", "created"))
	query.Set("direction", paramString(params, "direction", "desc"))
	query.Set("per_page", paramString(params, "per_page", "10"))

	body, err := inv.doRequest(ctx, "/repos/"+repo+"/pulls?"+query.Encode())
	if err != nil {
		return nil, err
	}

	prs, err := decodePullRequests(body)
	if err != nil {
		return nil, err
	}

	prs = filterPullRequests(prs, params)
	return applyLimit(prs, params), nil
}

func (inv *Invoker) getPullRequestDetails(ctx context.Context, params map[string]any) (*PullRequestDetails, error) {
	repo, err := inv.qualifyRepo(ctx, paramString(params, "repo", ""))
	if err != nil {
		return nil, err
	}
	number, ok := paramInt(params, "number")
	if !ok {
		return nil, errors.New("pull request number must be numeric")
	}

	body, err := inv.doRequest(ctx, fmt.Sprintf("/repos/%s/pulls/%d", repo, number))
	if err != nil {
		return nil, err
	}
	details, err := decodePullRequestDetails(body)
	if err != nil {
		return nil, err
	}

	// Discussion comments live on the issues endpoint.
	commentsBody, err := inv.doRequest(ctx, fmt.Sprintf("/repos/%s/issues/%d/comments", repo, number))
	if err != nil {
		return nil, err
	}
	comments, err := decodeComments(commentsBody)
	if err != nil {
		return nil, err
	}
	details.Comments = comments

	return details, nil
}

// qualifyRepo expands a bare repository name to owner/repo using the
// authenticated user's login.
func (inv *Invoker) qualifyRepo(ctx context.Context, repo string) (string, error) {
	if repo == "" {
		return "", errors.New("repository name required")
	}
	if strings.Contains(repo, "/") {
		return repo, nil
	}

	body, err := inv.doRequest(ctx, "/user")
	if err != nil {
		return "", fmt.Errorf("resolve repository owner: %w", err)
	}
	var user struct {
		Login string `json:"login"`
	}
	if err := json.Unmarshal(body, &user); err != nil || user.Login == "" {
		return "", errors.New("repository must be in the format 'owner/repo'")
	}
	return user.Login + "/" + repo, nil
}

func (inv *Invoker) doRequest(ctx context.Context, path string) ([]byte, error) {
	var result []byte
	call := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, inv.baseURL+path, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Authorization", "token "+inv.token())
		req.Header.Set("Accept", "application/vnd.github.v3+json")

		resp, err := inv.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("github request failed: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("github API returned %d for %s: %s", resp.StatusCode, path, truncate(string(body), 200))
		}

		result = body
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

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

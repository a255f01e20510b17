package github

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Canonical response shapes. Normalization of the upstream payload happens
// here, at the third-party boundary, and nowhere else: callers only ever see
// one field set.

// Repository is the canonical repository record.
type Repository struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Stars       int    `json:"stars"`
	Forks       int    `json:"forks"`
	Language    string `json:"language"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	PushedAt    string `json:"pushed_at"`
	IsPrivate   bool   `json:"is_private"`
	IsFork      bool   `json:"is_fork"`
	Size        int    `json:"size"`
}

// User is the canonical author record on pull requests and comments.
type User struct {
	Login      string `json:"login"`
	AvatarURL  string `json:"avatar_url"`
	ProfileURL string `json:"profile_url"`
}

// Label is the canonical label record.
type Label struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// PullRequest is the canonical pull request list record.
type PullRequest struct {
	Number    int     `json:"number"`
	Title     string  `json:"title"`
	URL       string  `json:"url"`
	State     string  `json:"state"`
	User      User    `json:"user"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
	ClosedAt  string  `json:"closed_at,omitempty"`
	MergedAt  string  `json:"merged_at,omitempty"`
	Draft     bool    `json:"draft"`
	Labels    []Label `json:"labels"`
}

// Comment is one discussion comment on a pull request.
type Comment struct {
	ID        int64  `json:"id"`
	Body      string `json:"body"`
	User      User   `json:"user"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// PullRequestDetails is the canonical single-PR record with comments.
type PullRequestDetails struct {
	PullRequest
	Body     string    `json:"body"`
	Comments []Comment `json:"comments"`
}

// rawRepo mirrors the upstream repository JSON, tolerating the historical
// field split between "stars" and "stargazers_count".
type rawRepo struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	HTMLURL         string `json:"html_url"`
	Stars           *int   `json:"stars"`
	StargazersCount *int   `json:"stargazers_count"`
	ForksCount      int    `json:"forks_count"`
	Language        string `json:"language"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
	PushedAt        string `json:"pushed_at"`
	Private         bool   `json:"private"`
	Fork            bool   `json:"fork"`
	Size            int    `json:"size"`
}

func (r *rawRepo) normalize() Repository {
	stars := 0
	switch {
	case r.StargazersCount != nil:
		stars = *r.StargazersCount
	case r.Stars != nil:
		stars = *r.Stars
	}
	return Repository{
		Name:        r.Name,
		Description: r.Description,
		URL:         r.HTMLURL,
		Stars:       stars,
		Forks:       r.ForksCount,
		Language:    r.Language,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		PushedAt:    r.PushedAt,
		IsPrivate:   r.Private,
		IsFork:      r.Fork,
		Size:        r.Size,
	}
}

// decodeRepositories accepts either a bare JSON array or an envelope object
// keyed "repos" or "repositories" (both forms have been observed upstream).
func decodeRepositories(body []byte) ([]Repository, error) {
	var raw []rawRepo
	if err := json.Unmarshal(body, &raw); err != nil {
		var envelope struct {
			Repos        []rawRepo `json:"repos"`
			Repositories []rawRepo `json:"repositories"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("parse repositories: %w", err)
		}
		raw = envelope.Repos
		if len(raw) == 0 {
			raw = envelope.Repositories
		}
	}

	repos := make([]Repository, 0, len(raw))
	for i := range raw {
		repos = append(repos, raw[i].normalize())
	}
	return repos, nil
}

type rawUser struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
}

func (u *rawUser) normalize() User {
	return User{Login: u.Login, AvatarURL: u.AvatarURL, ProfileURL: u.HTMLURL}
}

type rawPR struct {
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	HTMLURL   string     `json:"html_url"`
	State     string     `json:"state"`
	User      rawUser    `json:"user"`
	CreatedAt string     `json:"created_at"`
	UpdatedAt string     `json:"updated_at"`
	ClosedAt  string     `json:"closed_at"`
	MergedAt  string     `json:"merged_at"`
	Draft     bool       `json:"draft"`
	Labels    []rawLabel `json:"labels"`
}

type rawLabel struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (pr *rawPR) normalize() PullRequest {
	labels := make([]Label, 0, len(pr.Labels))
	for _, l := range pr.Labels {
		labels = append(labels, Label{Name: l.Name, Color: l.Color})
	}
	return PullRequest{
		Number:    pr.Number,
		Title:     pr.Title,
		URL:       pr.HTMLURL,
		State:     pr.State,
		User:      pr.User.normalize(),
		CreatedAt: pr.CreatedAt,
		UpdatedAt: pr.UpdatedAt,
		ClosedAt:  pr.ClosedAt,
		MergedAt:  pr.MergedAt,
		Draft:     pr.Draft,
		Labels:    labels,
	}
}

func decodePullRequests(body []byte) ([]PullRequest, error) {
	var raw []rawPR
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse pull requests: %w", err)
	}
	prs := make([]PullRequest, 0, len(raw))
	for i := range raw {
		prs = append(prs, raw[i].normalize())
	}
	return prs, nil
}

func decodePullRequestDetails(body []byte) (*PullRequestDetails, error) {
	var raw rawPR
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse pull request: %w", err)
	}
	return &PullRequestDetails{
		PullRequest: raw.normalize(),
		Body:        raw.Body,
		Comments:    []Comment{},
	}, nil
}

type rawComment struct {
	ID        int64   `json:"id"`
	Body      string  `json:"body"`
	User      rawUser `json:"user"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func decodeComments(body []byte) ([]Comment, error) {
	var raw []rawComment
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse comments: %w", err)
	}
	comments := make([]Comment, 0, len(raw))
	for _, c := range raw {
		comments = append(comments, Comment{
			ID:        c.ID,
			Body:      c.Body,
			User:      c.User.normalize(),
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	return comments, nil
}

// filterRepositories applies the client-side filters the API does not offer.
func filterRepositories(repos []Repository, params map[string]any) []Repository {
	if lang, ok := params["language"].(string); ok && lang != "" {
		want := strings.ToLower(lang)
		filtered := repos[:0]
		for _, r := range repos {
			if r.Language != "" && strings.ToLower(r.Language) == want {
				filtered = append(filtered, r)
			}
		}
		repos = filtered
	}
	if fork, ok := paramBool(params, "is_fork"); ok {
		filtered := repos[:0]
		for _, r := range repos {
			if r.IsFork == fork {
				filtered = append(filtered, r)
			}
		}
		repos = filtered
	}
	if private, ok := paramBool(params, "is_private"); ok {
		filtered := repos[:0]
		for _, r := range repos {
			if r.IsPrivate == private {
				filtered = append(filtered, r)
			}
		}
		repos = filtered
	}
	return repos
}

func filterPullRequests(prs []PullRequest, params map[string]any) []PullRequest {
	if author, ok := params["author"].(string); ok && author != "" {
		want := strings.ToLower(author)
		filtered := prs[:0]
		for _, pr := range prs {
			if strings.ToLower(pr.User.Login) == want {
				filtered = append(filtered, pr)
			}
		}
		prs = filtered
	}
	if draft, ok := paramBool(params, "is_draft"); ok {
		filtered := prs[:0]
		for _, pr := range prs {
			if pr.Draft == draft {
				filtered = append(filtered, pr)
			}
		}
		prs = filtered
	}
	return prs
}

// applyLimit truncates the slice to params["limit"] when it is a positive
// number.
func applyLimit[T any](items []T, params map[string]any) []T {
	limit, ok := paramInt(params, "limit")
	if !ok || limit <= 0 || limit >= len(items) {
		return items
	}
	return items[:limit]
}

// paramString returns params[key] coerced to a string, or fallback.
// Values are passed through after coercion only; the external service is the
// source of truth for their legality.
func paramString(params map[string]any, key, fallback string) string {
	v, ok := params[key]
	if !ok || v == nil {
		return fallback
	}
	switch val := v.(type) {
	case string:
		if val == "" {
			return fallback
		}
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// paramInt returns params[key] coerced to an int. JSON numbers arrive as
// float64; strings are parsed.
func paramInt(params map[string]any, key string) (int, bool) {
	v, ok := params[key]
	if !ok || v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case float64:
		return int(val), true
	case int:
		return val, true
	case int64:
		return int(val), true
	case string:
		n, err := strconv.Atoi(val)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func paramBool(params map[string]any, key string) (bool, bool) {
	v, ok := params[key]
	if !ok || v == nil {
		return false, false
	}
	switch val := v.(type) {
	case bool:
		return val, true
	case string:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return false, false
		}
		return b, true
	default:
		return false, false
	}
}

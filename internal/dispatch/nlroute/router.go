// Package nlroute pattern-matches free-text queries into dispatch requests.
//
// The router is a single-pass, stateless classifier: an ordered list of
// matchers is tried in sequence and the first match wins. Queries that match
// nothing fall through to the caller's generic LLM completion path.
package nlroute

import (
	"regexp"
	"strings"
)

// DispatchRequest is the structured action a query was routed to.
type DispatchRequest struct {
	Action     string         `json:"action"`
	Parameters map[string]any `json:"parameters"`
}

var (
	repoListRe = regexp.MustCompile(`(?i)\b(list|show|get|display|what are)\b.*\b(repos|repositories)\b`)
	prListRe   = regexp.MustCompile(`(?i)\b(list|show|get|display|what are)\b.*\b(pull requests?|prs?)\b`)

	// repoAfterPrep captures the token following "in", "for" or "from":
	// "pull requests in owner/repo".
	repoAfterPrep = regexp.MustCompile(`(?i)\b(?:in|for|from)\s+([\w.-]+/?[\w.-]*)`)

	// repoBeforeNoun captures the token preceding "repo" or "repository":
	// "the owner/repo repository".
	repoBeforeNoun = regexp.MustCompile(`(?i)([\w.-]+/?[\w.-]*)\s+(?:repo|repository)\b`)
)

// Route classifies a query. The second return value is false when no pattern
// matched and the caller should fall back to the LLM path.
func Route(query string) (*DispatchRequest, bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, false
	}

	// Pull-request phrasings are checked first: "show pull requests in my
	// repos" is about PRs, not repository listing.
	if prListRe.MatchString(q) {
		params := map[string]any{"state": "open"}
		if repo := extractRepo(q); repo != "" {
			params["repo"] = repo
		}
		return &DispatchRequest{Action: "list_pull_requests", Parameters: params}, true
	}

	if repoListRe.MatchString(q) {
		return &DispatchRequest{
			Action:     "get_repositories",
			Parameters: map[string]any{"per_page": 10, "sort_by": "updated", "sort_direction": "desc"},
		}, true
	}

	return nil, false
}

// extractRepo pulls a repository name out of a query using two heuristics:
// the token after in/for/from, then the token before repo/repository.
// Surrounding punctuation is stripped; common stop words are rejected.
func extractRepo(q string) string {
	if m := repoAfterPrep.FindStringSubmatch(q); m != nil {
		if repo := cleanRepoToken(m[1]); repo != "" {
			return repo
		}
	}
	if m := repoBeforeNoun.FindStringSubmatch(q); m != nil {
		if repo := cleanRepoToken(m[1]); repo != "" {
			return repo
		}
	}
	return ""
}

var repoStopWords = map[string]bool{
	"my": true, "the": true, "a": true, "an": true, "this": true,
	"that": true, "github": true, "all": true, "our": true,
}

func cleanRepoToken(tok string) string {
	tok = strings.Trim(tok, `.,:;!?'"`)
	tok = strings.TrimSuffix(tok, "/")
	if tok == "" || repoStopWords[strings.ToLower(tok)] {
		return ""
	}
	return tok
}

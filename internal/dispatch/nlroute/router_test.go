package nlroute

import "testing"

func TestRouteRepositoryListing(t *testing.T) {
	queries := []string{
		"show my github repositories",
		"list all repos",
		"what are my repositories?",
		"display repos",
	}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			req, ok := Route(q)
			if !ok {
				t.Fatalf("expected a match for %q", q)
			}
			if req.Action != "get_repositories" {
				t.Errorf("expected get_repositories, got %s", req.Action)
			}
			if req.Parameters["per_page"] != 10 {
				t.Errorf("expected default per_page 10, got %v", req.Parameters["per_page"])
			}
			if req.Parameters["sort_by"] != "updated" || req.Parameters["sort_direction"] != "desc" {
				t.Errorf("unexpected sort defaults: %v", req.Parameters)
			}
		})
	}
}

func TestRoutePullRequests(t *testing.T) {
	tests := []struct {
		query    string
		wantRepo string
	}{
		{"show pull requests in octocat/hello-world", "octocat/hello-world"},
		{"list PRs for backend-api", "backend-api"},
		{"what are the open pull requests in the octocat/hello-world repository?", "octocat/hello-world"},
		{"show prs", ""},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req, ok := Route(tt.query)
			if !ok {
				t.Fatalf("expected a match for %q", tt.query)
			}
			if req.Action != "list_pull_requests" {
				t.Errorf("expected list_pull_requests, got %s", req.Action)
			}
			if req.Parameters["state"] != "open" {
				t.Errorf("expected default state open, got %v", req.Parameters["state"])
			}
			repo, _ := req.Parameters["repo"].(string)
			if repo != tt.wantRepo {
				t.Errorf("expected repo %q, got %q", tt.wantRepo, repo)
			}
		})
	}
}

// Pull-request phrasings must win over repository phrasings when both nouns
// appear in one query.
func TestRoutePullRequestsBeforeRepos(t *testing.T) {
	req, ok := Route("show pull requests in my repos")
	if !ok {
		t.Fatal("expected a match")
	}
	if req.Action != "list_pull_requests" {
		t.Errorf("expected list_pull_requests, got %s", req.Action)
	}
}

func TestRouteFallback(t *testing.T) {
	queries := []string{
		"summarize quantum physics",
		"hello there",
		"",
		"   ",
		"delete my repositories", // verb outside the matcher set
	}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			if req, ok := Route(q); ok {
				t.Errorf("expected fallback for %q, got %+v", q, req)
			}
		})
	}
}

func TestExtractRepo(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"prs in octocat/hello-world", "octocat/hello-world"},
		{"prs for backend-api.", "backend-api"},
		{"the billing-svc repository", "billing-svc"},
		{"prs in my repos", ""},      // stop word
		{"prs from the project", ""}, // stop word
		{"prs in octocat/hello-world/", "octocat/hello-world"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := extractRepo(tt.query); got != tt.want {
				t.Errorf("extractRepo(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

package gh_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/devpost/pkg/domain/model"
	"github.com/m-mizutani/devpost/pkg/domain/types"
	"github.com/m-mizutani/devpost/pkg/infra/gh"
	"github.com/m-mizutani/devpost/pkg/utils/retry"
	"github.com/m-mizutani/devpost/pkg/utils/testutil"
	"github.com/m-mizutani/gt"
)

func newTestClient(t *testing.T, mux *http.ServeMux, opts ...gh.Option) *gh.Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	options := append([]gh.Option{
		gh.WithBaseURL(srv.URL),
		gh.WithRetryPolicy(retry.Policy{MaxRetries: 1, MaxDelay: time.Second}),
		gh.WithSourceConfig(model.SourceConfig{
			MaxRepositoryPages: 3,
			RequestsPerSecond:  1000,
			Burst:              100,
		}),
	}, opts...)

	return gt.R1(gh.New(options...)).NoError(t)
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	gt.NoError(t, json.NewEncoder(w).Encode(v))
}

var testRepo = &model.Repository{
	ID:            "alice/parser",
	Owner:         "alice",
	Name:          "parser",
	DefaultBranch: "main",
}

func TestNew(t *testing.T) {
	t.Run("token and GitHub App are exclusive", func(t *testing.T) {
		_, err := gh.New(
			gh.WithToken("ghp_xxx"),
			gh.WithGitHubApp(1, 2, "pem"),
		)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("GitHub App requires installation ID", func(t *testing.T) {
		_, err := gh.New(gh.WithGitHubApp(1, 0, "pem"))
		gt.Error(t, err)
	})

	t.Run("GitHub App with invalid key fails", func(t *testing.T) {
		_, err := gh.New(gh.WithGitHubApp(1, 2, "invalid-key"))
		gt.Error(t, err)
	})

	t.Run("token client can be created", func(t *testing.T) {
		gt.R1(gh.New(gh.WithToken("ghp_xxx"))).NoError(t)
	})
}

func TestListRepositories(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/alice/repos", func(w http.ResponseWriter, r *http.Request) {
		gt.V(t, r.URL.Query().Get("type")).Equal("owner")
		gt.V(t, r.URL.Query().Get("sort")).Equal("updated")

		switch r.URL.Query().Get("page") {
		case "", "1":
			w.Header().Set("Link", `<`+"http://"+r.Host+`/users/alice/repos?page=2>; rel="next"`)
			writeJSON(t, w, []map[string]any{
				{"name": "old", "owner": map[string]any{"login": "alice"}, "updated_at": "2024-01-01T00:00:00Z", "pushed_at": "2024-01-01T00:00:00Z"},
				{"name": "forked", "owner": map[string]any{"login": "alice"}, "fork": true, "updated_at": "2024-06-01T00:00:00Z"},
				{"name": "archived", "owner": map[string]any{"login": "alice"}, "archived": true, "updated_at": "2024-06-01T00:00:00Z"},
			})
		case "2":
			writeJSON(t, w, []map[string]any{
				{"name": "new", "owner": map[string]any{"login": "alice"}, "default_branch": "main", "updated_at": "2024-02-01T00:00:00Z", "pushed_at": "2024-05-01T00:00:00Z"},
			})
		}
	})

	client := newTestClient(t, mux)
	repos := gt.R1(client.ListRepositories(context.Background(), "alice")).NoError(t)

	gt.A(t, repos).Length(2)
	gt.V(t, repos[0].ID).Equal(types.GitHubRepoID("alice/new"))
	gt.V(t, repos[0].DefaultBranch).Equal(types.BranchName("main"))
	gt.V(t, repos[0].LastActivity()).Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	gt.V(t, repos[1].ID).Equal(types.GitHubRepoID("alice/old"))
}

func TestListRepositoriesEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/bob/repos", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]any{})
	})

	client := newTestClient(t, mux)
	repos := gt.R1(client.ListRepositories(context.Background(), "bob")).NoError(t)
	gt.V(t, len(repos)).Equal(0)
	gt.True(t, repos != nil)
}

func TestListRepositoriesUnavailable(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/alice/repos", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client := newTestClient(t, mux)
	_, err := client.ListRepositories(context.Background(), "alice")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrSourceUnavailable))
}

func rateLimited(w http.ResponseWriter) {
	w.Header().Set("X-RateLimit-Limit", "60")
	w.Header().Set("X-RateLimit-Remaining", "0")
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(-time.Second).Unix(), 10))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`{"message":"API rate limit exceeded"}`))
}

func TestRateLimit(t *testing.T) {
	t.Run("retry once then succeed", func(t *testing.T) {
		var calls atomic.Int32
		mux := http.NewServeMux()
		mux.HandleFunc("GET /users/alice/repos", func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				rateLimited(w)
				return
			}
			writeJSON(t, w, []map[string]any{{"name": "parser", "owner": map[string]any{"login": "alice"}}})
		})

		client := newTestClient(t, mux)
		repos := gt.R1(client.ListRepositories(context.Background(), "alice")).NoError(t)
		gt.A(t, repos).Length(1)
		gt.V(t, calls.Load()).Equal(int32(2))
	})

	t.Run("escalate after retry budget", func(t *testing.T) {
		var calls atomic.Int32
		mux := http.NewServeMux()
		mux.HandleFunc("GET /users/alice/repos", func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			rateLimited(w)
		})

		client := newTestClient(t, mux)
		_, err := client.ListRepositories(context.Background(), "alice")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrRateLimited))
		gt.V(t, calls.Load()).Equal(int32(2))
	})
}

func TestListMergedPullRequests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/alice/parser/pulls", func(w http.ResponseWriter, r *http.Request) {
		gt.V(t, r.URL.Query().Get("state")).Equal("closed")
		gt.V(t, r.URL.Query().Get("per_page")).Equal("4")
		writeJSON(t, w, []map[string]any{
			{"number": 3, "title": "closed without merge"},
			{"number": 2, "title": "older", "merged_at": "2024-03-01T00:00:00Z", "user": map[string]any{"login": "alice"}},
			{"number": 4, "title": "newer", "merged_at": "2024-04-01T00:00:00Z", "user": map[string]any{"login": "alice"}},
		})
	})

	client := newTestClient(t, mux)
	prs := gt.R1(client.ListMergedPullRequests(context.Background(), testRepo, 2)).NoError(t)
	gt.A(t, prs).Length(2)
	gt.V(t, prs[0].Number).Equal(4)
	gt.V(t, prs[0].Repository).Equal(types.GitHubRepoID("alice/parser"))
	gt.V(t, prs[1].Number).Equal(2)
}

func TestEmptyRepository(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusConflict, http.StatusUnavailableForLegalReasons} {
		t.Run(strconv.Itoa(status), func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("GET /repos/alice/parser/pulls", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			})
			mux.HandleFunc("GET /repos/alice/parser/commits", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			})

			client := newTestClient(t, mux)
			prs := gt.R1(client.ListMergedPullRequests(context.Background(), testRepo, 5)).NoError(t)
			gt.V(t, len(prs)).Equal(0)
			commits := gt.R1(client.ListCommits(context.Background(), testRepo, "alice", 3)).NoError(t)
			gt.V(t, len(commits)).Equal(0)
		})
	}
}

func TestGetPullRequest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/alice/parser/pulls/42", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"number":        42,
			"title":         "Add streaming mode",
			"body":          "Adds a streaming tokenizer",
			"merged_at":     "2024-04-01T00:00:00Z",
			"user":          map[string]any{"login": "alice"},
			"head":          map[string]any{"ref": "feature/stream"},
			"base":          map[string]any{"ref": "main"},
			"changed_files": 3,
			"additions":     120,
			"deletions":     8,
		})
	})

	client := newTestClient(t, mux)
	pr := gt.R1(client.GetPullRequest(context.Background(), testRepo, 42)).NoError(t)
	gt.V(t, pr.Title).Equal("Add streaming mode")
	gt.V(t, pr.SourceBranch).Equal(types.BranchName("feature/stream"))
	gt.V(t, pr.TargetBranch).Equal(types.BranchName("main"))
	gt.V(t, pr.ChangedFiles).Equal(3)
	gt.V(t, pr.Additions).Equal(120)
	gt.V(t, pr.Deletions).Equal(8)
}

func TestListDiscussion(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/alice/parser/issues/42/comments", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]any{
			{"body": "## Summary\nAdds streaming", "user": map[string]any{"login": "coderabbitai[bot]"}, "created_at": "2024-04-01T00:00:00Z"},
		})
	})
	mux.HandleFunc("GET /repos/alice/parser/pulls/42/comments", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]any{
			{"body": "nit: rename", "user": map[string]any{"login": "bob"}, "created_at": "2024-04-01T01:00:00Z"},
		})
	})
	mux.HandleFunc("GET /repos/alice/parser/pulls/42/reviews", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]any{
			{"body": "", "user": map[string]any{"login": "bob"}, "submitted_at": "2024-04-01T02:00:00Z"},
			{"body": "**Actionable comments posted: 1**", "user": map[string]any{"login": "coderabbitai[bot]"}, "submitted_at": "2024-04-01T03:00:00Z"},
		})
	})

	client := newTestClient(t, mux)
	entries := gt.R1(client.ListDiscussion(context.Background(), testRepo, 42)).NoError(t)
	gt.A(t, entries).Length(3)
	gt.V(t, entries[0].Kind).Equal(model.DiscussionGeneralComment)
	gt.V(t, entries[0].Author).Equal("coderabbitai[bot]")
	gt.V(t, entries[1].Kind).Equal(model.DiscussionReviewComment)
	gt.V(t, entries[2].Kind).Equal(model.DiscussionReview)
	gt.V(t, entries[2].CreatedAt).Equal(time.Date(2024, 4, 1, 3, 0, 0, 0, time.UTC))
}

func TestListCommits(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/alice/parser/commits", func(w http.ResponseWriter, r *http.Request) {
		gt.V(t, r.URL.Query().Get("author")).Equal("alice")
		gt.V(t, r.URL.Query().Get("sha")).Equal("main")
		writeJSON(t, w, []map[string]any{
			{
				"sha":      "f7c8851da7c7fcc46212fccfb6c9c4bda520f1ca",
				"html_url": "https://github.com/alice/parser/commit/f7c8851",
				"author":   map[string]any{"login": "alice"},
				"commit": map[string]any{
					"message": "Fix parser crash\n\ndetails",
					"author":  map[string]any{"name": "Alice", "date": "2024-04-02T00:00:00Z"},
				},
			},
		})
	})

	client := newTestClient(t, mux)
	commits := gt.R1(client.ListCommits(context.Background(), testRepo, "alice", 3)).NoError(t)
	gt.A(t, commits).Length(1)
	gt.V(t, commits[0].ShortSHA()).Equal("f7c8851")
	gt.V(t, commits[0].Title()).Equal("Fix parser crash")
	gt.V(t, commits[0].Author).Equal("alice")
	gt.V(t, commits[0].AuthoredAt).Equal(time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC))
}

func TestClientIntegration(t *testing.T) {
	token := testutil.GetEnvOrSkip(t, "TEST_GITHUB_TOKEN")
	client := gt.R1(gh.New(gh.WithToken(types.GitHubToken(token)))).NoError(t)

	repos := gt.R1(client.ListRepositories(context.Background(), "m-mizutani")).NoError(t)
	gt.A(t, repos).Longer(0)
}

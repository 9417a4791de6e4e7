package githubapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dipu67/folio/internal/app/system/githubstats"
	"github.com/dipu67/folio/internal/testutil"
	"go.uber.org/zap"
)

// newTestRouter points the stats client at a fake GitHub API server.
func newTestRouter(t *testing.T, upstream http.HandlerFunc) http.Handler {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	cfg := githubstats.DefaultConfig()
	cfg.Owner = "dipu67"
	cfg.BaseURL = srv.URL
	client := githubstats.NewClient(cfg, srv.Client(), zap.NewNop())
	t.Cleanup(func() { client.Close() })

	return Routes(NewHandler(client, zap.NewNop()))
}

func TestRepoStats(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/dipu67/folio" {
			t.Errorf("upstream path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"stargazers_count":42,"forks_count":7,"watchers_count":42,"language":"Go"}`))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/folio", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var stats githubstats.RepoStats
	testutil.DecodeJSON(t, rec.Body, &stats)
	if stats.Stars != 42 || stats.Forks != 7 || stats.Language != "Go" {
		t.Errorf("stats = %+v", stats)
	}
}

func TestRepoStatsNotFound(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRepoStatsUpstreamFailure(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/folio", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

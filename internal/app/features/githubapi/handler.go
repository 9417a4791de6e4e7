// Package githubapi proxies GitHub repository stats for project cards.
//
// Endpoint:
//   - GET /api/github/{repo} - stars/forks/watchers for one repository of
//     the configured owner; cached upstream for five minutes
//
// Public: the portfolio page calls it directly.
package githubapi

import (
	"errors"
	"net/http"

	"github.com/dipu67/folio/internal/app/system/githubstats"
	"github.com/dipu67/folio/internal/app/system/jsonutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler handles GitHub stats requests.
type Handler struct {
	stats *githubstats.Client
	log   *zap.Logger
}

// NewHandler creates a githubapi handler.
func NewHandler(stats *githubstats.Client, log *zap.Logger) *Handler {
	return &Handler{stats: stats, log: log}
}

// RepoStats handles GET /api/github/{repo}.
func (h *Handler) RepoStats(w http.ResponseWriter, r *http.Request) {
	repo := chi.URLParam(r, "repo")
	if repo == "" {
		jsonutil.BadRequest(w, "Repository name is required")
		return
	}

	stats, err := h.stats.Stats(r.Context(), repo)
	if err != nil {
		if errors.Is(err, githubstats.ErrNotFound) {
			jsonutil.NotFound(w, "Repository not found")
			return
		}
		h.log.Warn("github stats fetch failed",
			zap.String("repo", repo),
			zap.Error(err))
		jsonutil.InternalError(w, "Failed to fetch repository data")
		return
	}
	jsonutil.OK(w, stats)
}

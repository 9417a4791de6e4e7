package githubapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns a router for the GitHub stats proxy.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/{repo}", h.RepoStats)

	return r
}

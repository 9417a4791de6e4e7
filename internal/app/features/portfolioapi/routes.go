package portfolioapi

import (
	"net/http"

	"github.com/dipu67/folio/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a router for the content document API.
//
// When mounted at /api/portfolio:
//   - GET  /api/portfolio - public read
//   - POST /api/portfolio - admin-only replace
func Routes(h *Handler, sessions *auth.SessionManager) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.GetDocument)

	r.Group(func(gr chi.Router) {
		gr.Use(sessions.RequireAdmin)
		gr.Post("/", h.ReplaceDocument)
	})

	return r
}

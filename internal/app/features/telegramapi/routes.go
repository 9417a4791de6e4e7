package telegramapi

import (
	"net/http"

	"github.com/dipu67/folio/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a router for the Telegram test/debug endpoints. Admin-only:
// the status responses describe notifier configuration.
func Routes(h *Handler, sessions *auth.SessionManager) http.Handler {
	r := chi.NewRouter()

	r.Use(sessions.RequireAdmin)
	r.Get("/test", h.Status)
	r.Post("/test", h.SendTest)
	r.Get("/debug", h.Debug)

	return r
}

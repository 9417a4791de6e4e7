package adminauth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns a router for the admin auth endpoints. Login is
// necessarily unauthenticated; logout just clears whatever session exists.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.Login)
	r.Delete("/", h.Logout)

	return r
}

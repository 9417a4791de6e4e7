package contactapi

import (
	"net/http"

	"github.com/dipu67/folio/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a router for the contact message API.
//
// When mounted at /api/contact:
//   - POST   /api/contact       - public submission or admin replace
//     (the handler gates the replace branch itself)
//   - GET    /api/contact       - admin list
//   - PATCH  /api/contact/{id}  - admin field update
//   - DELETE /api/contact       - admin delete by ?id=
func Routes(h *Handler, sessions *auth.SessionManager) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.PostMessages)

	r.Group(func(gr chi.Router) {
		gr.Use(sessions.RequireAdmin)
		gr.Get("/", h.ListMessages)
		gr.Patch("/{id}", h.PatchMessage)
		gr.Delete("/", h.DeleteMessage)
	})

	return r
}

package imagesapi

import (
	"net/http"

	"github.com/dipu67/folio/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a router for the image manager API. Every operation is
// admin-only; the public site only ever reads the served image files.
func Routes(h *Handler, sessions *auth.SessionManager) http.Handler {
	r := chi.NewRouter()

	r.Use(sessions.RequireAdmin)
	r.Get("/", h.ListImages)
	r.Post("/", h.UploadImage)
	r.Put("/", h.RenameImage)
	r.Delete("/", h.DeleteImage)

	return r
}

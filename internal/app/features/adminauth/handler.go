// Package adminauth provides the admin login/logout endpoints.
//
// Endpoints:
//   - POST   /api/admin/auth - verify the shared admin secret; on success the
//     response carries the session cookie and a CSRF token header
//   - DELETE /api/admin/auth - destroy the session
//
// The original deployment returned a bare success flag and left the session
// in browser storage; here success establishes a server-side signed cookie
// and all admin routes verify it.
package adminauth

import (
	"net/http"

	"github.com/dipu67/folio/internal/app/system/auth"
	"github.com/dipu67/folio/internal/app/system/jsonutil"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// Handler handles admin authentication requests.
type Handler struct {
	sessions *auth.SessionManager
	secret   string
	log      *zap.Logger
}

// NewHandler creates an adminauth handler. secret is the configured admin
// password value (bcrypt hash or plain, see auth.CheckPassword).
func NewHandler(sessions *auth.SessionManager, secret string, log *zap.Logger) *Handler {
	return &Handler{sessions: sessions, secret: secret, log: log}
}

// Login handles POST /api/admin/auth.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Password string `json:"password"`
	}
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Password is required")
		return
	}
	if in.Password == "" {
		jsonutil.BadRequest(w, "Password is required")
		return
	}

	if !auth.CheckPassword(in.Password, h.secret) {
		h.log.Warn("admin login rejected",
			zap.String("remote_addr", r.RemoteAddr))
		jsonutil.Unauthorized(w, "Invalid password")
		return
	}

	if err := h.sessions.CreateAdminSession(w, r); err != nil {
		h.log.Error("session creation failed", zap.Error(err))
		jsonutil.InternalError(w, "Server error")
		return
	}

	// Hand the SPA its CSRF token for subsequent mutating requests.
	w.Header().Set("X-CSRF-Token", csrf.Token(r))

	h.log.Info("admin logged in", zap.String("remote_addr", r.RemoteAddr))
	jsonutil.OK(w, map[string]any{
		"success": true,
		"message": "Authentication successful",
	})
}

// Logout handles DELETE /api/admin/auth.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.DestroySession(w, r)
	jsonutil.OK(w, map[string]any{"success": true})
}

// Package contactapi provides the contact message API.
//
// Endpoints:
//   - GET    /api/contact          - list all messages (admin)
//   - POST   /api/contact          - dual mode: public submission
//     ({"action":"submit",...}) or admin whole-list replace (JSON array)
//   - PATCH  /api/contact/{id}     - update status/priority/notes (admin)
//   - DELETE /api/contact?id=      - delete one message (admin)
//
// The dual-mode POST mirrors the endpoint shape the public site and the
// admin panel already use. Submission is the only unauthenticated write in
// the whole API.
package contactapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dipu67/folio/internal/app/store/inbox"
	"github.com/dipu67/folio/internal/app/system/jsonutil"
	"github.com/dipu67/folio/internal/app/system/sanitize"
	"github.com/dipu67/folio/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdminChecker reports whether a request carries a valid admin session.
// The dual-mode POST needs it inside the handler: the public branch must
// stay open while the replace branch stays gated.
type AdminChecker interface {
	IsAdmin(r *http.Request) bool
}

// Handler handles contact message API requests.
type Handler struct {
	inbox inbox.Store
	admin AdminChecker
	log   *zap.Logger
}

// NewHandler creates a contactapi handler.
func NewHandler(ibx inbox.Store, admin AdminChecker, log *zap.Logger) *Handler {
	return &Handler{inbox: ibx, admin: admin, log: log}
}

// ListMessages handles GET /api/contact.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.inbox.List(r.Context())
	if err != nil {
		h.log.Error("inbox list failed", zap.Error(err))
		jsonutil.InternalError(w, "Failed to read messages")
		return
	}
	jsonutil.OK(w, messages)
}

// submitPayload is the public submission body. Action distinguishes it from
// the whole-list replace, whose body is a JSON array.
type submitPayload struct {
	Action  string `json:"action"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// PostMessages handles POST /api/contact in both modes.
func (h *Handler) PostMessages(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := jsonutil.Decode(r, &raw); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}

	// A JSON array is the admin replace; an object is a submission.
	if isArray(raw) {
		h.replaceAll(w, r, raw)
		return
	}

	var in submitPayload
	if err := json.Unmarshal(raw, &in); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}
	if in.Action != "submit" {
		jsonutil.BadRequest(w, "Unknown action")
		return
	}

	msg, err := h.inbox.Append(r.Context(), inbox.Submission{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
	})
	if err != nil {
		var verr *inbox.ValidationError
		if errors.As(err, &verr) {
			jsonutil.BadRequest(w, "All fields are required")
			return
		}
		h.log.Error("contact submission failed", zap.Error(err))
		jsonutil.InternalError(w, "Failed to process request")
		return
	}

	jsonutil.OK(w, map[string]any{
		"success": true,
		"message": "Message sent successfully!",
		"id":      msg.ID,
	})
}

// replaceAll is the admin whole-list replace branch of PostMessages.
func (h *Handler) replaceAll(w http.ResponseWriter, r *http.Request, raw json.RawMessage) {
	if !h.admin.IsAdmin(r) {
		jsonutil.Unauthorized(w, "unauthorized")
		return
	}

	var messages []models.ContactMessage
	if err := json.Unmarshal(raw, &messages); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}

	if err := h.inbox.ReplaceAll(r.Context(), messages); err != nil {
		h.log.Error("inbox replace failed", zap.Error(err))
		jsonutil.InternalError(w, "Failed to process request")
		return
	}
	jsonutil.OK(w, map[string]any{
		"success": true,
		"message": "Messages updated successfully!",
	})
}

// patchPayload carries the mutable message fields. Pointers distinguish
// "leave alone" from "set to empty".
type patchPayload struct {
	Status   *string `json:"status"`
	Priority *string `json:"priority"`
	Notes    *string `json:"notes"`
}

// PatchMessage handles PATCH /api/contact/{id}. Status changes apply the
// first-occurrence rule for readAt/respondedAt server-side, so clients
// cannot skew the timestamps.
func (h *Handler) PatchMessage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		jsonutil.BadRequest(w, "Invalid message ID")
		return
	}

	var in patchPayload
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}
	if in.Status != nil && !models.ValidStatus(*in.Status) {
		jsonutil.BadRequest(w, "Invalid status")
		return
	}
	if in.Priority != nil && !models.ValidPriority(*in.Priority) {
		jsonutil.BadRequest(w, "Invalid priority")
		return
	}

	messages, err := h.inbox.List(r.Context())
	if err != nil {
		h.log.Error("inbox list failed", zap.Error(err))
		jsonutil.InternalError(w, "Failed to read messages")
		return
	}

	idx := -1
	for i := range messages {
		if messages[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		jsonutil.NotFound(w, "Message not found")
		return
	}

	msg := &messages[idx]
	if in.Status != nil {
		msg.SetStatus(*in.Status, time.Now().UTC())
	}
	if in.Priority != nil {
		msg.Priority = *in.Priority
	}
	if in.Notes != nil {
		msg.Notes = sanitize.Strip(*in.Notes)
	}

	if err := h.inbox.ReplaceAll(r.Context(), messages); err != nil {
		h.log.Error("inbox update failed", zap.Int64("message_id", id), zap.Error(err))
		jsonutil.InternalError(w, "Failed to update message")
		return
	}
	jsonutil.OK(w, msg)
}

// DeleteMessage handles DELETE /api/contact?id=.
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	rawID := r.URL.Query().Get("id")
	if rawID == "" {
		jsonutil.BadRequest(w, "Message ID is required")
		return
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		jsonutil.BadRequest(w, "Invalid message ID")
		return
	}

	if err := h.inbox.DeleteByID(r.Context(), id); err != nil {
		if errors.Is(err, inbox.ErrNotFound) {
			jsonutil.NotFound(w, "Message not found")
			return
		}
		h.log.Error("message delete failed", zap.Int64("message_id", id), zap.Error(err))
		jsonutil.InternalError(w, "Failed to delete message")
		return
	}
	jsonutil.OK(w, map[string]any{
		"success": true,
		"message": "Message deleted successfully!",
	})
}

// isArray reports whether raw's first JSON token is an array opener.
func isArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}

// Package portfolioapi provides the content document API.
//
// Endpoints:
//   - GET /api/portfolio - full content document (public, the site renders it)
//   - POST /api/portfolio - whole-document replace (admin session required)
//
// The replace protocol is deliberate: the admin panel always saves its entire
// working copy, never partial patches. An optional X-Revision header enables
// the stale-write check; omitting it keeps the legacy last-writer-wins
// behavior.
package portfolioapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dipu67/folio/internal/app/store/content"
	"github.com/dipu67/folio/internal/app/system/jsonutil"
	"github.com/dipu67/folio/internal/domain/models"
	"go.uber.org/zap"
)

// RevisionHeader carries the optional optimistic-concurrency revision on
// replace requests; responses echo the current revision in the same header.
const RevisionHeader = "X-Revision"

// Handler handles content document API requests.
type Handler struct {
	repo content.Store
	log  *zap.Logger
}

// NewHandler creates a portfolioapi handler.
func NewHandler(repo content.Store, log *zap.Logger) *Handler {
	return &Handler{repo: repo, log: log}
}

// GetDocument handles GET /api/portfolio.
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, rev, err := h.repo.Load(r.Context())
	if err != nil {
		h.log.Error("content load failed", zap.Error(err))
		jsonutil.InternalError(w, "Failed to read data")
		return
	}

	w.Header().Set(RevisionHeader, strconv.FormatUint(uint64(rev), 10))
	jsonutil.OK(w, doc)
}

// ReplaceDocument handles POST /api/portfolio.
func (h *Handler) ReplaceDocument(w http.ResponseWriter, r *http.Request) {
	var doc models.ContentDocument
	if err := jsonutil.Decode(r, &doc); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}
	doc.Normalize()

	rev := content.AnyRevision
	if raw := r.Header.Get(RevisionHeader); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			jsonutil.BadRequest(w, "Invalid revision header")
			return
		}
		rev = content.Revision(parsed)
	}

	newRev, err := h.repo.Replace(r.Context(), &doc, rev)
	if err != nil {
		if errors.Is(err, content.ErrStaleWrite) {
			jsonutil.Error(w, http.StatusConflict, "Document was modified by another session")
			return
		}
		h.log.Error("content replace failed", zap.Error(err))
		jsonutil.InternalError(w, "Failed to save data")
		return
	}

	w.Header().Set(RevisionHeader, strconv.FormatUint(uint64(newRev), 10))
	jsonutil.OK(w, map[string]any{"success": true})
}

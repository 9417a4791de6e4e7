// Package imagesapi provides the admin image manager API.
//
// Endpoints (all admin-gated):
//   - GET    /api/images            - list uploaded images
//   - POST   /api/images            - multipart upload
//   - DELETE /api/images?filename=  - delete one image
//   - PUT    /api/images            - rename ({oldName,newName})
//
// Image bytes live in the file storage backend; the content document only
// ever stores the serving URLs. Uploads get a timestamp-prefixed sanitized
// filename so names never collide and never carry unsafe characters.
package imagesapi

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"regexp"
	"strings"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/dipu67/folio/internal/app/order"
	"github.com/dipu67/folio/internal/app/system/jsonutil"
	"go.uber.org/zap"
)

// MaxUploadSize is the upload limit, matching the admin panel's stated 5MB.
const MaxUploadSize = 5 << 20

// Lister enumerates stored image names. The storage backend has no listing
// operation, so the bootstrap wires a directory lister alongside it.
type Lister interface {
	List(ctx context.Context) ([]string, error)
}

// ImageInfo is one image manager entry.
type ImageInfo struct {
	Name         string `json:"name"`
	OriginalName string `json:"originalName,omitempty"`
	URL          string `json:"url"`
	Path         string `json:"path"`
	Size         int64  `json:"size,omitempty"`
	Type         string `json:"type,omitempty"`
}

// Handler handles image manager API requests.
type Handler struct {
	store  storage.Store
	lister Lister
	log    *zap.Logger
}

// NewHandler creates an imagesapi handler.
func NewHandler(store storage.Store, lister Lister, log *zap.Logger) *Handler {
	return &Handler{store: store, lister: lister, log: log}
}

var imageExt = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp|svg)$`)

var allowedTypes = map[string]string{
	"image/jpeg":    ".jpg",
	"image/jpg":     ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// sanitizeName replaces every character outside [a-zA-Z0-9.-] with an
// underscore, matching the names already present in deployed image dirs.
func sanitizeName(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}

// ListImages handles GET /api/images.
func (h *Handler) ListImages(w http.ResponseWriter, r *http.Request) {
	names, err := h.lister.List(r.Context())
	if err != nil {
		h.log.Error("image list failed", zap.Error(err))
		jsonutil.InternalError(w, "Failed to list images")
		return
	}

	images := []ImageInfo{}
	for _, name := range names {
		if !imageExt.MatchString(name) {
			continue
		}
		images = append(images, ImageInfo{
			Name: name,
			URL:  h.store.URL(name),
			Path: name,
		})
	}
	jsonutil.OK(w, map[string]any{"images": images})
}

// UploadImage handles POST /api/images.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		jsonutil.BadRequest(w, "File size too large. Maximum 5MB allowed.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonutil.BadRequest(w, "No file provided")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if _, ok := allowedTypes[contentType]; !ok {
		jsonutil.BadRequest(w, "Invalid file type. Only images are allowed.")
		return
	}
	if header.Size > MaxUploadSize {
		jsonutil.BadRequest(w, "File size too large. Maximum 5MB allowed.")
		return
	}

	fileName := fmt.Sprintf("%d_%s", order.NewID(), sanitizeName(header.Filename))

	opts := &storage.PutOptions{
		ContentType: contentType,
	}
	if err := h.store.Put(r.Context(), fileName, file, opts); err != nil {
		h.log.Error("image upload failed",
			zap.String("file", fileName),
			zap.Error(err))
		jsonutil.InternalError(w, "Failed to upload image")
		return
	}

	h.log.Info("image uploaded",
		zap.String("file", fileName),
		zap.Int64("size", header.Size))

	jsonutil.OK(w, map[string]any{
		"message": "Image uploaded successfully",
		"image": ImageInfo{
			Name:         fileName,
			OriginalName: header.Filename,
			URL:          h.store.URL(fileName),
			Path:         fileName,
			Size:         header.Size,
			Type:         contentType,
		},
	})
}

// DeleteImage handles DELETE /api/images?filename=.
func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	filename := r.URL.Query().Get("filename")
	if filename == "" {
		jsonutil.BadRequest(w, "Filename is required")
		return
	}
	filename = path.Base(filename)

	if err := h.store.Delete(r.Context(), filename); err != nil {
		jsonutil.NotFound(w, "Image not found")
		return
	}
	jsonutil.OK(w, map[string]any{"message": "Image deleted successfully"})
}

// renamePayload is the PUT body.
type renamePayload struct {
	OldName string `json:"oldName"`
	NewName string `json:"newName"`
}

// RenameImage handles PUT /api/images. The extension of the old name is
// preserved; the new name is sanitized like an upload. Storage has no rename
// primitive, so this is copy-then-delete.
func (h *Handler) RenameImage(w http.ResponseWriter, r *http.Request) {
	var in renamePayload
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}
	if in.OldName == "" || in.NewName == "" {
		jsonutil.BadRequest(w, "Both old name and new name are required")
		return
	}

	oldName := path.Base(in.OldName)
	newName := sanitizeName(in.NewName)
	if ext := path.Ext(oldName); !strings.HasSuffix(newName, ext) {
		newName += ext
	}

	reader, err := h.store.Get(r.Context(), oldName)
	if err != nil {
		jsonutil.BadRequest(w, "Failed to rename image. File may not exist or new name already exists.")
		return
	}
	defer reader.Close()

	if err := h.store.Put(r.Context(), newName, reader, nil); err != nil {
		h.log.Error("image rename failed",
			zap.String("old", oldName),
			zap.String("new", newName),
			zap.Error(err))
		jsonutil.InternalError(w, "Failed to rename image")
		return
	}
	if err := h.store.Delete(r.Context(), oldName); err != nil {
		h.log.Warn("old image not removed after rename",
			zap.String("old", oldName),
			zap.Error(err))
	}

	jsonutil.OK(w, map[string]any{
		"message": "Image renamed successfully",
		"image": ImageInfo{
			Name: newName,
			URL:  h.store.URL(newName),
			Path: newName,
		},
	})
}

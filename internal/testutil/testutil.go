// Package testutil provides shared fixtures for handler tests: a session
// manager with a throwaway key, signed-in admin requests, and seeded
// file-backed stores.
package testutil

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dipu67/folio/internal/app/store/content"
	"github.com/dipu67/folio/internal/app/store/inbox"
	"github.com/dipu67/folio/internal/app/system/auth"
	"github.com/dipu67/folio/internal/domain/models"
	"go.uber.org/zap"
)

// sessionKey is strong enough to pass key validation in secure mode.
const sessionKey = "0123456789abcdef0123456789abcdef"

// NewSessionManager returns a session manager suitable for handler tests.
func NewSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	mgr, err := auth.NewSessionManager(sessionKey, "folio-admin", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager() error = %v", err)
	}
	return mgr
}

// SignInAdmin attaches a valid admin session cookie to req.
func SignInAdmin(t *testing.T, mgr *auth.SessionManager, req *http.Request) {
	t.Helper()
	rec := httptest.NewRecorder()
	seed := httptest.NewRequest(http.MethodPost, "/", nil)
	if err := mgr.CreateAdminSession(rec, seed); err != nil {
		t.Fatalf("CreateAdminSession() error = %v", err)
	}
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
}

// NewContentStore returns a file-backed content store seeded with the
// default document, rooted in a per-test temp dir.
func NewContentStore(t *testing.T) *content.FileStore {
	t.Helper()
	s, err := content.NewFileStore(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	if _, err := s.EnsureSeed(context.Background(), models.DefaultContentDocument()); err != nil {
		t.Fatalf("EnsureSeed() error = %v", err)
	}
	return s
}

// NewInbox returns an empty file-backed inbox with no notifier.
func NewInbox(t *testing.T) *inbox.FileStore {
	t.Helper()
	s, err := inbox.NewFileStore(t.TempDir(), nil, zap.NewNop())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	return s
}

// DecodeJSON decodes a response body into v.
func DecodeJSON(t *testing.T, body io.Reader, v any) {
	t.Helper()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

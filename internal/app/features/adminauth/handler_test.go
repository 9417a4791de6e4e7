package adminauth

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dipu67/folio/internal/app/system/auth"
	"github.com/dipu67/folio/internal/testutil"
	"go.uber.org/zap"
)

const testPassword = "folio-dev-password"

func newTestRouter(t *testing.T) (http.Handler, *auth.SessionManager) {
	t.Helper()
	mgr := testutil.NewSessionManager(t)

	hash, err := auth.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	h := NewHandler(mgr, hash, zap.NewNop())
	return Routes(h), mgr
}

func TestLoginSuccess(t *testing.T) {
	router, mgr := newTestRouter(t)

	body := bytes.NewBufferString(`{"password":"` + testPassword + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Authentication successful") {
		t.Errorf("body = %s", rec.Body.String())
	}

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("login response carries no session cookie")
	}

	// The issued cookie authenticates follow-up requests.
	follow := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		follow.AddCookie(c)
	}
	if !mgr.IsAdmin(follow) {
		t.Error("session cookie from login does not grant admin")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	router, _ := newTestRouter(t)

	body := bytes.NewBufferString(`{"password":"guess"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", body))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(rec.Body.String(), "Invalid password") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestLoginMissingPassword(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, body := range []string{`{}`, `{"password":""}`, `not json`} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body)))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want %d", body, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestLoginPlainSecret(t *testing.T) {
	// Dev setups configure the password unhashed.
	mgr := testutil.NewSessionManager(t)
	router := Routes(NewHandler(mgr, "plain-secret", zap.NewNop()))

	body := bytes.NewBufferString(`{"password":"plain-secret"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", body))

	if rec.Code != http.StatusOK {
		t.Errorf("plain secret login status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestLogout(t *testing.T) {
	router, mgr := newTestRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	testutil.SignInAdmin(t, mgr, req)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rec.Code)
	}

	for _, c := range rec.Result().Cookies() {
		if c.Name == mgr.SessionName() && c.MaxAge >= 0 {
			t.Errorf("logout cookie MaxAge = %d, want negative", c.MaxAge)
		}
	}
}

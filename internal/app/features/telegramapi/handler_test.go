package telegramapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dipu67/folio/internal/app/system/auth"
	"github.com/dipu67/folio/internal/app/system/notify"
	"github.com/dipu67/folio/internal/testutil"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T, cfg notify.Config, httpClient *http.Client) (http.Handler, *auth.SessionManager) {
	t.Helper()
	mgr := testutil.NewSessionManager(t)
	client := notify.NewClient(cfg, httpClient, zap.NewNop())
	t.Cleanup(func() { client.Close() })
	return Routes(NewHandler(client, zap.NewNop()), mgr), mgr
}

// fakeBotAPI answers getMe and sendMessage the way the Bot API does.
func fakeBotAPI(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			w.Write([]byte(`{"ok":true,"result":{"id":111,"is_bot":true,"first_name":"Folio","username":"folio_bot"}}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			w.Write([]byte(`{"ok":true}`))
		default:
			t.Errorf("unexpected bot API path %q", r.URL.Path)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTelegramRequiresAdmin(t *testing.T) {
	router, _ := newTestRouter(t, notify.Config{}, nil)

	for _, path := range []string{"/test", "/debug"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("anonymous GET %s = %d, want %d", path, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestStatusUnconfigured(t *testing.T) {
	router, mgr := newTestRouter(t, notify.Config{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	testutil.SignInAdmin(t, mgr, req)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		Status  struct {
			Configured  bool   `json:"configured"`
			TokenFormat string `json:"tokenFormat"`
		} `json:"status"`
	}
	testutil.DecodeJSON(t, rec.Body, &resp)
	if resp.Success || resp.Status.Configured {
		t.Errorf("unconfigured response = %+v", resp)
	}
	if resp.Status.TokenFormat != "Missing" {
		t.Errorf("tokenFormat = %q, want Missing", resp.Status.TokenFormat)
	}
}

func TestStatusConnected(t *testing.T) {
	srv := fakeBotAPI(t)
	cfg := notify.Config{
		BotToken: "123456789:test-token",
		ChatID:   "987654",
		BaseURL:  srv.URL,
		Timeout:  2 * time.Second,
	}
	router, mgr := newTestRouter(t, cfg, srv.Client())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	testutil.SignInAdmin(t, mgr, req)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Success   bool `json:"success"`
		Connected bool `json:"connected"`
		BotInfo   struct {
			Username string `json:"username"`
		} `json:"botInfo"`
	}
	testutil.DecodeJSON(t, rec.Body, &resp)
	if !resp.Success || !resp.Connected || resp.BotInfo.Username != "folio_bot" {
		t.Errorf("connected response = %+v", resp)
	}
}

func TestSendTest(t *testing.T) {
	srv := fakeBotAPI(t)
	cfg := notify.Config{
		BotToken: "123456789:test-token",
		ChatID:   "987654",
		BaseURL:  srv.URL,
		Timeout:  2 * time.Second,
	}
	router, mgr := newTestRouter(t, cfg, srv.Client())

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	testutil.SignInAdmin(t, mgr, req)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("send test status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Test notification sent successfully!") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestSendTestUnconfigured(t *testing.T) {
	router, mgr := newTestRouter(t, notify.Config{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	testutil.SignInAdmin(t, mgr, req)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("unconfigured send status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

// Package telegramapi provides the Telegram notifier test and debug
// endpoints used from the admin panel's settings tab.
//
// Endpoints (admin-gated):
//   - GET  /api/telegram/test  - configuration and connection status
//   - POST /api/telegram/test  - verify the bot and send a test message
//   - GET  /api/telegram/debug - token diagnostics (never reveals the token)
package telegramapi

import (
	"fmt"
	"net/http"

	"github.com/dipu67/folio/internal/app/system/jsonutil"
	"github.com/dipu67/folio/internal/app/system/notify"
	"go.uber.org/zap"
)

// Handler handles Telegram test/debug requests.
type Handler struct {
	telegram *notify.Client
	log      *zap.Logger
}

// NewHandler creates a telegramapi handler.
func NewHandler(telegram *notify.Client, log *zap.Logger) *Handler {
	return &Handler{telegram: telegram, log: log}
}

// Status handles GET /api/telegram/test.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"configured":  h.telegram.Configured(),
		"hasToken":    h.telegram.TokenLength() > 0,
		"hasChatId":   h.telegram.ChatID() != "",
		"tokenFormat": tokenFormatLabel(h.telegram),
	}

	if !h.telegram.Configured() {
		jsonutil.OK(w, map[string]any{
			"success": false,
			"status":  status,
			"error":   "Missing required configuration",
		})
		return
	}

	info, err := h.telegram.GetBotInfo(r.Context())
	if err != nil {
		h.log.Warn("telegram status check failed", zap.Error(err))
		jsonutil.OK(w, map[string]any{
			"success":    false,
			"configured": true,
			"connected":  false,
			"status":     status,
			"error":      map[string]any{"message": err.Error()},
		})
		return
	}

	resp := map[string]any{
		"success":    info.OK,
		"configured": true,
		"connected":  info.OK,
		"status":     status,
	}
	if info.OK {
		resp["botInfo"] = map[string]any{
			"id":              info.Result.ID,
			"username":        info.Result.Username,
			"first_name":      info.Result.FirstName,
			"is_bot":          info.Result.IsBot,
			"can_join_groups": info.Result.CanJoinGroups,
		}
	} else {
		resp["error"] = map[string]any{
			"message": info.Description,
			"code":    info.ErrorCode,
		}
	}
	jsonutil.OK(w, resp)
}

// SendTest handles POST /api/telegram/test.
func (h *Handler) SendTest(w http.ResponseWriter, r *http.Request) {
	if !h.telegram.Configured() {
		jsonutil.BadRequest(w, "Telegram bot not configured. Please set the bot token and chat ID.")
		return
	}

	info, err := h.telegram.GetBotInfo(r.Context())
	if err != nil {
		jsonutil.BadRequest(w, fmt.Sprintf("Failed to connect to Telegram bot: %v", err))
		return
	}
	if !info.OK {
		jsonutil.BadRequest(w, fmt.Sprintf("Failed to connect to Telegram bot: %s (Code: %d)",
			info.Description, info.ErrorCode))
		return
	}

	if err := h.telegram.SendTest(r.Context()); err != nil {
		h.log.Warn("telegram test send failed", zap.Error(err))
		jsonutil.BadRequest(w, "Failed to send test notification. Please check your chat ID.")
		return
	}

	jsonutil.OK(w, map[string]any{
		"success": true,
		"message": "Test notification sent successfully!",
		"botInfo": map[string]any{
			"id":         info.Result.ID,
			"username":   info.Result.Username,
			"first_name": info.Result.FirstName,
		},
	})
}

// Debug handles GET /api/telegram/debug.
func (h *Handler) Debug(w http.ResponseWriter, r *http.Request) {
	if h.telegram.TokenLength() == 0 {
		jsonutil.OK(w, map[string]any{"error": "Bot token is missing"})
		return
	}

	info, err := h.telegram.GetBotInfo(r.Context())
	resp := map[string]any{
		"tokenInfo": map[string]any{
			"length": h.telegram.TokenLength(),
			"format": tokenFormatLabel(h.telegram),
		},
	}
	if err != nil {
		resp["success"] = false
		resp["error"] = err.Error()
		jsonutil.OK(w, resp)
		return
	}

	resp["success"] = info.OK
	resp["response"] = info
	jsonutil.OK(w, resp)
}

func tokenFormatLabel(c *notify.Client) string {
	if c.TokenLength() == 0 {
		return "Missing"
	}
	if c.TokenFormatValid() {
		return "Valid"
	}
	return "Invalid"
}

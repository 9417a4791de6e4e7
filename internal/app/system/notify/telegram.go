// Package notify delivers Telegram notifications for new contact messages.
//
// Delivery is best effort: a Telegram outage must never fail the contact
// submission that triggered it, so NotifyNewContact reports success as a
// bool and the caller only logs on failure.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dipu67/folio/internal/domain/models"
	"go.uber.org/zap"
)

// DefaultBaseURL is the Telegram Bot API endpoint.
const DefaultBaseURL = "https://api.telegram.org"

// Config holds settings for the Telegram client.
type Config struct {
	// BotToken is the bot token from @BotFather, e.g. 123456789:ABCdef...
	BotToken string
	// ChatID is the chat that receives notifications.
	ChatID string
	// BaseURL overrides the API endpoint; used by tests. Empty means the
	// production endpoint.
	BaseURL string
	// Timeout is the per-request timeout.
	Timeout time.Duration
}

// DefaultConfig returns a config with production endpoint and timeouts.
// Token and chat ID still need to be filled in.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: 10 * time.Second,
	}
}

// Client talks to the Telegram Bot API.
type Client struct {
	cfg    Config
	client *http.Client
	log    *zap.Logger

	closed int32
}

// BotInfo is the result of a getMe call, plus the API error fields when the
// call is rejected.
type BotInfo struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
	Result      struct {
		ID            int64  `json:"id"`
		IsBot         bool   `json:"is_bot"`
		FirstName     string `json:"first_name"`
		Username      string `json:"username"`
		CanJoinGroups bool   `json:"can_join_groups"`
	} `json:"result"`
}

// NewClient creates a Telegram client. httpClient may be nil, in which case
// a default client with the configured timeout is used.
func NewClient(cfg Config, httpClient *http.Client, log *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	if cfg.BotToken == "" || cfg.ChatID == "" {
		log.Warn("telegram not configured, contact notifications disabled",
			zap.Bool("has_token", cfg.BotToken != ""),
			zap.Bool("has_chat_id", cfg.ChatID != ""))
	}

	return &Client{cfg: cfg, client: httpClient, log: log}
}

// Configured reports whether both token and chat ID are present.
func (c *Client) Configured() bool {
	return c.cfg.BotToken != "" && c.cfg.ChatID != ""
}

var tokenFormat = regexp.MustCompile(`^\d+:[\w-]+$`)

// TokenFormatValid reports whether the configured token looks like a bot
// token. Used by the debug endpoint to distinguish a malformed token from a
// revoked one.
func (c *Client) TokenFormatValid() bool {
	return tokenFormat.MatchString(c.cfg.BotToken)
}

// ChatID returns the configured chat ID.
func (c *Client) ChatID() string {
	return c.cfg.ChatID
}

// TokenLength returns the length of the configured token. Exposed for the
// debug endpoint, which must not reveal the token itself.
func (c *Client) TokenLength() int {
	return len(c.cfg.BotToken)
}

// NotifyNewContact sends the new-message notification. It satisfies the
// inbox notifier contract: false means the notification was skipped or
// failed, and the submission proceeds regardless.
func (c *Client) NotifyNewContact(ctx context.Context, msg models.ContactMessage) bool {
	if !c.Configured() {
		c.log.Warn("telegram not configured, skipping notification")
		return false
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔔 <b>New Contact Message</b> %s\n\n", priorityEmoji(msg.Priority))
	fmt.Fprintf(&b, "👤 <b>Name:</b> %s\n", escapeHTML(msg.Name))
	fmt.Fprintf(&b, "📧 <b>Email:</b> %s\n", escapeHTML(msg.Email))
	if msg.Subject != "" {
		fmt.Fprintf(&b, "📝 <b>Subject:</b> %s\n", escapeHTML(msg.Subject))
	}
	fmt.Fprintf(&b, "\n💬 <b>Message:</b>\n%s\n\n", escapeHTML(msg.Message))
	fmt.Fprintf(&b, "⏰ <b>Received:</b> %s\n", msg.SubmittedAt.UTC().Format("Jan 2, 2006 15:04"))
	fmt.Fprintf(&b, "🚨 <b>Priority:</b> %s\n\n", strings.ToUpper(msg.Priority))
	b.WriteString("<i>💡 Check your admin panel to respond!</i>")

	if err := c.sendMessage(ctx, b.String()); err != nil {
		c.log.Error("telegram notification failed",
			zap.Int64("message_id", msg.ID),
			zap.Error(err))
		return false
	}

	c.log.Info("telegram notification sent", zap.Int64("message_id", msg.ID))
	return true
}

// SendTest sends the setup-verification message.
func (c *Client) SendTest(ctx context.Context) error {
	text := "🤖 <b>Telegram Bot Test</b>\n\n" +
		"✅ Your Telegram bot is working correctly!\n" +
		"🎯 Portfolio contact notifications are now active.\n\n" +
		"<i>You'll receive notifications here when someone contacts you through your portfolio.</i>"
	return c.sendMessage(ctx, text)
}

// GetBotInfo calls getMe to verify the bot token. The returned BotInfo
// carries the API's own ok/error fields so callers can surface them.
func (c *Client) GetBotInfo(ctx context.Context) (*BotInfo, error) {
	url := fmt.Sprintf("%s/bot%s/getMe", c.cfg.BaseURL, c.cfg.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var info BotInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode getMe response: %w", err)
	}
	return &info, nil
}

// sendMessage posts one HTML-formatted message to the configured chat.
func (c *Client) sendMessage(ctx context.Context, text string) error {
	payload := map[string]any{
		"chat_id":                  c.cfg.ChatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.cfg.BaseURL, c.cfg.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Description string `json:"description"`
			ErrorCode   int    `json:"error_code"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Description != "" {
			return fmt.Errorf("telegram API error %d: %s", apiErr.ErrorCode, apiErr.Description)
		}
		return fmt.Errorf("sendMessage returned status %d", resp.StatusCode)
	}
	return nil
}

// Close releases idle connections on the underlying transport. Idempotent.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	if c.client != nil && c.client.Transport != nil {
		if tr, ok := c.client.Transport.(interface{ CloseIdleConnections() }); ok {
			tr.CloseIdleConnections()
		}
	}
	return nil
}

func priorityEmoji(priority string) string {
	switch strings.ToLower(priority) {
	case models.PriorityHigh, models.PriorityUrgent:
		return "🔴"
	case models.PriorityLow:
		return "🟢"
	default:
		return "🟡"
	}
}

// escapeHTML escapes the characters Telegram's HTML parse mode treats as
// markup.
func escapeHTML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	return r.Replace(s)
}

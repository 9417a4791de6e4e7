// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and seeding are complete, but
// before the HTTP handler is built and requests are served.
//
// This is the place for one-time initialization that depends on having live
// backends and fully loaded configuration. For this app that is only a
// report on the outbound integrations, so a misconfigured notifier is
// visible in the startup log instead of surfacing on the first contact
// submission.
//
// Returning a non-nil error will abort startup and prevent the server from
// starting. Returning nil signals that initialization succeeded.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Telegram.Configured() {
		if !deps.Telegram.TokenFormatValid() {
			logger.Warn("telegram bot token does not look like a BotFather token",
				zap.Int("token_length", deps.Telegram.TokenLength()))
		} else {
			logger.Info("telegram contact notifications enabled",
				zap.String("chat_id", deps.Telegram.ChatID()))
		}
	} else {
		logger.Info("telegram contact notifications disabled")
	}

	logger.Info("github stats proxy configured",
		zap.String("owner", appCfg.GitHubOwner),
		zap.Bool("authenticated", appCfg.GitHubToken != ""),
		zap.Duration("cache_ttl", appCfg.GitHubCacheTTL))

	return nil
}

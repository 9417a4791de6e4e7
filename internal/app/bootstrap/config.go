// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
const EnvVarPrefix = "FOLIO"

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: content_store, session_name, etc.
//   - Environment variables: FOLIO_CONTENT_STORE, FOLIO_SESSION_NAME, etc.
//   - Command-line flags: --content_store, --session_name, etc.
var appConfigKeys = []config.AppKey{
	// Content store backend
	{Name: "content_store", Default: "file", Desc: "Content store backend: 'file' or 'mongo'"},
	{Name: "data_dir", Default: "./data", Desc: "Data directory for the file backend"},

	// MongoDB (only used when content_store is 'mongo')
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "folio", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Admin session
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "folio-admin", Desc: "Admin session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie max age (e.g., 24h, 720h, 30m)"},

	{Name: "csrf_key", Default: "dev-only-csrf-key-please-change-0123456789", Desc: "CSRF token signing key (32+ chars in production)"},

	// Admin panel gate
	{Name: "admin_password", Default: "", Desc: "Admin password (bcrypt hash, or plain text for development)"},

	// Image storage configuration
	{Name: "storage_type", Default: "local", Desc: "Storage backend: 'local' or 's3'"},
	{Name: "storage_local_path", Default: "./public/images", Desc: "Local storage path for uploaded images"},
	{Name: "storage_local_url", Default: "/images", Desc: "URL prefix for serving local images"},

	// S3/CloudFront configuration
	{Name: "storage_s3_region", Default: "", Desc: "AWS region for S3"},
	{Name: "storage_s3_bucket", Default: "", Desc: "S3 bucket name"},
	{Name: "storage_s3_prefix", Default: "images/", Desc: "S3 key prefix"},
	{Name: "storage_cf_url", Default: "", Desc: "CloudFront distribution URL"},
	{Name: "storage_cf_keypair_id", Default: "", Desc: "CloudFront key pair ID"},
	{Name: "storage_cf_key_path", Default: "", Desc: "Path to CloudFront private key file"},

	// Telegram notifications
	{Name: "telegram_bot_token", Default: "", Desc: "Telegram bot token (leave empty to disable notifications)"},
	{Name: "telegram_chat_id", Default: "", Desc: "Telegram chat ID that receives contact notifications"},

	// GitHub stats proxy
	{Name: "github_owner", Default: "dipu67", Desc: "GitHub account whose repositories are queried"},
	{Name: "github_token", Default: "", Desc: "GitHub personal access token (optional, raises rate limits)"},
	{Name: "github_cache_ttl", Default: "5m", Desc: "How long fetched repo stats stay fresh"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app and can be extended as the app grows.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, FOLIO_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		ContentStore: appValues.String("content_store"),
		DataDir:      appValues.String("data_dir"),

		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),

		CSRFKey: appValues.String("csrf_key"),

		AdminPassword: appValues.String("admin_password"),

		// Image storage
		StorageType:      appValues.String("storage_type"),
		StorageLocalPath: appValues.String("storage_local_path"),
		StorageLocalURL:  appValues.String("storage_local_url"),

		// S3/CloudFront
		StorageS3Region:    appValues.String("storage_s3_region"),
		StorageS3Bucket:    appValues.String("storage_s3_bucket"),
		StorageS3Prefix:    appValues.String("storage_s3_prefix"),
		StorageCFURL:       appValues.String("storage_cf_url"),
		StorageCFKeyPairID: appValues.String("storage_cf_keypair_id"),
		StorageCFKeyPath:   appValues.String("storage_cf_key_path"),

		// Telegram
		TelegramBotToken: appValues.String("telegram_bot_token"),
		TelegramChatID:   appValues.String("telegram_chat_id"),

		// GitHub
		GitHubOwner:    appValues.String("github_owner"),
		GitHubToken:    appValues.String("github_token"),
		GitHubCacheTTL: appValues.Duration("github_cache_ttl", 5*time.Minute),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// This is the right place to enforce required fields or invariants that
// involve both the core and app configs.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	switch appCfg.ContentStore {
	case "file", "":
		if appCfg.DataDir == "" {
			return fmt.Errorf("data_dir is required for the file content store")
		}
	case "mongo":
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
	default:
		return fmt.Errorf("unknown content store: %s", appCfg.ContentStore)
	}

	// The admin panel is unusable without a password. Refuse to start in
	// production; allow (and warn) in dev where the panel may be untested.
	if appCfg.AdminPassword == "" {
		if coreCfg.Env == "prod" {
			return fmt.Errorf("admin_password must be set in production")
		}
		logger.Warn("admin_password is not set; admin panel login will reject all attempts")
	}

	if (appCfg.TelegramBotToken == "") != (appCfg.TelegramChatID == "") {
		logger.Warn("telegram is partially configured; notifications need both telegram_bot_token and telegram_chat_id")
	}

	return nil
}

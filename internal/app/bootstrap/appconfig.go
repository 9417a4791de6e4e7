// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//   - Database connection timeouts
//
// AppConfig is where you put everything specific to YOUR application.
type AppConfig struct {
	// Content store backend selection
	ContentStore string // "file" (JSON files in DataDir) or "mongo"
	DataDir      string // Data directory for the file backend (portfolio.json, messages.json)

	// MongoDB connection configuration (only used when ContentStore is "mongo")
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Maximum connections in pool (default: 100)
	MongoMinPoolSize uint64 // Minimum connections to keep warm (default: 10)

	// Admin session configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for the admin session (default: folio-admin)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Maximum session cookie lifetime (default: 24h)

	// CSRF protection configuration
	CSRFKey string // Secret key for CSRF token signing (32 bytes, must be strong in production)

	// AdminPassword gates the admin panel. A bcrypt hash is expected in
	// production; a plain value is accepted for local development.
	AdminPassword string

	// Image storage configuration
	StorageType      string // Storage backend: "local" or "s3"
	StorageLocalPath string // Local storage path (e.g., "./public/images")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/images")

	// S3/CloudFront configuration (only used if StorageType is "s3")
	StorageS3Region    string // AWS region
	StorageS3Bucket    string // S3 bucket name
	StorageS3Prefix    string // Key prefix (e.g., "images/")
	StorageCFURL       string // CloudFront distribution URL
	StorageCFKeyPairID string // CloudFront key pair ID
	StorageCFKeyPath   string // Path to CloudFront private key file

	// Telegram notification configuration. Both values must be set for
	// contact notifications to be delivered.
	TelegramBotToken string // Bot token from @BotFather
	TelegramChatID   string // Chat that receives new-message notifications

	// GitHub stats proxy configuration
	GitHubOwner    string        // Account whose repositories are queried
	GitHubToken    string        // Optional personal access token for higher rate limits
	GitHubCacheTTL time.Duration // How long fetched repo stats stay fresh (default: 5m)
}

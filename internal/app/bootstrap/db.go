// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/dipu67/folio/internal/app/store/content"
	"github.com/dipu67/folio/internal/app/store/inbox"
	"github.com/dipu67/folio/internal/app/system/githubstats"
	"github.com/dipu67/folio/internal/app/system/notify"
	"github.com/dipu67/folio/internal/domain/models"
	"go.uber.org/zap"
)

// ConnectDB connects to databases or other backends.
//
// WAFFLE calls this after configuration is loaded but before EnsureSchema and
// Startup. For this app it selects the content/inbox store backend, sets up
// image storage, and builds the outbound Telegram and GitHub clients.
//
// Best practices:
//   - Use coreCfg.DBConnectTimeout to set connection timeouts
//   - Log connection attempts and successes for debugging
//   - Return descriptive errors if connections fail
//   - Store clients in the DBDeps struct for use in handlers
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	deps := DBDeps{}

	// Telegram notifier first: the inbox stores take it as an append hook.
	tgCfg := notify.DefaultConfig()
	tgCfg.BotToken = appCfg.TelegramBotToken
	tgCfg.ChatID = appCfg.TelegramChatID
	deps.Telegram = notify.NewClient(tgCfg, nil, logger)

	switch appCfg.ContentStore {
	case "mongo":
		// Configure MongoDB connection pool
		poolCfg := wafflemongo.DefaultPoolConfig()
		if appCfg.MongoMaxPoolSize > 0 {
			poolCfg.MaxPoolSize = appCfg.MongoMaxPoolSize
		}
		if appCfg.MongoMinPoolSize > 0 {
			poolCfg.MinPoolSize = appCfg.MongoMinPoolSize
		}

		client, err := wafflemongo.ConnectWithPool(ctx, appCfg.MongoURI, appCfg.MongoDatabase, poolCfg)
		if err != nil {
			return DBDeps{}, err
		}

		db := client.Database(appCfg.MongoDatabase)

		logger.Info("connected to MongoDB",
			zap.String("database", appCfg.MongoDatabase),
			zap.Uint64("max_pool_size", poolCfg.MaxPoolSize),
			zap.Uint64("min_pool_size", poolCfg.MinPoolSize),
		)

		deps.MongoClient = client
		deps.MongoDatabase = db
		deps.Content = content.NewMongoStore(db, logger)
		deps.Inbox = inbox.NewMongoStore(db, deps.Telegram, logger)

	case "file", "":
		contentStore, err := content.NewFileStore(appCfg.DataDir, logger)
		if err != nil {
			return DBDeps{}, fmt.Errorf("failed to initialize content file store: %w", err)
		}
		inboxStore, err := inbox.NewFileStore(appCfg.DataDir, deps.Telegram, logger)
		if err != nil {
			return DBDeps{}, fmt.Errorf("failed to initialize inbox file store: %w", err)
		}

		logger.Info("initialized file-backed stores",
			zap.String("data_dir", appCfg.DataDir),
		)

		deps.Content = contentStore
		deps.Inbox = inboxStore

	default:
		return DBDeps{}, fmt.Errorf("unknown content store: %s", appCfg.ContentStore)
	}

	// Initialize image storage
	var store storage.Store
	var err error
	switch appCfg.StorageType {
	case "s3":
		store, err = storage.NewS3(ctx, storage.S3Config{
			Region:                   appCfg.StorageS3Region,
			Bucket:                   appCfg.StorageS3Bucket,
			Prefix:                   appCfg.StorageS3Prefix,
			CloudFrontURL:            appCfg.StorageCFURL,
			CloudFrontKeyPairID:      appCfg.StorageCFKeyPairID,
			CloudFrontPrivateKeyPath: appCfg.StorageCFKeyPath,
		})
		if err != nil {
			return DBDeps{}, fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		logger.Info("initialized S3/CloudFront image storage",
			zap.String("bucket", appCfg.StorageS3Bucket),
			zap.String("prefix", appCfg.StorageS3Prefix),
		)
	case "local", "":
		store, err = storage.NewLocal(storage.LocalConfig{
			BasePath: appCfg.StorageLocalPath,
			BaseURL:  appCfg.StorageLocalURL,
		})
		if err != nil {
			return DBDeps{}, fmt.Errorf("failed to initialize local storage: %w", err)
		}
		logger.Info("initialized local image storage",
			zap.String("path", appCfg.StorageLocalPath),
			zap.String("url", appCfg.StorageLocalURL),
		)
	default:
		return DBDeps{}, fmt.Errorf("unknown storage type: %s", appCfg.StorageType)
	}
	deps.FileStorage = store

	// GitHub stats client for project cards
	ghCfg := githubstats.DefaultConfig()
	ghCfg.Owner = appCfg.GitHubOwner
	ghCfg.Token = appCfg.GitHubToken
	if appCfg.GitHubCacheTTL > 0 {
		ghCfg.CacheTTL = appCfg.GitHubCacheTTL
	}
	deps.GitHub = githubstats.NewClient(ghCfg, nil, logger)

	return deps, nil
}

// EnsureSchema sets up stored data as needed.
//
// This runs after ConnectDB succeeds but before Startup and before the HTTP
// handler is built. The content stores need no indexes (a singleton document
// and one small message collection), so the only schema work is seeding the
// starter content document on first boot.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	seeder, ok := deps.Content.(content.Seeder)
	if !ok {
		return nil
	}

	seeded, err := seeder.EnsureSeed(ctx, models.DefaultContentDocument())
	if err != nil {
		logger.Error("failed to seed content document", zap.Error(err))
		return err
	}
	if seeded {
		logger.Info("seeded starter content document")
	}
	return nil
}

// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/dipu67/folio/internal/app/store/content"
	"github.com/dipu67/folio/internal/app/store/inbox"
	"github.com/dipu67/folio/internal/app/system/githubstats"
	"github.com/dipu67/folio/internal/app/system/notify"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database and backend dependencies for this WAFFLE app.
//
// This struct is created in ConnectDB and passed to subsequent lifecycle
// hooks: EnsureSchema, Startup, BuildHandler, and Shutdown. It serves as
// the central place to store all database clients and backend connections
// that your application needs.
//
// The Shutdown hook is responsible for closing these connections gracefully
// when the application terminates.
type DBDeps struct {
	// MongoDB client and database. Both are nil when the file backend is
	// selected via content_store.
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Content and inbox repositories, backed by the selected store.
	Content content.Store
	Inbox   inbox.Store

	// FileStorage for uploaded portfolio images.
	FileStorage storage.Store

	// Telegram notifier for contact submissions. Always non-nil; an
	// unconfigured client reports delivery as skipped.
	Telegram *notify.Client

	// GitHub stats client for project cards.
	GitHub *githubstats.Client
}

// Package content owns the canonical content document. The document is read
// and written whole: no field-level patching is performed by the store, so a
// commit can never leave a partially-written document behind. The caller
// (the admin edit session) merges its pending edits locally and replaces the
// entire document in one operation; the last replace wins.
//
// Two backends are provided, selected by the content_store config key:
// a JSON file on disk (the reference at-rest format, matching deployed
// data/portfolio.json files) and a MongoDB singleton document.
package content

import (
	"context"
	"errors"

	"github.com/dipu67/folio/internal/domain/models"
)

// Sentinel errors. Load failures are fatal to the admin session — there is
// no partial or cached fallback. Write failures are retryable: the caller's
// in-memory copy is untouched.
var (
	// ErrUnavailable means the backing store could not be read (missing or
	// corrupt file, unreachable database).
	ErrUnavailable = errors.New("content store unavailable")

	// ErrWrite means the backing store rejected a replace. Nothing was
	// persisted; the previous document is intact.
	ErrWrite = errors.New("content store write failed")

	// ErrStaleWrite means the revision passed to Replace no longer matches
	// the stored document: another session replaced it after this caller
	// loaded. Distinct from ErrWrite so callers can re-load instead of
	// blindly retrying.
	ErrStaleWrite = errors.New("content store stale write")
)

// Revision is a monotonic counter bumped on every successful Replace. It is
// an optimistic-concurrency token, not part of the document itself.
type Revision uint64

// AnyRevision skips the stale-write check: the replace wins unconditionally.
// This is the reference last-writer-wins behavior for a single-admin tool.
const AnyRevision Revision = 0

// Store is the content repository contract.
type Store interface {
	// Load returns the full current document and its revision.
	Load(ctx context.Context) (*models.ContentDocument, Revision, error)

	// Replace atomically overwrites the entire stored document. If rev is
	// not AnyRevision and does not match the stored revision, the write is
	// rejected with ErrStaleWrite. Returns the new revision on success.
	Replace(ctx context.Context, doc *models.ContentDocument, rev Revision) (Revision, error)
}

// Seeder is implemented by backends that can create an initial document.
// EnsureSeed writes doc only when the store holds nothing yet and reports
// whether it did.
type Seeder interface {
	EnsureSeed(ctx context.Context, doc *models.ContentDocument) (bool, error)
}

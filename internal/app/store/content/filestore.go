// internal/app/store/content/filestore.go
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dipu67/folio/internal/domain/models"
	"go.uber.org/zap"
)

// FileName is the document file inside the data directory.
const FileName = "portfolio.json"

// FileStore persists the content document as a pretty-printed JSON file,
// byte-compatible with the data files produced by earlier deployments.
//
// Writes go through a temp file in the same directory followed by a rename,
// so a crash mid-write leaves the previous document intact. The revision
// counter lives in memory only (the file format has no room for it); it
// still catches two sessions racing within one server process, which is the
// only race a single file-backed deployment can see.
type FileStore struct {
	path string
	log  *zap.Logger

	mu  sync.Mutex
	rev Revision
}

// NewFileStore creates a file store rooted at dataDir. The directory is
// created if needed; the document file itself is not (see EnsureSeed).
func NewFileStore(dataDir string, log *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{
		path: filepath.Join(dataDir, FileName),
		rev:  1,
		log:  log,
	}, nil
}

// Path returns the document file path. Used by health checks and tests.
func (s *FileStore) Path() string { return s.path }

// Load reads and normalizes the full document.
func (s *FileStore) Load(ctx context.Context) (*models.ContentDocument, Revision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		s.log.Error("content file unreadable", zap.String("path", s.path), zap.Error(err))
		return nil, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var doc models.ContentDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.log.Error("content file corrupt", zap.String("path", s.path), zap.Error(err))
		return nil, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	doc.Normalize()
	return &doc, s.rev, nil
}

// Replace overwrites the stored document atomically.
func (s *FileStore) Replace(ctx context.Context, doc *models.ContentDocument, rev Revision) (Revision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rev != AnyRevision && rev != s.rev {
		return 0, ErrStaleWrite
	}

	if err := s.write(doc); err != nil {
		s.log.Error("content replace failed", zap.String("path", s.path), zap.Error(err))
		return 0, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	s.rev++
	s.log.Debug("content document replaced",
		zap.String("path", s.path),
		zap.Uint64("revision", uint64(s.rev)))
	return s.rev, nil
}

// EnsureSeed creates the document file with doc when it does not exist yet.
func (s *FileStore) EnsureSeed(ctx context.Context, doc *models.ContentDocument) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err := s.write(doc); err != nil {
		return false, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	s.log.Info("seeded default content document", zap.String("path", s.path))
	return true, nil
}

// write marshals doc (two-space indent, matching the legacy files) and
// swaps it into place via rename.
func (s *FileStore) write(doc *models.ContentDocument) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), FileName+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

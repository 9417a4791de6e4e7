// internal/app/store/inbox/filestore.go
package inbox

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dipu67/folio/internal/domain/models"
	"go.uber.org/zap"
)

// FileName is the message file inside the data directory.
const FileName = "messages.json"

// FileStore persists the inbox as one JSON array on disk, compatible with
// the data/messages.json files of earlier deployments. A mutex serializes
// every read-modify-write, so appends and admin replaces within one process
// never interleave.
type FileStore struct {
	path     string
	notifier Notifier
	log      *zap.Logger

	mu sync.Mutex
}

// NewFileStore creates a file-backed inbox rooted at dataDir. The message
// file is created empty on first use. notifier may be nil.
func NewFileStore(dataDir string, notifier Notifier, log *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{
		path:     filepath.Join(dataDir, FileName),
		notifier: notifier,
		log:      log,
	}, nil
}

// List returns all messages.
func (s *FileStore) List(ctx context.Context) ([]models.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Append validates, persists, and returns the new message, then fires the
// notifier.
func (s *FileStore) Append(ctx context.Context, sub Submission) (*models.ContactMessage, error) {
	if err := validate(sub); err != nil {
		return nil, err
	}

	s.mu.Lock()
	msg, err := s.appendLocked(sub)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if ok := s.notifier.NotifyNewContact(ctx, *msg); !ok {
			s.log.Warn("contact notification failed",
				zap.Int64("message_id", msg.ID))
		}
	}
	return msg, nil
}

func (s *FileStore) appendLocked(sub Submission) (*models.ContactMessage, error) {
	messages, err := s.read()
	if err != nil {
		return nil, err
	}

	msg := newMessage(sub, time.Now())
	messages = append(messages, msg)
	if err := s.write(messages); err != nil {
		return nil, wrapWrite(err)
	}

	s.log.Info("contact message stored",
		zap.Int64("message_id", msg.ID),
		zap.String("subject", msg.Subject))
	return &msg, nil
}

// ReplaceAll overwrites the whole collection.
func (s *FileStore) ReplaceAll(ctx context.Context, messages []models.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if messages == nil {
		messages = []models.ContactMessage{}
	}
	if err := s.write(messages); err != nil {
		s.log.Error("inbox replace failed", zap.Error(err))
		return wrapWrite(err)
	}
	return nil
}

// DeleteByID removes exactly one message.
func (s *FileStore) DeleteByID(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages, err := s.read()
	if err != nil {
		return err
	}

	kept := messages[:0:0]
	for _, m := range messages {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(messages) {
		return ErrNotFound
	}

	if err := s.write(kept); err != nil {
		s.log.Error("inbox delete failed", zap.Int64("message_id", id), zap.Error(err))
		return wrapWrite(err)
	}
	return nil
}

// read loads the message array, creating an empty file on first use.
func (s *FileStore) read() ([]models.ContactMessage, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		if werr := s.write([]models.ContactMessage{}); werr != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, werr)
		}
		return []models.ContactMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var messages []models.ContactMessage
	if err := json.Unmarshal(raw, &messages); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if messages == nil {
		messages = []models.ContactMessage{}
	}
	return messages, nil
}

func (s *FileStore) write(messages []models.ContactMessage) error {
	raw, err := json.MarshalIndent(messages, "", "  ")
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

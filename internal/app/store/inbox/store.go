// Package inbox owns the contact message collection. Messages are created
// only by the public submission path (append), mutated only by the admin
// session (status/priority/notes), and deleted only by explicit admin
// action.
//
// Like the content store, admin mutations are whole-collection replaces.
// Append is a read-modify-write of the full collection, so each backend
// serializes its writes; a public submission cannot be torn by a concurrent
// admin replace, though a replace from a stale admin copy still wins over
// it (accepted last-writer-wins behavior).
package inbox

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dipu67/folio/internal/app/order"
	"github.com/dipu67/folio/internal/app/system/sanitize"
	"github.com/dipu67/folio/internal/domain/models"
)

// Sentinel errors.
var (
	// ErrUnavailable means the backing store could not be read.
	ErrUnavailable = errors.New("inbox unavailable")

	// ErrWrite means a mutation could not be persisted.
	ErrWrite = errors.New("inbox write failed")

	// ErrNotFound means DeleteByID matched nothing. It is returned, never
	// swallowed, so callers can tell "deleted" from "nothing to delete".
	ErrNotFound = errors.New("message not found")
)

// Submission is the public contact-form payload. All four fields are
// required.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ValidationError lists the submission fields that were missing or blank.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// Notifier receives a best-effort notification for each accepted
// submission. Implementations report delivery but must not fail the append;
// the stores only log the outcome.
type Notifier interface {
	NotifyNewContact(ctx context.Context, msg models.ContactMessage) bool
}

// Store is the message inbox contract.
type Store interface {
	// List returns all messages. Storage imposes no ordering; the admin UI
	// sorts by submittedAt at presentation time.
	List(ctx context.Context) ([]models.ContactMessage, error)

	// Append validates the submission, assigns identity and workflow
	// defaults, persists the new message, and returns it. This is the only
	// creation path. A configured notifier is invoked exactly once after
	// persistence succeeds; notification failure never fails the append.
	Append(ctx context.Context, sub Submission) (*models.ContactMessage, error)

	// ReplaceAll overwrites the whole collection. Last writer wins.
	ReplaceAll(ctx context.Context, messages []models.ContactMessage) error

	// DeleteByID removes exactly the message with the given id, or returns
	// ErrNotFound.
	DeleteByID(ctx context.Context, id int64) error
}

// validate reports the blank submission fields.
func validate(sub Submission) error {
	var missing []string
	if strings.TrimSpace(sub.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(sub.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(sub.Subject) == "" {
		missing = append(missing, "subject")
	}
	if strings.TrimSpace(sub.Message) == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// newMessage builds the stored record for a validated submission. Field
// text is stripped of any HTML before it is persisted or relayed.
func newMessage(sub Submission, now time.Time) models.ContactMessage {
	return models.ContactMessage{
		ID:          order.NewID(),
		Name:        sanitize.Strip(sub.Name),
		Email:       sanitize.Strip(sub.Email),
		Subject:     sanitize.Strip(sub.Subject),
		Message:     sanitize.Strip(sub.Message),
		Status:      models.StatusUnread,
		Priority:    models.PriorityNormal,
		SubmittedAt: now.UTC(),
		ReadAt:      nil,
		RespondedAt: nil,
		Notes:       "",
	}
}

// wrapWrite tags backend write errors with ErrWrite.
func wrapWrite(err error) error {
	return fmt.Errorf("%w: %v", ErrWrite, err)
}

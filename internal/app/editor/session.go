// Package editor implements the admin edit session: an in-memory working
// copy of the content document and the message inbox that the admin panel
// mutates through typed operations and commits back to storage.
//
// Every operation produces a new working copy (the previous value is never
// mutated in place), so a failed commit leaves all local edits intact and
// retryable. Commits are whole-document / whole-collection replaces,
// matching the storage contracts.
package editor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dipu67/folio/internal/app/order"
	"github.com/dipu67/folio/internal/app/store/content"
	"github.com/dipu67/folio/internal/app/store/inbox"
	"github.com/dipu67/folio/internal/domain/models"
	"go.uber.org/zap"
)

// ErrIndexOutOfRange is returned by index-addressed operations when the
// index does not name an existing element.
var ErrIndexOutOfRange = errors.New("index out of range")

// ErrMessageNotFound is returned when a message id is not in the working
// copy of the inbox.
var ErrMessageNotFound = errors.New("message not found in session")

// Session is one admin editing session over the content document and the
// message inbox. It is not safe for concurrent use; the admin panel has a
// single operator and issues one operation at a time.
type Session struct {
	repo  content.Store
	inbox inbox.Store
	log   *zap.Logger

	doc      *models.ContentDocument
	rev      content.Revision
	messages []models.ContactMessage
}

// NewSession loads the current document and inbox into a fresh session.
// A storage failure here is fatal to the session; there is nothing to edit.
func NewSession(ctx context.Context, repo content.Store, ibx inbox.Store, log *zap.Logger) (*Session, error) {
	doc, rev, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	messages, err := ibx.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load inbox: %w", err)
	}

	return &Session{
		repo:     repo,
		inbox:    ibx,
		log:      log,
		doc:      doc,
		rev:      rev,
		messages: messages,
	}, nil
}

// Document returns a copy of the working document. Callers may inspect it
// freely without affecting the session.
func (s *Session) Document() *models.ContentDocument {
	return s.doc.Clone()
}

// Revision returns the revision the working copy is based on.
func (s *Session) Revision() content.Revision {
	return s.rev
}

// Messages returns a copy of the working inbox.
func (s *Session) Messages() []models.ContactMessage {
	out := make([]models.ContactMessage, len(s.messages))
	for i := range s.messages {
		out[i] = s.messages[i].Clone()
	}
	return out
}

// edit applies fn to a clone of the working document and adopts the clone.
func (s *Session) edit(fn func(d *models.ContentDocument)) {
	next := s.doc.Clone()
	fn(next)
	s.doc = next
}

/* content edits */

// SetPersonal replaces the personal block.
func (s *Session) SetPersonal(p models.Personal) {
	s.edit(func(d *models.ContentDocument) { d.Personal = p })
}

// SetAbout replaces the about block.
func (s *Session) SetAbout(a models.About) {
	s.edit(func(d *models.ContentDocument) { d.About = a })
}

// SetStats replaces the headline stats list.
func (s *Session) SetStats(stats []models.Stat) {
	s.edit(func(d *models.ContentDocument) {
		d.Stats = append([]models.Stat(nil), stats...)
	})
}

// UpdateStat replaces one stat in place.
func (s *Session) UpdateStat(index int, stat models.Stat) error {
	if index < 0 || index >= len(s.doc.Stats) {
		return ErrIndexOutOfRange
	}
	s.edit(func(d *models.ContentDocument) { d.Stats[index] = stat })
	return nil
}

// SetSkills replaces the skill groups.
func (s *Session) SetSkills(groups []models.SkillGroup) {
	s.edit(func(d *models.ContentDocument) {
		out := make([]models.SkillGroup, len(groups))
		for i, g := range groups {
			out[i] = g
			out[i].Technologies = append([]models.Technology(nil), g.Technologies...)
		}
		d.Skills = out
	})
}

/* project edits */

// AddProject appends a new project built from the named template (or the
// default when the name is unknown or empty) and returns it. The new project
// gets a fresh id.
func (s *Session) AddProject(template string) models.Project {
	p := NewProjectFromTemplate(template)
	s.edit(func(d *models.ContentDocument) {
		d.Projects = append(d.Projects, p)
	})
	s.log.Info("project added",
		zap.Int64("project_id", p.ID),
		zap.String("template", template))
	return p
}

// UpdateProject replaces the project at index, preserving its identity:
// the stored id survives whatever the caller sends.
func (s *Session) UpdateProject(index int, p models.Project) error {
	if index < 0 || index >= len(s.doc.Projects) {
		return ErrIndexOutOfRange
	}
	s.edit(func(d *models.ContentDocument) {
		p.ID = d.Projects[index].ID
		d.Projects[index] = p
	})
	return nil
}

// DeleteProject removes the project at index.
func (s *Session) DeleteProject(index int) error {
	if index < 0 || index >= len(s.doc.Projects) {
		return ErrIndexOutOfRange
	}
	s.edit(func(d *models.ContentDocument) {
		d.Projects = append(d.Projects[:index], d.Projects[index+1:]...)
	})
	return nil
}

// DuplicateProject inserts a copy of the project at index immediately after
// it. The copy gets a fresh id, a " (Copy)" title suffix, and its status
// reset to "In Progress"; the source project is untouched.
func (s *Session) DuplicateProject(index int) (models.Project, error) {
	if index < 0 || index >= len(s.doc.Projects) {
		return models.Project{}, ErrIndexOutOfRange
	}

	var dup models.Project
	s.edit(func(d *models.ContentDocument) {
		d.Projects = order.DuplicateAt(d.Projects, index, func(p models.Project) models.Project {
			p.ID = order.NewID()
			p.Title = p.Title + " (Copy)"
			p.Status = models.ProjectStatusInProgress
			p.Technologies = append([]string(nil), p.Technologies...)
			p.Features = append([]string(nil), p.Features...)
			if p.Visible != nil {
				visible := *p.Visible
				p.Visible = &visible
			}
			dup = p
			return p
		})
	})

	s.log.Info("project duplicated",
		zap.Int64("source_id", s.doc.Projects[index].ID),
		zap.Int64("copy_id", dup.ID))
	return dup, nil
}

// MoveProjectUp swaps the project at index with its predecessor. The top
// position is a no-op.
func (s *Session) MoveProjectUp(index int) {
	s.edit(func(d *models.ContentDocument) {
		d.Projects = order.MoveUp(d.Projects, index)
	})
}

// MoveProjectDown swaps the project at index with its successor. The bottom
// position is a no-op.
func (s *Session) MoveProjectDown(index int) {
	s.edit(func(d *models.ContentDocument) {
		d.Projects = order.MoveDown(d.Projects, index)
	})
}

// MoveProjectToPosition moves the project at fromIndex to toIndex.
func (s *Session) MoveProjectToPosition(fromIndex, toIndex int) {
	s.edit(func(d *models.ContentDocument) {
		d.Projects = order.MoveToPosition(d.Projects, fromIndex, toIndex)
	})
}

// ToggleProjectVisibility flips the visibility of the project at index and
// returns the new state. A project with no explicit flag counts as visible,
// so the first toggle always hides.
func (s *Session) ToggleProjectVisibility(index int) (bool, error) {
	if index < 0 || index >= len(s.doc.Projects) {
		return false, ErrIndexOutOfRange
	}

	var nowVisible bool
	s.edit(func(d *models.ContentDocument) {
		p := &d.Projects[index]
		nowVisible = !p.IsVisible()
		p.Visible = &nowVisible
	})
	return nowVisible, nil
}

/* testimonial edits */

// AddTestimonial appends a placeholder testimonial and returns it.
func (s *Session) AddTestimonial() models.Testimonial {
	t := DefaultTestimonial()
	s.edit(func(d *models.ContentDocument) {
		d.Testimonials = append(d.Testimonials, t)
	})
	return t
}

// UpdateTestimonial replaces the testimonial at index.
func (s *Session) UpdateTestimonial(index int, t models.Testimonial) error {
	if index < 0 || index >= len(s.doc.Testimonials) {
		return ErrIndexOutOfRange
	}
	s.edit(func(d *models.ContentDocument) { d.Testimonials[index] = t })
	return nil
}

// DeleteTestimonial removes the testimonial at index.
func (s *Session) DeleteTestimonial(index int) error {
	if index < 0 || index >= len(s.doc.Testimonials) {
		return ErrIndexOutOfRange
	}
	s.edit(func(d *models.ContentDocument) {
		d.Testimonials = append(d.Testimonials[:index], d.Testimonials[index+1:]...)
	})
	return nil
}

// DuplicateTestimonial inserts a copy immediately after the source with the
// name suffixed " (Copy)". Testimonials have no id, so nothing else changes.
func (s *Session) DuplicateTestimonial(index int) (models.Testimonial, error) {
	if index < 0 || index >= len(s.doc.Testimonials) {
		return models.Testimonial{}, ErrIndexOutOfRange
	}

	var dup models.Testimonial
	s.edit(func(d *models.ContentDocument) {
		d.Testimonials = order.DuplicateAt(d.Testimonials, index, func(t models.Testimonial) models.Testimonial {
			t.Name = t.Name + " (Copy)"
			dup = t
			return t
		})
	})
	return dup, nil
}

/* message edits */

func (s *Session) messageIndex(id int64) int {
	for i := range s.messages {
		if s.messages[i].ID == id {
			return i
		}
	}
	return -1
}

// editMessage applies fn to a clone of the identified message and adopts a
// new working slice.
func (s *Session) editMessage(id int64, fn func(m *models.ContactMessage)) error {
	i := s.messageIndex(id)
	if i < 0 {
		return ErrMessageNotFound
	}

	next := make([]models.ContactMessage, len(s.messages))
	for j := range s.messages {
		next[j] = s.messages[j].Clone()
	}
	fn(&next[i])
	s.messages = next
	return nil
}

// SetMessageStatus changes the status of one message in the working copy,
// applying the first-occurrence timestamp rule for readAt/respondedAt.
func (s *Session) SetMessageStatus(id int64, status string) error {
	if !models.ValidStatus(status) {
		return fmt.Errorf("invalid status %q", status)
	}
	return s.editMessage(id, func(m *models.ContactMessage) {
		m.SetStatus(status, time.Now().UTC())
	})
}

// SetMessagePriority changes the priority of one message in the working copy.
func (s *Session) SetMessagePriority(id int64, priority string) error {
	if !models.ValidPriority(priority) {
		return fmt.Errorf("invalid priority %q", priority)
	}
	return s.editMessage(id, func(m *models.ContactMessage) {
		m.Priority = priority
	})
}

// SetMessageNotes replaces the admin notes of one message in the working copy.
func (s *Session) SetMessageNotes(id int64, notes string) error {
	return s.editMessage(id, func(m *models.ContactMessage) {
		m.Notes = notes
	})
}

/* commits */

// CommitContent writes the working document back to storage. On success the
// session adopts the new revision. On failure (including a stale-revision
// conflict) the working copy and all local edits are preserved so the admin
// can retry; storage errors never destroy session state.
func (s *Session) CommitContent(ctx context.Context) error {
	rev, err := s.repo.Replace(ctx, s.doc, s.rev)
	if err != nil {
		s.log.Warn("content commit failed", zap.Error(err))
		return err
	}
	s.rev = rev
	s.log.Info("content committed", zap.Uint64("revision", uint64(rev)))
	return nil
}

// CommitMessages writes the working inbox back as a whole-collection
// replace. The working copy is kept as-is on failure; edits already applied
// locally stay applied and the commit can be retried. There is no rollback
// of local state on a failed write.
func (s *Session) CommitMessages(ctx context.Context) error {
	if err := s.inbox.ReplaceAll(ctx, s.messages); err != nil {
		s.log.Warn("inbox commit failed", zap.Error(err))
		return err
	}
	return nil
}

// DeleteMessage deletes one message from storage directly and, on success,
// drops it from the working copy.
func (s *Session) DeleteMessage(ctx context.Context, id int64) error {
	if err := s.inbox.DeleteByID(ctx, id); err != nil {
		return err
	}

	next := s.messages[:0:0]
	for _, m := range s.messages {
		if m.ID != id {
			next = append(next, m)
		}
	}
	s.messages = next
	return nil
}

// ReloadMessages refreshes the working inbox from storage, discarding any
// uncommitted message edits.
func (s *Session) ReloadMessages(ctx context.Context) error {
	messages, err := s.inbox.List(ctx)
	if err != nil {
		return err
	}
	s.messages = messages
	return nil
}

// Reload refreshes the working document from storage, discarding any
// uncommitted content edits. Used after a stale-write conflict.
func (s *Session) Reload(ctx context.Context) error {
	doc, rev, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	s.doc = doc
	s.rev = rev
	return nil
}

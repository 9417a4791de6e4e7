package editor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dipu67/folio/internal/app/store/content"
	"github.com/dipu67/folio/internal/app/store/inbox"
	"github.com/dipu67/folio/internal/domain/models"
	"go.uber.org/zap"
)

func newTestSession(t *testing.T, doc *models.ContentDocument) *Session {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	repo, err := content.NewFileStore(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	if doc == nil {
		doc = models.DefaultContentDocument()
	}
	if _, err := repo.EnsureSeed(ctx, doc); err != nil {
		t.Fatalf("EnsureSeed() error = %v", err)
	}

	ibx, err := inbox.NewFileStore(dir, nil, zap.NewNop())
	if err != nil {
		t.Fatalf("inbox.NewFileStore() error = %v", err)
	}

	sess, err := NewSession(ctx, repo, ibx, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	return sess
}

func docWithProjects(titles ...string) *models.ContentDocument {
	doc := models.DefaultContentDocument()
	for i, title := range titles {
		doc.Projects = append(doc.Projects, models.Project{
			ID:     int64(1000 + i),
			Title:  title,
			Status: models.ProjectStatusCompleted,
		})
	}
	doc.Normalize()
	return doc
}

func projectTitles(doc *models.ContentDocument) []string {
	titles := make([]string, len(doc.Projects))
	for i, p := range doc.Projects {
		titles[i] = p.Title
	}
	return titles
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDuplicateProjectInsertsAfterSource(t *testing.T) {
	sess := newTestSession(t, docWithProjects("A", "B", "C"))

	dup, err := sess.DuplicateProject(1)
	if err != nil {
		t.Fatalf("DuplicateProject() error = %v", err)
	}

	got := projectTitles(sess.Document())
	want := []string{"A", "B", "B (Copy)", "C"}
	if !equalStrings(got, want) {
		t.Errorf("titles = %v, want %v", got, want)
	}

	doc := sess.Document()
	source := doc.Projects[1]
	copyP := doc.Projects[2]

	if copyP.ID == source.ID {
		t.Error("duplicate kept the source id; want a fresh one")
	}
	if dup.ID != copyP.ID {
		t.Errorf("returned duplicate id %d != stored %d", dup.ID, copyP.ID)
	}
	if copyP.Status != models.ProjectStatusInProgress {
		t.Errorf("duplicate status = %q, want In Progress", copyP.Status)
	}
	if source.Title != "B" || source.Status != models.ProjectStatusCompleted {
		t.Errorf("source mutated: %+v", source)
	}
}

func TestDuplicateKeepsOtherIDsStable(t *testing.T) {
	sess := newTestSession(t, docWithProjects("A", "B", "C"))

	before := sess.Document()
	if _, err := sess.DuplicateProject(0); err != nil {
		t.Fatalf("DuplicateProject() error = %v", err)
	}
	after := sess.Document()

	// A keeps its id; B and C keep theirs at shifted positions.
	if after.Projects[0].ID != before.Projects[0].ID {
		t.Error("source project id changed")
	}
	if after.Projects[2].ID != before.Projects[1].ID ||
		after.Projects[3].ID != before.Projects[2].ID {
		t.Error("unrelated project ids changed by duplication")
	}
}

func TestMoveUpDownInverse(t *testing.T) {
	sess := newTestSession(t, docWithProjects("A", "B", "C"))
	before := projectTitles(sess.Document())

	sess.MoveProjectDown(1)
	sess.MoveProjectUp(2)
	if got := projectTitles(sess.Document()); !equalStrings(got, before) {
		t.Errorf("down-then-up changed order: %v", got)
	}

	// Boundary no-ops.
	sess.MoveProjectUp(0)
	sess.MoveProjectDown(2)
	if got := projectTitles(sess.Document()); !equalStrings(got, before) {
		t.Errorf("boundary moves changed order: %v", got)
	}
}

func TestMoveProjectToPosition(t *testing.T) {
	sess := newTestSession(t, docWithProjects("A", "B", "C"))

	sess.MoveProjectToPosition(0, 2)
	got := projectTitles(sess.Document())
	want := []string{"B", "C", "A"}
	if !equalStrings(got, want) {
		t.Errorf("titles = %v, want %v", got, want)
	}
}

func TestToggleProjectVisibility(t *testing.T) {
	sess := newTestSession(t, docWithProjects("A"))

	// Normalized documents carry an explicit true; first toggle hides.
	visible, err := sess.ToggleProjectVisibility(0)
	if err != nil {
		t.Fatalf("ToggleProjectVisibility() error = %v", err)
	}
	if visible {
		t.Error("first toggle left the project visible")
	}

	visible, err = sess.ToggleProjectVisibility(0)
	if err != nil {
		t.Fatalf("ToggleProjectVisibility() error = %v", err)
	}
	if !visible {
		t.Error("second toggle left the project hidden")
	}
}

func TestAddProjectFromTemplate(t *testing.T) {
	sess := newTestSession(t, nil)

	p := sess.AddProject(TemplateAPI)
	if p.Type != models.ProjectTypeBackend {
		t.Errorf("Type = %q, want Backend", p.Type)
	}
	if p.Status != models.ProjectStatusInProgress {
		t.Errorf("Status = %q, want In Progress", p.Status)
	}
	if p.ID == 0 {
		t.Error("template project has no id")
	}

	// Unknown template falls back to fullstack.
	q := sess.AddProject("nonsense")
	if q.Type != models.ProjectTypeFullStack {
		t.Errorf("fallback Type = %q, want Full Stack", q.Type)
	}
	if q.ID == p.ID {
		t.Error("two added projects share an id")
	}

	doc := sess.Document()
	if len(doc.Projects) != 2 {
		t.Fatalf("projects = %d, want 2", len(doc.Projects))
	}
}

func TestUpdateProjectPreservesID(t *testing.T) {
	sess := newTestSession(t, docWithProjects("A"))
	origID := sess.Document().Projects[0].ID

	if err := sess.UpdateProject(0, models.Project{ID: 999, Title: "A2"}); err != nil {
		t.Fatalf("UpdateProject() error = %v", err)
	}

	p := sess.Document().Projects[0]
	if p.ID != origID {
		t.Errorf("id = %d, want preserved %d", p.ID, origID)
	}
	if p.Title != "A2" {
		t.Errorf("title = %q, want A2", p.Title)
	}
}

func TestIndexOutOfRange(t *testing.T) {
	sess := newTestSession(t, docWithProjects("A"))

	if err := sess.DeleteProject(5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("DeleteProject(5) error = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := sess.DuplicateProject(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("DuplicateProject(-1) error = %v, want ErrIndexOutOfRange", err)
	}
	if err := sess.UpdateTestimonial(0, models.Testimonial{}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("UpdateTestimonial(0) on empty list error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestDuplicateTestimonial(t *testing.T) {
	doc := models.DefaultContentDocument()
	doc.Testimonials = []models.Testimonial{
		{Name: "Ann", Content: "Great work"},
		{Name: "Bob", Content: "Solid"},
	}
	sess := newTestSession(t, doc)

	dup, err := sess.DuplicateTestimonial(0)
	if err != nil {
		t.Fatalf("DuplicateTestimonial() error = %v", err)
	}
	if dup.Name != "Ann (Copy)" {
		t.Errorf("name = %q, want Ann (Copy)", dup.Name)
	}

	got := sess.Document().Testimonials
	if len(got) != 3 || got[1].Name != "Ann (Copy)" || got[2].Name != "Bob" {
		t.Errorf("testimonials = %+v", got)
	}
}

func TestCommitContentRoundTrip(t *testing.T) {
	ctx := context.Background()
	sess := newTestSession(t, nil)

	sess.SetPersonal(models.Personal{Name: "Dipu", Title: "Engineer"})
	sess.AddProject(TemplateFrontend)

	if err := sess.CommitContent(ctx); err != nil {
		t.Fatalf("CommitContent() error = %v", err)
	}

	// A fresh session sees the committed state.
	fresh, err := NewSession(ctx, sess.repo, sess.inbox, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	doc := fresh.Document()
	if doc.Personal.Name != "Dipu" {
		t.Errorf("Name = %q, want Dipu", doc.Personal.Name)
	}
	if len(doc.Projects) != 1 {
		t.Errorf("projects = %d, want 1", len(doc.Projects))
	}
}

func TestCommitContentStaleWrite(t *testing.T) {
	ctx := context.Background()
	sess := newTestSession(t, nil)

	// A second session commits first.
	other, err := NewSession(ctx, sess.repo, sess.inbox, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	other.SetPersonal(models.Personal{Name: "Other"})
	if err := other.CommitContent(ctx); err != nil {
		t.Fatalf("other CommitContent() error = %v", err)
	}

	sess.SetPersonal(models.Personal{Name: "Mine"})
	if err := sess.CommitContent(ctx); !errors.Is(err, content.ErrStaleWrite) {
		t.Fatalf("CommitContent() error = %v, want ErrStaleWrite", err)
	}

	// Local edits survive the conflict.
	if got := sess.Document().Personal.Name; got != "Mine" {
		t.Errorf("working copy Name = %q, want Mine after failed commit", got)
	}

	// Reload then retry succeeds.
	if err := sess.Reload(ctx); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	sess.SetPersonal(models.Personal{Name: "Mine"})
	if err := sess.CommitContent(ctx); err != nil {
		t.Fatalf("retry CommitContent() error = %v", err)
	}
}

type failingInbox struct {
	inbox.Store
}

func (f failingInbox) ReplaceAll(ctx context.Context, messages []models.ContactMessage) error {
	return inbox.ErrWrite
}

func TestCommitMessagesFailureKeepsEdits(t *testing.T) {
	ctx := context.Background()
	sess := newTestSession(t, nil)

	// Seed one message through the real store, reload, then swap in a
	// write-failing inbox.
	if _, err := sess.inbox.Append(ctx, inbox.Submission{
		Name: "Ann", Email: "ann@example.com", Subject: "Hi", Message: "Hello",
	}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := sess.ReloadMessages(ctx); err != nil {
		t.Fatalf("ReloadMessages() error = %v", err)
	}
	id := sess.Messages()[0].ID
	sess.inbox = failingInbox{Store: sess.inbox}

	if err := sess.SetMessageStatus(id, models.StatusRead); err != nil {
		t.Fatalf("SetMessageStatus() error = %v", err)
	}
	if err := sess.CommitMessages(ctx); !errors.Is(err, inbox.ErrWrite) {
		t.Fatalf("CommitMessages() error = %v, want ErrWrite", err)
	}

	// The local edit is preserved, not rolled back.
	got := sess.Messages()[0]
	if got.Status != models.StatusRead {
		t.Errorf("status = %q, want read after failed commit", got.Status)
	}
	if got.ReadAt == nil {
		t.Error("readAt not set after failed commit")
	}
}

func TestSetMessageStatusFirstOccurrenceTimestamps(t *testing.T) {
	ctx := context.Background()
	sess := newTestSession(t, nil)

	if _, err := sess.inbox.Append(ctx, inbox.Submission{
		Name: "Ann", Email: "ann@example.com", Subject: "Hi", Message: "Hello",
	}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := sess.ReloadMessages(ctx); err != nil {
		t.Fatalf("ReloadMessages() error = %v", err)
	}
	id := sess.Messages()[0].ID

	if err := sess.SetMessageStatus(id, models.StatusRead); err != nil {
		t.Fatalf("SetMessageStatus(read) error = %v", err)
	}
	first := sess.Messages()[0].ReadAt
	if first == nil {
		t.Fatal("readAt not set on first read transition")
	}

	// Away and back: the timestamp must not move.
	time.Sleep(5 * time.Millisecond)
	if err := sess.SetMessageStatus(id, models.StatusArchived); err != nil {
		t.Fatalf("SetMessageStatus(archived) error = %v", err)
	}
	if err := sess.SetMessageStatus(id, models.StatusRead); err != nil {
		t.Fatalf("SetMessageStatus(read again) error = %v", err)
	}
	again := sess.Messages()[0].ReadAt
	if again == nil || !again.Equal(*first) {
		t.Errorf("readAt moved on repeat transition: first %v, again %v", first, again)
	}

	if err := sess.SetMessageStatus(id, "bogus"); err == nil {
		t.Error("SetMessageStatus accepted an invalid status")
	}
	if err := sess.SetMessageStatus(9999, models.StatusRead); !errors.Is(err, ErrMessageNotFound) {
		t.Errorf("unknown id error = %v, want ErrMessageNotFound", err)
	}
}

func TestDeleteMessage(t *testing.T) {
	ctx := context.Background()
	sess := newTestSession(t, nil)

	if _, err := sess.inbox.Append(ctx, inbox.Submission{
		Name: "Ann", Email: "a@b.c", Subject: "Hi", Message: "Hello",
	}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := sess.ReloadMessages(ctx); err != nil {
		t.Fatalf("ReloadMessages() error = %v", err)
	}
	id := sess.Messages()[0].ID

	if err := sess.DeleteMessage(ctx, id); err != nil {
		t.Fatalf("DeleteMessage() error = %v", err)
	}
	if len(sess.Messages()) != 0 {
		t.Error("message still in working copy after delete")
	}

	if err := sess.DeleteMessage(ctx, id); !errors.Is(err, inbox.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

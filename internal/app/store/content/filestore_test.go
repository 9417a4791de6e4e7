package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dipu67/folio/internal/domain/models"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	return s
}

func seededStore(t *testing.T) *FileStore {
	t.Helper()
	s := newTestStore(t)
	if _, err := s.EnsureSeed(context.Background(), models.DefaultContentDocument()); err != nil {
		t.Fatalf("EnsureSeed() error = %v", err)
	}
	return s
}

func TestLoadBeforeSeedFails(t *testing.T) {
	s := newTestStore(t)
	_, _, err := s.Load(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Load() error = %v, want ErrUnavailable", err)
	}
}

func TestEnsureSeedOnlyOnce(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seeded, err := s.EnsureSeed(ctx, models.DefaultContentDocument())
	if err != nil || !seeded {
		t.Fatalf("first EnsureSeed() = %v, %v, want true, nil", seeded, err)
	}

	seeded, err = s.EnsureSeed(ctx, models.DefaultContentDocument())
	if err != nil || seeded {
		t.Fatalf("second EnsureSeed() = %v, %v, want false, nil", seeded, err)
	}
}

func TestReplaceRoundTrip(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	doc, rev, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	doc.Personal.Name = "Dipu"
	doc.Projects = append(doc.Projects, models.Project{ID: 42, Title: "Folio"})

	newRev, err := s.Replace(ctx, doc, rev)
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if newRev <= rev {
		t.Errorf("Replace() revision = %d, want > %d", newRev, rev)
	}

	got, gotRev, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() after replace error = %v", err)
	}
	if gotRev != newRev {
		t.Errorf("Load() revision = %d, want %d", gotRev, newRev)
	}
	if got.Personal.Name != "Dipu" || len(got.Projects) != 1 || got.Projects[0].Title != "Folio" {
		t.Errorf("replaced document did not round trip: %+v", got)
	}
}

func TestReplaceStaleRevision(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	doc, rev, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if _, err := s.Replace(ctx, doc, rev); err != nil {
		t.Fatalf("first Replace() error = %v", err)
	}

	_, err = s.Replace(ctx, doc, rev)
	if !errors.Is(err, ErrStaleWrite) {
		t.Errorf("stale Replace() error = %v, want ErrStaleWrite", err)
	}
}

func TestReplaceAnyRevisionAlwaysWins(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	doc, rev, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := s.Replace(ctx, doc, rev); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	doc.Personal.Name = "Winner"
	if _, err := s.Replace(ctx, doc, AnyRevision); err != nil {
		t.Fatalf("Replace(AnyRevision) error = %v", err)
	}

	got, _, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Personal.Name != "Winner" {
		t.Errorf("Personal.Name = %q, want Winner", got.Personal.Name)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err = s.Load(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Load() error = %v, want ErrUnavailable", err)
	}
}

func TestLoadNormalizesDocument(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	// Hand-written legacy file: no collections, no visible flags.
	raw := `{"personal":{"name":"Dipu"},"projects":[{"id":1,"title":"One"}]}`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, _, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.Stats == nil || doc.Testimonials == nil {
		t.Error("Load() should normalize nil collections")
	}
	if !doc.Projects[0].IsVisible() || doc.Projects[0].Visible == nil {
		t.Error("Load() should fill absent Visible with explicit true")
	}
}

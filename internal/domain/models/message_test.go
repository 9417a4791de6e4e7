package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusUnread, StatusRead, StatusResponded, StatusArchived} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "new", "READ", "deleted"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true, want false", s)
		}
	}
}

func TestValidPriority(t *testing.T) {
	for _, p := range []string{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent} {
		if !ValidPriority(p) {
			t.Errorf("ValidPriority(%q) = false, want true", p)
		}
	}
	if ValidPriority("critical") {
		t.Error("ValidPriority(critical) = true, want false")
	}
}

func TestSetStatusFirstOccurrenceOnly(t *testing.T) {
	m := ContactMessage{Status: StatusUnread}
	first := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	later := first.Add(2 * time.Hour)

	m.SetStatus(StatusRead, first)
	if m.ReadAt == nil || !m.ReadAt.Equal(first) {
		t.Fatalf("ReadAt = %v, want %v", m.ReadAt, first)
	}

	m.SetStatus(StatusArchived, later)
	m.SetStatus(StatusRead, later)
	if !m.ReadAt.Equal(first) {
		t.Errorf("ReadAt overwritten to %v, want first occurrence %v", m.ReadAt, first)
	}

	m.SetStatus(StatusResponded, later)
	if m.RespondedAt == nil || !m.RespondedAt.Equal(later) {
		t.Fatalf("RespondedAt = %v, want %v", m.RespondedAt, later)
	}
	m.SetStatus(StatusResponded, later.Add(time.Hour))
	if !m.RespondedAt.Equal(later) {
		t.Errorf("RespondedAt overwritten, want first occurrence preserved")
	}
}

func TestTimestampsSerializeAsNull(t *testing.T) {
	raw, err := json.Marshal(ContactMessage{ID: 1, Status: StatusUnread})
	if err != nil {
		t.Fatal(err)
	}
	s := string(raw)
	if !strings.Contains(s, `"readAt":null`) {
		t.Errorf("unset ReadAt should serialize as explicit null, got %s", s)
	}
	if !strings.Contains(s, `"respondedAt":null`) {
		t.Errorf("unset RespondedAt should serialize as explicit null, got %s", s)
	}
}

func TestMessageCloneIndependentTimestamps(t *testing.T) {
	now := time.Now().UTC()
	m := ContactMessage{ID: 1}
	m.SetStatus(StatusRead, now)

	c := m.Clone()
	*c.ReadAt = now.Add(time.Hour)

	if !m.ReadAt.Equal(now) {
		t.Error("clone shares ReadAt pointer with original")
	}
}

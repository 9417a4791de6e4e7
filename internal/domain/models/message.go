// internal/domain/models/message.go
package models

import "time"

// ContactMessage status values. Status is a free select in the admin panel,
// not a strict linear flow: any status may transition to any other.
const (
	StatusUnread    = "unread"
	StatusRead      = "read"
	StatusResponded = "responded"
	StatusArchived  = "archived"
)

// ContactMessage priority values.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// ValidStatus reports whether s is a known message status.
func ValidStatus(s string) bool {
	switch s {
	case StatusUnread, StatusRead, StatusResponded, StatusArchived:
		return true
	}
	return false
}

// ValidPriority reports whether p is a known message priority.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ContactMessage is one contact-form submission.
//
// ID is assigned once at submission (time-derived) and is the sole lookup
// and delete key. SubmittedAt is set once at creation. ReadAt and
// RespondedAt are first-occurrence timestamps: they are set on the first
// transition into "read" / "responded" respectively and never overwritten,
// even if the status later oscillates away and back.
//
// ReadAt and RespondedAt serialize as explicit null when unset — the JSON
// field is always present.
type ContactMessage struct {
	ID          int64      `bson:"id"          json:"id"`
	Name        string     `bson:"name"        json:"name"`
	Email       string     `bson:"email"       json:"email"`
	Subject     string     `bson:"subject"     json:"subject"`
	Message     string     `bson:"message"     json:"message"`
	Status      string     `bson:"status"      json:"status"`
	Priority    string     `bson:"priority"    json:"priority"`
	SubmittedAt time.Time  `bson:"submittedAt" json:"submittedAt"`
	ReadAt      *time.Time `bson:"readAt"      json:"readAt"`
	RespondedAt *time.Time `bson:"respondedAt" json:"respondedAt"`
	Notes       string     `bson:"notes"       json:"notes"`
}

// SetStatus changes the message status and applies the first-occurrence
// timestamp rule: entering "read" sets ReadAt only if it was never set,
// entering "responded" sets RespondedAt only if it was never set. Any other
// transition touches no timestamps.
func (m *ContactMessage) SetStatus(status string, now time.Time) {
	m.Status = status
	switch status {
	case StatusRead:
		if m.ReadAt == nil {
			t := now
			m.ReadAt = &t
		}
	case StatusResponded:
		if m.RespondedAt == nil {
			t := now
			m.RespondedAt = &t
		}
	}
}

// Clone returns a copy of the message with its own timestamp pointers.
func (m *ContactMessage) Clone() ContactMessage {
	out := *m
	if m.ReadAt != nil {
		t := *m.ReadAt
		out.ReadAt = &t
	}
	if m.RespondedAt != nil {
		t := *m.RespondedAt
		out.RespondedAt = &t
	}
	return out
}

// internal/domain/models/content.go
package models

import "strings"

// ContentDocument is the single structured-content record for a deployment.
// It covers everything the public site renders: personal info, about text,
// headline stats, skill groups, projects, and testimonials.
//
// The document serializes as one JSON object with exactly these top-level
// keys. That shape is the at-rest contract; storage backends may wrap it
// (Mongo adds _id and a revision counter) but must round-trip the fields
// unchanged.
type ContentDocument struct {
	Personal     Personal      `bson:"personal"     json:"personal"`
	About        About         `bson:"about"        json:"about"`
	Stats        []Stat        `bson:"stats"        json:"stats"`
	Skills       []SkillGroup  `bson:"skills"       json:"skills"`
	Projects     []Project     `bson:"projects"     json:"projects"`
	Testimonials []Testimonial `bson:"testimonials" json:"testimonials"`
}

// Personal holds the identity block shown in the hero and contact sections.
// All fields are optional strings; the storage layer does not validate them.
type Personal struct {
	Name         string            `bson:"name"         json:"name"`
	Title        string            `bson:"title"        json:"title"`
	Email        string            `bson:"email"        json:"email"`
	Phone        string            `bson:"phone"        json:"phone"`
	Location     string            `bson:"location"     json:"location"`
	Social       map[string]string `bson:"social"       json:"social"`
	ResumeURL    string            `bson:"resumeUrl"    json:"resumeUrl"`
	ProfileImage string            `bson:"profileImage" json:"profileImage"`
	Description  string            `bson:"description"  json:"description"`
}

// About holds the long-form introduction. Description paragraphs and
// highlights are ordered sequences; array position is display order.
type About struct {
	Title       string      `bson:"title"       json:"title"`
	Subtitle    string      `bson:"subtitle"    json:"subtitle"`
	Description []string    `bson:"description" json:"description"`
	Highlights  []Highlight `bson:"highlights"  json:"highlights"`
}

// Highlight is a short title/description pair rendered in the about section.
type Highlight struct {
	Title       string `bson:"title"       json:"title"`
	Description string `bson:"description" json:"description"`
}

// Stat is a single value/label pair ("50+", "Projects Completed").
type Stat struct {
	Value string `bson:"value" json:"value"`
	Label string `bson:"label" json:"label"`
}

// SkillGroup is a named category of technologies with an icon and accent
// color identifier chosen in the admin panel.
type SkillGroup struct {
	Category     string       `bson:"category"     json:"category"`
	Icon         string       `bson:"icon"         json:"icon"`
	Color        string       `bson:"color"        json:"color"`
	Technologies []Technology `bson:"technologies" json:"technologies"`
}

// Technology is a single skill entry. Level is a 0-100 proficiency.
type Technology struct {
	Name        string `bson:"name"        json:"name"`
	Level       int    `bson:"level"       json:"level"`
	Description string `bson:"description" json:"description"`
}

// Project type values. Stored as free strings; these are the values the
// admin panel offers.
const (
	ProjectTypeFullStack = "Full Stack"
	ProjectTypeFrontend  = "Frontend"
	ProjectTypeBackend   = "Backend"
	ProjectTypeMobile    = "Mobile"
	ProjectTypeAPI       = "API"
	ProjectTypeOther     = "Other"
)

// Project status values.
const (
	ProjectStatusCompleted  = "Completed"
	ProjectStatusInProgress = "In Progress"
	ProjectStatusPlanned    = "Planned"
)

// Project is one portfolio entry.
//
// Identity: ID is assigned once at creation (time-derived, see the order
// package) and never reassigned; duplicating a project always mints a new ID.
// Ordering: array position in ContentDocument.Projects is display order —
// there is no separate order field, reordering mutates position directly.
type Project struct {
	ID           int64        `bson:"id"           json:"id"`
	Title        string       `bson:"title"        json:"title"`
	Description  string       `bson:"description"  json:"description"`
	Image        string       `bson:"image"        json:"image"`
	Technologies []string     `bson:"technologies" json:"technologies"`
	Features     []string     `bson:"features"     json:"features"`
	GitHub       string       `bson:"github"       json:"github"`
	Live         string       `bson:"live"         json:"live"`
	Type         string       `bson:"type"         json:"type"`
	Stats        ProjectStats `bson:"stats"        json:"stats"`
	Status       string       `bson:"status"       json:"status"`

	// Visible is a tri-state at rest: absent means visible. Normalize fills
	// nil with true so downstream code only ever sees an explicit value.
	Visible *bool `bson:"visible,omitempty" json:"visible,omitempty"`
}

// ProjectStats are seed values shown until live repository data supersedes
// them at render time. They are not authoritative.
type ProjectStats struct {
	Stars int `bson:"stars" json:"stars"`
	Forks int `bson:"forks" json:"forks"`
	Views int `bson:"views" json:"views"`
}

// IsVisible reports whether the project appears on the public site.
// Only an explicit false hides a project.
func (p *Project) IsVisible() bool {
	return p.Visible == nil || *p.Visible
}

// Testimonial is a client quote. Testimonials have no independent ID; they
// are identified by array position only.
//
// Rating is 1-5 by convention. The storage layer accepts any integer; the
// bound is enforced only by the admin UI's select control.
type Testimonial struct {
	Name    string `bson:"name"    json:"name"`
	Role    string `bson:"role"    json:"role"`
	Content string `bson:"content" json:"content"`
	Rating  int    `bson:"rating"  json:"rating"`
	Image   string `bson:"image"   json:"image"`
	Company string `bson:"company" json:"company"`
}

// ImageKind tags the two interpretations of an image field.
type ImageKind int

const (
	// ImageURL is a path or URL to an actual image file.
	ImageURL ImageKind = iota
	// ImageStyleToken is a symbolic CSS gradient class rendered as a
	// placeholder background instead of an <img>.
	ImageStyleToken
)

// ImageRef is the tagged form of an image field. The persisted form is a
// bare string; ParseImageRef is the one place the URL-vs-token ambiguity is
// resolved.
type ImageRef struct {
	Kind  ImageKind
	Value string
}

// ParseImageRef classifies an image field value. Gradient style tokens are
// Tailwind utility strings and always start with "bg-"; everything else is
// treated as a URL or path.
func ParseImageRef(s string) ImageRef {
	if strings.HasPrefix(s, "bg-") {
		return ImageRef{Kind: ImageStyleToken, Value: s}
	}
	return ImageRef{Kind: ImageURL, Value: s}
}

// IsStyleToken reports whether an image field holds a gradient class rather
// than a URL.
func IsStyleToken(s string) bool {
	return ParseImageRef(s).Kind == ImageStyleToken
}

// Normalize fills defaults so downstream logic never re-checks for missing
// values: nil slices become empty, nil Visible becomes explicit true.
// Called once at load time by the content stores.
func (d *ContentDocument) Normalize() {
	if d.Stats == nil {
		d.Stats = []Stat{}
	}
	if d.Skills == nil {
		d.Skills = []SkillGroup{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.Testimonials == nil {
		d.Testimonials = []Testimonial{}
	}
	if d.About.Description == nil {
		d.About.Description = []string{}
	}
	if d.About.Highlights == nil {
		d.About.Highlights = []Highlight{}
	}
	if d.Personal.Social == nil {
		d.Personal.Social = map[string]string{}
	}
	for i := range d.Projects {
		if d.Projects[i].Visible == nil {
			visible := true
			d.Projects[i].Visible = &visible
		}
		if d.Projects[i].Technologies == nil {
			d.Projects[i].Technologies = []string{}
		}
		if d.Projects[i].Features == nil {
			d.Projects[i].Features = []string{}
		}
	}
	for i := range d.Skills {
		if d.Skills[i].Technologies == nil {
			d.Skills[i].Technologies = []Technology{}
		}
	}
}

// Clone returns a deep copy of the document. The admin edit session works on
// clones so that every edit produces a new value and a failed commit never
// corrupts the last-loaded state.
func (d *ContentDocument) Clone() *ContentDocument {
	out := *d

	out.Personal.Social = make(map[string]string, len(d.Personal.Social))
	for k, v := range d.Personal.Social {
		out.Personal.Social[k] = v
	}

	out.About.Description = append([]string(nil), d.About.Description...)
	out.About.Highlights = append([]Highlight(nil), d.About.Highlights...)
	out.Stats = append([]Stat(nil), d.Stats...)

	out.Skills = make([]SkillGroup, len(d.Skills))
	for i, g := range d.Skills {
		out.Skills[i] = g
		out.Skills[i].Technologies = append([]Technology(nil), g.Technologies...)
	}

	out.Projects = make([]Project, len(d.Projects))
	for i, p := range d.Projects {
		out.Projects[i] = p
		out.Projects[i].Technologies = append([]string(nil), p.Technologies...)
		out.Projects[i].Features = append([]string(nil), p.Features...)
		if p.Visible != nil {
			visible := *p.Visible
			out.Projects[i].Visible = &visible
		}
	}

	out.Testimonials = append([]Testimonial(nil), d.Testimonials...)
	return &out
}

// DefaultContentDocument returns the document seeded on first startup when
// the backing store is empty. It renders as an obviously-unconfigured site
// rather than failing the admin session on load.
func DefaultContentDocument() *ContentDocument {
	doc := &ContentDocument{
		Personal: Personal{
			Name:   "Your Name",
			Title:  "Full Stack Developer",
			Social: map[string]string{"github": "", "linkedin": ""},
		},
		About: About{
			Title:       "About Me",
			Subtitle:    "Get to know me",
			Description: []string{"Edit this text in the admin panel."},
		},
	}
	doc.Normalize()
	return doc
}

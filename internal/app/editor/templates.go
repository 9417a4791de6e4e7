// internal/app/editor/templates.go
package editor

import (
	"github.com/dipu67/folio/internal/app/order"
	"github.com/dipu67/folio/internal/domain/models"
)

// Project template names offered by the admin panel.
const (
	TemplateFullStack = "fullstack"
	TemplateFrontend  = "frontend"
	TemplateMobile    = "mobile"
	TemplateAPI       = "api"
)

type projectSeed struct {
	title        string
	description  string
	image        string
	technologies []string
	features     []string
	projectType  string
}

var projectSeeds = map[string]projectSeed{
	TemplateFullStack: {
		title:        "Full Stack Web Application",
		description:  "A comprehensive web application with both frontend and backend functionality, featuring modern UI/UX design and robust server-side architecture.",
		image:        "bg-gradient-to-br from-blue-500 via-blue-600 to-purple-600",
		technologies: []string{"React", "Node.js", "Express", "MongoDB", "Tailwind CSS"},
		features: []string{
			"User Authentication & Authorization",
			"CRUD Operations",
			"Responsive Design",
			"API Integration",
			"Data Validation",
			"Security Features",
		},
		projectType: models.ProjectTypeFullStack,
	},
	TemplateFrontend: {
		title:        "Frontend React Application",
		description:  "Modern, responsive frontend application built with React and contemporary UI libraries for optimal user experience.",
		image:        "bg-gradient-to-br from-green-500 via-green-600 to-teal-600",
		technologies: []string{"React", "TypeScript", "Tailwind CSS", "Framer Motion"},
		features: []string{
			"Modern UI/UX Design",
			"Responsive Layout",
			"Interactive Animations",
			"Component-based Architecture",
			"State Management",
			"Performance Optimization",
		},
		projectType: models.ProjectTypeFrontend,
	},
	TemplateMobile: {
		title:        "Mobile Application",
		description:  "Cross-platform mobile application with native performance and modern mobile UI patterns.",
		image:        "bg-gradient-to-br from-purple-500 via-purple-600 to-pink-600",
		technologies: []string{"React Native", "TypeScript", "Expo", "Native Base"},
		features: []string{
			"Cross-platform Compatibility",
			"Native Performance",
			"Mobile-first Design",
			"Offline Capabilities",
			"Push Notifications",
			"Device Integration",
		},
		projectType: models.ProjectTypeMobile,
	},
	TemplateAPI: {
		title:        "REST API Service",
		description:  "Robust and scalable REST API service with comprehensive documentation and security features.",
		image:        "bg-gradient-to-br from-orange-500 via-orange-600 to-red-600",
		technologies: []string{"Node.js", "Express", "MongoDB", "JWT", "Swagger"},
		features: []string{
			"RESTful Architecture",
			"Authentication & Authorization",
			"Data Validation",
			"API Documentation",
			"Error Handling",
			"Rate Limiting",
		},
		projectType: models.ProjectTypeBackend,
	},
}

// NewProjectFromTemplate builds a project from the named template with a
// fresh id. Unknown or empty names fall back to the fullstack template.
// New projects always start In Progress with placeholder links and zeroed
// seed stats.
func NewProjectFromTemplate(name string) models.Project {
	seed, ok := projectSeeds[name]
	if !ok {
		seed = projectSeeds[TemplateFullStack]
	}

	visible := true
	return models.Project{
		ID:           order.NewID(),
		Title:        seed.title,
		Description:  seed.description,
		Image:        seed.image,
		Technologies: append([]string(nil), seed.technologies...),
		Features:     append([]string(nil), seed.features...),
		GitHub:       "https://github.com/yourusername/project",
		Live:         "https://project-demo.vercel.app",
		Type:         seed.projectType,
		Stats:        models.ProjectStats{},
		Status:       models.ProjectStatusInProgress,
		Visible:      &visible,
	}
}

// DefaultTestimonial is the placeholder entry appended by AddTestimonial.
func DefaultTestimonial() models.Testimonial {
	return models.Testimonial{
		Name:    "Client Name",
		Role:    "Position at Company",
		Content: "Add your testimonial content here. Describe the experience working together and the results achieved.",
		Rating:  5,
		Image:   "bg-gradient-to-br from-blue-500 to-purple-500",
		Company: "Company Name",
	}
}

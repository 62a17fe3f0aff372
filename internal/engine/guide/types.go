// Package guide drafts project guides and attaches ranked learning resources to them.
package guide

import "errors"

// ErrInvalidSubject is returned when the project subject is blank.
var ErrInvalidSubject = errors.New("subject is required")

// Request describes the project being planned.
type Request struct {
	Subject     string            `json:"subject"`
	Field       string            `json:"field,omitempty"`
	ProjectType string            `json:"project_type,omitempty"`
	Complexity  string            `json:"complexity,omitempty"`
	Answers     map[string]string `json:"answers,omitempty"` // refinement answers keyed by question
}

// Component is one part or tool the project needs.
type Component struct {
	Name    string `json:"name"`
	Purpose string `json:"purpose"`
	Specs   string `json:"specs"`
}

// ProjectGuide is a drafted guide with its ranked resources.
type ProjectGuide struct {
	Title               string      `json:"title"`
	ShortDescription    string      `json:"short_description"`
	DetailedDescription string      `json:"detailed_description"`
	Components          []Component `json:"components"`
	Frameworks          []string    `json:"frameworks"`
	DifficultyLevel     string      `json:"difficulty_level"`
	EstimatedTime       string      `json:"estimated_time"`
	Videos              []string    `json:"videos"`
	Repositories        []string    `json:"repositories"`
	Generated           bool        `json:"generated"` // false when the text came from fallbacks
}

// Idea is one trending project suggestion.
type Idea struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Difficulty      string   `json:"difficulty"`
	Category        string   `json:"category"`
	KeyTechnologies []string `json:"key_technologies"`
	WhyTrending     string   `json:"why_trending"`
}

// Package models defines the domain types for docstamp.
package models

import "time"

// Categories a document can be filed under (Diataxis).
const (
	CategoryTutorial    = "tutorial"
	CategoryHowto       = "howto"
	CategoryReference   = "reference"
	CategoryExplanation = "explanation"
)

// Difficulty levels. An empty string means the field is absent.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Record is the metadata stamped into a document's front matter.
type Record struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Difficulty  string   `json:"difficulty,omitempty"`
}

// DocMetadata is a lightweight representation returned by list operations.
type DocMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

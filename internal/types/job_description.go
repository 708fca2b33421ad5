// Package types provides type definitions for structured data used throughout the proposal-customizer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"
)

// DefaultPlatform is recorded when a job description does not name its source.
const DefaultPlatform = "Upwork"

// bulletSeparators are tried in order; the first one present in the text wins.
var bulletSeparators = []string{"- ", "• ", "; "}

// JobDescription is the client-supplied description of the work. It is immutable after construction.
type JobDescription struct {
	rawText  string
	title    string
	platform string
}

// jobInput carries the validator tags for NewJobDescription.
type jobInput struct {
	RawText string `validate:"required"`
}

// NewJobDescription validates raw text and builds a JobDescription.
// Empty or whitespace-only text is rejected.
func NewJobDescription(rawText, title, platform string) (*JobDescription, error) {
	if err := validateStruct(jobInput{RawText: strings.TrimSpace(rawText)}); err != nil {
		return nil, &ValidationError{Field: "raw_text", Message: "job description text is required", Cause: err}
	}
	if platform == "" {
		platform = DefaultPlatform
	}
	return &JobDescription{
		rawText:  rawText,
		title:    strings.TrimSpace(title),
		platform: platform,
	}, nil
}

// RawText returns the text exactly as supplied.
func (j *JobDescription) RawText() string { return j.rawText }

// Title returns the optional job title.
func (j *JobDescription) Title() string { return j.title }

// Platform returns the source platform.
func (j *JobDescription) Platform() string { return j.platform }

// CleanedText returns the raw text with every whitespace run collapsed to one space and trimmed.
func (j *JobDescription) CleanedText() string {
	return strings.Join(strings.Fields(j.rawText), " ")
}

// Bullets splits the cleaned text into at most max items using the first separator present.
// Text without a separator is returned as a single bullet.
func (j *JobDescription) Bullets(max int) []string {
	text := j.CleanedText()

	var bullets []string
	for _, sep := range bulletSeparators {
		if !strings.Contains(text, strings.TrimSpace(sep)) {
			continue
		}
		for _, part := range strings.Split(text, sep) {
			part = strings.Trim(part, "-• \t\r\n")
			if part != "" {
				bullets = append(bullets, part)
			}
		}
		break
	}
	if len(bullets) == 0 {
		bullets = []string{text}
	}

	if max > 0 && len(bullets) > max {
		bullets = bullets[:max]
	}
	return bullets
}

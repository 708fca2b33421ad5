package types

import (
	"fmt"
	"strings"
)

// UserProfile describes the freelancer signing the proposal
type UserProfile struct {
	Name            string `json:"name,omitempty"`
	Role            string `json:"role,omitempty"`
	YearsExperience *int   `json:"years_experience,omitempty" validate:"omitempty,gte=0"`
	Qualifications  string `json:"qualifications,omitempty"`
}

// Validate validates the UserProfile using the validator.
func (p *UserProfile) Validate() error {
	return validateStruct(p)
}

// Summary returns a one-line description built from the non-empty profile fields.
func (p *UserProfile) Summary() string {
	if p == nil {
		return ""
	}
	var parts []string
	if p.Role != "" {
		parts = append(parts, p.Role)
	}
	if p.YearsExperience != nil {
		parts = append(parts, fmt.Sprintf("%d+ years experience", *p.YearsExperience))
	}
	if p.Qualifications != "" {
		parts = append(parts, p.Qualifications)
	}
	return strings.Join(parts, ", ")
}

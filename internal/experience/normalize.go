package experience

import (
	"strings"

	"github.com/jonathan/proposal-customizer/internal/types"
)

// NormalizeExperienceBank trims project fields, drops blank projects, and normalizes skills.
// It fails only when projects were supplied and none of them carries any text.
func NormalizeExperienceBank(bank *types.ExperienceBank) error {
	supplied := len(bank.Projects)
	NormalizeProjects(bank)
	if supplied > 0 && len(bank.Projects) == 0 {
		return &NormalizationError{Message: "every project in the bank is empty"}
	}

	NormalizeSkills(bank)
	return nil
}

// NormalizeProjects trims whitespace in every field and removes records with no text at all.
func NormalizeProjects(bank *types.ExperienceBank) {
	kept := bank.Projects[:0]
	for _, rec := range bank.Projects {
		rec.Title = strings.TrimSpace(rec.Title)
		rec.Description = strings.TrimSpace(rec.Description)
		rec.Tech = strings.TrimSpace(rec.Tech)
		rec.Impact = strings.TrimSpace(rec.Impact)
		if rec.Title == "" && rec.Description == "" && rec.Tech == "" && rec.Impact == "" {
			continue
		}
		kept = append(kept, rec)
	}
	bank.Projects = kept
}

// NormalizeSkills lowercases and trims declared skills, then deduplicates them in first-seen order.
func NormalizeSkills(bank *types.ExperienceBank) {
	raw := bank.Skills
	bank.Skills = nil

	normalized := make([]string, 0, len(raw))
	for _, skill := range raw {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(skill)))
	}
	bank.AddSkills(normalized)
}

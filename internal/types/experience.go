package types

// ExperienceRecord is a single prior-work entry. No field is required and records need not be unique.
type ExperienceRecord struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tech        string `json:"tech"`
	Impact      string `json:"impact"`
}

// ExperienceBank holds the candidate's portfolio projects and self-declared skills
type ExperienceBank struct {
	Projects []ExperienceRecord `json:"projects"`
	Skills   []string           `json:"skills,omitempty"`
}

// AddProject appends a project record.
func (b *ExperienceBank) AddProject(title, description, tech, impact string) {
	b.Projects = append(b.Projects, ExperienceRecord{
		Title:       title,
		Description: description,
		Tech:        tech,
		Impact:      impact,
	})
}

// AddSkills appends skills not already present, preserving first-seen order.
func (b *ExperienceBank) AddSkills(skills []string) {
	seen := make(map[string]bool, len(b.Skills))
	for _, s := range b.Skills {
		seen[s] = true
	}
	for _, s := range skills {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		b.Skills = append(b.Skills, s)
	}
}

package types

// Temperature bounds accepted by the generation backends.
const (
	MinTemperature = 0.0
	MaxTemperature = 1.2
)

// MaxRequestExperience bounds the experience list carried by a GenerationRequest.
const MaxRequestExperience = 10

// SkillSet is an alphabetically ordered list of unique lowercase skill terms.
type SkillSet []string

// GenerationRequest aggregates everything a backend needs to write a proposal body
type GenerationRequest struct {
	JobText        string             `json:"job_text" validate:"required"`
	Skills         SkillSet           `json:"skills"`
	Experience     []ExperienceRecord `json:"experience" validate:"max=10"`
	Style          string             `json:"style"`
	IncludePricing bool               `json:"include_pricing"`
	Temperature    float64            `json:"temperature" validate:"gte=0,lte=1.2"`
	MaxTokens      int                `json:"max_tokens" validate:"gt=0"`
	Model          string             `json:"model,omitempty"`
	ProfileSummary string             `json:"profile_summary,omitempty"`
}

// Validate validates the GenerationRequest using the validator.
func (r *GenerationRequest) Validate() error {
	return validateStruct(r)
}

// StyleTemplate is the greeting/closing pair wrapped around a proposal body
type StyleTemplate struct {
	Greeting string `json:"greeting"`
	Closing  string `json:"closing"`
}

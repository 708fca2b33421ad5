package generation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/proposal-customizer/internal/ranking"
	"github.com/jonathan/proposal-customizer/internal/skills"
	"github.com/jonathan/proposal-customizer/internal/styles"
	"github.com/jonathan/proposal-customizer/internal/types"
)

// Defaults applied by DefaultOptions.
const (
	DefaultTemperature = 0.5
	DefaultMaxTokens   = 1200
)

// Options are the per-call generation settings. Style is a call parameter, never shared state.
type Options struct {
	Style          string
	IncludePricing bool
	Temperature    float64
	MaxTokens      int // zero means DefaultMaxTokens
	Model          string
	Profile        *types.UserProfile
}

// DefaultOptions returns friendly style, pricing included, temperature 0.5, 1200 tokens.
func DefaultOptions() Options {
	return Options{
		Style:          styles.Friendly,
		IncludePricing: true,
		Temperature:    DefaultTemperature,
		MaxTokens:      DefaultMaxTokens,
	}
}

// Result is a generated proposal with the intermediate artifacts that produced it.
type Result struct {
	ID         string                   `json:"id"`
	Style      string                   `json:"style"`
	Skills     types.SkillSet           `json:"skills"`
	Experience []types.ExperienceRecord `json:"experience"`
	Backend    string                   `json:"backend"`
	Text       string                   `json:"text"`
}

// Orchestrator runs normalize, extract, rank, generate, and wrap as one stateless call.
// All fields are read-only after construction, so one Orchestrator may serve concurrent callers.
type Orchestrator struct {
	extractor *skills.Extractor
	projects  []types.ExperienceRecord
	backend   Backend
	registry  *styles.Registry
	fallback  Backend
	logger    *slog.Logger
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithRegistry overrides the built-in style registry.
func WithRegistry(r *styles.Registry) OrchestratorOption {
	return func(o *Orchestrator) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithExtractor overrides the default skill extractor.
func WithExtractor(e *skills.Extractor) OrchestratorOption {
	return func(o *Orchestrator) {
		if e != nil {
			o.extractor = e
		}
	}
}

// WithOrchestratorLogger sets the logger.
func WithOrchestratorLogger(logger *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewOrchestrator builds an Orchestrator over bank's projects. A nil backend uses the
// template backend. The project list is copied.
func NewOrchestrator(bank *types.ExperienceBank, backend Backend, opts ...OrchestratorOption) *Orchestrator {
	fallback := NewTemplateBackend()
	if backend == nil {
		backend = fallback
	}

	var projects []types.ExperienceRecord
	if bank != nil {
		projects = append(projects, bank.Projects...)
	}

	o := &Orchestrator{
		extractor: skills.NewExtractor(),
		projects:  projects,
		backend:   backend,
		registry:  styles.Default(),
		fallback:  fallback,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Registry returns the style registry in use.
func (o *Orchestrator) Registry() *styles.Registry {
	return o.registry
}

// Generate returns the assembled proposal: greeting, body, closing, and optional signer name.
// Only invalid input produces an error; generation itself cannot fail.
func (o *Orchestrator) Generate(ctx context.Context, job *types.JobDescription, opts Options) (string, error) {
	res, err := o.GenerateDetailed(ctx, job, opts)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// GenerateDetailed is Generate plus the extracted skills, ranked experience, and backend name.
func (o *Orchestrator) GenerateDetailed(ctx context.Context, job *types.JobDescription, opts Options) (*Result, error) {
	if job == nil {
		return nil, &types.ValidationError{Field: "job", Message: "job description is required"}
	}
	if opts.Profile != nil {
		if err := opts.Profile.Validate(); err != nil {
			return nil, fmt.Errorf("invalid profile: %w", err)
		}
	}

	style := opts.Style
	if style == "" {
		style = o.registry.DefaultName()
	}
	tmpl := o.registry.Template(style)

	cleaned := job.CleanedText()
	skillSet := o.extractor.Extract(cleaned, skills.DefaultTopK)
	relevant := ranking.RankExperience(o.projects, skillSet, ranking.DefaultTopK)

	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}

	req := types.GenerationRequest{
		JobText:        cleaned,
		Skills:         skillSet,
		Experience:     relevant,
		Style:          style,
		IncludePricing: opts.IncludePricing,
		Temperature:    opts.Temperature,
		MaxTokens:      maxTokens,
		Model:          opts.Model,
		ProfileSummary: opts.Profile.Summary(),
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generation request: %w", err)
	}

	backend := o.backend
	body := backend.Generate(ctx, req)
	if strings.TrimSpace(body) == "" {
		o.logger.Error("backend returned empty body", slog.String("backend", backend.Name()))
		backend = o.fallback
		body = backend.Generate(ctx, req)
	}

	o.logger.Debug("proposal generated",
		slog.String("style", style),
		slog.Int("skills", len(skillSet)),
		slog.Int("experience", len(relevant)),
		slog.String("backend", backend.Name()))

	return &Result{
		ID:         uuid.NewString(),
		Style:      style,
		Skills:     skillSet,
		Experience: relevant,
		Backend:    backend.Name(),
		Text:       assemble(tmpl, body, signerName(opts.Profile)),
	}, nil
}

func assemble(tmpl types.StyleTemplate, body, name string) string {
	var sb strings.Builder
	sb.WriteString(tmpl.Greeting)
	sb.WriteString("\n")
	sb.WriteString(body)
	sb.WriteString("\n")
	sb.WriteString(tmpl.Closing)
	if name != "" {
		sb.WriteString(" ")
		sb.WriteString(name)
	}
	sb.WriteString("\n")
	return sb.String()
}

func signerName(p *types.UserProfile) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(p.Name)
}

package generation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonathan/proposal-customizer/internal/llm"
	"github.com/jonathan/proposal-customizer/internal/prompts"
	"github.com/jonathan/proposal-customizer/internal/types"
)

const promptFile = "proposal.json"

// GeminiBackend asks a generative model for the proposal body and falls back to a
// deterministic backend on any failure or empty response.
type GeminiBackend struct {
	client   llm.Client
	fallback Backend
	timeout  time.Duration
	tier     llm.ModelTier
	logger   *slog.Logger
}

// GeminiOption configures a GeminiBackend.
type GeminiOption func(*GeminiBackend)

// WithTimeout bounds each model call. Non-positive values keep the default.
func WithTimeout(d time.Duration) GeminiOption {
	return func(b *GeminiBackend) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// WithTier selects the model tier used when the request has no model override.
func WithTier(tier llm.ModelTier) GeminiOption {
	return func(b *GeminiBackend) {
		if tier != "" {
			b.tier = tier
		}
	}
}

// WithLogger sets the logger used to report fallbacks.
func WithLogger(logger *slog.Logger) GeminiOption {
	return func(b *GeminiBackend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewGeminiBackend wraps client. A nil client yields an unavailable backend;
// a nil fallback is replaced by the template backend.
func NewGeminiBackend(client llm.Client, fallback Backend, opts ...GeminiOption) *GeminiBackend {
	if fallback == nil {
		fallback = NewTemplateBackend()
	}
	b := &GeminiBackend{
		client:   client,
		fallback: fallback,
		timeout:  llm.DefaultTimeout,
		tier:     llm.TierStandard,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Available reports whether a model client is configured.
func (b *GeminiBackend) Available() bool {
	return b.client != nil
}

// Name identifies the backend in logs and API responses.
func (b *GeminiBackend) Name() string { return "gemini" }

// Generate calls the model under a bounded timeout. Errors and blank responses are
// logged and answered by the fallback backend instead.
func (b *GeminiBackend) Generate(ctx context.Context, req types.GenerationRequest) string {
	if !b.Available() {
		return b.fallback.Generate(ctx, req)
	}

	system, user, err := BuildPrompts(req)
	if err != nil {
		b.logger.Warn("proposal prompt unavailable, using fallback", slog.String("error", err.Error()))
		return b.fallback.Generate(ctx, req)
	}

	callCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	text, err := b.client.Generate(callCtx, llm.Request{
		System:      system,
		Prompt:      user,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Model:       req.Model,
		Tier:        b.tier,
	})
	if err != nil {
		b.logger.Warn("model call failed, using fallback",
			slog.String("model", b.client.GetModel(llm.Request{Model: req.Model, Tier: b.tier})),
			slog.String("error", err.Error()))
		return b.fallback.Generate(ctx, req)
	}

	text = llm.StripCodeFence(text)
	if text == "" {
		b.logger.Warn("model returned empty text, using fallback")
		return b.fallback.Generate(ctx, req)
	}
	return text
}

// BuildPrompts renders the system and user instructions for a request.
func BuildPrompts(req types.GenerationRequest) (system, user string, err error) {
	system, err = prompts.Get(promptFile, "system")
	if err != nil {
		return "", "", err
	}
	userTmpl, err := prompts.Get(promptFile, "user")
	if err != nil {
		return "", "", err
	}

	pricingKey := "pricing_excluded"
	if req.IncludePricing {
		pricingKey = "pricing_included"
	}
	pricing, err := prompts.Get(promptFile, pricingKey)
	if err != nil {
		return "", "", err
	}

	profile := ""
	if req.ProfileSummary != "" {
		profileTmpl, err := prompts.Get(promptFile, "profile")
		if err != nil {
			return "", "", err
		}
		profile = prompts.Format(profileTmpl, map[string]string{"Profile": req.ProfileSummary})
	}

	user = prompts.Format(userTmpl, map[string]string{
		"Style":          req.Style,
		"PricingSection": pricing,
		"ProfileSection": profile,
		"JobText":        req.JobText,
		"Skills":         strings.Join(req.Skills, ", "),
		"Experience":     experienceHighlights(req.Experience),
	})
	return system, user, nil
}

func experienceHighlights(records []types.ExperienceRecord) string {
	var sb strings.Builder
	for i, rec := range records {
		if i == maxHighlights {
			break
		}
		sb.WriteString(fmt.Sprintf("- %s: %s (Tech: %s) - %s\n",
			orDefault(rec.Title, "Project"), rec.Description, rec.Tech, rec.Impact))
	}
	return sb.String()
}

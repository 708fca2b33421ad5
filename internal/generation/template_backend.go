package generation

import (
	"context"
	"strings"

	"github.com/jonathan/proposal-customizer/internal/types"
)

// maxHighlights bounds the experience bullets in a proposal body.
const maxHighlights = 3

// TemplateBackend synthesizes a fixed-structure proposal body without any external call.
// Output depends only on the request, so identical requests yield identical text.
type TemplateBackend struct{}

// NewTemplateBackend returns the deterministic backend.
func NewTemplateBackend() *TemplateBackend {
	return &TemplateBackend{}
}

// Name identifies the backend in logs and API responses.
func (b *TemplateBackend) Name() string { return "template" }

// Generate builds the proposal body from the request's skills and experience.
func (b *TemplateBackend) Generate(_ context.Context, req types.GenerationRequest) string {
	skills := "Relevant domain and tooling expertise"
	if len(req.Skills) > 0 {
		skills = strings.Join(req.Skills, ", ")
	}

	lines := []string{
		"Style: " + req.Style,
		"Thank you for sharing your project. Here is how I would approach it professionally:",
		"",
		"Understanding & Goals:",
		"- I will review your current context, success criteria, and constraints to align scope.",
		"- I will confirm edge cases, must-haves, and nice-to-haves before implementation.",
		"",
		"Relevant Expertise:",
		"- Skills: " + skills,
	}
	if req.ProfileSummary != "" {
		lines = append(lines, "- Profile: "+req.ProfileSummary)
	}
	lines = append(lines, "- Experience:")
	for i, rec := range req.Experience {
		if i == maxHighlights {
			break
		}
		lines = append(lines, "  • "+highlight(rec))
	}

	lines = append(lines,
		"",
		"Proposed Approach:",
		"1) Discovery & validation - confirm requirements and success metrics.",
		"2) Implementation - develop features with iterative checkpoints.",
		"3) QA & refinement - resolve issues, polish UX, document usage.",
		"4) Handover - walkthrough, documentation, and support notes.",
		"",
		"Deliverables:",
		"- Functional implementation matching agreed scope",
		"- Documentation (setup, usage, and maintenance)",
		"- Optional Loom walkthrough if desired",
	)

	if req.IncludePricing {
		lines = append(lines,
			"",
			MilestoneHeading,
			"- Milestone 1: Discovery/Setup - 1-2 days",
			"- Milestone 2: Build - 2-4 days",
			"- Milestone 3: QA/Handover - 1-2 days",
			"Fixed or hourly available; happy to adjust to your preferences.",
		)
	}

	lines = append(lines,
		"",
		"Why Me:",
		"I deliver clear communication, reliable execution, and measurable outcomes aligned to your goals.",
		"I focus on pragmatic solutions and maintainability.",
		"",
		"Next Steps:",
		"If this aligns with your needs, I can start with a short kickoff to finalize scope.",
	)

	return strings.Join(lines, "\n")
}

// MilestoneHeading opens the indicative schedule section.
const MilestoneHeading = "Timeline & Pricing (indicative):"

func highlight(rec types.ExperienceRecord) string {
	title := orDefault(rec.Title, "Project")
	impact := orDefault(rec.Impact, "Delivered measurable impact")
	tech := orDefault(rec.Tech, "Tech")
	return title + ": " + impact + " (" + tech + ")"
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

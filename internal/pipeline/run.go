// Package pipeline provides the high-level orchestration for the proposal generation process.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/proposal-customizer/internal/experience"
	"github.com/jonathan/proposal-customizer/internal/generation"
	"github.com/jonathan/proposal-customizer/internal/ingestion"
	"github.com/jonathan/proposal-customizer/internal/llm"
	"github.com/jonathan/proposal-customizer/internal/pipeline/steps"
	"github.com/jonathan/proposal-customizer/internal/ranking"
	"github.com/jonathan/proposal-customizer/internal/skills"
	"github.com/jonathan/proposal-customizer/internal/types"
)

// ErrNoJobSource is returned when no job text, file, or URL is given.
var ErrNoJobSource = errors.New("one of job text, job path, or job URL is required")

// ErrConflictingJobSources is returned when more than one job source is given.
var ErrConflictingJobSources = errors.New("job text, job path, and job URL are mutually exclusive")

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	// Exactly one job source must be set. Title and platform apply to JobText.
	JobText     string
	JobTitle    string
	JobPlatform string
	JobPath     string
	JobURL      string

	// ExperienceData takes precedence over ExperiencePath.
	ExperiencePath string
	ExperienceData *types.ExperienceBank

	Keywords   []string
	Generation generation.Options

	APIKey    string
	LLMConfig *llm.Config
	Timeout   time.Duration // per model call, zero uses the backend default

	// Backend overrides backend selection from APIKey.
	Backend generation.Backend

	UseBrowser bool
	OutputPath string

	RunID      string
	Logger     *slog.Logger
	OnProgress ProgressCallback
}

// Result holds everything the pipeline produced.
type Result struct {
	Proposal *generation.Result     `json:"proposal"`
	Job      *types.JobDescription  `json:"-"`
	Metadata *ingestion.Metadata    `json:"metadata,omitempty"`
	Ranked   []ranking.ScoredRecord `json:"ranked"`
	Bank     *types.ExperienceBank  `json:"-"`
}

type runner struct {
	opts    RunOptions
	logger  *slog.Logger
	tracker *steps.Tracker
}

// emitProgress calls the progress callback if configured
func (r *runner) emitProgress(step, message string, content any) {
	r.logger.Debug(message, slog.String("step", step))
	if r.opts.OnProgress != nil {
		r.opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: steps.Category(step),
			Message:  message,
			RunID:    r.opts.RunID,
			Content:  content,
		})
	}
}

// step runs fn as a tracked pipeline step.
func (r *runner) step(name string, fn func() error) error {
	if err := r.tracker.Start(name); err != nil {
		return err
	}
	if err := fn(); err != nil {
		r.tracker.Fail(name)
		return err
	}
	r.tracker.Complete(name)
	return nil
}

// Inputs are the loaded job posting and experience bank.
type Inputs struct {
	Job      *types.JobDescription
	Metadata *ingestion.Metadata
	Bank     *types.ExperienceBank
}

// Load ingests the job posting and loads the experience bank concurrently.
func Load(ctx context.Context, opts RunOptions) (*Inputs, error) {
	if err := checkJobSource(opts); err != nil {
		return nil, err
	}
	return newRunner(opts).load(ctx)
}

// Run orchestrates the full proposal generation pipeline: ingest the job and load
// experience concurrently, extract skills, rank experience, generate, and write output.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	if err := checkJobSource(opts); err != nil {
		return nil, err
	}

	r := newRunner(opts)
	logger := r.logger

	in, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	job, bank := in.Job, in.Bank

	extractor := skills.NewExtractor(skills.WithKeywords(opts.Keywords))

	var skillSet types.SkillSet
	err = r.step(steps.StepExtractSkills, func() error {
		skillSet = extractor.Extract(job.CleanedText(), skills.DefaultTopK)
		r.emitProgress(steps.StepExtractSkills,
			fmt.Sprintf("Extracted %d skills", len(skillSet)), skillSet)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var ranked []ranking.ScoredRecord
	err = r.step(steps.StepRankExperience, func() error {
		ranked = ranking.ScoreExperience(bank.Projects, skillSet)
		r.emitProgress(steps.StepRankExperience,
			fmt.Sprintf("Ranked %d projects", len(ranked)), ranked)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var proposal *generation.Result
	err = r.step(steps.StepGenerateProposal, func() error {
		backend, closeBackend := opts.Backend, func() {}
		if backend == nil {
			backend, closeBackend = BuildBackend(ctx, opts.APIKey, opts.LLMConfig, opts.Timeout, logger)
		}
		defer closeBackend()

		orch := generation.NewOrchestrator(bank, backend,
			generation.WithExtractor(extractor),
			generation.WithOrchestratorLogger(logger))

		var err error
		proposal, err = orch.GenerateDetailed(ctx, job, opts.Generation)
		if err != nil {
			return err
		}
		r.emitProgress(steps.StepGenerateProposal,
			fmt.Sprintf("Generated %s proposal with %s backend", proposal.Style, proposal.Backend), proposal)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if opts.OutputPath == "" {
		r.tracker.Skip(steps.StepWriteOutput)
	} else {
		err = r.step(steps.StepWriteOutput, func() error {
			if err := writeOutput(opts.OutputPath, proposal.Text); err != nil {
				return err
			}
			r.emitProgress(steps.StepWriteOutput,
				fmt.Sprintf("Wrote proposal to %s", opts.OutputPath), nil)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return &Result{
		Proposal: proposal,
		Job:      job,
		Metadata: in.Metadata,
		Ranked:   ranked,
		Bank:     bank,
	}, nil
}

func checkJobSource(opts RunOptions) error {
	n := 0
	for _, s := range []string{opts.JobText, opts.JobPath, opts.JobURL} {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	switch {
	case n == 0:
		return ErrNoJobSource
	case n > 1:
		return ErrConflictingJobSources
	}
	return nil
}

func newRunner(opts RunOptions) *runner {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &runner{opts: opts, logger: logger, tracker: steps.NewTracker()}
}

func (r *runner) load(ctx context.Context) (*Inputs, error) {
	var (
		cleaned  string
		metadata *ingestion.Metadata
		bank     *types.ExperienceBank
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.step(steps.StepIngestJob, func() error {
			var err error
			cleaned, metadata, err = r.ingestJob(gCtx)
			if err != nil {
				return fmt.Errorf("job ingestion failed: %w", err)
			}
			r.emitProgress(steps.StepIngestJob,
				fmt.Sprintf("Ingested job posting (%d characters)", len(cleaned)), metadata)
			return nil
		})
	})
	g.Go(func() error {
		return r.step(steps.StepLoadExperience, func() error {
			var err error
			bank, err = r.loadExperience()
			if err != nil {
				return fmt.Errorf("experience loading failed: %w", err)
			}
			r.emitProgress(steps.StepLoadExperience,
				fmt.Sprintf("Loaded %d projects and %d skills", len(bank.Projects), len(bank.Skills)), nil)
			return nil
		})
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	job, err := metadata.JobDescription(cleaned)
	if err != nil {
		return nil, err
	}
	return &Inputs{Job: job, Metadata: metadata, Bank: bank}, nil
}

func (r *runner) ingestJob(ctx context.Context) (string, *ingestion.Metadata, error) {
	opts := r.opts
	switch {
	case opts.JobURL != "":
		return ingestion.IngestFromURL(ctx, opts.JobURL, ingestion.URLOptions{
			UseBrowser: opts.UseBrowser,
			Logger:     r.logger,
		})
	case opts.JobPath != "":
		return ingestion.IngestFromFile(opts.JobPath)
	default:
		cleaned := ingestion.CleanText(opts.JobText)
		if cleaned == "" {
			return "", nil, &types.ValidationError{Field: "job_text", Message: "job description text is empty"}
		}
		meta := ingestion.NewMetadata(cleaned, "")
		meta.Platform = opts.JobPlatform
		meta.Title = opts.JobTitle
		if meta.Title == "" {
			meta.Title = ingestion.DetectTitle(cleaned)
		}
		return cleaned, meta, nil
	}
}

func (r *runner) loadExperience() (*types.ExperienceBank, error) {
	switch {
	case r.opts.ExperienceData != nil:
		bank := &types.ExperienceBank{
			Projects: append([]types.ExperienceRecord(nil), r.opts.ExperienceData.Projects...),
			Skills:   append([]string(nil), r.opts.ExperienceData.Skills...),
		}
		if err := experience.NormalizeExperienceBank(bank); err != nil {
			return nil, err
		}
		return bank, nil
	case r.opts.ExperiencePath != "":
		return experience.LoadExperienceBank(r.opts.ExperiencePath)
	default:
		r.logger.Warn("no experience bank provided, proposals will use generic highlights")
		return &types.ExperienceBank{}, nil
	}
}

// BuildBackend selects the Gemini backend when apiKey is usable, otherwise the template
// backend. The returned func releases the model client.
func BuildBackend(ctx context.Context, apiKey string, cfg *llm.Config, timeout time.Duration, logger *slog.Logger) (generation.Backend, func()) {
	if logger == nil {
		logger = slog.Default()
	}
	if apiKey == "" {
		logger.Debug("no API key configured, using template backend")
		return generation.NewTemplateBackend(), func() {}
	}

	client, err := llm.NewClient(ctx, cfg, apiKey)
	if err != nil {
		logger.Warn("model client unavailable, using template backend", slog.Any("error", err))
		return generation.NewTemplateBackend(), func() {}
	}

	gopts := []generation.GeminiOption{generation.WithLogger(logger)}
	if timeout > 0 {
		gopts = append(gopts, generation.WithTimeout(timeout))
	}
	backend := generation.SelectBackend(client, gopts...)
	return backend, func() {
		if err := client.Close(); err != nil {
			logger.Warn("failed to close model client", slog.Any("error", err))
		}
	}
}

func writeOutput(path, text string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write proposal: %w", err)
	}
	return nil
}

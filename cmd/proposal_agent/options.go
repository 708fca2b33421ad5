package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/proposal-customizer/internal/config"
	"github.com/jonathan/proposal-customizer/internal/generation"
	"github.com/jonathan/proposal-customizer/internal/llm"
	"github.com/jonathan/proposal-customizer/internal/pipeline"
	"github.com/jonathan/proposal-customizer/internal/types"
)

// sampleJobText is used by --sample.
const sampleJobText = "We need a Streamlit developer to build an AI-powered text tool. " +
	"The app should summarize and rewrite customer emails using an LLM API (OpenAI or Gemini), " +
	"store history in SQLite, and be deployed with Docker. Python experience is a must."

// generationFlags holds the flags shared by generate and compare.
type generationFlags struct {
	job            string
	jobURL         string
	text           string
	sample         bool
	experience     string
	keywords       []string
	pricing        bool
	temperature    float64
	maxTokens      int
	model          string
	apiKey         string
	timeout        string
	name           string
	role           string
	years          int
	qualifications string
	useBrowser     bool
}

func bindGenerationFlags(cmd *cobra.Command, f *generationFlags) {
	flags := cmd.Flags()
	flags.StringVarP(&f.job, "job", "j", "", "Path to job posting text file")
	flags.StringVar(&f.jobURL, "job-url", "", "URL to fetch job posting from")
	flags.StringVar(&f.text, "text", "", "Job description text")
	flags.BoolVar(&f.sample, "sample", false, "Use a built-in sample job description")
	flags.StringVarP(&f.experience, "experience", "e", "", "Path to experience bank JSON file")
	flags.StringSliceVarP(&f.keywords, "keywords", "k", nil, "Skill vocabulary replacing the built-in list (comma separated)")
	flags.BoolVar(&f.pricing, "pricing", true, "Include an indicative timeline and pricing section")
	flags.Float64Var(&f.temperature, "temperature", generation.DefaultTemperature, "Creativity, 0.0 to 1.2 (lower is more professional)")
	flags.IntVar(&f.maxTokens, "max-tokens", generation.DefaultMaxTokens, "Maximum output tokens for the model")
	flags.StringVar(&f.model, "model", "", "Gemini model override")
	flags.StringVar(&f.apiKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY or GOOGLE_API_KEY)")
	flags.StringVar(&f.timeout, "timeout", "", "Model call timeout, e.g. 45s")
	flags.StringVarP(&f.name, "name", "n", "", "Your name, appended to the sign-off")
	flags.StringVar(&f.role, "role", "", "Your role, e.g. \"Python developer\"")
	flags.IntVar(&f.years, "years", 0, "Years of experience")
	flags.StringVar(&f.qualifications, "qualifications", "", "Short list of qualifications")
	flags.BoolVar(&f.useBrowser, "use-browser", false, "Use headless browser for SPA job pages (requires Chrome)")
}

// resolveConfig loads --config, applies explicitly set flags over it, and fills defaults.
func resolveConfig(cmd *cobra.Command, f *generationFlags) (config.Config, error) {
	var cfg config.Config
	if rootConfigPath != "" {
		loaded, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	changed := cmd.Flags().Changed
	if changed("job") {
		cfg.Job = f.job
	}
	if changed("job-url") {
		cfg.JobURL = f.jobURL
	}
	if changed("experience") {
		cfg.Experience = f.experience
	}
	if changed("keywords") {
		cfg.Keywords = f.keywords
	}
	if changed("pricing") {
		cfg.IncludePricing = &f.pricing
	}
	if changed("temperature") {
		cfg.Temperature = &f.temperature
	}
	if changed("max-tokens") {
		cfg.MaxTokens = f.maxTokens
	}
	if changed("model") {
		cfg.Model = f.model
	}
	if changed("api-key") {
		cfg.APIKey = f.apiKey
	}
	if changed("timeout") {
		cfg.Timeout = f.timeout
	}
	if changed("name") {
		cfg.Name = f.name
	}
	if changed("role") {
		cfg.Role = f.role
	}
	if changed("years") {
		cfg.YearsExperience = &f.years
	}
	if changed("qualifications") {
		cfg.Qualifications = f.qualifications
	}
	if changed("use-browser") {
		cfg.UseBrowser = f.useBrowser
	}
	if rootVerbose {
		cfg.Verbose = true
	}

	pricing := true
	temperature := generation.DefaultTemperature
	cfg = cfg.MergeWithDefaults(config.Config{
		IncludePricing: &pricing,
		Temperature:    &temperature,
		MaxTokens:      generation.DefaultMaxTokens,
	})

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	cfg.APIKey = config.ResolveAPIKey(cfg.APIKey)
	return cfg, nil
}

// jobSource counts the job inputs; exactly one is required.
func jobSource(cfg config.Config, f *generationFlags) error {
	n := 0
	for _, set := range []bool{cfg.Job != "", cfg.JobURL != "", strings.TrimSpace(f.text) != "", f.sample} {
		if set {
			n++
		}
	}
	switch {
	case n == 0:
		return fmt.Errorf("one of --job, --job-url, --text, or --sample must be provided (via flag or config)")
	case n > 1:
		return fmt.Errorf("--job, --job-url, --text, and --sample are mutually exclusive; provide only one")
	}
	return nil
}

// profile returns the freelancer profile from cfg, or nil when no field is set.
func profile(cfg config.Config) *types.UserProfile {
	if cfg.Name == "" && cfg.Role == "" && cfg.YearsExperience == nil && cfg.Qualifications == "" {
		return nil
	}
	return &types.UserProfile{
		Name:            cfg.Name,
		Role:            cfg.Role,
		YearsExperience: cfg.YearsExperience,
		Qualifications:  cfg.Qualifications,
	}
}

// generationOptions maps cfg onto generation options for style.
func generationOptions(cfg config.Config, style string) generation.Options {
	return generation.Options{
		Style:          style,
		IncludePricing: *cfg.IncludePricing,
		Temperature:    *cfg.Temperature,
		MaxTokens:      cfg.MaxTokens,
		Model:          cfg.Model,
		Profile:        profile(cfg),
	}
}

// runOptions builds pipeline options from cfg. The job text comes from --text or --sample.
func runOptions(cfg config.Config, f *generationFlags, style string) (pipeline.RunOptions, error) {
	timeout, err := cfg.ModelTimeout()
	if err != nil {
		return pipeline.RunOptions{}, err
	}

	jobText := f.text
	if f.sample {
		jobText = sampleJobText
	}

	return pipeline.RunOptions{
		JobText:        jobText,
		JobPath:        cfg.Job,
		JobURL:         cfg.JobURL,
		ExperiencePath: cfg.Experience,
		Keywords:       cfg.Keywords,
		Generation:     generationOptions(cfg, style),
		APIKey:         cfg.APIKey,
		LLMConfig:      llmConfig(timeout),
		Timeout:        timeout,
		UseBrowser:     cfg.UseBrowser,
		OutputPath:     cfg.Output,
	}, nil
}

func llmConfig(timeout time.Duration) *llm.Config {
	c := llm.DefaultConfig()
	if timeout > 0 {
		c.Timeout = timeout
	}
	return c
}

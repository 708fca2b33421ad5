// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// API key environment variables, checked in order.
var apiKeyEnvVars = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}

// Config is the configuration that can be loaded from a JSON file.
// All fields are optional; CLI flags override anything set here.
type Config struct {
	// Inputs
	Job        string `json:"job,omitempty"`        // Path to job posting text file
	JobURL     string `json:"job_url,omitempty"`    // URL to fetch job posting from
	Experience string `json:"experience,omitempty"` // Path to experience bank JSON
	Output     string `json:"output,omitempty"`     // Path the proposal is written to

	// Generation
	Keywords       []string `json:"keywords,omitempty"`        // Replaces the default skill vocabulary
	Style          string   `json:"style,omitempty"`           // friendly, formal, concise
	IncludePricing *bool    `json:"include_pricing,omitempty"` // nil keeps the CLI default
	Temperature    *float64 `json:"temperature,omitempty"`     // 0.0-1.2
	MaxTokens      int      `json:"max_tokens,omitempty"`
	Model          string   `json:"model,omitempty"`   // Gemini model override
	APIKey         string   `json:"api_key,omitempty"` // Gemini API key
	Timeout        string   `json:"timeout,omitempty"` // Model call timeout, e.g. "45s"

	// Freelancer profile
	Name            string `json:"name,omitempty"`
	Role            string `json:"role,omitempty"`
	YearsExperience *int   `json:"years_experience,omitempty"`
	Qualifications  string `json:"qualifications,omitempty"`

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // Use headless browser for SPA job pages
	Verbose    bool `json:"verbose,omitempty"`     // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks value ranges and file references. Required inputs are checked by
// the commands after flags are merged.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	if c.Temperature != nil && (*c.Temperature < 0 || *c.Temperature > 1.2) {
		return fmt.Errorf("config error: 'temperature' must be between 0.0 and 1.2")
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("config error: 'max_tokens' must be non-negative")
	}
	if c.YearsExperience != nil && *c.YearsExperience < 0 {
		return fmt.Errorf("config error: 'years_experience' must be non-negative")
	}
	if _, err := c.ModelTimeout(); err != nil {
		return err
	}

	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}
	if c.Experience != "" {
		if _, err := os.Stat(c.Experience); os.IsNotExist(err) {
			return fmt.Errorf("config error: experience file not found: %s", c.Experience)
		}
	}

	return nil
}

// ModelTimeout parses Timeout. An empty value returns zero, meaning the client default.
func (c *Config) ModelTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("config error: 'timeout' must be a positive duration, got %q", c.Timeout)
	}
	return d, nil
}

// MergeWithDefaults returns a copy of c with empty fields filled from defaults.
// Bools cannot be told apart from false and are not merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	mergeString(&result.Job, defaults.Job)
	mergeString(&result.JobURL, defaults.JobURL)
	mergeString(&result.Experience, defaults.Experience)
	mergeString(&result.Output, defaults.Output)
	mergeString(&result.Style, defaults.Style)
	mergeString(&result.Model, defaults.Model)
	mergeString(&result.APIKey, defaults.APIKey)
	mergeString(&result.Timeout, defaults.Timeout)
	mergeString(&result.Name, defaults.Name)
	mergeString(&result.Role, defaults.Role)
	mergeString(&result.Qualifications, defaults.Qualifications)

	if len(result.Keywords) == 0 {
		result.Keywords = defaults.Keywords
	}
	if result.MaxTokens == 0 {
		result.MaxTokens = defaults.MaxTokens
	}
	if result.Temperature == nil {
		result.Temperature = defaults.Temperature
	}
	if result.IncludePricing == nil {
		result.IncludePricing = defaults.IncludePricing
	}
	if result.YearsExperience == nil {
		result.YearsExperience = defaults.YearsExperience
	}

	return result
}

func mergeString(dst *string, fallback string) {
	if *dst == "" {
		*dst = fallback
	}
}

// ResolveAPIKey returns key when set, otherwise the first non-empty API key environment variable.
func ResolveAPIKey(key string) string {
	if key = strings.TrimSpace(key); key != "" {
		return key
	}
	for _, name := range apiKeyEnvVars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

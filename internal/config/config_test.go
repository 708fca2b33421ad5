package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int             { return &v }
func boolPtr(v bool) *bool          { return &v }

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"job_url": "https://www.upwork.com/jobs/~01",
		"experience": "bank.json",
		"keywords": ["go", "grpc"],
		"style": "formal",
		"include_pricing": false,
		"temperature": 0.7,
		"max_tokens": 900,
		"name": "Sam Rivera",
		"years_experience": 6,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://www.upwork.com/jobs/~01", cfg.JobURL)
	assert.Equal(t, "bank.json", cfg.Experience)
	assert.Equal(t, []string{"go", "grpc"}, cfg.Keywords)
	assert.Equal(t, "formal", cfg.Style)
	require.NotNil(t, cfg.IncludePricing)
	assert.False(t, *cfg.IncludePricing)
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.7, *cfg.Temperature, 1e-9)
	assert.Equal(t, 900, cfg.MaxTokens)
	assert.Equal(t, "Sam Rivera", cfg.Name)
	assert.Equal(t, 6, *cfg.YearsExperience)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_Errors(t *testing.T) {
	badJSON := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(badJSON, []byte(`{ invalid json }`), 0644))

	tests := []struct {
		name    string
		path    string
		wantMsg string
	}{
		{"invalid JSON", badJSON, "failed to parse config JSON"},
		{"file not found", "/nonexistent/path/config.json", "failed to read config file"},
		{"empty path", "", "config path is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(tt.path)
			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidate(t *testing.T) {
	jobFile := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(jobFile, []byte("job"), 0644))

	tests := []struct {
		name    string
		cfg     Config
		wantMsg string
	}{
		{"valid", Config{Job: jobFile, Temperature: floatPtr(1.2), MaxTokens: 10, Timeout: "30s"}, ""},
		{"empty", Config{}, ""},
		{"mutually exclusive", Config{Job: jobFile, JobURL: "https://example.com/job"}, "mutually exclusive"},
		{"temperature too high", Config{Temperature: floatPtr(1.3)}, "temperature"},
		{"temperature negative", Config{Temperature: floatPtr(-0.1)}, "temperature"},
		{"negative tokens", Config{MaxTokens: -1}, "max_tokens"},
		{"negative years", Config{YearsExperience: intPtr(-1)}, "years_experience"},
		{"bad timeout", Config{Timeout: "soon"}, "timeout"},
		{"missing job file", Config{Job: "/nonexistent/job.txt"}, "job file not found"},
		{"missing experience file", Config{Experience: "/nonexistent/bank.json"}, "experience file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestModelTimeout(t *testing.T) {
	d, err := (&Config{}).ModelTimeout()
	require.NoError(t, err)
	assert.Zero(t, d)

	d, err = (&Config{Timeout: "45s"}).ModelTimeout()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, d)

	_, err = (&Config{Timeout: "-5s"}).ModelTimeout()
	assert.Error(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		Job:   "cli_job.txt",
		Style: "concise",
	}
	defaults := Config{
		Job:             "config_job.txt",
		Experience:      "bank.json",
		Style:           "formal",
		Keywords:        []string{"go"},
		Temperature:     floatPtr(0.3),
		IncludePricing:  boolPtr(false),
		MaxTokens:       800,
		Name:            "Sam",
		YearsExperience: intPtr(4),
	}

	result := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "cli_job.txt", result.Job, "set values win")
	assert.Equal(t, "concise", result.Style)
	assert.Equal(t, "bank.json", result.Experience)
	assert.Equal(t, []string{"go"}, result.Keywords)
	assert.InDelta(t, 0.3, *result.Temperature, 1e-9)
	assert.False(t, *result.IncludePricing)
	assert.Equal(t, 800, result.MaxTokens)
	assert.Equal(t, "Sam", result.Name)
	assert.Equal(t, 4, *result.YearsExperience)

	assert.Empty(t, cfg.Experience, "receiver is not modified")
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := &Config{Job: "job.txt", Temperature: floatPtr(0.9)}
	result := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "job.txt", result.Job)
	assert.InDelta(t, 0.9, *result.Temperature, 1e-9)
	assert.Nil(t, result.IncludePricing)
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	assert.Equal(t, "", ResolveAPIKey(""))

	t.Setenv("GOOGLE_API_KEY", "google-key")
	assert.Equal(t, "google-key", ResolveAPIKey(""))

	t.Setenv("GEMINI_API_KEY", "gemini-key")
	assert.Equal(t, "gemini-key", ResolveAPIKey("  "))
	assert.Equal(t, "flag-key", ResolveAPIKey("flag-key"))
}

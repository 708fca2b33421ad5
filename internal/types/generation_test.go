package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() GenerationRequest {
	return GenerationRequest{
		JobText:     "Need a Go developer",
		Skills:      SkillSet{"go"},
		Style:       "friendly",
		Temperature: 0.5,
		MaxTokens:   1200,
	}
}

func TestGenerationRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *GenerationRequest)
		wantField string
	}{
		{"valid", func(_ *GenerationRequest) {}, ""},
		{"zero temperature", func(r *GenerationRequest) { r.Temperature = 0 }, ""},
		{"max temperature", func(r *GenerationRequest) { r.Temperature = MaxTemperature }, ""},
		{"temperature too high", func(r *GenerationRequest) { r.Temperature = 1.5 }, "temperature"},
		{"negative temperature", func(r *GenerationRequest) { r.Temperature = -0.1 }, "temperature"},
		{"zero max tokens", func(r *GenerationRequest) { r.MaxTokens = 0 }, "maxtokens"},
		{"missing job text", func(r *GenerationRequest) { r.JobText = "" }, "jobtext"},
		{"too much experience", func(r *GenerationRequest) {
			r.Experience = make([]ExperienceRecord, MaxRequestExperience+1)
		}, "experience"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

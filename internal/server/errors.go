package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/proposal-customizer/internal/experience"
	"github.com/jonathan/proposal-customizer/internal/ingestion"
	"github.com/jonathan/proposal-customizer/internal/pipeline"
	"github.com/jonathan/proposal-customizer/internal/types"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		reqErr   *ErrValidation
		typeErr  *types.ValidationError
		loadErr  *experience.LoadError
		normErr  *experience.NormalizationError
		tooLarge *http.MaxBytesError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &reqErr), errors.As(err, &typeErr),
		errors.As(err, &loadErr), errors.As(err, &normErr),
		errors.Is(err, pipeline.ErrNoJobSource), errors.Is(err, pipeline.ErrConflictingJobSources):
		return http.StatusBadRequest
	case errors.Is(err, ingestion.ErrHTTPRequestFailed), errors.Is(err, ingestion.ErrContentExtractionFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

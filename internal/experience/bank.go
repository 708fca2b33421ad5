// Package experience loads and normalizes experience bank files.
package experience

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/proposal-customizer/internal/schemas"
	"github.com/jonathan/proposal-customizer/internal/types"
)

// LoadExperienceBank loads an experience bank from a JSON file. When the bank schema can be
// resolved the file is validated against it before decoding. The result is normalized.
func LoadExperienceBank(path string) (*types.ExperienceBank, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}

	if schemaPath := schemas.ResolveSchemaPath(schemas.ExperienceBankSchema); schemaPath != "" {
		if err := schemas.ValidateBytes(schemaPath, content); err != nil {
			return nil, &LoadError{
				Message: "schema validation failed",
				Cause:   err,
			}
		}
	}

	return ParseExperienceBank(content)
}

// ParseExperienceBank decodes and normalizes an experience bank without schema validation.
func ParseExperienceBank(content []byte) (*types.ExperienceBank, error) {
	var bank types.ExperienceBank
	if err := json.Unmarshal(content, &bank); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal JSON",
			Cause:   err,
		}
	}

	if err := NormalizeExperienceBank(&bank); err != nil {
		return nil, err
	}
	return &bank, nil
}

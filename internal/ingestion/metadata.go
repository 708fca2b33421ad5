package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/proposal-customizer/internal/types"
)

// Metadata describes where an ingested job posting came from
type Metadata struct {
	URL            string   `json:"url,omitempty"`
	Timestamp      string   `json:"timestamp"`          // RFC3339
	Hash           string   `json:"hash"`               // SHA256 hex digest of the cleaned text
	Platform       string   `json:"platform,omitempty"` // display name, e.g. "Upwork"
	Title          string   `json:"title,omitempty"`
	ExtractedLinks []string `json:"extracted_links,omitempty"`
}

// NewMetadata creates Metadata stamped with the current time
func NewMetadata(content string, url string) *Metadata {
	return &Metadata{
		URL:       url,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// merge fills empty source fields from a previously written metadata file.
func (m *Metadata) merge(other *Metadata) {
	if m.URL == "" {
		m.URL = other.URL
	}
	if m.Platform == "" {
		m.Platform = other.Platform
	}
	if other.Title != "" {
		m.Title = other.Title
	}
	if len(m.ExtractedLinks) == 0 {
		m.ExtractedLinks = other.ExtractedLinks
	}
}

// ToJSON marshals Metadata to indented JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}

// JobDescription builds the job description the generator consumes from cleaned text.
// An unknown platform falls back to the default platform.
func (m *Metadata) JobDescription(cleanedText string) (*types.JobDescription, error) {
	var title, platform string
	if m != nil {
		title, platform = m.Title, m.Platform
	}
	return types.NewJobDescription(cleanedText, title, platform)
}

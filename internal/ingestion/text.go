// Package ingestion turns job postings from files or URLs into cleaned text plus metadata.
package ingestion

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	inlineSpace = regexp.MustCompile(`\s+`)
	blankRun    = regexp.MustCompile(`\n\n\n+`)
)

// titleLabel prefixes an explicit title line in pasted postings.
const titleLabel = "title:"

// maxTitleLength bounds how long a first line may be to count as a title.
const maxTitleLength = 120

// CleanText normalizes line endings and inline whitespace while keeping headings,
// bullet lists, and paragraph breaks. At most one blank line separates blocks.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := blankRun.ReplaceAllString(strings.Join(cleaned, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	indent := len(line) - len(trimmed)
	if isBulletLine(trimmed) {
		return strings.Repeat(" ", indent) + trimmed
	}

	content := inlineSpace.ReplaceAllString(strings.TrimSpace(line), " ")
	return strings.Repeat(" ", indent) + content
}

func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") || strings.HasPrefix(trimmed, "· ")
}

// DetectTitle returns an explicit "Title:" line, or a short first line that is not a bullet.
// Returns an empty string when neither exists.
func DetectTitle(cleaned string) string {
	lines := strings.Split(cleaned, "\n")
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToLower(trimmed), titleLabel) {
			return strings.TrimSpace(trimmed[len(titleLabel):])
		}
	}

	first := strings.TrimSpace(lines[0])
	first = strings.TrimSpace(strings.TrimLeft(first, "#"))
	if first == "" || isBulletLine(first) || len(first) > maxTitleLength || strings.HasSuffix(first, ".") {
		return ""
	}
	return first
}

// IngestFromFile reads a job posting from a text file and cleans it. If a sidecar
// "<name>.meta.json" written by WriteOutput exists, its URL, platform, title, and links
// are carried over.
func IngestFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	cleanedText := CleanText(string(content))
	metadata := NewMetadata(cleanedText, "")
	metadata.Title = DetectTitle(cleanedText)

	if sidecar, err := readSidecar(path); err == nil {
		metadata.merge(sidecar)
	}

	return cleanedText, metadata, nil
}

func readSidecar(path string) (*Metadata, error) {
	metaPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".meta.json"
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid metadata file %s: %w", metaPath, err)
	}
	return &m, nil
}

// WriteOutput writes job_posting.cleaned.txt and job_posting.cleaned.meta.json to outDir.
func WriteOutput(outDir string, cleanedText string, metadata *Metadata) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	cleanedPath := filepath.Join(outDir, "job_posting.cleaned.txt")
	if err := os.WriteFile(cleanedPath, []byte(cleanedText), 0644); err != nil {
		return fmt.Errorf("failed to write cleaned text file: %w", err)
	}

	metaJSON, err := metadata.ToJSON()
	if err != nil {
		return err
	}
	metaPath := filepath.Join(outDir, "job_posting.cleaned.meta.json")
	if err := os.WriteFile(metaPath, metaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}

	return nil
}

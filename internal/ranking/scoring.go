package ranking

import (
	"strings"

	"github.com/jonathan/proposal-customizer/internal/types"
)

// ScoredRecord is an experience record with its keyword match score.
type ScoredRecord struct {
	Record   types.ExperienceRecord `json:"record"`
	Score    int                    `json:"score"`
	Matched  []string               `json:"matched_keywords,omitempty"`
	Position int                    `json:"position"` // index in the input list
}

// searchableText is the lowercase title, description, and tech of a record.
// Impact is deliberately excluded from matching.
func searchableText(r types.ExperienceRecord) string {
	return strings.ToLower(r.Title + " " + r.Description + " " + r.Tech)
}

// scoreRecord counts keywords occurring as substrings of the record text.
// Containment, not whole-word matching: "api" matches inside "rapid".
func scoreRecord(r types.ExperienceRecord, keywords []string) (int, []string) {
	text := searchableText(r)
	var matched []string
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			matched = append(matched, kw)
		}
	}
	return len(matched), matched
}

// normalizeKeywords lowercases, trims, and deduplicates keywords, preserving first-seen order.
func normalizeKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out
}

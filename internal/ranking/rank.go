// Package ranking orders experience records by relevance to a set of keywords.
package ranking

import (
	"sort"

	"github.com/jonathan/proposal-customizer/internal/types"
)

// DefaultTopK is the number of experience highlights carried into a proposal.
const DefaultTopK = 3

// RankExperience returns up to topK records ordered by descending keyword score.
// Ties keep their original relative order. With no records or no keywords the first
// topK records are returned unchanged. The input slice is not modified.
func RankExperience(records []types.ExperienceRecord, keywords []string, topK int) []types.ExperienceRecord {
	scored := ScoreExperience(records, keywords)

	out := make([]types.ExperienceRecord, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.Record)
	}
	return head(out, topK)
}

// ScoreExperience scores every record and returns them in ranked order, untruncated.
// With no usable keywords every score is zero and the input order is kept.
func ScoreExperience(records []types.ExperienceRecord, keywords []string) []ScoredRecord {
	kws := normalizeKeywords(keywords)

	scored := make([]ScoredRecord, len(records))
	for i, r := range records {
		scored[i] = ScoredRecord{Record: r, Position: i}
		if len(kws) > 0 {
			scored[i].Score, scored[i].Matched = scoreRecord(r, kws)
		}
	}

	if len(kws) == 0 {
		return scored
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

func head[T any](items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}

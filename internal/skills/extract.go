// Package skills detects technology and domain terms in job descriptions.
package skills

import (
	"sort"
	"strings"

	"github.com/jonathan/proposal-customizer/internal/parsing"
	"github.com/jonathan/proposal-customizer/internal/types"
)

// DefaultTopK bounds the skill set extracted for a proposal.
const DefaultTopK = 20

// Extractor matches normalized tokens and phrases against a vocabulary.
// It is a presence detector: a term seen once or many times is recorded identically.
type Extractor struct {
	normalizer *parsing.Normalizer
	keywords   map[string]struct{}
	phrases    []string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithKeywords replaces the default vocabulary wholesale. The lists are never merged.
// An empty list keeps the default vocabulary.
func WithKeywords(keywords []string) Option {
	return func(e *Extractor) {
		if len(keywords) == 0 {
			return
		}
		e.keywords = toSet(keywords)
	}
}

// WithPhrases replaces the multi-word phrase list.
func WithPhrases(phrases []string) Option {
	return func(e *Extractor) {
		e.phrases = make([]string, 0, len(phrases))
		for _, p := range phrases {
			p = strings.Join(strings.Fields(strings.ToLower(p)), " ")
			if p != "" {
				e.phrases = append(e.phrases, p)
			}
		}
	}
}

// WithNormalizer overrides the tokenizer, e.g. one built without stopwords.
func WithNormalizer(n *parsing.Normalizer) Option {
	return func(e *Extractor) {
		if n != nil {
			e.normalizer = n
		}
	}
}

// NewExtractor creates an Extractor using the default vocabulary unless overridden.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		normalizer: parsing.NewNormalizer(parsing.EmbeddedStopwords{}, nil),
		keywords:   toSet(DefaultKeywords),
		phrases:    DefaultPhrases,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the alphabetically sorted union of vocabulary tokens and phrases found
// in text, truncated to topK. A topK of zero or less means no limit.
func (e *Extractor) Extract(text string, topK int) types.SkillSet {
	tokens := e.normalizer.Normalize(text)

	found := make(map[string]struct{})
	for _, tok := range tokens {
		if _, ok := e.keywords[tok]; ok {
			found[tok] = struct{}{}
		}
	}

	// substring presence over the joined stream, so "machine learning" also matches "machine learning-based"
	joined := strings.Join(tokens, " ")
	for _, phrase := range e.phrases {
		if strings.Contains(joined, phrase) {
			found[phrase] = struct{}{}
		}
	}

	result := make(types.SkillSet, 0, len(found))
	for term := range found {
		result = append(result, term)
	}
	sort.Strings(result)

	if topK > 0 && len(result) > topK {
		result = result[:topK]
	}
	return result
}

// Vocabulary returns the active single-word vocabulary, sorted.
func (e *Extractor) Vocabulary() []string {
	out := make([]string, 0, len(e.keywords))
	for k := range e.keywords {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}

// Package parsing turns free job text into normalized tokens for skill extraction.
package parsing

import (
	"log/slog"
	"strings"
	"unicode"
)

// Normalizer lowercases, strips, tokenizes, and filters text.
// It is immutable after construction and safe for concurrent use.
type Normalizer struct {
	stopwords map[string]struct{}
}

// NewNormalizer builds a Normalizer from a stopword source.
// A nil source or a failing source degrades to no stopword filtering.
func NewNormalizer(source StopwordSource, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}

	stopwords := map[string]struct{}{}
	if source == nil {
		logger.Debug("no stopword source configured; stopword filtering disabled")
		return &Normalizer{stopwords: stopwords}
	}

	loaded, err := source.Stopwords()
	if err != nil {
		logger.Debug("stopwords unavailable; stopword filtering disabled", slog.String("error", err.Error()))
		return &Normalizer{stopwords: stopwords}
	}
	return &Normalizer{stopwords: loaded}
}

// defaultNormalizer uses the embedded English stopwords.
var defaultNormalizer = NewNormalizer(EmbeddedStopwords{}, nil)

// Normalize tokenizes text with the default English stopword list.
func Normalize(text string) []string {
	return defaultNormalizer.Normalize(text)
}

// Normalize lowercases text, replaces characters other than letters, digits, whitespace,
// '-', '+', '.', and '#' with spaces, splits on whitespace, trims leading and trailing
// periods, and drops stopwords and tokens of length one or less. Symbols are kept so tokens like "c++", "node.js",
// and "c#" survive.
func (n *Normalizer) Normalize(text string) []string {
	cleaned := strings.Map(keepRune, strings.ToLower(text))

	fields := strings.Fields(cleaned)
	tokens := make([]string, 0, len(fields))
	for _, tok := range fields {
		// sentence periods are not part of the token; "node.js" keeps its inner dot
		tok = strings.Trim(tok, ".")
		if len([]rune(tok)) <= 1 {
			continue
		}
		if _, stop := n.stopwords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// StopwordCount reports how many stopwords are active. Zero means filtering is disabled.
func (n *Normalizer) StopwordCount() int {
	return len(n.stopwords)
}

func keepRune(r rune) rune {
	switch {
	case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsSpace(r):
		return r
	case r == '-', r == '+', r == '.', r == '#':
		return r
	default:
		return ' '
	}
}

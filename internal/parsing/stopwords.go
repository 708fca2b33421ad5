package parsing

import (
	"bufio"
	_ "embed"
	"fmt"
	"strings"
)

//go:embed stopwords_en.txt
var englishStopwords string

// StopwordSource supplies the stopword set used during normalization.
// Implementations may be backed by optional resources that are missing at runtime.
type StopwordSource interface {
	Stopwords() (map[string]struct{}, error)
}

// EmbeddedStopwords loads the English list compiled into the binary.
type EmbeddedStopwords struct{}

// Stopwords parses the embedded list, one word per line.
func (EmbeddedStopwords) Stopwords() (map[string]struct{}, error) {
	return ParseStopwords(englishStopwords)
}

// StaticStopwords is a fixed in-memory stopword list.
type StaticStopwords []string

// Stopwords returns the list as a set.
func (s StaticStopwords) Stopwords() (map[string]struct{}, error) {
	set := make(map[string]struct{}, len(s))
	for _, w := range s {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set, nil
}

// ParseStopwords reads one lowercase word per line, ignoring blanks and # comments.
func ParseStopwords(content string) (map[string]struct{}, error) {
	set := make(map[string]struct{})
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set[strings.ToLower(line)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stopwords: %w", err)
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("stopword list is empty")
	}
	return set, nil
}

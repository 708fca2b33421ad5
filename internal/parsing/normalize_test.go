package parsing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSource struct{}

func (failingSource) Stopwords() (map[string]struct{}, error) {
	return nil, errors.New("corpus not downloaded")
}

func TestNormalize_DefaultStopwords(t *testing.T) {
	tokens := Normalize("We need a Python developer. Must know Django and REST API design.")

	assert.Equal(t, []string{"need", "python", "developer", "must", "know", "django", "rest", "api", "design"}, tokens)
}

func TestNormalize_PreservesSymbolTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"c plus plus", "Strong C++ skills", []string{"strong", "c++", "skills"}},
		{"node dot js", "Node.js backend", []string{"node.js", "backend"}},
		{"c sharp", "C#/.NET (required)", []string{"c#", "net", "required"}},
		{"hyphenated", "Full-stack engineer!", []string{"full-stack", "engineer"}},
		{"punctuation stripped", "React, Vue; Angular?", []string{"react", "vue", "angular"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_DropsShortTokens(t *testing.T) {
	tokens := NewNormalizer(nil, nil).Normalize("a b c go r x")
	assert.Equal(t, []string{"go"}, tokens)
}

func TestNormalize_EmptyInput(t *testing.T) {
	assert.Empty(t, Normalize(""))
	assert.Empty(t, Normalize("   \n\t"))
	assert.Empty(t, Normalize("!!! ??? ..."))
}

func TestNewNormalizer_DegradesWithoutStopwords(t *testing.T) {
	tests := []struct {
		name   string
		source StopwordSource
	}{
		{"nil source", nil},
		{"failing source", failingSource{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNormalizer(tt.source, nil)
			require.NotNil(t, n)
			assert.Equal(t, 0, n.StopwordCount())

			// no filtering: "the" and "and" survive
			assert.Equal(t, []string{"the", "python", "and", "django"}, n.Normalize("The Python and Django"))
		})
	}
}

func TestNewNormalizer_StaticStopwords(t *testing.T) {
	n := NewNormalizer(StaticStopwords{"Python"}, nil)
	assert.Equal(t, []string{"django"}, n.Normalize("python django"))
}

func TestParseStopwords(t *testing.T) {
	set, err := ParseStopwords("# comment\nThe\n\nand\n")
	require.NoError(t, err)
	assert.Len(t, set, 2)
	assert.Contains(t, set, "the")

	_, err = ParseStopwords("\n# only comments\n")
	assert.Error(t, err)
}

func TestEmbeddedStopwords_Loads(t *testing.T) {
	set, err := EmbeddedStopwords{}.Stopwords()
	require.NoError(t, err)
	assert.Contains(t, set, "the")
	assert.Contains(t, set, "and")
	assert.NotContains(t, set, "python")
}

package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompilePattern(t *testing.T) {
	tests := []struct {
		name     string
		term     string
		mode     SearchMode
		haystack string
		expected bool
	}{
		{"plain case-insensitive", "SeSs", PlainText, "session_id", true},
		{"plain miss", "auth", PlainText, "session_id", false},
		{"plain keeps regex chars literal", "a.b", PlainText, "axb", false},
		{"regex case-insensitive", "^SESS.*id$", Regex, "session_id", true},
		{"regex miss", "^id", Regex, "session_id", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := compilePattern(tt.term, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p.matches(tt.haystack))
		})
	}
}

func TestCompilePattern_InvalidRegex(t *testing.T) {
	_, err := compilePattern("(", Regex)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid regex pattern")
}

func TestSearchMode_Text(t *testing.T) {
	var m SearchMode
	require.NoError(t, m.UnmarshalText([]byte("Regex")))
	assert.Equal(t, Regex, m)

	text, err := m.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "regex", string(text))

	require.NoError(t, m.UnmarshalText([]byte("")))
	assert.Equal(t, PlainText, m)

	assert.Error(t, m.UnmarshalText([]byte("glob")))
}

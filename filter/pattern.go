package filter

import (
	"fmt"
	"regexp"
	"strings"
)

// SearchMode defines how a search term is matched
type SearchMode int

const (
	PlainText SearchMode = iota
	Regex
)

// String returns the name used in config files and flags.
func (m SearchMode) String() string {
	if m == Regex {
		return "regex"
	}
	return "plain"
}

func (m SearchMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *SearchMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "plain", "text":
		*m = PlainText
	case "regex", "regexp":
		*m = Regex
	default:
		return fmt.Errorf("unknown search mode: %s", text)
	}
	return nil
}

// compiledPattern holds a compiled search term
type compiledPattern struct {
	mode      SearchMode
	plainText string
	regex     *regexp.Regexp
}

// compilePattern prepares a case-insensitive search term
func compilePattern(term string, mode SearchMode) (compiledPattern, error) {
	cp := compiledPattern{
		mode: mode,
	}

	if mode == Regex {
		regex, err := regexp.Compile("(?i)" + term)
		if err != nil {
			return cp, fmt.Errorf("invalid regex pattern: %w", err)
		}
		cp.regex = regex
	} else {
		cp.plainText = strings.ToLower(term)
	}

	return cp, nil
}

// matches checks if haystack matches the compiled pattern
func (p compiledPattern) matches(haystack string) bool {
	if p.mode == Regex {
		return p.regex.MatchString(haystack)
	}

	// plain text: use strings.contains (faster than regex)
	return strings.Contains(strings.ToLower(haystack), p.plainText)
}

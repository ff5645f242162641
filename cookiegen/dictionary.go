package cookiegen

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// DefaultDictionaryPath is the system word list used when none is given.
const DefaultDictionaryPath = "/usr/share/dict/words"

// fallback word list for when /usr/share/dict/words doesn't exist (windows, containers)
var fallbackWords = []string{
	"session", "token", "auth", "user", "pref", "theme", "lang", "locale",
	"cart", "basket", "consent", "tracking", "visitor", "device", "client",
	"csrf", "xsrf", "state", "nonce", "login", "remember", "refresh",
	"analytics", "campaign", "source", "medium", "referrer", "region",
	"currency", "timezone", "layout", "banner", "dismissed", "seen",
	"experiment", "variant", "bucket", "cohort", "flag", "feature",
	"shop", "news", "mail", "cloud", "media", "store", "forum", "wiki",
	"docs", "portal", "games", "music", "video", "photo", "maps", "travel",
	"bank", "health", "learn", "market", "social", "search", "cdn", "api",
}

// Dictionary holds a list of words for random selection
type Dictionary struct {
	words []string
}

// LoadDictionary loads words from a dictionary file
func LoadDictionary(fs afero.Fs, path string) (*Dictionary, error) {
	file, err := fs.Open(path)
	if err != nil {
		// fallback to built-in word list if file doesn't exist
		if os.IsNotExist(err) {
			return &Dictionary{words: fallbackWords}, nil
		}
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())

		// cookie names and host labels read best at 3-12 letters
		if len(word) >= 3 && len(word) <= 12 && isAlpha(word) {
			words = append(words, strings.ToLower(word))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("no valid words found in dictionary")
	}

	return &Dictionary{words: words}, nil
}

// isAlpha checks if a string contains only alphabetic characters
func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// RandomWord returns a random word from the dictionary
func (d *Dictionary) RandomWord(rng *rand.Rand) string {
	if len(d.words) == 0 {
		return "word"
	}
	return d.words[rng.Intn(len(d.words))]
}

// Size returns the number of words in the dictionary
func (d *Dictionary) Size() int {
	return len(d.words)
}

package codec

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pb33f/biscuit/cookie"
)

const positionalFields = 7

// Parse reads cookie records from text in the given format. JSON is strict and
// fails on anything that is not an array or object of records. CSV and Netscape
// are lenient: rows with fewer than seven fields are dropped without error.
func Parse(text string, format Format) ([]cookie.Cookie, error) {
	switch format {
	case JSON:
		return parseJSON(text)
	case CSV:
		return parseCSV(text)
	case Netscape:
		return parseNetscape(text), nil
	default:
		return nil, fmt.Errorf("%w: %q cannot be imported", ErrUnsupportedFormat, format)
	}
}

// parseJSON accepts an array of records, or an object whose values are flattened
// in key order. Array values are spread, any other value is kept as one record.
func parseJSON(text string) ([]cookie.Cookie, error) {
	var document any
	if err := json.Unmarshal([]byte(text), &document); err != nil {
		return nil, fmt.Errorf("%w: JSON parse failed: %v", ErrInvalidFormat, err)
	}

	decoder := newTokenDecoder(strings.NewReader(text))
	token, err := decoder.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: JSON parse failed: %v", ErrInvalidFormat, err)
	}

	cookies := make([]cookie.Cookie, 0)

	switch token {
	case json.Delim('['):
		for decoder.More() {
			var c cookie.Cookie
			if err := decoder.Decode(&c); err != nil {
				return nil, fmt.Errorf("%w: JSON parse failed: %v", ErrInvalidFormat, err)
			}
			cookies = append(cookies, c)
		}

	case json.Delim('{'):
		for decoder.More() {
			if _, err := decoder.Token(); err != nil {
				return nil, fmt.Errorf("%w: JSON parse failed: %v", ErrInvalidFormat, err)
			}

			var raw json.RawMessage
			if err := decoder.Decode(&raw); err != nil {
				return nil, fmt.Errorf("%w: JSON parse failed: %v", ErrInvalidFormat, err)
			}

			if firstByte(raw) == '[' {
				var group []cookie.Cookie
				if err := json.Unmarshal(raw, &group); err != nil {
					return nil, fmt.Errorf("%w: JSON parse failed: %v", ErrInvalidFormat, err)
				}
				cookies = append(cookies, group...)
				continue
			}

			var c cookie.Cookie
			if err := json.Unmarshal(raw, &c); err != nil {
				return nil, fmt.Errorf("%w: JSON parse failed: %v", ErrInvalidFormat, err)
			}
			cookies = append(cookies, c)
		}

	default:
		return nil, fmt.Errorf("%w: JSON must be an array or an object, got %v", ErrInvalidFormat, token)
	}

	return cookies, nil
}

// parseCSV reads rows positionally; the header only has to be present.
func parseCSV(text string) ([]cookie.Cookie, error) {
	lines := nonBlankLines(text)
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: CSV needs a header line and at least one row, got %d line(s)", ErrInvalidFormat, len(lines))
	}

	interner := cookie.NewInterner()
	cookies := make([]cookie.Cookie, 0, len(lines)-1)

	for _, line := range lines[1:] {
		values := strings.Split(line, ",")
		if len(values) < positionalFields {
			continue
		}
		for i, v := range values {
			values[i] = strings.ReplaceAll(strings.TrimSpace(v), `"`, "")
		}
		cookies = append(cookies, recordFromFields(values, interner))
	}

	return cookies, nil
}

// parseNetscape reads tab separated rows, skipping blank lines and lines starting with '#'.
func parseNetscape(text string) []cookie.Cookie {
	interner := cookie.NewInterner()
	cookies := make([]cookie.Cookie, 0)

	for _, line := range nonBlankLines(text) {
		if strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(strings.TrimSuffix(line, "\r"), "\t")
		if len(parts) < positionalFields {
			continue
		}
		cookies = append(cookies, recordFromFields(parts, interner))
	}

	return cookies
}

func nonBlankLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// recordFromFields maps domain, flag, path, secure, expiration, name, value.
// Extra fields are ignored.
func recordFromFields(fields []string, interner *cookie.Interner) cookie.Cookie {
	return cookie.Cookie{
		Domain:         interner.Intern(fields[0]),
		HTTPOnly:       strings.EqualFold(fields[1], "TRUE"),
		Path:           interner.Intern(fields[2]),
		Secure:         strings.EqualFold(fields[3], "TRUE"),
		ExpirationDate: parseExpiration(fields[4]),
		Name:           fields[5],
		Value:          fields[6],
	}
}

// parseExpiration reads the leading integer of s, ignoring anything after it.
// No digits, or a zero value, mean a session cookie.
func parseExpiration(s string) *float64 {
	s = strings.TrimLeft(s, " \t\r\n")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return nil
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || v == 0 {
		return nil
	}
	return &v
}

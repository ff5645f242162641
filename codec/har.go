package codec

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/pb33f/biscuit/cookie"
	"github.com/pb33f/harhar"
)

const (
	keyLog     = "log"
	keyEntries = "entries"
)

// ReadHAR extracts the cookies sent and received in every entry of a HAR document.
// Entries are decoded one at a time so large archives are never held as a whole.
// Cookies without a domain take the host of the request URL; expiry times that
// are missing or unreadable make session cookies.
func ReadHAR(r io.Reader) ([]cookie.Cookie, error) {
	decoder := newTokenDecoder(r)
	reader := &harCookieReader{
		interner: cookie.NewInterner(),
		cookies:  make([]cookie.Cookie, 0),
	}

	token, err := decoder.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read HAR: %v", ErrInvalidFormat, err)
	}
	if token != json.Delim('{') {
		return nil, fmt.Errorf("%w: HAR must be a JSON object, got %v", ErrInvalidFormat, token)
	}

	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read HAR: %v", ErrInvalidFormat, err)
		}

		key, ok := token.(string)
		if !ok {
			continue
		}

		switch key {
		case keyLog:
			if err := reader.readLog(decoder); err != nil {
				return nil, fmt.Errorf("%w: failed to read HAR log: %v", ErrInvalidFormat, err)
			}
		default:
			if err := helper.skipValue(decoder); err != nil {
				return nil, fmt.Errorf("%w: failed to read HAR: %v", ErrInvalidFormat, err)
			}
		}
	}

	return reader.cookies, nil
}

type harCookieReader struct {
	interner *cookie.Interner
	cookies  []cookie.Cookie
}

func (h *harCookieReader) readLog(decoder tokenDecoder) error {
	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if token != json.Delim('{') {
		return fmt.Errorf("expected object delimiter, got %v", token)
	}

	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return err
		}

		key, ok := token.(string)
		if !ok {
			continue
		}

		if key == keyEntries {
			if err := h.readEntries(decoder); err != nil {
				return err
			}
			continue
		}
		if err := helper.skipValue(decoder); err != nil {
			return err
		}
	}

	_, err = decoder.Token()
	return err
}

func (h *harCookieReader) readEntries(decoder tokenDecoder) error {
	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if token != json.Delim('[') {
		return fmt.Errorf("expected array delimiter, got %v", token)
	}

	entryIndex := 0
	for decoder.More() {
		var entry harhar.Entry
		if err := decoder.Decode(&entry); err != nil {
			return fmt.Errorf("failed to parse entry %d: %w", entryIndex, err)
		}

		host := hostOf(entry.Request.URL)
		for _, c := range entry.Request.Cookies {
			h.cookies = append(h.cookies, h.convert(c, host))
		}
		for _, c := range entry.Response.Cookies {
			h.cookies = append(h.cookies, h.convert(c, host))
		}
		entryIndex++
	}

	_, err = decoder.Token()
	return err
}

func (h *harCookieReader) convert(c harhar.Cookie, host string) cookie.Cookie {
	domain := c.Domain
	if domain == "" {
		domain = host
	}

	record := cookie.Cookie{
		Domain:   h.interner.Intern(domain),
		Name:     c.Name,
		Value:    c.Value,
		Path:     h.interner.Intern(c.Path),
		Secure:   c.Secure,
		HTTPOnly: c.HTTPOnly,
	}

	if c.Expires != "" {
		if t, err := time.Parse(time.RFC3339, c.Expires); err == nil {
			record = record.Expires(float64(t.Unix()))
		}
	}

	return record
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

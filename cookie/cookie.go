package cookie

import (
	"encoding/json"
	"math"
	"time"
)

// DefaultPath is used for records that carry no path.
const DefaultPath = "/"

// Cookie describes a single browser cookie.
type Cookie struct {
	// Domain is the host the cookie applies to. A leading dot matches the host and every subdomain.
	Domain string `json:"domain"`
	// Name of the cookie, an identifier within (Domain, Path).
	Name string `json:"name"`
	// Value stored in the cookie.
	Value string `json:"value"`
	// Path that this cookie applied to.
	Path string `json:"path,omitempty"`
	// Secure is true if the cookie is only sent over TLS.
	Secure bool `json:"secure"`
	// HTTPOnly flag status of the cookie.
	HTTPOnly bool `json:"httpOnly"`
	// ExpirationDate in Unix epoch seconds, nil for a session cookie.
	ExpirationDate *float64 `json:"expirationDate,omitempty"`

	// source holds the exact JSON this record was decoded from, fields its
	// object members (nil when the source was not a JSON object).
	source json.RawMessage
	fields map[string]any
}

// New returns a session cookie with the given domain, name and value.
func New(domain, name, value string) Cookie {
	return Cookie{Domain: domain, Name: name, Value: value}
}

// Expires returns a copy of c expiring at the given epoch seconds. The copy is
// no longer tied to the JSON it was decoded from, so it marshals from the typed
// fields.
func (c Cookie) Expires(seconds float64) Cookie {
	c.ExpirationDate = &seconds
	c.source, c.fields = nil, nil
	return c
}

// EffectivePath returns Path, or DefaultPath when it is empty.
func (c Cookie) EffectivePath() string {
	if c.Path == "" {
		return DefaultPath
	}
	return c.Path
}

// Expiration returns the expiration in epoch seconds and whether the cookie has one.
// A zero expiration counts as none.
func (c Cookie) Expiration() (float64, bool) {
	if c.ExpirationDate == nil {
		return 0, false
	}
	exp := *c.ExpirationDate
	if exp == 0 || math.IsNaN(exp) {
		return 0, false
	}
	return exp, true
}

// IsSession reports whether the cookie lives for the browser session only.
func (c Cookie) IsSession() bool {
	_, ok := c.Expiration()
	return !ok
}

// ExpiredAt reports whether the cookie has an expiration at or before now (epoch seconds).
// Session cookies never expire.
func (c Cookie) ExpiredAt(now float64) bool {
	exp, ok := c.Expiration()
	return ok && exp <= now
}

// ExpiryTime converts the expiration into a time.Time, zero for session cookies.
func (c Cookie) ExpiryTime() time.Time {
	exp, ok := c.Expiration()
	if !ok {
		return time.Time{}
	}
	sec, frac := math.Modf(exp)
	return time.Unix(int64(sec), int64(frac*1e9))
}

// Decoded reports whether the record was built from JSON input. Decoded records
// marshal their source verbatim; assigning to the typed fields directly does not
// change that output, use a constructor or Expires for a modified copy.
func (c Cookie) Decoded() bool {
	return c.source != nil
}

// Field returns the named attribute and whether it is present. Records decoded
// from JSON answer from the original members, so values of the wrong type are
// visible; other records answer from the typed fields.
func (c Cookie) Field(key string) (any, bool) {
	if c.source != nil {
		v, ok := c.fields[key]
		return v, ok
	}

	switch key {
	case "domain":
		return c.Domain, true
	case "name":
		return c.Name, true
	case "value":
		return c.Value, true
	case "path":
		return c.Path, c.Path != ""
	case "secure":
		return c.Secure, true
	case "httpOnly":
		return c.HTTPOnly, true
	case "expirationDate":
		if c.ExpirationDate == nil {
			return nil, false
		}
		return *c.ExpirationDate, true
	}
	return nil, false
}

type plainCookie Cookie

// MarshalJSON writes decoded records back exactly as they were read, other
// records from the typed fields.
func (c Cookie) MarshalJSON() ([]byte, error) {
	if c.source != nil {
		return c.source, nil
	}
	return json.Marshal(plainCookie(c))
}

// UnmarshalJSON accepts any JSON value. Object members with the expected types
// populate the typed fields, everything else is kept for validation.
func (c *Cookie) UnmarshalJSON(data []byte) error {
	*c = Cookie{source: append(json.RawMessage(nil), data...)}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		// not an object, the record has no attributes
		return nil
	}
	c.fields = fields

	c.Domain, _ = fields["domain"].(string)
	c.Name, _ = fields["name"].(string)
	c.Value, _ = fields["value"].(string)
	c.Path, _ = fields["path"].(string)
	c.Secure, _ = fields["secure"].(bool)
	c.HTTPOnly, _ = fields["httpOnly"].(bool)
	if exp, ok := fields["expirationDate"].(float64); ok {
		c.ExpirationDate = &exp
	}
	return nil
}

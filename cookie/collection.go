package cookie

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Groups maps domains to their cookies, remembering the order in which domains were added.
type Groups struct {
	order    []string
	byDomain map[string][]Cookie
}

// NewGroups creates an empty grouping.
func NewGroups() *Groups {
	return &Groups{
		byDomain: make(map[string][]Cookie),
	}
}

// Add appends cookies to a domain, registering the domain on first use.
func (g *Groups) Add(domain string, cookies ...Cookie) {
	if _, exists := g.byDomain[domain]; !exists {
		g.order = append(g.order, domain)
		g.byDomain[domain] = make([]Cookie, 0, len(cookies))
	}
	g.byDomain[domain] = append(g.byDomain[domain], cookies...)
}

// Set replaces the cookies of a domain, keeping its position.
func (g *Groups) Set(domain string, cookies []Cookie) {
	if _, exists := g.byDomain[domain]; !exists {
		g.order = append(g.order, domain)
	}
	g.byDomain[domain] = cookies
}

// Delete removes a domain and its cookies.
func (g *Groups) Delete(domain string) {
	if _, exists := g.byDomain[domain]; !exists {
		return
	}
	delete(g.byDomain, domain)
	for i, d := range g.order {
		if d == domain {
			g.order = append(g.order[:i:i], g.order[i+1:]...)
			break
		}
	}
}

// Get returns the cookies of a domain.
func (g *Groups) Get(domain string) ([]Cookie, bool) {
	cookies, ok := g.byDomain[domain]
	return cookies, ok
}

// Domains returns the domains in insertion order.
func (g *Groups) Domains() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Len returns the number of domains.
func (g *Groups) Len() int {
	return len(g.order)
}

// Count returns the number of cookies across every domain.
func (g *Groups) Count() int {
	total := 0
	for _, cookies := range g.byDomain {
		total += len(cookies)
	}
	return total
}

// Each visits every domain in order.
func (g *Groups) Each(fn func(domain string, cookies []Cookie)) {
	for _, domain := range g.order {
		fn(domain, g.byDomain[domain])
	}
}

// Flatten returns all cookies, domains in order then cookies in order.
func (g *Groups) Flatten() []Cookie {
	out := make([]Cookie, 0, g.Count())
	g.Each(func(_ string, cookies []Cookie) {
		out = append(out, cookies...)
	})
	return out
}

// MarshalJSON writes the grouping as a JSON object with keys in insertion order.
func (g *Groups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, domain := range g.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(domain)
		if err != nil {
			return nil, err
		}
		cookies := g.byDomain[domain]
		if cookies == nil {
			cookies = []Cookie{}
		}
		value, err := json.Marshal(cookies)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of domain to cookie arrays, keeping key order.
func (g *Groups) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))

	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if token != json.Delim('{') {
		return fmt.Errorf("expected object delimiter, got %v", token)
	}

	*g = Groups{byDomain: make(map[string][]Cookie)}
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return err
		}
		domain, ok := token.(string)
		if !ok {
			return fmt.Errorf("expected domain key, got %v", token)
		}

		var cookies []Cookie
		if err := decoder.Decode(&cookies); err != nil {
			return fmt.Errorf("domain %q: %w", domain, err)
		}
		g.Set(domain, cookies)
	}

	_, err = decoder.Token()
	return err
}

// Collection is either a flat sequence of cookies or a grouping by domain.
type Collection struct {
	flat   []Cookie
	groups *Groups
}

// NewFlat wraps a flat sequence.
func NewFlat(cookies []Cookie) Collection {
	if cookies == nil {
		cookies = []Cookie{}
	}
	return Collection{flat: cookies}
}

// NewGrouped wraps a grouping.
func NewGrouped(groups *Groups) Collection {
	if groups == nil {
		groups = NewGroups()
	}
	return Collection{groups: groups}
}

// IsGrouped reports whether the collection holds a grouping.
func (c Collection) IsGrouped() bool {
	return c.groups != nil
}

// Flat returns the flat sequence, nil for grouped collections.
func (c Collection) Flat() []Cookie {
	return c.flat
}

// Groups returns the grouping, nil for flat collections.
func (c Collection) Groups() *Groups {
	return c.groups
}

// All returns every cookie as one sequence.
func (c Collection) All() []Cookie {
	if c.groups != nil {
		return c.groups.Flatten()
	}
	return c.flat
}

// Len returns the number of cookies.
func (c Collection) Len() int {
	if c.groups != nil {
		return c.groups.Count()
	}
	return len(c.flat)
}

// MarshalJSON writes an object for grouped collections and an array otherwise.
func (c Collection) MarshalJSON() ([]byte, error) {
	if c.groups != nil {
		return c.groups.MarshalJSON()
	}
	if c.flat == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.flat)
}

// GroupByDomain groups cookies by their domain, in first-seen order.
func GroupByDomain(cookies []Cookie) *Groups {
	groups := NewGroups()
	interner := NewInterner()
	for _, c := range cookies {
		groups.Add(interner.Intern(c.Domain), c)
	}
	return groups
}

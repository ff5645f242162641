package filter

import (
	"strings"
	"time"

	"github.com/pb33f/biscuit/cookie"
)

// Criteria selects a subset of cookies. Every active criterion must hold for a
// cookie to be kept. ShowExpired and ShowActive split the expiration axis:
// with both false nothing is kept, with both true expiration is ignored.
type Criteria struct {
	// Domain keeps cookies whose domain contains it, case-sensitive.
	Domain string `toml:"domain"`
	// SearchTerm keeps cookies whose name or domain contains it, case-insensitive.
	SearchTerm string `toml:"search"`
	// SearchMode switches SearchTerm to a regular expression.
	SearchMode SearchMode `toml:"search_mode"`
	// SecureOnly keeps secure cookies.
	SecureOnly bool `toml:"secure_only"`
	// HTTPOnly keeps httpOnly cookies.
	HTTPOnly bool `toml:"http_only"`
	// ShowExpired keeps cookies whose expiration has passed.
	ShowExpired bool `toml:"show_expired"`
	// ShowActive keeps session cookies and cookies that have not expired.
	ShowActive bool `toml:"show_active"`
}

// DefaultCriteria keeps every cookie.
func DefaultCriteria() Criteria {
	return Criteria{
		ShowExpired: true,
		ShowActive:  true,
	}
}

// IsZeroSelection reports whether the expiration settings exclude everything.
func (c Criteria) IsZeroSelection() bool {
	return !c.ShowExpired && !c.ShowActive
}

// Predicate decides whether a cookie stays in a filtered view.
type Predicate interface {
	Match(c *cookie.Cookie) bool
	IsActive() bool
}

// Chain combines predicates; a cookie must satisfy all of them.
type Chain struct {
	predicates []Predicate
}

// NewChain creates an empty chain.
func NewChain() *Chain {
	return &Chain{
		predicates: make([]Predicate, 0, 5), // pre-allocate for the built-in criteria
	}
}

// Add appends a predicate if it is active.
func (ch *Chain) Add(p Predicate) {
	if p != nil && p.IsActive() {
		ch.predicates = append(ch.predicates, p)
	}
}

// HasActive returns true if any predicate is active.
func (ch *Chain) HasActive() bool {
	return len(ch.predicates) > 0
}

// Match reports whether c satisfies every predicate.
func (ch *Chain) Match(c *cookie.Cookie) bool {
	for _, p := range ch.predicates {
		if !p.Match(c) {
			return false
		}
	}
	return true
}

// Apply returns the cookies of the chain, in order. The input is never modified.
func (ch *Chain) Apply(cookies []cookie.Cookie) []cookie.Cookie {
	out := make([]cookie.Cookie, 0, len(cookies))
	for i := range cookies {
		if ch.Match(&cookies[i]) {
			out = append(out, cookies[i])
		}
	}
	return out
}

// Build turns criteria into a chain, evaluating expiration against now.
func Build(c Criteria, now time.Time) (*Chain, error) {
	chain := NewChain()
	chain.Add(domainPredicate(c.Domain))

	if c.SearchTerm != "" {
		pattern, err := compilePattern(c.SearchTerm, c.SearchMode)
		if err != nil {
			return nil, err
		}
		chain.Add(searchPredicate{pattern: pattern})
	}

	chain.Add(securePredicate(c.SecureOnly))
	chain.Add(httpOnlyPredicate(c.HTTPOnly))
	chain.Add(newExpirationPredicate(c.ShowExpired, c.ShowActive, now))
	return chain, nil
}

// Apply filters cookies against criteria using the current time.
func Apply(cookies []cookie.Cookie, c Criteria) ([]cookie.Cookie, error) {
	return ApplyAt(cookies, c, time.Now())
}

// ApplyAt filters cookies against criteria, classifying expiration with a single
// snapshot of now for the whole pass.
func ApplyAt(cookies []cookie.Cookie, c Criteria, now time.Time) ([]cookie.Cookie, error) {
	if c.IsZeroSelection() {
		return []cookie.Cookie{}, nil
	}

	chain, err := Build(c, now)
	if err != nil {
		return nil, err
	}
	return chain.Apply(cookies), nil
}

// ApplyGroups filters each domain independently and drops domains left empty.
// Domain order is kept.
func ApplyGroups(groups *cookie.Groups, c Criteria) (*cookie.Groups, error) {
	return ApplyGroupsAt(groups, c, time.Now())
}

// ApplyGroupsAt is ApplyGroups with an explicit clock.
func ApplyGroupsAt(groups *cookie.Groups, c Criteria, now time.Time) (*cookie.Groups, error) {
	out := cookie.NewGroups()
	if c.IsZeroSelection() || groups == nil {
		return out, nil
	}

	chain, err := Build(c, now)
	if err != nil {
		return nil, err
	}

	groups.Each(func(domain string, cookies []cookie.Cookie) {
		kept := chain.Apply(cookies)
		if len(kept) > 0 {
			out.Set(domain, kept)
		}
	})
	return out, nil
}

type domainPredicate string

func (d domainPredicate) IsActive() bool { return d != "" }

func (d domainPredicate) Match(c *cookie.Cookie) bool {
	return strings.Contains(c.Domain, string(d))
}

type searchPredicate struct {
	pattern compiledPattern
}

func (s searchPredicate) IsActive() bool { return true }

func (s searchPredicate) Match(c *cookie.Cookie) bool {
	return s.pattern.matches(c.Name) || s.pattern.matches(c.Domain)
}

type securePredicate bool

func (s securePredicate) IsActive() bool { return bool(s) }

func (s securePredicate) Match(c *cookie.Cookie) bool { return c.Secure }

type httpOnlyPredicate bool

func (h httpOnlyPredicate) IsActive() bool { return bool(h) }

func (h httpOnlyPredicate) Match(c *cookie.Cookie) bool { return c.HTTPOnly }

// expirationPredicate keeps one side of the expired/active split.
type expirationPredicate struct {
	keepExpired bool
	keepActive  bool
	now         float64
}

func newExpirationPredicate(showExpired, showActive bool, now time.Time) expirationPredicate {
	return expirationPredicate{
		keepExpired: showExpired,
		keepActive:  showActive,
		now:         float64(now.UnixNano()) / float64(time.Second),
	}
}

// IsActive is false when both sides are kept, the predicate would pass everything.
func (e expirationPredicate) IsActive() bool {
	return e.keepExpired != e.keepActive
}

func (e expirationPredicate) Match(c *cookie.Cookie) bool {
	expired := c.ExpiredAt(e.now)
	if e.keepExpired {
		return expired
	}
	return !expired
}

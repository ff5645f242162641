package cookie

import (
	"sort"
	"time"
)

// Stats summarises a cookie set.
type Stats struct {
	Total      int            `json:"total"`
	Secure     int            `json:"secure"`
	HTTPOnly   int            `json:"httpOnly"`
	Session    int            `json:"session"`
	Expired    int            `json:"expired"`
	Active     int            `json:"active"`
	Domains    int            `json:"domains"`
	Duplicates int            `json:"duplicates"`
	PerDomain  map[string]int `json:"perDomain"`
	Earliest   *time.Time     `json:"earliestExpiry,omitempty"`
	Latest     *time.Time     `json:"latestExpiry,omitempty"`
}

// Summarize counts cookies by flag and expiration state at now. Session cookies
// count as active.
func Summarize(cookies []Cookie, now time.Time) Stats {
	nowSec := float64(now.UnixNano()) / float64(time.Second)
	s := Stats{
		Total:      len(cookies),
		PerDomain:  make(map[string]int),
		Duplicates: len(Duplicates(cookies)),
	}

	for _, c := range cookies {
		s.PerDomain[c.Domain]++
		if c.Secure {
			s.Secure++
		}
		if c.HTTPOnly {
			s.HTTPOnly++
		}

		if c.IsSession() {
			s.Session++
			s.Active++
			continue
		}

		if c.ExpiredAt(nowSec) {
			s.Expired++
		} else {
			s.Active++
		}

		t := c.ExpiryTime()
		if s.Earliest == nil || t.Before(*s.Earliest) {
			s.Earliest = &t
		}
		if s.Latest == nil || t.After(*s.Latest) {
			s.Latest = &t
		}
	}

	s.Domains = len(s.PerDomain)
	return s
}

// DomainCount is one row of TopDomains.
type DomainCount struct {
	Domain string
	Count  int
}

// TopDomains returns the n domains holding the most cookies, ties broken by name.
func (s Stats) TopDomains(n int) []DomainCount {
	out := make([]DomainCount, 0, len(s.PerDomain))
	for d, c := range s.PerDomain {
		out = append(out, DomainCount{Domain: d, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Domain < out[j].Domain
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

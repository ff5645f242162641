package validate

import (
	"fmt"
	"strings"

	"github.com/pb33f/biscuit/codec"
	"github.com/pb33f/biscuit/cookie"
)

// Report is the outcome of validating a collection. Invalid records never stop
// validation; they are listed in Errors and left out of ValidCookies.
type Report struct {
	Valid        bool            `json:"valid"`
	Errors       []string        `json:"errors"`
	ValidCookies []cookie.Cookie `json:"validCookies"`
}

// Rejected returns how many records failed validation.
func (r Report) Rejected() int {
	return len(r.Errors)
}

var requiredFields = []string{"name", "value", "domain"}

var stringFields = []string{"name", "value", "domain", "path"}

// Cookie checks a single record and returns every problem found, in rule order.
// An empty result means the record is valid.
func Cookie(c cookie.Cookie) []string {
	var problems []string

	for _, key := range requiredFields {
		if v, _ := c.Field(key); !cookie.Truthy(v) {
			problems = append(problems, fmt.Sprintf("missing %s field", key))
		}
	}

	for _, key := range stringFields {
		v, _ := c.Field(key)
		if !cookie.Truthy(v) {
			continue
		}
		if _, ok := v.(string); !ok {
			problems = append(problems, fmt.Sprintf("%s field should be a string", key))
		}
	}

	if v, present := c.Field("expirationDate"); present && v != nil {
		if n, ok := v.(float64); !ok || n < 0 {
			problems = append(problems, "expirationDate field should be a non-negative number")
		}
	}

	for _, key := range []string{"secure", "httpOnly"} {
		if v, present := c.Field(key); present {
			if _, ok := v.(bool); !ok {
				problems = append(problems, fmt.Sprintf("%s field should be a boolean", key))
			}
		}
	}

	return problems
}

// Cookies validates every record of a collection read in the given format.
// Grouped collections are flattened first. Error lines carry the 1-based
// position of the record in the flattened sequence. The report is invalid when
// the format cannot be imported, or when records were supplied and none passed.
func Cookies(cookies cookie.Collection, format codec.Format) Report {
	report := Report{
		Valid:        true,
		Errors:       []string{},
		ValidCookies: []cookie.Cookie{},
	}

	if !format.Parseable() {
		report.Valid = false
		report.Errors = append(report.Errors, fmt.Sprintf("unsupported format: %s", format))
		return report
	}

	all := cookies.All()
	for i, c := range all {
		problems := Cookie(c)
		if len(problems) == 0 {
			report.ValidCookies = append(report.ValidCookies, c)
			continue
		}
		report.Errors = append(report.Errors, fmt.Sprintf("Cookie %d: %s", i+1, strings.Join(problems, ", ")))
	}

	if len(all) > 0 && len(report.ValidCookies) == 0 {
		report.Valid = false
	}

	return report
}

package cmd

import (
	"github.com/pb33f/biscuit/filter"
	"github.com/spf13/cobra"
)

// filterFlags are the criteria flags shared by commands that select cookies.
type filterFlags struct {
	domain      string
	search      string
	regex       bool
	secureOnly  bool
	httpOnly    bool
	showExpired bool
	showActive  bool
}

func addFilterFlags(c *cobra.Command, f *filterFlags) {
	c.Flags().StringVar(&f.domain, "domain", "", "Keep cookies whose domain contains this text (case-sensitive)")
	c.Flags().StringVar(&f.search, "search", "", "Keep cookies whose name or domain contains this text (case-insensitive)")
	c.Flags().BoolVar(&f.regex, "regex", false, "Treat --search as a regular expression")
	c.Flags().BoolVar(&f.secureOnly, "secure-only", false, "Keep secure cookies only")
	c.Flags().BoolVar(&f.httpOnly, "http-only", false, "Keep httpOnly cookies only")
	c.Flags().BoolVar(&f.showExpired, "show-expired", true, "Include expired cookies")
	c.Flags().BoolVar(&f.showActive, "show-active", true, "Include session and unexpired cookies")
}

// criteria starts from base (the config file defaults) and applies every flag
// set on the command line.
func (f *filterFlags) criteria(c *cobra.Command, base filter.Criteria) filter.Criteria {
	out := base
	flags := c.Flags()

	if flags.Changed("domain") {
		out.Domain = f.domain
	}
	if flags.Changed("search") {
		out.SearchTerm = f.search
	}
	if flags.Changed("regex") {
		out.SearchMode = filter.PlainText
		if f.regex {
			out.SearchMode = filter.Regex
		}
	}
	if flags.Changed("secure-only") {
		out.SecureOnly = f.secureOnly
	}
	if flags.Changed("http-only") {
		out.HTTPOnly = f.httpOnly
	}
	if flags.Changed("show-expired") {
		out.ShowExpired = f.showExpired
	}
	if flags.Changed("show-active") {
		out.ShowActive = f.showActive
	}
	return out
}

package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pb33f/biscuit/cookie"
	"github.com/spf13/cobra"
)

var (
	statsFrom string
	statsTop  int
	statsJSON bool
)

var statsCmd = &cobra.Command{
	Use:   "stats <cookie-file>",
	Short: "Summarise a cookie file",
	Long: `Count the cookies of a file by flag and expiration state, list the busiest
domains and report duplicate (domain, name, path) tuples.`,
	Args: cobra.ExactArgs(1),
	Example: `  biscuit stats cookies.json
  biscuit stats capture.har --top 20 -v`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&statsFrom, "from", "f", "", "Input format: json, csv, netscape or har (default: from extension)")
	statsCmd.Flags().IntVar(&statsTop, "top", 5, "Number of domains to list")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print the summary as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	logger := GetLogger()

	src, err := resolveSource(args[0], statsFrom)
	if err != nil {
		return err
	}

	start := time.Now()
	cookies, err := readCookies(src)
	if err != nil {
		return err
	}
	stats := cookie.Summarize(cookies, time.Now())
	logger.Debug("cookie file summarised", "file", src.path, "took", time.Since(start))

	// in verbose mode, log the first few records as examples
	if verbose && len(cookies) > 0 {
		for i, c := range cookies[:min(3, len(cookies))] {
			logger.Debug("cookie",
				"index", i,
				"domain", c.Domain,
				"name", c.Name,
				"session", c.IsSession())
		}
	}

	out := cmd.OutOrStdout()
	if statsJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return err
		}
		return writeOutput(out, "", data)
	}

	fmt.Fprintf(out, "File:       %s (%s)\n", src.path, sourceLabel(src))
	fmt.Fprintf(out, "Cookies:    %d\n", stats.Total)
	fmt.Fprintf(out, "Domains:    %d\n", stats.Domains)
	fmt.Fprintf(out, "Secure:     %d\n", stats.Secure)
	fmt.Fprintf(out, "HttpOnly:   %d\n", stats.HTTPOnly)
	fmt.Fprintf(out, "Session:    %d\n", stats.Session)
	fmt.Fprintf(out, "Active:     %d\n", stats.Active)
	fmt.Fprintf(out, "Expired:    %d\n", stats.Expired)
	fmt.Fprintf(out, "Duplicates: %d\n", stats.Duplicates)

	if stats.Earliest != nil {
		fmt.Fprintf(out, "Expiry:     %s to %s\n",
			stats.Earliest.UTC().Format("2006-01-02 15:04:05"),
			stats.Latest.UTC().Format("2006-01-02 15:04:05"))
	}

	if top := stats.TopDomains(statsTop); len(top) > 0 {
		fmt.Fprintln(out, "\nTop domains:")
		for _, d := range top {
			fmt.Fprintf(out, "  %-40s %d\n", d.Domain, d.Count)
		}
	}
	return nil
}

func sourceLabel(src source) string {
	if src.har {
		return harSource
	}
	return src.format.String()
}

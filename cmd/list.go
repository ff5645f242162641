package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/pb33f/biscuit/cookie"
	"github.com/pb33f/biscuit/filter"
	"github.com/pb33f/biscuit/tui"
	"github.com/spf13/cobra"
)

var (
	listFrom    string
	listLimit   int
	listFilters filterFlags
)

var listCmd = &cobra.Command{
	Use:   "list <cookie-file>",
	Short: "Print the cookies of a file as a table",
	Args:  cobra.ExactArgs(1),
	Example: `  biscuit list cookies.json
  biscuit list cookies.txt --domain example.com --secure-only
  biscuit list capture.har --search '^_ga' --regex`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listFrom, "from", "f", "", "Input format: json, csv, netscape or har (default: from extension)")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "Maximum rows to print (0 = all)")
	addFilterFlags(listCmd, &listFilters)
}

func runList(cmd *cobra.Command, args []string) error {
	src, err := resolveSource(args[0], listFrom)
	if err != nil {
		return err
	}

	cookies, err := readCookies(src)
	if err != nil {
		return err
	}

	now := time.Now()
	filtered, err := filter.ApplyAt(cookies, listFilters.criteria(cmd, cfg.Filter), now)
	if err != nil {
		return err
	}

	shown := filtered
	if listLimit > 0 && len(shown) > listLimit {
		shown = shown[:listLimit]
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderCookieTable(shown, now))
	fmt.Fprintf(cmd.OutOrStdout(), "%d of %d cookies shown\n", len(shown), len(cookies))
	return nil
}

var (
	listHeaderStyle = lipgloss.NewStyle().Foreground(tui.RGBPink).Bold(true).Padding(0, 1)
	listCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	listExpired     = listCellStyle.Foreground(tui.RGBRed)
)

func renderCookieTable(cookies []cookie.Cookie, now time.Time) string {
	nowSec := float64(now.UnixNano()) / float64(time.Second)
	expired := make(map[int]bool, len(cookies))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(tui.RGBBlue)).
		Headers("Domain", "Name", "Path", "Secure", "HttpOnly", "Expires")

	for i, c := range cookies {
		expires := "session"
		if !c.IsSession() {
			expires = c.ExpiryTime().UTC().Format("2006-01-02 15:04:05")
		}
		expired[i] = c.ExpiredAt(nowSec)

		t.Row(c.Domain, c.Name, c.EffectivePath(),
			yesNo(c.Secure), yesNo(c.HTTPOnly), expires)
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return listHeaderStyle
		case expired[row]:
			return listExpired
		default:
			return listCellStyle
		}
	})

	return t.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

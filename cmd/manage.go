package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/pb33f/biscuit/codec"
	"github.com/pb33f/biscuit/cookie"
	"github.com/pb33f/biscuit/tui"
	"github.com/spf13/cobra"
)

var (
	manageFrom    string
	manageFilters filterFlags
)

var manageCmd = &cobra.Command{
	Use:   "manage <cookie-file>",
	Short: "Browse, search and prune a cookie file in the terminal UI",
	Long: `Open a cookie file in an interactive table. Search by name or domain,
toggle the secure, httpOnly and expiration filters, delete single cookies or
everything currently filtered, and write the result back to the file.`,
	Args: cobra.ExactArgs(1),
	Example: `  biscuit manage cookies.json
  biscuit manage cookies.txt --show-active=false`,
	RunE: runManage,
}

func init() {
	rootCmd.AddCommand(manageCmd)

	manageCmd.Flags().StringVarP(&manageFrom, "from", "f", "", "Input format: json, csv, netscape or har (default: from extension)")
	addFilterFlags(manageCmd, &manageFilters)
}

func runManage(cmd *cobra.Command, args []string) error {
	src, err := resolveSource(args[0], manageFrom)
	if err != nil {
		return err
	}
	if err := ValidateCookieFile(src.path); err != nil {
		return err
	}

	GetLogger().Info("launching terminal UI", "cookie_file", src.path)

	model, err := tui.NewCookieViewModel(tui.Options{
		Title:    src.path,
		Load:     func() ([]cookie.Cookie, error) { return readCookies(src) },
		Save:     saverFor(src),
		Criteria: manageFilters.criteria(cmd, cfg.Filter),
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI model: %w", err)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	if model.Dirty() {
		GetLogger().Warn("quit with unsaved deletions", "cookie_file", src.path)
	}
	return nil
}

// saverFor writes the working set back in the format it was read in. HAR
// captures are read-only.
func saverFor(src source) tui.SaveFunc {
	if src.har {
		return nil
	}

	return func(cookies []cookie.Cookie) error {
		data, err := codec.Serialize(cookie.NewFlat(cookies), src.format, false).Bytes()
		if err != nil {
			return err
		}
		// no logging here, the UI owns the terminal
		return writeOutput(nil, src.path, data)
	}
}

package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/pb33f/biscuit/codec"
	"github.com/pb33f/biscuit/cookie"
	"github.com/pb33f/biscuit/filter"
	"github.com/pb33f/biscuit/validate"
	"github.com/spf13/cobra"
)

var (
	exportFrom      string
	exportTo        string
	exportGrouped   bool
	exportOutput    string
	exportClipboard bool
	exportEnvelope  bool
	exportFilters   filterFlags

	// writeClipboard is swapped out in tests
	writeClipboard = clipboard.WriteAll
)

var exportCmd = &cobra.Command{
	Use:   "export <cookie-file>",
	Short: "Convert a cookie file to another format, optionally filtered",
	Long: `Read cookies from a JSON, CSV, Netscape or HAR file, drop invalid records,
apply the filters and write the result as JSON, CSV, XML or Netscape.
Grouped output nests cookies under their domain in first-seen order.`,
	Args: cobra.ExactArgs(1),
	Example: `  biscuit export cookies.json --to netscape -o cookies.txt
  biscuit export cookies.txt --to csv --search session --show-expired=false
  biscuit export capture.har --to json --grouped --clipboard`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFrom, "from", "f", "", "Input format: json, csv, netscape or har (default: from extension)")
	exportCmd.Flags().StringVarP(&exportTo, "to", "t", "json", "Output format: json, csv, xml or netscape")
	exportCmd.Flags().BoolVarP(&exportGrouped, "grouped", "g", false, "Group cookies by domain")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
	exportCmd.Flags().BoolVar(&exportClipboard, "clipboard", false, "Also copy the output to the clipboard")
	exportCmd.Flags().BoolVar(&exportEnvelope, "envelope", false, "Wrap the output in an object keyed by format")
	addFilterFlags(exportCmd, &exportFilters)
}

// exportResult is the outcome of an export before it is written anywhere.
type exportResult struct {
	output  codec.Output
	grouped bool
	// count follows the extension's reporting: the filtered count for flat
	// output, the total before filtering for grouped output
	count    int
	rejected int
}

func runExport(cmd *cobra.Command, args []string) error {
	logger := GetLogger()

	src, err := resolveSource(args[0], exportFrom)
	if err != nil {
		return err
	}

	format := exportTo
	if !cmd.Flags().Changed("to") {
		format = cfg.Export.Format
	}
	to, err := codec.LookupFormat(format)
	if err != nil {
		return err
	}

	grouped := exportGrouped
	if !cmd.Flags().Changed("grouped") {
		grouped = cfg.Export.Grouped
	}

	cookies, err := readCookies(src)
	if err != nil {
		return err
	}

	result, err := buildExport(cookies, src.format, to, grouped, exportFilters.criteria(cmd, cfg.Filter))
	if err != nil {
		return err
	}
	if result.rejected > 0 {
		logger.Warn("skipped invalid cookies", "count", result.rejected)
	}

	var data []byte
	if exportEnvelope {
		data, err = json.MarshalIndent(result.output, "", "  ")
	} else {
		data, err = result.output.Bytes()
	}
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	if err := writeOutput(cmd.OutOrStdout(), exportOutput, data); err != nil {
		return err
	}

	if exportClipboard {
		if err := writeClipboard(string(data)); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		logger.Info("copied to clipboard", "bytes", len(data))
	}

	logger.Info("exported cookies",
		"file", src.path,
		"format", to,
		"grouped", result.grouped,
		"count", result.count)
	return nil
}

// buildExport validates, filters and serializes a parsed cookie set.
func buildExport(cookies []cookie.Cookie, from, to codec.Format, grouped bool, criteria filter.Criteria) (exportResult, error) {
	report := validate.Cookies(cookie.NewFlat(cookies), from)
	if !report.Valid {
		return exportResult{}, fmt.Errorf("%w: %s", codec.ErrInvalidFormat, strings.Join(report.Errors, "; "))
	}

	valid := report.ValidCookies
	if grouped && len(valid) > cfg.Export.GroupThreshold {
		GetLogger().Info("too many cookies to group, exporting flat",
			"count", len(valid),
			"threshold", cfg.Export.GroupThreshold)
		grouped = false
	}

	result := exportResult{grouped: grouped, rejected: report.Rejected()}

	if grouped {
		groups, err := filter.ApplyGroups(cookie.GroupByDomain(valid), criteria)
		if err != nil {
			return result, err
		}
		result.output = codec.Serialize(cookie.NewGrouped(groups), to, true)
		result.count = len(valid)
		return result, nil
	}

	filtered, err := filter.Apply(valid, criteria)
	if err != nil {
		return result, err
	}
	result.output = codec.Serialize(cookie.NewFlat(filtered), to, false)
	result.count = len(filtered)
	return result, nil
}

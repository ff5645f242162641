package cmd

import (
	"fmt"
	"strings"

	"github.com/pb33f/biscuit/codec"
	"github.com/pb33f/biscuit/cookie"
	"github.com/pb33f/biscuit/cookiegen"
	"github.com/spf13/cobra"
)

var (
	genCount          int
	genDomains        int
	genOutputFile     string
	genFormat         string
	genGrouped        bool
	genInjectTerms    []string
	genFields         []string
	genSeed           int64
	genDictPath       string
	genExpiredRatio   float64
	genSessionRatio   float64
	genShowInjections bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate random cookie files with optional search term injection",
	Long: `Generate cookie files of various sizes for testing importers and filters.
Words come from a dictionary file; a seed makes the output reproducible.
Specific terms can be planted in names, domains or values to test search.`,
	Example: `  biscuit generate -n 100 -o cookies.json
  biscuit generate -n 1000 --format netscape -o cookies.txt --seed 42
  biscuit generate -n 50 -i needle --fields name,domain`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVarP(&genCount, "count", "n", 20, "Number of cookies to generate")
	generateCmd.Flags().IntVar(&genDomains, "domains", 0, "Number of distinct domains (default: count/4)")
	generateCmd.Flags().StringVarP(&genOutputFile, "output", "o", "", "Output file path (default: stdout)")
	generateCmd.Flags().StringVar(&genFormat, "format", "json", "Output format: json, csv, xml or netscape")
	generateCmd.Flags().BoolVarP(&genGrouped, "grouped", "g", false, "Group cookies by domain")
	generateCmd.Flags().StringSliceVarP(&genInjectTerms, "inject", "i", []string{}, "Terms to inject (comma-separated)")
	generateCmd.Flags().StringSliceVar(&genFields, "fields", []string{}, "Injection fields: name,domain,value (default: all)")
	generateCmd.Flags().Int64VarP(&genSeed, "seed", "s", 0, "Random seed for reproducibility (0 = use current time)")
	generateCmd.Flags().StringVarP(&genDictPath, "dict", "d", cookiegen.DefaultDictionaryPath, "Dictionary file path")
	generateCmd.Flags().Float64Var(&genExpiredRatio, "expired", 0.2, "Share of expired cookies")
	generateCmd.Flags().Float64Var(&genSessionRatio, "session", 0.3, "Share of session cookies")
	generateCmd.Flags().BoolVar(&genShowInjections, "show-injections", true, "Show injection details after generation")
}

func parseInjectionFields(names []string) ([]cookiegen.InjectionField, error) {
	fields := make([]cookiegen.InjectionField, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "name":
			fields = append(fields, cookiegen.NameField)
		case "domain":
			fields = append(fields, cookiegen.DomainField)
		case "value":
			fields = append(fields, cookiegen.ValueField)
		default:
			return nil, fmt.Errorf("unknown injection field: %s", name)
		}
	}
	return fields, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger := GetLogger()

	fields, err := parseInjectionFields(genFields)
	if err != nil {
		return err
	}

	format, err := codec.LookupFormat(genFormat)
	if err != nil {
		return err
	}

	if genExpiredRatio < 0 || genSessionRatio < 0 || genExpiredRatio+genSessionRatio > 1 {
		return fmt.Errorf("expired and session shares must be non-negative and add up to at most 1")
	}

	opts := cookiegen.GenerateOptions{
		Count:          genCount,
		Domains:        genDomains,
		InjectTerms:    genInjectTerms,
		InjectFields:   fields,
		DictionaryPath: genDictPath,
		Seed:           genSeed,
		ExpiredRatio:   genExpiredRatio,
		SessionRatio:   genSessionRatio,
	}

	var result *cookiegen.GenerateResult
	if genOutputFile != "" {
		result, err = cookiegen.GenerateToFile(fs, genOutputFile, format, genGrouped, opts)
		if err != nil {
			return fmt.Errorf("failed to generate cookies: %w", err)
		}
	} else {
		result, err = cookiegen.Generate(fs, opts)
		if err != nil {
			return fmt.Errorf("failed to generate cookies: %w", err)
		}

		collection := cookie.NewFlat(result.Cookies)
		if genGrouped {
			collection = cookie.NewGrouped(cookie.GroupByDomain(result.Cookies))
		}
		data, err := codec.Serialize(collection, format, genGrouped).Bytes()
		if err != nil {
			return fmt.Errorf("failed to serialize cookies: %w", err)
		}
		if err := writeOutput(cmd.OutOrStdout(), "", data); err != nil {
			return err
		}
	}

	logger.Info("generated cookies",
		"count", len(result.Cookies),
		"format", format,
		"file", result.FilePath)

	if genShowInjections && len(result.InjectedTerms) > 0 {
		// stdout may carry the cookies themselves
		out := cmd.ErrOrStderr()
		fmt.Fprintln(out, "Injected terms:")
		for _, inj := range result.InjectedTerms {
			fmt.Fprintf(out, "  • '%s' in cookie %d (%s)\n", inj.Term, inj.CookieIndex, inj.Field)
		}
	}

	return nil
}

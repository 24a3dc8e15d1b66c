// Command entitlements queries the entitlement sheet from a terminal using
// the same loader and filter engine as the server.
//
// Usage:
//
//	entitlements list --search rent --facet AgeGroup=60-65 --facet Category=Housing
//	entitlements facets --file export.xlsx
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/brendanxryan/entitlemate-backend/config"
	"github.com/brendanxryan/entitlemate-backend/models"
	"github.com/brendanxryan/entitlemate-backend/services"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type options struct {
	url     string
	file    string
	sheet   string
	search  string
	facets  []string
	asJSON  bool
	timeout time.Duration
}

// init loads environment variables
func init() {
	_ = godotenv.Load()
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	// Human-readable warnings only; the listing is the output. Set up before
	// config.Load so its warnings use the console writer too.
	config.InitLogger("development")
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	cfg := config.Load()
	opts := &options{}

	root := &cobra.Command{
		Use:   "entitlements",
		Short: "Browse published entitlements from the EntitleMate sheet",
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&opts.url, "url", cfg.SheetURL, "Sheet API endpoint")
	root.PersistentFlags().StringVar(&opts.file, "file", cfg.SheetFile, "Read from an .xlsx export instead of the API")
	root.PersistentFlags().StringVar(&opts.sheet, "sheet", cfg.SheetName, "Worksheet name (default: first sheet)")
	root.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "Print JSON")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", cfg.FetchTimeout, "Fetch timeout")

	list := &cobra.Command{
		Use:   "list",
		Short: "List entitlements matching the search text and facets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	list.Flags().StringVarP(&opts.search, "search", "s", "", "Search text (name, headline, description)")
	list.Flags().StringArrayVarP(&opts.facets, "facet", "f", nil, "Facet selection as Name=Value (repeatable)")

	facets := &cobra.Command{
		Use:   "facets",
		Short: "Show the values available for every facet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFacets(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	root.AddCommand(list, facets)
	return root
}

func runList(ctx context.Context, out io.Writer, opts *options) error {
	state, err := parseFacetFlags(opts.search, opts.facets)
	if err != nil {
		return err
	}

	result, err := load(ctx, opts)
	if err != nil {
		return err
	}
	visible := services.FilterRecords(result.Records, state.Search, state)

	if opts.asJSON {
		return writeJSON(out, visible)
	}

	for _, e := range visible {
		fmt.Fprintln(out, e.Name)
		if e.Headline != "" {
			fmt.Fprintf(out, "  %s\n", e.Headline)
		}
		if value := e.FormattedValue(); value != "" {
			fmt.Fprintf(out, "  Estimated value: %s\n", value)
		}
		if e.GovLink != "" {
			fmt.Fprintf(out, "  %s\n", e.GovLink)
		}
	}
	fmt.Fprintf(out, "\n%d of %d entitlements\n", len(visible), len(result.Records))
	return nil
}

func runFacets(ctx context.Context, out io.Writer, opts *options) error {
	result, err := load(ctx, opts)
	if err != nil {
		return err
	}
	facetOptions := services.BuildFacetOptions(result.Records)

	if opts.asJSON {
		return writeJSON(out, facetOptions)
	}

	for _, g := range facetOptions.Groups {
		fmt.Fprintf(out, "%s (%s)\n", g.Label, g.Facet)
		for _, opt := range g.Options {
			fmt.Fprintf(out, "  %-30s %d\n", opt.Value, opt.Count)
		}
	}
	return nil
}

func load(ctx context.Context, opts *options) (services.LoadResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	var source services.Source
	if opts.file != "" {
		source = services.NewWorkbookSource(opts.file, opts.sheet)
	} else {
		source = services.NewSheetSource(opts.url, opts.timeout)
	}
	return services.NewLoader(source).Load(ctx)
}

// parseFacetFlags turns repeated Name=Value flags into a filter state.
func parseFacetFlags(search string, flags []string) (models.FilterState, error) {
	selected := make(map[models.Facet][]string)
	for _, flag := range flags {
		name, value, ok := strings.Cut(flag, "=")
		if !ok || strings.TrimSpace(value) == "" {
			return models.FilterState{}, fmt.Errorf("invalid --facet %q: want Name=Value", flag)
		}
		f, ok := models.ParseFacet(name)
		if !ok {
			return models.FilterState{}, fmt.Errorf("unknown facet %q", name)
		}
		selected[f] = append(selected[f], strings.TrimSpace(value))
	}
	return models.NewFilterState(search, selected), nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/OPSE-Developers/OPSE-Records-Plugin/config"
	"github.com/OPSE-Developers/OPSE-Records-Plugin/models"
	"github.com/OPSE-Developers/OPSE-Records-Plugin/scraper/records"
	"github.com/OPSE-Developers/OPSE-Records-Plugin/services"
	"github.com/OPSE-Developers/OPSE-Records-Plugin/storage"
	"github.com/OPSE-Developers/OPSE-Records-Plugin/tools"
	"github.com/OPSE-Developers/OPSE-Records-Plugin/utils"
)

var verbose bool

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "opse-records",
		Short:        "Look people up in French public phone records",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs")

	root.AddCommand(newSearchCmd(), newCarrierCmd())
	return root
}

type searchFlags struct {
	firstName string
	lastName  string
	cities    []string
	strict    bool
	csvPath   string
}

func newSearchCmd() *cobra.Command {
	var f searchFlags

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the directory for a person",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSearch(cmd.Context(), f)
		},
	}
	cmd.Flags().StringVar(&f.firstName, "firstname", "", "first name (required)")
	cmd.Flags().StringVar(&f.lastName, "lastname", "", "last name (required)")
	cmd.Flags().StringSliceVar(&f.cities, "city", nil, "known city, repeatable")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "keep exact name matches only")
	cmd.Flags().StringVar(&f.csvPath, "csv", "", "CSV output path (defaults to CSV_OUTPUT_PATH)")
	_ = cmd.MarkFlagRequired("firstname")
	_ = cmd.MarkFlagRequired("lastname")

	return cmd
}

func newCarrierCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "carrier NUMBER",
		Short: "Ask the ARCEP numbering base which operator holds a number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			lookup := records.NewCarrierLookup(records.NewHTTPFetcher(cfg.HTTPTimeout, cfg.UserAgent), cfg.CarrierURL)

			carrier, err := lookup.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if carrier == "" {
				carrier = "unknown"
			}
			fmt.Fprintln(cmd.OutOrStdout(), carrier)
			return nil
		},
	}
}

func runSearch(ctx context.Context, f searchFlags) error {
	cfg := config.Load()
	logger := utils.NewLoggerWithLevel(utils.ParseLevel(cfg.LogLevel))
	if verbose {
		logger.SetLevel(utils.LevelDebug)
	}
	if f.csvPath != "" {
		cfg.CSVOutputPath = f.csvPath
	}

	logger.Info("=== OPSE public records search starting ===")
	logger.Info("Config — endpoint: %s | page size: %d | strict: %t | fetch: %s",
		cfg.SearchURL, cfg.PageSize, cfg.StrictMode || f.strict, cfg.FetchMode)

	fetcher, closeFetcher, err := newFetcher(cfg)
	if err != nil {
		return err
	}
	defer closeFetcher()

	scraper := records.New(cfg, fetcher, logger)
	tool := tools.NewRecordsTool(scraper, services.NewCleaner(logger), logger, tools.RecordsOptions{
		Strict:     cfg.StrictMode || f.strict,
		Accumulate: cfg.AccumulateAddresses,
	})

	base := &models.Profile{FirstName: f.firstName, LastName: f.lastName}
	for _, city := range f.cities {
		c := city
		base.Addresses = append(base.Addresses, models.AddressRecord{City: &c, Country: "France"})
	}
	if !tools.CanRun(tool, base) {
		return errors.New("search needs a first name and a last name")
	}

	results := tool.Collect(ctx, base)

	var profiles []*models.Profile
	tool.Emit(base, results, func(p *models.Profile) { profiles = append(profiles, p) })
	logger.Info("Produced %d enriched profiles", len(profiles))

	if len(results) == 0 {
		return nil
	}

	stored, err := writeResults(cfg, logger, results)
	if err != nil {
		return err
	}

	insightSvc := services.NewInsightService(logger)
	insightSvc.Print(insightSvc.Generate(stored))
	return nil
}

func newFetcher(cfg *config.Config) (records.PageFetcher, func(), error) {
	switch cfg.FetchMode {
	case config.FetchModeHTTP, "":
		return records.NewHTTPFetcher(cfg.HTTPTimeout, cfg.UserAgent), func() {}, nil
	case config.FetchModeBrowser:
		b := records.NewBrowserFetcher(cfg.ChromeBin, cfg.UserAgent)
		return b, func() { _ = b.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown FETCH_MODE %q", cfg.FetchMode)
	}
}

// writeResults exports results and returns the set to report on: every
// stored row when PostgreSQL is enabled, otherwise results itself.
func writeResults(cfg *config.Config, logger *utils.Logger, results []*models.SearchResult) ([]*models.SearchResult, error) {
	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		return nil, err
	}
	defer csvWriter.Close()

	if err := csvWriter.WriteResults(results); err != nil {
		logger.Error("CSV write failed: %v", err)
		return nil, err
	}
	logger.Info("Results saved to %s", cfg.CSVOutputPath)

	if !cfg.PostgresEnabled {
		return results, nil
	}

	pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		return nil, err
	}
	defer pgWriter.Close()

	if err := pgWriter.WriteResults(results); err != nil {
		logger.Error("PostgreSQL write failed: %v", err)
		return nil, err
	}
	logger.Info("Results stored in PostgreSQL (table: phone_records)")

	stored, err := pgWriter.FetchAll()
	if err != nil {
		logger.Error("Failed to fetch results from DB for the report: %v", err)
		return results, nil
	}
	return stored, nil
}

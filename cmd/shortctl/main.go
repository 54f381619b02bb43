package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"shortctl/internal/cli"
	"shortctl/internal/config"
	"shortctl/internal/geodb"
	"shortctl/internal/lock"
	"shortctl/internal/logging"
	"shortctl/internal/repository/sqlite"
)

var rootCmd = &cobra.Command{
	Use:   "shortctl",
	Short: "Admin tooling for a URL shortening service",
	Long:  "Admin tooling for a URL shortening service: list short URLs and keep the local IP geolocation database fresh",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List short URLs in a paginated table",
	RunE:  runList,
}

var geodbCmd = &cobra.Command{
	Use:   "geodb",
	Short: "Geolocation database maintenance",
}

var geodbUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Download a fresh geolocation database when the local one is missing or stale",
	RunE:  runGeoDBUpdate,
}

func init() {
	// List command flags
	listCmd.Flags().IntP("page", "p", 1, "First page to display")
	listCmd.Flags().StringP("search-term", "s", "", "Free-text filter applied to long URLs and short codes")
	listCmd.Flags().StringP("tags", "t", "", "Comma-separated list of tags to filter by")
	listCmd.Flags().StringP("order-by", "o", "", `Ordering as "field", "field,DIR" or "field-DIR" with DIR one of ASC or DESC`)
	listCmd.Flags().Bool("show-tags", false, "Include a tags column in the table")
	listCmd.Flags().BoolP("all", "a", false, "Fetch everything in one pass, disabling pagination")
	listCmd.Flags().String("start-date", "", "Only short URLs created at or after this RFC3339 timestamp")
	listCmd.Flags().String("end-date", "", "Only short URLs created at or before this RFC3339 timestamp")

	// Logging configuration flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	geodbCmd.AddCommand(geodbUpdateCmd)
	rootCmd.AddCommand(listCmd, geodbCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := logging.New(cmd.ErrOrStderr(), verbose)

	var opts cli.ListOptions
	opts.Page, _ = cmd.Flags().GetInt("page")
	opts.SearchTerm, _ = cmd.Flags().GetString("search-term")
	opts.Tags, _ = cmd.Flags().GetString("tags")
	opts.OrderBy, _ = cmd.Flags().GetString("order-by")
	opts.ShowTags, _ = cmd.Flags().GetBool("show-tags")
	opts.All, _ = cmd.Flags().GetBool("all")
	opts.StartDate, _ = cmd.Flags().GetString("start-date")
	opts.EndDate, _ = cmd.Flags().GetString("end-date")

	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error().Err(err).Msg("error closing repository")
		}
	}()

	lister := cli.NewLister(repo, cmd.InOrStdin(), cmd.OutOrStdout())
	return lister.Run(cmd.Context(), opts)
}

func runGeoDBUpdate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := logging.New(cmd.ErrOrStderr(), verbose)

	locks, err := lock.NewFlockFactory(cfg.Lock.Dir)
	if err != nil {
		return fmt.Errorf("failed to initialize lock factory: %w", err)
	}

	client := &http.Client{Timeout: cfg.GeoDB.DownloadTimeout}
	dbUpdater := geodb.NewFileSystemDBUpdater(cfg.GeoDB.Path, cfg.GeoDB.DownloadURL, client, logger)
	meta := geodb.NewMMDBMetadataReader(cfg.GeoDB.Path)
	updater := geodb.NewUpdater(locks, dbUpdater, meta)

	runner := cli.NewGeoDBRunner(updater, cmd.OutOrStdout(), logger)
	return runner.Run(cmd.Context())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

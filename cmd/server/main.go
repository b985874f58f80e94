// Command serpentaware-server serves the SerpentAware API and web pages.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"serpentaware/internal/config"
)

var (
	configPath  string
	addr        string
	storeDriver string
	storeDSN    string
	datasetPath string
	watch       bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "serpentaware-server",
	Short: "Serve the SerpentAware snake catalog",
	Long: `Runs the SerpentAware HTTP server: the JSON API under /api, the HTML
pages, /health and /metrics.

Settings come from serpentaware.yaml (or --config), then SERPENTAWARE_*
environment variables, then the flags below.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a snapshot of the stored catalog to a directory or S3",
	Long: `Opens the configured store without starting the server and exports
what it holds. Useful with the sqlite and postgres drivers.

Example:
  serpentaware-server export --store sqlite --dsn data/serpentaware.db --dir ./exports`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return exportStore(cmd.Context(), cfg, exportTarget)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to serpentaware.yaml (default: project root)")
	pf.StringVar(&storeDriver, "store", "", "Store driver: memory, sqlite or postgres")
	pf.StringVar(&storeDSN, "dsn", "", "Store DSN (sqlite file path or postgres URL)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	f := rootCmd.Flags()
	f.StringVar(&addr, "addr", "", "Listen address (default :8080)")
	f.StringVar(&datasetPath, "dataset", "", "JSON or YAML dataset used instead of the built-in catalog")
	f.BoolVar(&watch, "watch", false, "Reload the dataset file when it changes")

	addExportFlags(exportCmd)
	rootCmd.AddCommand(exportCmd)
}

// loadConfig layers flags the user actually set over file and environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Addr = addr
	}
	if flags.Changed("store") {
		cfg.Store.Driver = storeDriver
	}
	if flags.Changed("dsn") {
		cfg.Store.DSN = storeDSN
	}
	if flags.Changed("dataset") {
		cfg.Dataset.Path = datasetPath
	}
	if flags.Changed("watch") {
		cfg.Dataset.Watch = watch
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, cfg.Validate()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

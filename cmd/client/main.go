// Command serpentaware talks to a running SerpentAware server: it lists and
// shows species, prints the emergency guide, browses the catalog in a
// terminal UI and exports snapshots.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"serpentaware/internal/client"
)

var (
	serverURL  string
	adminToken string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "serpentaware",
	Short: "Command-line client for the SerpentAware snake catalog",
	Long: `Queries a SerpentAware server over its JSON API.

The server defaults to ` + client.DefaultServer + ` and can be set with --server
or SERPENTAWARE_SERVER. POST /api/init-data needs the admin token when the
server has one configured (--token or SERPENTAWARE_ADMIN_TOKEN).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&serverURL, "server", envOr("SERPENTAWARE_SERVER", client.DefaultServer), "Server base URL")
	pf.StringVar(&adminToken, "token", os.Getenv("SERPENTAWARE_ADMIN_TOKEN"), "Admin token for init-data")
	pf.BoolVar(&jsonOutput, "json", false, "Print raw JSON instead of formatted text")

	rootCmd.AddCommand(initDataCmd, snakesCmd, snakeCmd, continentsCmd, emergencyCmd, statsCmd, browseCmd, exportCmd)
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func newClient() *client.Client {
	return client.New(serverURL, client.WithToken(adminToken))
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

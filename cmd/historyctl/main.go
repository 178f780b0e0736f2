// Command historyctl inspects and maintains the persisted chat history
// without going through the HTTP server.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"reasonchat/backend/internal/app"
	"reasonchat/backend/internal/config"
)

var (
	cfg     *config.Config
	history *app.App
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "historyctl",
		Short: "Manage persisted chat history",
		Long: `Inspect, export, import and clear the chat history stored by the server.

The store is selected with the same settings as the server
(STORE_DRIVER, DATABASE_PATH, REDIS_ADDR, HISTORY_NAMESPACE).

Examples:
  historyctl list                       # List sessions, newest first
  historyctl list -q golang             # Only sessions mentioning golang
  historyctl export -o backup.json      # Export to a file
  historyctl import backup.json         # Replace history from a file
  historyctl clear --yes                # Delete every session`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

			loaded, _, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			cfg = loaded

			opened, err := app.OpenHistory(cfg)
			if err != nil {
				return err
			}
			history = opened
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if history != nil {
				history.Close()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(
		listCmd(),
		exportCmd(),
		importCmd(),
		clearCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package cmd

import (
	"fmt"
	"os"
	"time"

	"Rewind/config"
	"Rewind/logger"
	"Rewind/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rewind",
	Short: "Rewind is a personal music listening analytics service.",
	Long: `Rewind merges a Spotify streaming history export with the Web API's
recently-played window into one timeline and serves analytics over it.

Typical flow:
  rewind authorize   one-time OAuth bootstrap, creates the token cache
  rewind sync        load + fetch + merge, writes the combined timeline
  rewind server      serve the analytics dashboard`,
	Run: func(cmd *cobra.Command, args []string) {
		// Bare invocation runs the dashboard server.
		cfg := initApp()
		server.Start(cfg)
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// location resolves the configured timezone for the console reports,
// falling back to UTC on an unknown name.
func location(cfg *config.Config) *time.Location {
	loc, err := cfg.Location()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unknown TIMEZONE %q, using UTC\n", cfg.Timezone)
		return time.UTC
	}
	return loc
}

// initApp loads config and brings up logging; shared by every command.
func initApp() *config.Config {
	cfg := config.Load()
	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    50,
		MaxBackups: 3,
		MaxAge:     14,
		Compress:   true,
	})
	return cfg
}

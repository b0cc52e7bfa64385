package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"Rewind/config"
	"Rewind/history"
	"Rewind/logger"
	"Rewind/merge"
	"Rewind/model"
	"Rewind/spotify"
	"Rewind/stats"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Rebuild the combined listening timeline",
	Long: `Load the historical export, fetch the recently-played window from the
Spotify API, merge the two into one de-duplicated timeline, and write it
to the combined CSV. The API fetch is optional: without a session the
timeline is rebuilt from the export alone.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := initApp()
		if err := runSync(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "sync failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cfg *config.Config) error {
	fmt.Printf("Loading historical export from %s ...\n", cfg.HistoryPath)
	historical, err := history.Load(cfg.HistoryPath)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %d historical streams\n", len(historical))

	recent := fetchRecent(cfg)

	merged, err := merge.Combine(historical, recent)
	if err != nil {
		return err
	}

	store := merge.NewStore(cfg.MergedPath)
	if err := store.Save(merged); err != nil {
		return err
	}
	fmt.Printf("Wrote %d streams to %s\n", len(merged), cfg.MergedPath)

	printReport(stats.Localize(merged, location(cfg)))
	return nil
}

// fetchRecent pulls the recently-played window. Every failure path
// degrades to zero rows: a missing session is reported as skipped, a
// failed call is logged as a warning. The historical timeline must stay
// usable on its own.
func fetchRecent(cfg *config.Config) []model.PlayEvent {
	auth, err := spotify.NewAuthenticator(cfg)
	if err != nil {
		fmt.Println("Spotify credentials not configured, skipping API fetch")
		logger.Warn("api fetch skipped", logger.ErrorField(err))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := spotify.NewClient(ctx, auth)
	if err != nil {
		if errors.Is(err, model.ErrNoSession) {
			fmt.Println("No authorized session, skipping API fetch (run `rewind authorize`)")
		} else {
			fmt.Println("Could not open Spotify session, skipping API fetch")
			logger.Warn("api fetch skipped", logger.ErrorField(err))
		}
		return nil
	}

	recent, err := client.RecentlyPlayed(ctx, spotify.RecentLimit)
	if err != nil {
		fmt.Println("Recently-played fetch failed, continuing with historical data only")
		logger.Warn("recently-played fetch failed", logger.ErrorField(err))
		return nil
	}
	fmt.Printf("Fetched %d recent streams from the API\n", len(recent))
	return recent
}

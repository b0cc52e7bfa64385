package cmd

import (
	"fmt"
	"os"
	"strings"

	"Rewind/merge"
	"Rewind/model"
	"Rewind/stats"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print listening statistics to the console",
	Long:  `Read the combined timeline and print the summary report without starting the dashboard.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := initApp()
		store := merge.NewStore(cfg.MergedPath)
		events, err := store.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "stats failed: %v (run `rewind sync` first)\n", err)
			os.Exit(1)
		}
		printReport(stats.Localize(events, location(cfg)))
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

// printReport writes the console statistics block shared by sync and stats.
func printReport(events []model.PlayEvent) {
	s := stats.Summarize(events)
	line := strings.Repeat("=", 60)

	fmt.Println()
	fmt.Println(line)
	fmt.Println("LISTENING STATISTICS")
	fmt.Println(line)
	fmt.Printf("Total streams:   %d\n", s.TotalPlays)
	fmt.Printf("Unique tracks:   %d\n", s.UniqueTracks)
	fmt.Printf("Unique artists:  %d\n", s.UniqueArtists)
	fmt.Printf("Hours listened:  %.1f\n", s.TotalHours)
	if !s.FirstPlay.IsZero() {
		fmt.Printf("Date range:      %s to %s\n",
			s.FirstPlay.Format("2006-01-02"), s.LastPlay.Format("2006-01-02"))
	}
	fmt.Printf("Years of data:   %d\n", s.YearsOfData)

	fmt.Println("\nTop 10 artists:")
	for i, a := range stats.TopArtists(events, stats.TopNSummary) {
		fmt.Printf("  %2d. %-40s %d plays\n", i+1, a.Name, a.Plays)
	}

	fmt.Println("\nTop 10 tracks:")
	for i, t := range stats.TopTracks(events, stats.TopNSummary) {
		fmt.Printf("  %2d. %-35s %-25s %d plays\n", i+1, t.Track, t.Artist, t.Plays)
	}
	fmt.Println(line)
}

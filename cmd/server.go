package cmd

import (
	"Rewind/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the analytics dashboard server",
	Long:  `Serve the dashboard API and web shell over the merged listening timeline.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := initApp()
		server.Start(cfg)
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

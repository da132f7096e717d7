package commands

import (
	"time"

	"github.com/spf13/cobra"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Search today's date in Pi and post the result",
	RunE:  runToday,
}

func init() {
	rootCmd.AddCommand(todayCmd)
}

func runToday(cmd *cobra.Command, args []string) error {
	now := time.Now().UTC()
	// The query is the compact date; the posted message names the
	// hyphenated form.
	return postSearchResult(cmd.Context(), now.Format("20060102"), now.Format("2006-01-02"))
}

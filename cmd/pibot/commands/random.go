package commands

import (
	"math/rand"
	"strconv"

	"github.com/spf13/cobra"
)

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Search a random number in Pi and post the result",
	RunE:  runRandom,
}

func init() {
	rootCmd.AddCommand(randomCmd)
}

func runRandom(cmd *cobra.Command, args []string) error {
	number := strconv.FormatUint(uint64(rand.Int63n(100_000_000)), 10)
	return postSearchResult(cmd.Context(), number, number)
}

package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dave-andersen/pibot/internal/bluesky"
	"github.com/dave-andersen/pibot/internal/bot"
	"github.com/dave-andersen/pibot/internal/config"
)

var dryRun bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pibot",
	Short: "Posts Pi search results to BlueSky",
	Long: `pibot posts "found in Pi" results to BlueSky.

The random and today subcommands search a single number and post the result.
The stream subcommand watches the Jetstream firehose for posts that mention
the bot and replies in-thread with the search result for the number in the
mentioning post.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false,
		"Print the post content without actually posting")
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// newPostingAgent returns the agent posts go through: the authenticated
// client, or a printing stand-in when --dry-run is set (no login happens in
// that case).
func newPostingAgent(ctx context.Context, cfg *config.Config) (bot.PostingAgent, error) {
	if dryRun {
		return &bot.DryRunAgent{Out: os.Stdout}, nil
	}

	client := bluesky.NewClient(cfg.PDS)
	if err := client.Login(ctx, cfg.Username, cfg.Password); err != nil {
		return nil, err
	}
	return client, nil
}

package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dave-andersen/pibot/internal/bluesky"
	"github.com/dave-andersen/pibot/internal/bot"
	"github.com/dave-andersen/pibot/internal/config"
	"github.com/dave-andersen/pibot/internal/jetstream"
	"github.com/dave-andersen/pibot/internal/pisearch"
)

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Watch the firehose and reply to posts that mention the bot",
	RunE:  runStream,
}

func init() {
	rootCmd.AddCommand(streamCmd)
}

func runStream(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.WatchDID == "" {
		return fmt.Errorf("credentials file must set watch_did for streaming mode")
	}

	logger := newLogger()

	// The stop signal only cancels the subscription. The pipeline keeps the
	// base context so the reply cycle in flight when the signal arrives runs
	// to completion (bounded by the HTTP client timeouts), and buffered
	// events drain.
	ctx := cmd.Context()
	streamCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	agent, err := newPostingAgent(ctx, cfg)
	if err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}

	subscriber, err := jetstream.NewSubscriber(jetstream.Options{
		URL:          cfg.JetstreamURL,
		Collections:  []string{bluesky.CollectionPost},
		Compress:     cfg.ZstdDictPath != "",
		ZstdDictPath: cfg.ZstdDictPath,
	}, logger)
	if err != nil {
		return fmt.Errorf("create subscriber: %w", err)
	}

	pipeline := bot.NewPipeline(
		cfg.WatchDID,
		bot.NewExtractor(cfg.Trigger),
		pisearch.NewClient(cfg.SearchURL),
		agent,
		logger,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- subscriber.Run(streamCtx)
	}()

	// Blocks until the subscriber closes the event channel and all buffered
	// events have been handled.
	pipeline.Run(ctx, subscriber.Events())

	if err := <-errCh; err != nil {
		return err
	}

	logger.Info("exiting streaming mode")
	return nil
}

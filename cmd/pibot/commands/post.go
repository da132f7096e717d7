package commands

import (
	"context"
	"fmt"

	"github.com/dave-andersen/pibot/internal/bluesky"
	"github.com/dave-andersen/pibot/internal/bot"
	"github.com/dave-andersen/pibot/internal/config"
	"github.com/dave-andersen/pibot/internal/pisearch"
)

// postSearchResult runs one search-and-post cycle for the random and today
// subcommands: search the query, compose the standalone message (naming
// display, which may differ from the raw query), and post it with link
// facets and the #pi tag.
func postSearchResult(ctx context.Context, query, display string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	result, err := pisearch.NewClient(cfg.SearchURL).Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search pi: %w", err)
	}

	body := bot.ComposeResult(result, display, "")
	record := bluesky.NewPost(body)
	record.Facets = bluesky.DetectFacets(body)
	record.Tags = []string{"#pi"}

	agent, err := newPostingAgent(ctx, cfg)
	if err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}

	return agent.CreatePost(ctx, record)
}

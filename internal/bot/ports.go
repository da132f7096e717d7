// Package bot holds the core pipeline: filtering firehose events for
// mentions, extracting search queries, and replying with Pi search results.
package bot

import (
	"context"

	"github.com/dave-andersen/pibot/internal/bluesky"
	"github.com/dave-andersen/pibot/internal/pisearch"
)

// SearchClient looks up a normalized digit string in Pi.
type SearchClient interface {
	// Search submits one query. Implementations surface a service-reported
	// failure as an error distinct from transport errors.
	Search(ctx context.Context, query string) (*pisearch.Result, error)
}

// PostingAgent publishes post records on behalf of the authenticated account.
type PostingAgent interface {
	// CreatePost creates a new post record, optionally a reply.
	CreatePost(ctx context.Context, record bluesky.PostRecord) error
}

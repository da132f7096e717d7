package bot

import (
	"context"
	"log/slog"

	"github.com/dave-andersen/pibot/internal/bluesky"
	"github.com/dave-andersen/pibot/internal/jetstream"
)

// Pipeline consumes firehose events and replies to posts that mention the
// watched DID with a Pi search result. Events are handled one at a time in
// arrival order; a reply cycle (search, compose, post) finishes or fails
// before the next event is taken. Per-event failures are logged and the
// pipeline moves on; nothing an event does can stop the stream.
type Pipeline struct {
	watchDID  string
	extractor *Extractor
	search    SearchClient
	poster    PostingAgent
	logger    *slog.Logger
}

// NewPipeline creates a pipeline replying as the given agent to mentions of
// watchDID.
func NewPipeline(watchDID string, extractor *Extractor, search SearchClient, poster PostingAgent, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		watchDID:  watchDID,
		extractor: extractor,
		search:    search,
		poster:    poster,
		logger:    logger,
	}
}

// Run processes events until the channel is closed, then returns. Buffered
// events are drained after the producer stops. The context bounds the I/O of
// the event currently being handled.
func (p *Pipeline) Run(ctx context.Context, events <-chan *jetstream.Event) {
	var matched, replied int64
	for event := range events {
		if !MentionsDID(event, p.watchDID) {
			continue
		}
		matched++
		if p.handleMention(ctx, event) {
			replied++
		}
	}
	p.logger.Info("event stream drained", "posts_matched", matched, "replies_sent", replied)
}

// handleMention runs one reply cycle. Reports whether a reply was submitted.
func (p *Pipeline) handleMention(ctx context.Context, event *jetstream.Event) bool {
	uri := event.PostURI()
	text := event.Commit.Record.Text

	p.logger.Info("matched mention", "uri", uri, "text_preview", truncate(text, 100))

	query, ok := p.extractor.Extract(text)
	if !ok {
		p.logger.Info("no query in post, skipping", "uri", uri)
		return false
	}

	result, err := p.search.Search(ctx, query)
	if err != nil {
		p.logger.Error("search failed", "uri", uri, "query", query, "error", err)
		return false
	}

	record := bluesky.NewPost(ComposeResult(result, query, ReplyThanks))
	record.Tags = []string{"#pi"}
	reply := ResolveReply(event)
	record.Reply = &reply

	if err := p.poster.CreatePost(ctx, record); err != nil {
		p.logger.Error("failed to post reply", "uri", uri, "query", query, "error", err)
		return false
	}

	p.logger.Info("replied", "uri", uri, "query", query)
	return true
}

// truncate returns the first n bytes of s, appending "..." if truncated.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

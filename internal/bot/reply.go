package bot

import (
	"github.com/dave-andersen/pibot/internal/bluesky"
	"github.com/dave-andersen/pibot/internal/jetstream"
)

// ResolveReply computes the reply references for a reply to the post in
// event. The parent is always the triggering post itself. The root is the
// triggering post's own thread root when it is itself a reply, so every post
// in a chain shares one root without walking the chain; otherwise the
// triggering post starts the thread and is the root.
//
// The caller must pass a post-create event with a well-formed commit.
func ResolveReply(event *jetstream.Event) bluesky.ReplyRef {
	parent := bluesky.StrongRef{
		URI: event.PostURI(),
		CID: event.Commit.CID,
	}

	root := parent
	if reply := event.Commit.Record.Reply; reply != nil {
		root = reply.Root
	}

	return bluesky.ReplyRef{Root: root, Parent: parent}
}

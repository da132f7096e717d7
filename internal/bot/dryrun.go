package bot

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/dave-andersen/pibot/internal/bluesky"
)

// DryRunAgent is a PostingAgent that renders would-be posts to a writer
// instead of creating records. It lets the rest of the pipeline run
// unchanged in dry-run mode.
type DryRunAgent struct {
	Out io.Writer
}

// CreatePost prints the post instead of submitting it.
func (a *DryRunAgent) CreatePost(_ context.Context, record bluesky.PostRecord) error {
	header := color.New(color.FgYellow, color.Bold)
	if record.Reply != nil {
		header.Fprintf(a.Out, "[dry run] would reply to %s:\n", record.Reply.Parent.URI)
	} else {
		header.Fprintln(a.Out, "[dry run] would post:")
	}
	fmt.Fprintln(a.Out, record.Text)
	if len(record.Tags) > 0 {
		fmt.Fprintf(a.Out, "tags: %v\n", record.Tags)
	}
	return nil
}

package bot

import (
	"fmt"

	"github.com/dave-andersen/pibot/internal/pisearch"
)

// ReplyThanks is appended to replies in streaming mode. Standalone posts
// (random, today) pass an empty extra.
const ReplyThanks = "  Thanks for searching!"

// ComposeResult renders the post body for a search result. The display
// string names the query in the message; it usually equals the query but may
// differ (the today post searches "20060102" and displays "2006-01-02").
func ComposeResult(result *pisearch.Result, display string, extra string) string {
	if len(result.Matches) == 0 {
		return fmt.Sprintf(
			"Sorry, I couldn't find %s in the first 200m digits of Pi. It's me, not you; every number should be in Pi if I had more.",
			display)
	}

	entry := result.Matches[0]
	if entry.Status == "notfound" {
		return fmt.Sprintf(
			"Rats, I couldn't find %s in the first 200m digits of Pi. It's me, not you; every number should be in Pi if I had more.",
			display)
	}

	return fmt.Sprintf(
		"I found %s at position %d. It appears %d times in the first 200 million digits of pi.%s\n\nFind all the #pi you can eat at https://angio.net/pi/",
		display, entry.Position, len(result.Matches), extra)
}

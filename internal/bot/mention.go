package bot

import (
	"github.com/dave-andersen/pibot/internal/bluesky"
	"github.com/dave-andersen/pibot/internal/jetstream"
)

// MentionsDID reports whether the event is the creation of a post whose
// facets carry a mention of the given DID. Comparison is exact; handles and
// aliases are not resolved. Non-post events never match.
func MentionsDID(event *jetstream.Event, did string) bool {
	if !event.IsPostCreate() {
		return false
	}
	for _, facet := range event.Commit.Record.Facets {
		for _, feature := range facet.Features {
			if feature.Type == bluesky.FeatureMention && feature.DID == did {
				return true
			}
		}
	}
	return false
}

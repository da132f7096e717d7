package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dave-andersen/pibot/internal/bluesky"
	"github.com/dave-andersen/pibot/internal/jetstream"
)

const watchedDID = "did:plc:pisearchbot"

func postEvent(record *bluesky.PostRecord) *jetstream.Event {
	return &jetstream.Event{
		DID:  "did:plc:someauthor",
		Kind: "commit",
		Commit: &jetstream.Commit{
			Operation:  "create",
			Collection: bluesky.CollectionPost,
			RKey:       "3l3qo2vuowo2b",
			CID:        "bafyreib2rxk3rh6kzwq",
			Record:     record,
		},
	}
}

func mentionFacet(did string) bluesky.Facet {
	return bluesky.Facet{
		Index: bluesky.ByteSlice{ByteStart: 0, ByteEnd: 9},
		Features: []bluesky.FacetFeature{
			{Type: bluesky.FeatureMention, DID: did},
		},
	}
}

func TestMentionsDID(t *testing.T) {
	tests := []struct {
		name  string
		event *jetstream.Event
		want  bool
	}{
		{
			name:  "no facets",
			event: postEvent(&bluesky.PostRecord{Text: "hello world"}),
			want:  false,
		},
		{
			name: "mention of watched DID",
			event: postEvent(&bluesky.PostRecord{
				Text:   "@pisearch 42",
				Facets: []bluesky.Facet{mentionFacet(watchedDID)},
			}),
			want: true,
		},
		{
			name: "mention of someone else",
			event: postEvent(&bluesky.PostRecord{
				Text:   "@other hi",
				Facets: []bluesky.Facet{mentionFacet("did:plc:other")},
			}),
			want: false,
		},
		{
			name: "link facet only",
			event: postEvent(&bluesky.PostRecord{
				Text: "see https://example.com",
				Facets: []bluesky.Facet{{
					Features: []bluesky.FacetFeature{
						{Type: bluesky.FeatureLink, URI: "https://example.com"},
					},
				}},
			}),
			want: false,
		},
		{
			name: "mention in second facet",
			event: postEvent(&bluesky.PostRecord{
				Text: "cc @other @pisearch 42",
				Facets: []bluesky.Facet{
					mentionFacet("did:plc:other"),
					mentionFacet(watchedDID),
				},
			}),
			want: true,
		},
		{
			name: "case differences do not match",
			event: postEvent(&bluesky.PostRecord{
				Facets: []bluesky.Facet{mentionFacet("did:plc:PISEARCHBOT")},
			}),
			want: false,
		},
		{
			name: "non-commit event",
			event: &jetstream.Event{
				DID:  "did:plc:someauthor",
				Kind: "identity",
			},
			want: false,
		},
		{
			name: "delete operation",
			event: &jetstream.Event{
				DID:  "did:plc:someauthor",
				Kind: "commit",
				Commit: &jetstream.Commit{
					Operation:  "delete",
					Collection: bluesky.CollectionPost,
					RKey:       "3l3qo2vuowo2b",
				},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MentionsDID(tt.event, watchedDID))
		})
	}
}

package jetstream

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dave-andersen/pibot/internal/bluesky"
)

// Event is a single message from the Jetstream firehose.
type Event struct {
	DID    string  `json:"did"`
	TimeUS int64   `json:"time_us"`
	Kind   string  `json:"kind"`
	Commit *Commit `json:"commit,omitempty"`
}

// Commit is the commit payload of a "commit" kind event.
type Commit struct {
	Rev        string
	Operation  string
	Collection string
	RKey       string
	CID        string
	Record     *bluesky.PostRecord
}

// IsPostCreate reports whether the event is the creation of a new post
// record. Deletes, updates, and non-post collections all return false.
func (e *Event) IsPostCreate() bool {
	return e.Kind == "commit" &&
		e.Commit != nil &&
		e.Commit.Operation == "create" &&
		e.Commit.Collection == bluesky.CollectionPost &&
		e.Commit.Record != nil
}

// PostURI returns the AT-URI of the record the commit refers to, e.g.
// at://did:plc:abc/app.bsky.feed.post/3l3qo2vuowo2b.
func (e *Event) PostURI() string {
	return fmt.Sprintf("at://%s/%s/%s", e.DID, e.Commit.Collection, e.Commit.RKey)
}

func parseEvent(data []byte) (*Event, error) {
	var raw struct {
		DID    string          `json:"did"`
		TimeUS int64           `json:"time_us"`
		Kind   string          `json:"kind"`
		Commit json.RawMessage `json:"commit,omitempty"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}

	event := &Event{
		DID:    raw.DID,
		TimeUS: raw.TimeUS,
		Kind:   raw.Kind,
	}

	if raw.Kind == "commit" && len(raw.Commit) > 0 {
		var rc struct {
			Rev        string          `json:"rev"`
			Operation  string          `json:"operation"`
			Collection string          `json:"collection"`
			RKey       string          `json:"rkey"`
			Record     json.RawMessage `json:"record,omitempty"`
			CID        string          `json:"cid"`
		}
		if err := json.Unmarshal(raw.Commit, &rc); err != nil {
			return nil, fmt.Errorf("unmarshal commit: %w", err)
		}

		commit := &Commit{
			Rev:        rc.Rev,
			Operation:  rc.Operation,
			Collection: rc.Collection,
			RKey:       rc.RKey,
			CID:        rc.CID,
		}

		if len(rc.Record) > 0 && strings.HasPrefix(rc.Collection, bluesky.CollectionPost) {
			var record bluesky.PostRecord
			if err := json.Unmarshal(rc.Record, &record); err != nil {
				return nil, fmt.Errorf("unmarshal post record: %w", err)
			}
			commit.Record = &record
		}

		event.Commit = commit
	}

	return event, nil
}

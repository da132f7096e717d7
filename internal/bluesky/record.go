package bluesky

import "time"

// AT Protocol NSIDs used by the bot.
const (
	CollectionPost = "app.bsky.feed.post"

	FeatureMention = "app.bsky.richtext.facet#mention"
	FeatureLink    = "app.bsky.richtext.facet#link"
	FeatureTag     = "app.bsky.richtext.facet#tag"
)

// PostRecord is the body of an app.bsky.feed.post record. The same shape is
// used for posts read off the firehose and posts the bot creates.
type PostRecord struct {
	Type      string    `json:"$type"`
	Text      string    `json:"text"`
	CreatedAt string    `json:"createdAt"`
	Langs     []string  `json:"langs,omitempty"`
	Facets    []Facet   `json:"facets,omitempty"`
	Reply     *ReplyRef `json:"reply,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
}

// Facet is a markup annotation over a byte range of the post text.
type Facet struct {
	Index    ByteSlice      `json:"index"`
	Features []FacetFeature `json:"features"`
}

// ByteSlice is a half-open [ByteStart, ByteEnd) range into the UTF-8 text.
type ByteSlice struct {
	ByteStart int `json:"byteStart"`
	ByteEnd   int `json:"byteEnd"`
}

// FacetFeature is one typed feature of a facet. Exactly one of DID, URI, or
// Tag is set depending on Type.
type FacetFeature struct {
	Type string `json:"$type"`
	DID  string `json:"did,omitempty"`
	URI  string `json:"uri,omitempty"`
	Tag  string `json:"tag,omitempty"`
}

// ReplyRef contains references to the parent and root of a reply chain.
type ReplyRef struct {
	Root   StrongRef `json:"root"`
	Parent StrongRef `json:"parent"`
}

// StrongRef is a reference to a specific version of a record.
type StrongRef struct {
	URI string `json:"uri"`
	CID string `json:"cid"`
}

// NewPost builds a post record with the given text and a current timestamp.
func NewPost(text string) PostRecord {
	return PostRecord{
		Type:      CollectionPost,
		Text:      text,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

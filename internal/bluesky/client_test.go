package bluesky

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPDS(t *testing.T, createRecord http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/xrpc/com.atproto.server.createSession", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "pisearch.bsky.social", body["identifier"])
		w.Write([]byte(`{"accessJwt":"test-jwt","did":"did:plc:pisearchbot","handle":"pisearch.bsky.social"}`))
	})
	if createRecord != nil {
		mux.HandleFunc("/xrpc/com.atproto.repo.createRecord", createRecord)
	}
	return httptest.NewServer(mux)
}

func TestLogin(t *testing.T) {
	server := newTestPDS(t, nil)
	defer server.Close()

	client := NewClient(server.URL)
	require.NoError(t, client.Login(context.Background(), "pisearch.bsky.social", "app-password"))

	assert.Equal(t, "did:plc:pisearchbot", client.DID())
	assert.Equal(t, "pisearch.bsky.social", client.Handle())
}

func TestCreatePost(t *testing.T) {
	var gotAuth string
	var gotBody createRecordRequest
	server := newTestPDS(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"uri":"at://did:plc:pisearchbot/app.bsky.feed.post/abc","cid":"bafynew"}`))
	})
	defer server.Close()

	client := NewClient(server.URL)
	require.NoError(t, client.Login(context.Background(), "pisearch.bsky.social", "app-password"))

	record := NewPost("I found 42 at position 92.")
	record.Tags = []string{"#pi"}
	record.Reply = &ReplyRef{
		Root:   StrongRef{URI: "at://did:plc:root/app.bsky.feed.post/r", CID: "bafyroot"},
		Parent: StrongRef{URI: "at://did:plc:parent/app.bsky.feed.post/p", CID: "bafyparent"},
	}
	require.NoError(t, client.CreatePost(context.Background(), record))

	assert.Equal(t, "Bearer test-jwt", gotAuth)
	assert.Equal(t, "did:plc:pisearchbot", gotBody.Repo)
	assert.Equal(t, CollectionPost, gotBody.Collection)

	sent, err := json.Marshal(gotBody.Record)
	require.NoError(t, err)
	var sentRecord PostRecord
	require.NoError(t, json.Unmarshal(sent, &sentRecord))
	assert.Equal(t, CollectionPost, sentRecord.Type)
	assert.Equal(t, "I found 42 at position 92.", sentRecord.Text)
	assert.Equal(t, []string{"#pi"}, sentRecord.Tags)
	require.NotNil(t, sentRecord.Reply)
	assert.Equal(t, "bafyroot", sentRecord.Reply.Root.CID)
	assert.NotEmpty(t, sentRecord.CreatedAt)
}

func TestCreatePostRequiresLogin(t *testing.T) {
	client := NewClient("")
	err := client.CreatePost(context.Background(), NewPost("hi"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not authenticated")
}

func TestCreatePostAPIError(t *testing.T) {
	server := newTestPDS(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"RateLimitExceeded"}`, http.StatusTooManyRequests)
	})
	defer server.Close()

	client := NewClient(server.URL)
	require.NoError(t, client.Login(context.Background(), "pisearch.bsky.social", "app-password"))

	err := client.CreatePost(context.Background(), NewPost("hi"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

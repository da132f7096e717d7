package bluesky

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFacetsLink(t *testing.T) {
	text := "Find all the #pi you can eat at https://angio.net/pi/"

	facets := DetectFacets(text)
	require.Len(t, facets, 1)

	f := facets[0]
	assert.Equal(t, "https://angio.net/pi/", text[f.Index.ByteStart:f.Index.ByteEnd])
	require.Len(t, f.Features, 1)
	assert.Equal(t, FeatureLink, f.Features[0].Type)
	assert.Equal(t, "https://angio.net/pi/", f.Features[0].URI)
}

func TestDetectFacetsNoLinks(t *testing.T) {
	assert.Empty(t, DetectFacets("no links in here"))
}

func TestDetectFacetsTrailingPunctuation(t *testing.T) {
	facets := DetectFacets("see https://example.com/x. Next sentence.")
	require.Len(t, facets, 1)
	assert.Equal(t, "https://example.com/x", facets[0].Features[0].URI)
}

func TestDetectFacetsMultipleLinks(t *testing.T) {
	text := "a https://one.example and b http://two.example!"
	facets := DetectFacets(text)
	require.Len(t, facets, 2)
	assert.Equal(t, "https://one.example", facets[0].Features[0].URI)
	assert.Equal(t, "http://two.example", facets[1].Features[0].URI)
}

func TestDetectFacetsByteOffsetsWithMultibyteText(t *testing.T) {
	text := "π is everywhere: https://angio.net/pi/"
	facets := DetectFacets(text)
	require.Len(t, facets, 1)
	f := facets[0]
	assert.Equal(t, "https://angio.net/pi/", text[f.Index.ByteStart:f.Index.ByteEnd])
}

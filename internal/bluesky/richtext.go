package bluesky

import (
	"regexp"
	"strings"
)

var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// DetectFacets scans post text for URLs and returns link facets with byte
// offsets into the UTF-8 text, as required by app.bsky.richtext.facet.
// Trailing punctuation that is more likely sentence punctuation than part of
// the URL is excluded from the facet range.
func DetectFacets(text string) []Facet {
	var facets []Facet
	for _, loc := range urlPattern.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		end = start + len(trimTrailingPunct(text[start:end]))
		if end <= start {
			continue
		}
		facets = append(facets, Facet{
			Index: ByteSlice{ByteStart: start, ByteEnd: end},
			Features: []FacetFeature{{
				Type: FeatureLink,
				URI:  text[start:end],
			}},
		})
	}
	return facets
}

func trimTrailingPunct(s string) string {
	for {
		trimmed := strings.TrimRight(s, `.,;:!?'"`)
		// A closing paren is kept if the URL contains a matching opener,
		// e.g. wikipedia-style paths.
		if strings.HasSuffix(trimmed, ")") && !strings.Contains(trimmed[:len(trimmed)-1], "(") {
			trimmed = trimmed[:len(trimmed)-1]
		}
		if trimmed == s {
			return s
		}
		s = trimmed
	}
}

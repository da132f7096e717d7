package bot

import (
	"regexp"
	"strings"
)

// DefaultTrigger is the marker that makes a post a search request.
const DefaultTrigger = "@pisearch"

// Extractor pulls a numeric search query out of free post text.
type Extractor struct {
	pattern *regexp.Regexp
}

// NewExtractor compiles an extractor for the given trigger token. The match
// is case-sensitive and only the first occurrence of the trigger counts. If
// trigger is empty, DefaultTrigger is used.
func NewExtractor(trigger string) *Extractor {
	if trigger == "" {
		trigger = DefaultTrigger
	}
	return &Extractor{
		pattern: regexp.MustCompile(regexp.QuoteMeta(trigger) + `[^\d]*(\d[\d-]*)`),
	}
}

// Extract returns the normalized digit query from text, or false if the text
// contains no trigger or the trigger is not followed by any digits. The
// captured run may contain hyphen separators ("123-456"); they are stripped.
func (e *Extractor) Extract(text string) (string, bool) {
	m := e.pattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	number := strings.ReplaceAll(m[1], "-", "")
	if number == "" {
		return "", false
	}
	return number, true
}

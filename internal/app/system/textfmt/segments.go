package textfmt

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html/atom"
)

// Segment is a run of message text. Renderers style Emphasized runs; the
// text itself is always plain and must be escaped by the renderer.
type Segment struct {
	Text       string `json:"text"`
	Emphasized bool   `json:"emphasized"`
}

var (
	quoted = regexp.MustCompile(`"([^"]+)"`)

	// bluemonday policies are safe for concurrent use once built.
	stripPolicy = bluemonday.StrictPolicy()

	tagLike     = regexp.MustCompile(`</?([A-Za-z][A-Za-z0-9-]*)[^<>]*>`)
	angleEscape = strings.NewReplacer("<", "&lt;", ">", "&gt;")
)

// PlainText removes any markup from s and returns unescaped text.
// Bracketed words HTML has no name for ("<Acme>") are text, not markup,
// and are kept.
func PlainText(s string) string {
	return html.UnescapeString(stripPolicy.Sanitize(keepUnknownTags(s)))
}

func keepUnknownTags(s string) string {
	return tagLike.ReplaceAllStringFunc(s, func(m string) string {
		name := tagLike.FindStringSubmatch(m)[1]
		if atom.Lookup([]byte(strings.ToLower(name))) != 0 {
			return m
		}
		return angleEscape.Replace(m)
	})
}

// Highlight splits a notification message into segments, emphasizing every
// double-quoted span. Markup in the source is stripped first; nothing here
// ever produces HTML.
func Highlight(message string) []Segment {
	text := PlainText(message)
	if text == "" {
		return []Segment{}
	}

	var out []Segment
	last := 0
	for _, m := range quoted.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			out = append(out, Segment{Text: text[last:m[0]]})
		}
		out = append(out, Segment{Text: text[m[2]:m[3]], Emphasized: true})
		last = m[1]
	}
	if last < len(text) {
		out = append(out, Segment{Text: text[last:]})
	}
	return out
}

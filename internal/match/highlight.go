package match

import (
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextWindow is the number of runes shown on each side of a match.
const contextWindow = 40

// Segment is a run of text, flagged when it is shared with the query.
type Segment struct {
	Text    string `json:"text"`
	Matched bool   `json:"matched"`
}

// HighlightMatches splits text into runs that are shared with the query and
// runs that are not, for presentation. Pure formatting, not matching logic.
func HighlightMatches(text, query string) []Segment {
	if text == "" {
		return nil
	}
	if query == "" {
		return []Segment{{Text: text}}
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(query, text, false)
	dmp.DiffCleanupSemantic(diffs)

	segments := make([]Segment, 0, len(diffs))
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			segments = append(segments, Segment{Text: d.Text, Matched: true})
		case diffmatchpatch.DiffInsert:
			// Present in text but not in the query.
			segments = append(segments, Segment{Text: d.Text})
		}
		// Deletions exist only in the query and have no run in text.
	}
	return segments
}

// ExtractContext returns a window of text around the first case-insensitive
// occurrence of needle, with ellipses marking truncation. When needle does
// not occur, the head of the text is returned. The window is measured in
// runes, so multibyte text is never sliced mid-character.
func ExtractContext(text, needle string, window int) string {
	if text == "" {
		return ""
	}
	runes := []rune(text)
	idx := 0
	if needle != "" {
		lower := strings.ToLower(text)
		// ToLower maps rune to rune, so rune offsets carry over to text.
		if i := strings.Index(lower, strings.ToLower(needle)); i >= 0 {
			idx = utf8.RuneCountInString(lower[:i])
		}
	}
	start := idx - window
	if start < 0 {
		start = 0
	}
	end := idx + utf8.RuneCountInString(needle) + window
	if end > len(runes) {
		end = len(runes)
	}
	out := string(runes[start:end])
	if start > 0 {
		out = "..." + out
	}
	if end < len(runes) {
		out = out + "..."
	}
	return out
}

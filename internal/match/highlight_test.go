package match

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlightMatches(t *testing.T) {
	segments := HighlightMatches("Your HP is very low", "Your HP is low")

	var rebuilt strings.Builder
	matched := false
	for _, s := range segments {
		rebuilt.WriteString(s.Text)
		if s.Matched {
			matched = true
		}
	}
	// Segments reassemble the original text and at least one run is shared.
	assert.Equal(t, "Your HP is very low", rebuilt.String())
	assert.True(t, matched)
}

func TestHighlightMatchesEdgeCases(t *testing.T) {
	assert.Nil(t, HighlightMatches("", "query"))

	segments := HighlightMatches("some text", "")
	require.Len(t, segments, 1)
	assert.False(t, segments[0].Matched)
	assert.Equal(t, "some text", segments[0].Text)
}

func TestExtractContext(t *testing.T) {
	text := strings.Repeat("a", 100) + "NEEDLE" + strings.Repeat("b", 100)

	out := ExtractContext(text, "needle", 10)
	assert.Equal(t, "..."+strings.Repeat("a", 10)+"NEEDLE"+strings.Repeat("b", 10)+"...", out)

	// Needle missing: head of text, no leading ellipsis.
	out = ExtractContext("short text", "zzz", 4)
	assert.True(t, strings.HasPrefix(out, "shor"))

	assert.Equal(t, "", ExtractContext("", "x", 10))
}

func TestExtractContextMultibyte(t *testing.T) {
	text := strings.Repeat("あ", 50) + "体力" + strings.Repeat("い", 50)

	out := ExtractContext(text, "体力", 5)
	// Window edges fall on rune boundaries, never mid-character.
	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, "..."+strings.Repeat("あ", 5)+"体力"+strings.Repeat("い", 5)+"...", out)
}

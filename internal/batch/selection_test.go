package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionToggleIdempotent(t *testing.T) {
	s := NewSelection()

	assert.True(t, s.Toggle("a"))
	assert.Equal(t, 1, s.Count())

	// Toggling twice returns the item to unselected.
	assert.False(t, s.Toggle("a"))
	assert.Equal(t, 0, s.Count())
	assert.False(t, s.IsSelected("a"))
}

func TestSelectionSelectAllAndClear(t *testing.T) {
	s := NewSelection()
	s.Toggle("a")

	s.SelectAll([]string{"a", "b", "c"})
	assert.Equal(t, 3, s.Count())
	assert.Equal(t, []string{"a", "b", "c"}, s.Items())

	s.Clear()
	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.Items())
}

func TestSelectionCountIsCardinality(t *testing.T) {
	s := NewSelection()
	s.Toggle("a")
	s.Toggle("b")
	s.Toggle("a")
	s.Toggle("b")
	s.Toggle("b")
	assert.Equal(t, 1, s.Count())
	assert.Equal(t, []string{"b"}, s.Items())
}

func TestSelectAllDeduplicates(t *testing.T) {
	s := NewSelection()
	s.SelectAll([]string{"a", "a", "b"})
	assert.Equal(t, 2, s.Count())
}

package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/wordgrid/internal/model"
)

func span(r1, c1, r2, c2 int) model.Span {
	return model.Span{Start: model.Position{Row: r1, Col: c1}, End: model.Position{Row: r2, Col: c2}}
}

func TestCollectorKeepsDiscoveryOrder(t *testing.T) {
	c := New()
	c.Add(model.Match{Span: span(0, 0, 0, 3), Word: "help"})
	c.Add(model.Match{Span: span(0, 0, 2, 0), Word: "ham"})
	c.Add(model.Match{Span: span(1, 0, 1, 2), Word: "ace"})

	matches := c.Matches()
	require.Len(t, matches, 3)
	assert.Equal(t, []string{"help", "ham", "ace"}, []string{matches[0].Word, matches[1].Word, matches[2].Word})
}

func TestCollectorLastWriteWins(t *testing.T) {
	c := New()
	c.Add(model.Match{Span: span(0, 0, 0, 3), Word: "help", Definition: "first"})
	c.Add(model.Match{Span: span(1, 0, 1, 2), Word: "ace"})
	c.Add(model.Match{Span: span(0, 0, 0, 3), Word: "help", Definition: "second"})

	matches := c.Matches()
	require.Len(t, matches, 2)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, "second", matches[0].Definition)
	assert.Equal(t, "ace", matches[1].Word)
}

func TestCollectorKeepsOverlappingSpans(t *testing.T) {
	c := New()
	c.Add(model.Match{Span: span(0, 0, 0, 3), Word: "stop"})
	c.Add(model.Match{Span: span(0, 3, 0, 0), Word: "pots"})
	c.Add(model.Match{Span: span(0, 0, 0, 2), Word: "sto"})

	assert.Equal(t, 3, c.Len())
}

func TestHighlights(t *testing.T) {
	c := New()
	c.Add(model.Match{Span: span(0, 0, 0, 2), Word: "tab"})
	c.Add(model.Match{Span: span(2, 0, 0, 0), Word: "bat"})

	mask := c.Highlights(3, 3)

	assert.Equal(t, [][]bool{
		{true, true, true},
		{true, false, false},
		{true, false, false},
	}, mask)
}

func TestHighlightsEmpty(t *testing.T) {
	mask := New().Highlights(2, 3)

	require.Len(t, mask, 2)
	for _, row := range mask {
		assert.Equal(t, []bool{false, false, false}, row)
	}
}

func TestHighlightsIgnoreOutOfBounds(t *testing.T) {
	c := New()
	c.Add(model.Match{Span: span(0, 1, 0, 4), Word: "long"})

	mask := c.Highlights(1, 3)

	assert.Equal(t, [][]bool{{false, true, true}}, mask)
}

func TestReset(t *testing.T) {
	c := New()
	c.Add(model.Match{Span: span(0, 0, 0, 2), Word: "tab"})
	c.Reset()

	assert.Zero(t, c.Len())
	assert.Empty(t, c.Matches())
	assert.Equal(t, [][]bool{{false, false, false}}, c.Highlights(1, 3))
}

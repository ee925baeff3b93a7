// Package collector reduces scanned matches to the reported set, keyed by span.
package collector

import "github.com/mcoot/wordgrid/internal/model"

// Collector keeps one Match per span in discovery order. A later match on an
// already-seen span replaces the earlier one in place. Distinct spans are never
// merged, even when they share cells.
type Collector struct {
	order   []model.Span
	matches map[model.Span]model.Match
}

// New creates an empty Collector
func New() *Collector {
	return &Collector{
		matches: make(map[model.Span]model.Match),
	}
}

// Add records a match, overwriting any earlier match with the same span
func (c *Collector) Add(m model.Match) {
	if _, seen := c.matches[m.Span]; !seen {
		c.order = append(c.order, m.Span)
	}
	c.matches[m.Span] = m
}

// Len returns the number of distinct spans collected
func (c *Collector) Len() int {
	return len(c.order)
}

// Matches returns the collected matches in discovery order
func (c *Collector) Matches() []model.Match {
	out := make([]model.Match, 0, len(c.order))
	for _, sp := range c.order {
		out = append(out, c.matches[sp])
	}
	return out
}

// Highlights returns a fresh rows x cols mask with every cell of every
// collected span set. Cells outside the bounds are ignored.
func (c *Collector) Highlights(rows, cols int) [][]bool {
	mask := make([][]bool, rows)
	for i := range mask {
		mask[i] = make([]bool, cols)
	}
	for _, sp := range c.order {
		for _, pos := range sp.Cells() {
			if pos.Row >= 0 && pos.Row < rows && pos.Col >= 0 && pos.Col < cols {
				mask[pos.Row][pos.Col] = true
			}
		}
	}
	return mask
}

// Reset discards everything collected so far
func (c *Collector) Reset() {
	c.order = c.order[:0]
	clear(c.matches)
}

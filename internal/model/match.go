package model

import (
	"fmt"
	"time"
)

// Direction is one of the four straight-line reading directions
type Direction int

const (
	DirectionRight Direction = iota
	DirectionDown
	DirectionLeft
	DirectionUp
)

// Directions lists the scan order: right, down, left, up
var Directions = []Direction{DirectionRight, DirectionDown, DirectionLeft, DirectionUp}

// Delta returns the row and column step for the direction
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case DirectionRight:
		return 0, 1
	case DirectionDown:
		return 1, 0
	case DirectionLeft:
		return 0, -1
	case DirectionUp:
		return -1, 0
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case DirectionRight:
		return "right"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionUp:
		return "up"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection converts a direction name back to a Direction
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Span is an inclusive pair of endpoints on one row or one column
type Span struct {
	Start Position
	End   Position
}

// Len returns the number of cells covered by the span
func (s Span) Len() int {
	dr := s.End.Row - s.Start.Row
	dc := s.End.Col - s.Start.Col
	return max(abs(dr), abs(dc)) + 1
}

// Cells returns every position from Start to End inclusive
func (s Span) Cells() []Position {
	stepRow := sign(s.End.Row - s.Start.Row)
	stepCol := sign(s.End.Col - s.Start.Col)

	n := s.Len()
	cells := make([]Position, 0, n)
	pos := s.Start
	for i := 0; i < n; i++ {
		cells = append(cells, pos)
		pos = Position{Row: pos.Row + stepRow, Col: pos.Col + stepCol}
	}
	return cells
}

func (s Span) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", s.Start.Row, s.Start.Col, s.End.Row, s.End.Col)
}

// Candidate is a lexicon-confirmed letter run produced while scanning
type Candidate struct {
	Span      Span
	Word      string
	Direction Direction
}

// Match is a candidate that also passed the definition check
type Match struct {
	Span       Span
	Word       string
	Direction  Direction
	Definition string
}

// ScanResult is the outcome of one scan over a grid
type ScanResult struct {
	GridID     GridID
	Rows       int
	Cols       int
	Matches    []Match
	Highlights [][]bool // Highlights[row][col] is true when the cell is part of a match
	Candidates int      // Number of candidates that reached the definition check
	StartedAt  time.Time
	FinishedAt time.Time
}

// IsHighlighted reports whether the cell at pos belongs to any match
func (r *ScanResult) IsHighlighted(pos Position) bool {
	if pos.Row < 0 || pos.Row >= len(r.Highlights) {
		return false
	}
	row := r.Highlights[pos.Row]
	if pos.Col < 0 || pos.Col >= len(row) {
		return false
	}
	return row[pos.Col]
}

// Words returns the matched words in discovery order
func (r *ScanResult) Words() []string {
	words := make([]string, len(r.Matches))
	for i, m := range r.Matches {
		words[i] = m.Word
	}
	return words
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

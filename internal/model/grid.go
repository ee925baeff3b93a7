package model

import (
	"strings"
	"time"
	"unicode"
)

// GridID uniquely identifies a stored grid
type GridID string

// Grid size limits
const (
	MinGridSize     = 1
	MaxGridSize     = 26
	DefaultGridSize = 5
)

// Position identifies a cell on the grid
type Position struct {
	Row int // 0-indexed from top
	Col int // 0-indexed from left
}

// Grid is a rows x cols store of uppercase letters. A zero rune is an empty cell.
type Grid struct {
	ID        GridID
	Rows      int
	Cols      int
	Cells     [][]rune // Row-major: Cells[row][col], 0 means empty
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateSize checks that the dimensions are within the supported range
func ValidateSize(rows, cols int) error {
	if rows < MinGridSize || rows > MaxGridSize || cols < MinGridSize || cols > MaxGridSize {
		return ErrInvalidGridSize
	}
	return nil
}

// NewGrid creates an empty grid of the given size
func NewGrid(id GridID, rows, cols int) *Grid {
	cells := make([][]rune, rows)
	for i := range cells {
		cells[i] = make([]rune, cols)
	}
	return &Grid{
		ID:    id,
		Rows:  rows,
		Cols:  cols,
		Cells: cells,
	}
}

// ParseGrid builds a grid from row strings. '.', '-', '_' and ' ' mark empty
// cells; letters are upper-cased. Short rows are padded with empty cells.
func ParseGrid(id GridID, rows []string) (*Grid, error) {
	cols := 0
	for _, r := range rows {
		if n := len([]rune(r)); n > cols {
			cols = n
		}
	}
	if err := ValidateSize(len(rows), cols); err != nil {
		return nil, err
	}

	g := NewGrid(id, len(rows), cols)
	if err := g.Fill(rows); err != nil {
		return nil, err
	}
	return g, nil
}

// Fill overwrites the grid contents from row strings using the ParseGrid
// conventions. Rows or columns beyond the grid bounds are rejected.
func (g *Grid) Fill(rows []string) error {
	if len(rows) > g.Rows {
		return ErrInvalidGridSize
	}
	next := NewGrid(g.ID, g.Rows, g.Cols).Cells
	for row, line := range rows {
		runes := []rune(line)
		if len(runes) > g.Cols {
			return ErrInvalidGridSize
		}
		for col, r := range runes {
			if IsEmptyMarker(r) {
				continue
			}
			upper := unicode.ToUpper(r)
			if !IsLetter(upper) {
				return ErrInvalidLetter
			}
			next[row][col] = upper
		}
	}
	g.Cells = next
	return nil
}

// IsEmptyMarker reports whether r denotes an empty cell in textual grids
func IsEmptyMarker(r rune) bool {
	return r == '.' || r == '-' || r == '_' || r == ' '
}

// IsLetter reports whether r is an uppercase A-Z letter
func IsLetter(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// Dimensions returns the number of rows and columns
func (g *Grid) Dimensions() (rows, cols int) {
	return g.Rows, g.Cols
}

// LetterAt returns the letter at the given position, or 0 if the cell is
// empty or the position is outside the grid
func (g *Grid) LetterAt(pos Position) rune {
	if !g.IsValidPosition(pos) {
		return 0
	}
	return g.Cells[pos.Row][pos.Col]
}

// Set places a letter at the given position
func (g *Grid) Set(pos Position, letter rune) {
	if g.IsValidPosition(pos) {
		g.Cells[pos.Row][pos.Col] = letter
	}
}

// Clear empties the cell at the given position
func (g *Grid) Clear(pos Position) {
	g.Set(pos, 0)
}

// IsEmpty returns true if the cell at the given position is empty
func (g *Grid) IsEmpty(pos Position) bool {
	return g.LetterAt(pos) == 0
}

// IsValidPosition returns true if the position is within bounds
func (g *Grid) IsValidPosition(pos Position) bool {
	return pos.Row >= 0 && pos.Row < g.Rows && pos.Col >= 0 && pos.Col < g.Cols
}

// EmptyCount returns the number of empty cells
func (g *Grid) EmptyCount() int {
	count := 0
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if g.Cells[row][col] == 0 {
				count++
			}
		}
	}
	return count
}

// Resized returns a copy of the grid with new dimensions. Letters inside the
// overlapping region are kept.
func (g *Grid) Resized(rows, cols int) *Grid {
	next := NewGrid(g.ID, rows, cols)
	next.CreatedAt = g.CreatedAt
	next.UpdatedAt = g.UpdatedAt
	for row := 0; row < min(rows, g.Rows); row++ {
		copy(next.Cells[row], g.Cells[row][:min(cols, g.Cols)])
	}
	return next
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	return g.Resized(g.Rows, g.Cols)
}

// Lines renders each row as a string, using '.' for empty cells
func (g *Grid) Lines() []string {
	lines := make([]string, g.Rows)
	var sb strings.Builder
	for row := 0; row < g.Rows; row++ {
		sb.Reset()
		for col := 0; col < g.Cols; col++ {
			if r := g.Cells[row][col]; r != 0 {
				sb.WriteRune(r)
			} else {
				sb.WriteByte('.')
			}
		}
		lines[row] = sb.String()
	}
	return lines
}

package response

import (
	"time"

	"github.com/mcoot/wordgrid/internal/model"
)

// Health is the response for the health endpoint
type Health struct {
	Status string `json:"status"`
}

// Grid represents a grid in API responses. Each row is a string with '.'
// for empty cells.
type Grid struct {
	ID        string    `json:"id"`
	Rows      int       `json:"rows"`
	Cols      int       `json:"cols"`
	Cells     []string  `json:"cells"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GridFromModel converts a model.Grid to a response Grid
func GridFromModel(g *model.Grid) Grid {
	return Grid{
		ID:        string(g.ID),
		Rows:      g.Rows,
		Cols:      g.Cols,
		Cells:     g.Lines(),
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

// Cell is the response for single-cell edits. Value is empty when the cell
// was cleared.
type Cell struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Value string `json:"value"`
}

// CellFromLetter builds a Cell response from a position and stored letter
func CellFromLetter(pos model.Position, letter rune) Cell {
	c := Cell{Row: pos.Row, Col: pos.Col}
	if letter != 0 {
		c.Value = string(letter)
	}
	return c
}

// Position is a grid coordinate
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Match represents one discovered word
type Match struct {
	Word       string   `json:"word"`
	Direction  string   `json:"direction"`
	Start      Position `json:"start"`
	End        Position `json:"end"`
	Definition string   `json:"definition,omitempty"`
}

// MatchFromModel converts a model.Match
func MatchFromModel(m model.Match) Match {
	return Match{
		Word:       m.Word,
		Direction:  m.Direction.String(),
		Start:      Position{Row: m.Span.Start.Row, Col: m.Span.Start.Col},
		End:        Position{Row: m.Span.End.Row, Col: m.Span.End.Col},
		Definition: m.Definition,
	}
}

// ScanResult represents the outcome of a scan
type ScanResult struct {
	GridID     string    `json:"grid_id"`
	Rows       int       `json:"rows"`
	Cols       int       `json:"cols"`
	Matches    []Match   `json:"matches"`
	Highlights []string  `json:"highlights"`
	Candidates int       `json:"candidates"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	DurationMS int64     `json:"duration_ms"`
}

// ScanResultFromModel converts a model.ScanResult. Highlights are rendered
// one string per row, '#' for highlighted cells and '.' otherwise.
func ScanResultFromModel(r *model.ScanResult) ScanResult {
	matches := make([]Match, len(r.Matches))
	for i, m := range r.Matches {
		matches[i] = MatchFromModel(m)
	}

	highlights := make([]string, len(r.Highlights))
	for i, row := range r.Highlights {
		line := make([]byte, len(row))
		for j, on := range row {
			if on {
				line[j] = '#'
			} else {
				line[j] = '.'
			}
		}
		highlights[i] = string(line)
	}

	return ScanResult{
		GridID:     string(r.GridID),
		Rows:       r.Rows,
		Cols:       r.Cols,
		Matches:    matches,
		Highlights: highlights,
		Candidates: r.Candidates,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		DurationMS: r.FinishedAt.Sub(r.StartedAt).Milliseconds(),
	}
}

// LexiconStatus reports whether the lexicon is ready
type LexiconStatus struct {
	Loaded    bool `json:"loaded"`
	WordCount int  `json:"word_count"`
}

// WordLookup is the response for a single-word check
type WordLookup struct {
	Word       string `json:"word"`
	InLexicon  bool   `json:"in_lexicon"`
	Defined    bool   `json:"defined"`
	Definition string `json:"definition,omitempty"`
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mcoot/wordgrid/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Solution is the result of an offline solve
type Solution struct {
	Grid   response.Grid       `json:"grid"`
	Result response.ScanResult `json:"result"`
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == OutputJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == OutputJSON {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Health:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	case response.Grid:
		o.printGrid(v)
	case response.Cell:
		o.printCell(v)
	case response.ScanResult:
		o.printScanResult(v)
	case response.LexiconStatus:
		o.printLexiconStatus(v)
	case response.WordLookup:
		o.printWordLookup(v)
	case Solution:
		o.printBoard(v.Grid.Cells, v.Result.Highlights)
		o.printMatches(v.Result)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printGrid(g response.Grid) {
	fmt.Fprintf(o.w, "Grid: %s\n", g.ID)
	fmt.Fprintf(o.w, "Size: %dx%d\n", g.Rows, g.Cols)
	o.printBoard(g.Cells, nil)
}

func (o *Output) printCell(c response.Cell) {
	if c.Value == "" {
		fmt.Fprintf(o.w, "Cell (%d,%d) cleared\n", c.Row, c.Col)
		return
	}
	fmt.Fprintf(o.w, "Cell (%d,%d): %s\n", c.Row, c.Col, c.Value)
}

func (o *Output) printScanResult(r response.ScanResult) {
	fmt.Fprintf(o.w, "Grid: %s\n", r.GridID)
	o.printMatches(r)
	if len(r.Matches) > 0 {
		fmt.Fprintln(o.w, "\nHighlights:")
		for _, line := range r.Highlights {
			fmt.Fprintf(o.w, "  %s\n", line)
		}
	}
}

func (o *Output) printMatches(r response.ScanResult) {
	fmt.Fprintf(o.w, "Words (%d of %d candidates):\n", len(r.Matches), r.Candidates)
	for _, m := range r.Matches {
		fmt.Fprintf(o.w, "  - %s (%d,%d)-(%d,%d) %s",
			m.Word, m.Start.Row, m.Start.Col, m.End.Row, m.End.Col, m.Direction)
		if m.Definition != "" {
			fmt.Fprintf(o.w, ": %s", m.Definition)
		}
		fmt.Fprintln(o.w)
	}
}

// printBoard draws rows of '.'-for-empty strings. Highlighted cells, when
// given, are bracketed.
func (o *Output) printBoard(rows []string, highlights []string) {
	if len(rows) == 0 {
		return
	}
	cols := len(rows[0])

	fmt.Fprint(o.w, "    ")
	for col := 0; col < cols; col++ {
		fmt.Fprintf(o.w, "%2d ", col)
	}
	fmt.Fprintln(o.w)

	for row, line := range rows {
		fmt.Fprintf(o.w, "%2d |", row)
		for col := 0; col < len(line); col++ {
			cell := line[col]
			if row < len(highlights) && col < len(highlights[row]) && highlights[row][col] == '#' {
				fmt.Fprintf(o.w, "[%c]", cell)
			} else {
				fmt.Fprintf(o.w, " %c ", cell)
			}
		}
		fmt.Fprintln(o.w, "|")
	}
}

func (o *Output) printLexiconStatus(s response.LexiconStatus) {
	fmt.Fprintf(o.w, "Loaded: %s\n", yesNo(s.Loaded))
	fmt.Fprintf(o.w, "Words: %d\n", s.WordCount)
}

func (o *Output) printWordLookup(l response.WordLookup) {
	fmt.Fprintf(o.w, "Word: %s\n", l.Word)
	fmt.Fprintf(o.w, "In lexicon: %s\n", yesNo(l.InLexicon))
	fmt.Fprintf(o.w, "Defined: %s\n", yesNo(l.Defined))
	if l.Definition != "" {
		fmt.Fprintf(o.w, "Definition: %s\n", l.Definition)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/services/finder"
	"github.com/mcoot/wordgrid/internal/services/grid"
	"github.com/mcoot/wordgrid/internal/web/templates/layout"
	"github.com/mcoot/wordgrid/internal/web/templates/pages"
)

// GridHandler renders grids and their last scan
type GridHandler struct {
	grids  grid.ServiceInterface
	finder finder.ServiceInterface
	logger *slog.Logger
}

// NewGridHandler creates a new GridHandler
func NewGridHandler(grids grid.ServiceInterface, finder finder.ServiceInterface, logger *slog.Logger) *GridHandler {
	return &GridHandler{
		grids:  grids,
		finder: finder,
		logger: logger,
	}
}

// View handles GET /grids/{id}. Cells covered by a match in the last scan
// carry the "highlight" class. A result from before the grid's last edit is
// ignored.
func (h *GridHandler) View(w http.ResponseWriter, r *http.Request) {
	id := model.GridID(mux.Vars(r)["id"])

	g, err := h.grids.GetGrid(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	result, err := h.finder.LastResult(r.Context(), id)
	switch {
	case errors.Is(err, model.ErrScanResultNotFound):
		result = nil
	case err != nil:
		h.renderError(w, r, err)
		return
	}
	if result != nil && isStale(result, g) {
		result = nil
	}

	h.render(w, r, http.StatusOK, pages.Grid(buildGridPage(g, result)))
}

// isStale reports whether the grid has changed since result was taken
func isStale(result *model.ScanResult, g *model.Grid) bool {
	if result.Rows != g.Rows || result.Cols != g.Cols {
		return true
	}
	return result.FinishedAt.Before(g.UpdatedAt)
}

func buildGridPage(g *model.Grid, result *model.ScanResult) pages.GridData {
	data := pages.GridData{
		PageData: layout.PageData{Title: "Grid " + string(g.ID)},
		ID:       string(g.ID),
		Size:     fmt.Sprintf("%d × %d", g.Rows, g.Cols),
		Cells:    make([][]pages.CellData, g.Rows),
	}

	for row := 0; row < g.Rows; row++ {
		data.Cells[row] = make([]pages.CellData, g.Cols)
		for col := 0; col < g.Cols; col++ {
			pos := model.Position{Row: row, Col: col}
			cell := pages.CellData{Row: row, Col: col}
			if letter := g.LetterAt(pos); letter != 0 {
				cell.Letter = string(letter)
			} else {
				cell.Class = "empty"
			}
			if result != nil && result.IsHighlighted(pos) {
				cell.Class = "highlight"
			}
			data.Cells[row][col] = cell
		}
	}

	if result != nil {
		data.Scanned = true
		data.ScannedAt = result.FinishedAt.UTC().Format(time.RFC3339)
		for _, m := range result.Matches {
			data.Matches = append(data.Matches, pages.MatchData{
				Span:       m.Span.String(),
				Word:       m.Word,
				Definition: m.Definition,
			})
		}
	}

	return data
}

// PanicPage renders the error page for a recovered panic
func (h *GridHandler) PanicPage(w http.ResponseWriter, r *http.Request, _ any) {
	h.render(w, r, http.StatusInternalServerError, pages.Error(pages.ErrorData{
		PageData: layout.PageData{Title: "Internal Server Error"},
		Message:  "Something went wrong. Please try again later.",
	}))
}

func (h *GridHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	data := pages.ErrorData{
		PageData: layout.PageData{Title: "Error"},
		Message:  "Something went wrong. Please try again later.",
	}
	if errors.Is(err, model.ErrGridNotFound) {
		status = http.StatusNotFound
		data = pages.ErrorData{
			PageData: layout.PageData{Title: "Not found"},
			Message:  "That grid does not exist.",
		}
	} else {
		h.logger.Error("render grid failed", slog.String("error", err.Error()))
	}
	h.render(w, r, status, pages.Error(data))
}

func (h *GridHandler) render(w http.ResponseWriter, r *http.Request, status int, page templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render page",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
}

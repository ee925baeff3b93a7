package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordgrid/internal/api/request"
	"github.com/mcoot/wordgrid/internal/api/response"
	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/services/finder"
	"github.com/mcoot/wordgrid/internal/services/grid"
)

// GridHandler handles grid editing and scanning endpoints
type GridHandler struct {
	grids  grid.ServiceInterface
	finder finder.ServiceInterface
}

// NewGridHandler creates a new grid handler
func NewGridHandler(grids grid.ServiceInterface, finder finder.ServiceInterface) *GridHandler {
	return &GridHandler{
		grids:  grids,
		finder: finder,
	}
}

func gridID(r *http.Request) model.GridID {
	return model.GridID(mux.Vars(r)["id"])
}

// cellPosition parses the {row}/{col} path variables
func cellPosition(r *http.Request) (model.Position, error) {
	vars := mux.Vars(r)
	row, err := strconv.Atoi(vars["row"])
	if err != nil {
		return model.Position{}, NewInvalidRequestError("row must be an integer")
	}
	col, err := strconv.Atoi(vars["col"])
	if err != nil {
		return model.Position{}, NewInvalidRequestError("col must be an integer")
	}
	return model.Position{Row: row, Col: col}, nil
}

// Create handles POST /api/v1/grids
func (h *GridHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGridRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Rows == 0 {
		req.Rows = model.DefaultGridSize
	}
	if req.Cols == 0 {
		req.Cols = req.Rows
	}

	g, err := h.grids.CreateGrid(r.Context(), req.Rows, req.Cols)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GridFromModel(g))
}

// Get handles GET /api/v1/grids/{id}
func (h *GridHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.grids.GetGrid(r.Context(), gridID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GridFromModel(g))
}

// Delete handles DELETE /api/v1/grids/{id}
func (h *GridHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.grids.DeleteGrid(r.Context(), gridID(r)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Fill handles PUT /api/v1/grids/{id}/letters
func (h *GridHandler) Fill(w http.ResponseWriter, r *http.Request) {
	var req request.FillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	g, err := h.grids.Fill(r.Context(), gridID(r), req.Rows)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GridFromModel(g))
}

// Resize handles POST /api/v1/grids/{id}/resize
func (h *GridHandler) Resize(w http.ResponseWriter, r *http.Request) {
	var req request.ResizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	g, err := h.grids.Resize(r.Context(), gridID(r), req.Rows, req.Cols)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GridFromModel(g))
}

// SetCell handles PUT /api/v1/grids/{id}/cells/{row}/{col}
func (h *GridHandler) SetCell(w http.ResponseWriter, r *http.Request) {
	pos, err := cellPosition(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.SetCellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	letter, err := h.grids.SetCell(r.Context(), gridID(r), pos, req.Value)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CellFromLetter(pos, letter))
}

// ClearCell handles DELETE /api/v1/grids/{id}/cells/{row}/{col}
func (h *GridHandler) ClearCell(w http.ResponseWriter, r *http.Request) {
	pos, err := cellPosition(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.grids.ClearCell(r.Context(), gridID(r), pos); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Scan handles POST /api/v1/grids/{id}/scan
func (h *GridHandler) Scan(w http.ResponseWriter, r *http.Request) {
	result, err := h.finder.ScanGrid(r.Context(), gridID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ScanResultFromModel(result))
}

// LastResult handles GET /api/v1/grids/{id}/scan
func (h *GridHandler) LastResult(w http.ResponseWriter, r *http.Request) {
	result, err := h.finder.LastResult(r.Context(), gridID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ScanResultFromModel(result))
}

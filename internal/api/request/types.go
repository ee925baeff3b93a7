package request

// CreateGridRequest is the request body for creating a grid.
// Zero dimensions fall back to the default size.
type CreateGridRequest struct {
	Rows int `json:"rows,omitempty"`
	Cols int `json:"cols,omitempty"`
}

// FillRequest is the request body for replacing a grid's letters.
// Each row string uses '.', '-', '_' or ' ' for empty cells.
type FillRequest struct {
	Rows []string `json:"rows"`
}

// ResizeRequest is the request body for resizing a grid
type ResizeRequest struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// SetCellRequest is the request body for setting one cell.
// Only the first character is used; non-letters clear the cell.
type SetCellRequest struct {
	Value string `json:"value"`
}

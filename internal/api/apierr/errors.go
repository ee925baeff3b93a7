package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/wordgrid/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidLetter      = "INVALID_LETTER"
	CodeInvalidPosition    = "INVALID_POSITION"
	CodeInvalidGridSize    = "INVALID_GRID_SIZE"
	CodeGridNotFound       = "GRID_NOT_FOUND"
	CodeScanResultNotFound = "SCAN_RESULT_NOT_FOUND"
	CodeLexiconNotLoaded   = "LEXICON_NOT_LOADED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrGridNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGridNotFound, "Grid not found"}}
	case errors.Is(err, model.ErrScanResultNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeScanResultNotFound, "Grid has not been scanned"}}
	case errors.Is(err, model.ErrInvalidGridSize):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidGridSize, "Grid size must be between 1 and 26"}}
	case errors.Is(err, model.ErrInvalidLetter):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidLetter, "Letter must be A-Z"}}
	case errors.Is(err, model.ErrInvalidPosition):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPosition, "Invalid grid position"}}
	case errors.Is(err, model.ErrLexiconNotLoaded):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeLexiconNotLoaded, "Lexicon is not loaded"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

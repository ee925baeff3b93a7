package handler

import (
	"net/http"

	"github.com/mcoot/wordgrid/internal/api/apierr"
)

// WriteError writes err as a JSON error response
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

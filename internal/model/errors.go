package model

import "errors"

// Common errors used across the application
var (
	// Grid errors
	ErrGridNotFound    = errors.New("grid not found")
	ErrInvalidGridSize = errors.New("invalid grid size")
	ErrInvalidPosition = errors.New("invalid grid position")
	ErrInvalidLetter   = errors.New("invalid letter")

	// Scan errors
	ErrScanResultNotFound = errors.New("scan result not found")

	// Lexicon errors
	ErrLexiconNotLoaded = errors.New("lexicon not loaded")

	// Definition cache errors
	ErrDefinitionNotCached = errors.New("definition not cached")
)

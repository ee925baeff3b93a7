package model

import "time"

// DefinitionResult is the outcome of a definition lookup: either
// DefinitionFound or DefinitionMissing.
type DefinitionResult interface {
	isDefinitionResult()
}

// DefinitionFound means the word has a dictionary definition
type DefinitionFound struct {
	Definition string
}

// DefinitionMissing means the word could not be confirmed. Retryable marks
// transient failures (transport errors, 5xx) as opposed to a definitive miss.
type DefinitionMissing struct {
	Reason    string
	Retryable bool
}

func (DefinitionFound) isDefinitionResult()   {}
func (DefinitionMissing) isDefinitionResult() {}

// IsRealWord collapses a DefinitionResult into the (isReal, definition) pair
// used by the scanner. Anything other than DefinitionFound is not a real word.
func IsRealWord(r DefinitionResult) (bool, string) {
	if found, ok := r.(DefinitionFound); ok {
		return true, found.Definition
	}
	return false, ""
}

// CachedDefinition is a stored definition lookup outcome
type CachedDefinition struct {
	Word       string
	Found      bool
	Definition string
	Reason     string
	FetchedAt  time.Time
}

// Result converts the cache entry back into a DefinitionResult
func (c *CachedDefinition) Result() DefinitionResult {
	if c.Found {
		return DefinitionFound{Definition: c.Definition}
	}
	return DefinitionMissing{Reason: c.Reason}
}

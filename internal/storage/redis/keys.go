package redis

import (
	"fmt"
	"strings"

	"github.com/mcoot/wordgrid/internal/model"
)

// Key prefix for all wordgrid data
const keyPrefix = "wordgrid"

// gridKey returns the Redis key for a Grid
func gridKey(id model.GridID) string {
	return fmt.Sprintf("%s:grid:%s", keyPrefix, id)
}

// scanResultKey returns the Redis key for a grid's last ScanResult
func scanResultKey(gridID model.GridID) string {
	return fmt.Sprintf("%s:scan:%s", keyPrefix, gridID)
}

// lexiconKey returns the Redis key for the lexicon word set
func lexiconKey() string {
	return fmt.Sprintf("%s:lexicon", keyPrefix)
}

// definitionKey returns the Redis key for a cached definition lookup
func definitionKey(word string) string {
	return fmt.Sprintf("%s:definition:%s", keyPrefix, strings.ToLower(word))
}

// Package definition looks words up in an external dictionary and reports
// whether they are real words.
package definition

import (
	"context"

	"github.com/mcoot/wordgrid/internal/model"
)

// LookupFunc is the capability used to confirm a word. Implementations never
// return errors: every failure is a model.DefinitionMissing.
type LookupFunc func(ctx context.Context, word string) model.DefinitionResult

// Permissive accepts every word with an empty definition. Used when no
// definition source is available (offline solving).
func Permissive() LookupFunc {
	return func(context.Context, string) model.DefinitionResult {
		return model.DefinitionFound{}
	}
}

// Static answers from a fixed word -> definition map; anything else is missing
func Static(definitions map[string]string) LookupFunc {
	return func(_ context.Context, word string) model.DefinitionResult {
		if def, ok := definitions[word]; ok {
			return model.DefinitionFound{Definition: def}
		}
		return model.DefinitionMissing{Reason: "not in static dictionary"}
	}
}

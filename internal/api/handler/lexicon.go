package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordgrid/internal/api/response"
	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/services/lexicon"
)

// LexiconHandler handles lexicon endpoints
type LexiconHandler struct {
	lexicon lexicon.ServiceInterface
}

// NewLexiconHandler creates a new lexicon handler
func NewLexiconHandler(lexicon lexicon.ServiceInterface) *LexiconHandler {
	return &LexiconHandler{lexicon: lexicon}
}

// Status handles GET /api/v1/lexicon
func (h *LexiconHandler) Status(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.LexiconStatus{
		Loaded:    h.lexicon.IsLoaded(),
		WordCount: h.lexicon.WordCount(),
	})
}

// Lookup handles GET /api/v1/lexicon/words/{word}. The definition source is
// only consulted for lexicon members.
func (h *LexiconHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	if !h.lexicon.IsLoaded() {
		WriteError(w, model.ErrLexiconNotLoaded)
		return
	}

	word, ok := lexicon.Normalize(mux.Vars(r)["word"])
	if !ok {
		WriteError(w, NewInvalidRequestError("word must be at least 3 letters a-z"))
		return
	}

	resp := response.WordLookup{
		Word:      word,
		InLexicon: h.lexicon.Contains(word),
	}
	if resp.InLexicon {
		resp.Defined, resp.Definition = h.lexicon.IsDefinedWord(r.Context(), word)
	}

	response.JSON(w, http.StatusOK, resp)
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordgrid/internal/api/apierr"
	"github.com/mcoot/wordgrid/internal/api/handler"
	"github.com/mcoot/wordgrid/internal/api/response"
	"github.com/mcoot/wordgrid/internal/middleware"
	"github.com/mcoot/wordgrid/internal/services/finder"
	"github.com/mcoot/wordgrid/internal/services/grid"
	"github.com/mcoot/wordgrid/internal/services/lexicon"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GridService    grid.ServiceInterface
	FinderService  finder.ServiceInterface
	LexiconService lexicon.ServiceInterface
}

// Routes registers the API routes under /api/v1 on r
func Routes(r *mux.Router, cfg RouterConfig) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	gridHandler := handler.NewGridHandler(cfg.GridService, cfg.FinderService)
	lexiconHandler := handler.NewLexiconHandler(cfg.LexiconService)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Logging(logger))
	api.Use(middleware.Recovery(logger, jsonPanicHandler))

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Lexicon routes
	api.HandleFunc("/lexicon", lexiconHandler.Status).Methods(http.MethodGet)
	api.HandleFunc("/lexicon/words/{word}", lexiconHandler.Lookup).Methods(http.MethodGet)

	// Grid routes
	grids := api.PathPrefix("/grids").Subrouter()
	grids.HandleFunc("", gridHandler.Create).Methods(http.MethodPost)
	grids.HandleFunc("/{id}", gridHandler.Get).Methods(http.MethodGet)
	grids.HandleFunc("/{id}", gridHandler.Delete).Methods(http.MethodDelete)
	grids.HandleFunc("/{id}/letters", gridHandler.Fill).Methods(http.MethodPut)
	grids.HandleFunc("/{id}/resize", gridHandler.Resize).Methods(http.MethodPost)
	grids.HandleFunc("/{id}/cells/{row}/{col}", gridHandler.SetCell).Methods(http.MethodPut)
	grids.HandleFunc("/{id}/cells/{row}/{col}", gridHandler.ClearCell).Methods(http.MethodDelete)
	grids.HandleFunc("/{id}/scan", gridHandler.Scan).Methods(http.MethodPost)
	grids.HandleFunc("/{id}/scan", gridHandler.LastResult).Methods(http.MethodGet)
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	Routes(r, cfg)
	return r
}

// jsonPanicHandler answers a recovered panic with a JSON error body
func jsonPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}

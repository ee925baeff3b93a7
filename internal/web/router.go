package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordgrid/internal/middleware"
	"github.com/mcoot/wordgrid/internal/services/finder"
	"github.com/mcoot/wordgrid/internal/services/grid"
	"github.com/mcoot/wordgrid/internal/web/handler"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger        *slog.Logger
	GridService   grid.ServiceInterface
	FinderService finder.ServiceInterface
}

// Routes registers the HTML pages on r
func Routes(r *mux.Router, cfg RouterConfig) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	gridHandler := handler.NewGridHandler(cfg.GridService, cfg.FinderService, logger)

	pages := r.NewRoute().Subrouter()
	pages.Use(middleware.Logging(logger))
	pages.Use(middleware.Recovery(logger, gridHandler.PanicPage))

	pages.HandleFunc("/grids/{id}", gridHandler.View).Methods(http.MethodGet)
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	Routes(r, cfg)
	return r
}

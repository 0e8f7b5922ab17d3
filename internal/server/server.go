package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/evanhooper/trolley/internal/handler"
	"github.com/evanhooper/trolley/internal/middleware"
	"github.com/evanhooper/trolley/internal/stats"
	"github.com/evanhooper/trolley/internal/store"
	ws "github.com/evanhooper/trolley/internal/websocket"
)

type Server struct {
	db        *sql.DB
	hub       *ws.Hub
	listH     *handler.ListHandler
	itemH     *handler.ItemHandler
	categoryH *handler.CategoryHandler
	unitH     *handler.UnitHandler
	statsH    *handler.StatsHandler
	wsToken   string
	logger    *slog.Logger
}

func New(db *sql.DB, wsToken string, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	listStore := store.NewListStore(db)
	itemStore := store.NewItemStore(db)
	categoryStore := store.NewCategoryStore(db)
	unitStore := store.NewUnitStore(db)

	statsSvc := stats.NewService(listStore, itemStore, categoryStore, logger.With("component", "stats"))

	return &Server{
		db:        db,
		hub:       hub,
		listH:     handler.NewListHandler(listStore, hub, logger.With("component", "list")),
		itemH:     handler.NewItemHandler(itemStore, listStore, categoryStore, unitStore, hub, logger.With("component", "item")),
		categoryH: handler.NewCategoryHandler(categoryStore, hub, logger.With("component", "category")),
		unitH:     handler.NewUnitHandler(unitStore, logger.With("component", "unit")),
		statsH:    handler.NewStatsHandler(statsSvc, logger.With("component", "stats")),
		wsToken:   wsToken,
		logger:    logger,
	}
}

// Hub exposes the change-event hub, mainly for tests.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	// List routes
	mux.HandleFunc("POST /api/lists", s.listH.Create)
	mux.HandleFunc("GET /api/lists", s.listH.List)
	mux.HandleFunc("PUT /api/lists/{id}", s.listH.Rename)
	mux.HandleFunc("DELETE /api/lists/{id}", s.listH.Delete)

	// Item routes
	mux.HandleFunc("POST /api/lists/{list_id}/categories/{category_id}/items", s.itemH.Create)
	mux.HandleFunc("GET /api/lists/{list_id}/categories/{category_id}/items", s.itemH.List)
	mux.HandleFunc("PUT /api/items/{id}", s.itemH.Update)
	mux.HandleFunc("PATCH /api/items/{id}", s.itemH.SetBought)
	mux.HandleFunc("DELETE /api/items/{id}", s.itemH.Delete)

	// Category routes
	mux.HandleFunc("GET /api/categories", s.categoryH.List)
	mux.HandleFunc("POST /api/categories", s.categoryH.Create)
	mux.HandleFunc("DELETE /api/categories/{id}", s.categoryH.Delete)

	// Unit routes
	mux.HandleFunc("GET /api/units", s.unitH.List)

	// Statistics routes
	mux.HandleFunc("GET /api/statistics/monthly", s.statsH.Monthly)
	mux.HandleFunc("GET /api/statistics/list/{id}", s.statsH.ForList)

	// Real-time change feed
	mux.HandleFunc("GET /api/ws", ws.Handle(s.hub, s.wsToken, s.logger.With("component", "websocket")))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/partygames/clockin/internal/api/handler"
	"github.com/partygames/clockin/internal/api/middleware"
	"github.com/partygames/clockin/internal/factory"
)

// NewRouter creates the HTTP router with all routes and middleware configured
func NewRouter(app *factory.App, logger *slog.Logger) *mux.Router {
	gameHandler := handler.NewGameHandler(app.GameService, app.RosterService, logger)
	checkinHandler := handler.NewCheckinHandler(app.CheckinController, app.GameService, logger)
	eventsHandler := handler.NewEventsHandler(app.RosterService, logger)
	qrHandler := handler.NewQRHandler(app.QRGenerator, logger)
	healthHandler := handler.NewHealthHandler()

	r := mux.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	api.HandleFunc("/qr", qrHandler.Badge).Methods(http.MethodGet)

	api.HandleFunc("/games/{label}", gameHandler.GetGame).Methods(http.MethodGet)
	api.HandleFunc("/games/{label}/roster", gameHandler.GetRoster).Methods(http.MethodGet)
	api.HandleFunc("/games/{label}/checkins", checkinHandler.CheckIn).Methods(http.MethodPost)
	api.HandleFunc("/games/{label}/rebalance", checkinHandler.Rebalance).Methods(http.MethodPost)
	api.HandleFunc("/games/{label}/events", eventsHandler.Stream).Methods(http.MethodGet)

	return r
}

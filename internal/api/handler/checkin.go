package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/partygames/clockin/internal/api/apierr"
	"github.com/partygames/clockin/internal/api/response"
	"github.com/partygames/clockin/internal/model"
	"github.com/partygames/clockin/internal/services/checkin"
	"github.com/partygames/clockin/internal/services/game"
)

// CheckinHandler handles check-in and rebalance endpoints
type CheckinHandler struct {
	checkins *checkin.Controller
	games    *game.Service
	logger   *slog.Logger
}

// NewCheckinHandler creates a new CheckinHandler
func NewCheckinHandler(checkins *checkin.Controller, games *game.Service, logger *slog.Logger) *CheckinHandler {
	return &CheckinHandler{
		checkins: checkins,
		games:    games,
		logger:   logger.With(slog.String("component", "checkin_handler")),
	}
}

// CheckInRequest is the request body for a check-in
type CheckInRequest struct {
	// Payload is the raw text captured from a scanned badge
	Payload string `json:"payload"`
}

// CheckIn handles POST /api/v1/games/{label}/checkins
func (h *CheckinHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	label := mux.Vars(r)["label"]

	var req CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid request body"))
		return
	}

	// Create the game up front so it carries its display name, not the
	// bare ID fallback the engine would give it
	g, err := h.games.EnsureForLabel(r.Context(), label)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	result, err := h.checkins.CheckIn(r.Context(), req.Payload, g.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.CheckInResultFromService(result))
}

// Rebalance handles POST /api/v1/games/{label}/rebalance
func (h *CheckinHandler) Rebalance(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameIDForLabel(mux.Vars(r)["label"])

	changed, err := h.checkins.Rebalance(r.Context(), gameID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RebalanceResult{Changed: changed})
}

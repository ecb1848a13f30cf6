package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/partygames/clockin/internal/api/apierr"
	"github.com/partygames/clockin/internal/api/response"
	"github.com/partygames/clockin/internal/model"
	"github.com/partygames/clockin/internal/services/game"
	"github.com/partygames/clockin/internal/services/roster"
)

// GameHandler handles game read endpoints
type GameHandler struct {
	games  *game.Service
	roster *roster.Service
	logger *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(games *game.Service, rosterService *roster.Service, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		games:  games,
		roster: rosterService,
		logger: logger.With(slog.String("component", "game_handler")),
	}
}

// GetGame handles GET /api/v1/games/{label}
//
// Viewing a game creates it if needed. Stations enter their label when the
// screen goes up, before anyone has scanned in.
func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	g, err := h.games.EnsureForLabel(r.Context(), mux.Vars(r)["label"])
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	entries, err := h.roster.Snapshot(r.Context(), g.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameView{
		Game:   response.GameFromModel(g),
		Roster: response.RosterFromService(g.ID, entries),
	})
}

// GetRoster handles GET /api/v1/games/{label}/roster
//
// Rows are grouped by team and by list status, mirroring how the station
// screens lay the tables out. A game nobody has scanned into yet comes back
// with empty groups rather than a 404, since screens go up before the first
// guest arrives.
func (h *GameHandler) GetRoster(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameIDForLabel(mux.Vars(r)["label"])

	entries, err := h.roster.Snapshot(r.Context(), gameID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, groupRoster(gameID, entries))
}

// groupRoster buckets roster rows into the display groups
func groupRoster(gameID model.GameID, entries []roster.Entry) response.GroupedRoster {
	grouped := response.GroupedRoster{
		GameID:  string(gameID),
		Team1:   []string{},
		Team2:   []string{},
		Nice:    []string{},
		Naughty: []string{},
	}
	for _, e := range entries {
		switch e.Team {
		case model.TeamOne:
			grouped.Team1 = append(grouped.Team1, e.MemberName)
		case model.TeamTwo:
			grouped.Team2 = append(grouped.Team2, e.MemberName)
		}
		switch e.Status {
		case model.StatusNice:
			grouped.Nice = append(grouped.Nice, e.MemberName)
		case model.StatusNaughty:
			grouped.Naughty = append(grouped.Naughty, e.MemberName)
		}
	}
	return grouped
}

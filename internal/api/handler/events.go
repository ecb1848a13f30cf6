package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/partygames/clockin/internal/api/apierr"
	"github.com/partygames/clockin/internal/api/response"
	"github.com/partygames/clockin/internal/model"
	"github.com/partygames/clockin/internal/services/roster"
)

const keepaliveInterval = 30 * time.Second

// EventsHandler streams live roster updates over Server-Sent Events
type EventsHandler struct {
	roster *roster.Service
	logger *slog.Logger
}

// NewEventsHandler creates a new EventsHandler
func NewEventsHandler(rosterService *roster.Service, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		roster: rosterService,
		logger: logger.With(slog.String("component", "events_handler")),
	}
}

// Stream handles GET /api/v1/games/{label}/events
//
// Each SSE message carries a full roster snapshot. Sending the whole view
// on every change keeps clients stateless; a screen that reconnects is
// immediately correct again.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameIDForLabel(mux.Vars(r)["label"])

	flusher, ok := w.(http.Flusher)
	if !ok {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Streaming not supported"))
		return
	}

	snapshots, err := h.roster.Observe(r.Context(), gameID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	h.logger.Info("events stream opened", slog.String("game_id", string(gameID)))

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.logger.Info("events stream closed", slog.String("game_id", string(gameID)))
			return
		case <-keepalive.C:
			fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		case entries, ok := <-snapshots:
			if !ok {
				return
			}
			msg, err := formatSSEMessage("roster", response.RosterFromService(gameID, entries))
			if err != nil {
				h.logger.Error("failed to format event",
					slog.String("game_id", string(gameID)),
					slog.Any("error", err))
				continue
			}
			fmt.Fprint(w, msg)
			flusher.Flush()
		}
	}
}

// formatSSEMessage formats a Server-Sent Events message with a JSON payload
func formatSSEMessage(eventType string, data any) (string, error) {
	encoded, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("event: %s\ndata: %s\n\n", eventType, encoded), nil
}

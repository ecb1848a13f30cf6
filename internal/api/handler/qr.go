package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/partygames/clockin/internal/api/apierr"
	"github.com/partygames/clockin/internal/qr"
)

// QRHandler serves printable member badges
type QRHandler struct {
	generator *qr.Generator
	logger    *slog.Logger
}

// NewQRHandler creates a new QRHandler
func NewQRHandler(generator *qr.Generator, logger *slog.Logger) *QRHandler {
	return &QRHandler{
		generator: generator,
		logger:    logger.With(slog.String("component", "qr_handler")),
	}
}

// Badge handles GET /api/v1/qr?member=Name
func (h *QRHandler) Badge(w http.ResponseWriter, r *http.Request) {
	memberName := r.URL.Query().Get("member")
	if memberName == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Query parameter 'member' is required"))
		return
	}

	png, err := h.generator.BadgePNG(memberName)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

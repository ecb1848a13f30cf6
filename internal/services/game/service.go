package game

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/partygames/clockin/internal/dependencies/clock"
	"github.com/partygames/clockin/internal/model"
	"github.com/partygames/clockin/internal/storage"
)

// Service manages game records. Games are created lazily the first time a
// game is viewed or checked into, keyed by an ID derived from the external
// game label so the same label always resumes the same assignment set.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new game Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger.With(slog.String("component", "game")),
	}
}

// EnsureExists creates the game record if it does not exist yet.
// Creating the same game twice is a no-op.
func (s *Service) EnsureExists(ctx context.Context, id model.GameID, name string, date time.Time) (*model.Game, error) {
	game, err := s.storage.GetGame(ctx, id)
	if err == nil {
		return game, nil
	}
	if !errors.Is(err, model.ErrGameNotFound) {
		return nil, err
	}

	game = &model.Game{
		ID:   id,
		Name: name,
		Date: date,
	}

	if err := s.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	s.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("name", game.Name))

	return game, nil
}

// EnsureForLabel derives the game ID from a human-facing label and ensures
// the record exists
func (s *Service) EnsureForLabel(ctx context.Context, label string) (*model.Game, error) {
	return s.EnsureExists(ctx, model.GameIDForLabel(label), model.GameNameForLabel(label), s.clock.Now())
}

// GetGame retrieves a game by ID
func (s *Service) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return s.storage.GetGame(ctx, id)
}

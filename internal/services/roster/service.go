package roster

import (
	"context"
	"log/slog"
	"time"

	"github.com/partygames/clockin/internal/model"
	"github.com/partygames/clockin/internal/storage"
	"github.com/partygames/clockin/internal/watch"
)

// Entry is one row of the live roster view: an assignment joined with its
// member's display name
type Entry struct {
	MemberName  string
	Team        model.Team
	Status      model.Status
	CheckedInAt time.Time
}

// Service exposes the live, auto-updating view of a game's assignments
// joined with member names
type Service struct {
	storage storage.Storage
	bus     *watch.Bus
	logger  *slog.Logger
}

// New creates a new roster Service
func New(storage storage.Storage, bus *watch.Bus, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		bus:     bus,
		logger:  logger.With(slog.String("component", "roster")),
	}
}

// Snapshot runs the assignment-member join for a game. Rows come back in
// check-in order; consumers impose their own grouping for display.
func (s *Service) Snapshot(ctx context.Context, gameID model.GameID) ([]Entry, error) {
	assignments, err := s.storage.ListAssignmentsForGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(assignments))
	for _, a := range assignments {
		member, err := s.storage.GetMember(ctx, a.MemberID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			MemberName:  member.Name,
			Team:        a.Team,
			Status:      a.Status,
			CheckedInAt: a.CheckedInAt,
		})
	}
	return entries, nil
}

// Observe returns a channel of roster snapshots for a game: the current
// snapshot immediately, then a freshly joined snapshot after every published
// assignment insert or update. The channel closes when ctx is cancelled.
func (s *Service) Observe(ctx context.Context, gameID model.GameID) (<-chan []Entry, error) {
	initial, err := s.Snapshot(ctx, gameID)
	if err != nil {
		return nil, err
	}

	out := make(chan []Entry, 1)
	out <- initial

	sub := s.bus.Subscribe(gameID)

	go func() {
		defer close(out)
		defer sub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-sub.C:
				if !ok {
					return
				}
				snapshot, err := s.Snapshot(ctx, gameID)
				if err != nil {
					s.logger.Error("roster refresh failed",
						slog.String("game_id", string(gameID)),
						slog.Any("error", err))
					continue
				}
				select {
				case out <- snapshot:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

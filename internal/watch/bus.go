package watch

import (
	"log/slog"
	"sync"

	"github.com/partygames/clockin/internal/model"
)

// subscriptionBuffer is the per-subscriber channel depth. A subscriber that
// falls further behind than this loses intermediate events; every surviving
// event triggers a full re-query, so dropped events only delay a refresh.
const subscriptionBuffer = 16

// Bus is the publish-on-write observer registry. Every successful assignment
// insert or update is published here, scoped by game, and fanned out to all
// subscriptions for that game. Sends never block the publisher.
type Bus struct {
	mu     sync.RWMutex
	subs   map[model.GameID]map[*Subscription]bool
	logger *slog.Logger
}

// Subscription is one observer's feed of change events for a game
type Subscription struct {
	// C receives change events until Close is called
	C <-chan model.Event

	ch     chan model.Event
	gameID model.GameID
	bus    *Bus
	once   sync.Once
}

// NewBus creates a new Bus
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		subs:   make(map[model.GameID]map[*Subscription]bool),
		logger: logger.With(slog.String("component", "watch")),
	}
}

// Subscribe registers an observer for a game's change events
func (b *Bus) Subscribe(gameID model.GameID) *Subscription {
	ch := make(chan model.Event, subscriptionBuffer)
	sub := &Subscription{
		C:      ch,
		ch:     ch,
		gameID: gameID,
		bus:    b,
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[gameID] == nil {
		b.subs[gameID] = make(map[*Subscription]bool)
	}
	b.subs[gameID][sub] = true
	return sub
}

// Publish delivers an event to every subscription for its game.
// Slow subscribers have the event dropped rather than blocking the writer.
func (b *Bus) Publish(event model.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	dropped := 0
	for sub := range b.subs[event.GameID] {
		select {
		case sub.ch <- event:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		b.logger.Warn("change event dropped - subscriber buffer full",
			slog.String("game_id", string(event.GameID)),
			slog.String("event", string(event.Type)),
			slog.Int("dropped", dropped))
	}
}

// SubscriberCount returns the number of active subscriptions for a game
func (b *Bus) SubscriberCount(gameID model.GameID) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[gameID])
}

// Close removes the subscription from the bus and closes its channel
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.subs[s.gameID], s)
		if len(s.bus.subs[s.gameID]) == 0 {
			delete(s.bus.subs, s.gameID)
		}
		s.bus.mu.Unlock()
		close(s.ch)
	})
}

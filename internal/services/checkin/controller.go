package checkin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/partygames/clockin/internal/dependencies/clock"
	"github.com/partygames/clockin/internal/dependencies/random"
	"github.com/partygames/clockin/internal/model"
	"github.com/partygames/clockin/internal/services/game"
	"github.com/partygames/clockin/internal/services/identity"
	"github.com/partygames/clockin/internal/storage"
	"github.com/partygames/clockin/internal/watch"
)

const (
	// memberQueryParam is the query parameter carrying the member name in
	// scanned payloads
	memberQueryParam = "member"

	// assignmentIDLength is the length of generated assignment IDs
	assignmentIDLength = 12
	// assignmentIDAlphabet is the characters used in assignment IDs
	assignmentIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Config holds behavior settings for the check-in engine
type Config struct {
	// RebalanceAfterCheckIn runs a full roster reshuffle-and-resplit after
	// every successful check-in. Off by default: greedy assignment already
	// keeps team sizes within one of each other, and reshuffling settled
	// members' teams on every scan is a deliberate product choice.
	RebalanceAfterCheckIn bool
}

// DefaultConfig returns the default engine configuration
func DefaultConfig() Config {
	return Config{
		RebalanceAfterCheckIn: false,
	}
}

// Result describes the outcome of a successful check-in
type Result struct {
	Member     *model.Member
	Assignment *model.Assignment
	// Rebalanced is true when the post-insert rebalance pass moved at
	// least one existing member to the other team
	Rebalanced bool
}

// Controller is the check-in engine. It resolves scanned payloads to member
// identities, rejects duplicates, balances teams, draws the list category,
// persists the assignment, and publishes a change event for live views.
//
// Within one CheckIn call the steps run strictly in order (resolve, check,
// balance, persist, rebalance) and the change event is published only after
// persistence completes. There is no cross-call mutual exclusion: two truly
// concurrent check-ins for one game are a read-then-write race. Single
// operator, single station usage is assumed.
type Controller struct {
	storage  storage.Storage
	identity *identity.Service
	games    *game.Service
	bus      *watch.Bus
	clock    clock.Clock
	random   random.Random
	cfg      Config
	logger   *slog.Logger
}

// NewController creates a new check-in Controller
func NewController(
	storage storage.Storage,
	identity *identity.Service,
	games *game.Service,
	bus *watch.Bus,
	clock clock.Clock,
	random random.Random,
	cfg Config,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:  storage,
		identity: identity,
		games:    games,
		bus:      bus,
		clock:    clock,
		random:   random,
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "checkin")),
	}
}

// MemberNameFromPayload extracts the member name from a decoded QR payload.
// The payload is expected to be a URL carrying a "member" query parameter
// (e.g. https://example.com/checkin?member=Alex). Anything else is an
// invalid payload, not a crash.
func MemberNameFromPayload(payload string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(payload))
	if err != nil {
		return "", model.ErrInvalidPayload
	}

	name := u.Query().Get(memberQueryParam)
	if name == "" {
		return "", model.ErrInvalidPayload
	}
	return name, nil
}

// CheckIn processes one decoded QR payload for a game. On success the new
// assignment is persisted and every observer of the game sees the refreshed
// roster. Re-scanning an already-checked-in member fails with
// ErrAlreadyCheckedIn and mutates nothing.
func (c *Controller) CheckIn(ctx context.Context, payload string, gameID model.GameID) (*Result, error) {
	name, err := MemberNameFromPayload(payload)
	if err != nil {
		return nil, err
	}

	// Referential integrity: the game record must exist before any
	// assignment references it
	if _, err := c.games.EnsureExists(ctx, gameID, string(gameID), c.clock.Now()); err != nil {
		return nil, fmt.Errorf("ensuring game %s: %w", gameID, err)
	}

	member, err := c.identity.ResolveOrCreate(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("resolving member %q: %w", name, err)
	}

	// Duplicate check before insert to give a clean error path
	if _, err := c.storage.GetAssignmentForMember(ctx, gameID, member.ID); err == nil {
		return nil, model.ErrAlreadyCheckedIn
	} else if !errors.Is(err, model.ErrAssignmentNotFound) {
		return nil, fmt.Errorf("checking existing assignment: %w", err)
	}

	team, err := c.pickTeam(ctx, gameID)
	if err != nil {
		return nil, err
	}

	assignment := &model.Assignment{
		ID:          model.AssignmentID("assignment-" + c.random.String(assignmentIDLength, assignmentIDAlphabet)),
		GameID:      gameID,
		MemberID:    member.ID,
		Team:        team,
		Status:      c.drawStatus(),
		CheckedInAt: c.clock.Now(),
	}

	if err := c.storage.SaveAssignment(ctx, assignment); err != nil {
		return nil, fmt.Errorf("saving assignment: %w", err)
	}

	c.publish(model.EventMemberCheckedIn, gameID, member.ID, model.MemberCheckedInPayload{
		MemberName: member.Name,
		Team:       assignment.Team,
		Status:     assignment.Status,
	})

	result := &Result{Member: member, Assignment: assignment}

	if c.cfg.RebalanceAfterCheckIn {
		changed, err := c.Rebalance(ctx, gameID)
		if err != nil {
			return nil, err
		}
		result.Rebalanced = changed > 0
		// The member's own team may have moved in the pass
		current, err := c.storage.GetAssignment(ctx, assignment.ID)
		if err != nil {
			return nil, fmt.Errorf("re-reading assignment after rebalance: %w", err)
		}
		result.Assignment = current
	}

	c.logger.Info("member checked in",
		slog.String("game_id", string(gameID)),
		slog.String("member", member.Name),
		slog.String("team", string(result.Assignment.Team)),
		slog.String("status", string(result.Assignment.Status)),
		slog.Bool("rebalanced", result.Rebalanced))

	return result, nil
}

// pickTeam implements the greedy online balancer: the new arrival joins
// whichever team currently has fewer members, team1 on a tie.
func (c *Controller) pickTeam(ctx context.Context, gameID model.GameID) (model.Team, error) {
	assignments, err := c.storage.ListAssignmentsForGame(ctx, gameID)
	if err != nil {
		return "", fmt.Errorf("counting teams: %w", err)
	}

	var team1, team2 int
	for _, a := range assignments {
		switch a.Team {
		case model.TeamOne:
			team1++
		case model.TeamTwo:
			team2++
		}
	}

	if team2 < team1 {
		return model.TeamTwo, nil
	}
	return model.TeamOne, nil
}

// drawStatus picks the list category uniformly at random, independent of
// team and of every prior assignment
func (c *Controller) drawStatus() model.Status {
	if c.random.Intn(2) == 0 {
		return model.StatusNice
	}
	return model.StatusNaughty
}

// Rebalance recomputes an even split across the full roster: shuffle, first
// half to team1, remainder to team2, writing only the assignments whose team
// actually changes. Total membership is preserved and the resulting team
// sizes differ by at most one (team1 takes the extra member when the count
// is odd). Returns the number of assignments rewritten.
func (c *Controller) Rebalance(ctx context.Context, gameID model.GameID) (int, error) {
	assignments, err := c.storage.ListAssignmentsForGame(ctx, gameID)
	if err != nil {
		return 0, fmt.Errorf("listing roster: %w", err)
	}
	if len(assignments) == 0 {
		return 0, nil
	}

	shuffled := make([]*model.Assignment, len(assignments))
	copy(shuffled, assignments)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := c.random.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	split := (len(shuffled) + 1) / 2
	changed := 0
	for i, a := range shuffled {
		team := model.TeamOne
		if i >= split {
			team = model.TeamTwo
		}
		if a.Team == team {
			continue
		}
		if err := c.storage.UpdateAssignmentTeam(ctx, a.ID, team); err != nil {
			return changed, fmt.Errorf("moving %s to %s: %w", a.ID, team, err)
		}
		changed++
	}

	if changed > 0 {
		c.publish(model.EventTeamsRebalanced, gameID, "", model.TeamsRebalancedPayload{Changed: changed})
		c.logger.Info("teams rebalanced",
			slog.String("game_id", string(gameID)),
			slog.Int("moved", changed))
	}

	return changed, nil
}

func (c *Controller) publish(eventType model.EventType, gameID model.GameID, memberID model.MemberID, payload any) {
	c.bus.Publish(model.Event{
		Type:      eventType,
		Timestamp: c.clock.Now(),
		GameID:    gameID,
		MemberID:  memberID,
		Payload:   payload,
	})
}

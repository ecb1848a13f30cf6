package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/partygames/clockin/internal/model"
	"github.com/partygames/clockin/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Member operations

func (s *Storage) SaveMember(ctx context.Context, member *model.Member) error {
	data, err := json.Marshal(member)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update; members never expire
	pipe := s.client.Pipeline()
	pipe.Set(ctx, memberKey(member.ID), data, 0)
	pipe.Set(ctx, memberNameIndexKey(member.Name), string(member.ID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetMember(ctx context.Context, id model.MemberID) (*model.Member, error) {
	data, err := s.client.Get(ctx, memberKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMemberNotFound
		}
		return nil, err
	}

	var member model.Member
	if err := json.Unmarshal(data, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *Storage) GetMemberByName(ctx context.Context, name string) (*model.Member, error) {
	memberIDStr, err := s.client.Get(ctx, memberNameIndexKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMemberNotFound
		}
		return nil, err
	}

	return s.GetMember(ctx, model.MemberID(memberIDStr))
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, gameKey(game.ID), data, s.cfg.GameTTL).Err()
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) GameExists(ctx context.Context, id model.GameID) (bool, error) {
	exists, err := s.client.Exists(ctx, gameKey(id)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// Assignment operations

func (s *Storage) SaveAssignment(ctx context.Context, assignment *model.Assignment) error {
	data, err := json.Marshal(assignment)
	if err != nil {
		return err
	}

	aKey := assignmentKey(assignment.ID)
	orderKey := assignmentsForGameIndexKey(assignment.GameID)
	memberKey := assignmentForMemberIndexKey(assignment.GameID, assignment.MemberID)

	// The order index is append-only; only push on first save of this ID
	exists, err := s.client.Exists(ctx, aKey).Result()
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index updates
	pipe := s.client.Pipeline()
	pipe.Set(ctx, aKey, data, s.cfg.GameTTL)
	if exists == 0 {
		pipe.RPush(ctx, orderKey, string(assignment.ID))
	}
	pipe.Set(ctx, memberKey, string(assignment.ID), s.cfg.GameTTL)
	if s.cfg.GameTTL > 0 {
		pipe.Expire(ctx, orderKey, s.cfg.GameTTL) // Keep index TTL in sync
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetAssignment(ctx context.Context, id model.AssignmentID) (*model.Assignment, error) {
	data, err := s.client.Get(ctx, assignmentKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAssignmentNotFound
		}
		return nil, err
	}

	var assignment model.Assignment
	if err := json.Unmarshal(data, &assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (s *Storage) GetAssignmentForMember(ctx context.Context, gameID model.GameID, memberID model.MemberID) (*model.Assignment, error) {
	idStr, err := s.client.Get(ctx, assignmentForMemberIndexKey(gameID, memberID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAssignmentNotFound
		}
		return nil, err
	}

	return s.GetAssignment(ctx, model.AssignmentID(idStr))
}

func (s *Storage) ListAssignmentsForGame(ctx context.Context, gameID model.GameID) ([]*model.Assignment, error) {
	ids, err := s.client.LRange(ctx, assignmentsForGameIndexKey(gameID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	assignments := make([]*model.Assignment, 0, len(ids))
	for _, id := range ids {
		assignment, err := s.GetAssignment(ctx, model.AssignmentID(id))
		if err != nil {
			if errors.Is(err, model.ErrAssignmentNotFound) {
				// Record expired out from under the index
				continue
			}
			return nil, err
		}
		assignments = append(assignments, assignment)
	}
	return assignments, nil
}

func (s *Storage) ListAssignmentsByTeam(ctx context.Context, gameID model.GameID, team model.Team) ([]*model.Assignment, error) {
	all, err := s.ListAssignmentsForGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	var assignments []*model.Assignment
	for _, a := range all {
		if a.Team == team {
			assignments = append(assignments, a)
		}
	}
	return assignments, nil
}

func (s *Storage) ListAssignmentsByStatus(ctx context.Context, gameID model.GameID, status model.Status) ([]*model.Assignment, error) {
	all, err := s.ListAssignmentsForGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	var assignments []*model.Assignment
	for _, a := range all {
		if a.Status == status {
			assignments = append(assignments, a)
		}
	}
	return assignments, nil
}

func (s *Storage) UpdateAssignmentTeam(ctx context.Context, id model.AssignmentID, team model.Team) error {
	assignment, err := s.GetAssignment(ctx, id)
	if err != nil {
		return err
	}

	if assignment.Team == team {
		return nil
	}

	assignment.Team = team
	data, err := json.Marshal(assignment)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, assignmentKey(id), data, s.cfg.GameTTL).Err()
}

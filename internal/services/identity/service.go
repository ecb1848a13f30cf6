package identity

import (
	"context"
	"errors"
	"log/slog"

	"github.com/partygames/clockin/internal/dependencies/clock"
	"github.com/partygames/clockin/internal/dependencies/random"
	"github.com/partygames/clockin/internal/model"
	"github.com/partygames/clockin/internal/storage"
)

const (
	// memberIDLength is the length of generated member IDs
	memberIDLength = 12
	// memberIDAlphabet is the characters used in member IDs
	memberIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Service resolves member names to stable member identities.
// Names are exact-match, case-sensitive, and immutable once recorded.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new identity Service
func New(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger.With(slog.String("component", "identity")),
	}
}

// ResolveOrCreate looks up a member by exact name, creating one on first
// sight. Calling it repeatedly with the same name always yields the same
// member.
func (s *Service) ResolveOrCreate(ctx context.Context, name string) (*model.Member, error) {
	member, err := s.storage.GetMemberByName(ctx, name)
	if err == nil {
		return member, nil
	}
	if !errors.Is(err, model.ErrMemberNotFound) {
		return nil, err
	}

	member = &model.Member{
		ID:        model.MemberID("member-" + s.random.String(memberIDLength, memberIDAlphabet)),
		Name:      name,
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.SaveMember(ctx, member); err != nil {
		return nil, err
	}

	s.logger.Info("member created",
		slog.String("member_id", string(member.ID)),
		slog.String("name", member.Name))

	return member, nil
}

// GetMember retrieves a member by ID
func (s *Service) GetMember(ctx context.Context, id model.MemberID) (*model.Member, error) {
	return s.storage.GetMember(ctx, id)
}

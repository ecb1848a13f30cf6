package memory

import (
	"context"
	"sync"

	"github.com/partygames/clockin/internal/model"
	"github.com/partygames/clockin/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	members     map[model.MemberID]*model.Member
	nameIndex   map[string]model.MemberID
	games       map[model.GameID]*model.Game
	assignments map[model.AssignmentID]*model.Assignment
	// gameIndex preserves check-in order per game
	gameIndex   map[model.GameID][]model.AssignmentID
	memberIndex map[assignmentKey]model.AssignmentID
}

type assignmentKey struct {
	gameID   model.GameID
	memberID model.MemberID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		members:     make(map[model.MemberID]*model.Member),
		nameIndex:   make(map[string]model.MemberID),
		games:       make(map[model.GameID]*model.Game),
		assignments: make(map[model.AssignmentID]*model.Assignment),
		gameIndex:   make(map[model.GameID][]model.AssignmentID),
		memberIndex: make(map[assignmentKey]model.AssignmentID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Member operations

func (s *Storage) SaveMember(ctx context.Context, member *model.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[member.ID] = member
	s.nameIndex[member.Name] = member.ID
	return nil
}

func (s *Storage) GetMember(ctx context.Context, id model.MemberID) (*model.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	member, ok := s.members[id]
	if !ok {
		return nil, model.ErrMemberNotFound
	}
	return member, nil
}

func (s *Storage) GetMemberByName(ctx context.Context, name string) (*model.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.nameIndex[name]
	if !ok {
		return nil, model.ErrMemberNotFound
	}
	member, ok := s.members[id]
	if !ok {
		return nil, model.ErrMemberNotFound
	}
	return member, nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game, nil
}

func (s *Storage) GameExists(ctx context.Context, id model.GameID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.games[id]
	return ok, nil
}

// Assignment operations

func (s *Storage) SaveAssignment(ctx context.Context, assignment *model.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := assignmentKey{gameID: assignment.GameID, memberID: assignment.MemberID}
	if _, exists := s.assignments[assignment.ID]; !exists {
		s.gameIndex[assignment.GameID] = append(s.gameIndex[assignment.GameID], assignment.ID)
	}
	s.assignments[assignment.ID] = assignment
	s.memberIndex[key] = assignment.ID
	return nil
}

func (s *Storage) GetAssignment(ctx context.Context, id model.AssignmentID) (*model.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	assignment, ok := s.assignments[id]
	if !ok {
		return nil, model.ErrAssignmentNotFound
	}
	return assignment, nil
}

func (s *Storage) GetAssignmentForMember(ctx context.Context, gameID model.GameID, memberID model.MemberID) (*model.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.memberIndex[assignmentKey{gameID: gameID, memberID: memberID}]
	if !ok {
		return nil, model.ErrAssignmentNotFound
	}
	assignment, ok := s.assignments[id]
	if !ok {
		return nil, model.ErrAssignmentNotFound
	}
	return assignment, nil
}

func (s *Storage) ListAssignmentsForGame(ctx context.Context, gameID model.GameID) ([]*model.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.gameIndex[gameID]
	assignments := make([]*model.Assignment, 0, len(ids))
	for _, id := range ids {
		if a, ok := s.assignments[id]; ok {
			assignments = append(assignments, a)
		}
	}
	return assignments, nil
}

func (s *Storage) ListAssignmentsByTeam(ctx context.Context, gameID model.GameID, team model.Team) ([]*model.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var assignments []*model.Assignment
	for _, id := range s.gameIndex[gameID] {
		if a, ok := s.assignments[id]; ok && a.Team == team {
			assignments = append(assignments, a)
		}
	}
	return assignments, nil
}

func (s *Storage) ListAssignmentsByStatus(ctx context.Context, gameID model.GameID, status model.Status) ([]*model.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var assignments []*model.Assignment
	for _, id := range s.gameIndex[gameID] {
		if a, ok := s.assignments[id]; ok && a.Status == status {
			assignments = append(assignments, a)
		}
	}
	return assignments, nil
}

func (s *Storage) UpdateAssignmentTeam(ctx context.Context, id model.AssignmentID, team model.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	assignment, ok := s.assignments[id]
	if !ok {
		return model.ErrAssignmentNotFound
	}
	if assignment.Team == team {
		return nil
	}
	updated := *assignment
	updated.Team = team
	s.assignments[id] = &updated
	return nil
}

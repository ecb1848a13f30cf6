package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/partygames/clockin/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Member tests

func (s *StorageSuite) TestSaveAndGetMember() {
	member := &model.Member{
		ID:        "member-1",
		Name:      "Alex",
		CreatedAt: time.Now().UTC(),
	}

	err := s.storage.SaveMember(s.ctx, member)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetMember(s.ctx, "member-1")
	s.Require().NoError(err)
	s.Equal(member.ID, retrieved.ID)
	s.Equal(member.Name, retrieved.Name)
}

func (s *StorageSuite) TestGetMemberNotFound() {
	_, err := s.storage.GetMember(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrMemberNotFound)
}

func (s *StorageSuite) TestGetMemberByName() {
	member := &model.Member{ID: "member-1", Name: "Alex"}
	_ = s.storage.SaveMember(s.ctx, member)

	retrieved, err := s.storage.GetMemberByName(s.ctx, "Alex")
	s.Require().NoError(err)
	s.Equal(model.MemberID("member-1"), retrieved.ID)

	_, err = s.storage.GetMemberByName(s.ctx, "alex")
	s.ErrorIs(err, model.ErrMemberNotFound)
}

// Game tests

func (s *StorageSuite) TestSaveAndGetGame() {
	game := &model.Game{ID: "game-1", Name: "Game 1", Date: time.Now().UTC()}

	err := s.storage.SaveGame(s.ctx, game)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(game.Name, retrieved.Name)
}

func (s *StorageSuite) TestGameExists() {
	exists, err := s.storage.GameExists(s.ctx, "game-1")
	s.Require().NoError(err)
	s.False(exists)

	_ = s.storage.SaveGame(s.ctx, &model.Game{ID: "game-1", Name: "Game 1"})

	exists, err = s.storage.GameExists(s.ctx, "game-1")
	s.Require().NoError(err)
	s.True(exists)
}

// Assignment tests

func (s *StorageSuite) assignment(id model.AssignmentID, memberID model.MemberID, team model.Team, status model.Status) *model.Assignment {
	return &model.Assignment{
		ID:       id,
		GameID:   "game-1",
		MemberID: memberID,
		Team:     team,
		Status:   status,
	}
}

func (s *StorageSuite) TestSaveAndGetAssignment() {
	err := s.storage.SaveAssignment(s.ctx, s.assignment("a-1", "member-1", model.TeamOne, model.StatusNice))
	s.Require().NoError(err)

	retrieved, err := s.storage.GetAssignment(s.ctx, "a-1")
	s.Require().NoError(err)
	s.Equal(model.TeamOne, retrieved.Team)
	s.Equal(model.StatusNice, retrieved.Status)
}

func (s *StorageSuite) TestGetAssignmentForMember() {
	_ = s.storage.SaveAssignment(s.ctx, s.assignment("a-1", "member-1", model.TeamOne, model.StatusNice))

	retrieved, err := s.storage.GetAssignmentForMember(s.ctx, "game-1", "member-1")
	s.Require().NoError(err)
	s.Equal(model.AssignmentID("a-1"), retrieved.ID)

	_, err = s.storage.GetAssignmentForMember(s.ctx, "game-1", "member-2")
	s.ErrorIs(err, model.ErrAssignmentNotFound)
}

func (s *StorageSuite) TestListAssignmentsForGamePreservesOrder() {
	_ = s.storage.SaveAssignment(s.ctx, s.assignment("a-1", "member-1", model.TeamOne, model.StatusNice))
	_ = s.storage.SaveAssignment(s.ctx, s.assignment("a-2", "member-2", model.TeamTwo, model.StatusNaughty))
	_ = s.storage.SaveAssignment(s.ctx, s.assignment("a-3", "member-3", model.TeamOne, model.StatusNice))

	assignments, err := s.storage.ListAssignmentsForGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Require().Len(assignments, 3)
	s.Equal(model.AssignmentID("a-1"), assignments[0].ID)
	s.Equal(model.AssignmentID("a-2"), assignments[1].ID)
	s.Equal(model.AssignmentID("a-3"), assignments[2].ID)
}

func (s *StorageSuite) TestResavingAssignmentDoesNotDuplicateOrder() {
	a := s.assignment("a-1", "member-1", model.TeamOne, model.StatusNice)
	_ = s.storage.SaveAssignment(s.ctx, a)
	_ = s.storage.SaveAssignment(s.ctx, a)

	assignments, err := s.storage.ListAssignmentsForGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Len(assignments, 1)
}

func (s *StorageSuite) TestListAssignmentsByTeamAndStatus() {
	_ = s.storage.SaveAssignment(s.ctx, s.assignment("a-1", "member-1", model.TeamOne, model.StatusNice))
	_ = s.storage.SaveAssignment(s.ctx, s.assignment("a-2", "member-2", model.TeamTwo, model.StatusNice))
	_ = s.storage.SaveAssignment(s.ctx, s.assignment("a-3", "member-3", model.TeamOne, model.StatusNaughty))

	team1, err := s.storage.ListAssignmentsByTeam(s.ctx, "game-1", model.TeamOne)
	s.Require().NoError(err)
	s.Len(team1, 2)

	nice, err := s.storage.ListAssignmentsByStatus(s.ctx, "game-1", model.StatusNice)
	s.Require().NoError(err)
	s.Len(nice, 2)
}

func (s *StorageSuite) TestUpdateAssignmentTeam() {
	_ = s.storage.SaveAssignment(s.ctx, s.assignment("a-1", "member-1", model.TeamOne, model.StatusNice))

	err := s.storage.UpdateAssignmentTeam(s.ctx, "a-1", model.TeamTwo)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetAssignment(s.ctx, "a-1")
	s.Require().NoError(err)
	s.Equal(model.TeamTwo, retrieved.Team)
	s.Equal(model.StatusNice, retrieved.Status)
}

func (s *StorageSuite) TestUpdateAssignmentTeamNotFound() {
	err := s.storage.UpdateAssignmentTeam(s.ctx, "missing", model.TeamTwo)
	s.ErrorIs(err, model.ErrAssignmentNotFound)
}

func (s *StorageSuite) TestGameTTLAppliedToAssignments() {
	cfgWithTTL := DefaultConfig()
	cfgWithTTL.GameTTL = time.Hour

	client := redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	store := NewWithClient(client, cfgWithTTL)
	defer func() { _ = store.Close() }()

	_ = store.SaveAssignment(s.ctx, s.assignment("a-ttl", "member-1", model.TeamOne, model.StatusNice))

	s.Positive(s.mini.TTL(assignmentKey("a-ttl")))
	s.Positive(s.mini.TTL(assignmentsForGameIndexKey("game-1")))
}

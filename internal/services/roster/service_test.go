package roster

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/partygames/clockin/internal/model"
	"github.com/partygames/clockin/internal/storage/memory"
	"github.com/partygames/clockin/internal/testutil"
	"github.com/partygames/clockin/internal/watch"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	bus     *watch.Bus
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.bus = watch.NewBus(testutil.NopLogger())
	s.service = New(s.storage, s.bus, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) addMember(id model.MemberID, name string) {
	err := s.storage.SaveMember(s.ctx, &model.Member{ID: id, Name: name})
	s.Require().NoError(err)
}

func (s *ServiceSuite) addAssignment(id model.AssignmentID, memberID model.MemberID, team model.Team, status model.Status) {
	err := s.storage.SaveAssignment(s.ctx, &model.Assignment{
		ID:       id,
		GameID:   "game-1",
		MemberID: memberID,
		Team:     team,
		Status:   status,
	})
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestSnapshotEmptyGame() {
	entries, err := s.service.Snapshot(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *ServiceSuite) TestSnapshotJoinsMemberNames() {
	s.addMember("member-1", "Alex")
	s.addMember("member-2", "Sam")
	s.addAssignment("a-1", "member-1", model.TeamOne, model.StatusNice)
	s.addAssignment("a-2", "member-2", model.TeamTwo, model.StatusNaughty)

	entries, err := s.service.Snapshot(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Require().Len(entries, 2)

	// Check-in order preserved
	s.Equal("Alex", entries[0].MemberName)
	s.Equal(model.TeamOne, entries[0].Team)
	s.Equal(model.StatusNice, entries[0].Status)
	s.Equal("Sam", entries[1].MemberName)
	s.Equal(model.TeamTwo, entries[1].Team)
}

func (s *ServiceSuite) TestSnapshotFailsOnDanglingMember() {
	s.addAssignment("a-1", "member-ghost", model.TeamOne, model.StatusNice)

	_, err := s.service.Snapshot(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrMemberNotFound)
}

func (s *ServiceSuite) TestObserveDeliversInitialSnapshot() {
	s.addMember("member-1", "Alex")
	s.addAssignment("a-1", "member-1", model.TeamOne, model.StatusNice)

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	snapshots, err := s.service.Observe(ctx, "game-1")
	s.Require().NoError(err)

	select {
	case entries := <-snapshots:
		s.Require().Len(entries, 1)
		s.Equal("Alex", entries[0].MemberName)
	case <-time.After(time.Second):
		s.Fail("no initial snapshot")
	}
}

func (s *ServiceSuite) TestObserveRefreshesOnPublishedWrite() {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	snapshots, err := s.service.Observe(ctx, "game-1")
	s.Require().NoError(err)

	// Drain the initial empty snapshot
	select {
	case entries := <-snapshots:
		s.Empty(entries)
	case <-time.After(time.Second):
		s.Fail("no initial snapshot")
	}

	// Write then publish, in that order
	s.addMember("member-1", "Alex")
	s.addAssignment("a-1", "member-1", model.TeamOne, model.StatusNice)
	s.bus.Publish(model.Event{
		Type:   model.EventMemberCheckedIn,
		GameID: "game-1",
	})

	select {
	case entries := <-snapshots:
		s.Require().Len(entries, 1)
		s.Equal("Alex", entries[0].MemberName)
	case <-time.After(time.Second):
		s.Fail("no refreshed snapshot")
	}
}

func (s *ServiceSuite) TestObserveIgnoresOtherGames() {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	snapshots, err := s.service.Observe(ctx, "game-1")
	s.Require().NoError(err)
	<-snapshots // initial

	s.bus.Publish(model.Event{Type: model.EventMemberCheckedIn, GameID: "game-2"})

	select {
	case <-snapshots:
		s.Fail("refreshed for an unrelated game")
	case <-time.After(50 * time.Millisecond):
	}
}

func (s *ServiceSuite) TestObserveClosesOnCancel() {
	ctx, cancel := context.WithCancel(s.ctx)

	snapshots, err := s.service.Observe(ctx, "game-1")
	s.Require().NoError(err)
	<-snapshots // initial

	cancel()

	select {
	case _, open := <-snapshots:
		s.False(open)
	case <-time.After(time.Second):
		s.Fail("channel not closed after cancel")
	}
}

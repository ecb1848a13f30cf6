package checkin

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/partygames/clockin/internal/dependencies/mocks"
	"github.com/partygames/clockin/internal/model"
	"github.com/partygames/clockin/internal/services/game"
	"github.com/partygames/clockin/internal/services/identity"
	"github.com/partygames/clockin/internal/storage/memory"
	"github.com/partygames/clockin/internal/testutil"
	"github.com/partygames/clockin/internal/watch"
)

const testGame = model.GameID("game-1")

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	random     *mocks.MockRandom
	clock      *mocks.MockClock
	bus        *watch.Bus
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.setup(DefaultConfig())
}

func (s *ControllerSuite) setup(cfg Config) {
	s.storage = memory.New()
	s.random = mocks.NewMockRandom()
	s.random.StringSequence = true
	s.clock = mocks.NewMockClock(time.Date(2025, 12, 24, 18, 0, 0, 0, time.UTC))
	s.bus = watch.NewBus(testutil.NopLogger())
	logger := testutil.NopLogger()

	identityService := identity.New(s.storage, s.clock, s.random, logger)
	gameService := game.New(s.storage, s.clock, logger)
	s.controller = NewController(s.storage, identityService, gameService, s.bus, s.clock, s.random, cfg, logger)
	s.ctx = context.Background()
}

func payloadFor(name string) string {
	return "https://example.com/checkin?member=" + name
}

// Payload parsing tests

func (s *ControllerSuite) TestMemberNameFromPayload() {
	name, err := MemberNameFromPayload("https://example.com/checkin?member=Alex")
	s.Require().NoError(err)
	s.Equal("Alex", name)
}

func (s *ControllerSuite) TestMemberNameFromPayloadEncodedName() {
	name, err := MemberNameFromPayload("https://example.com/checkin?member=Mary%20Lou&station=2")
	s.Require().NoError(err)
	s.Equal("Mary Lou", name)
}

func (s *ControllerSuite) TestMemberNameFromPayloadNotAURL() {
	_, err := MemberNameFromPayload("not a url")
	s.ErrorIs(err, model.ErrInvalidPayload)
}

func (s *ControllerSuite) TestMemberNameFromPayloadMissingParam() {
	_, err := MemberNameFromPayload("https://example.com/checkin?player=Alex")
	s.ErrorIs(err, model.ErrInvalidPayload)
}

func (s *ControllerSuite) TestMemberNameFromPayloadEmptyValue() {
	_, err := MemberNameFromPayload("https://example.com/checkin?member=")
	s.ErrorIs(err, model.ErrInvalidPayload)
}

// Check-in tests

func (s *ControllerSuite) TestFirstCheckInGoesToTeamOne() {
	result, err := s.controller.CheckIn(s.ctx, payloadFor("Alex"), testGame)
	s.Require().NoError(err)

	s.Equal("Alex", result.Member.Name)
	// Tie-break: empty game, counts 0-0, team1 wins the tie
	s.Equal(model.TeamOne, result.Assignment.Team)
	s.False(result.Rebalanced)

	assignments, err := s.storage.ListAssignmentsForGame(s.ctx, testGame)
	s.Require().NoError(err)
	s.Len(assignments, 1)
}

func (s *ControllerSuite) TestSecondCheckInGoesToTeamTwo() {
	_, err := s.controller.CheckIn(s.ctx, payloadFor("Alex"), testGame)
	s.Require().NoError(err)

	result, err := s.controller.CheckIn(s.ctx, payloadFor("Sam"), testGame)
	s.Require().NoError(err)

	// Counts 1-0, team2 is smaller
	s.Equal(model.TeamTwo, result.Assignment.Team)

	s.Equal(1, s.teamCount(model.TeamOne))
	s.Equal(1, s.teamCount(model.TeamTwo))
}

func (s *ControllerSuite) TestRescanFailsWithAlreadyCheckedIn() {
	_, err := s.controller.CheckIn(s.ctx, payloadFor("Alex"), testGame)
	s.Require().NoError(err)
	_, err = s.controller.CheckIn(s.ctx, payloadFor("Sam"), testGame)
	s.Require().NoError(err)

	_, err = s.controller.CheckIn(s.ctx, payloadFor("Alex"), testGame)
	s.ErrorIs(err, model.ErrAlreadyCheckedIn)

	// Assignment set unchanged
	assignments, listErr := s.storage.ListAssignmentsForGame(s.ctx, testGame)
	s.Require().NoError(listErr)
	s.Len(assignments, 2)
}

func (s *ControllerSuite) TestInvalidPayloadMutatesNothing() {
	_, err := s.controller.CheckIn(s.ctx, "not a url", testGame)
	s.ErrorIs(err, model.ErrInvalidPayload)

	assignments, listErr := s.storage.ListAssignmentsForGame(s.ctx, testGame)
	s.Require().NoError(listErr)
	s.Empty(assignments)

	// No game record was created either
	_, err = s.storage.GetGame(s.ctx, testGame)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestFourCheckInsSplitEvenly() {
	for _, name := range []string{"A", "B", "C", "D"} {
		_, err := s.controller.CheckIn(s.ctx, payloadFor(name), testGame)
		s.Require().NoError(err)
	}

	s.Equal(2, s.teamCount(model.TeamOne))
	s.Equal(2, s.teamCount(model.TeamTwo))
}

func (s *ControllerSuite) TestBalanceBoundHoldsAtEveryStep() {
	for i := 0; i < 9; i++ {
		_, err := s.controller.CheckIn(s.ctx, payloadFor(fmt.Sprintf("Guest%d", i)), testGame)
		s.Require().NoError(err)

		diff := s.teamCount(model.TeamOne) - s.teamCount(model.TeamTwo)
		if diff < 0 {
			diff = -diff
		}
		s.LessOrEqual(diff, 1, "balance bound violated after check-in %d", i)
	}
}

func (s *ControllerSuite) TestSameMemberCanJoinDifferentGames() {
	first, err := s.controller.CheckIn(s.ctx, payloadFor("Alex"), "game-1")
	s.Require().NoError(err)

	second, err := s.controller.CheckIn(s.ctx, payloadFor("Alex"), "game-2")
	s.Require().NoError(err)

	s.Equal(first.Member.ID, second.Member.ID)
	s.NotEqual(first.Assignment.ID, second.Assignment.ID)
}

func (s *ControllerSuite) TestCheckInCreatesGameLazily() {
	_, err := s.controller.CheckIn(s.ctx, payloadFor("Alex"), testGame)
	s.Require().NoError(err)

	_, err = s.storage.GetGame(s.ctx, testGame)
	s.NoError(err)
}

// Status drawing tests

func (s *ControllerSuite) TestStatusDrawFollowsRandomSource() {
	s.random.QueueIntn(0, 1)

	nice, err := s.controller.CheckIn(s.ctx, payloadFor("Alex"), testGame)
	s.Require().NoError(err)
	s.Equal(model.StatusNice, nice.Assignment.Status)

	naughty, err := s.controller.CheckIn(s.ctx, payloadFor("Sam"), testGame)
	s.Require().NoError(err)
	s.Equal(model.StatusNaughty, naughty.Assignment.Status)
}

func (s *ControllerSuite) TestStatusSurvivesRebalance() {
	s.random.QueueIntn(1) // Alex draws naughty
	result, err := s.controller.CheckIn(s.ctx, payloadFor("Alex"), testGame)
	s.Require().NoError(err)
	s.Equal(model.StatusNaughty, result.Assignment.Status)

	for _, name := range []string{"B", "C", "D", "E"} {
		_, err := s.controller.CheckIn(s.ctx, payloadFor(name), testGame)
		s.Require().NoError(err)
	}

	_, err = s.controller.Rebalance(s.ctx, testGame)
	s.Require().NoError(err)

	current, err := s.storage.GetAssignment(s.ctx, result.Assignment.ID)
	s.Require().NoError(err)
	s.Equal(model.StatusNaughty, current.Status)
}

// Rebalance tests

func (s *ControllerSuite) checkInSeveral(n int) {
	for i := 0; i < n; i++ {
		_, err := s.controller.CheckIn(s.ctx, payloadFor(fmt.Sprintf("Guest%d", i)), testGame)
		s.Require().NoError(err)
	}
}

func (s *ControllerSuite) TestRebalanceEmptyGameIsNoop() {
	changed, err := s.controller.Rebalance(s.ctx, testGame)
	s.Require().NoError(err)
	s.Zero(changed)
}

func (s *ControllerSuite) TestRebalancePreservesCountAndSplit() {
	s.checkInSeveral(6)

	before, err := s.storage.ListAssignmentsForGame(s.ctx, testGame)
	s.Require().NoError(err)

	_, err = s.controller.Rebalance(s.ctx, testGame)
	s.Require().NoError(err)

	after, err := s.storage.ListAssignmentsForGame(s.ctx, testGame)
	s.Require().NoError(err)

	s.Len(after, len(before))
	// Even roster rebalances to an exact split
	s.Equal(3, s.teamCount(model.TeamOne))
	s.Equal(3, s.teamCount(model.TeamTwo))
}

func (s *ControllerSuite) TestRebalanceOddRosterGivesExtraToTeamOne() {
	s.checkInSeveral(5)

	_, err := s.controller.Rebalance(s.ctx, testGame)
	s.Require().NoError(err)

	s.Equal(3, s.teamCount(model.TeamOne))
	s.Equal(2, s.teamCount(model.TeamTwo))
}

func (s *ControllerSuite) TestRebalanceOnBalancedRosterWritesNothing() {
	s.checkInSeveral(4)

	// With the mock random every Intn is 0, so the Fisher-Yates pass
	// rotates the roster deterministically; force a run where the shuffle
	// is the identity by rebalancing twice and checking the second pass
	first, err := s.controller.Rebalance(s.ctx, testGame)
	s.Require().NoError(err)

	second, err := s.controller.Rebalance(s.ctx, testGame)
	s.Require().NoError(err)

	// Identical shuffle outcome twice in a row moves nobody the second time
	s.GreaterOrEqual(first, 0)
	s.Zero(second)
}

func (s *ControllerSuite) TestRebalanceAfterCheckInConfig() {
	s.setup(Config{RebalanceAfterCheckIn: true})

	for _, name := range []string{"A", "B", "C"} {
		result, err := s.controller.CheckIn(s.ctx, payloadFor(name), testGame)
		s.Require().NoError(err)
		// Result reflects the post-rebalance team
		current, getErr := s.storage.GetAssignment(s.ctx, result.Assignment.ID)
		s.Require().NoError(getErr)
		s.Equal(current.Team, result.Assignment.Team)
	}

	diff := s.teamCount(model.TeamOne) - s.teamCount(model.TeamTwo)
	if diff < 0 {
		diff = -diff
	}
	s.LessOrEqual(diff, 1)
}

// Event publication tests

func (s *ControllerSuite) TestCheckInPublishesEvent() {
	sub := s.bus.Subscribe(testGame)
	defer sub.Close()

	_, err := s.controller.CheckIn(s.ctx, payloadFor("Alex"), testGame)
	s.Require().NoError(err)

	select {
	case ev := <-sub.C:
		s.Equal(model.EventMemberCheckedIn, ev.Type)
		payload, ok := ev.Payload.(model.MemberCheckedInPayload)
		s.Require().True(ok)
		s.Equal("Alex", payload.MemberName)
	case <-time.After(time.Second):
		s.Fail("no event published")
	}
}

func (s *ControllerSuite) TestFailedCheckInPublishesNothing() {
	sub := s.bus.Subscribe(testGame)
	defer sub.Close()

	_, err := s.controller.CheckIn(s.ctx, "not a url", testGame)
	s.ErrorIs(err, model.ErrInvalidPayload)

	select {
	case <-sub.C:
		s.Fail("event published for failed check-in")
	case <-time.After(50 * time.Millisecond):
	}
}

func (s *ControllerSuite) teamCount(team model.Team) int {
	assignments, err := s.storage.ListAssignmentsByTeam(s.ctx, testGame, team)
	s.Require().NoError(err)
	return len(assignments)
}

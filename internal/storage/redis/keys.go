package redis

import (
	"fmt"

	"github.com/partygames/clockin/internal/model"
)

// Key prefix for all check-in data
const keyPrefix = "clockin"

// Key generation functions for each entity type

// memberKey returns the Redis key for a Member
func memberKey(id model.MemberID) string {
	return fmt.Sprintf("%s:member:%s", keyPrefix, id)
}

// memberNameIndexKey returns the Redis key for the name -> member_id index
func memberNameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:member_name:%s", keyPrefix, name)
}

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// assignmentKey returns the Redis key for an Assignment
func assignmentKey(id model.AssignmentID) string {
	return fmt.Sprintf("%s:assignment:%s", keyPrefix, id)
}

// assignmentsForGameIndexKey returns the Redis key for the LIST of
// assignment IDs for a game, in check-in order
func assignmentsForGameIndexKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:idx:assignments_for_game:%s", keyPrefix, gameID)
}

// assignmentForMemberIndexKey returns the Redis key for the
// (game, member) -> assignment_id index
func assignmentForMemberIndexKey(gameID model.GameID, memberID model.MemberID) string {
	return fmt.Sprintf("%s:idx:assignment_for_member:%s:%s", keyPrefix, gameID, memberID)
}

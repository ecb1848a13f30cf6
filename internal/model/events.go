package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventGameCreated     EventType = "game_created"
	EventMemberCheckedIn EventType = "member_checked_in"
	EventTeamsRebalanced EventType = "teams_rebalanced"
)

// Event is published on every successful assignment write so that live
// roster views can re-run their join query. Publication happens only after
// the underlying store write has completed.
type Event struct {
	Type      EventType
	Timestamp time.Time
	GameID    GameID
	MemberID  MemberID // Empty for game-wide events
	Payload   any      // Type-specific data
}

// MemberCheckedInPayload contains data for member checked in events
type MemberCheckedInPayload struct {
	MemberName string
	Team       Team
	Status     Status
}

// TeamsRebalancedPayload contains data for teams rebalanced events
type TeamsRebalancedPayload struct {
	Changed int
}

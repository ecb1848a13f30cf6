package model

import "time"

// AssignmentID uniquely identifies an assignment
type AssignmentID string

// Team identifies one of the two tables members are split across
type Team string

const (
	TeamOne Team = "team1"
	TeamTwo Team = "team2"
)

// Status is the list category a member lands on for a game.
// It is assigned at check-in and never changes.
type Status string

const (
	StatusNice    Status = "nice"
	StatusNaughty Status = "naughty"
)

// Assignment binds a member to a team and a list category within one game.
// At most one assignment exists per (GameID, MemberID). Team may be rewritten
// by a rebalance pass; Status is immutable once set.
type Assignment struct {
	ID          AssignmentID
	GameID      GameID
	MemberID    MemberID
	Team        Team
	Status      Status
	CheckedInAt time.Time
}

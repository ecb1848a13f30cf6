package model

import "time"

// MemberID uniquely identifies a member across the system
type MemberID string

// Member is a uniquely named participant. Members are created once per
// distinct name and reused across games; the name is the natural key at
// check-in time, the ID is the foreign key everywhere else.
type Member struct {
	ID        MemberID
	Name      string
	CreatedAt time.Time
}

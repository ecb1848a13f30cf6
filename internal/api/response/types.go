package response

import (
	"time"

	"github.com/partygames/clockin/internal/model"
	"github.com/partygames/clockin/internal/services/checkin"
	"github.com/partygames/clockin/internal/services/roster"
)

// Game represents a game in API responses
type Game struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

// GameFromModel converts a model.Game to a response Game
func GameFromModel(g *model.Game) Game {
	return Game{
		ID:   string(g.ID),
		Name: g.Name,
		Date: g.Date,
	}
}

// RosterEntry represents one roster row
type RosterEntry struct {
	MemberName  string    `json:"member_name"`
	Team        string    `json:"team"`
	Status      string    `json:"status"`
	CheckedInAt time.Time `json:"checked_in_at"`
}

// RosterEntryFromService converts a roster.Entry
func RosterEntryFromService(e roster.Entry) RosterEntry {
	return RosterEntry{
		MemberName:  e.MemberName,
		Team:        string(e.Team),
		Status:      string(e.Status),
		CheckedInAt: e.CheckedInAt,
	}
}

// Roster is the full live view for a game
type Roster struct {
	GameID  string        `json:"game_id"`
	Entries []RosterEntry `json:"entries"`
}

// RosterFromService converts a snapshot to a response Roster
func RosterFromService(gameID model.GameID, entries []roster.Entry) Roster {
	rows := make([]RosterEntry, len(entries))
	for i, e := range entries {
		rows[i] = RosterEntryFromService(e)
	}
	return Roster{
		GameID:  string(gameID),
		Entries: rows,
	}
}

// GroupedRoster is the display-oriented view, grouped by team and by list
// category the way the station screens lay the tables out
type GroupedRoster struct {
	GameID  string   `json:"game_id"`
	Team1   []string `json:"team1"`
	Team2   []string `json:"team2"`
	Nice    []string `json:"nice"`
	Naughty []string `json:"naughty"`
}

// CheckInResult is the response for a successful check-in
type CheckInResult struct {
	MemberName string `json:"member_name"`
	Team       string `json:"team"`
	Status     string `json:"status"`
	Rebalanced bool   `json:"rebalanced"`
}

// CheckInResultFromService converts a checkin.Result
func CheckInResultFromService(r *checkin.Result) CheckInResult {
	return CheckInResult{
		MemberName: r.Member.Name,
		Team:       string(r.Assignment.Team),
		Status:     string(r.Assignment.Status),
		Rebalanced: r.Rebalanced,
	}
}

// RebalanceResult is the response for an explicit rebalance pass
type RebalanceResult struct {
	Changed int `json:"changed"`
}

// GameView combines a game with its current roster
type GameView struct {
	Game   Game   `json:"game"`
	Roster Roster `json:"roster"`
}

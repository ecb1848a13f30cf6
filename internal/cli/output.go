package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case GameView:
		o.printGameView(v)
	case GroupedRoster:
		o.printGroupedRoster(v)
	case CheckInResult:
		o.printCheckInResult(v)
	case RebalanceResult:
		o.printRebalanceResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Game response type (matches API)
type Game struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

// RosterEntry response type
type RosterEntry struct {
	MemberName  string    `json:"member_name"`
	Team        string    `json:"team"`
	Status      string    `json:"status"`
	CheckedInAt time.Time `json:"checked_in_at"`
}

// Roster response type
type Roster struct {
	GameID  string        `json:"game_id"`
	Entries []RosterEntry `json:"entries"`
}

// GameView response type
type GameView struct {
	Game   Game   `json:"game"`
	Roster Roster `json:"roster"`
}

// GroupedRoster response type
type GroupedRoster struct {
	GameID  string   `json:"game_id"`
	Team1   []string `json:"team1"`
	Team2   []string `json:"team2"`
	Nice    []string `json:"nice"`
	Naughty []string `json:"naughty"`
}

// CheckInResult response type
type CheckInResult struct {
	MemberName string `json:"member_name"`
	Team       string `json:"team"`
	Status     string `json:"status"`
	Rebalanced bool   `json:"rebalanced"`
}

// RebalanceResult response type
type RebalanceResult struct {
	Changed int `json:"changed"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printGameView(v GameView) {
	fmt.Printf("Game: %s (%s)\n", v.Game.Name, v.Game.ID)
	fmt.Printf("Date: %s\n", v.Game.Date.Format("2006-01-02"))
	fmt.Printf("Checked in (%d):\n", len(v.Roster.Entries))
	for _, e := range v.Roster.Entries {
		fmt.Printf("  - %s: %s / %s (at %s)\n",
			e.MemberName, e.Team, e.Status, e.CheckedInAt.Format("15:04:05"))
	}
}

func (o *Output) printGroupedRoster(r GroupedRoster) {
	fmt.Printf("Roster for %s:\n", r.GameID)
	fmt.Printf("Team 1 (%d): %s\n", len(r.Team1), strings.Join(r.Team1, ", "))
	fmt.Printf("Team 2 (%d): %s\n", len(r.Team2), strings.Join(r.Team2, ", "))
	fmt.Printf("Nice (%d): %s\n", len(r.Nice), strings.Join(r.Nice, ", "))
	fmt.Printf("Naughty (%d): %s\n", len(r.Naughty), strings.Join(r.Naughty, ", "))
}

func (o *Output) printCheckInResult(r CheckInResult) {
	fmt.Printf("Checked in: %s\n", r.MemberName)
	fmt.Printf("Team: %s\n", r.Team)
	fmt.Printf("List: %s\n", r.Status)
	if r.Rebalanced {
		fmt.Println("Teams were rebalanced")
	}
}

func (o *Output) printRebalanceResult(r RebalanceResult) {
	if r.Changed == 0 {
		fmt.Println("Teams already balanced, nothing changed")
	} else {
		fmt.Printf("Rebalanced: %d member(s) moved\n", r.Changed)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

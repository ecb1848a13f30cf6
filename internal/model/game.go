package model

import (
	"fmt"
	"time"
)

// GameID uniquely identifies a game
type GameID string

// Game is one instance of the event being tracked. Assignments are scoped
// per game. Games are created lazily the first time they are viewed.
type Game struct {
	ID   GameID
	Name string
	Date time.Time
}

// GameIDForLabel derives the internal game ID from a human-facing game label
// (e.g. the small integer on the station signage). The template is fixed so
// re-entering the same label resumes the same assignment set across restarts.
func GameIDForLabel(label string) GameID {
	return GameID(fmt.Sprintf("game-%s", label))
}

// GameNameForLabel returns the display name for a game label
func GameNameForLabel(label string) string {
	return fmt.Sprintf("Game %s", label)
}

package ledger

import (
	"time"

	"github.com/shaswat2031/rungo/internal/capture"
)

// Territory is a finalized claimed loop. Written once, immutable thereafter.
type Territory struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userId"`
	Team      string       `json:"team,omitempty"`
	Path      capture.Path `json:"path"`
	AreaM2    float64      `json:"area"` // post-multiplier
	Color     string       `json:"color,omitempty"`
	City      string       `json:"city,omitempty"`
	ClaimedAt time.Time    `json:"timestamp"`
}

// Stats is the per-user aggregate snapshot supplied with a claim. The ledger
// sets these fields as given and increments the loop count itself.
type Stats struct {
	XP             int     `json:"xp"`
	Level          int     `json:"level"`
	TotalAreaM2    float64 `json:"totalArea"`
	TotalDistanceM float64 `json:"totalDistance"`
	LoopCount      int     `json:"loopCount"`
	LongestRunM    float64 `json:"longestRun"`
	Team           string  `json:"team,omitempty"`
}

// LeaderboardEntry is one row of the area-owned ranking. Area is km²,
// rounded to two decimals.
type LeaderboardEntry struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Team    string  `json:"team"`
	AreaKm2 float64 `json:"area"`
}

// Level derives the player level from accumulated XP.
func Level(xp int) int {
	return xp/1000 + 1
}

// XPForArea converts claimed square meters into experience.
func XPForArea(areaM2 float64) int {
	return int(areaM2 / 10)
}

// Package mission generates and tracks the rotating daily objectives shown
// alongside capture play. Pure logic: progress lives with the caller.
package mission

// Type selects which gameplay events feed a mission.
type Type string

const (
	CaptureArea Type = "capture_area" // claimed square meters
	DistanceRun Type = "distance_run" // meters covered in one session
	Patterns    Type = "patterns"     // completed loops
)

type Mission struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	GoalValue    float64 `json:"goalValue"`
	CurrentValue float64 `json:"currentValue"`
	Type         Type    `json:"type"`
	RewardXP     int     `json:"rewardXP"`
	IsCompleted  bool    `json:"isCompleted"`
}

// GenerateDaily returns the day's mission set.
func GenerateDaily() []Mission {
	return []Mission{
		{
			ID:          "m1",
			Title:       "Land Grab",
			Description: "Capture a total of 0.05 km²",
			GoalValue:   50000,
			Type:        CaptureArea,
			RewardXP:    500,
		},
		{
			ID:          "m2",
			Title:       "Marathon Lite",
			Description: "Run 2 kilometers in one session",
			GoalValue:   2000,
			Type:        DistanceRun,
			RewardXP:    300,
		},
		{
			ID:          "m3",
			Title:       "Geometrician",
			Description: "Complete 3 territory captures",
			GoalValue:   3,
			Type:        Patterns,
			RewardXP:    450,
		},
	}
}

// ApplyProgress folds an event value into every matching open mission and
// returns the XP earned from missions completed by it.
func ApplyProgress(missions []Mission, t Type, value float64) ([]Mission, int) {
	earned := 0
	for i, m := range missions {
		if m.Type != t || m.IsCompleted {
			continue
		}
		m.CurrentValue += value
		if m.CurrentValue >= m.GoalValue {
			m.IsCompleted = true
			earned += m.RewardXP
		}
		missions[i] = m
	}
	return missions, earned
}

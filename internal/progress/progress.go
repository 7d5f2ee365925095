package progress

import (
	"time"

	"github.com/google/uuid"
)

// Skill caps and economy.
const (
	MaxSkillLevel   = 5
	XPBoostPerSkill = 0.2
)

// Skill names accepted by UpgradeSkill.
const (
	SkillSpeed    = "speed"
	SkillXPBoost  = "xpBoost"
	SkillHandling = "handling"
)

// Skills holds the three upgradeable skill levels, each in [0, 5].
type Skills struct {
	Speed    int `json:"speed"`
	XPBoost  int `json:"xp_boost"`
	Handling int `json:"handling"`
}

// Vehicle is an unlockable car. Unlocked flips to true once the player
// reaches UnlockLevel and never flips back.
type Vehicle struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Unlocked           bool    `json:"unlocked"`
	UnlockLevel        int     `json:"unlock_level,omitempty"`
	SpeedMultiplier    float64 `json:"speed_multiplier"`
	HandlingMultiplier float64 `json:"handling_multiplier"`
}

// ScoreEntry is one leaderboard row. Immutable once created.
type ScoreEntry struct {
	Score       int       `json:"score"`
	Timestamp   time.Time `json:"timestamp"`
	DisplayName string    `json:"display_name"`
	IsGuest     bool      `json:"is_guest"`
}

// Identity is the lightweight who-am-I pair, kept under its own storage
// key so the menu can read it without deserializing the whole save.
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// Progress is the full persistent player state.
type Progress struct {
	Level            int                     `json:"level"`
	XP               int                     `json:"xp"`
	SkillPoints      int                     `json:"skill_points"`
	Skills           Skills                  `json:"skills"`
	Vehicles         []Vehicle               `json:"vehicles"`
	CurrentVehicleID string                  `json:"current_vehicle_id"`
	Leaderboards     map[string][]ScoreEntry `json:"leaderboards"`
	Identity         Identity                `json:"identity"`
}

// DefaultVehicles returns the stock roster. The starter is always
// unlocked; the rest gate on player level.
func DefaultVehicles() []Vehicle {
	return []Vehicle{
		{ID: "roadster", Name: "Roadster", Unlocked: true, SpeedMultiplier: 1.0, HandlingMultiplier: 1.0},
		{ID: "muscle", Name: "Muscle GT", UnlockLevel: 3, SpeedMultiplier: 1.15, HandlingMultiplier: 0.9},
		{ID: "interceptor", Name: "Interceptor", UnlockLevel: 5, SpeedMultiplier: 1.25, HandlingMultiplier: 1.1},
		{ID: "hyper", Name: "Hypercar X", UnlockLevel: 8, SpeedMultiplier: 1.4, HandlingMultiplier: 0.85},
	}
}

// Default returns a fresh level-1 guest progress. Loads merge saved JSON
// over this value so saves from older builds keep working.
func Default() *Progress {
	return &Progress{
		Level:            1,
		Vehicles:         DefaultVehicles(),
		CurrentVehicleID: "roadster",
		Leaderboards:     make(map[string][]ScoreEntry),
		Identity: Identity{
			ID:          uuid.New().String(),
			DisplayName: "Guest",
			IsGuest:     true,
		},
	}
}

// CurrentVehicle returns the selected vehicle, falling back to the first
// roster entry if the selection is somehow stale.
func (p *Progress) CurrentVehicle() Vehicle {
	for _, v := range p.Vehicles {
		if v.ID == p.CurrentVehicleID {
			return v
		}
	}
	if len(p.Vehicles) > 0 {
		return p.Vehicles[0]
	}
	return Vehicle{ID: "roadster", SpeedMultiplier: 1, HandlingMultiplier: 1}
}

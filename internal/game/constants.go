package game

import "time"

// Simulation timestep
const (
	TickRate   = 60
	FixedDelta = 1.0 / 60.0 // seconds, constant regardless of frame timing
)

// Track geometry (world units)
const (
	LaneOffset = 10.0 // world x distance between adjacent lanes
	PlayerY    = 1.0
	PlayerZ    = 20.0
)

// Lane steering
const (
	LaneLerpRate     = 0.1 // per-tick exponential smoothing factor
	HandlingPerSkill = 0.2
)

// Speed progression
const (
	BaseSpeed        = 20.0
	MaxSpeed         = 72.0
	SpeedRampDivisor = 60.0 // elapsed seconds per +100% base speed
	SpeedPerSkill    = 0.1
)

// Spawning
const (
	BaseSpawnInterval = 1.5 // seconds between spawns at t=0
	MinSpawnInterval  = 0.5 // difficulty ceiling
	SpawnRampDivisor  = 120.0
	PowerUpChance     = 0.2
	ObstacleSpawnZ    = -100.0
	PowerUpSpawnZ     = -120.0
	CullZ             = 30.0 // entity has passed the player
)

// Collision half-extents
const (
	ObstacleHitX = 3.0
	ObstacleHitZ = 4.0
	PowerUpHitX  = 2.0
	PowerUpHitZ  = 3.0
)

// Scoring
const (
	ScorePerUnit      = 1.0 // score per world unit travelled
	ObstaclePassScore = 10.0
	ScorePickupBonus  = 500.0
)

// Power-up effects
const (
	SpeedBoostMultiplier = 1.5
	SlowMoMultiplier     = 0.5
	MagnetRange          = 20.0
	MagnetMinDistance    = 1.0 // below this the pull direction degenerates
	MagnetPullStep       = 0.2 // world units per tick
)

// Mode rules
const (
	TimeAttackLimit = 60.0 // seconds
)

// Effect durations
const (
	SpeedDuration  = 5000 * time.Millisecond
	ShieldDuration = 3000 * time.Millisecond
	SlowMoDuration = 4000 * time.Millisecond
	MagnetDuration = 6000 * time.Millisecond
)

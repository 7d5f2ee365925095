package game

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EntityKind int

const (
	KindObstacle EntityKind = iota
	KindPowerUp
)

func (k EntityKind) String() string {
	switch k {
	case KindPowerUp:
		return "power_up"
	default:
		return "obstacle"
	}
}

// MarshalJSON serializes EntityKind as a string.
func (k EntityKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

type ObstacleType int

const (
	ObstacleBox ObstacleType = iota
	ObstacleCone
	ObstacleBarrier
	ObstacleCar
	ObstacleTruck

	obstacleTypeCount
)

func (o ObstacleType) String() string {
	switch o {
	case ObstacleBox:
		return "box"
	case ObstacleCone:
		return "cone"
	case ObstacleBarrier:
		return "barrier"
	case ObstacleCar:
		return "car"
	case ObstacleTruck:
		return "truck"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes ObstacleType as a string.
func (o ObstacleType) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

type PowerUpType int

const (
	PowerUpSpeed PowerUpType = iota
	PowerUpShield
	PowerUpScore
	PowerUpSlowMo
	PowerUpMagnet

	powerUpTypeCount
)

func (p PowerUpType) String() string {
	switch p {
	case PowerUpSpeed:
		return "speed"
	case PowerUpShield:
		return "shield"
	case PowerUpScore:
		return "score"
	case PowerUpSlowMo:
		return "slowmo"
	case PowerUpMagnet:
		return "magnet"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes PowerUpType as a string.
func (p PowerUpType) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// Entity is a spawned track object: either an obstacle or a power-up.
// The subtype field matching Kind is the meaningful one.
type Entity struct {
	ID        string       `json:"id"`
	Kind      EntityKind   `json:"kind"`
	Obstacle  ObstacleType `json:"obstacle,omitempty"`
	PowerUp   PowerUpType  `json:"power_up,omitempty"`
	Lane      int          `json:"lane"` // -1, 0 or 1
	X         float64      `json:"x"`    // world x; starts at Lane*LaneOffset, magnet may move it
	Z         float64      `json:"z"`    // distance along the track, increases toward the player
	SpawnedAt time.Time    `json:"spawned_at"`
}

// NewObstacle creates an obstacle entity in the given lane at spawn depth.
func NewObstacle(sub ObstacleType, lane int, at time.Time) *Entity {
	return &Entity{
		ID:        uuid.New().String(),
		Kind:      KindObstacle,
		Obstacle:  sub,
		Lane:      lane,
		X:         float64(lane) * LaneOffset,
		Z:         ObstacleSpawnZ,
		SpawnedAt: at,
	}
}

// NewPowerUp creates a power-up entity in the given lane at spawn depth.
func NewPowerUp(sub PowerUpType, lane int, at time.Time) *Entity {
	return &Entity{
		ID:        uuid.New().String(),
		Kind:      KindPowerUp,
		PowerUp:   sub,
		Lane:      lane,
		X:         float64(lane) * LaneOffset,
		Z:         PowerUpSpawnZ,
		SpawnedAt: at,
	}
}

// Passed reports whether the entity has moved past the player and should
// be culled.
func (e *Entity) Passed() bool {
	return e.Z > CullZ
}

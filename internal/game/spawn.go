package game

import (
	"math/rand"
	"time"
)

// Spawner decides when and what to spawn. The rand source is injected so
// tests can run deterministically.
type Spawner struct {
	rng   *rand.Rand
	timer float64 // seconds accumulated since the last spawn
}

// NewSpawner creates a spawner using the given random source.
func NewSpawner(rng *rand.Rand) *Spawner {
	return &Spawner{rng: rng}
}

// Interval returns the current spawn interval in seconds. It shrinks
// linearly with elapsed run time down to the difficulty ceiling.
func Interval(elapsed float64) float64 {
	rate := BaseSpawnInterval - elapsed/SpawnRampDivisor
	if rate < MinSpawnInterval {
		rate = MinSpawnInterval
	}
	return rate
}

// Advance accumulates delta and, when the interval elapses, returns a new
// entity. Returns nil on ticks where nothing spawns.
func (s *Spawner) Advance(delta, elapsed float64, now time.Time) *Entity {
	s.timer += delta
	if s.timer <= Interval(elapsed) {
		return nil
	}
	s.timer = 0

	lane := s.rng.Intn(3) - 1
	if s.rng.Float64() < PowerUpChance {
		sub := PowerUpType(s.rng.Intn(int(powerUpTypeCount)))
		return NewPowerUp(sub, lane, now)
	}
	sub := ObstacleType(s.rng.Intn(int(obstacleTypeCount)))
	return NewObstacle(sub, lane, now)
}

// Reset clears the spawn timer for a new run.
func (s *Spawner) Reset() {
	s.timer = 0
}

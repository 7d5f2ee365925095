package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterval(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  float64
		expected float64
	}{
		{"run start", 0, 1.5},
		{"one minute in", 60, 1.0},
		{"two minutes in", 120, 0.5},
		{"floored at the ceiling", 300, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Interval(tt.elapsed), 1e-9)
		})
	}
}

func TestSpawner_NothingBeforeInterval(t *testing.T) {
	s := NewSpawner(rand.New(rand.NewSource(1)))

	// 1.4s accumulated at t=0 stays under the 1.5s interval.
	for i := 0; i < 84; i++ {
		assert.Nil(t, s.Advance(FixedDelta, 0, time.Now()))
	}
}

func TestSpawner_SpawnsAfterInterval(t *testing.T) {
	s := NewSpawner(rand.New(rand.NewSource(1)))

	var spawned *Entity
	for i := 0; i < 120; i++ { // 2 seconds
		if e := s.Advance(FixedDelta, 0, time.Now()); e != nil {
			spawned = e
			break
		}
	}

	require.NotNil(t, spawned)
	assert.NotEmpty(t, spawned.ID)
	assert.Contains(t, []int{-1, 0, 1}, spawned.Lane)
	assert.Equal(t, float64(spawned.Lane)*LaneOffset, spawned.X)
}

func TestSpawner_TimerResetsAfterSpawn(t *testing.T) {
	s := NewSpawner(rand.New(rand.NewSource(1)))

	first := 0
	var gap int
	ticks := 0
	for i := 0; i < 400; i++ {
		ticks++
		if e := s.Advance(FixedDelta, 0, time.Now()); e != nil {
			if first == 0 {
				first = ticks
			} else {
				gap = ticks - first
				break
			}
		}
	}

	require.NotZero(t, gap)
	// A fresh 1.5s interval, ~91 ticks at 60 TPS.
	assert.InDelta(t, 91, gap, 2)
}

func TestSpawner_MixesObstaclesAndPowerUps(t *testing.T) {
	s := NewSpawner(rand.New(rand.NewSource(7)))

	counts := map[EntityKind]int{}
	lanes := map[int]int{}
	for i := 0; i < 100000; i++ {
		// High elapsed time keeps the interval at the 0.5s floor.
		if e := s.Advance(FixedDelta, 999, time.Now()); e != nil {
			counts[e.Kind]++
			lanes[e.Lane]++
		}
	}

	total := counts[KindObstacle] + counts[KindPowerUp]
	require.Greater(t, total, 1000)

	// Power-ups are a 20% roll.
	ratio := float64(counts[KindPowerUp]) / float64(total)
	assert.InDelta(t, PowerUpChance, ratio, 0.05)

	// All three lanes get used.
	assert.Greater(t, lanes[-1], 0)
	assert.Greater(t, lanes[0], 0)
	assert.Greater(t, lanes[1], 0)
}

func TestSpawner_InitialDepths(t *testing.T) {
	now := time.Now()

	o := NewObstacle(ObstacleTruck, 1, now)
	assert.Equal(t, ObstacleSpawnZ, o.Z)
	assert.Equal(t, KindObstacle, o.Kind)
	assert.Equal(t, ObstacleTruck, o.Obstacle)
	assert.Equal(t, now, o.SpawnedAt)

	p := NewPowerUp(PowerUpMagnet, -1, now)
	assert.Equal(t, PowerUpSpawnZ, p.Z)
	assert.Equal(t, KindPowerUp, p.Kind)
	assert.Equal(t, PowerUpMagnet, p.PowerUp)
	assert.Equal(t, -LaneOffset, p.X)
}

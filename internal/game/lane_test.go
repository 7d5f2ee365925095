package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLaneMotion_Boundaries(t *testing.T) {
	l := NewLaneMotion()

	l.MoveLeft()
	assert.Equal(t, -1, l.Lane)
	l.MoveLeft() // already at the left edge
	assert.Equal(t, -1, l.Lane)

	l.MoveRight()
	l.MoveRight()
	assert.Equal(t, 1, l.Lane)
	l.MoveRight() // already at the right edge
	assert.Equal(t, 1, l.Lane)
}

func TestLaneMotion_Target(t *testing.T) {
	l := NewLaneMotion()
	assert.Equal(t, 0.0, l.Target())

	l.MoveRight()
	assert.Equal(t, LaneOffset, l.Target())

	l.Lane = -1
	assert.Equal(t, -LaneOffset, l.Target())
}

func TestLaneMotion_ConvergesAsymptotically(t *testing.T) {
	l := NewLaneMotion()
	l.MoveRight() // target = 10

	for i := 0; i < 50; i++ {
		l.Step(HandlingFactor(0, 1.0))
	}

	// Within 1% of the target after 50 ticks, but never exactly there.
	assert.InDelta(t, LaneOffset, l.X, LaneOffset*0.01)
	assert.Less(t, l.X, LaneOffset)
}

func TestLaneMotion_HandlingSteersFaster(t *testing.T) {
	slow := NewLaneMotion()
	fast := NewLaneMotion()
	slow.MoveRight()
	fast.MoveRight()

	for i := 0; i < 10; i++ {
		slow.Step(HandlingFactor(0, 1.0))
		fast.Step(HandlingFactor(3, 1.0))
	}

	assert.Greater(t, fast.X, slow.X)
}

func TestLaneMotion_VehicleHandlingMultiplier(t *testing.T) {
	assert.InDelta(t, 1.0, HandlingFactor(0, 1.0), 1e-9)
	assert.InDelta(t, 1.4, HandlingFactor(2, 1.0), 1e-9)
	assert.InDelta(t, 1.26, HandlingFactor(2, 0.9), 1e-9)
}

func TestLaneMotion_Reset(t *testing.T) {
	l := NewLaneMotion()
	l.MoveRight()
	for i := 0; i < 20; i++ {
		l.Step(1.0)
	}

	l.Reset()

	assert.Equal(t, 0, l.Lane)
	assert.Equal(t, 0.0, l.X)
}

func TestLaneMotion_ExactSmoothingStep(t *testing.T) {
	l := NewLaneMotion()
	l.MoveRight()

	l.Step(1.0)
	assert.InDelta(t, 1.0, l.X, 1e-9) // (10-0)*0.1

	l.Step(1.0)
	assert.InDelta(t, 1.9, l.X, 1e-9) // 1 + (10-1)*0.1

	// Closed form: x_n = 10*(1 - 0.9^n)
	for i := 0; i < 8; i++ {
		l.Step(1.0)
	}
	assert.InDelta(t, LaneOffset*(1-math.Pow(0.9, 10)), l.X, 1e-9)
}

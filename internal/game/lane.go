package game

// LaneMotion tracks the player's discrete lane and the continuous world x
// offset easing toward that lane's position. The easing is exponential:
// the offset converges on the target but never reaches it exactly.
type LaneMotion struct {
	Lane int     // -1, 0 or 1
	X    float64 // current world x offset
}

// NewLaneMotion starts in the center lane at offset 0.
func NewLaneMotion() *LaneMotion {
	return &LaneMotion{}
}

// Target returns the world x the offset is converging toward.
func (l *LaneMotion) Target() float64 {
	return float64(l.Lane) * LaneOffset
}

// MoveLeft shifts one lane left. Silently a no-op at the left boundary.
func (l *LaneMotion) MoveLeft() {
	if l.Lane > -1 {
		l.Lane--
	}
}

// MoveRight shifts one lane right. Silently a no-op at the right boundary.
func (l *LaneMotion) MoveRight() {
	if l.Lane < 1 {
		l.Lane++
	}
}

// HandlingFactor composes the handling skill level (20% per point) with
// the current vehicle's handling multiplier.
func HandlingFactor(handlingSkill int, vehicleMult float64) float64 {
	return (1.0 + float64(handlingSkill)*HandlingPerSkill) * vehicleMult
}

// Step advances the offset one tick toward the lane target.
func (l *LaneMotion) Step(handlingFactor float64) {
	l.X += (l.Target() - l.X) * LaneLerpRate * handlingFactor
}

// Reset returns to the center lane instantly.
func (l *LaneMotion) Reset() {
	l.Lane = 0
	l.X = 0
}

package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock is a manually advanced clock for effect expiry tests.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestEffectDuration(t *testing.T) {
	assert.Equal(t, 5*time.Second, EffectDuration(PowerUpSpeed))
	assert.Equal(t, 3*time.Second, EffectDuration(PowerUpShield))
	assert.Equal(t, 4*time.Second, EffectDuration(PowerUpSlowMo))
	assert.Equal(t, 6*time.Second, EffectDuration(PowerUpMagnet))
	assert.Equal(t, time.Duration(0), EffectDuration(PowerUpScore))
}

func TestEffectManager_ActivateAndExpire(t *testing.T) {
	clock := newFakeClock()
	m := NewEffectManager(clock.now)

	m.Activate(PowerUpSpeed)
	assert.True(t, m.Active(PowerUpSpeed))

	clock.advance(4999 * time.Millisecond)
	m.Expire()
	assert.True(t, m.Active(PowerUpSpeed))

	clock.advance(2 * time.Millisecond)
	m.Expire()
	assert.False(t, m.Active(PowerUpSpeed))
}

func TestEffectManager_ScoreIsInstant(t *testing.T) {
	m := NewEffectManager(newFakeClock().now)

	m.Activate(PowerUpScore)

	assert.False(t, m.Active(PowerUpScore))
	assert.Empty(t, m.Snapshot())
}

func TestEffectManager_SlowMoOverridesSpeed(t *testing.T) {
	clock := newFakeClock()
	m := NewEffectManager(clock.now)

	assert.InDelta(t, 1.0, m.SpeedMultiplier(), 1e-9)

	m.Activate(PowerUpSpeed)
	assert.InDelta(t, 1.5, m.SpeedMultiplier(), 1e-9)

	// With both active, slow-mo wins outright: 0.5, not 0.75.
	m.Activate(PowerUpSlowMo)
	assert.InDelta(t, 0.5, m.SpeedMultiplier(), 1e-9)

	// Slow-mo expires first (4s < 5s); the boost resurfaces.
	clock.advance(4500 * time.Millisecond)
	m.Expire()
	assert.InDelta(t, 1.5, m.SpeedMultiplier(), 1e-9)
}

func TestEffectManager_ShieldAbsorption(t *testing.T) {
	clock := newFakeClock()
	m := NewEffectManager(clock.now)

	assert.False(t, m.AbsorbShield(), "no shield to consume")

	m.Activate(PowerUpShield)
	assert.True(t, m.ShieldGlow())

	assert.True(t, m.AbsorbShield(), "one hit absorbed")
	assert.False(t, m.Active(PowerUpShield))
	assert.False(t, m.ShieldGlow())
	assert.False(t, m.AbsorbShield(), "a shield only covers one hit")
}

func TestEffectManager_ShieldNaturalExpiryClearsGlow(t *testing.T) {
	clock := newFakeClock()
	m := NewEffectManager(clock.now)

	m.Activate(PowerUpShield)
	clock.advance(ShieldDuration + time.Millisecond)
	m.Expire()

	assert.False(t, m.Active(PowerUpShield))
	assert.False(t, m.ShieldGlow())
}

func TestEffectManager_ActivateRefreshesExpiry(t *testing.T) {
	clock := newFakeClock()
	m := NewEffectManager(clock.now)

	m.Activate(PowerUpMagnet)
	clock.advance(5 * time.Second)
	m.Activate(PowerUpMagnet) // picked up again near the end

	clock.advance(5 * time.Second)
	m.Expire()
	assert.True(t, m.Active(PowerUpMagnet), "refresh pushed expiry out")
}

func TestEffectManager_Reset(t *testing.T) {
	m := NewEffectManager(newFakeClock().now)
	m.Activate(PowerUpShield)
	m.Activate(PowerUpSpeed)

	m.Reset()

	assert.Empty(t, m.Snapshot())
	assert.False(t, m.ShieldGlow())
	assert.InDelta(t, 1.0, m.SpeedMultiplier(), 1e-9)
}

package game

import "time"

// EffectManager tracks timed power-up effects keyed by type. Each effect
// stores its expiry timestamp; expiry is checked against the injected
// clock every tick rather than with timers.
type EffectManager struct {
	active map[PowerUpType]time.Time
	now    func() time.Time

	// shieldGlow mirrors the shield effect for the renderer. It is
	// cleared both on absorption and on natural expiry.
	shieldGlow bool
}

// NewEffectManager creates an effect manager on the given clock.
func NewEffectManager(now func() time.Time) *EffectManager {
	if now == nil {
		now = time.Now
	}
	return &EffectManager{
		active: make(map[PowerUpType]time.Time),
		now:    now,
	}
}

// EffectDuration returns how long an effect of the given type lasts.
// Instant effects (score) have zero duration.
func EffectDuration(t PowerUpType) time.Duration {
	switch t {
	case PowerUpSpeed:
		return SpeedDuration
	case PowerUpShield:
		return ShieldDuration
	case PowerUpSlowMo:
		return SlowMoDuration
	case PowerUpMagnet:
		return MagnetDuration
	default:
		return 0
	}
}

// Activate starts (or refreshes) a timed effect. Instant effects are not
// tracked.
func (m *EffectManager) Activate(t PowerUpType) {
	d := EffectDuration(t)
	if d <= 0 {
		return
	}
	m.active[t] = m.now().Add(d)
	if t == PowerUpShield {
		m.shieldGlow = true
	}
}

// Active reports whether the effect is currently running.
func (m *EffectManager) Active(t PowerUpType) bool {
	expiry, ok := m.active[t]
	return ok && expiry.After(m.now())
}

// ShieldGlow reports whether the shield visual should be shown.
func (m *EffectManager) ShieldGlow() bool {
	return m.shieldGlow
}

// AbsorbShield consumes an active shield, if any, and reports whether one
// was consumed. A consumed shield cancels exactly one collision.
func (m *EffectManager) AbsorbShield() bool {
	if !m.Active(PowerUpShield) {
		return false
	}
	delete(m.active, PowerUpShield)
	m.shieldGlow = false
	return true
}

// SpeedMultiplier composes the active effects into the speed formula
// multiplier. The speed boost is evaluated first and slow-mo then
// overwrites it, so slow-mo wins when both are active. This matches the
// shipped behavior; the two do not compose multiplicatively.
func (m *EffectManager) SpeedMultiplier() float64 {
	mult := 1.0
	if m.Active(PowerUpSpeed) {
		mult = SpeedBoostMultiplier
	}
	if m.Active(PowerUpSlowMo) {
		mult = SlowMoMultiplier
	}
	return mult
}

// Expire removes effects whose expiry has passed. A shield that lapses
// naturally also drops its visual flag.
func (m *EffectManager) Expire() {
	now := m.now()
	for t, expiry := range m.active {
		if !expiry.After(now) {
			delete(m.active, t)
			if t == PowerUpShield {
				m.shieldGlow = false
			}
		}
	}
}

// Snapshot returns the active effects and their expiries for display.
func (m *EffectManager) Snapshot() map[PowerUpType]time.Time {
	out := make(map[PowerUpType]time.Time, len(m.active))
	for t, expiry := range m.active {
		out[t] = expiry
	}
	return out
}

// Reset clears all effects for a new run.
func (m *EffectManager) Reset() {
	clear(m.active)
	m.shieldGlow = false
}

package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/whoisd3/Ultimate-Reaction-Driver/internal/progress"
)

// ErrInvalidTransition is returned when a state machine method is called
// from a state it is not allowed in.
var ErrInvalidTransition = errors.New("invalid state transition")

type Mode int

const (
	ModeClassic Mode = iota
	ModeTimeAttack
	ModeSurvival
)

func (m Mode) String() string {
	switch m {
	case ModeTimeAttack:
		return "timeattack"
	case ModeSurvival:
		return "survival"
	default:
		return "classic"
	}
}

// MarshalJSON serializes Mode as a string.
func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// ParseMode maps a mode name to its Mode value.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "classic":
		return ModeClassic, nil
	case "timeattack":
		return ModeTimeAttack, nil
	case "survival":
		return ModeSurvival, nil
	default:
		return ModeClassic, fmt.Errorf("unknown mode %q", s)
	}
}

type State int

const (
	StateLoading State = iota
	StateMenu
	StatePlaying
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes State as a string.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

type EventKind int

const (
	EventShieldAbsorbed EventKind = iota
	EventPowerUp
	EventLevelUp
	EventGameOver
)

// Event is a notification emitted by the session for the UI layer.
type Event struct {
	Kind     EventKind
	PowerUp  PowerUpType // set for EventPowerUp
	Level    int         // set for EventLevelUp
	Score    float64     // set for EventGameOver
	XPEarned int         // set for EventGameOver
}

// Session is one run's worth of simulation state plus the state machine
// around it. It is single-goroutine: Update and all transition methods
// must be called from the same goroutine that drives the clock.
type Session struct {
	mode  Mode
	state State

	score    float64
	distance float64
	speed    float64
	elapsed  float64

	lane     *LaneMotion
	spawner  *Spawner
	effects  *EffectManager
	entities []*Entity // spawn order

	store  *progress.Store
	now    func() time.Time
	notify func(Event)
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithRand overrides the spawn random source, for deterministic tests.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.spawner = NewSpawner(rng) }
}

// WithNotify registers the event callback.
func WithNotify(fn func(Event)) Option {
	return func(s *Session) { s.notify = fn }
}

// NewSession creates a session in the loading state. store may be nil, in
// which case runs award no XP and progression is skipped.
func NewSession(store *progress.Store, opts ...Option) *Session {
	s := &Session{
		state: StateLoading,
		store: store,
		now:   time.Now,
		lane:  NewLaneMotion(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.spawner == nil {
		s.spawner = NewSpawner(rand.New(rand.NewSource(s.now().UnixNano())))
	}
	s.effects = NewEffectManager(s.now)
	return s
}

// Ready transitions from loading to the menu once startup work is done.
func (s *Session) Ready() error {
	if s.state != StateLoading {
		return fmt.Errorf("%w: ready from %s", ErrInvalidTransition, s.state)
	}
	s.state = StateMenu
	return nil
}

// Start begins a run. Allowed from the menu or, for retry, directly from
// game over. All per-run state is reset.
func (s *Session) Start(mode Mode) error {
	if s.state != StateMenu && s.state != StateGameOver {
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, s.state)
	}
	s.mode = mode
	s.score = 0
	s.distance = 0
	s.elapsed = 0
	s.speed = BaseSpeed
	s.lane.Reset()
	s.spawner.Reset()
	s.effects.Reset()
	s.entities = s.entities[:0]
	s.state = StatePlaying
	return nil
}

// Pause suspends a running session.
func (s *Session) Pause() error {
	if s.state != StatePlaying {
		return fmt.Errorf("%w: pause from %s", ErrInvalidTransition, s.state)
	}
	s.state = StatePaused
	return nil
}

// Resume continues a paused session.
func (s *Session) Resume() error {
	if s.state != StatePaused {
		return fmt.Errorf("%w: resume from %s", ErrInvalidTransition, s.state)
	}
	s.state = StatePlaying
	return nil
}

// QuitToMenu discards the run and returns to the menu. Allowed while
// paused or after game over.
func (s *Session) QuitToMenu() error {
	if s.state != StatePaused && s.state != StateGameOver {
		return fmt.Errorf("%w: quit from %s", ErrInvalidTransition, s.state)
	}
	s.entities = s.entities[:0]
	s.effects.Reset()
	s.state = StateMenu
	return nil
}

// MoveLeft steers one lane left. Ignored outside of play.
func (s *Session) MoveLeft() {
	if s.state == StatePlaying {
		s.lane.MoveLeft()
	}
}

// MoveRight steers one lane right. Ignored outside of play.
func (s *Session) MoveRight() {
	if s.state == StatePlaying {
		s.lane.MoveRight()
	}
}

func (s *Session) skills() progress.Skills {
	if s.store == nil {
		return progress.Skills{}
	}
	return s.store.Progress().Skills
}

func (s *Session) vehicle() progress.Vehicle {
	if s.store == nil {
		return progress.Vehicle{SpeedMultiplier: 1, HandlingMultiplier: 1}
	}
	return s.store.Progress().CurrentVehicle()
}

// currentSpeed evaluates the speed progression formula: base speed ramps
// with elapsed time, scaled by the speed skill, the vehicle and the
// active effect multiplier, capped at MaxSpeed.
func (s *Session) currentSpeed() float64 {
	skills := s.skills()
	speed := BaseSpeed *
		(1 + s.elapsed/SpeedRampDivisor) *
		(1 + float64(skills.Speed)*SpeedPerSkill) *
		s.effects.SpeedMultiplier() *
		s.vehicle().SpeedMultiplier
	if speed > MaxSpeed {
		speed = MaxSpeed
	}
	return speed
}

// Update advances the simulation by one fixed timestep. Outside of play
// it is a no-op. The per-tick order is load-bearing for determinism:
// time, speed, steering, spawn, obstacles, power-ups, effect expiry,
// score accrual, mode end check.
func (s *Session) Update(delta float64) {
	if s.state != StatePlaying {
		return
	}

	s.elapsed += delta
	s.speed = s.currentSpeed()
	s.lane.Step(HandlingFactor(s.skills().Handling, s.vehicle().HandlingMultiplier))

	if e := s.spawner.Advance(delta, s.elapsed, s.now()); e != nil {
		s.entities = append(s.entities, e)
	}

	if ended := s.updateObstacles(delta); ended {
		return
	}
	s.updatePowerUps(delta)
	s.effects.Expire()

	s.distance += s.speed * delta
	s.score += s.speed * delta * ScorePerUnit

	if s.mode == ModeTimeAttack && s.elapsed >= TimeAttackLimit {
		s.gameOver()
	}
}

// updateObstacles moves every obstacle, resolves collisions in spawn
// order and culls passed ones. Returns true when the run ended.
func (s *Session) updateObstacles(delta float64) bool {
	kept := s.entities[:0]
	for i, e := range s.entities {
		if e.Kind != KindObstacle {
			kept = append(kept, e)
			continue
		}
		e.Z += s.speed * delta

		if ObstacleHit(s.lane.X, e) {
			if s.effects.AbsorbShield() {
				s.emit(Event{Kind: EventShieldAbsorbed})
				continue // obstacle consumed by the shield
			}
			// First run-ending hit wins; later obstacles this tick
			// are irrelevant. Keep the untouched tail so renderers
			// still see the field.
			kept = append(kept, s.entities[i:]...)
			s.entities = kept
			s.gameOver()
			return true
		}

		if e.Passed() {
			s.score += ObstaclePassScore
			continue
		}
		kept = append(kept, e)
	}
	s.entities = kept
	return false
}

// updatePowerUps applies the magnet pull, moves every power-up, resolves
// pickups and culls passed ones.
func (s *Session) updatePowerUps(delta float64) {
	magnet := s.effects.Active(PowerUpMagnet)
	kept := s.entities[:0]
	for _, e := range s.entities {
		if e.Kind != KindPowerUp {
			kept = append(kept, e)
			continue
		}
		if magnet {
			s.pullTowardPlayer(e)
		}
		e.Z += s.speed * delta

		if PowerUpHit(s.lane.X, e) {
			s.applyPowerUp(e.PowerUp)
			continue
		}
		if e.Passed() {
			continue
		}
		kept = append(kept, e)
	}
	s.entities = kept
}

// pullTowardPlayer drags a power-up a fixed step along the normalized
// direction to the player. Entities closer than MagnetMinDistance are
// left alone so the direction never degenerates.
func (s *Session) pullTowardPlayer(e *Entity) {
	dx := s.lane.X - e.X
	dz := PlayerZ - e.Z
	dist := distance2D(dx, dz)
	if dist >= MagnetRange || dist <= MagnetMinDistance {
		return
	}
	e.X += dx / dist * MagnetPullStep
	e.Z += dz / dist * MagnetPullStep
}

func (s *Session) applyPowerUp(t PowerUpType) {
	if t == PowerUpScore {
		s.score += ScorePickupBonus
	} else {
		s.effects.Activate(t)
	}
	s.emit(Event{Kind: EventPowerUp, PowerUp: t})
}

// gameOver ends the run: progression is settled and persisted, then the
// session moves to the game over state.
func (s *Session) gameOver() {
	s.state = StateGameOver
	if s.store == nil {
		s.emit(Event{Kind: EventGameOver, Score: s.score})
		return
	}

	res, err := s.store.CompleteRun(s.mode.String(), s.score)
	if err != nil {
		// Progress stays in memory even when persistence fails.
		s.emit(Event{Kind: EventGameOver, Score: s.score, XPEarned: res.XPEarned})
		return
	}
	if res.LeveledUp {
		s.emit(Event{Kind: EventLevelUp, Level: res.Level})
	}
	s.emit(Event{Kind: EventGameOver, Score: s.score, XPEarned: res.XPEarned})
}

func (s *Session) emit(ev Event) {
	if s.notify != nil {
		s.notify(ev)
	}
}

// Accessors for the render/UI layer.

func (s *Session) State() State        { return s.state }
func (s *Session) Mode() Mode          { return s.mode }
func (s *Session) Score() float64      { return s.score }
func (s *Session) Distance() float64   { return s.distance }
func (s *Session) Speed() float64      { return s.speed }
func (s *Session) Elapsed() float64    { return s.elapsed }
func (s *Session) Lane() int           { return s.lane.Lane }
func (s *Session) PlayerX() float64    { return s.lane.X }
func (s *Session) Effects() *EffectManager { return s.effects }

// Entities returns the live entities in spawn order. The slice is a copy;
// the entities are shared.
func (s *Session) Entities() []*Entity {
	out := make([]*Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

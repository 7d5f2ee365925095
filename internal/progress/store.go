package progress

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/whoisd3/Ultimate-Reaction-Driver/internal/store"
)

// Storage keys. The identity pair is kept redundantly under its own key
// so callers can read it without deserializing the full progress blob.
const (
	progressKey = "player_progress"
	identityKey = "player_identity"
)

// Store owns the loaded Progress and writes it back after every mutating
// operation. All methods are meant for the single game-loop goroutine.
type Store struct {
	kv  store.KV
	p   *Progress
	now func() time.Time
}

// Open loads progress from the KV store, merging the saved JSON over
// defaults so saves written by older builds keep their known fields. A
// corrupt blob falls back to defaults with a warning; startup never fails
// on bad save data.
func Open(kv store.KV) *Store {
	s := &Store{kv: kv, p: Default(), now: time.Now}

	raw, ok, err := kv.Get(progressKey)
	if err != nil {
		slog.Warn("failed to read saved progress, starting fresh", "error", err)
		return s
	}
	if !ok {
		return s
	}
	if err := json.Unmarshal([]byte(raw), s.p); err != nil {
		slog.Warn("saved progress is corrupt, starting fresh", "error", err)
		s.p = Default()
		return s
	}
	s.normalize()
	return s
}

// normalize repairs a loaded save: missing roster entries from newer
// builds are appended, and invariants that old builds may have violated
// are restored.
func (s *Store) normalize() {
	if s.p.Level < 1 {
		s.p.Level = 1
	}
	if s.p.Leaderboards == nil {
		s.p.Leaderboards = make(map[string][]ScoreEntry)
	}

	have := make(map[string]bool, len(s.p.Vehicles))
	for _, v := range s.p.Vehicles {
		have[v.ID] = true
	}
	for _, v := range DefaultVehicles() {
		if !have[v.ID] {
			s.p.Vehicles = append(s.p.Vehicles, v)
		}
	}
	s.p.unlockVehicles()

	if s.p.CurrentVehicleID == "" {
		s.p.CurrentVehicleID = s.p.Vehicles[0].ID
	}
}

// Progress exposes the loaded state. Callers must not mutate it directly;
// mutations go through the Store so they get persisted.
func (s *Store) Progress() *Progress {
	return s.p
}

func (s *Store) save() error {
	data, err := json.Marshal(s.p)
	if err != nil {
		return err
	}
	if err := s.kv.Set(progressKey, string(data)); err != nil {
		slog.Error("failed to persist progress", "error", err)
		return err
	}
	return nil
}

func (s *Store) saveIdentity() error {
	data, err := json.Marshal(s.p.Identity)
	if err != nil {
		return err
	}
	return s.kv.Set(identityKey, string(data))
}

// SetIdentity updates the display name / guest flag pair and persists
// both the full blob and the lightweight identity key.
func (s *Store) SetIdentity(displayName string, isGuest bool) error {
	s.p.Identity.DisplayName = displayName
	s.p.Identity.IsGuest = isGuest
	if err := s.saveIdentity(); err != nil {
		return err
	}
	return s.save()
}

// AddXP grants XP, persisting the result. Reports whether a level-up
// occurred.
func (s *Store) AddXP(amount int) (bool, error) {
	leveled := s.p.AddXP(amount)
	return leveled, s.save()
}

// UpgradeSkill spends a skill point and persists on success. A rejection
// leaves both memory and storage untouched.
func (s *Store) UpgradeSkill(name string) error {
	if err := s.p.UpgradeSkill(name); err != nil {
		return err
	}
	return s.save()
}

// SelectVehicle switches vehicles and persists on success.
func (s *Store) SelectVehicle(id string) error {
	if err := s.p.SelectVehicle(id); err != nil {
		return err
	}
	return s.save()
}

// RunResult summarizes the progression outcome of a finished run.
type RunResult struct {
	XPEarned  int
	LeveledUp bool
	Level     int
}

// CompleteRun settles a finished run: XP from the final score, the
// leaderboard entry, and a single persist covering both.
func (s *Store) CompleteRun(mode string, score float64) (RunResult, error) {
	xp := RunXP(score, s.p.Skills.XPBoost)
	leveled := s.p.AddXP(xp)
	s.p.AddScore(mode, int(score), s.now())

	res := RunResult{XPEarned: xp, LeveledUp: leveled, Level: s.p.Level}
	return res, s.save()
}

// Close releases the underlying store.
func (s *Store) Close() error {
	return s.kv.Close()
}

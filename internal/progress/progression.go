package progress

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNoSkillPoints  = errors.New("no skill points available")
	ErrSkillMaxed     = errors.New("skill already at maximum level")
	ErrUnknownSkill   = errors.New("unknown skill")
	ErrUnknownVehicle = errors.New("unknown vehicle")
	ErrVehicleLocked  = errors.New("vehicle not unlocked")
)

// XPForNextLevel returns the XP needed to advance past the given level:
// floor(100 * 1.5^(level-1)).
func XPForNextLevel(level int) int {
	return int(math.Floor(100 * math.Pow(1.5, float64(level-1))))
}

// RunXP converts a run's score into earned XP, scaled by the xpBoost
// skill: floor(floor(score/10) * (1 + xpBoost*0.2)).
func RunXP(score float64, xpBoostSkill int) int {
	base := math.Floor(score / 10)
	return int(math.Floor(base * (1 + float64(xpBoostSkill)*XPBoostPerSkill)))
}

// AddXP grants XP and resolves any resulting level-ups. A large grant can
// cross several thresholds, so the check loops. Every level gained awards
// one skill point and re-evaluates vehicle unlocks. Reports whether at
// least one level-up occurred.
func (p *Progress) AddXP(amount int) bool {
	p.XP += amount
	leveled := false
	for p.XP >= XPForNextLevel(p.Level) {
		p.XP -= XPForNextLevel(p.Level)
		p.Level++
		p.SkillPoints++
		leveled = true
	}
	if leveled {
		p.unlockVehicles()
	}
	return leveled
}

// UpgradeSkill spends one skill point on the named skill. Rejected at the
// API boundary when no points remain or the skill is capped; the state is
// untouched on rejection.
func (p *Progress) UpgradeSkill(name string) error {
	var target *int
	switch name {
	case SkillSpeed:
		target = &p.Skills.Speed
	case SkillXPBoost:
		target = &p.Skills.XPBoost
	case SkillHandling:
		target = &p.Skills.Handling
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSkill, name)
	}

	if p.SkillPoints <= 0 {
		return ErrNoSkillPoints
	}
	if *target >= MaxSkillLevel {
		return ErrSkillMaxed
	}

	p.SkillPoints--
	*target++
	return nil
}

// SelectVehicle switches the current vehicle. Only unlocked vehicles can
// be selected.
func (p *Progress) SelectVehicle(id string) error {
	for _, v := range p.Vehicles {
		if v.ID != id {
			continue
		}
		if !v.Unlocked {
			return fmt.Errorf("%w: %s needs level %d", ErrVehicleLocked, v.Name, v.UnlockLevel)
		}
		p.CurrentVehicleID = id
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownVehicle, id)
}

// unlockVehicles flips the unlock flag for every vehicle whose level gate
// has been reached. One-directional and idempotent: a vehicle never
// re-locks.
func (p *Progress) unlockVehicles() {
	for i := range p.Vehicles {
		v := &p.Vehicles[i]
		if !v.Unlocked && v.UnlockLevel > 0 && p.Level >= v.UnlockLevel {
			v.Unlocked = true
		}
	}
}

package systems

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/tardigrade/colony"
	"github.com/pthm-cable/tardigrade/random"
)

// AttackKind discriminates attack resolutions.
type AttackKind uint8

const (
	AttackRepelled AttackKind = iota
	AttackSucceeded
)

// String returns the outcome's stable key.
func (k AttackKind) String() string {
	if k == AttackSucceeded {
		return "succeeded"
	}
	return "repelled"
}

// AttackResult reports one resolved attack.
type AttackResult struct {
	Kind         AttackKind
	Power        int
	DefenseBonus int
	Intended     int // casualties rolled; zero when repelled
	Casualties   []*colony.Individual
	NextAttackAt time.Time
}

// LogValue implements slog.LogValuer.
func (r AttackResult) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", r.Kind.String()),
		slog.Int("power", r.Power),
		slog.Int("defense", r.DefenseBonus),
		slog.Int("intended", r.Intended),
		slog.Int("casualties", len(r.Casualties)),
		slog.Time("next_attack_at", r.NextAttackAt),
	)
}

// DefenseBonus returns the flat bonus granted by occupied slots.
func (e *Engine) DefenseBonus(st *colony.State) int {
	return e.cfg.Attack.SlotBonus * st.DefenderCount()
}

// AssignDefender puts the first eligible individual in roster order into slot,
// replacing whoever held it. Eligible means Epic or Legendary, or carrying a
// predatory ability. One individual may hold several slots.
func (e *Engine) AssignDefender(st *colony.State, slot int) (colony.IndividualID, error) {
	if slot < 0 || slot >= colony.DefenseSlots {
		return 0, fmt.Errorf("defense slot %d: %w", slot, colony.ErrInvalidSelection)
	}
	for _, in := range st.Colony {
		def, err := e.definition(in)
		if err != nil {
			return 0, err
		}
		if def.CanDefend() {
			st.Defense[slot] = in.ID
			return in.ID, nil
		}
	}
	return 0, fmt.Errorf("no eligible defender for slot %d: %w", slot, colony.ErrNotFound)
}

// ClearDefender empties a slot. The individual stays in the colony.
func (e *Engine) ClearDefender(st *colony.State, slot int) error {
	if slot < 0 || slot >= colony.DefenseSlots {
		return fmt.Errorf("defense slot %d: %w", slot, colony.ErrInvalidSelection)
	}
	st.Defense[slot] = 0
	return nil
}

// CheckAttack resolves the attack if now has reached the timer; otherwise it
// raises the threat level by one tick's increment.
func (e *Engine) CheckAttack(st *colony.State, now time.Time, src random.Source) *AttackResult {
	if now.Before(st.NextAttackAt) {
		cfg := e.cfg.Attack
		st.ThreatLevel = clampFloat(st.ThreatLevel+cfg.ThreatPerTick, 0, cfg.ThreatMax)
		return nil
	}
	res := e.ResolveAttack(st, now, src)
	return &res
}

// ResolveAttack evaluates one attack and re-arms the timer.
//
// Draw order: attack power, then (on success) casualty count and one index
// per casualty, then the re-arm delay.
func (e *Engine) ResolveAttack(st *colony.State, now time.Time, src random.Source) AttackResult {
	cfg := e.cfg.Attack
	res := AttackResult{
		Kind:         AttackRepelled,
		Power:        random.IntRange(src, cfg.PowerMin, cfg.PowerMax),
		DefenseBonus: e.DefenseBonus(st),
	}

	if res.Power > res.DefenseBonus {
		res.Kind = AttackSucceeded
		res.Intended = random.IntN(src, cfg.MaxCasualties) + 1
		for i := 0; i < res.Intended && st.Len() > 0; i++ {
			victim := st.RemoveAt(random.IntN(src, st.Len()))
			res.Casualties = append(res.Casualties, victim)
		}
	}

	st.ThreatLevel = 0
	delay := cfg.IntervalMin + src.Float64()*cfg.IntervalSpread
	st.NextAttackAt = now.Add(time.Duration(delay * float64(time.Minute)))
	res.NextAttackAt = st.NextAttackAt
	return res
}

package attack

import (
	"errors"

	"github.com/zephyrtronium/diceroll"
)

// ErrNoDamageDice indicates an action with no damage dice.
var ErrNoDamageDice = errors.New("attack must have at least one damage die")

// ModOptions controls how an attack modifier is computed.
type ModOptions struct {
	// NotProficient excludes the proficiency bonus.
	NotProficient bool
}

// Action is an attack: a to-hit modifier, a damage modifier, and the damage
// dice it deals. The first damage die is the base die; the damage modifier
// and brutal critical dice use its type and size.
type Action struct {
	AttackMod  func(c *Character, opts ModOptions) int
	DamageMod  func(c *Character) int
	DamageDice []DamageDie
}

// WeaponOptions are the magic bonuses of a weapon.
type WeaponOptions struct {
	MagicAttackBonus int
	MagicDamageBonus int
}

// NewWeaponAttack creates an attack that adds a stat modifier to both attack
// and damage rolls and the proficiency bonus to attack rolls.
func NewWeaponAttack(stat Stat, dice []DamageDie, opts WeaponOptions) (*Action, error) {
	if len(dice) == 0 {
		return nil, ErrNoDamageDice
	}
	a := Action{
		AttackMod: func(c *Character, o ModOptions) int {
			m := c.Mod(stat) + opts.MagicAttackBonus
			if !o.NotProficient {
				m += c.Proficiency
			}
			return m
		},
		DamageMod: func(c *Character) int {
			return c.Mod(stat) + opts.MagicDamageBonus
		},
		DamageDice: append([]DamageDie(nil), dice...),
	}
	return &a, nil
}

// HitOptions controls an attack roll.
type HitOptions struct {
	Advantage    bool
	Disadvantage bool
	// AdvantageDice and DisadvantageDice are the number of d20s rolled with
	// advantage or disadvantage. Zero means 2.
	AdvantageDice    int
	DisadvantageDice int
	Mod              ModOptions
}

// dice returns the number of d20s to roll and whether to keep the highest.
func (o HitOptions) dice() (n int, high bool) {
	switch {
	case o.Advantage && !o.Disadvantage:
		return defaultDice(o.AdvantageDice), true
	case o.Disadvantage && !o.Advantage:
		return defaultDice(o.DisadvantageDice), false
	default:
		return 1, true
	}
}

func defaultDice(n int) int {
	if n <= 0 {
		return 2
	}
	return n
}

// AttackRoll is the outcome of an attack roll.
type AttackRoll struct {
	// Result is the chosen die plus the modifier, never less than 1.
	Result int
	Rolls  []DieRoll
	// Chosen is the die that counts.
	Chosen   DieRoll
	Modifier int
}

// Critical reports whether the chosen die is a natural 20.
func (r AttackRoll) Critical() bool {
	return r.Chosen.Result == 20
}

// RollToHit rolls an attack for c.
func (a *Action) RollToHit(src diceroll.Source, c *Character, opts HitOptions) AttackRoll {
	n, high := opts.dice()
	rolls := make([]DieRoll, n)
	k := 0
	for i, v := range diceroll.D20.RollTimes(src, n) {
		rolls[i] = DieRoll{Sides: 20, Result: v}
		if high && v > rolls[k].Result || !high && v < rolls[k].Result {
			k = i
		}
	}
	mod := a.AttackMod(c, opts.Mod)
	return AttackRoll{
		Result:   max(rolls[k].Result+mod, 1),
		Rolls:    rolls,
		Chosen:   rolls[k],
		Modifier: mod,
	}
}

// DamageOptions controls a damage roll.
type DamageOptions struct {
	Critical bool
	// BrutalCritical is the number of extra base damage dice rolled on a
	// critical hit.
	BrutalCritical int
	// ExtraDice are added to the damage and doubled on a critical hit.
	ExtraDice []DamageDie
	// ExtraNonDoubledDice are added to the damage but not doubled.
	ExtraNonDoubledDice []DamageDie
}

// DamageResult is the outcome of a damage roll.
type DamageResult struct {
	Total  int
	Rolls  []DamageRoll
	ByType map[DamageType]int
}

// RollDamage rolls damage for c.
func (a *Action) RollDamage(src diceroll.Source, c *Character, opts DamageOptions) DamageResult {
	base := a.DamageDice[0]
	var rolls []DamageRoll
	rollAll := func(dice []DamageDie) {
		for _, d := range dice {
			rolls = append(rolls, d.Roll(src))
		}
	}
	rollAll(a.DamageDice)
	rollAll(opts.ExtraDice)
	rollAll(opts.ExtraNonDoubledDice)
	if opts.Critical {
		rollAll(a.DamageDice)
		for i := 0; i < opts.BrutalCritical; i++ {
			rolls = append(rolls, base.Roll(src))
		}
		rollAll(opts.ExtraDice)
	}

	r := DamageResult{Rolls: rolls, ByType: make(map[DamageType]int)}
	for _, d := range rolls {
		r.ByType[d.Type] += d.Result
	}
	r.ByType[base.Type] += a.DamageMod(c)
	for _, v := range r.ByType {
		r.Total += v
	}
	return r
}

// Outcome is the outcome of using an attack.
type Outcome struct {
	Attack AttackRoll
	Damage DamageResult
}

// UseAttackOptions controls a full attack.
type UseAttackOptions struct {
	Hit HitOptions
	// ExtraDice are added to the damage roll and doubled on a critical hit.
	ExtraDice []DamageDie
}

// UseAttack rolls to hit with a and then rolls damage, which is critical if
// the chosen attack die is a natural 20.
func (c *Character) UseAttack(src diceroll.Source, a *Action, opts UseAttackOptions) Outcome {
	atk := a.RollToHit(src, c, opts.Hit)
	dmg := a.RollDamage(src, c, DamageOptions{
		Critical:  atk.Critical(),
		ExtraDice: opts.ExtraDice,
	})
	return Outcome{Attack: atk, Damage: dmg}
}

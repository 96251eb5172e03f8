// Package attack rolls D&D-style weapon attacks and damage on top of the
// diceroll die primitive.
package attack

import (
	"strconv"
	"strings"

	"github.com/zephyrtronium/diceroll"
)

// Stat is an ability score.
type Stat int8

const (
	STR Stat = iota
	DEX
	CON
	INT
	WIS
	CHA
)

var statNames = [...]string{
	STR: "Strength",
	DEX: "Dexterity",
	CON: "Constitution",
	INT: "Intelligence",
	WIS: "Wisdom",
	CHA: "Charisma",
}

func (s Stat) String() string {
	if s < 0 || int(s) >= len(statNames) {
		return "Stat(" + strconv.Itoa(int(s)) + ")"
	}
	return statNames[s]
}

// ParseStat parses a stat from its full name or three-letter abbreviation,
// ignoring case.
func ParseStat(name string) (Stat, bool) {
	for i, n := range statNames {
		if strings.EqualFold(name, n) || strings.EqualFold(name, n[:3]) {
			return Stat(i), true
		}
	}
	return 0, false
}

// Scores is a full set of ability scores indexed by Stat.
type Scores [6]int

// Character is a creature that can make attacks.
type Character struct {
	Scores Scores
	// Proficiency is the proficiency bonus.
	Proficiency int
}

// Mod returns the ability modifier for a stat, rounding down.
func (c *Character) Mod(stat Stat) int {
	d := c.Scores[stat] - 10
	if d < 0 {
		return -((1 - d) / 2)
	}
	return d / 2
}

// DamageType is a category of damage.
type DamageType string

const (
	Acid        DamageType = "Acid"
	Bludgeoning DamageType = "Bludgeoning"
	Cold        DamageType = "Cold"
	Fire        DamageType = "Fire"
	Force       DamageType = "Force"
	Lightning   DamageType = "Lightning"
	Necrotic    DamageType = "Necrotic"
	Piercing    DamageType = "Piercing"
	Poison      DamageType = "Poison"
	Psychic     DamageType = "Psychic"
	Radiant     DamageType = "Radiant"
	Slashing    DamageType = "Slashing"
	Thunder     DamageType = "Thunder"
)

// DamageTypes lists every damage type.
var DamageTypes = []DamageType{
	Acid, Bludgeoning, Cold, Fire, Force, Lightning, Necrotic,
	Piercing, Poison, Psychic, Radiant, Slashing, Thunder,
}

// ParseDamageType parses a damage type name, ignoring case.
func ParseDamageType(name string) (DamageType, bool) {
	for _, t := range DamageTypes {
		if strings.EqualFold(name, string(t)) {
			return t, true
		}
	}
	return "", false
}

// DamageDie is a die that deals one type of damage.
type DamageDie struct {
	Die  diceroll.Die
	Type DamageType
}

// Roll rolls the die.
func (d DamageDie) Roll(src diceroll.Source) DamageRoll {
	return DamageRoll{Sides: d.Die.Sides(), Result: d.Die.Roll(src), Type: d.Type}
}

// DieRoll is a single rolled die.
type DieRoll struct {
	Sides  int
	Result int
}

// DamageRoll is a single rolled damage die.
type DamageRoll struct {
	Sides  int
	Result int
	Type   DamageType
}

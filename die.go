package diceroll

import (
	"math/rand/v2"
	"strconv"
)

// Source is a source of uniformly distributed integers.
type Source interface {
	// IntN returns an integer in [0, n). n is always positive.
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}

// DefaultSource is the process-wide random source. It is safe for concurrent
// use and is not seedable.
var DefaultSource Source = globalSource{}

// Roll rolls a single die with the given number of sides, returning a value
// in [1, sides]. If src is nil, DefaultSource is used. Panics if sides < 1.
func Roll(src Source, sides int) int {
	if sides < 1 {
		panic("diceroll: die with " + strconv.Itoa(sides) + " sides")
	}
	if src == nil {
		src = DefaultSource
	}
	return src.IntN(sides) + 1
}

// RollMany rolls count independent dice with the given number of sides.
func RollMany(src Source, sides, count int) []int {
	r := make([]int, count)
	for i := range r {
		r[i] = Roll(src, sides)
	}
	return r
}

// Die is a die with a fixed number of sides.
type Die int

// Standard dice.
const (
	D4   Die = 4
	D6   Die = 6
	D8   Die = 8
	D10  Die = 10
	D12  Die = 12
	D20  Die = 20
	D100 Die = 100
)

// Sides returns the number of sides of d.
func (d Die) Sides() int {
	return int(d)
}

// Roll rolls d once.
func (d Die) Roll(src Source) int {
	return Roll(src, int(d))
}

// RollTimes rolls d n times.
func (d Die) RollTimes(src Source, n int) []int {
	return RollMany(src, int(d), n)
}

func (d Die) String() string {
	return "d" + strconv.Itoa(int(d))
}

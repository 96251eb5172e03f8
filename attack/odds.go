package attack

import (
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// HitChance computes the probability that an attack roll with the given
// modifier reaches ac, computed to prec bits. A natural 20 always hits.
// Advantage and disadvantage combine the chances of each d20 in opts.
func HitChance(mod, ac int, opts HitOptions, prec uint) *big.Float {
	hits := 0
	for r := 1; r <= 20; r++ {
		if r == 20 || max(r+mod, 1) >= ac {
			hits++
		}
	}
	p := new(big.Float).SetPrec(prec).SetInt64(int64(hits))
	p.Quo(p, new(big.Float).SetPrec(prec).SetInt64(20))
	n, high := opts.dice()
	if n == 1 {
		return p
	}
	if !high {
		return pow(p, n, prec)
	}
	// 1 - (1-p)^n
	one := new(big.Float).SetPrec(prec).SetInt64(1)
	q := new(big.Float).SetPrec(prec).Sub(one, p)
	q = pow(q, n, prec)
	return q.Sub(one, q)
}

// pow raises a probability to an integer power.
func pow(x *big.Float, n int, prec uint) *big.Float {
	z := new(big.Float).SetPrec(prec)
	// Pow requires a positive base.
	if x.Sign() == 0 {
		return z
	}
	y := new(big.Float).SetPrec(prec).SetInt64(int64(n))
	return bigfloat.Pow(z, x, y)
}

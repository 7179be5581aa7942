package reporter

import (
	"math/big"

	"leo/internal/numeric"
)

// Check is one evaluation of the windowed statistic against the analytic bound.
type Check struct {
	T         *big.Float
	Statistic *big.Float
	Bound     *big.Float
	Violated  bool // |Statistic| > Bound
}

// Satisfied reports |Statistic| < Bound, the end-of-run verdict rule.
func (ck Check) Satisfied() bool {
	a := new(big.Float).Abs(ck.Statistic)
	return a.Cmp(ck.Bound) < 0
}

// WindowStatistic returns (#{v < T} − #{v > T}) / π over values.
// Values equal to T contribute nothing, so |result| <= len(values)/π.
func WindowStatistic(c *numeric.Context, values func(func(*big.Float)), T *big.Float) *big.Float {
	var count int64
	values(func(v *big.Float) {
		switch v.Cmp(T) {
		case -1:
			count++
		case 1:
			count--
		}
	})
	return c.Quo(c.FromInt(count), c.Pi())
}

// Bound returns 1 / ln(T)^k. When ln(T) <= eps the bound is +Inf.
func Bound(c *numeric.Context, T *big.Float, k int) *big.Float {
	if T.Sign() <= 0 {
		return new(big.Float).SetInf(false)
	}
	lnT, err := c.Ln(T)
	if err != nil || lnT.Sign() <= 0 || c.NearZero(lnT) {
		return new(big.Float).SetInf(false)
	}
	return c.Quo(c.FromInt(1), c.Pow(lnT, k))
}

// Evaluate runs the statistic and the bound for threshold T.
func Evaluate(c *numeric.Context, values func(func(*big.Float)), T *big.Float, k int) Check {
	st := WindowStatistic(c, values, T)
	bd := Bound(c, T, k)
	abs := new(big.Float).Abs(st)
	return Check{
		T:         c.Copy(T),
		Statistic: st,
		Bound:     bd,
		Violated:  abs.Cmp(bd) > 0,
	}
}

// Slice adapts a slice to the iterator form used by WindowStatistic.
func Slice(vs []*big.Float) func(func(*big.Float)) {
	return func(fn func(*big.Float)) {
		for _, v := range vs {
			fn(v)
		}
	}
}

package reporter

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"

	"leo/internal/numeric"
)

// disparityStats aggregates list-mode disparities in decimal so the mean is
// rounded at the working precision rather than at float64.
type disparityStats struct {
	n             int64
	sum, min, max decimal.Decimal
}

func (d *disparityStats) add(c *numeric.Context, x *big.Float) {
	v, err := decimal.NewFromString(c.String(x))
	if err != nil {
		// c.String always emits a plain or exponent literal decimal accepts.
		v = decimal.NewFromFloat(numeric.Float64(x))
	}
	if d.n == 0 {
		d.min, d.max = v, v
	} else {
		d.min = decimal.Min(d.min, v)
		d.max = decimal.Max(d.max, v)
	}
	d.sum = d.sum.Add(v)
	d.n++
}

// mean returns sum/n rounded to digits decimal places.
func (d *disparityStats) mean(digits int) decimal.Decimal {
	if d.n == 0 {
		return decimal.Zero
	}
	return d.sum.DivRound(decimal.NewFromInt(d.n), int32(digits))
}

// correlation is a streaming Pearson coefficient over (metric, state) pairs.
type correlation struct {
	n        float64
	sx, sy   float64
	sxx, syy float64
	sxy      float64
}

func (p *correlation) add(x, y float64) {
	p.n++
	p.sx += x
	p.sy += y
	p.sxx += x * x
	p.syy += y * y
	p.sxy += x * y
}

// value returns the coefficient, or false with fewer than two points or zero variance.
func (p *correlation) value() (float64, bool) {
	if p.n < 2 {
		return 0, false
	}
	cov := p.sxy - p.sx*p.sy/p.n
	vx := p.sxx - p.sx*p.sx/p.n
	vy := p.syy - p.sy*p.sy/p.n
	if vx <= 0 || vy <= 0 {
		return 0, false
	}
	r := cov / math.Sqrt(vx*vy)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}

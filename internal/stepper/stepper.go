// Package stepper advances the recurrence state by one term.
//
// Next never fails for positive finite input: every domain problem (s <= 1,
// ln(s) within eps of zero, a zero denominator, a non-finite increment) falls
// back to the fixed increment s + 0.1.
package stepper

import (
	"math/big"

	"leo/internal/numeric"
)

// DegenerateStep is the fixed increment used by the guard.
const DegenerateStep = "0.1"

// Stepper applies one Formula at one working precision.
type Stepper struct {
	ctx     *numeric.Context
	formula Formula
	inc     *big.Float

	degenerate uint64
}

// New returns a Stepper for formula f at context c.
func New(c *numeric.Context, f Formula) *Stepper {
	inc, err := c.Parse(DegenerateStep)
	if err != nil {
		// constant literal
		panic(err)
	}
	return &Stepper{ctx: c, formula: f, inc: inc}
}

// Context returns the working-precision context.
func (s *Stepper) Context() *numeric.Context { return s.ctx }

// Formula returns the formula in use.
func (s *Stepper) Formula() Formula { return s.formula }

// Degenerate reports how many steps took the guard path.
func (s *Stepper) Degenerate() uint64 { return s.degenerate }

// Next returns the successor of state. state is never modified.
func (s *Stepper) Next(state *big.Float) (next *big.Float) {
	c := s.ctx
	one := c.FromInt(1)

	if !numeric.IsFinite(state) || state.Cmp(one) <= 0 {
		return s.guard(state)
	}
	lnS, err := c.Ln(state)
	if err != nil || c.NearZero(lnS) {
		return s.guard(state)
	}

	// big.Float panics with ErrNaN on 0/0 and ∞−∞; treat those as degenerate too.
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(big.ErrNaN); !ok {
				panic(r)
			}
			next = s.guard(state)
		}
	}()

	inc, err := s.formula.Increment(c, state, lnS)
	if err != nil || !numeric.IsFinite(inc) {
		return s.guard(state)
	}
	return c.Add(state, inc)
}

func (s *Stepper) guard(state *big.Float) *big.Float {
	s.degenerate++
	if state == nil || state.IsInf() {
		// Non-finite states are rejected at configuration time; restart from the increment.
		return s.ctx.Copy(s.inc)
	}
	return s.ctx.Add(state, s.inc)
}

// Next is a one-shot helper: it builds a context for digits and applies f once.
func Next(f Formula, state *big.Float, digits int) (*big.Float, error) {
	c, err := numeric.NewContext(digits)
	if err != nil {
		return nil, err
	}
	return New(c, f).Next(state), nil
}

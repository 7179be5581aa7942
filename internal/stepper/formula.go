package stepper

import (
	"errors"
	"fmt"
	"math/big"
	"sort"

	"leo/internal/numeric"
)

// errDegenerate signals a zero denominator inside a formula; Next absorbs it.
var errDegenerate = errors.New("stepper: degenerate denominator")

// Formula is one closed-form increment f(s) of the recurrence s' = s + f(s).
// lnS is ln(s), already computed by the caller and guaranteed non-zero.
type Formula interface {
	Name() string
	Increment(c *numeric.Context, s, lnS *big.Float) (*big.Float, error)
}

// Formula registry (name → implementation). Last registration wins.
var formulas = map[string]Formula{}

// Register makes f available to Lookup under f.Name().
func Register(f Formula) { formulas[f.Name()] = f }

// Lookup returns the formula registered under name.
func Lookup(name string) (Formula, error) {
	f, ok := formulas[name]
	if !ok {
		return nil, fmt.Errorf("unknown formula %q (known: %v)", name, Names())
	}
	return f, nil
}

// Names lists registered formulas in sorted order.
func Names() []string {
	out := make([]string, 0, len(formulas))
	for n := range formulas {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func init() {
	Register(Simple{})
	Register(CIR7{})
}

// Simple is f(s) = 2π·ln(s+1) / ln(s)².
type Simple struct{}

func (Simple) Name() string { return "simple" }

func (Simple) Increment(c *numeric.Context, s, lnS *big.Float) (*big.Float, error) {
	ln1, err := c.Ln(c.Add(s, c.FromInt(1)))
	if err != nil {
		return nil, err
	}
	den := c.Mul(lnS, lnS)
	if den.Sign() == 0 {
		return nil, errDegenerate
	}
	num := c.Mul(twoPi(c), ln1)
	return c.Quo(num, den), nil
}

// CIR7 is f(s) = 2π/ln(s) · (1 + 7/ln(s+8) + 1/ln(s+9)²).
type CIR7 struct{}

func (CIR7) Name() string { return "cir7" }

func (CIR7) Increment(c *numeric.Context, s, lnS *big.Float) (*big.Float, error) {
	ln8, err := c.Ln(c.Add(s, c.FromInt(8)))
	if err != nil {
		return nil, err
	}
	ln9, err := c.Ln(c.Add(s, c.FromInt(9)))
	if err != nil {
		return nil, err
	}
	if ln8.Sign() == 0 || ln9.Sign() == 0 || lnS.Sign() == 0 {
		return nil, errDegenerate
	}

	term := c.FromInt(1)
	term.Add(term, c.Quo(c.FromInt(7), ln8))
	term.Add(term, c.Quo(c.FromInt(1), c.Mul(ln9, ln9)))

	lead := c.Quo(twoPi(c), lnS)
	return c.Mul(lead, term), nil
}

func twoPi(c *numeric.Context) *big.Float {
	p := c.Pi()
	return p.Mul(p, c.FromInt(2))
}

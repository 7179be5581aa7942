// Package numeric holds the arbitrary-precision helpers shared by the stepper,
// reporter and zeta packages.
//
// Precision is always expressed in decimal digits at the API boundary and
// converted once to a binary mantissa size (plus guard bits) for math/big.
package numeric

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/ALTree/bigfloat"
)

const (
	// MaxDigits caps the working precision; beyond this ln() gets impractically slow.
	MaxDigits = 100000

	guardBits = 16
	log2of10  = 3.321928094887362
)

var (
	// ErrDomain is returned for ln() of a non-positive or infinite argument.
	ErrDomain = errors.New("numeric: argument outside function domain")
	// ErrNotFinite is returned when a parsed value is ±Inf.
	ErrNotFinite = errors.New("numeric: value is not finite")
)

// Context carries the working precision and the constants derived from it.
// A Context is immutable after NewContext and safe to share.
type Context struct {
	Digits int
	Prec   uint

	eps *big.Float
	pi  *big.Float
}

// PrecBits converts decimal digits to a big.Float mantissa size including guard bits.
func PrecBits(digits int) uint {
	return uint(math.Ceil(float64(digits)*log2of10)) + guardBits
}

// NewContext returns a Context for the given number of decimal digits.
func NewContext(digits int) (*Context, error) {
	if digits <= 0 || digits > MaxDigits {
		return nil, fmt.Errorf("numeric: precision must be in [1, %d] digits, got %d", MaxDigits, digits)
	}
	c := &Context{Digits: digits, Prec: PrecBits(digits)}

	eps, _, err := big.ParseFloat("1e-"+strconv.Itoa(digits), 10, c.Prec, big.ToNearestEven)
	if err != nil {
		return nil, fmt.Errorf("numeric: eps: %w", err)
	}
	c.eps = eps
	c.pi = gaussLegendrePi(c.Prec)
	return c, nil
}

// MustContext is NewContext for package-level defaults and tests.
func MustContext(digits int) *Context {
	c, err := NewContext(digits)
	if err != nil {
		panic(err)
	}
	return c
}

// New returns a zero value at the context precision.
func (c *Context) New() *big.Float { return new(big.Float).SetPrec(c.Prec) }

// Copy returns x rounded to the context precision; x is not modified.
func (c *Context) Copy(x *big.Float) *big.Float { return c.New().Set(x) }

// FromInt returns v at the context precision.
func (c *Context) FromInt(v int64) *big.Float { return c.New().SetInt64(v) }

// FromFloat returns v at the context precision. v must not be NaN.
func (c *Context) FromFloat(v float64) *big.Float { return c.New().SetFloat64(v) }

// Parse reads a decimal literal at the context precision, rejecting ±Inf.
func (c *Context) Parse(s string) (*big.Float, error) {
	x, _, err := big.ParseFloat(s, 10, c.Prec, big.ToNearestEven)
	if err != nil {
		return nil, fmt.Errorf("numeric: parse %q: %w", s, err)
	}
	if x.IsInf() {
		return nil, fmt.Errorf("numeric: parse %q: %w", s, ErrNotFinite)
	}
	return x, nil
}

// Eps returns 10^-Digits.
func (c *Context) Eps() *big.Float { return c.Copy(c.eps) }

// Pi returns π at the context precision.
func (c *Context) Pi() *big.Float { return c.Copy(c.pi) }

// Ln returns the natural logarithm of x. x must be positive and finite.
func (c *Context) Ln(x *big.Float) (*big.Float, error) {
	if x.Sign() <= 0 || x.IsInf() {
		return nil, ErrDomain
	}
	return bigfloat.Log(c.Copy(x)), nil
}

// Pow returns x^k for a non-negative integer k by repeated squaring.
func (c *Context) Pow(x *big.Float, k int) *big.Float {
	res := c.FromInt(1)
	base := c.Copy(x)
	for k > 0 {
		if k&1 == 1 {
			res.Mul(res, base)
		}
		base.Mul(base, base)
		k >>= 1
	}
	return res
}

func (c *Context) Add(a, b *big.Float) *big.Float { return c.New().Add(a, b) }
func (c *Context) Sub(a, b *big.Float) *big.Float { return c.New().Sub(a, b) }
func (c *Context) Mul(a, b *big.Float) *big.Float { return c.New().Mul(a, b) }

// Quo returns a/b; b must be non-zero.
func (c *Context) Quo(a, b *big.Float) *big.Float { return c.New().Quo(a, b) }

// AbsDiff returns |a − b|.
func (c *Context) AbsDiff(a, b *big.Float) *big.Float {
	d := c.Sub(a, b)
	return d.Abs(d)
}

// NearZero reports whether |x| < eps.
func (c *Context) NearZero(x *big.Float) bool {
	a := new(big.Float).Abs(x)
	return a.Cmp(c.eps) < 0
}

// String is the canonical full-precision representation used for
// persistence and fingerprints.
func (c *Context) String(x *big.Float) string { return x.Text('g', c.Digits) }

// Short renders x with n significant digits for progress lines.
func Short(x *big.Float, n int) string { return x.Text('g', n) }

// Sci renders x in %.{n}e style.
func Sci(x *big.Float, n int) string { return x.Text('e', n) }

// IsFinite reports whether x is non-nil and not ±Inf. big.Float has no NaN.
func IsFinite(x *big.Float) bool { return x != nil && !x.IsInf() }

// Float64 returns the nearest float64 of x.
func Float64(x *big.Float) float64 {
	f, _ := x.Float64()
	return f
}

// gaussLegendrePi computes π with the Gauss–Legendre (AGM) iteration.
func gaussLegendrePi(prec uint) *big.Float {
	wp := prec + 32
	nf := func() *big.Float { return new(big.Float).SetPrec(wp) }

	one := nf().SetInt64(1)
	two := nf().SetInt64(2)

	a := nf().SetInt64(1)
	b := nf().Sqrt(nf().Quo(one, two))
	t := nf().SetFloat64(0.25)
	p := nf().SetInt64(1)

	// Quadratic convergence: digits double every round.
	rounds := int(math.Ceil(math.Log2(float64(wp)))) + 2
	for i := 0; i < rounds; i++ {
		an := nf().Add(a, b)
		an.Quo(an, two)
		b = nf().Sqrt(nf().Mul(a, b))
		d := nf().Sub(a, an)
		d.Mul(d, d)
		d.Mul(d, p)
		t.Sub(t, d)
		a = an
		p.Mul(p, two)
	}
	pi := nf().Add(a, b)
	pi.Mul(pi, pi)
	den := nf().Mul(t, nf().SetInt64(4))
	pi.Quo(pi, den)
	return new(big.Float).SetPrec(prec).Set(pi)
}

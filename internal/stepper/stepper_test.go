package stepper

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leo/internal/numeric"
)

func allFormulas(t *testing.T) []Formula {
	t.Helper()
	var out []Formula
	for _, n := range Names() {
		f, err := Lookup(n)
		require.NoError(t, err)
		out = append(out, f)
	}
	return out
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"cir7", "simple"}, Names())
	_, err := Lookup("nope")
	assert.ErrorContains(t, err, `unknown formula "nope"`)
}

func TestNext_StrictlyIncreasingAboveOne(t *testing.T) {
	c := numeric.MustContext(30)
	states := []string{"1.5", "2", "2.718281828", "14.134725141734693790", "1000", "1e6", "1e100"}

	for _, f := range allFormulas(t) {
		st := New(c, f)
		for _, s := range states {
			x, err := c.Parse(s)
			require.NoError(t, err)
			next := st.Next(x)
			assert.Equal(t, 1, next.Cmp(x), "%s: next(%s)=%s not > state", f.Name(), s, c.String(next))
		}
		assert.Zero(t, st.Degenerate(), f.Name())
	}
}

func TestNext_GuardAtOrBelowOne(t *testing.T) {
	c := numeric.MustContext(25)
	inc, err := c.Parse(DegenerateStep)
	require.NoError(t, err)

	for _, f := range allFormulas(t) {
		st := New(c, f)
		for _, s := range []string{"1", "0.999", "0.5", "1e-20", "0", "-3"} {
			x, err := c.Parse(s)
			require.NoError(t, err)
			want := c.Add(x, inc)
			got := st.Next(x)
			assert.Zero(t, got.Cmp(want), "%s: next(%s)=%s want %s", f.Name(), s, c.String(got), c.String(want))
		}
		assert.EqualValues(t, 6, st.Degenerate())
	}
}

func TestNext_GuardWhenLogNearZero(t *testing.T) {
	// ln(1 + 1e-32) ≈ 1e-32 is inside eps = 1e-30; guard bits keep x > 1.
	c := numeric.MustContext(30)
	x, err := c.Parse("1.00000000000000000000000000000001")
	require.NoError(t, err)
	require.Equal(t, 1, x.Cmp(c.FromInt(1)))

	st := New(c, CIR7{})
	got := st.Next(x)
	inc, _ := c.Parse(DegenerateStep)
	assert.Zero(t, got.Cmp(c.Add(x, inc)))
	assert.EqualValues(t, 1, st.Degenerate())
}

func TestNext_DoesNotMutateInput(t *testing.T) {
	c := numeric.MustContext(20)
	x, _ := c.Parse("21.022039638771554993")
	before := c.String(x)
	_ = New(c, Simple{}).Next(x)
	assert.Equal(t, before, c.String(x))
}

func TestNext_InfiniteStateIsCorrected(t *testing.T) {
	c := numeric.MustContext(20)
	got := New(c, Simple{}).Next(new(big.Float).SetInf(false))
	assert.True(t, numeric.IsFinite(got))
}

func TestSimple_MatchesFloat64(t *testing.T) {
	const s0 = 14.134725141734693790
	want := s0 + 2*math.Pi*math.Log(s0+1)/math.Pow(math.Log(s0), 2)

	got, err := Next(Simple{}, big.NewFloat(s0), 30)
	require.NoError(t, err)
	assert.InDelta(t, want, numeric.Float64(got), 1e-9)
}

func TestCIR7_MatchesFloat64(t *testing.T) {
	const s0 = 2.0
	l := math.Log(s0)
	want := s0 + 2*math.Pi/l*(1+7/math.Log(s0+8)+1/math.Pow(math.Log(s0+9), 2))

	got, err := Next(CIR7{}, big.NewFloat(s0), 40)
	require.NoError(t, err)
	assert.InDelta(t, want, numeric.Float64(got), 1e-9)
}

func TestNext_Deterministic(t *testing.T) {
	run := func() string {
		c := numeric.MustContext(80)
		st := New(c, CIR7{})
		x, _ := c.Parse("2.0")
		for i := 0; i < 25; i++ {
			x = st.Next(x)
		}
		return c.String(x)
	}
	assert.Equal(t, run(), run())
}

func TestNext_InvalidPrecision(t *testing.T) {
	_, err := Next(Simple{}, big.NewFloat(3), 0)
	assert.Error(t, err)
}

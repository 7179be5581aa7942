package output

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leo/internal/engine"
	"leo/internal/numeric"
	"leo/internal/reporter"
	"leo/pkg/api"
)

func TestGrouped(t *testing.T) {
	assert.Equal(t, "0", Grouped(0))
	assert.Equal(t, "1,000", Grouped(1000))
	assert.Equal(t, "1,000,000,000,000,000", Grouped(1_000_000_000_000_000))
}

func TestFormatListRow(t *testing.T) {
	c := numeric.MustContext(20)
	p := func(s string) *big.Float {
		x, err := c.Parse(s)
		require.NoError(t, err)
		return x
	}
	r := reporter.StepRecord{
		Index:          1,
		Reference:      p("14.134725141734693790"),
		Metric:         p("0.0000000012345"),
		State:          p("14.134725"),
		Disparity:      p("14.1347"),
		MetricIncrease: c.New(),
		StateIncrease:  c.New(),
		SpawnCount:     1,
		TotalCounted:   2,
	}
	const want = "1      14.134725          1.234500e-09    14.134725       1.413470e+01 0.000000e+00    0.000000        1              2           "
	assert.Equal(t, want, FormatListRow(r))
	assert.Len(t, FormatListRow(r), len(ListHeader))
}

func TestFormatBoundProgress(t *testing.T) {
	c := numeric.MustContext(60)
	st, err := c.Parse("123456.789012345678901234567890123456789012345678901234567")
	require.NoError(t, err)
	r := reporter.StepRecord{
		Index: 1_000_000,
		State: st,
		Check: &reporter.Check{Statistic: c.FromFloat(0.5), Bound: c.FromFloat(0.00025)},
	}
	got := FormatBoundProgress(r)
	assert.True(t, strings.HasPrefix(got, "n = 1,000,000 | γ ≈ 123456.789012345678901234567890123456789..."), got)
	assert.True(t, strings.HasSuffix(got, "| S(T) ≈ 5.00e-01 | bound = 2.50e-04"), got)
}

func TestWriteListHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteListHeader(&buf, engine.Plan{References: 15, Formula: "simple", Metric: "zeta", Precision: 15}))
	out := buf.String()
	assert.Contains(t, out, "Using 15 reference zeros")
	assert.Contains(t, out, ListHeader+"\n"+ListRule+"\n")
}

func TestWriteDetailed_FirstFive(t *testing.T) {
	c := numeric.MustContext(15)
	var recs []reporter.StepRecord
	for i := 1; i <= 8; i++ {
		recs = append(recs, reporter.StepRecord{Index: uint64(i), State: c.FromInt(int64(i)), Reference: c.FromInt(int64(i))})
	}
	var buf bytes.Buffer
	require.NoError(t, WriteDetailed(&buf, recs))
	assert.Contains(t, buf.String(), "Zero 5:")
	assert.NotContains(t, buf.String(), "Zero 6:")
	assert.Contains(t, buf.String(), "  Known Value: 1.000000000000")
}

func TestWriteBoundReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBoundReport(&buf, boundSummary()))
	out := buf.String()
	assert.Contains(t, out, "1,000 STEPS COMPUTED (LIMIT_REACHED)")
	assert.Contains(t, out, "Required bound ≈ 1.20e-04")
	assert.Contains(t, out, "BOUND SATISFIED")

	s := boundSummary()
	s.Status = reporter.StatusViolation
	s.Bound = "+Inf"
	buf.Reset()
	require.NoError(t, WriteBoundReport(&buf, s))
	assert.Contains(t, buf.String(), "BOUND VIOLATION")
	assert.Contains(t, buf.String(), "Required bound ≈ +Inf")
}

func TestWriteContentStats(t *testing.T) {
	var b strings.Builder
	err := WriteContentStats(&b, api.ContentStatsV1{File: "u.txt", Lines: 12, SizeKB: 1.5, Entropy: 0.01234, Chunks: 3, Hash: "abcd"})
	if err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, want := range []string{"=== CONTENT ANALYSIS: u.txt ===", "Total lines: 12", "File size: 1.50 KB", "Content entropy: 0.0123", "Generator chunks: 3 (hash abcd)", ContentRule} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

package pretty

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"leo/internal/reporter"
)

func summary(status reporter.Status) reporter.Summary {
	return reporter.Summary{
		Mode: reporter.ModeBound, Formula: "cir7", Terminal: "LIMIT_REACHED",
		Status: status, N: 1000,
		FinalText:   strings.Repeat("9", 80),
		Statistic:   "0",
		Bound:       "0.000123",
		Precision:   1200,
		Fingerprint: reporter.Fingerprint("x"),
	}
}

func TestRenderSummary_Plain(t *testing.T) {
	out := RenderSummary(summary(reporter.StatusBoundSatisfied), DefaultOptions)
	assert.NotContains(t, out, "\x1b[", "no ANSI without color")
	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "✓ BOUND_SATISFIED")
	assert.Contains(t, out, "bound (cir7)")
	assert.Contains(t, out, strings.Repeat("9", 40)+"…")
	assert.NotContains(t, out, strings.Repeat("9", 41))
	assert.NotContains(t, out, "spawned")
}

func TestRenderSummary_FailureGlyph(t *testing.T) {
	out := RenderSummary(summary(reporter.StatusViolation), Options{})
	assert.Contains(t, out, "✗ VIOLATION")
}

func TestRenderSummary_ListShowsCounters(t *testing.T) {
	s := summary(reporter.StatusFalse)
	s.Mode = reporter.ModeList
	s.SpawnCount, s.TotalCounted = 2, 17
	out := RenderSummary(s, DefaultOptions)
	assert.Contains(t, out, "2 / 17 counted")
}

func TestDefaultOptions_Stable(t *testing.T) {
	d := DefaultOptions
	if d.OKGlyph != "✓" || d.FailGlyph != "✗" || d.LabelWidth != 14 || d.StateChars != 40 || d.Color {
		t.Fatalf("DefaultOptions visual defaults changed")
	}
}

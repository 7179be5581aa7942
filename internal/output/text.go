// internal/output/text.go
package output

import (
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"leo/internal/engine"
	"leo/internal/reporter"
)

var printer = message.NewPrinter(language.English)

const listRowFormat = "%-6d %-18s %-15s %-15s %-12s %-15s %-15s %-14d %-12d"

// Grouped formats n with thousands separators (1,000,000).
func Grouped(n uint64) string { return printer.Sprintf("%d", n) }

func fixed(x *big.Float, n int) string {
	if x == nil {
		return "-"
	}
	return x.Text('f', n)
}

func sci(x *big.Float, n int) string {
	if x == nil {
		return "-"
	}
	return x.Text('e', n)
}

// WriteListHeader prints the list-mode title block and the table header.
func WriteListHeader(w io.Writer, p engine.Plan) error {
	rule := strings.Repeat("=", len(ListRule))
	_, err := fmt.Fprintf(w,
		"RIEMANN ZETA FUNCTION vs NEW GAMMA FORMULA ANALYSIS\n%s\nUsing %d reference zeros (formula %s, metric %s)\nPrecision: %d\n\n%s\n%s\n",
		rule, p.References, p.Formula, p.Metric, p.Precision, ListHeader, ListRule,
	)
	return err
}

// FormatListRow renders one list-mode record as a table row (no newline).
func FormatListRow(r reporter.StepRecord) string {
	return fmt.Sprintf(listRowFormat,
		r.Index,
		fixed(r.Reference, 6),
		sci(r.Metric, 6),
		fixed(r.State, 6),
		sci(r.Disparity, 6),
		sci(r.MetricIncrease, 6),
		fixed(r.StateIncrease, 6),
		r.SpawnCount,
		r.TotalCounted,
	)
}

// WriteConvergence prints the convergence analysis of a list-mode summary.
func WriteConvergence(w io.Writer, s reporter.Summary) error {
	rule := strings.Repeat("=", 60)
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\nCONVERGENCE ANALYSIS\n%s\n", rule, rule)
	if s.HasDisparity {
		fmt.Fprintf(&b, "Average Disparity: %s\n", s.MeanDisparity.StringFixed(12))
		fmt.Fprintf(&b, "Maximum Disparity: %s\n", s.MaxDisparity.StringFixed(12))
		fmt.Fprintf(&b, "Minimum Disparity: %s\n", s.MinDisparity.StringFixed(12))
	}
	fmt.Fprintf(&b, "Total Zeros Spawned by New Formula: %d\n", s.SpawnCount)
	fmt.Fprintf(&b, "Final Total Zeros Counted: %d\n", s.TotalCounted)
	if s.HasCorrelation {
		fmt.Fprintf(&b, "Correlation between sequences: %.6f\n", s.Correlation)
	}
	fmt.Fprintf(&b, "Verdict: %s (%d of %s references spawned)\n", s.Status, s.SpawnCount, Grouped(s.N))
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteDetailed prints the per-entry block for the first DetailedEntries records.
func WriteDetailed(w io.Writer, recs []reporter.StepRecord) error {
	rule := strings.Repeat("=", 60)
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\nDETAILED ZERO ANALYSIS\n%s\n", rule, rule)
	for i, r := range recs {
		if i == DetailedEntries {
			break
		}
		fmt.Fprintf(&b, "Zero %d:\n", r.Index)
		fmt.Fprintf(&b, "  Known Value: %s\n", fixed(r.Reference, 12))
		fmt.Fprintf(&b, "  Metric: %s\n", sci(r.Metric, 6))
		fmt.Fprintf(&b, "  Gamma Formula: %s\n", fixed(r.State, 12))
		fmt.Fprintf(&b, "  Disparity: %s\n\n", sci(r.Disparity, 6))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteBoundBanner prints the bound-mode start banner.
func WriteBoundBanner(w io.Writer, p engine.Plan) error {
	_, err := fmt.Fprintf(w,
		"LEO bound run %s\nPrecision: %d digits\nTarget: %s steps, window %s, bound 1/ln(T)^%d\nStart: %s\n\n",
		p.RunID, p.Precision, Grouped(p.MaxIterations), Grouped(uint64(p.Window)), p.Exponent,
		p.Started.Format(time.DateTime),
	)
	return err
}

// FormatBoundProgress renders one bound-mode checkpoint (no newline).
func FormatBoundProgress(r reporter.StepRecord) string {
	state := fixed(r.State, 50)
	if len(state) > StateDisplayChars {
		state = state[:StateDisplayChars]
	}
	line := fmt.Sprintf("n = %s | γ ≈ %s...", Grouped(r.Index), state)
	if r.Check != nil {
		line += fmt.Sprintf(" | S(T) ≈ %s | bound = %s", sci(r.Check.Statistic, 2), sci(r.Check.Bound, 2))
	}
	return line
}

// WriteBoundReport prints the bound-mode final report.
func WriteBoundReport(w io.Writer, s reporter.Summary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s STEPS COMPUTED (%s).\n", Grouped(s.N), s.Terminal)
	fmt.Fprintf(&b, "Final T ≈ %s\n", s.FinalText)
	fmt.Fprintf(&b, "Final S(T) ≈ %s\n", shortNumber(s.Statistic))
	fmt.Fprintf(&b, "Required bound ≈ %s\n", shortNumber(s.Bound))
	switch s.Status {
	case reporter.StatusBoundSatisfied:
		b.WriteString("\nBOUND SATISFIED: |S(T)| < bound at the final state.\n")
	default:
		b.WriteString("\nBOUND VIOLATION.\n")
	}
	fmt.Fprintf(&b, "Fingerprint: %s\n", s.Fingerprint)
	_, err := io.WriteString(w, b.String())
	return err
}

// shortNumber re-renders a full-precision decimal string as %.2e; non-numeric text passes through.
func shortNumber(s string) string {
	x, _, err := big.ParseFloat(s, 10, 64, big.ToNearestEven)
	if err != nil {
		return s
	}
	return x.Text('e', 2)
}

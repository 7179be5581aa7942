// internal/output/json.go
package output

import (
	"io"
	"math/big"
	"time"

	"leo/internal/jsonutil"
	"leo/internal/reporter"
	"leo/pkg/api"
)

// ToAPISummary converts a domain Summary to the stable wire schema (v1).
func ToAPISummary(s reporter.Summary, content *api.ContentStatsV1) api.SummaryV1 {
	v := api.SummaryV1{
		Status:      string(s.Status),
		N:           s.N,
		FinalState:  s.FinalText,
		Statistic:   s.Statistic,
		Bound:       s.Bound,
		Precision:   s.Precision,
		Timestamp:   s.Timestamp.UTC().Format(time.RFC3339),
		Fingerprint: s.Fingerprint,
		RunID:       s.RunID,
		Mode:        string(s.Mode),
		Formula:     s.Formula,
		Terminal:    s.Terminal,
		Content:     content,
	}
	if s.Mode == reporter.ModeList {
		v.SpawnCount = s.SpawnCount
		v.TotalCounted = s.TotalCounted
	}
	if s.HasDisparity {
		v.MeanDisparity = s.MeanDisparity.String()
		v.MaxDisparity = s.MaxDisparity.String()
		v.MinDisparity = s.MinDisparity.String()
	}
	if s.HasCorrelation {
		c := s.Correlation
		v.Correlation = &c
	}
	return v
}

// ToAPIRecord converts a step record; values are rendered with digits significant digits.
func ToAPIRecord(r reporter.StepRecord, digits int) api.StepRecordV1 {
	text := func(x *big.Float) string {
		if x == nil {
			return ""
		}
		return x.Text('g', digits)
	}
	v := api.StepRecordV1{
		Index:          r.Index,
		State:          text(r.State),
		Reference:      text(r.Reference),
		Metric:         text(r.Metric),
		Disparity:      text(r.Disparity),
		StateIncrease:  text(r.StateIncrease),
		MetricIncrease: text(r.MetricIncrease),
		Spawned:        r.Spawned,
		SpawnCount:     r.SpawnCount,
		TotalCounted:   r.TotalCounted,
	}
	if r.Check != nil {
		v.Statistic = text(r.Check.Statistic)
		v.Bound = text(r.Check.Bound)
		v.Violated = r.Check.Violated
	}
	return v
}

// WriteSummaryJSON writes one indented v1 summary.
func WriteSummaryJSON(w io.Writer, s reporter.Summary, content *api.ContentStatsV1) error {
	return jsonutil.EncodePretty(w, ToAPISummary(s, content))
}

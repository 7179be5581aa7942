// pkg/api/summary_v1.go
package api

// SummaryV1 is the stable JSON schema of the termination record.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
//
// Numeric values are decimal strings at the run's working precision.
type SummaryV1 struct {
	Status      string `json:"status"` // "TRUE" | "FALSE" | "VIOLATION" | "BOUND_SATISFIED"
	N           uint64 `json:"n"`
	FinalState  string `json:"final_state"`
	Statistic   string `json:"statistic"`
	Bound       string `json:"bound"`
	Precision   int    `json:"precision"`
	Timestamp   string `json:"timestamp"` // RFC 3339, UTC
	Fingerprint string `json:"fingerprint"`

	RunID    string `json:"run_id,omitempty"`
	Mode     string `json:"mode,omitempty"` // "list" | "bound"
	Formula  string `json:"formula,omitempty"`
	Terminal string `json:"terminal,omitempty"`

	// List mode convergence analysis
	SpawnCount    uint64   `json:"spawn_count,omitempty"`
	TotalCounted  uint64   `json:"total_counted,omitempty"`
	MeanDisparity string   `json:"mean_disparity,omitempty"`
	MaxDisparity  string   `json:"max_disparity,omitempty"`
	MinDisparity  string   `json:"min_disparity,omitempty"`
	Correlation   *float64 `json:"correlation,omitempty"`

	Content *ContentStatsV1 `json:"content,omitempty"`
}

// StepRecordV1 is one line of the JSONL step stream.
type StepRecordV1 struct {
	Index uint64 `json:"index"`
	State string `json:"state"`

	Reference      string `json:"reference,omitempty"`
	Metric         string `json:"metric,omitempty"`
	Disparity      string `json:"disparity,omitempty"`
	StateIncrease  string `json:"state_increase,omitempty"`
	MetricIncrease string `json:"metric_increase,omitempty"`
	Spawned        bool   `json:"spawned,omitempty"`
	SpawnCount     uint64 `json:"spawn_count,omitempty"`
	TotalCounted   uint64 `json:"total_counted,omitempty"`

	// Bound mode checkpoints
	Statistic string `json:"statistic,omitempty"`
	Bound     string `json:"bound,omitempty"`
	Violated  bool   `json:"violated,omitempty"`
}

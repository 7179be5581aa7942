// Package metrics exposes run progress as Prometheus metrics, written to a
// node-exporter textfile at the end of a run.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"leo/internal/numeric"
	"leo/internal/reporter"
)

const namespace = "leo"

// Recorder implements engine.Observer over a private registry.
type Recorder struct {
	reg *prometheus.Registry

	steps       prometheus.Counter
	checkpoints prometheus.Counter
	violations  prometheus.Counter
	spawned     prometheus.Gauge
	counted     prometheus.Gauge
	state       prometheus.Gauge
	statistic   prometheus.Gauge
	bound       prometheus.Gauge
	disparity   prometheus.Histogram
	result      *prometheus.GaugeVec
}

// NewRecorder registers the run metrics on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "steps_total",
			Help: "Records produced by the run.",
		}),
		checkpoints: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "checkpoints_total",
			Help: "Windowed statistic evaluations.",
		}),
		violations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "checkpoint_violations_total",
			Help: "Checkpoints where |S| exceeded the bound.",
		}),
		spawned: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "spawn_count",
			Help: "References matched within tolerance (list mode).",
		}),
		counted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "total_counted",
			Help: "Running total counter (list mode).",
		}),
		state: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "state",
			Help: "Latest recurrence state, rounded to float64.",
		}),
		statistic: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "window_statistic",
			Help: "Latest windowed statistic S(T).",
		}),
		bound: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "bound",
			Help: "Latest bound 1/ln(T)^k.",
		}),
		disparity: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "disparity",
			Help:    "Per-entry |metric - state| (list mode).",
			Buckets: prometheus.ExponentialBuckets(1e-6, 10, 10),
		}),
		result: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "run_result",
			Help: "1 for the finished run, labelled with its verdict.",
		}, []string{"mode", "formula", "terminal", "status"}),
	}
	r.reg.MustRegister(r.steps, r.checkpoints, r.violations, r.spawned, r.counted,
		r.state, r.statistic, r.bound, r.disparity, r.result)
	return r
}

// Registry returns the registry holding the run metrics.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// OnRecord updates the per-step metrics.
func (r *Recorder) OnRecord(rec reporter.StepRecord) {
	r.steps.Inc()
	r.state.Set(numeric.Float64(rec.State))
	r.spawned.Set(float64(rec.SpawnCount))
	r.counted.Set(float64(rec.TotalCounted))
	if rec.Disparity != nil {
		r.disparity.Observe(numeric.Float64(rec.Disparity))
	}
	if ck := rec.Check; ck != nil {
		r.checkpoints.Inc()
		r.statistic.Set(numeric.Float64(ck.Statistic))
		r.bound.Set(numeric.Float64(ck.Bound))
		if ck.Violated {
			r.violations.Inc()
		}
	}
}

// OnSummary records the verdict.
func (r *Recorder) OnSummary(s reporter.Summary) {
	r.result.WithLabelValues(string(s.Mode), s.Formula, s.Terminal, string(s.Status)).Set(1)
}

// WriteTextfile writes the metrics in the textfile-collector format,
// atomically replacing path.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}

// Package reporter turns successive recurrence states into immutable step
// records and a termination summary.
//
// List mode keeps every record (runs are a few hundred steps at most).
// Bound mode keeps only the trailing window of W states plus the last record.
package reporter

import (
	"errors"
	"math/big"
	"time"

	"leo/internal/numeric"
	"leo/internal/runutil"
)

// Mode selects list or bound reporting.
type Mode string

const (
	ModeList  Mode = "list"
	ModeBound Mode = "bound"
)

// Options configures a Reporter.
type Options struct {
	Mode      Mode
	Context   *numeric.Context
	Metric    Metric     // list mode
	Tolerance *big.Float // list mode spawn tolerance
	Window    int        // bound mode trailing window
	Exponent  int        // bound mode k in 1/ln(T)^k

	// Expected is the reference count; the list verdict is TRUE when every reference spawned.
	Expected int

	Formula string
	RunID   string
	Now     func() time.Time
}

// StepRecord is the snapshot of one iteration. Callers must treat the
// *big.Float fields as read-only; the reporter never touches them again.
type StepRecord struct {
	Index uint64
	State *big.Float

	// List mode.
	Reference      *big.Float
	Metric         *big.Float
	Disparity      *big.Float
	StateIncrease  *big.Float
	MetricIncrease *big.Float
	Spawned        bool

	SpawnCount   uint64
	TotalCounted uint64

	// Bound mode, checkpoints only.
	Check *Check
}

// Input is one observation handed to Record.
type Input struct {
	Index      uint64
	State      *big.Float
	Reference  *big.Float // list mode
	Checkpoint bool       // bound mode: evaluate the windowed statistic
}

// Reporter accumulates records and running statistics for one run.
type Reporter struct {
	opt Options
	c   *numeric.Context

	records []StepRecord
	last    *StepRecord
	window  *runutil.Ring[*big.Float]

	prevState  *big.Float
	prevMetric *big.Float

	spawn, total uint64
	disp         disparityStats
	corr         correlation
	lastCheck    *Check
}

// New validates opt and returns an empty Reporter.
func New(opt Options) (*Reporter, error) {
	if opt.Context == nil {
		return nil, errors.New("reporter: nil numeric context")
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	r := &Reporter{opt: opt, c: opt.Context}
	switch opt.Mode {
	case ModeList:
		if opt.Metric == nil {
			r.opt.Metric = ZetaMetric{}
		}
		if opt.Tolerance == nil || opt.Tolerance.Sign() <= 0 {
			return nil, errors.New("reporter: tolerance must be > 0")
		}
	case ModeBound:
		if opt.Window <= 0 {
			return nil, errors.New("reporter: window must be > 0")
		}
		if opt.Exponent <= 0 {
			return nil, errors.New("reporter: exponent must be > 0")
		}
		r.window = runutil.NewRing[*big.Float](opt.Window)
	default:
		return nil, errors.New("reporter: mode must be list or bound")
	}
	return r, nil
}

// Record produces the step record for in and appends it (list mode) or
// keeps it as the last record (bound mode).
func (r *Reporter) Record(in Input) StepRecord {
	c := r.c
	rec := StepRecord{Index: in.Index, State: c.Copy(in.State)}

	switch r.opt.Mode {
	case ModeList:
		r.recordList(&rec, in)
	case ModeBound:
		r.window.Push(rec.State)
		if in.Checkpoint {
			ck := r.Evaluate(rec.State)
			rec.Check = &ck
		}
	}
	rec.SpawnCount, rec.TotalCounted = r.spawn, r.total
	if r.opt.Mode == ModeList {
		r.records = append(r.records, rec)
	}
	r.last = &rec
	return rec
}

func (r *Reporter) recordList(rec *StepRecord, in Input) {
	c := r.c
	if in.Reference == nil {
		return
	}
	ref := c.Copy(in.Reference)
	metric := r.opt.Metric.Eval(c, ref)

	rec.Reference = ref
	rec.Metric = metric
	rec.Disparity = c.AbsDiff(metric, rec.State)
	rec.StateIncrease, rec.MetricIncrease = c.New(), c.New()
	if r.prevState != nil {
		rec.StateIncrease = c.AbsDiff(rec.State, r.prevState)
		rec.MetricIncrease = c.AbsDiff(metric, r.prevMetric)
	}

	if c.AbsDiff(rec.State, ref).Cmp(r.opt.Tolerance) < 0 {
		rec.Spawned = true
		r.spawn++
		r.total++
	}
	r.total++

	r.disp.add(c, rec.Disparity)
	r.corr.add(numeric.Float64(metric), numeric.Float64(rec.State))
	r.prevState, r.prevMetric = rec.State, metric
}

// Evaluate computes the windowed statistic against threshold T and remembers it.
func (r *Reporter) Evaluate(T *big.Float) Check {
	var ck Check
	if r.window == nil {
		ck = Evaluate(r.c, Slice(nil), T, r.opt.Exponent)
	} else {
		ck = Evaluate(r.c, r.window.Do, T, r.opt.Exponent)
	}
	r.lastCheck = &ck
	return ck
}

// Records returns the retained records (list mode), ordered by index.
func (r *Reporter) Records() []StepRecord {
	out := make([]StepRecord, len(r.records))
	copy(out, r.records)
	return out
}

// Last returns the most recent record, or false before the first Record.
func (r *Reporter) Last() (StepRecord, bool) {
	if r.last == nil {
		return StepRecord{}, false
	}
	return *r.last, true
}

// WindowLen reports how many states the bound-mode window retains.
func (r *Reporter) WindowLen() int {
	if r.window == nil {
		return 0
	}
	return r.window.Len()
}

// Counters returns the running spawn and total counters.
func (r *Reporter) Counters() (spawn, total uint64) { return r.spawn, r.total }

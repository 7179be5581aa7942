package engine

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"leo/internal/numeric"
	"leo/internal/reporter"
	"leo/internal/runutil"
	"leo/internal/stepper"
)

// State is a node of the driver state machine.
type State string

const (
	StateInit          State = "INIT"
	StateRunning       State = "RUNNING"
	StateExhausted     State = "EXHAUSTED"
	StateBoundViolated State = "BOUND_VIOLATED"
	StateLimitReached  State = "LIMIT_REACHED"
)

// Terminal reports whether s ends a run.
func (s State) Terminal() bool {
	return s == StateExhausted || s == StateBoundViolated || s == StateLimitReached
}

// Result is what Run hands back, including on persistence failure.
type Result struct {
	Terminal   State
	Summary    reporter.Summary
	Records    []reporter.StepRecord // list mode only
	Steps      uint64
	Degenerate uint64
}

// Engine drives one run. It is single-use and not safe for concurrent use.
type Engine struct {
	cfg  Config
	plan Plan
	num  *numeric.Context
	step Stepper
	rep  *reporter.Reporter
	log  *zap.Logger

	state   State
	initial *big.Float
	refs    []*big.Float

	progress Progress
}

// New validates cfg (INIT) and returns an engine ready to Run.
// Every configuration problem is reported as ErrInvalidConfig.
func New(cfg Config) (*Engine, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	num, err := numeric.NewContext(cfg.Precision)
	if err != nil {
		return nil, invalid("%v", err)
	}

	initial, err := parsePositive(num, "initial state", cfg.Initial)
	if err != nil {
		return nil, err
	}
	var tol *big.Float
	if cfg.Mode == reporter.ModeList {
		if tol, err = parsePositive(num, "tolerance", cfg.Tolerance); err != nil {
			return nil, err
		}
	}
	refs := make([]*big.Float, 0, len(cfg.References))
	for i, lit := range cfg.References {
		r, err := parsePositive(num, fmt.Sprintf("reference[%d]", i), lit)
		if err != nil {
			return nil, err
		}
		refs = append(refs, r)
	}

	st := cfg.Stepper
	if st == nil {
		f, err := stepper.Lookup(cfg.Formula)
		if err != nil {
			return nil, invalid("%v", err)
		}
		st = stepper.New(num, f)
	}

	var metric reporter.Metric
	if cfg.Mode == reporter.ModeList {
		name := cfg.Metric
		if name == "" {
			name = reporter.ZetaMetric{}.Name()
		}
		if metric, err = reporter.LookupMetric(name); err != nil {
			return nil, invalid("%v", err)
		}
	}

	rep, err := reporter.New(reporter.Options{
		Mode:      cfg.Mode,
		Context:   num,
		Metric:    metric,
		Tolerance: tol,
		Window:    cfg.Window,
		Exponent:  cfg.Exponent,
		Expected:  len(refs),
		Formula:   cfg.Formula,
		RunID:     cfg.RunID,
		Now:       cfg.Now,
	})
	if err != nil {
		return nil, invalid("%v", err)
	}

	plan := Plan{
		RunID:         cfg.RunID,
		Mode:          cfg.Mode,
		Formula:       cfg.Formula,
		Precision:     cfg.Precision,
		Initial:       initial,
		References:    len(refs),
		MaxIterations: cfg.MaxIterations,
		Window:        cfg.Window,
		Exponent:      cfg.Exponent,
		LogInterval:   runutil.EffectiveLogInterval(string(cfg.Mode), cfg.LogInterval),
	}
	if metric != nil {
		plan.Metric = metric.Name()
	}

	return &Engine{
		cfg:      cfg,
		plan:     plan,
		num:      num,
		step:     st,
		rep:      rep,
		log:      cfg.Logger.With(zap.String("run_id", cfg.RunID), zap.String("mode", string(cfg.Mode))),
		state:    StateInit,
		initial:  initial,
		refs:     refs,
		progress: cfg.Progress,
	}, nil
}

// State returns the current state machine node.
func (e *Engine) State() State { return e.state }

// Plan returns the validated run description.
func (e *Engine) Plan() Plan { return e.plan }

// Run executes the run to a terminal state, summarizes and persists.
// ctx is checked once per iteration; cancellation returns a *RunError
// wrapping ctx.Err() and nothing is persisted.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	if e.state != StateInit {
		return Result{}, errors.New("engine: Run called twice")
	}
	e.state = StateRunning
	e.plan.Started = e.cfg.Now()

	e.log.Info("run started",
		zap.String("formula", e.plan.Formula),
		zap.Int("precision", e.plan.Precision),
		zap.Uint64("log_interval", e.plan.LogInterval),
	)
	e.emit(func(p Progress) error { return p.Begin(e.plan) })

	var (
		steps uint64
		err   error
	)
	switch e.cfg.Mode {
	case reporter.ModeList:
		steps, err = e.runList(ctx)
	default:
		steps, err = e.runBound(ctx)
	}
	if err != nil {
		e.log.Warn("run interrupted", zap.Uint64("step", steps), zap.Error(err))
		return Result{Terminal: e.state, Steps: steps, Degenerate: e.degenerate()}, &RunError{Index: steps, State: e.state, Err: err}
	}
	return e.finish(steps)
}

func (e *Engine) runList(ctx context.Context) (uint64, error) {
	state := e.initial
	var n uint64
	for i, ref := range e.refs {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		n = uint64(i + 1)
		rec := e.rep.Record(reporter.Input{Index: n, State: state, Reference: ref})
		e.observe(rec)
		if runutil.IsCheckpoint(n, e.plan.LogInterval) {
			e.emit(func(p Progress) error { return p.Step(rec) })
		}
		if i < len(e.refs)-1 {
			state = e.step.Next(state)
		}
	}
	e.state = StateExhausted
	return n, nil
}

func (e *Engine) runBound(ctx context.Context) (uint64, error) {
	state := e.initial
	limit := e.cfg.MaxIterations
	for n := uint64(1); ; n++ {
		if err := ctx.Err(); err != nil {
			return n - 1, err
		}
		state = e.step.Next(state)

		checkpoint := runutil.IsCheckpoint(n, e.plan.LogInterval)
		atLimit := n == limit
		rec := e.rep.Record(reporter.Input{Index: n, State: state, Checkpoint: checkpoint || atLimit})
		e.observe(rec)
		if checkpoint {
			e.emit(func(p Progress) error { return p.Step(rec) })
			e.log.Debug("checkpoint",
				zap.Uint64("step", n),
				zap.String("statistic", numeric.Sci(rec.Check.Statistic, 2)),
				zap.String("bound", numeric.Sci(rec.Check.Bound, 2)),
			)
		}

		switch {
		case atLimit:
			e.state = StateLimitReached
			return n, nil
		case checkpoint && rec.Check.Violated:
			e.state = StateBoundViolated
			return n, nil
		}
	}
}

func (e *Engine) finish(steps uint64) (Result, error) {
	sum := e.rep.Summarize(string(e.state))
	res := Result{
		Terminal:   e.state,
		Summary:    sum,
		Records:    e.rep.Records(),
		Steps:      steps,
		Degenerate: e.degenerate(),
	}
	if e.cfg.Observer != nil {
		e.cfg.Observer.OnSummary(sum)
	}
	e.emit(func(p Progress) error { return p.End(sum) })

	fields := []zap.Field{
		zap.String("terminal", string(e.state)),
		zap.String("status", string(sum.Status)),
		zap.Uint64("steps", steps),
		zap.String("fingerprint", sum.Fingerprint),
	}
	if res.Degenerate > 0 {
		fields = append(fields, zap.Uint64("degenerate_steps", res.Degenerate))
	}
	e.log.Info("run finished", fields...)

	if e.cfg.Sink == nil {
		return res, nil
	}
	if err := e.cfg.Sink.Persist(sum); err != nil {
		e.log.Error("summary not persisted",
			zap.String("status", string(sum.Status)),
			zap.String("final_state", sum.FinalText),
			zap.String("statistic", sum.Statistic),
			zap.String("fingerprint", sum.Fingerprint),
			zap.Error(err),
		)
		return res, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return res, nil
}

func (e *Engine) observe(rec reporter.StepRecord) {
	if e.cfg.Observer != nil {
		e.cfg.Observer.OnRecord(rec)
	}
}

// emit calls fn on the progress stream; the first failure disables it.
func (e *Engine) emit(fn func(Progress) error) {
	if e.progress == nil {
		return
	}
	if err := fn(e.progress); err != nil {
		e.log.Warn("progress stream disabled", zap.Error(err))
		e.progress = nil
	}
}

func (e *Engine) degenerate() uint64 {
	if d, ok := e.step.(interface{ Degenerate() uint64 }); ok {
		return d.Degenerate()
	}
	return 0
}

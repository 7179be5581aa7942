// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"leo/internal/cmdutil"
	"leo/internal/config"
	"leo/internal/content"
	"leo/internal/engine"
	"leo/internal/jsonutil"
	"leo/internal/metrics"
	"leo/internal/output"
	"leo/internal/reference"
	"leo/internal/reporter"
	"leo/internal/runutil"
	"leo/internal/writers"
	"leo/pkg/api"
)

// Run executes one resolved leo invocation and returns the process exit code.
func Run(parent context.Context, stdout, stderr io.Writer, cfg config.Config) int {
	outw := bufio.NewWriter(stdout)

	log, err := cmdutil.NewLogger(cfg.LogLevel, cfg.LogFormat, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return cmdutil.ExitUsage
	}
	defer func() { _ = log.Sync() }()

	mode := reporter.Mode(cfg.Mode)
	initial := cfg.Initial
	var refs []string
	if mode == reporter.ModeList {
		if refs, err = loadReferences(cfg.References); err != nil {
			fmt.Fprintln(stderr, "error:", err)
			return cmdutil.ExitUsage
		}
		if initial == "" {
			initial = refs[0]
		}
	}

	if !cfg.Quiet {
		interval := runutil.EffectiveLogInterval(cfg.Mode, cfg.LogInterval)
		for _, w := range runutil.ValidateLogInterval(cfg.Mode, interval, cfg.MaxIterations) {
			fmt.Fprintln(stderr, w)
		}
	}

	var stats *api.ContentStatsV1
	if cfg.ContentStats != "" {
		st, err := content.AnalyzeFile(cfg.ContentStats)
		if err != nil {
			fmt.Fprintln(stderr, "error:", err)
			return cmdutil.ExitIO
		}
		stats = &st
	}

	streams, err := OpenStreams(outw, stdout, cfg, log)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		var fe *FormatError
		if errors.As(err, &fe) {
			return cmdutil.ExitUsage
		}
		return cmdutil.ExitIO
	}
	defer func() { _ = streams.Close() }()

	var sink engine.SummarySink
	if cfg.Summary != "" {
		sink = writers.SummaryFile{Path: cfg.Summary, Content: stats}
	}
	var rec *metrics.Recorder
	var obs engine.Observer
	if cfg.MetricsFile != "" {
		rec = metrics.NewRecorder()
		obs = rec
	}

	eng, err := engine.New(engine.Config{
		Mode:          mode,
		Initial:       initial,
		Precision:     cfg.Precision,
		Formula:       cfg.Formula,
		Metric:        cfg.Metric,
		References:    refs,
		Tolerance:     cfg.Tolerance,
		MaxIterations: cfg.MaxIterations,
		Window:        cfg.Window,
		Exponent:      cfg.Exponent,
		LogInterval:   cfg.LogInterval,
		Logger:        log,
		Progress:      streams.Progress(),
		Sink:          sink,
		Observer:      obs,
	})
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return cmdutil.ExitUsage
	}

	res, runErr := eng.Run(parent)

	if cerr := streams.Close(); cerr != nil && !writers.IsBrokenPipe(cerr) {
		log.Warn("record stream", zap.Error(cerr))
	}
	if e := outw.Flush(); e != nil && !writers.IsBrokenPipe(e) {
		fmt.Fprintln(stderr, "error:", e)
		return cmdutil.ExitIO
	}

	if runErr != nil && errors.Is(runErr, context.Canceled) {
		fmt.Fprintln(stderr, "canceled:", runErr)
		return cmdutil.ExitCanceled
	}
	if n := res.Degenerate; n > 0 {
		cmdutil.Warnf(stderr, cfg.Quiet, "%d degenerate steps advanced by the fallback increment", n)
	}
	if rec != nil {
		if err := rec.WriteTextfile(cfg.MetricsFile); err != nil {
			fmt.Fprintln(stderr, "error:", err)
			return cmdutil.ExitIO
		}
	}
	if runErr != nil {
		fmt.Fprintln(stderr, "error:", runErr)
		if errors.Is(runErr, engine.ErrPersistence) {
			// Printed even under --quiet; it is the only copy left.
			fmt.Fprintln(stderr, "summary (not persisted):")
			_ = jsonutil.EncodePretty(stderr, output.ToAPISummary(res.Summary, stats))
		}
		return cmdutil.ExitCodeFor(runErr, classify)
	}
	if res.Summary.Status.Failed() {
		return cfg.ViolationExitCode
	}
	return cmdutil.ExitOK
}

func classify(err error) (int, bool) {
	switch {
	case errors.Is(err, engine.ErrInvalidConfig):
		return cmdutil.ExitUsage, true
	case errors.Is(err, engine.ErrPersistence):
		return cmdutil.ExitIO, true
	}
	return 0, false
}

func loadReferences(path string) ([]string, error) {
	if path == "" {
		return reference.Default(), nil
	}
	return reference.Load(path)
}

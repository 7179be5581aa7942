package reporter

import (
	"encoding/hex"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/sha3"
)

// Status is the persisted verdict.
type Status string

const (
	StatusTrue           Status = "TRUE"
	StatusFalse          Status = "FALSE"
	StatusViolation      Status = "VIOLATION"
	StatusBoundSatisfied Status = "BOUND_SATISFIED"
)

// Failed reports whether the status is a negative verdict.
func (s Status) Failed() bool { return s == StatusFalse || s == StatusViolation }

// Summary is the termination record of one run.
type Summary struct {
	RunID    string
	Mode     Mode
	Formula  string
	Terminal string
	Status   Status

	N          uint64
	FinalState *big.Float
	// FinalText is the canonical full-precision string of FinalState.
	FinalText string
	Statistic string
	Bound     string
	Precision int
	Timestamp time.Time

	Fingerprint string

	SpawnCount   uint64
	TotalCounted uint64

	// List mode aggregates; HasDisparity is false in bound mode.
	HasDisparity  bool
	MeanDisparity decimal.Decimal
	MaxDisparity  decimal.Decimal
	MinDisparity  decimal.Decimal

	HasCorrelation bool
	Correlation    float64
}

// Fingerprint returns the hex SHA3-256 digest of a canonical state string.
func Fingerprint(canonical string) string {
	sum := sha3.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

// Summarize builds the termination summary for terminal state terminal.
// It has no side effects; persistence belongs to the caller's sink.
func (r *Reporter) Summarize(terminal string) Summary {
	c := r.c
	s := Summary{
		RunID:        r.opt.RunID,
		Mode:         r.opt.Mode,
		Formula:      r.opt.Formula,
		Terminal:     terminal,
		Precision:    c.Digits,
		Timestamp:    r.opt.Now().UTC(),
		SpawnCount:   r.spawn,
		TotalCounted: r.total,
	}

	final := c.New()
	if last, ok := r.Last(); ok {
		s.N = last.Index
		final = last.State
	}
	s.FinalState = final
	s.FinalText = c.String(final)
	s.Fingerprint = Fingerprint(s.FinalText)

	switch r.opt.Mode {
	case ModeList:
		s.HasDisparity = r.disp.n > 0
		s.MeanDisparity = r.disp.mean(c.Digits)
		s.MaxDisparity, s.MinDisparity = r.disp.max, r.disp.min
		s.Correlation, s.HasCorrelation = r.corr.value()
		s.Statistic = s.MeanDisparity.String()
		s.Bound = c.String(r.opt.Tolerance)
		s.Status = StatusFalse
		if r.opt.Expected > 0 && r.spawn == uint64(r.opt.Expected) {
			s.Status = StatusTrue
		}

	case ModeBound:
		ck := r.lastCheck
		if ck == nil || ck.T.Cmp(final) != 0 {
			v := r.Evaluate(final)
			ck = &v
		}
		s.Statistic = c.String(ck.Statistic)
		s.Bound = c.String(ck.Bound)
		s.Status = StatusViolation
		if !ck.Violated && ck.Satisfied() {
			s.Status = StatusBoundSatisfied
		}
	}
	return s
}


package engine

import (
	"errors"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"leo/internal/numeric"
	"leo/internal/reporter"
	"leo/internal/runutil"
)

// Stepper advances the recurrence state. *stepper.Stepper implements it.
type Stepper interface {
	Next(state *big.Float) *big.Float
}

// Progress receives the human-readable progress stream. Errors are logged
// and disable further progress output; they never stop the run.
type Progress interface {
	Begin(p Plan) error
	Step(rec reporter.StepRecord) error
	End(s reporter.Summary) error
}

// SummarySink persists the termination summary (overwrite semantics).
type SummarySink interface {
	Persist(s reporter.Summary) error
}

// Observer sees every record and the final summary. Used for metrics.
type Observer interface {
	OnRecord(rec reporter.StepRecord)
	OnSummary(s reporter.Summary)
}

// Plan describes a validated run; it is handed to Progress.Begin.
type Plan struct {
	RunID         string
	Mode          reporter.Mode
	Formula       string
	Metric        string
	Precision     int
	Initial       *big.Float
	References    int
	MaxIterations uint64
	Window        int
	Exponent      int
	LogInterval   uint64
	Started       time.Time
}

// Config is the explicit input of one run. Numeric literals stay strings so
// they are parsed once, at the working precision.
type Config struct {
	Mode      reporter.Mode `validate:"oneof=list bound"`
	Initial   string        `validate:"required"`
	Precision int           `validate:"gt=0,lte=100000"`
	Formula   string        `validate:"required"`
	Metric    string

	// List mode. Tolerance defaults to 0.1.
	References []string
	Tolerance  string

	// Bound mode. Window and Exponent are never defaulted here.
	MaxIterations uint64 `validate:"required_if=Mode bound"`
	Window        int    `validate:"required_if=Mode bound,gte=0"`
	Exponent      int    `validate:"required_if=Mode bound,gte=0"`

	// LogInterval 0 picks the mode default.
	LogInterval uint64

	RunID string
	Now   func() time.Time

	Logger   *zap.Logger `validate:"-"`
	Stepper  Stepper     `validate:"-"` // overrides Formula when set
	Progress Progress    `validate:"-"`
	Sink     SummarySink `validate:"-"`
	Observer Observer    `validate:"-"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c Config) withDefaults() Config {
	if c.Tolerance == "" {
		c.Tolerance = strconv.FormatFloat(runutil.DefaultTolerance, 'g', -1, 64)
	}
	if c.RunID == "" {
		c.RunID = uuid.NewString()
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// Validate checks the scalar fields. Numeric literals are checked by New,
// which needs the working precision to parse them.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		if c.Mode == reporter.ModeList && len(c.References) == 0 {
			return invalid("list mode needs a non-empty reference list")
		}
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return invalid("%v", err)
	}
	msgs := make([]string, 0, len(ves))
	for _, fe := range ves {
		msgs = append(msgs, describe(fe))
	}
	return invalid("%s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "required_if":
		return fe.Field() + " must be > 0 in bound mode"
	case "gt":
		return fe.Field() + " must be > " + fe.Param()
	case "gte":
		return fe.Field() + " must be ≥ " + fe.Param()
	case "lte":
		return fe.Field() + " must be ≤ " + fe.Param()
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	}
	return fe.Field() + " failed " + fe.Tag()
}

// parsePositive parses a strictly positive finite literal at c's precision.
func parsePositive(c *numeric.Context, field, lit string) (*big.Float, error) {
	x, err := c.Parse(strings.TrimSpace(lit))
	if err != nil {
		return nil, invalid("%s: %v", field, err)
	}
	if x.Sign() <= 0 {
		return nil, invalid("%s must be > 0, got %s", field, lit)
	}
	return x, nil
}

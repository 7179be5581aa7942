// internal/clibase/common.go
package clibase

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Defaults maps flag names to default values (see config.Defaults).
type Defaults map[string]any

func (d Defaults) str(k string) string {
	if v, ok := d[k].(string); ok {
		return v
	}
	return ""
}

func (d Defaults) integer(k string) int {
	if v, ok := d[k].(int); ok {
		return v
	}
	return 0
}

func (d Defaults) u64(k string) uint64 {
	if v, ok := d[k].(uint64); ok {
		return v
	}
	return 0
}

// RegisterRun wires the recurrence flags shared by list and bound.
func RegisterRun(fs *pflag.FlagSet, d Defaults, formulas []string) {
	fs.StringP("initial", "i", d.str("initial"), "initial state (decimal literal)")
	fs.IntP("precision", "p", d.integer("precision"), "working precision in significant decimal digits")
	fs.StringP("formula", "f", d.str("formula"), fmt.Sprintf("step formula %v", formulas))
	fs.Uint64("log-interval", d.u64("log-interval"), "progress/checkpoint every N steps")
}

// RegisterOutput wires the output and logging flags of every run command.
func RegisterOutput(fs *pflag.FlagSet, d Defaults, formats []string) {
	fs.String("summary", d.str("summary"), "write the JSON summary to FILE (replaced if present)")
	fs.String("records", d.str("records"), "stream step records as JSONL to FILE")
	fs.String("metrics-file", d.str("metrics-file"), "write Prometheus textfile metrics to FILE")
	fs.String("content-stats", d.str("content-stats"), "attach the analysis of a leo-content FILE to the summary")
	fs.StringP("format", "o", d.str("format"), fmt.Sprintf("stdout format %v", formats))
	fs.String("log-level", d.str("log-level"), "debug | info | warn | error")
	fs.String("log-format", d.str("log-format"), "console | json")
	fs.BoolP("quiet", "q", false, "no progress output; warnings suppressed")
	fs.Bool("no-header", false, "omit the table header / start banner")
	fs.Bool("pretty", false, "append a summary box (terminal only)")
	fs.Int("violation-exit-code", d.integer("violation-exit-code"), "exit code for FALSE/VIOLATION verdicts")
}

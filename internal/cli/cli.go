// Package cli builds the cobra command trees of leo and leo-content.
// Commands resolve their configuration and hand it to a handler; they never
// run computations themselves.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"leo/internal/clibase"
	"leo/internal/config"
	"leo/internal/reporter"
	"leo/internal/stepper"
	"leo/internal/version"
	"leo/internal/writers"
)

// ExitUsage is the exit code of flag and configuration errors.
const ExitUsage = 2

// ExitError carries a process exit code out of cobra's Execute.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// Usage wraps err as a usage error.
func Usage(err error) error { return &ExitError{Code: ExitUsage, Err: err} }

// CodeOf returns the exit code carried by err, or ExitUsage for errors cobra
// raised itself (unknown command, bad arguments).
func CodeOf(err error) int {
	if err == nil {
		return 0
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ExitUsage
}

// Handler runs one resolved leo invocation.
type Handler func(ctx context.Context, cfg config.Config) error

// NewLeoCommand returns the leo root command with list and bound subcommands.
func NewLeoCommand(run Handler) *cobra.Command {
	root := &cobra.Command{
		Use:   "leo",
		Short: "Precision-controlled recurrence sequences checked against zeta-zero statistics",
		Long: `leo iterates a one-step recurrence at a chosen decimal precision.

  list   compares each term with a list of known zeta-zero ordinates
  bound  checks a windowed counting statistic against 1/ln(T)^k

The termination summary can be written as JSON; every setting can also come
from --config FILE or LEO_* environment variables (flags win).`,
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetVersionTemplate("leo version {{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return Usage(err) })
	root.PersistentFlags().String("config", "", "config FILE (yaml, json or toml; [list]/[bound] sections)")

	root.AddCommand(newRunCommand(reporter.ModeList, run), newRunCommand(reporter.ModeBound, run))
	return root
}

func newRunCommand(mode reporter.Mode, run Handler) *cobra.Command {
	d := clibase.Defaults(config.Defaults(string(mode)))
	cmd := &cobra.Command{
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(string(mode), file, cmd.Flags())
			if err != nil {
				return Usage(err)
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()
	clibase.RegisterRun(fs, d, stepper.Names())
	switch mode {
	case reporter.ModeList:
		cmd.Use = "list"
		cmd.Short = "Compare the sequence with known zeta-zero ordinates"
		cmd.Example = clibase.Examples(
			"leo list",
			"leo list --formula cir7 --references zeros.yaml --records steps.jsonl",
			"leo list --metric identity --tolerance 0.5 --summary list.json",
		)
		fs.StringP("references", "r", "", "reference FILE (.txt, .json, .yaml, .toml); built-in 15 zeros if empty")
		fs.String("metric", "zeta", fmt.Sprintf("reference metric %v", reporter.MetricNames()))
		fs.String("tolerance", "0.1", "spawn tolerance |state - reference|")
	case reporter.ModeBound:
		cmd.Use = "bound"
		cmd.Short = "Check the windowed statistic against 1/ln(T)^k"
		cmd.Example = clibase.Examples(
			"leo bound --max-iterations 100000 --log-interval 10000 --precision 60",
			"LEO_PRECISION=200 leo bound --summary proof.json --metrics-file leo.prom",
		)
		fs.Uint64P("max-iterations", "n", d["max-iterations"].(uint64), "iteration cap")
		fs.IntP("window", "w", d["window"].(int), "trailing window size W")
		fs.IntP("exponent", "k", d["exponent"].(int), "bound exponent k in 1/ln(T)^k")
	}
	clibase.RegisterOutput(fs, d, writers.Formats())
	return cmd
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"leo/internal/cliutil"
	"leo/internal/version"
)

// GenerateOptions are the leo-content generate flags.
type GenerateOptions struct {
	Out    string
	SizeMB float64
	Seed   uint64
	Quiet  bool
}

// AnalyzeOptions are the leo-content analyze arguments.
type AnalyzeOptions struct {
	Files   []string
	JSON    bool
	Threads int
}

// ContentHandlers run the leo-content subcommands.
type ContentHandlers struct {
	Generate func(ctx context.Context, opt GenerateOptions) error
	Analyze  func(ctx context.Context, opt AnalyzeOptions) error
}

// NewContentCommand returns the leo-content root command.
func NewContentCommand(h ContentHandlers) *cobra.Command {
	root := &cobra.Command{
		Use:           "leo-content",
		Short:         "Generate and analyze random mixed-content text files",
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetVersionTemplate("leo-content version {{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return Usage(err) })

	var g GenerateOptions
	gen := &cobra.Command{
		Use:   "generate",
		Short: "Write a random content file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if g.Out == "" {
				return Usage(fmt.Errorf("--out is required"))
			}
			if g.SizeMB <= 0 {
				return Usage(fmt.Errorf("--size-mb must be > 0, got %g", g.SizeMB))
			}
			return h.Generate(cmd.Context(), g)
		},
	}
	gen.Flags().StringVar(&g.Out, "out", "", "output FILE")
	gen.Flags().Float64Var(&g.SizeMB, "size-mb", 5, "size budget in MiB")
	gen.Flags().Uint64Var(&g.Seed, "seed", 1, "random seed")
	gen.Flags().BoolVarP(&g.Quiet, "quiet", "q", false, "print nothing on success")

	var a AnalyzeOptions
	an := &cobra.Command{
		Use:   "analyze FILE...",
		Short: "Print content statistics of one or more files (globs allowed)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := cliutil.ExpandPositionals(args)
			if err != nil {
				return Usage(err)
			}
			a.Files = files
			return h.Analyze(cmd.Context(), a)
		},
	}
	an.Flags().BoolVar(&a.JSON, "json", false, "print JSON instead of text")
	an.Flags().IntVarP(&a.Threads, "threads", "t", 0, "files analyzed in parallel (0 = all CPUs)")

	root.AddCommand(gen, an)
	return root
}

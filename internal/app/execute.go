package app

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"leo/internal/cli"
)

// Execute runs a cobra command tree and maps its error to an exit code.
// Errors that carry a message are printed with a pointer to --help.
func Execute(ctx context.Context, root *cobra.Command, argv []string, stdout, stderr io.Writer) int {
	root.SetArgs(argv)
	root.SetOut(stdout)
	root.SetErr(stderr)
	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}
	code := cli.CodeOf(err)
	if msg := err.Error(); !isBare(err) {
		fmt.Fprintf(stderr, "error: %s\n", msg)
		if code == cli.ExitUsage {
			fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.CommandPath())
		}
	}
	return code
}

// isBare reports an exit code without a message; the command already
// reported its failure.
func isBare(err error) bool {
	ee, ok := err.(*cli.ExitError)
	return ok && ee.Err == nil
}

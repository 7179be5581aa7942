// Package appshell is the process entry point shared by the leo commands.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Main runs fn with a context canceled on SIGINT/SIGTERM and exits with its
// code. With no arguments it shows the help.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	os.Exit(runWith(run, os.Args[1:], os.Stdout, os.Stderr))
}

func runWith(run func(context.Context, []string, io.Writer, io.Writer) int, argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	code := run(ctx, argv, stdout, stderr)
	// Normalize cancellation exit code.
	if ctx.Err() != nil && code == 0 {
		code = 130
	}
	return code
}

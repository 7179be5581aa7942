// internal/app/app.go
package app

import (
	"context"
	"io"

	"leo/internal/appcore"
	"leo/internal/cli"
	"leo/internal/config"
)

// RunContext parses argv, runs the selected leo command and returns the
// process exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	root := cli.NewLeoCommand(func(ctx context.Context, cfg config.Config) error {
		if code := appcore.Run(ctx, stdout, stderr, cfg); code != 0 {
			return &cli.ExitError{Code: code}
		}
		return nil
	})
	return Execute(parent, root, argv, stdout, stderr)
}

// Run is RunContext without cancellation.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

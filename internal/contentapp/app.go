// Package contentapp runs the leo-content command.
package contentapp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"leo/internal/app"
	"leo/internal/cli"
	"leo/internal/cmdutil"
	"leo/internal/content"
	"leo/internal/jsonutil"
	"leo/internal/output"
	"leo/internal/pipeline"
	"leo/internal/writers"
	"leo/pkg/api"
)

// RunContext parses argv and runs leo-content, returning the exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	root := cli.NewContentCommand(cli.ContentHandlers{
		Generate: func(ctx context.Context, opt cli.GenerateOptions) error {
			return generate(ctx, opt, stdout)
		},
		Analyze: func(ctx context.Context, opt cli.AnalyzeOptions) error {
			return analyze(ctx, opt, stdout)
		},
	})
	return app.Execute(parent, root, argv, stdout, stderr)
}

func generate(ctx context.Context, opt cli.GenerateOptions, stdout io.Writer) error {
	f, err := os.Create(opt.Out)
	if err != nil {
		return &cli.ExitError{Code: cmdutil.ExitIO, Err: err}
	}
	g := content.NewGenerator(opt.SizeMB, opt.Seed)
	res, err := g.Write(ctxWriter{ctx: ctx, w: f})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return &cli.ExitError{Code: cmdutil.ExitCodeFor(err, nil), Err: fmt.Errorf("generate %s: %w", opt.Out, err)}
	}
	if opt.Quiet {
		return nil
	}
	_, err = fmt.Fprintf(stdout, "File generated: %s\nSize: %d bytes (%.2f MB)\nChunks: %d\nHash: %s...\n",
		opt.Out, res.Bytes, float64(res.Bytes)/1024/1024, res.Chunks, res.Hash[:16])
	if err != nil && !writers.IsBrokenPipe(err) {
		return &cli.ExitError{Code: cmdutil.ExitIO, Err: err}
	}
	return nil
}

func analyze(ctx context.Context, opt cli.AnalyzeOptions, stdout io.Writer) error {
	threads := opt.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	stats := make([]api.ContentStatsV1, 0, len(opt.Files))
	err := pipeline.ForEach(ctx, pipeline.Config{Threads: threads}, opt.Files,
		func(_ context.Context, path string) (api.ContentStatsV1, error) {
			if path == "-" {
				st, err := content.Analyze(os.Stdin)
				st.File = path
				return st, err
			}
			return content.AnalyzeFile(path)
		},
		func(_ int, st api.ContentStatsV1) error {
			stats = append(stats, st)
			return nil
		})
	if err != nil {
		return &cli.ExitError{Code: cmdutil.ExitCodeFor(err, nil), Err: err}
	}

	bw := bufio.NewWriter(stdout)
	if opt.JSON {
		err = jsonutil.EncodePretty(bw, stats)
	} else {
		for i, st := range stats {
			if i > 0 {
				if _, err = fmt.Fprintln(bw); err != nil {
					break
				}
			}
			if err = output.WriteContentStats(bw, st); err != nil {
				break
			}
		}
	}
	if err == nil {
		err = bw.Flush()
	}
	if err != nil && !writers.IsBrokenPipe(err) {
		return &cli.ExitError{Code: cmdutil.ExitIO, Err: err}
	}
	return nil
}

// ctxWriter fails writes once ctx is done.
type ctxWriter struct {
	ctx context.Context
	w   io.Writer
}

func (c ctxWriter) Write(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.w.Write(p)
}

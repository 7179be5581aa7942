package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leo/internal/config"
)

func execute(t *testing.T, argv ...string) (config.Config, bool, error) {
	t.Helper()
	var got config.Config
	called := false
	root := NewLeoCommand(func(_ context.Context, cfg config.Config) error {
		got, called = cfg, true
		return nil
	})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(argv)
	err := root.ExecuteContext(context.Background())
	return got, called, err
}

func TestLeoCommand_ListDefaults(t *testing.T) {
	cfg, called, err := execute(t, "list")
	require.NoError(t, err)
	require.True(t, called)
	assert.Equal(t, "list", cfg.Mode)
	assert.Equal(t, 15, cfg.Precision)
	assert.Equal(t, "simple", cfg.Formula)
	assert.Equal(t, "text", cfg.Format)
}

func TestLeoCommand_BoundFlags(t *testing.T) {
	cfg, _, err := execute(t, "bound", "-n", "500", "-w", "20", "-k", "3", "-p", "80", "--summary", "p.json", "-o", "jsonl")
	require.NoError(t, err)
	assert.Equal(t, "bound", cfg.Mode)
	assert.EqualValues(t, 500, cfg.MaxIterations)
	assert.Equal(t, 20, cfg.Window)
	assert.Equal(t, 3, cfg.Exponent)
	assert.Equal(t, 80, cfg.Precision)
	assert.Equal(t, "p.json", cfg.Summary)
	assert.Equal(t, "jsonl", cfg.Format)
	assert.Equal(t, "cir7", cfg.Formula)
}

func TestLeoCommand_ModeFlagsAreSeparate(t *testing.T) {
	_, called, err := execute(t, "bound", "--references", "z.txt")
	require.Error(t, err)
	assert.False(t, called)
	assert.Equal(t, ExitUsage, CodeOf(err))

	_, _, err = execute(t, "list", "--window", "5")
	assert.Equal(t, ExitUsage, CodeOf(err))
}

func TestLeoCommand_RejectsArgs(t *testing.T) {
	_, called, err := execute(t, "list", "extra")
	require.Error(t, err)
	assert.False(t, called)
	assert.Equal(t, ExitUsage, CodeOf(err))
}

func TestContentCommand(t *testing.T) {
	var gen GenerateOptions
	var an AnalyzeOptions
	root := NewContentCommand(ContentHandlers{
		Generate: func(_ context.Context, o GenerateOptions) error { gen = o; return nil },
		Analyze:  func(_ context.Context, o AnalyzeOptions) error { an = o; return nil },
	})
	root.SetArgs([]string{"generate", "--out", "x.txt", "--size-mb", "0.5", "--seed", "9"})
	require.NoError(t, root.Execute())
	assert.Equal(t, GenerateOptions{Out: "x.txt", SizeMB: 0.5, Seed: 9}, gen)

	root.SetArgs([]string{"analyze", "--json", "-t", "2", "a.txt", "b.txt"})
	require.NoError(t, root.Execute())
	assert.Equal(t, AnalyzeOptions{Files: []string{"a.txt", "b.txt"}, JSON: true, Threads: 2}, an)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, 0, CodeOf(nil))
	assert.Equal(t, 3, CodeOf(fmt.Errorf("wrapped: %w", &ExitError{Code: 3})))
	assert.Equal(t, ExitUsage, CodeOf(errors.New("unknown command")))
	assert.Equal(t, "exit 4", (&ExitError{Code: 4}).Error())
}

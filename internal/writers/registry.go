// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"leo/internal/engine"
	"leo/internal/pretty"
)

// Options configure a progress writer.
type Options struct {
	NoHeader bool
	// Pretty appends a summary box after the text report.
	Pretty  bool
	PrettyO pretty.Options
	// BufSize is the JSONL channel buffer. If <=0, use 64.
	BufSize int
}

// ProgressFactory builds a progress stream over w.
type ProgressFactory func(w io.Writer, opt Options) engine.Progress

// Progress writer registry (format → factory). Registered in init() blocks.
var progressFactories = map[string]ProgressFactory{}

// RegisterProgress adds or replaces (last wins) a format.
func RegisterProgress(format string, fn ProgressFactory) { progressFactories[format] = fn }

// NewProgress dispatches on format.
func NewProgress(format string, w io.Writer, opt Options) (engine.Progress, error) {
	fn, ok := progressFactories[format]
	if !ok {
		return nil, fmt.Errorf("unknown progress format %q (known: %v)", format, Formats())
	}
	return fn(w, opt), nil
}

// Formats lists the registered formats, sorted.
func Formats() []string {
	out := make([]string, 0, len(progressFactories))
	for k := range progressFactories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

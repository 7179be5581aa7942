package appcore

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"leo/internal/config"
	"leo/internal/engine"
	"leo/internal/pretty"
	"leo/internal/writers"
)

// FormatError reports an unknown --format value.
type FormatError struct{ Err error }

func (e *FormatError) Error() string { return e.Err.Error() }
func (e *FormatError) Unwrap() error { return e.Err }

// Streams owns the progress outputs of one run: the stdout writer chosen by
// --format and the optional --records JSONL file.
type Streams struct {
	multi   *writers.Multi
	stdout  engine.Progress
	records *writers.RecordStream
	file    *os.File
}

// OpenStreams builds the progress streams. out is the buffered stdout; tty is
// the raw stdout, inspected only to decide whether --pretty applies.
func OpenStreams(out io.Writer, tty io.Writer, cfg config.Config, log *zap.Logger) (*Streams, error) {
	s := &Streams{}
	var progress engine.Progress
	if !cfg.Quiet {
		term := IsTerminal(tty)
		opt := writers.Options{
			NoHeader: cfg.NoHeader,
			Pretty:   cfg.Pretty && term,
			PrettyO:  pretty.DefaultOptions,
		}
		opt.PrettyO.Color = term
		p, err := writers.NewProgress(cfg.Format, out, opt)
		if err != nil {
			return nil, &FormatError{Err: err}
		}
		progress = p
		s.stdout = p
	}

	if cfg.Records != "" {
		f, err := os.Create(cfg.Records)
		if err != nil {
			return nil, fmt.Errorf("records: %w", err)
		}
		s.file = f
		s.records = writers.NewRecordStream(f, 0)
	}

	var rs engine.Progress
	if s.records != nil {
		rs = s.records
	}
	s.multi = writers.NewMulti(progress, rs)
	s.multi.OnError = func(err error) {
		if writers.IsBrokenPipe(err) {
			return
		}
		log.Warn("progress stream disabled", zap.Error(err))
	}
	return s, nil
}

// Progress returns the combined stream, or nil when there is nothing to write.
func (s *Streams) Progress() engine.Progress {
	if s.multi.Len() == 0 {
		return nil
	}
	return s.multi
}

// Close flushes the streams that run encoder goroutines (a jsonl stdout
// stream, the records stream) and closes the records file. It is safe to
// call more than once.
func (s *Streams) Close() error {
	var errs []error
	if c, ok := s.stdout.(io.Closer); ok {
		errs = append(errs, c.Close())
	}
	if s.records != nil {
		errs = append(errs, s.records.Close())
	}
	if s.file != nil {
		errs = append(errs, s.file.Close())
		s.file = nil
	}
	return errors.Join(errs...)
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

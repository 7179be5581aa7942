// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"
	"sync"

	"leo/internal/engine"
	"leo/internal/jsonlutil"
	"leo/internal/output"
	"leo/internal/reporter"
	"leo/pkg/api"
)

func init() {
	RegisterProgress(output.FormatJSONL, func(w io.Writer, opt Options) engine.Progress {
		return NewRecordStream(w, opt.BufSize)
	})
}

// RecordStream writes every step record it is handed as one JSON line (v1).
// Close must be called (End does it) to flush and stop the encoder goroutine.
type RecordStream struct {
	in     chan<- api.StepRecordV1
	done   <-chan error
	digits int

	once sync.Once
	err  error
}

// NewRecordStream starts the encoder goroutine.
func NewRecordStream(w io.Writer, bufSize int) *RecordStream {
	in, done := jsonlutil.Start[api.StepRecordV1](w, bufSize,
		func(enc *json.Encoder, v api.StepRecordV1) error { return enc.Encode(v) },
		IsBrokenPipe,
	)
	return &RecordStream{in: in, done: done, digits: 15}
}

func (r *RecordStream) Begin(p engine.Plan) error {
	if p.Precision > 0 {
		r.digits = p.Precision
	}
	return nil
}

func (r *RecordStream) Step(rec reporter.StepRecord) error {
	r.in <- output.ToAPIRecord(rec, r.digits)
	return nil
}

func (r *RecordStream) End(reporter.Summary) error { return r.Close() }

// Close flushes the stream. It is idempotent.
func (r *RecordStream) Close() error {
	r.once.Do(func() {
		close(r.in)
		r.err = <-r.done
	})
	return r.err
}

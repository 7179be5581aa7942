package jsonlutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"go.uber.org/goleak"
)

type row struct {
	N int `json:"n"`
}

func encodeRow(enc *json.Encoder, r row) error { return enc.Encode(r) }

func TestStart_WritesOneLinePerValue(t *testing.T) {
	defer goleak.VerifyNone(t)

	var buf bytes.Buffer
	in, done := Start[row](&buf, 2, encodeRow, nil)
	for i := 1; i <= 5; i++ {
		in <- row{N: i}
	}
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("done: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 || lines[0] != `{"n":1}` || lines[4] != `{"n":5}` {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }

func TestStart_DrainsAfterError(t *testing.T) {
	defer goleak.VerifyNone(t)

	boom := errors.New("boom")
	in, done := Start[row](failWriter{boom}, 1, func(enc *json.Encoder, r row) error {
		if r.N == 2 {
			return boom
		}
		return enc.Encode(r)
	}, nil)
	// More sends than the buffer holds; none may block.
	for i := 1; i <= 10; i++ {
		in <- row{N: i}
	}
	close(in)
	if err := <-done; !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
}

func TestStart_SuppressesBrokenPipe(t *testing.T) {
	defer goleak.VerifyNone(t)

	in, done := Start[row](failWriter{io.ErrClosedPipe}, 1, encodeRow, func(err error) bool {
		return errors.Is(err, io.ErrClosedPipe)
	})
	in <- row{N: 1}
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("broken pipe should be suppressed, got %v", err)
	}
}

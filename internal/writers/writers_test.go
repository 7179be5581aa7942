package writers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"leo/internal/engine"
	"leo/internal/numeric"
	"leo/internal/output"
	"leo/internal/reporter"
	"leo/pkg/api"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func listRecords(c *numeric.Context, n int) []reporter.StepRecord {
	recs := make([]reporter.StepRecord, 0, n)
	for i := 1; i <= n; i++ {
		v := c.FromInt(int64(10 * i))
		recs = append(recs, reporter.StepRecord{
			Index: uint64(i), State: v, Reference: v, Metric: c.New(), Disparity: v,
			StateIncrease: c.New(), MetricIncrease: c.New(), Spawned: true,
			SpawnCount: uint64(i), TotalCounted: uint64(2 * i),
		})
	}
	return recs
}

func sampleSummary(mode reporter.Mode) reporter.Summary {
	return reporter.Summary{
		RunID: "r", Mode: mode, Formula: "simple", Terminal: "EXHAUSTED",
		Status: reporter.StatusTrue, N: 7, FinalText: "70", Statistic: "0", Bound: "0.1",
		Precision: 15, Timestamp: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Fingerprint: reporter.Fingerprint("70"), SpawnCount: 7, TotalCounted: 14,
	}
}

func TestTextProgress_ListReport(t *testing.T) {
	c := numeric.MustContext(15)
	var buf bytes.Buffer
	p, err := NewProgress(output.FormatText, &buf, Options{})
	require.NoError(t, err)

	require.NoError(t, p.Begin(engine.Plan{Mode: reporter.ModeList, References: 7, Precision: 15}))
	for _, r := range listRecords(c, 7) {
		require.NoError(t, p.Step(r))
	}
	require.NoError(t, p.End(sampleSummary(reporter.ModeList)))

	out := buf.String()
	assert.Contains(t, out, output.ListHeader)
	assert.Contains(t, out, "CONVERGENCE ANALYSIS")
	assert.Contains(t, out, "Zero 5:")
	assert.NotContains(t, out, "Zero 6:")
	assert.Equal(t, output.DetailedEntries, strings.Count(out, "  Known Value"), "detailed block is capped")
	assert.NotContains(t, out, "╭", "no box unless Pretty")
}

func TestTextProgress_NoHeaderAndPretty(t *testing.T) {
	var buf bytes.Buffer
	p := NewTextProgress(&buf, Options{NoHeader: true, Pretty: true})
	require.NoError(t, p.Begin(engine.Plan{Mode: reporter.ModeBound, Precision: 30}))
	require.NoError(t, p.End(sampleSummary(reporter.ModeBound)))
	out := buf.String()
	assert.NotContains(t, out, "Precision:")
	assert.Contains(t, out, "STEPS COMPUTED")
	assert.Contains(t, out, "╭")
}

func TestRecordStream_JSONL(t *testing.T) {
	c := numeric.MustContext(15)
	var buf bytes.Buffer
	p, err := NewProgress(output.FormatJSONL, &buf, Options{BufSize: 2})
	require.NoError(t, err)
	require.NoError(t, p.Begin(engine.Plan{Precision: 15}))
	for _, r := range listRecords(c, 4) {
		require.NoError(t, p.Step(r))
	}
	require.NoError(t, p.End(reporter.Summary{}))
	require.NoError(t, p.(*RecordStream).Close(), "Close after End is a no-op")

	sc := bufio.NewScanner(&buf)
	var got []api.StepRecordV1
	for sc.Scan() {
		var v api.StepRecordV1
		require.NoError(t, json.Unmarshal(sc.Bytes(), &v))
		got = append(got, v)
	}
	require.Len(t, got, 4)
	assert.EqualValues(t, 4, got[3].Index)
	assert.Equal(t, "40", got[3].State)
	assert.EqualValues(t, 8, got[3].TotalCounted)
}

func TestJSONProgress_WritesSummaryAtEnd(t *testing.T) {
	var buf bytes.Buffer
	p, err := NewProgress(output.FormatJSON, &buf, Options{})
	require.NoError(t, err)
	require.NoError(t, p.Begin(engine.Plan{}))
	assert.Zero(t, buf.Len())
	require.NoError(t, p.End(sampleSummary(reporter.ModeList)))

	var v api.SummaryV1
	require.NoError(t, json.Unmarshal(buf.Bytes(), &v))
	assert.Equal(t, "TRUE", v.Status)
}

func TestNewProgress_UnknownFormat(t *testing.T) {
	_, err := NewProgress("nope-format", io.Discard, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown progress format")
	assert.Equal(t, []string{"json", "jsonl", "text"}, Formats())
}

type failingProgress struct{ calls int }

func (f *failingProgress) Begin(engine.Plan) error { f.calls++; return errors.New("closed") }
func (f *failingProgress) Step(reporter.StepRecord) error {
	f.calls++
	return errors.New("closed")
}
func (f *failingProgress) End(reporter.Summary) error { f.calls++; return errors.New("closed") }

func TestMulti_DropsFailedStream(t *testing.T) {
	var buf bytes.Buffer
	bad := &failingProgress{}
	var reported []error
	m := NewMulti(nil, bad, NewTextProgress(&buf, Options{NoHeader: true}))
	m.OnError = func(err error) { reported = append(reported, err) }
	require.Equal(t, 2, m.Len())

	require.NoError(t, m.Begin(engine.Plan{Mode: reporter.ModeBound}))
	require.NoError(t, m.Step(reporter.StepRecord{Index: 1, State: numeric.MustContext(15).FromInt(3)}))
	assert.Equal(t, 1, bad.calls, "a failed stream is not called again")
	assert.Len(t, reported, 1)
	assert.Equal(t, 1, m.Len())
	assert.Contains(t, buf.String(), "n = 1 |")

	only := NewMulti(&failingProgress{})
	assert.Error(t, only.Begin(engine.Plan{}), "fails once every stream failed")
}

func TestSummaryFile_PersistOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "RH_PROOF.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	content := &api.ContentStatsV1{Lines: 3}
	sink := SummaryFile{Path: path, Content: content}
	require.NoError(t, sink.Persist(sampleSummary(reporter.ModeList)))

	got, err := ReadSummary(path)
	require.NoError(t, err)
	assert.Equal(t, "TRUE", got.Status)
	assert.EqualValues(t, 7, got.N)
	assert.Equal(t, "70", got.FinalState)
	assert.Equal(t, "2025-01-02T03:04:05Z", got.Timestamp)
	require.NotNil(t, got.Content)
	assert.Equal(t, 3, got.Content.Lines)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestSummaryFile_RoundTrip(t *testing.T) {
	content := &api.ContentStatsV1{File: "u.txt", Lines: 12, Entropy: 0.0125, Chunks: 4, Hash: "0123456789abcdef"}
	cases := map[string]engine.Config{
		"list": {
			Mode: reporter.ModeList, Initial: "14.134725141734693790", Precision: 30, Formula: "simple",
			References: []string{"14.134725141734693790", "21.022039638771554993", "25.010857580145688763", "30.424876125859513210"},
		},
		"bound": {
			Mode: reporter.ModeBound, Initial: "2.0", Precision: 40, Formula: "cir7",
			MaxIterations: 30, Window: 10, Exponent: 10, LogInterval: 10,
		},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "summary.json")
			cfg.Sink = SummaryFile{Path: path, Content: content}
			cfg.RunID = "run-" + name
			e, err := engine.New(cfg)
			require.NoError(t, err)
			res, err := e.Run(context.Background())
			require.NoError(t, err)

			want := output.ToAPISummary(res.Summary, content)
			got, err := ReadSummary(path)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("summary round trip (-want +got):\n%s", diff)
			}
			assert.NotEmpty(t, got.Fingerprint)
			assert.NotEmpty(t, got.Statistic)
			assert.NotEmpty(t, got.Bound)
			if name == "list" {
				assert.NotEmpty(t, got.MeanDisparity)
				require.NotNil(t, got.Correlation)
			}
		})
	}
}

func TestSummaryFile_MissingDirectory(t *testing.T) {
	sink := SummaryFile{Path: filepath.Join(t.TempDir(), "missing", "out.json")}
	assert.Error(t, sink.Persist(sampleSummary(reporter.ModeBound)))
}

func TestIsBrokenPipe(t *testing.T) {
	assert.True(t, IsBrokenPipe(syscall.EPIPE))
	assert.True(t, IsBrokenPipe(io.ErrClosedPipe))
	assert.False(t, IsBrokenPipe(nil))
	assert.False(t, IsBrokenPipe(errors.New("other")))
}

// internal/writers/json.go
package writers

import (
	"io"

	"leo/internal/engine"
	"leo/internal/output"
	"leo/internal/reporter"
)

func init() {
	RegisterProgress(output.FormatJSON, func(w io.Writer, _ Options) engine.Progress {
		return &jsonProgress{w: w}
	})
}

// jsonProgress stays silent during the run and prints the summary as one
// indented JSON document at the end.
type jsonProgress struct{ w io.Writer }

func (*jsonProgress) Begin(engine.Plan) error        { return nil }
func (*jsonProgress) Step(reporter.StepRecord) error { return nil }

func (j *jsonProgress) End(s reporter.Summary) error {
	return output.WriteSummaryJSON(j.w, s, nil)
}

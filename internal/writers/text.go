// internal/writers/text.go
package writers

import (
	"fmt"
	"io"

	"leo/internal/engine"
	"leo/internal/output"
	"leo/internal/pretty"
	"leo/internal/reporter"
)

func init() {
	RegisterProgress(output.FormatText, func(w io.Writer, opt Options) engine.Progress {
		return NewTextProgress(w, opt)
	})
}

// TextProgress prints the human-readable report: the list table or the
// bound progress lines, followed by the final analysis.
type TextProgress struct {
	w     io.Writer
	opt   Options
	mode  reporter.Mode
	first []reporter.StepRecord
}

// NewTextProgress returns a text progress stream over w.
func NewTextProgress(w io.Writer, opt Options) *TextProgress {
	return &TextProgress{w: w, opt: opt}
}

func (t *TextProgress) Begin(p engine.Plan) error {
	t.mode = p.Mode
	if t.opt.NoHeader {
		return nil
	}
	if p.Mode == reporter.ModeList {
		return output.WriteListHeader(t.w, p)
	}
	return output.WriteBoundBanner(t.w, p)
}

func (t *TextProgress) Step(rec reporter.StepRecord) error {
	if t.mode == reporter.ModeList {
		if len(t.first) < output.DetailedEntries {
			t.first = append(t.first, rec)
		}
		_, err := fmt.Fprintln(t.w, output.FormatListRow(rec))
		return err
	}
	_, err := fmt.Fprintln(t.w, output.FormatBoundProgress(rec))
	return err
}

func (t *TextProgress) End(s reporter.Summary) error {
	var err error
	if t.mode == reporter.ModeList {
		if err = output.WriteConvergence(t.w, s); err == nil {
			err = output.WriteDetailed(t.w, t.first)
		}
	} else {
		err = output.WriteBoundReport(t.w, s)
	}
	if err != nil || !t.opt.Pretty {
		return err
	}
	_, err = fmt.Fprintln(t.w, pretty.RenderSummary(s, t.opt.PrettyO))
	return err
}

// Package pretty renders the run summary as a bordered terminal box.
package pretty

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"leo/internal/reporter"
)

// Options control the box rendering.
type Options struct {
	// Color enables ANSI styling; callers set it from isatty on the destination.
	Color bool

	// Label column width. If <=0, use default (14).
	LabelWidth int

	// Characters of the final state to show. If <=0, use default (40).
	StateChars int

	OKGlyph   string // default "✓"
	FailGlyph string // default "✗"
}

// DefaultOptions is the look used by the CLI.
var DefaultOptions = Options{
	LabelWidth: 14,
	StateChars: 40,
	OKGlyph:    "✓",
	FailGlyph:  "✗",
}

var (
	colorOK     = lipgloss.Color("#2CD7C7")
	colorFail   = lipgloss.Color("#E74C3C")
	colorBorder = lipgloss.Color("#16858E")
	colorMuted  = lipgloss.Color("#2C4A54")
)

func (o Options) withDefaults() Options {
	if o.LabelWidth <= 0 {
		o.LabelWidth = DefaultOptions.LabelWidth
	}
	if o.StateChars <= 0 {
		o.StateChars = DefaultOptions.StateChars
	}
	if o.OKGlyph == "" {
		o.OKGlyph = DefaultOptions.OKGlyph
	}
	if o.FailGlyph == "" {
		o.FailGlyph = DefaultOptions.FailGlyph
	}
	return o
}

func renderer(color bool) *lipgloss.Renderer {
	// A renderer over io.Discard detects no terminal and emits plain text.
	if !color {
		return lipgloss.NewRenderer(io.Discard)
	}
	return lipgloss.DefaultRenderer()
}

// RenderSummary returns s as a rounded box.
func RenderSummary(s reporter.Summary, opt Options) string {
	opt = opt.withDefaults()
	r := renderer(opt.Color)

	label := r.NewStyle().Foreground(colorMuted).Width(opt.LabelWidth)
	status := r.NewStyle().Bold(true).Foreground(colorOK)
	glyph := opt.OKGlyph
	if s.Status.Failed() {
		status = status.Foreground(colorFail)
		glyph = opt.FailGlyph
	}

	state := s.FinalText
	if len(state) > opt.StateChars {
		state = state[:opt.StateChars] + "…"
	}

	rows := [][2]string{
		{"status", status.Render(glyph + " " + string(s.Status))},
		{"mode", fmt.Sprintf("%s (%s)", s.Mode, s.Formula)},
		{"terminal", s.Terminal},
		{"steps", fmt.Sprintf("%d", s.N)},
		{"final state", state},
		{"statistic", s.Statistic},
		{"bound", s.Bound},
		{"precision", fmt.Sprintf("%d digits", s.Precision)},
	}
	if s.Mode == reporter.ModeList {
		rows = append(rows, [2]string{"spawned", fmt.Sprintf("%d / %d counted", s.SpawnCount, s.TotalCounted)})
	}
	rows = append(rows, [2]string{"fingerprint", s.Fingerprint[:min(16, len(s.Fingerprint))]})

	lines := make([]string, 0, len(rows))
	for _, kv := range rows {
		lines = append(lines, label.Render(kv[0])+kv[1])
	}

	box := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)
	return box.Render(strings.Join(lines, "\n"))
}

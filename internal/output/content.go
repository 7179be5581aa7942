package output

import (
	"fmt"
	"io"
	"strings"

	"leo/pkg/api"
)

// ContentRule closes a content analysis block.
var ContentRule = strings.Repeat("=", 35)

// WriteContentStats prints the analysis of one content file.
func WriteContentStats(w io.Writer, st api.ContentStatsV1) error {
	var err error
	p := func(format string, a ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format+"\n", a...)
		}
	}
	if st.File != "" {
		p("=== CONTENT ANALYSIS: %s ===", st.File)
	} else {
		p("=== CONTENT ANALYSIS SUMMARY ===")
	}
	p("Total lines: %d", st.Lines)
	p("Content lines: %d", st.ContentLines)
	p("Binary sequences: %d", st.BinaryLines)
	p("Number sequences: %d", st.NumberLines)
	p("Coordinate data points: %d", st.CoordinateLines)
	p("Mathematical formulas: %d", st.FormulaLines)
	p("Hash values: %d", st.HashLines)
	p("File size: %.2f KB", st.SizeKB)
	p("Unique characters: %d", st.UniqueChars)
	p("Content entropy: %.4f", st.Entropy)
	p("Alphabetic characters: %d", st.Letters)
	p("Numeric characters: %d", st.Digits)
	p("Special characters: %d", st.Special)
	if st.Chunks > 0 {
		p("Generator chunks: %d (hash %s)", st.Chunks, st.Hash)
	}
	p("%s", ContentRule)
	return err
}

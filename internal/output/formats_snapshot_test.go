package output

import "testing"

func TestFormats_Stable(t *testing.T) {
	if FormatText != "text" || FormatJSON != "json" || FormatJSONL != "jsonl" {
		t.Fatalf("output format constants changed")
	}
}

package output

import (
	"fmt"
	"testing"
)

func TestListHeader_Stable(t *testing.T) {
	const want = "Entry  Known Zero         Zeta Output     New Formula     Disparity    Zeta Increase   Gamma Increase  Spawn Counter  Total Zeros "
	if ListHeader != want {
		t.Fatalf("ListHeader changed:\n got:  %q\n want: %q", ListHeader, want)
	}
	built := fmt.Sprintf("%-6s %-18s %-15s %-15s %-12s %-15s %-15s %-14s %-12s",
		"Entry", "Known Zero", "Zeta Output", "New Formula", "Disparity",
		"Zeta Increase", "Gamma Increase", "Spawn Counter", "Total Zeros")
	if ListHeader != built {
		t.Fatalf("ListHeader out of step with the row widths:\n got:  %q\n want: %q", ListHeader, built)
	}
	if len(ListRule) != len(ListHeader) {
		t.Fatalf("ListRule is %d wide, header is %d", len(ListRule), len(ListHeader))
	}
}

func TestDefaults_Stable(t *testing.T) {
	if DefaultSummaryFile != "RH_PROOF.json" || DetailedEntries != 5 || StateDisplayChars != 40 {
		t.Fatalf("output defaults changed")
	}
}

package output

// ListHeader is the column header of the list-mode table.
// Keep this as the single source of truth; the text writer and tests use it.
const ListHeader = "Entry  Known Zero         Zeta Output     New Formula     Disparity    Zeta Increase   Gamma Increase  Spawn Counter  Total Zeros "

// ListRule separates the header from the rows.
const ListRule = "----------------------------------------------------------------------------------------------------------------------------------"

// DetailedEntries is how many records the detailed block prints.
const DetailedEntries = 5

// DefaultSummaryFile is the bound-mode summary path when none is given.
const DefaultSummaryFile = "RH_PROOF.json"

// StateDisplayChars is how many characters of the state a progress line shows.
const StateDisplayChars = 40

// Progress stream formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

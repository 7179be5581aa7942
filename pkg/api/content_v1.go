package api

// ContentStatsV1 is the analysis of a generated content file.
type ContentStatsV1 struct {
	File         string  `json:"file,omitempty"`
	SizeKB       float64 `json:"size_kb"`
	Lines        int     `json:"lines"`
	ContentLines int     `json:"content_lines"`
	Chars        int     `json:"chars"`
	UniqueChars  int     `json:"unique_chars"`
	Entropy      float64 `json:"entropy"` // unique/total

	Letters int `json:"letters"`
	Digits  int `json:"digits"`
	Special int `json:"special"`

	BinaryLines     int `json:"binary_lines"`
	NumberLines     int `json:"number_lines"`
	CoordinateLines int `json:"coordinate_lines"`
	FormulaLines    int `json:"formula_lines"`
	HashLines       int `json:"hash_lines"`

	// From the generator footer, when present.
	Chunks int    `json:"chunks,omitempty"`
	Hash   string `json:"hash,omitempty"`
}

package content

import (
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"leo/pkg/api"
)

const formulaOps = "+-*/^∫∂∑∏"

// AnalyzeFile reads path and analyzes it.
func AnalyzeFile(path string) (api.ContentStatsV1, error) {
	f, err := os.Open(path)
	if err != nil {
		return api.ContentStatsV1{}, err
	}
	defer f.Close()
	st, err := Analyze(f)
	st.File = path
	return st, err
}

// Analyze classifies the lines and characters of r.
func Analyze(r io.Reader) (api.ContentStatsV1, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return api.ContentStatsV1{}, err
	}
	text := string(b)
	lines := strings.Split(text, "\n")

	st := api.ContentStatsV1{
		SizeKB: float64(len(b)) / 1024,
		Lines:  len(lines),
	}
	unique := map[rune]struct{}{}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(line, "===") {
			continue
		}
		st.ContentLines++
		footer(&st, trimmed)

		if isBinary(trimmed) {
			st.BinaryLines++
		}
		if isNumber(trimmed) {
			st.NumberLines++
		}
		if strings.Contains(line, "(") && strings.Contains(line, ")") && strings.Contains(line, ".") {
			st.CoordinateLines++
		}
		if strings.ContainsAny(line, formulaOps) && !strings.HasPrefix(line, "---") {
			st.FormulaLines++
		}
		if isHash(trimmed) {
			st.HashLines++
		}

		for _, c := range line {
			st.Chars++
			unique[c] = struct{}{}
			switch {
			case unicode.IsLetter(c):
				st.Letters++
			case unicode.IsDigit(c):
				st.Digits++
			default:
				st.Special++
			}
		}
	}
	st.UniqueChars = len(unique)
	if st.Chars > 0 {
		st.Entropy = float64(st.UniqueChars) / float64(st.Chars)
	}
	return st, nil
}

func footer(st *api.ContentStatsV1, line string) {
	if v, ok := strings.CutPrefix(line, "Total Chunks: "); ok {
		if n, err := strconv.Atoi(v); err == nil {
			st.Chunks = n
		}
	}
	if v, ok := strings.CutPrefix(line, "Content Hash: "); ok {
		st.Hash = v
	}
}

func isBinary(s string) bool {
	return strings.Trim(s, "01") == ""
}

func isNumber(s string) bool {
	s = strings.NewReplacer(",", "", "-", "", ".", "", " ", "").Replace(s)
	if s == "" {
		return false
	}
	for _, c := range s {
		if !unicode.IsDigit(c) {
			return false
		}
	}
	return true
}

func isHash(s string) bool {
	if len(s) != 64 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

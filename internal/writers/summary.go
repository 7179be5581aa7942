// internal/writers/summary.go
package writers

import (
	"fmt"
	"os"
	"path/filepath"

	"leo/internal/jsonutil"
	"leo/internal/output"
	"leo/internal/reporter"
	"leo/pkg/api"
)

// SummaryFile persists the summary as indented JSON at Path, replacing any
// previous file. The write goes to a temp file in the same directory first.
type SummaryFile struct {
	Path    string
	Content *api.ContentStatsV1
}

func (f SummaryFile) Persist(s reporter.Summary) (err error) {
	dir := filepath.Dir(f.Path)
	tmp, err := os.CreateTemp(dir, ".leo-summary-*")
	if err != nil {
		return fmt.Errorf("summary %s: %w", f.Path, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = jsonutil.EncodePretty(tmp, output.ToAPISummary(s, f.Content)); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("summary %s: %w", f.Path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("summary %s: %w", f.Path, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("summary %s: %w", f.Path, err)
	}
	if err = os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("summary %s: %w", f.Path, err)
	}
	return nil
}

// ReadSummary loads a summary written by SummaryFile.
func ReadSummary(path string) (api.SummaryV1, error) {
	var v api.SummaryV1
	b, err := os.ReadFile(path)
	if err != nil {
		return v, err
	}
	if err := jsonutil.Decode(b, &v); err != nil {
		return v, fmt.Errorf("summary %s: %w", path, err)
	}
	return v, nil
}

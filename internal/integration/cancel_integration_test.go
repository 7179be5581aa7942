package integration

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"leo/internal/app"
)

func TestCtrlC_MidRun_Exit130(t *testing.T) {
	summary := filepath.Join(t.TempDir(), "proof.json")
	argv := []string{"bound", "--max-iterations", "1000000000", "--log-interval", "1000000", "--summary", summary, "-q"}

	ctx, cancel := context.WithCancel(context.Background())
	// Cancel shortly after start.
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	code := app.RunContext(ctx, argv, io.Discard, io.Discard)
	if code != 130 {
		t.Fatalf("expected exit 130 on cancel, got %d", code)
	}
	if _, err := os.Stat(summary); !os.IsNotExist(err) {
		t.Fatalf("canceled run must not write a summary, stat err=%v", err)
	}
}

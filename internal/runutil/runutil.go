// internal/runutil/runutil.go
package runutil

// Defaults shared by the CLI and the engine.
const (
	DefaultWindow          = 1000
	DefaultExponent        = 10
	DefaultTolerance       = 0.1
	DefaultListLogInterval = 1
	DefaultBoundLogEvery   = 1_000_000_000_000     // 10^12
	DefaultBoundMaxIter    = 1_000_000_000_000_000 // 10^15
)

// EffectiveLogInterval returns the progress interval for a mode.
// interval > 0 is used as-is; otherwise list mode logs every step and
// bound mode every 10^12 steps.
func EffectiveLogInterval(mode string, interval uint64) uint64 {
	if interval > 0 {
		return interval
	}
	if mode == "list" {
		return DefaultListLogInterval
	}
	return DefaultBoundLogEvery
}

// IsCheckpoint reports whether step n (1-based) is a log checkpoint.
func IsCheckpoint(n, interval uint64) bool {
	return interval > 0 && n > 0 && n%interval == 0
}

// ValidateLogInterval returns warnings for intervals that never fire.
// Rules:
//   - interval larger than the iteration cap → no progress lines, no checkpoint checks
//   - interval of 1 in bound mode → the O(W) statistic runs on every step
func ValidateLogInterval(mode string, interval, maxIter uint64) []string {
	var warns []string
	if mode != "bound" {
		return nil
	}
	if maxIter > 0 && interval > maxIter {
		warns = append(warns, "warning: --log-interval exceeds --max-iterations; only the final check will run")
	}
	if interval == 1 {
		warns = append(warns, "warning: --log-interval 1 evaluates the windowed statistic on every step")
	}
	return warns
}

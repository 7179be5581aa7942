// Package engine is the sequence driver: it owns the recurrence state, feeds
// each new value to the reporter and walks the state machine
//
//	INIT → RUNNING → {EXHAUSTED | BOUND_VIOLATED | LIMIT_REACHED}
//
// It never imports app, writers, cli or output; presentation and persistence
// reach it only through the Progress, SummarySink and Observer interfaces.
//
// External outputs must not depend on the shapes here — use pkg/api for the
// stable wire types.
package engine

// Package writers turns the engine's progress events and summaries into
// serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (tables, progress lines, JSON/JSONL).
//   - Engine stays domain-only; it sees writers only as engine.Progress and
//     engine.SummarySink.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers

// Package writers turns alignment records into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge beyond the report block itself.
//   - Pipeline stays orchestration-only and never writes to stdout.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers

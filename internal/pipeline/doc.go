// Package pipeline reads a reference and one or more traces, aligns each
// trace against the reference and hands back the formatted report.
//
// Ingestion failures surface as *ingest.InputIngestionError, scoring and
// matrix failures as the typed errors of package align. Nothing here writes
// to stdout; persisting a report is SaveArtifact's job.
package pipeline

// pkg/api/alignment_v1.go
package api

// AlignmentV1 is the stable JSON/JSONL schema for one trace-vs-reference run.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type AlignmentV1 struct {
	ReferenceID string `json:"reference_id"`
	TraceID     string `json:"trace_id"`
	TraceFile   string `json:"trace_file,omitempty"`

	Score            float64    `json:"score"`
	AlignedReference string     `json:"aligned_reference"`
	AlignedQuery     string     `json:"aligned_query"`
	Summary          SummaryV1  `json:"summary"`
	Report           string     `json:"report"`
	Scoring          *ScoringV1 `json:"scoring,omitempty"`
	Cigar            string     `json:"cigar,omitempty"`

	// Set instead of the alignment fields when the trace could not be processed.
	Error string `json:"error,omitempty"`
}

// SummaryV1 counts alignment columns by kind.
type SummaryV1 struct {
	Columns    int     `json:"columns"`
	Identical  int     `json:"identical"`
	Matches    int     `json:"matches"`
	Mismatches int     `json:"mismatches"`
	RefGaps    int     `json:"ref_gaps"`
	QueryGaps  int     `json:"query_gaps"`
	Identity   float64 `json:"identity"`
}

// ScoringV1 echoes the scoring parameters a run used.
type ScoringV1 struct {
	Match     float64 `json:"match"`
	Mismatch  float64 `json:"mismatch"`
	GapOpen   float64 `json:"gap_open"`
	GapExtend float64 `json:"gap_extend"`
}

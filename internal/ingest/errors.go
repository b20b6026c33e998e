package ingest

import (
	"errors"
	"fmt"
)

var (
	ErrNoRecords       = errors.New("no sequence records found")
	ErrExtraRecords    = errors.New("expected exactly one sequence record")
	ErrNotABIF         = errors.New("not an ABIF chromatogram")
	ErrNoBaseCalls     = errors.New("chromatogram has no base calls (PBAS)")
	ErrUnknownFormat   = errors.New("unrecognised file type")
	ErrSequenceTooLong = errors.New("sequence exceeds configured length limit")
	ErrTruncatedRecord = errors.New("record is truncated")
)

// InputIngestionError wraps any failure to turn an input record into a
// sequence. The aligner never sees input that produced one.
type InputIngestionError struct {
	Path   string
	Format Format
	Err    error
}

func (e *InputIngestionError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("read %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("read %s (%s): %v", e.Path, e.Format, e.Err)
}

func (e *InputIngestionError) Unwrap() error { return e.Err }

// InvalidSymbolError reports the first symbol outside the nucleotide alphabet.
type InvalidSymbolError struct {
	Pos    int // 1-based
	Symbol byte
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("invalid base %q at %d; allowed: A C G T R Y S W K M B D H V N -", e.Symbol, e.Pos)
}

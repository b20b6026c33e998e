package cmdutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"ab1align/internal/align"
	"ab1align/internal/ingest"
)

func TestWarnf(t *testing.T) {
	var b bytes.Buffer
	Warnf(&b, true, "hidden %d", 1)
	if b.Len() != 0 {
		t.Fatalf("quiet warning printed: %q", b.String())
	}
	Warnf(&b, false, "trace %s is short", "x")
	if b.String() != "WARN: trace x is short\n" {
		t.Fatalf("got %q", b.String())
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{&ingest.InputIngestionError{Path: "x", Err: ingest.ErrNotABIF}, ExitInput},
		{fmt.Errorf("run: %w", &align.InvalidScoringPolicyError{Field: "match"}), ExitUsage},
		{&align.AlignmentComputationError{Reason: "too big"}, ExitCompute},
		{fmt.Errorf("stage: %w", context.Canceled), ExitInterrupted},
		{errors.New("other"), ExitInput},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

// internal/cmdutil/exit.go
package cmdutil

import (
	"context"
	"errors"

	"ab1align/internal/align"
	"ab1align/internal/ingest"
)

// Process exit codes shared by the command-line tools.
const (
	ExitOK          = 0
	ExitInput       = 1 // an input record could not be read
	ExitUsage       = 2 // bad flags, config or scoring policy
	ExitOutput      = 3 // writing results failed
	ExitCompute     = 4 // the alignment itself failed
	ExitInterrupted = 130
)

// ExitCode maps an error from the pipeline to a process exit code.
func ExitCode(err error) int {
	var (
		ie *ingest.InputIngestionError
		pe *align.InvalidScoringPolicyError
		ce *align.AlignmentComputationError
	)
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.As(err, &ie):
		return ExitInput
	case errors.As(err, &pe):
		return ExitUsage
	case errors.As(err, &ce):
		return ExitCompute
	}
	return ExitInput
}

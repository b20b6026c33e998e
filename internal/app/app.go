// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"ab1align/internal/cli"
	"ab1align/internal/cmdutil"
	"ab1align/internal/config"
	"ab1align/internal/pipeline"
	"ab1align/internal/runutil"
	"ab1align/internal/version"
	"ab1align/internal/writers"
	"ab1align/pkg/api"
)

// ambiguousWarnFraction is the share of ambiguity codes in a trace above
// which a low-quality warning is printed.
const ambiguousWarnFraction = 0.10

// RunContext is the ab1align entry point. It returns the process exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("ab1align")
	fs.SetOutput(io.Discard)
	cli.InstallAlignUsage(fs)

	if len(argv) == 0 {
		argv = []string{"-h"}
	}
	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		fs.SetOutput(outw)
		if errors.Is(err, flag.ErrHelp) {
			fs.Usage()
			return flushCode(outw, stderr, cmdutil.ExitOK)
		}
		if errors.Is(err, cli.ErrPrintedAndExitOK) {
			cli.PrintAlignExamples(outw)
			return flushCode(outw, stderr, cmdutil.ExitOK)
		}
		cmdutil.Errorf(stderr, "%v", err)
		fs.Usage()
		return flushCode(outw, stderr, cmdutil.ExitUsage)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "ab1align version %s\n", version.Version)
		return flushCode(outw, stderr, cmdutil.ExitOK)
	}

	if opts.ConfigFile != "" {
		file, unknown, err := config.LoadFile(opts.ConfigFile)
		if err != nil {
			cmdutil.Errorf(stderr, "%v", err)
			return cmdutil.ExitUsage
		}
		for _, k := range unknown {
			cmdutil.Warnf(stderr, opts.Quiet, "%s: unknown key %q ignored", opts.ConfigFile, k)
		}
		opts.Config.FlagMerge(file, opts.Set)
	}
	if err := opts.Config.Validate(); err != nil {
		cmdutil.Errorf(stderr, "%v", err)
		return cmdutil.ExitUsage
	}

	if opts.WriteConfig {
		if err := opts.Config.Write(outw); err != nil {
			cmdutil.Errorf(stderr, "%v", err)
			return cmdutil.ExitOutput
		}
		return flushCode(outw, stderr, cmdutil.ExitOK)
	}

	runner, err := pipeline.NewRunner(opts.Config)
	if err != nil {
		cmdutil.Errorf(stderr, "%v", err)
		return cmdutil.ExitCode(err)
	}

	for _, w := range runutil.ValidateLimits(opts.Config.Limits.MaxSequenceLength, opts.Config.Limits.MaxCells) {
		cmdutil.Warnf(stderr, opts.Quiet, "%s", w)
	}
	threads := runutil.EffectiveThreads(opts.Threads, len(opts.Traces))

	batch := len(opts.Traces) > 1
	scoring := &api.ScoringV1{
		Match:     opts.Config.Scoring.Match,
		Mismatch:  opts.Config.Scoring.Mismatch,
		GapOpen:   opts.Config.Scoring.GapOpen,
		GapExtend: opts.Config.Scoring.GapExtend,
	}

	var (
		recs     []api.AlignmentV1
		firstErr error
	)
	err = runner.ForEachTrace(parent, opts.Reference, opts.Traces, threads, func(it pipeline.Item) error {
		if it.Err != nil {
			cmdutil.Errorf(stderr, "%v", it.Err)
			if firstErr == nil {
				firstErr = it.Err
			}
			recs = append(recs, api.AlignmentV1{TraceFile: it.TracePath, Error: it.Err.Error()})
			return nil
		}
		out := it.Outcome
		if f := ambiguousShare(out); f > ambiguousWarnFraction {
			cmdutil.Warnf(stderr, opts.Quiet, "%s: %.0f%% of base calls are ambiguous", it.TracePath, 100*f)
		}
		if opts.SaveDir != "" {
			name := opts.Config.Report.ArtifactName
			if batch {
				name = batchArtifactName(it.Index, out.Trace.ID, name)
			}
			if _, err := pipeline.SaveArtifact(opts.SaveDir, name, out.Report); err != nil {
				return &saveError{err}
			}
		}
		rec := toV1(out, it.TracePath)
		rec.Scoring = scoring
		recs = append(recs, rec)
		return nil
	})
	if err != nil {
		var se *saveError
		if errors.As(err, &se) {
			cmdutil.Errorf(stderr, "save report: %v", se.err)
			return cmdutil.ExitOutput
		}
		if !errors.Is(err, context.Canceled) {
			cmdutil.Errorf(stderr, "%v", err)
		}
		return cmdutil.ExitCode(err)
	}

	wopt := writers.Options{Header: batch && !opts.NoHeader}
	if err := writers.DropBrokenPipe(writers.Write(opts.Output, outw, recs, wopt)); err != nil {
		cmdutil.Errorf(stderr, "%v", err)
		return cmdutil.ExitOutput
	}
	code := cmdutil.ExitCode(firstErr)
	return flushCode(outw, stderr, code)
}

// Run is RunContext without cancellation.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

type saveError struct{ err error }

func (e *saveError) Error() string { return e.err.Error() }
func (e *saveError) Unwrap() error { return e.err }

// flushCode flushes w and returns code, or the output exit code if the
// flush failed for a reason other than a closed pipe.
func flushCode(w *bufio.Writer, stderr io.Writer, code int) int {
	if err := writers.DropBrokenPipe(w.Flush()); err != nil {
		cmdutil.Errorf(stderr, "%v", err)
		return cmdutil.ExitOutput
	}
	return code
}

func toV1(out *pipeline.Outcome, path string) api.AlignmentV1 {
	s := out.Summary
	return api.AlignmentV1{
		ReferenceID:      out.Reference.ID,
		TraceID:          out.Trace.ID,
		TraceFile:        path,
		Score:            out.Alignment.Score,
		AlignedReference: out.Alignment.Reference,
		AlignedQuery:     out.Alignment.Query,
		Summary: api.SummaryV1{
			Columns: s.Columns, Identical: s.Identical, Matches: s.Matches,
			Mismatches: s.Mismatches, RefGaps: s.RefGaps, QueryGaps: s.QueryGaps,
			Identity: s.Identity,
		},
		Report: out.Report,
		Cigar:  out.Cigar,
	}
}

// batchArtifactName prefixes name with the 1-based input position and the
// trace ID. The position keeps traces that share an ID apart.
func batchArtifactName(index int, id, name string) string {
	id = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ':' {
			return '_'
		}
		return r
	}, id)
	return fmt.Sprintf("%03d_%s_%s", index+1, id, name)
}

func ambiguousShare(out *pipeline.Outcome) float64 {
	if len(out.Trace.Seq) == 0 {
		return 0
	}
	return float64(out.Ambiguous) / float64(len(out.Trace.Seq))
}

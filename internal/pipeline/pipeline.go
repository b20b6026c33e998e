// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"ab1align/internal/align"
	"ab1align/internal/config"
	"ab1align/internal/ingest"
	"ab1align/internal/iupac"
	"ab1align/internal/report"
)

const scoreTolerance = 1e-6

// Request names the two inputs of one run.
type Request struct {
	ReferencePath string
	TracePath     string
}

// Outcome is everything one run produced.
type Outcome struct {
	Reference ingest.Record
	Trace     ingest.Record
	Alignment align.Result
	Summary   report.Summary
	Ambiguous int // ambiguity codes among the trace's base calls
	Cigar     string
	Report    string
}

// Runner composes ingestion, alignment and formatting.
// A Runner is read-only after construction; concurrent Run calls are safe.
type Runner struct {
	Aligner   *align.Aligner
	Resolver  *iupac.Resolver
	Report    report.Options
	MaxLength int // per input sequence; 0 = unlimited
}

// NewRunner builds a Runner from conf using the standard IUPAC table.
func NewRunner(conf config.Config) (*Runner, error) {
	return NewRunnerWithTable(conf, iupac.Default())
}

// NewRunnerWithTable is NewRunner with an explicit ambiguity table.
func NewRunnerWithTable(conf config.Config, table iupac.Table) (*Runner, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	res, err := iupac.NewResolver(table)
	if err != nil {
		return nil, err
	}
	a := align.New(conf.Scoring, res)
	a.MaxCells = conf.Limits.MaxCells

	ropt := report.DefaultOptions
	ropt.Width = conf.Report.Width
	if conf.Report.Labels {
		ropt.Labels = report.ClassicLabels
	}
	return &Runner{Aligner: a, Resolver: res, Report: ropt, MaxLength: conf.Limits.MaxSequenceLength}, nil
}

// Run reads both inputs and aligns the trace against the reference.
func (r *Runner) Run(ctx context.Context, req Request) (*Outcome, error) {
	ref, err := ingest.ReadReference(req.ReferencePath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	trace, err := ingest.ReadTrace(req.TracePath)
	if err != nil {
		return nil, err
	}
	if err := r.checkLength(req.ReferencePath, ref); err != nil {
		return nil, err
	}
	if err := r.checkLength(req.TracePath, trace); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.Align(ref, trace)
}

// Align runs the alignment and formatting stages on already-read records.
func (r *Runner) Align(ref, trace ingest.Record) (*Outcome, error) {
	res, err := r.Aligner.Align(ref.Seq, trace.Seq)
	if err != nil {
		return nil, err
	}
	if err := verifyScore(r.Aligner, res); err != nil {
		return nil, &align.AlignmentComputationError{
			RefLen: len(ref.Seq), QueryLen: len(trace.Seq), Reason: err.Error(),
		}
	}
	text, err := report.FormatWithOptions(res.Reference, res.Query, r.Report)
	if err != nil {
		return nil, &align.AlignmentComputationError{
			RefLen: len(ref.Seq), QueryLen: len(trace.Seq), Reason: err.Error(),
		}
	}
	return &Outcome{
		Reference: ref,
		Trace:     trace,
		Alignment: res,
		Summary:   report.Summarize(res.Reference, res.Query, r.Aligner.Matcher, r.Aligner.GapChar),
		Ambiguous: r.countAmbiguous(trace.Seq),
		Cigar:     report.Cigar(res.Reference, res.Query, r.Aligner.GapChar).String(),
		Report:    text,
	}, nil
}

// verifyScore rescores the returned alignment independently of the DP
// matrices; the two must agree.
func verifyScore(a *align.Aligner, res align.Result) error {
	gap := a.GapChar
	if gap == 0 {
		gap = align.Gap
	}
	got, err := align.Rescore(a.Policy, a.Matcher, gap, res.Reference, res.Query)
	if err != nil {
		return err
	}
	if math.Abs(got-res.Score) > scoreTolerance*(1+math.Abs(res.Score)) {
		return fmt.Errorf("traceback scores %g, matrix reported %g", got, res.Score)
	}
	return nil
}

func (r *Runner) countAmbiguous(seq []byte) int {
	if r.Resolver == nil {
		return 0
	}
	n := 0
	for _, c := range seq {
		if r.Resolver.Ambiguous(c) {
			n++
		}
	}
	return n
}

func (r *Runner) checkLength(path string, rec ingest.Record) error {
	if r.MaxLength > 0 && len(rec.Seq) > r.MaxLength {
		return &ingest.InputIngestionError{
			Path: path,
			Err:  fmt.Errorf("%w: %d > %d", ingest.ErrSequenceTooLong, len(rec.Seq), r.MaxLength),
		}
	}
	return nil
}

// SaveArtifact writes the report text to dir/name and returns the path.
func SaveArtifact(dir, name, text string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

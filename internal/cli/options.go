// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"ab1align/internal/cliutil"
	"ab1align/internal/config"
	"ab1align/internal/writers"
)

// Options holds all ab1align flags and arguments.
type Options struct {
	// Input
	Reference string
	Traces    []string

	// Scoring, report and limits; defaults come from config.Default().
	Config     config.Config
	ConfigFile string
	Set        map[string]bool // canonical names of flags given explicitly

	// Output
	Output      string // text | json | jsonl
	NoHeader    bool
	SaveDir     string
	WriteConfig bool

	// Performance
	Threads int

	// Misc
	Quiet    bool
	Version  bool
	Examples bool
}

// aliases maps short flags to their canonical long names.
var aliases = map[string]string{
	"r": "reference", "i": "trace", "o": "output",
	"t": "threads", "c": "config", "q": "quiet", "v": "version",
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }

// NewFlagSet returns a clean FlagSet with ContinueOnError.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {}
	return fs
}

// registerCore wires the scoring/report/limit flags shared by both tools.
func registerCore(fs *flag.FlagSet, c *config.Config, configFile *string) {
	fs.Float64Var(&c.Scoring.Match, "match", c.Scoring.Match, "score for matching bases (IUPAC-aware)")
	fs.Float64Var(&c.Scoring.Mismatch, "mismatch", c.Scoring.Mismatch, "score for mismatching bases")
	fs.Float64Var(&c.Scoring.GapOpen, "gap-open", c.Scoring.GapOpen, "score for the first column of a gap")
	fs.Float64Var(&c.Scoring.GapExtend, "gap-extend", c.Scoring.GapExtend, "score for each further gap column")

	fs.IntVar(&c.Report.Width, "width", c.Report.Width, "report columns per block")
	fs.BoolVar(&c.Report.Labels, "labels", c.Report.Labels, "prefix report lines with Ref/Ab1/Conservation labels")
	fs.StringVar(&c.Report.ArtifactName, "artifact-name", c.Report.ArtifactName, "file name of the saved report")

	fs.IntVar(&c.Limits.MaxSequenceLength, "max-length", c.Limits.MaxSequenceLength, "reject sequences longer than N (0=unlimited)")
	fs.IntVar(&c.Limits.MaxCells, "max-cells", c.Limits.MaxCells, "reject alignments needing more DP cells (0=unlimited)")

	fs.StringVar(configFile, "config", "", "TOML configuration file")
	fs.StringVar(configFile, "c", "", "alias of --config")
}

// ParseArgs registers and parses all flags. Positional arguments are trace
// files (globs are expanded) and may appear anywhere on the command line.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	opt := Options{Config: config.Default()}
	var help bool

	// Input
	fs.StringVar(&opt.Reference, "reference", "", "reference FASTA (or '-') [*]")
	fs.StringVar(&opt.Reference, "r", "", "alias of --reference")
	var traces stringSlice
	fs.Var(&traces, "trace", "trace file: .ab1 or FASTA (repeatable) [*]")
	fs.Var(&traces, "i", "alias of --trace")

	registerCore(fs, &opt.Config, &opt.ConfigFile)

	// Output
	fs.StringVar(&opt.Output, "output", "text", "output: text | json | jsonl")
	fs.StringVar(&opt.Output, "o", "text", "alias of --output")
	fs.BoolVar(&opt.NoHeader, "no-header", false, "suppress per-trace header lines")
	fs.StringVar(&opt.SaveDir, "save", "", "also save each text report under DIR")
	fs.BoolVar(&opt.WriteConfig, "write-config", false, "print the effective configuration as TOML and exit")

	// Performance
	fs.IntVar(&opt.Threads, "threads", 0, "worker threads for multiple traces (0=all CPUs)")
	fs.IntVar(&opt.Threads, "t", 0, "alias of --threads")

	// Misc
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress warnings")
	fs.BoolVar(&opt.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit")
	fs.BoolVar(&opt.Version, "v", false, "alias of --version")
	fs.BoolVar(&opt.Examples, "examples", false, "print quickstart examples and exit")
	fs.BoolVar(&help, "h", false, "show this help message")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Examples {
		return opt, ErrPrintedAndExitOK
	}
	opt.Set = cliutil.SetFlags(fs, aliases)
	if opt.Version || opt.WriteConfig {
		return opt, nil
	}

	exp, err := cliutil.ExpandPositionals(posArgs)
	if err != nil {
		return opt, err
	}
	opt.Traces = append([]string(traces), exp...)
	return opt, Validate(&opt)
}

// Validate applies CLI invariants.
func Validate(o *Options) error {
	if o.Reference == "" {
		return errors.New("--reference is required")
	}
	if len(o.Traces) == 0 {
		return errors.New("at least one trace file is required")
	}
	stdin := 0
	if o.Reference == "-" {
		stdin++
	}
	for _, t := range o.Traces {
		if t == "-" {
			stdin++
		}
	}
	if stdin > 1 {
		return errors.New("only one input may be read from stdin ('-')")
	}
	if o.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	if o.Config.Report.Width < 1 {
		return errors.New("--width must be ≥ 1")
	}
	if o.Config.Limits.MaxSequenceLength < 0 || o.Config.Limits.MaxCells < 0 {
		return errors.New("--max-length and --max-cells must be ≥ 0")
	}
	if _, ok := writers.Writers[o.Output]; !ok {
		return fmt.Errorf("invalid --output %q (want %s)", o.Output, strings.Join(writers.Formats(), " | "))
	}
	return nil
}

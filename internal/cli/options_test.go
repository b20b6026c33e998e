// internal/cli/options_test.go
package cli

import (
	"errors"
	"flag"
	"testing"

	"ab1align/internal/align"
)

func newFS() *flag.FlagSet { return NewFlagSet("test") }

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	opts, err := ParseArgs(newFS(), args)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	return opts
}

func TestDefaults(t *testing.T) {
	o := mustParse(t, "-r", "ref.fa", "read.ab1")
	if o.Reference != "ref.fa" || len(o.Traces) != 1 || o.Traces[0] != "read.ab1" {
		t.Fatalf("inputs: %+v", o)
	}
	if o.Config.Scoring != align.DefaultPolicy {
		t.Fatalf("scoring defaults changed: %+v", o.Config.Scoring)
	}
	if o.Output != "text" || o.Config.Report.Width != 60 || len(o.Set) != 1 || !o.Set["reference"] {
		t.Fatalf("unexpected defaults %+v", o)
	}
}

func TestTracesFromFlagsAndPositionals(t *testing.T) {
	o := mustParse(t, "a.ab1", "--reference", "ref.fa", "-i", "b.ab1", "--trace", "c.fa", "d.ab1")
	want := []string{"b.ab1", "c.fa", "a.ab1", "d.ab1"}
	if len(o.Traces) != len(want) {
		t.Fatalf("traces %v", o.Traces)
	}
	for i := range want {
		if o.Traces[i] != want[i] {
			t.Fatalf("traces %v, want %v", o.Traces, want)
		}
	}
}

func TestScoringFlags(t *testing.T) {
	o := mustParse(t, "-r", "ref.fa", "x.ab1",
		"--match", "1", "--mismatch", "-2", "--gap-open", "-5", "--gap-extend", "-1", "--labels", "-o", "json")
	want := align.Policy{Match: 1, Mismatch: -2, GapOpen: -5, GapExtend: -1}
	if o.Config.Scoring != want || !o.Config.Report.Labels || o.Output != "json" {
		t.Fatalf("got %+v", o)
	}
	for _, name := range []string{"match", "mismatch", "gap-open", "gap-extend", "labels", "output"} {
		if !o.Set[name] {
			t.Errorf("flag %s not recorded as set: %v", name, o.Set)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string][]string{
		"no reference": {"read.ab1"},
		"no trace":     {"-r", "ref.fa"},
		"two stdin":    {"-r", "-", "-"},
		"bad output":   {"-r", "ref.fa", "x.ab1", "-o", "xml"},
		"bad width":    {"-r", "ref.fa", "x.ab1", "--width", "0"},
		"bad threads":  {"-r", "ref.fa", "x.ab1", "-t", "-1"},
		"bad float":    {"-r", "ref.fa", "x.ab1", "--match", "two"},
	}
	for name, args := range tests {
		if _, err := ParseArgs(newFS(), args); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestHelpAndVersion(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"-h"}); !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("want ErrHelp, got %v", err)
	}
	o, err := ParseArgs(newFS(), []string{"--version"})
	if err != nil || !o.Version {
		t.Fatalf("version: %+v %v", o, err)
	}
	if _, err := ParseArgs(newFS(), []string{"--examples"}); !errors.Is(err, ErrPrintedAndExitOK) {
		t.Fatalf("want ErrPrintedAndExitOK, got %v", err)
	}
}

func TestServeArgs(t *testing.T) {
	o, err := ParseServeArgs(NewFlagSet("serve"), []string{"--addr", ":9000", "--results-dir", "out", "--gap-open", "-1"})
	if err != nil {
		t.Fatal(err)
	}
	if o.Config.Server.Addr != ":9000" || o.Config.Server.ResultsDir != "out" || o.Config.Scoring.GapOpen != -1 {
		t.Fatalf("got %+v", o.Config)
	}
	if !o.Set["addr"] || !o.Set["gap-open"] || o.Set["upload-dir"] {
		t.Fatalf("set = %v", o.Set)
	}
	if _, err := ParseServeArgs(NewFlagSet("serve"), []string{"stray"}); err == nil {
		t.Fatal("expected error for positional argument")
	}
}

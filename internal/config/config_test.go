package config

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"ab1align/internal/align"
)

func TestLoadOverridesDefaults(t *testing.T) {
	src := `
[scoring]
match = 1.0
gap_open = -2.5

[report]
labels = true

[limits]
max_sequence_length = 1000
`
	conf, unknown, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(unknown) != 0 {
		t.Fatalf("unexpected unknown keys %v", unknown)
	}
	if conf.Scoring.Match != 1 || conf.Scoring.GapOpen != -2.5 {
		t.Fatalf("scoring not decoded: %+v", conf.Scoring)
	}
	if conf.Scoring.Mismatch != align.DefaultPolicy.Mismatch || conf.Scoring.GapExtend != align.DefaultPolicy.GapExtend {
		t.Fatalf("unset scoring fields lost their defaults: %+v", conf.Scoring)
	}
	if !conf.Report.Labels || conf.Report.Width != 60 || conf.Limits.MaxSequenceLength != 1000 {
		t.Fatalf("unexpected config %+v", conf)
	}
}

func TestLoadReportsUnknownKeys(t *testing.T) {
	_, unknown, err := Load(strings.NewReader("[scoring]\nmatch = 3.0\nbonus = 1.0\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(unknown) != 1 || unknown[0] != "scoring.bonus" {
		t.Fatalf("unknown = %v", unknown)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	for name, src := range map[string]string{
		"syntax":   "[scoring\nmatch = 1",
		"type":     "[scoring]\nmatch = \"two\"\n",
		"width":    "[report]\nwidth = 0\n",
		"nan":      "[scoring]\nmismatch = nan\n",
		"negative": "[limits]\nmax_cells = -1\n",
	} {
		if _, _, err := Load(strings.NewReader(src)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	_, _, err := Load(strings.NewReader("[scoring]\ngap_extend = inf\n"))
	var pe *align.InvalidScoringPolicyError
	if !errors.As(err, &pe) {
		t.Fatalf("want InvalidScoringPolicyError, got %v", err)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	want := Default()
	want.Scoring.Match = 3
	want.Server.Addr = ":8080"
	var buf bytes.Buffer
	if err := want.Write(&buf); err != nil {
		t.Fatal(err)
	}
	got, _, err := Load(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("round trip changed config:\n got %+v\nwant %+v", got, want)
	}
}

func TestFlagMerge(t *testing.T) {
	flags := Default()
	flags.Scoring.Match = 9
	flags.Report.Width = 10

	file := Default()
	file.Scoring.Match = 4
	file.Scoring.Mismatch = -3
	file.Report.Width = 80

	flags.FlagMerge(file, map[string]bool{"match": true})
	if flags.Scoring.Match != 9 {
		t.Fatalf("explicit flag overwritten: %v", flags.Scoring.Match)
	}
	if flags.Scoring.Mismatch != -3 || flags.Report.Width != 80 {
		t.Fatalf("file values not merged: %+v", flags)
	}
}

func TestValidateServer(t *testing.T) {
	if err := Default().ValidateServer(); err != nil {
		t.Fatalf("defaults rejected: %v", err)
	}
	for name, mutate := range map[string]func(*Config){
		"zero upload cap": func(c *Config) { c.Server.MaxUploadBytes = 0 },
		"empty addr":      func(c *Config) { c.Server.Addr = "" },
		"empty results":   func(c *Config) { c.Server.ResultsDir = "" },
		"zero width":      func(c *Config) { c.Report.Width = 0 },
	} {
		c := Default()
		mutate(&c)
		if err := c.ValidateServer(); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

package cliutil

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestSplitFlagsAndPositionals(t *testing.T) {
	fs := flag.NewFlagSet("x", flag.ContinueOnError)
	var b bool
	var s string
	fs.BoolVar(&b, "bool", false, "")
	fs.StringVar(&s, "reference", "", "")
	flagArgs, posArgs := SplitFlagsAndPositionals(fs,
		[]string{"a.ab1", "--reference", "ref.fa", "--bool", "-", "--width=10", "--", "--odd.ab1"})
	wantFlags := []string{"--reference", "ref.fa", "--bool", "--width=10"}
	wantPos := []string{"a.ab1", "-", "--odd.ab1"}
	if len(flagArgs) != len(wantFlags) || len(posArgs) != len(wantPos) {
		t.Fatalf("unexpected split: %v / %v", flagArgs, posArgs)
	}
	for i := range wantFlags {
		if flagArgs[i] != wantFlags[i] {
			t.Fatalf("flags: %v", flagArgs)
		}
	}
	for i := range wantPos {
		if posArgs[i] != wantPos[i] {
			t.Fatalf("positionals: %v", posArgs)
		}
	}
}

func TestSetFlagsCanonicalizesAliases(t *testing.T) {
	fs := flag.NewFlagSet("x", flag.ContinueOnError)
	var o string
	var m float64
	fs.StringVar(&o, "output", "text", "")
	fs.StringVar(&o, "o", "text", "")
	fs.Float64Var(&m, "match", 2, "")
	if err := fs.Parse([]string{"-o", "json"}); err != nil {
		t.Fatal(err)
	}
	set := SetFlags(fs, map[string]string{"o": "output"})
	if !set["output"] || set["o"] || set["match"] {
		t.Fatalf("set = %v", set)
	}
}

func TestExpandPositionals(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a.ab1", "b.ab1", "c.fa"} {
		_ = os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644)
	}
	got, err := ExpandPositionals([]string{filepath.Join(dir, "*.ab1"), "-"})
	if err != nil || len(got) != 3 || got[2] != "-" {
		t.Fatalf("expand: err=%v got=%v", err, got)
	}
	if _, err := ExpandPositionals([]string{filepath.Join(dir, "*.scf")}); err == nil {
		t.Fatal("expected error for glob without matches")
	}
}

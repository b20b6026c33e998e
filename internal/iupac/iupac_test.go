// internal/iupac/iupac_test.go
package iupac

import (
	"strings"
	"sync"
	"testing"
)

func TestMatches(t *testing.T) {
	r := MustResolver(Default())
	tests := []struct {
		a, b byte
		want bool
	}{
		{'A', 'A', true},
		{'R', 'G', true}, // R = A/G
		{'G', 'R', true}, // either side
		{'R', 'C', false},
		{'N', 'T', true},  // N = any
		{'B', 'A', false}, // B = C/G/T (not A)
		{'C', 'B', true},
		{'R', 'N', false}, // letter vs letter never expands
		{'N', 'R', false},
		{'R', 'R', true},
		{'-', '-', true},
		{'-', 'A', false},
		{'X', 'A', false}, // unknown symbol
		{'n', 'A', false}, // table is case-sensitive
	}
	for _, tt := range tests {
		if got := r.Matches(tt.a, tt.b); got != tt.want {
			t.Errorf("Matches(%q,%q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMatchesExpansionRule(t *testing.T) {
	tab := Default()
	r := MustResolver(tab)
	for code, set := range tab {
		for _, b := range []byte("ACGT") {
			want := strings.IndexByte(set, b) >= 0
			if got := r.Matches(code, b); got != want {
				t.Errorf("Matches(%q,%q) = %v, want %v", code, b, got, want)
			}
			if got := r.Matches(b, code); got != want {
				t.Errorf("Matches(%q,%q) = %v, want %v", b, code, got, want)
			}
		}
	}
}

func TestMatchesReflexive(t *testing.T) {
	r := MustResolver(Default())
	for _, c := range []byte("ACGTRYSWKMBDHVN-") {
		if !r.Matches(c, c) {
			t.Errorf("Matches(%q,%q) = false", c, c)
		}
	}
}

func TestNewResolverRejectsBadTables(t *testing.T) {
	for name, tab := range map[string]Table{
		"empty":    {'R': ""},
		"non-base": {'R': "AX"},
		"nested":   {'Z': "RN"},
	} {
		if _, err := NewResolver(tab); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestDefaultIsACopy(t *testing.T) {
	a := Default()
	a['R'] = "C"
	if Default()['R'] != "AG" {
		t.Fatalf("Default() returned shared table")
	}
}

func TestResolverConcurrentReads(t *testing.T) {
	r := MustResolver(Default())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if !r.Matches('N', 'G') || r.Matches('R', 'T') {
					t.Error("unexpected result under concurrency")
					return
				}
			}
		}()
	}
	wg.Wait()
}

package apat

import "testing"

func TestAlignExactWindow(t *testing.T) {
	p := mustCompile(t, "ACGT", 0, false, PlainAlphabet)
	seq := NewSequence("ACGT", false)

	hits, err := p.Align(seq, 0, seq.totalLen(), 0)
	if err != nil {
		t.Fatalf("Align() error = %v", err)
	}
	found := false
	for _, h := range hits {
		if h.Pos == 4 && h.Err == 0 {
			found = true
		}
	}
	if !found {
		t.Errorf("hits = %v, want an exact hit ending at 4", hits)
	}
}

func TestAlignRefinesInsertion(t *testing.T) {
	p := mustCompile(t, "ACGT", 0, false, PlainAlphabet)
	seq := NewSequence("AACGT", false)

	hits, err := p.Align(seq, 0, seq.totalLen(), 1)
	if err != nil {
		t.Fatalf("Align() error = %v", err)
	}
	found := false
	for _, h := range hits {
		if h.Pos == 5 && h.Err == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("hits = %v, want a 1-error hit ending at 5", hits)
	}
}

func TestAlignRejectsOutOfRangeWindow(t *testing.T) {
	p := mustCompile(t, "ACGT", 0, false, PlainAlphabet)
	seq := NewSequence("ACGT", false)
	if _, err := p.Align(seq, 0, 100, 0); err == nil {
		t.Errorf("Align() with an out-of-range window succeeded, want error")
	}
}

func TestAlignRejectsUncompiledPattern(t *testing.T) {
	var p Pattern
	seq := NewSequence("ACGT", false)
	if _, err := p.Align(seq, 0, seq.totalLen(), 0); err == nil {
		t.Errorf("Align() on an uncompiled pattern succeeded, want error")
	}
}

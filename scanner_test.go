package apat

import "testing"

func mustCompile(t *testing.T, pat string, maxErr int, indel bool, enc Encoding) *Pattern {
	t.Helper()
	p, err := Compile(pat, maxErr, indel, enc)
	if err != nil {
		t.Fatalf("Compile(%q) error = %v", pat, err)
	}
	return p
}

func TestScanExactMatch(t *testing.T) {
	p := mustCompile(t, "ACGT", 0, false, PlainAlphabet)
	seq := NewSequence("TTACGTTT", false)

	hits, err := p.Scan(seq, 0, seq.totalLen())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("len(hits) = %d, want 1: %v", len(hits), hits)
	}
	if hits[0].Pos != 2 || hits[0].Err != 0 {
		t.Errorf("hits[0] = %+v, want {Pos:2 Err:0}", hits[0])
	}
}

func TestScanExactNoMatch(t *testing.T) {
	p := mustCompile(t, "ACGT", 0, false, PlainAlphabet)
	seq := NewSequence("TTTTTTTT", false)

	hits, err := p.Scan(seq, 0, seq.totalLen())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("len(hits) = %d, want 0: %v", len(hits), hits)
	}
}

func TestScanIUPACAmbiguity(t *testing.T) {
	p := mustCompile(t, "ACNGT", 0, false, IUPACDna)
	seq := NewSequence("ACTGT", false)

	hits, err := p.Scan(seq, 0, seq.totalLen())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(hits) != 1 || hits[0].Pos != 0 || hits[0].Err != 0 {
		t.Fatalf("hits = %v, want a single exact hit at 0", hits)
	}
}

func TestScanHammingOneSubstitution(t *testing.T) {
	p := mustCompile(t, "ACGT", 1, false, PlainAlphabet)
	seq := NewSequence("AAGT", false)

	hits, err := p.Scan(seq, 0, seq.totalLen())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("len(hits) = %d, want 1: %v", len(hits), hits)
	}
	if hits[0].Pos != 0 || hits[0].Err != 1 {
		t.Errorf("hits[0] = %+v, want {Pos:0 Err:1}", hits[0])
	}
}

func TestScanHammingRejectsIndel(t *testing.T) {
	p := mustCompile(t, "ACGT", 1, false, PlainAlphabet)
	seq := NewSequence("ACAGT", false) // one base inserted inside ACGT, not a substitution

	hits, _ := p.Scan(seq, 0, seq.totalLen())
	for _, h := range hits {
		if h.Err == 0 {
			t.Errorf("Hamming scan unexpectedly found an exact hit in %v", hits)
		}
	}
}

func TestScanObligatoryPositionRejectsError(t *testing.T) {
	p := mustCompile(t, "A#CGT", 2, false, PlainAlphabet)
	seq := NewSequence("TCGT", false) // first (obligatory) base wrong

	hits, err := p.Scan(seq, 0, seq.totalLen())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("hits = %v, want none: an obligatory position was mismatched", hits)
	}
}

func TestScanIndelOneInsertion(t *testing.T) {
	p := mustCompile(t, "ACGT", 1, true, PlainAlphabet)
	seq := NewSequence("AACGT", false)

	hits, err := p.Scan(seq, 0, seq.totalLen())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(hits) == 0 {
		t.Fatalf("hits = %v, want at least one indel hit", hits)
	}
	for _, h := range hits {
		if h.Err > 1 {
			t.Errorf("hit %+v exceeds the error budget", h)
		}
	}
}

func TestScanCircularWrap(t *testing.T) {
	// pattern straddles the seam of a circular sequence
	p := mustCompile(t, "GTAC", 0, false, PlainAlphabet)
	seq := NewSequence("ACGT", true) // rotate: ...GT|AC... wraps to GTAC at the seam

	hits, err := p.Scan(seq, 0, seq.totalLen())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	found := false
	for _, h := range hits {
		if h.Pos == 2 {
			found = true
		}
	}
	if !found {
		t.Errorf("hits = %v, want a hit at the circular seam (pos 2)", hits)
	}
}

func TestScanRejectsUncompiledPattern(t *testing.T) {
	var p Pattern
	seq := NewSequence("ACGT", false)
	if _, err := p.Scan(seq, 0, seq.totalLen()); err == nil {
		t.Errorf("Scan() on an uncompiled pattern succeeded, want error")
	}
}

func TestScanRejectsOutOfRangeBegin(t *testing.T) {
	p := mustCompile(t, "ACGT", 0, false, PlainAlphabet)
	seq := NewSequence("ACGT", false)
	if _, err := p.Scan(seq, 100, 1); err == nil {
		t.Errorf("Scan() with out-of-range begin succeeded, want error")
	}
}

package apat

import "strings"

// baseComplementTable is the IUPAC DNA/RNA complement table, transcribed
// from original_source/pkg/obiapat/obiapat.c's LXBioBaseComplement: every
// ambiguity code maps to the code standing for the complementary base
// set (R<->Y, M<->K, S<->S, W<->W, B<->V, D<->H, N<->N), case-preserving.
var baseComplementTable = map[byte]byte{
	'A': 'T', 'T': 'A', 'U': 'A', 'C': 'G', 'G': 'C',
	'R': 'Y', 'Y': 'R', 'S': 'S', 'W': 'W', 'K': 'M', 'M': 'K',
	'B': 'V', 'V': 'B', 'D': 'H', 'H': 'D', 'N': 'N',
}

func complementBase(c byte) byte {
	upper := c
	lower := c >= 'a' && c <= 'z'
	if lower {
		upper = c - 'a' + 'A'
	}
	comp, ok := baseComplementTable[upper]
	if !ok {
		return c
	}
	if lower {
		return comp - 'A' + 'a'
	}
	return comp
}

// ReverseComplementSequence reverses s and complements every IUPAC base
// in it, mirroring LXBioSeqComplement/reverseSequence in obiapat.c.
// Bytes outside the complement table (non-IUPAC letters, whitespace)
// pass through unchanged but still participate in the reversal.
func ReverseComplementSequence(s string) string {
	b := []byte(s)
	n := len(b)
	out := make([]byte, n)
	for i, c := range b {
		out[n-1-i] = complementBase(c)
	}
	return string(out)
}

// complementPositionText complements the literal base letters inside a
// single compiled position's textual form, leaving its structural
// characters ('[', ']', '!', '#') untouched.
func complementPositionText(sub string) string {
	b := []byte(sub)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = complementBase(c)
		}
	}
	return string(b)
}

// ReverseComplement derives the reverse-complement of p: the pattern
// that a Scan over ReverseComplementSequence(t) reports a hit for
// exactly where Scan over t reports a hit for p, at the mirrored
// offset. Unlike ecoComplementPattern in obiapat.c, which rewrites the
// pattern's characters in place, this reimplementation
// re-derives the position list from the pattern's textual form and
// recompiles it from scratch (spec.md §9's recommended design: simpler
// to get right, and the compiler already does the expensive work once).
func (p *Pattern) ReverseComplement() (*Pattern, error) {
	if !p.Ready() {
		return nil, newError(PatternNotReady, "pattern is not compiled")
	}

	positions, err := splitPositions(p.text)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(positions))
	for i, sub := range positions {
		out[len(positions)-1-i] = complementPositionText(sub)
	}

	return Compile(strings.Join(out, ""), p.MaxErr, p.HasIndel, p.Encoding)
}

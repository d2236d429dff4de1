package apat

// Sequence is an encoded input buffer ready for scanning: a length-n
// array of 5-bit alphabet ordinals (plus an optional wrap-around
// suffix for circular sequences) and the two hit stacks the scanner
// writes into.
type Sequence struct {
	data []byte // alphabet ordinals (letter - 'A', 0 for non-letters), length Len+CircularPad
	text []byte // original bytes, parallel to data, for Slice
	// Len is the length of the linear input, excluding any circular pad.
	Len int
	// Circular reports whether this sequence wraps (a seam-spanning
	// window is visited by the ordinary linear scan thanks to CircularPad).
	Circular bool
	// CircularPad is min(MaxPatternLen, Len) when Circular, else 0.
	CircularPad int

	HitPos *IntStack
	HitErr *IntStack
}

// NewSequence encodes raw text into a Sequence. Non-letter bytes
// collapse to ordinal 0 (alphabet symbol 'A'); since 'A' and
// non-letters both land on ordinal 0, a Pattern's S column for that
// ordinal determines whether either can match — see spec.md §9's open
// question, preserved here as documented behavior, not a bug.
func NewSequence(raw string, circular bool) *Sequence {
	n := len(raw)
	pad := 0
	if circular {
		pad = MaxPatternLen
		if n < pad {
			pad = n
		}
	}

	s := &Sequence{
		data:        make([]byte, n+pad),
		text:        make([]byte, n+pad),
		Len:         n,
		Circular:    circular,
		CircularPad: pad,
		HitPos:      NewIntStack(kMinStackSize),
		HitErr:      NewIntStack(kMinStackSize),
	}

	for i := 0; i < n; i++ {
		c := raw[i]
		s.text[i] = c
		b := c & 0x5F // force-upper
		if b >= 'A' && b <= 'Z' {
			s.data[i] = b - 'A'
		} else {
			s.data[i] = 0
		}
	}
	for i := 0; i < pad; i++ {
		s.data[n+i] = s.data[i]
		s.text[n+i] = s.text[i]
	}

	return s
}

// Reset clears both hit stacks without re-encoding, for reuse across
// multiple patterns scanned over the same sequence (spec.md §5: "a
// Sequence and its two stacks... must not be shared across concurrent
// scans; a per-thread Sequence object is the expected pattern").
func (s *Sequence) Reset() {
	s.HitPos.Empty()
	s.HitErr.Empty()
}

// totalLen is the full encoded length, including the circular pad.
func (s *Sequence) totalLen() int {
	return len(s.data)
}

// Slice returns the original input text in [begin, end), including
// any circular wrap bytes. This recovers the actual matched substring
// for a hit once its start position and length are known — spec.md's
// Non-goals forbid emitting full edit-operation strings, not this.
func (s *Sequence) Slice(begin, end int) string {
	if begin < 0 {
		begin = 0
	}
	if end > s.totalLen() {
		end = s.totalLen()
	}
	if begin >= end {
		return ""
	}
	return string(s.text[begin:end])
}

// UpperSequenceText force-uppercases the ASCII letters of s, mirroring
// obiapat.c's UpperSequence.
func UpperSequenceText(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

// LowerSequenceText force-lowercases the ASCII letters of s, mirroring
// obiapat.c's LowerSequence.
func LowerSequenceText(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c - 'A' + 'a'
		}
	}
	return string(b)
}

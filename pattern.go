package apat

import (
	"strings"

	"github.com/fatih/color"
)

// MaxPatternLen is the largest pattern length this engine supports
// (the automaton state fits in one 64-bit word).
const MaxPatternLen = 64

// MaxPatternErr is the largest number of errors a scan may tolerate.
const MaxPatternErr = 64

// Pattern is a compiled IUPAC-aware pattern: a per-alphabet-symbol
// bitmask table S ready for the bit-parallel scanner, plus the
// obligatory-position mask Omega.
type Pattern struct {
	text     string // uppercased textual form, for DebugString/ReverseComplement
	Len      int
	MaxErr   int
	HasIndel bool
	Encoding Encoding
	S        [alphaLen]uint64
	Omega    uint64
	ok       bool
}

// position holds one compiled pattern position before S/Omega are built.
type position struct {
	mask  uint32 // 26-bit ambiguity set, already negated if the position was "!..."
	oblig bool
}

// Compile parses pat under the mini-language of spec.md §3 and
// compiles it into a ready-to-scan Pattern. maxErr must be in
// [0, MaxPatternErr]; hasIndel selects the Levenshtein scan kernel.
func Compile(pat string, maxErr int, hasIndel bool, enc Encoding) (*Pattern, error) {
	text := strings.ToUpper(pat)

	if err := checkPatternSyntax(text); err != nil {
		return nil, err
	}

	positions, err := splitPositions(text)
	if err != nil {
		return nil, err
	}
	if len(positions) == 0 {
		return nil, newError(EmptyPattern, "pattern %q has no positions", pat)
	}
	if len(positions) > MaxPatternLen {
		return nil, newError(PatternTooLong, "pattern %q has %d positions, max is %d", pat, len(positions), MaxPatternLen)
	}
	if maxErr < 0 || maxErr > MaxPatternErr {
		return nil, newError(PatternSyntax, "maxErr %d out of range [0,%d]", maxErr, MaxPatternErr)
	}

	p := &Pattern{
		text:     text,
		Len:      len(positions),
		MaxErr:   maxErr,
		HasIndel: hasIndel,
		Encoding: enc,
	}
	encoded := encodePositions(enc, text, positions)
	createS(p, encoded)
	p.ok = true
	return p, nil
}

// Ready reports whether the pattern compiled successfully and may be
// passed to Scan.
func (p *Pattern) Ready() bool {
	return p != nil && p.ok
}

// Text returns the uppercased textual form the pattern was compiled from.
func (p *Pattern) Text() string {
	return p.text
}

// checkPatternSyntax implements pass 1 of spec.md §4.3 (CheckPattern
// in original_source/pkg/obiapat/apat_parse.c): a single-level
// bracket-depth walk rejecting every malformed construct.
func checkPatternSyntax(text string) error {
	if len(text) == 0 {
		return newError(EmptyPattern, "pattern is empty")
	}
	if text[0] == '#' {
		return newError(PatternSyntax, "pattern cannot start with '#'")
	}

	level := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '[':
			if level != 0 {
				return newError(PatternSyntax, "nested '[' at position %d", i)
			}
			if i+1 < len(text) && text[i+1] == ']' {
				return newError(PatternSyntax, "empty bracket at position %d", i)
			}
			level++
		case ']':
			level--
			if level != 0 {
				return newError(PatternSyntax, "unbalanced ']' at position %d", i)
			}
		case '!':
			if level != 0 {
				return newError(PatternSyntax, "'!' inside brackets at position %d", i)
			}
			if i+1 >= len(text) {
				return newError(PatternSyntax, "'!' at end of pattern")
			}
			if text[i+1] == ']' {
				return newError(PatternSyntax, "'!' immediately before ']' at position %d", i)
			}
		case '#':
			if level != 0 {
				return newError(PatternSyntax, "'#' inside brackets at position %d", i)
			}
			if i == 0 || text[i-1] == '[' {
				return newError(PatternSyntax, "'#' with no preceding position at position %d", i)
			}
		default:
			if c < 'A' || c > 'Z' {
				return newError(PatternSyntax, "illegal character %q at position %d", c, i)
			}
		}
	}
	if level != 0 {
		return newError(PatternSyntax, "unbalanced brackets")
	}
	return nil
}

// splitPositionEnd mirrors splitPattern in apat_parse.c: it returns
// the index of the last character belonging to the position starting
// at i (a bracket group or a bare letter), including a trailing '#'
// if present.
func splitPositionEnd(text string, i int) int {
	switch text[i] {
	case '[':
		j := i + 1
		for text[j] != ']' {
			j++
		}
		return skipOblig(text, j)
	case '!':
		return splitPositionEnd(text, i+1)
	default:
		return skipOblig(text, i)
	}
}

func skipOblig(text string, j int) int {
	if j+1 < len(text) && text[j+1] == '#' {
		return j + 1
	}
	return j
}

// splitPositions cuts text into position substrings (spec.md §4.3 pass 2).
func splitPositions(text string) ([]string, error) {
	var out []string
	i := 0
	for i < len(text) {
		end := splitPositionEnd(text, i)
		out = append(out, text[i:end+1])
		i = end + 1
	}
	return out, nil
}

// positionMask mirrors valPattern in apat_parse.c, computing the
// 26-bit ambiguity set for a position substring (without its
// trailing '#', which positionOblig handles separately).
func positionMask(enc Encoding, sub string, i int) uint32 {
	switch sub[i] {
	case '[':
		return positionMask(enc, sub, i+1)
	case '!':
		return ^positionMask(enc, sub, i+1) & patMask
	default:
		var val uint32
		j := i
		for j < len(sub) && sub[j] >= 'A' && sub[j] <= 'Z' {
			val |= ambiguityMask(enc, sub[j])
			j++
		}
		return val
	}
}

func positionOblig(sub string) bool {
	return len(sub) > 0 && sub[len(sub)-1] == '#'
}

// encodePositions returns a new slice holding each position's
// mask/oblig flag (spec.md §4.3 pass 3, first half).
func encodePositions(enc Encoding, text string, positions []string) []position {
	out := make([]position, len(positions))
	for i, sub := range positions {
		out[i] = position{
			mask:  positionMask(enc, sub, 0),
			oblig: positionOblig(sub),
		}
	}
	return out
}

// createS builds the S table and the obligatory mask Omega, matching
// CreateS in apat_search.c. Bit 0 of the state register corresponds
// to the *last* pattern position.
func createS(p *Pattern, positions []position) {
	for c := range p.S {
		p.S[c] = 0
	}
	var omega uint64
	bit := uint64(1)
	for i := len(positions) - 1; i >= 0; i-- {
		pos := positions[i]
		if pos.oblig {
			omega |= bit
		}
		for c := 0; c < alphaLen; c++ {
			if pos.mask&(1<<uint(c)) != 0 {
				p.S[c] |= bit
			}
		}
		bit <<= 1
	}
	p.Omega = omega
}

// DebugString renders the compiled pattern's per-position symbol sets
// and obligatory markers, bolding obligatory positions. It is a
// debugging aid only (like PrintDebugPattern in obiapat.c); nothing in
// the scanner depends on it.
func (p *Pattern) DebugString() string {
	if p == nil {
		return "<nil pattern>"
	}
	bold := color.New(color.Bold)
	var b strings.Builder
	b.WriteString(p.text)
	b.WriteString(" (")
	for i := 0; i < p.Len; i++ {
		bitIdx := p.Len - 1 - i
		oblig := p.Omega&(1<<uint(bitIdx)) != 0
		letters := symbolsAtBit(p, bitIdx)
		if oblig {
			bold.Fprint(&b, letters)
		} else {
			b.WriteString(letters)
		}
		if i != p.Len-1 {
			b.WriteByte(' ')
		}
	}
	b.WriteString(")")
	return b.String()
}

// symbolsAtBit returns the letters whose S column has bitIdx set,
// i.e. the concrete alphabet symbols that satisfy this pattern position.
func symbolsAtBit(p *Pattern, bitIdx int) string {
	var b strings.Builder
	mask := uint64(1) << uint(bitIdx)
	for c := 0; c < alphaLen; c++ {
		if p.S[c]&mask != 0 {
			b.WriteByte(byte('A' + c))
		}
	}
	return b.String()
}

package apat

// Align runs a banded Needleman-Wunsch of seq[begin:begin+length)
// (rows) against the full pattern (columns) with unit edit costs,
// refining the approximate start position a Levenshtein Scan hit
// reports into exact end offsets and corrected error counts, per
// spec.md §4.6 (NwsPatAlign in apat_search.c). Row i=0 and column j=0
// pay i and j edits respectively: the caller is expected to pass a
// window already localized around the hit, not the whole sequence, so
// no free start gap is granted.
//
// The original C signature takes no begin/length (it always DP's over
// the caller's whole Seq buffer) — spec.md §9 leaves choosing between
// that restriction and accepting an explicit window as an open
// question. This reimplementation accepts the window explicitly,
// since the caller already knows the hit's approximate position and a
// full-sequence DP would be wasteful and is not how any caller of the
// original actually used it.
//
// Every end offset i in [0, length] whose edit distance is <= maxErr
// is returned as Hit{Pos: begin+i}, scanned from i=length down to 0 (duplicates across
// overlapping windows are the caller's to filter, per spec.md §4.6).
func (p *Pattern) Align(seq *Sequence, begin, length int, maxErr int) ([]Hit, error) {
	if !p.Ready() {
		return nil, newError(PatternNotReady, "pattern is not compiled")
	}
	if begin < 0 || length < 0 || begin+length > seq.totalLen() {
		return nil, newError(RangeInvalid, "window [%d,%d) out of range for sequence length %d", begin, begin+length, seq.totalLen())
	}

	window := seq.data[begin : begin+length]
	m := p.Len
	high := uint64(1) << uint(m)

	prev := make([]int, length+1)
	cur := make([]int, length+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= m; j++ {
		amask := high >> uint(j)
		cur[0] = j
		for i := 1; i <= length; i++ {
			s := p.S[window[i-1]]

			sub := prev[i-1]
			if s&amask == 0 {
				sub++
			}

			del := prev[i] + 1
			ins := cur[i-1] + 1

			cur[i] = minInt(minInt(del, ins), sub)
		}
		prev, cur = cur, prev
	}

	var hits []Hit
	for i := length; i >= 0; i-- {
		if prev[i] <= maxErr {
			hits = append(hits, Hit{Pos: begin + i, Err: prev[i]})
		}
	}
	return hits, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

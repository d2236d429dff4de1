package apat

// Hit is a (start position, edit count) pair produced by a scan. With
// indels allowed, Pos may be approximate; refine it with Align.
type Hit struct {
	Pos int
	Err int
}

// Scan runs the bit-parallel automaton over seq[begin:begin+length)
// (clamped to the encoded sequence length, including any circular
// pad) and returns every hit in strictly increasing Pos order. It
// picks the exact kernel when MaxErr is 0, the Levenshtein kernel when
// HasIndel is set, and the Hamming (substitution-only) kernel
// otherwise, per spec.md §4.5's dispatch rule.
//
// seq's hit stacks are cleared at the start of the call; seq must not
// be shared with a concurrent Scan (spec.md §5).
func (p *Pattern) Scan(seq *Sequence, begin, length int) ([]Hit, error) {
	if !p.Ready() {
		return nil, newError(PatternNotReady, "pattern is not compiled")
	}
	n := seq.totalLen()
	if begin < 0 || begin >= n {
		return nil, newError(RangeInvalid, "begin %d out of range for sequence length %d", begin, n)
	}

	end := begin + length
	if end > n {
		end = n
	}

	seq.Reset()

	switch {
	case p.MaxErr == 0:
		scanExact(seq, p, begin, end)
	case p.HasIndel:
		scanIndel(seq, p, begin, end)
	default:
		scanSub(seq, p, begin, end)
	}

	return collectHits(seq), nil
}

func collectHits(seq *Sequence) []Hit {
	pos := seq.HitPos.Values()
	errs := seq.HitErr.Values()
	hits := make([]Hit, len(pos))
	for i := range pos {
		hits[i] = Hit{Pos: int(pos[i]), Err: int(errs[i])}
	}
	return hits
}

// scanExact is the exact (maxerr == 0) Baeza-Yates/Manber kernel,
// grounded on ManberNoErr in apat_search.c.
func scanExact(seq *Sequence, p *Pattern, begin, end int) {
	high := uint64(1) << uint(p.Len)
	r := high

	data := seq.data
	for pos := begin; pos < end; pos++ {
		r = (r >> 1) & p.S[data[pos]]
		if r&1 != 0 {
			seq.HitPos.Push(int32(pos - p.Len + 1))
			seq.HitErr.Push(0)
		}
		r |= high
	}
}

// scanSub is the substitution-only (Hamming) kernel, grounded on
// ManberSub in apat_search.c. r is laid out as the pairs
// (prev,curr) per error level, with r[0],r[1] a permanently-zero
// stand-in for level -1, exactly mirroring the original's index
// arithmetic (this reimplementation widens the rolling registers from
// the original's uint32_t to uint64_t to actually honor the m<=64
// contract spec.md §4.5/§9 state — see DESIGN.md).
func scanSub(seq *Sequence, p *Pattern, begin, end int) {
	emax := p.MaxErr
	r := make([]uint64, 2*(emax+1)+2)

	smask := uint64(1) << uint(p.Len)
	for e, pr := 0, 3; e <= emax; e, pr = e+1, pr+2 {
		r[pr] = smask
	}

	cmask := ^p.Omega

	data := seq.data
	for pos := begin; pos < end; pos++ {
		sindx := p.S[data[pos]]

		found := false
		for e, pr := 0, 0; e <= emax; e, pr = e+1, pr+2 {
			r[pr+2] = r[pr+3] | smask
			r[pr+3] = ((r[pr] >> 1) & cmask) | ((r[pr+2] >> 1) & sindx)

			if r[pr+3]&1 != 0 {
				if !found {
					seq.HitPos.Push(int32(pos - p.Len + 1))
					seq.HitErr.Push(int32(e))
					found = true
				}
			}
		}
	}
}

// scanIndel is the substitution+indel (Levenshtein) kernel, grounded
// on ManberIndel in apat_search.c. Each level's curr register is
// seeded with its e highest bits set (besides the sentinel), letting
// the first e pattern positions be consumed by insertions from the
// start of a match.
func scanIndel(seq *Sequence, p *Pattern, begin, end int) {
	emax := p.MaxErr
	r := make([]uint64, 2*(emax+1)+2)

	smask := uint64(1) << uint(p.Len)
	seed := smask
	for e, pr := 0, 3; e <= emax; e, pr = e+1, pr+2 {
		r[pr] = seed
		seed = (seed >> 1) | smask
	}

	cmask := ^p.Omega

	data := seq.data
	for pos := begin; pos < end; pos++ {
		sindx := p.S[data[pos]]

		found := false
		for e, pr := 0, 0; e <= emax; e, pr = e+1, pr+2 {
			r[pr+2] = r[pr+3] | smask
			r[pr+3] = ((r[pr] | (r[pr]>>1) | (r[pr+1]>>1)) & cmask) | ((r[pr+2] >> 1) & sindx)

			if r[pr+3]&1 != 0 {
				if !found {
					seq.HitPos.Push(int32(pos - p.Len + 1))
					seq.HitErr.Push(int32(e))
					found = true
				}
			}
		}
	}
}

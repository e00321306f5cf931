package bpe

// bufferSweep is the reference/oracle encoder (spec.md §4.2.1). It
// allocates a working buffer, scans all adjacent pairs to find the single
// globally minimum-rank pair, merges every non-overlapping instance of
// that pair left-to-right, and repeats until no adjacent pair has an
// entry in the pair-merge table. O(n*m) where m is the number of merge
// rounds.
//
// Grounded on other_examples' euforicio-harmony-go bytePairMerge (full
// buffer rescan per round over a []part{start, rank} slice) and the
// teacher's internal/bpe.Processor fast-path-first structure.
type bufferSweep struct{}

func (bufferSweep) Append(v Vocab, dst []TokenID, span []byte) []TokenID {
	if id, ok := v.Lookup(span); ok {
		return append(dst, id)
	}
	work := initialTokens(v, make([]TokenID, 0, len(span)), span)
	work = sweepToFixpoint(v, work)
	return append(dst, work...)
}

// sweepToFixpoint repeatedly merges the single lowest-rank adjacent pair
// (all non-overlapping occurrences per round) until none remain.
func sweepToFixpoint(v Vocab, tokens []TokenID) []TokenID {
	for {
		bestRank := ^uint32(0)
		var bestA, bestB TokenID
		found := false
		for i := 0; i+1 < len(tokens); i++ {
			_, rank, ok := v.Merge(tokens[i], tokens[i+1])
			if !ok {
				continue
			}
			if rank < bestRank {
				bestRank = rank
				bestA, bestB = tokens[i], tokens[i+1]
				found = true
			}
		}
		if !found {
			return tokens
		}

		out := tokens[:0:0]
		i := 0
		for i < len(tokens) {
			if i+1 < len(tokens) && tokens[i] == bestA && tokens[i+1] == bestB {
				merged, _, _ := v.Merge(bestA, bestB)
				out = append(out, merged)
				i += 2
				continue
			}
			out = append(out, tokens[i])
			i++
		}
		tokens = out
	}
}

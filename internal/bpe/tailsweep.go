package bpe

// tailSweep implements the same algorithm as bufferSweep but reuses the
// tail of the destination buffer as working space instead of allocating a
// fresh one, per spec.md §4.2.2. Same asymptotics as BufferSweep, smaller
// constant factor since each merge round compacts in place.
type tailSweep struct{}

func (tailSweep) Append(v Vocab, dst []TokenID, span []byte) []TokenID {
	if id, ok := v.Lookup(span); ok {
		return append(dst, id)
	}
	start := len(dst)
	dst = initialTokens(v, dst, span)
	work := dst[start:]
	n := sweepInPlace(v, work)
	return dst[:start+n]
}

// sweepInPlace merges the global minimum-rank adjacent pair, compacting
// work in place, until no merge remains. Returns the new length. Merge
// results are never longer than their inputs, so the compaction never
// reads past what it has already consumed.
func sweepInPlace(v Vocab, work []TokenID) int {
	n := len(work)
	for {
		bestRank := ^uint32(0)
		var bestA, bestB TokenID
		found := false
		for i := 0; i+1 < n; i++ {
			_, rank, ok := v.Merge(work[i], work[i+1])
			if !ok {
				continue
			}
			if rank < bestRank {
				bestRank = rank
				bestA, bestB = work[i], work[i+1]
				found = true
			}
		}
		if !found {
			return n
		}

		w := 0
		i := 0
		for i < n {
			if i+1 < n && work[i] == bestA && work[i+1] == bestB {
				merged, _, _ := v.Merge(bestA, bestB)
				work[w] = merged
				w++
				i += 2
				continue
			}
			work[w] = work[i]
			w++
			i++
		}
		n = w
	}
}

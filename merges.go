package tiktoken

import "sort"

// DeriveMerges reconstructs the pair-merge table from a set of vocabulary
// entries alone, for callers whose base64-token file (spec.md §6.1) is a
// raw tiktoken rank file: one entry per token, in training order, with no
// separate merge-rule file. Real tiktoken rank files have this property
// by construction (id order == training order), which other_examples'
// euforicio-harmony-go tokenizer/bpe.go core relies on directly by using
// its span→id map as its own rank source; this function performs the
// equivalent reconstruction once, up front, so the rest of this package
// can use the general (a,b)→(c,rank) pair-merge table spec.md §4 assumes
// rather than re-deriving splits on every encode.
//
// For every multi-byte entry, in ascending ID order (== training order),
// it repeatedly merges the lowest-ID adjacent byte-span pair (the same
// greedy reduction bytePairMerge performs) until two parts remain,
// recording that last pair as the merge (left, right) -> entry.ID.
func DeriveMerges(entries []VocabEntry) [][2]TokenID {
	byKey := make(map[string]TokenID, len(entries))
	order := make([]VocabEntry, len(entries))
	copy(order, entries)
	sort.Slice(order, func(i, j int) bool { return order[i].ID < order[j].ID })
	for _, e := range order {
		byKey[string(e.Bytes)] = e.ID
	}

	var merges [][2]TokenID
	for _, e := range order {
		if len(e.Bytes) <= 1 {
			continue
		}
		left, right, ok := splitLowestRank(e.Bytes, byKey)
		if !ok {
			continue
		}
		merges = append(merges, [2]TokenID{left, right})
	}
	return merges
}

// splitLowestRank finds the final pair of a greedy byte-pair-merge
// reduction of span, using byKey (span bytes -> rank/id) as the rank
// source, mirroring bytePairMerge's algorithm: repeatedly collapse the
// lowest-ranked adjacent boundary until a single pair of parts remains.
func splitLowestRank(span []byte, byKey map[string]TokenID) (left, right TokenID, ok bool) {
	const none = ^uint32(0)

	type part struct {
		start int
		rank  uint32
	}
	rankAt := func(parts []part, i int) uint32 {
		if i+3 > len(parts)-1 {
			return none
		}
		if r, exists := byKey[string(span[parts[i].start:parts[i+3].start])]; exists {
			return r
		}
		return none
	}

	parts := make([]part, 0, len(span)+1)
	for i := 0; i < len(span); i++ {
		r := none
		if i+2 <= len(span) {
			if v, exists := byKey[string(span[i:i+2])]; exists {
				r = v
			}
		}
		parts = append(parts, part{start: i, rank: r})
	}
	parts = append(parts, part{start: len(span), rank: none})

	findMin := func() (idx int, rank uint32) {
		rank = none
		idx = -1
		for i := 0; i < len(parts)-1; i++ {
			if parts[i].rank < rank {
				rank, idx = parts[i].rank, i
			}
		}
		return
	}

	// Stop with exactly 3 boundaries left (2 segments): merging further
	// would collapse the whole span into the single token we're trying to
	// find the immediate children of, destroying the split we want.
	for len(parts) > 3 {
		idx, rank := findMin()
		if rank == none {
			return 0, 0, false
		}
		if idx > 0 {
			parts[idx-1].rank = rankAt(parts, idx-1)
		}
		parts[idx].rank = rankAt(parts, idx)
		parts = append(parts[:idx+1], parts[idx+2:]...)
	}

	if len(parts) != 3 {
		return 0, 0, false
	}
	leftBytes := span[parts[0].start:parts[1].start]
	rightBytes := span[parts[1].start:parts[2].start]
	l, lok := byKey[string(leftBytes)]
	r, rok := byKey[string(rightBytes)]
	if !lok || !rok {
		return 0, 0, false
	}
	return l, r, true
}

package bpe

import "container/heap"

// mergeHeap is the default encoder for concurrent workloads (spec.md
// §4.2.3). It keeps tokens in a flat array linked by prev/next index
// arrays (so merges are O(1) splices rather than slice compactions) and a
// min-heap of candidate merges keyed by rank. Popped entries are
// revalidated against the live prev/next structure before being applied,
// tolerating the stale heap entries earlier merges leave behind.
//
// Grounded on the teacher's llama3/priority_queue.go heap mechanics
// (container/heap over a custom node type), restructured from a
// pointer-chasing linked list (PriorityMerge's shape) to flat index
// arrays, per spec.md's description of MergeHeap as array-based.
type mergeHeap struct{}

type mergeHeapItem struct {
	pos       int
	mergedTok TokenID
	rank      uint32
	index     int // heap bookkeeping
}

type mergeHeapQueue []*mergeHeapItem

func (q mergeHeapQueue) Len() int { return len(q) }
func (q mergeHeapQueue) Less(i, j int) bool {
	if q[i].rank != q[j].rank {
		return q[i].rank < q[j].rank
	}
	return q[i].pos < q[j].pos
}
func (q mergeHeapQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i]; q[i].index = i; q[j].index = j }
func (q *mergeHeapQueue) Push(x interface{}) {
	it := x.(*mergeHeapItem)
	it.index = len(*q)
	*q = append(*q, it)
}
func (q *mergeHeapQueue) Pop() interface{} {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return it
}

func (mergeHeap) Append(v Vocab, dst []TokenID, span []byte) []TokenID {
	if id, ok := v.Lookup(span); ok {
		return append(dst, id)
	}
	tokens := initialTokens(v, make([]TokenID, 0, len(span)), span)
	n := len(tokens)
	if n <= 1 {
		return append(dst, tokens...)
	}

	prev := make([]int, n)
	next := make([]int, n)
	alive := make([]bool, n)
	for i := range tokens {
		prev[i] = i - 1
		if i+1 < n {
			next[i] = i + 1
		} else {
			next[i] = -1
		}
		alive[i] = true
	}

	pq := &mergeHeapQueue{}
	heap.Init(pq)
	pushCandidate := func(i int) {
		j := next[i]
		if j == -1 {
			return
		}
		merged, rank, ok := v.Merge(tokens[i], tokens[j])
		if !ok {
			return
		}
		heap.Push(pq, &mergeHeapItem{pos: i, mergedTok: merged, rank: rank})
	}
	for i := 0; i < n; i++ {
		if next[i] != -1 {
			pushCandidate(i)
		}
	}

	for pq.Len() > 0 {
		it := heap.Pop(pq).(*mergeHeapItem)
		i := it.pos
		if !alive[i] {
			continue
		}
		j := next[i]
		if j == -1 {
			continue
		}
		merged, rank, ok := v.Merge(tokens[i], tokens[j])
		if !ok || rank != it.rank || merged != it.mergedTok {
			continue
		}

		tokens[i] = merged
		alive[j] = false
		next[i] = next[j]
		if next[j] != -1 {
			prev[next[j]] = i
		}

		if prev[i] != -1 {
			pushCandidate(prev[i])
		}
		if next[i] != -1 {
			pushCandidate(i)
		}
	}

	// Index 0 is never absorbed as a right-hand merge partner (it has no
	// predecessor), so it remains the permanent head of the list.
	for i := 0; i != -1; i = next[i] {
		dst = append(dst, tokens[i])
	}
	return dst
}

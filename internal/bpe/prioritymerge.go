package bpe

import "container/heap"

// priorityMerge is the default encoder for single-threaded workloads
// (spec.md §4.2.4): a doubly-linked list of token nodes plus a binary
// min-heap over (rank, position). On pop, if the popped node's neighbors
// still form the expected pair it merges by collapsing the two list nodes
// and pushes the two newly-adjacent pairs; stale heap entries left behind
// by earlier merges are skipped lazily.
//
// Ported near-verbatim in structure from the teacher's llama3/bpe.go
// (buildMergeList/addToMergeQueue/performMerge) and llama3/priority_queue.go
// (mergeNode, a container/heap min-heap), generalized from Llama3's
// string-keyed merge identifier to the pair-merge table's (a,b) key, and
// from a one-byte-token-per-rune start state to the BPE spec's
// one-token-per-byte start state.
type priorityMerge struct{}

type pmNode struct {
	tokenID TokenID
	pos     int // index in the initial byte-token sequence
	prev    *pmNode
	next    *pmNode
	deleted bool
}

type pmHeapItem struct {
	node  *pmNode
	rank  uint32
	merge TokenID
	index int
}

type pmQueue []*pmHeapItem

func (q pmQueue) Len() int { return len(q) }
func (q pmQueue) Less(i, j int) bool {
	if q[i].rank != q[j].rank {
		return q[i].rank < q[j].rank
	}
	return q[i].node.pos < q[j].node.pos
}
func (q pmQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}
func (q *pmQueue) Push(x interface{}) {
	it := x.(*pmHeapItem)
	it.index = len(*q)
	*q = append(*q, it)
}
func (q *pmQueue) Pop() interface{} {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return it
}

func (priorityMerge) Append(v Vocab, dst []TokenID, span []byte) []TokenID {
	if id, ok := v.Lookup(span); ok {
		return append(dst, id)
	}
	tokens := initialTokens(v, make([]TokenID, 0, len(span)), span)
	if len(tokens) <= 1 {
		return append(dst, tokens...)
	}

	pq := &pmQueue{}
	heap.Init(pq)

	var head, prevNode *pmNode
	addCandidate := func(left *pmNode) {
		if left == nil || left.next == nil {
			return
		}
		merged, rank, ok := v.Merge(left.tokenID, left.next.tokenID)
		if !ok {
			return
		}
		heap.Push(pq, &pmHeapItem{node: left, rank: rank, merge: merged})
	}

	for i, id := range tokens {
		n := &pmNode{tokenID: id, pos: i, prev: prevNode}
		if prevNode != nil {
			prevNode.next = n
			addCandidate(prevNode)
		} else {
			head = n
		}
		prevNode = n
	}

	for pq.Len() > 0 {
		it := heap.Pop(pq).(*pmHeapItem)
		left := it.node
		if left.deleted || left.next == nil || left.next.deleted {
			continue
		}
		merged, rank, ok := v.Merge(left.tokenID, left.next.tokenID)
		if !ok || rank != it.rank || merged != it.merge {
			continue
		}

		right := left.next
		left.tokenID = merged
		left.next = right.next
		right.deleted = true
		if left.next != nil {
			left.next.prev = left
		}

		addCandidate(left.prev)
		addCandidate(left)
	}

	for n := head; n != nil; n = n.next {
		if !n.deleted {
			dst = append(dst, n.tokenID)
		}
	}
	return dst
}

package bpe

import "sync"

// backtrack implements BpeBacktrack (spec.md §4.2.5): scan left to right,
// greedily matching the longest known token at each position via a byte
// trie (the spec's "Aho–Corasick automaton over all token byte-sequences"
// — a plain longest-prefix trie is sufficient here because matches are
// only ever attempted starting exactly at the current scan position,
// never at an arbitrary later offset, so no failure-function backtracking
// across positions is needed). Each candidate match is validated against
// the previously emitted token using the pair-merge table's inverse
// splits; an invalid boundary shortens the current token via its
// next-prefix link and retries.
//
// Unlike the other four encoders, no repo in the retrieval pack implements
// this algorithm or ships a byte-automaton for it, so this file is built
// directly from the spec's own description rather than ported from an
// example (see DESIGN.md).
type backtrack struct {
	once       sync.Once
	root       *trieNode
	nextPrefix map[TokenID]TokenID
}

// NewBacktrack returns a BpeBacktrack encoder. The auxiliary automaton
// (trie + next-prefix table) is built lazily from the first Vocab passed
// to Append and cached for the lifetime of this value, matching the
// spec's "upfront cost... done once, shared by shared-ownership handle."
func NewBacktrack() *backtrack {
	return &backtrack{}
}

type trieNode struct {
	children map[byte]*trieNode
	parent   *trieNode
	tokenID  TokenID
	isToken  bool
}

func (b *backtrack) ensureBuilt(v Vocab) {
	b.once.Do(func() {
		root := &trieNode{children: make(map[byte]*trieNode)}
		v.ForEachToken(func(id TokenID, span []byte) {
			insertTrie(root, id, span)
		})
		b.root = root
		b.nextPrefix = computeNextPrefix(root)
	})
}

func insertTrie(root *trieNode, id TokenID, span []byte) {
	node := root
	for _, bb := range span {
		child, ok := node.children[bb]
		if !ok {
			child = &trieNode{children: make(map[byte]*trieNode), parent: node}
			node.children[bb] = child
		}
		node = child
	}
	node.tokenID = id
	node.isToken = true
}

// computeNextPrefix finds, for every token in the trie, the longest token
// that is a strict prefix of its bytes (spec.md §4.2.5's "next-prefix").
func computeNextPrefix(root *trieNode) map[TokenID]TokenID {
	out := make(map[TokenID]TokenID)
	var walk func(n *trieNode)
	walk = func(n *trieNode) {
		if n.isToken {
			for anc := n.parent; anc != nil; anc = anc.parent {
				if anc.isToken {
					out[n.tokenID] = anc.tokenID
					break
				}
			}
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(root)
	return out
}

// longestMatch finds the longest token starting exactly at span[start:].
func longestMatch(root *trieNode, span []byte, start int) (id TokenID, length int, ok bool) {
	node := root
	for i := start; i < len(span); i++ {
		child, present := node.children[span[i]]
		if !present {
			break
		}
		node = child
		if node.isToken {
			id, length, ok = node.tokenID, i-start+1, true
		}
	}
	return id, length, ok
}

// splitRank returns the rank at which t was formed by a merge, and
// whether t has a split at all (a raw byte token does not). A token with
// no split is treated as having arrived "infinitely late," so its side of
// the boundary-validity check below always holds and the other side decides.
func splitRank(v Vocab, t TokenID) (rank uint32, hasSplit bool) {
	a, b, ok := v.Split(t)
	if !ok {
		return ^uint32(0), false
	}
	_, r, _ := v.Merge(a, b)
	return r, true
}

func (b *backtrack) Append(v Vocab, dst []TokenID, span []byte) []TokenID {
	if id, ok := v.Lookup(span); ok {
		return append(dst, id)
	}
	b.ensureBuilt(v)

	var prevTok TokenID
	havePrev := false
	pos := 0
	for pos < len(span) {
		curTok, curLen, ok := longestMatch(b.root, span, pos)
		if !ok {
			// No token starts here at all (shouldn't happen for a
			// conforming vocabulary, since every single byte is a
			// token) — emit the raw byte token and advance.
			dst = append(dst, v.ByteToken(span[pos]))
			pos++
			havePrev = true
			prevTok = dst[len(dst)-1]
			continue
		}

		for havePrev {
			mergedTok, rank, mergeOK := v.Merge(prevTok, curTok)
			if !mergeOK {
				break
			}
			prevRank, _ := splitRank(v, prevTok)
			curRank, _ := splitRank(v, curTok)
			if !(rank < prevRank && rank < curRank) {
				break
			}
			_ = mergedTok
			shorter, hasShorter := b.nextPrefix[curTok]
			if !hasShorter {
				break
			}
			curTok = shorter
			curLen = len(v.TokenBytes(curTok))
		}

		dst = append(dst, curTok)
		prevTok = curTok
		havePrev = true
		pos += curLen
	}
	return dst
}

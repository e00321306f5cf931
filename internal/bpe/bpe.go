// Package bpe implements the five interchangeable span-encoder algorithms
// of the BPE tokenization core: given a vocabulary and a byte slice,
// append the token sequence the canonical BPE reduction would produce.
//
// All five variants are required to produce identical output for the same
// vocabulary and input (see crossencoder_test.go); they differ only in
// their internal data structures and asymptotic behavior.
package bpe

// TokenID mirrors the root package's token identifier type. It is a type
// alias (not a distinct type) so values pass between this package and the
// root tiktoken package without conversion.
type TokenID = uint32

// Vocab is the read-only view of a vocabulary an encoder needs. The root
// Vocabulary type implements this interface structurally; this package
// never imports the root package, which would create an import cycle.
type Vocab interface {
	// Lookup returns the token for an exact byte-sequence match in the
	// span map, used by every encoder's fast path.
	Lookup(span []byte) (TokenID, bool)
	// ByteToken returns the token for a single raw byte.
	ByteToken(b byte) TokenID
	// Merge returns the merged token and its rank for an adjacent pair,
	// if the pair-merge table has an entry for (a, b).
	Merge(a, b TokenID) (merged TokenID, rank uint32, ok bool)
	// Split returns the pair whose merge produced token c, the inverse of
	// Merge, used by BpeBacktrack.
	Split(c TokenID) (a, b TokenID, ok bool)
	// TokenBytes returns the byte sequence a token expands to.
	TokenBytes(id TokenID) []byte
	// ForEachToken iterates every span-map entry. Used once, on a
	// BpeBacktrack encoder's first Append, to build its automaton.
	ForEachToken(fn func(id TokenID, span []byte))
}

// Encoder appends the BPE token sequence for span to dst and returns the
// extended slice.
type Encoder interface {
	Append(v Vocab, dst []TokenID, span []byte) []TokenID
}

// Selector names a concrete Encoder implementation. The observable effect
// of the selector is performance only; token output is identical across
// all values for a conforming vocabulary.
type Selector int

const (
	// ConcurrentDefault is MergeHeap, the default for batch/parallel
	// workloads: flat arrays avoid the pointer-chasing linked list pays
	// for under heavy concurrent allocation pressure.
	ConcurrentDefault Selector = iota
	// SingleThreadDefault is PriorityMerge, the default for a lone
	// Tokenizer.Encode call.
	SingleThreadDefault
	// Reference is BufferSweep, the slow, simple correctness oracle.
	Reference
	// NameTailSweep selects TailSweep explicitly.
	NameTailSweep
	// NameMergeHeap selects MergeHeap explicitly.
	NameMergeHeap
	// NamePriorityMerge selects PriorityMerge explicitly.
	NamePriorityMerge
	// NameBacktrack selects BpeBacktrack explicitly.
	NameBacktrack
)

// For returns the concrete Encoder for a Selector value.
func For(s Selector) Encoder {
	switch s {
	case Reference:
		return bufferSweep{}
	case NameTailSweep:
		return tailSweep{}
	case ConcurrentDefault, NameMergeHeap:
		return mergeHeap{}
	case SingleThreadDefault, NamePriorityMerge:
		return priorityMerge{}
	case NameBacktrack:
		return NewBacktrack()
	default:
		return priorityMerge{}
	}
}

// initialTokens converts a span's raw bytes into the byte-token starting
// sequence BPE reduction begins from (spec: "starting from the byte-token
// sequence of s"), appending to dst.
func initialTokens(v Vocab, dst []TokenID, span []byte) []TokenID {
	for _, b := range span {
		dst = append(dst, v.ByteToken(b))
	}
	return dst
}

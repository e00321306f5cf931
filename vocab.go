package tiktoken

import (
	"github.com/agentstation/tiktoken/internal/dfa"
)

// pairKey packs an ordered token pair into a single map key, replacing
// the teacher's string-concatenated merge identifiers (spec.md §9:
// "Represent as two flat maps... Do not build an object graph with
// back-pointers; indices suffice").
type pairKey uint64

func makePairKey(a, b TokenID) pairKey {
	return pairKey(uint64(a))<<32 | pairKey(uint64(b))
}

type mergeEntry struct {
	merged TokenID
	rank   uint32
}

// Vocabulary is the immutable, shared aggregate spec.md §3 calls
// UnifiedVocabulary: byte map, span map (forward and inverse), pair-merge
// table (forward and inverse split), special-token table, and the
// pre-tokenization pattern. Once constructed it is never mutated; share
// it across goroutines by holding the same *Vocabulary value (the Go
// equivalent of the spec's reference-counted shared-ownership handle —
// Go's garbage collector retires the reference-counting concern).
type Vocabulary struct {
	byteToken [256]TokenID

	spanToToken map[string]TokenID
	tokenToSpan map[TokenID][]byte

	merges map[pairKey]mergeEntry
	splits map[TokenID][2]TokenID

	specialNameToID map[string]TokenID
	specialIDToName map[TokenID]string

	pattern   string
	model     string
	dfaFamily dfa.Family
}

// VocabEntry is one non-special line of the base64-token vocabulary file
// (spec.md §6.1), already decoded: raw bytes plus the token ID.
type VocabEntry struct {
	Bytes []byte
	ID    TokenID
}

// NewVocabulary builds and validates a Vocabulary from the base byte
// map's entries, the full span-map entries (which must include all 256
// byte tokens plus every learned merge product), an explicit merge list
// in rank order, a special-token table, and a pattern/model descriptor.
//
// entries must contain exactly the 256 single-byte spans (in any order)
// plus one entry per merge-produced token; merges lists each learned
// pair in increasing rank order, (a, b) referring to token IDs already
// present in entries (or produced by an earlier merge in this same
// list). This mirrors how a trainer emits a rank file and how
// DeriveMerges (merges.go) reconstructs one from a base64-token file's
// entries in id order.
func NewVocabulary(entries []VocabEntry, merges [][2]TokenID, special map[string]TokenID, pattern, model string, family dfa.Family) (*Vocabulary, error) {
	v := &Vocabulary{
		spanToToken:     make(map[string]TokenID, len(entries)),
		tokenToSpan:     make(map[TokenID][]byte, len(entries)),
		merges:          make(map[pairKey]mergeEntry, len(merges)),
		splits:          make(map[TokenID][2]TokenID, len(merges)),
		specialNameToID: make(map[string]TokenID, len(special)),
		specialIDToName: make(map[TokenID]string, len(special)),
		pattern:         pattern,
		model:           model,
		dfaFamily:       family,
	}

	var byteSeen [256]bool
	for _, e := range entries {
		key := string(e.Bytes)
		if existing, ok := v.spanToToken[key]; ok {
			return nil, &DuplicateVocabEntryError{Key: key, TokenID: existing}
		}
		if _, ok := v.tokenToSpan[e.ID]; ok {
			return nil, &DuplicateVocabEntryError{TokenID: e.ID, ByID: true}
		}
		v.spanToToken[key] = e.ID
		v.tokenToSpan[e.ID] = e.Bytes

		if len(e.Bytes) == 1 {
			b := e.Bytes[0]
			if byteSeen[b] {
				return nil, &DuplicateVocabEntryError{Key: key, TokenID: e.ID}
			}
			byteSeen[b] = true
			v.byteToken[b] = e.ID
		}
	}
	for i, seen := range byteSeen {
		if !seen {
			return nil, &MalformedVocabError{Op: "validate byte map", Text: "missing byte token", Line: i}
		}
	}

	for rank, pair := range merges {
		a, b := pair[0], pair[1]
		aBytes, ok := v.tokenToSpan[a]
		if !ok {
			return nil, &MalformedVocabError{Op: "validate merge", Text: "left operand not in span map"}
		}
		bBytes, ok := v.tokenToSpan[b]
		if !ok {
			return nil, &MalformedVocabError{Op: "validate merge", Text: "right operand not in span map"}
		}
		combined := string(aBytes) + string(bBytes)
		merged, ok := v.spanToToken[combined]
		if !ok {
			return nil, &MalformedVocabError{Op: "validate merge", Text: "merge result not present in span map"}
		}
		key := makePairKey(a, b)
		if _, dup := v.merges[key]; dup {
			return nil, &MalformedVocabError{Op: "validate merge", Text: "duplicate pair-merge entry", Line: rank}
		}
		v.merges[key] = mergeEntry{merged: merged, rank: uint32(rank)}
		v.splits[merged] = [2]TokenID{a, b}
	}

	for name, id := range special {
		if _, ok := v.tokenToSpan[id]; ok {
			return nil, &DuplicateVocabEntryError{Key: name, TokenID: id}
		}
		v.specialNameToID[name] = id
		v.specialIDToName[id] = name
		v.tokenToSpan[id] = []byte(name)
	}

	return v, nil
}

// --- bpe.Vocab, implemented structurally (internal/bpe never imports
// this package, so there is no explicit `var _ bpe.Vocab = (*Vocabulary)(nil)`
// assertion here; one lives in tokenizer.go where both packages are
// already imported). ---

func (v *Vocabulary) Lookup(span []byte) (TokenID, bool) {
	id, ok := v.spanToToken[string(span)]
	return id, ok
}

func (v *Vocabulary) ByteToken(b byte) TokenID {
	return v.byteToken[b]
}

func (v *Vocabulary) Merge(a, b TokenID) (TokenID, uint32, bool) {
	e, ok := v.merges[makePairKey(a, b)]
	return e.merged, e.rank, ok
}

func (v *Vocabulary) Split(c TokenID) (TokenID, TokenID, bool) {
	p, ok := v.splits[c]
	return p[0], p[1], ok
}

func (v *Vocabulary) TokenBytes(id TokenID) []byte {
	return v.tokenToSpan[id]
}

func (v *Vocabulary) ForEachToken(fn func(id TokenID, span []byte)) {
	for id, b := range v.tokenToSpan {
		fn(id, b)
	}
}

// SpecialToken returns the token ID registered for an exact special-token
// name, e.g. "<|endoftext|>".
func (v *Vocabulary) SpecialToken(name string) (TokenID, bool) {
	id, ok := v.specialNameToID[name]
	return id, ok
}

// SpecialName returns the literal name a special token ID was registered
// under, used by the decoder to emit its bytes.
func (v *Vocabulary) SpecialName(id TokenID) (string, bool) {
	name, ok := v.specialIDToName[id]
	return name, ok
}

// IsSpecial reports whether id names a special token rather than a
// regular span-map token.
func (v *Vocabulary) IsSpecial(id TokenID) bool {
	_, ok := v.specialIDToName[id]
	return ok
}

// Pattern returns the pre-tokenization regex string this vocabulary was
// constructed with.
func (v *Vocabulary) Pattern() string { return v.pattern }

// Model returns the model name passed to NewVocabulary (NewForModel
// passes the resolved model name; it may be empty).
func (v *Vocabulary) Model() string { return v.model }

// DFAFamily returns the compiled-lexer family the accelerated spanner
// should use, or dfa.None if no DFA backend is available for this
// vocabulary's pattern.
func (v *Vocabulary) DFAFamily() dfa.Family { return v.dfaFamily }

// Size returns the number of entries in the span map, including special
// tokens.
func (v *Vocabulary) Size() int { return len(v.tokenToSpan) }

// SpecialTokens returns a copy of the special-token name→id table.
func (v *Vocabulary) SpecialTokens() map[string]TokenID {
	out := make(map[string]TokenID, len(v.specialNameToID))
	for k, val := range v.specialNameToID {
		out[k] = val
	}
	return out
}

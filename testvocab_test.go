package tiktoken

import "github.com/agentstation/tiktoken/internal/dfa"

// buildTestVocabulary constructs a tiny but complete Vocabulary: all 256
// byte tokens, the classic BPE-paper "lowest" merge chain (grounded on
// internal/bpe/vocab_test.go's fakeVocab), and one special token. Good
// enough to exercise Encode/Decode/EncodeBatch/DecodeBatch end to end
// without needing a real tiktoken vocabulary file.
func buildTestVocabulary(t interface{ Fatalf(string, ...any) }) *Vocabulary {
	entries := make([]VocabEntry, 0, 264)
	for b := 0; b < 256; b++ {
		entries = append(entries, VocabEntry{Bytes: []byte{byte(b)}, ID: TokenID(b)})
	}

	next := TokenID(256)
	addWord := func(word string) TokenID {
		id := next
		next++
		entries = append(entries, VocabEntry{Bytes: []byte(word), ID: id})
		return id
	}

	// byte ids for the letters involved, for readability.
	bl, bo, bw, be, bs, bt := TokenID('l'), TokenID('o'), TokenID('w'), TokenID('e'), TokenID('s'), TokenID('t')

	lo := addWord("lo")
	low := addWord("low")
	es := addWord("es")
	est := addWord("est")
	addWord("lowest")

	merges := [][2]TokenID{
		{bl, bo},   // lo
		{lo, bw},   // low
		{be, bs},   // es
		{es, bt},   // est
		{low, est}, // lowest
	}

	special := map[string]TokenID{
		"<|endoftext|>": 100000,
	}

	v, err := NewVocabulary(entries, merges, special, `\w+|[^\w\s]+|\s+`, "test", dfa.None)
	if err != nil {
		t.Fatalf("buildTestVocabulary: %v", err)
	}
	return v
}

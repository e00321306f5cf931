package tiktoken

import (
	"unsafe"

	"github.com/agentstation/tiktoken/internal/bpe"
	"github.com/agentstation/tiktoken/internal/dfa"
)

var _ bpe.Vocab = (*Vocabulary)(nil)

// Tokenizer composes a Vocabulary with one span encoder and one spanner
// backend (spec.md §4.4). It is safe for concurrent use: the vocabulary
// is immutable, the encoder is stateless (or owns only a lazily-built,
// concurrency-safe automaton, as BpeBacktrack does), and per-call scratch
// state comes from the resource pool.
type Tokenizer struct {
	vocab     *Vocabulary
	encoder   bpe.Encoder
	spanner   spanner
	cache     bpe.Cache
	pool      *resourcePool
	parallel  bool
	normalize NormalizationForm
}

// New constructs a Tokenizer for an already-built Vocabulary.
func New(v *Vocabulary, opts ...Option) (*Tokenizer, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	selector := cfg.selector
	if !cfg.selectorSet {
		if cfg.parallel {
			selector = bpe.ConcurrentDefault
		} else {
			selector = bpe.SingleThreadDefault
		}
	}

	var sp spanner
	if cfg.acceleratedLexer && v.DFAFamily() != dfa.None {
		sp = newDFASpanner(v.DFAFamily())
	} else {
		rs, err := regexSpannerFor(v.Pattern())
		if err != nil {
			return nil, err
		}
		sp = rs
	}

	var cache bpe.Cache
	if cfg.cacheSize > 0 {
		cache = bpe.NewLRU(cfg.cacheSize)
	} else {
		cache = bpe.NewSimple()
	}

	return &Tokenizer{
		vocab:     v,
		encoder:   bpe.For(selector),
		spanner:   sp,
		cache:     cache,
		pool:      newResourcePool(cfg.scratchPoolSize),
		parallel:  cfg.parallel,
		normalize: cfg.normalization,
	}, nil
}

// NewForModel loads the registered pattern/special-token table for a
// model name and composes it with a caller-supplied set of regular-token
// vocabulary entries and merges (spec.md §6.1's "special tokens are not
// in this file; they are supplied by the loader").
func NewForModel(model string, entries []VocabEntry, merges [][2]TokenID, opts ...Option) (*Tokenizer, error) {
	spec, err := LookupModel(model)
	if err != nil {
		return nil, err
	}
	v, err := NewVocabulary(entries, merges, spec.Special, spec.Pattern, spec.Name, spec.DFA)
	if err != nil {
		return nil, err
	}
	return New(v, opts...)
}

// Vocabulary returns the tokenizer's underlying vocabulary handle.
func (t *Tokenizer) Vocabulary() *Vocabulary { return t.vocab }

// Encode converts text into a token sequence (spec.md §4.4).
func (t *Tokenizer) Encode(text string) []TokenID {
	var marker int
	scr, release := t.pool.acquire(stackAddress(&marker))
	defer release()

	text = t.normalize.apply(text)
	spans := t.spanner.Spans(t.vocab, []byte(text))
	out := scr.tokens[:0]
	for _, s := range spans {
		out = t.appendSpan(out, text, s)
	}
	result := make([]TokenID, len(out))
	copy(result, out)
	return result
}

func (t *Tokenizer) appendSpan(dst []TokenID, text string, s SpanRef) []TokenID {
	switch s.Kind {
	case SpanSpecial:
		return append(dst, s.TokenID)
	default: // SpanWord, SpanGap
		span := []byte(s.Bytes(text))
		key := string(span)
		if cached, ok := t.cache.Get(key); ok {
			return append(dst, cached...)
		}
		before := len(dst)
		dst = t.encoder.Append(t.vocab, dst, span)
		encoded := make([]TokenID, len(dst)-before)
		copy(encoded, dst[before:])
		t.cache.Put(key, encoded)
		return dst
	}
}

// Decode reconstructs the raw bytes a token sequence encodes (spec.md
// §4.3/§4.4).
func (t *Tokenizer) Decode(tokens []TokenID) []byte {
	return t.vocab.DecodeBytes(tokens)
}

// DecodeToString reconstructs text, failing with InvalidUTF8Error if the
// decoded bytes are not valid UTF-8.
func (t *Tokenizer) DecodeToString(tokens []TokenID) (string, error) {
	return t.vocab.DecodeToString(tokens)
}

// Count returns len(Encode(text)): it runs the full Encode, token slice
// included, and discards the IDs; a convenience named like the teacher's
// OptimisticCount but exact rather than heuristic, since this tokenizer
// always pre-tokenizes before counting.
func (t *Tokenizer) Count(text string) int {
	return len(t.Encode(text))
}

// stackAddress turns a pointer to a call-local variable into the
// uintptr-valued "stable thread identity" the resource pool hashes
// (spec.md §9's "any hash function over a stable thread-identity value
// suffices"). It is stable for the duration of one Encode/Decode call
// and distinct, with overwhelming probability, across concurrently
// executing calls, which is all the pool needs.
func stackAddress(marker *int) uintptr {
	return uintptr(unsafe.Pointer(marker))
}

package tiktoken

import "github.com/agentstation/tiktoken/internal/bpe"

// tokenizerConfig holds the construction-time configuration spec.md
// §4.4 describes: `{ span_encoder_selector, parallel, accelerated_lexer }`,
// plus the scratch-pool sizing knob from §5.2's resource pool.
type tokenizerConfig struct {
	selector         bpe.Selector
	selectorSet      bool
	parallel         bool
	acceleratedLexer bool
	scratchPoolSize  int
	cacheSize        int
	normalization    NormalizationForm
}

func defaultConfig() *tokenizerConfig {
	return &tokenizerConfig{
		acceleratedLexer: true,
		scratchPoolSize:  defaultPoolSize(),
		cacheSize:        0,
	}
}

// Option is a functional option for configuring a Tokenizer, following
// the teacher's llama3.Option pattern.
type Option func(*tokenizerConfig) error

// WithSpanEncoder selects one of the five span-encoder variants
// explicitly (spec.md §4.2.6). Without this option, the Tokenizer picks
// SingleThreadDefault or ConcurrentDefault based on WithParallel.
func WithSpanEncoder(sel bpe.Selector) Option {
	return func(cfg *tokenizerConfig) error {
		cfg.selector = sel
		cfg.selectorSet = true
		return nil
	}
}

// WithParallel enables the parallel batch wrapper for EncodeBatch and
// DecodeBatch (spec.md §4.5). When no explicit WithSpanEncoder is given,
// enabling this also switches the implicit default encoder from
// PriorityMerge to MergeHeap.
func WithParallel(parallel bool) Option {
	return func(cfg *tokenizerConfig) error {
		cfg.parallel = parallel
		return nil
	}
}

// WithAcceleratedLexer controls whether the DFA backend is used when the
// vocabulary's model has one. Setting it to false forces the regex
// backend even when a DFA is available (spec.md §4.4).
func WithAcceleratedLexer(accelerated bool) Option {
	return func(cfg *tokenizerConfig) error {
		cfg.acceleratedLexer = accelerated
		return nil
	}
}

// WithScratchPoolSize sets the bucket count of the per-thread resource
// pool (spec.md §5.2). The default is the logical CPU count.
func WithScratchPoolSize(size int) Option {
	return func(cfg *tokenizerConfig) error {
		if size < 1 {
			return &ConfigError{Field: "scratch_pool_size", Value: size, Err: errNonPositivePoolSize}
		}
		cfg.scratchPoolSize = size
		return nil
	}
}

// WithCacheSize bounds the per-span BPE result cache. Zero disables
// eviction (an unbounded SimpleCache); positive values use an LRU cache
// of that capacity.
func WithCacheSize(size int) Option {
	return func(cfg *tokenizerConfig) error {
		if size < 0 {
			return &ConfigError{Field: "cache_size", Value: size, Err: errNegativeCacheSize}
		}
		cfg.cacheSize = size
		return nil
	}
}

var (
	errNonPositivePoolSize = configSentinel("scratch pool size must be at least 1")
	errNegativeCacheSize   = configSentinel("cache size must not be negative")
)

type configSentinel string

func (e configSentinel) Error() string { return string(e) }

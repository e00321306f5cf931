package tiktoken

import (
	"sync"

	"github.com/dlclark/regexp2"
)

// regexSpanner is the backend described in spec.md §4.1.1: a
// Perl-compatible regex (Unicode property classes, negative lookahead)
// compiled once at vocabulary-attachment time. Grounded on
// other_examples' lancekrogers-go-token-counter, the only retrieved repo
// that pre-tokenizes tiktoken patterns with dlclark/regexp2 rather than
// a hand-rolled scanner.
type regexSpanner struct {
	re *regexp2.Regexp
}

func newRegexSpanner(pattern string) (*regexSpanner, error) {
	re, err := regexp2.Compile(pattern, regexp2.Unicode)
	if err != nil {
		return nil, &PatternCompileError{Pattern: pattern, Err: err}
	}
	re.MatchTimeout = 0
	return &regexSpanner{re: re}, nil
}

func (s *regexSpanner) Spans(v *Vocabulary, text []byte) []SpanRef {
	return spanSpecials(v, text, s.wordSpans)
}

func (s *regexSpanner) wordSpans(_ *Vocabulary, gap []byte) []SpanRef {
	if len(gap) == 0 {
		return nil
	}
	str := string(gap)
	var out []SpanRef
	pos := 0

	m, _ := s.re.FindStringMatch(str)
	for m != nil {
		start := m.Index
		end := m.Index + m.Length
		if start > pos {
			// the regex left a gap the pattern didn't cover; pass it
			// through byte-by-byte as SpanGap, per spec.md §4.1.1.
			for i := pos; i < start; i++ {
				out = append(out, SpanRef{Kind: SpanGap, Start: i, End: i + 1})
			}
		}
		if end > start {
			out = append(out, SpanRef{Kind: SpanWord, Start: start, End: end})
		}
		pos = end
		var err error
		m, err = s.re.FindNextMatch(m)
		if err != nil {
			break
		}
	}
	for i := pos; i < len(gap); i++ {
		out = append(out, SpanRef{Kind: SpanGap, Start: i, End: i + 1})
	}
	return out
}

// regexSpannerCache memoizes compiled spanners by pattern so repeated
// Tokenizer construction against the same model doesn't recompile the
// same regex, mirroring the per-thread resource pool's amortization
// goal for the regex-state side (spec.md §5's "regex state... not
// thread-safe; the engine holds a pool of regex-state instances").
var (
	regexSpannerCacheMu sync.Mutex
	regexSpannerCache   = map[string]*regexSpanner{}
)

func regexSpannerFor(pattern string) (*regexSpanner, error) {
	regexSpannerCacheMu.Lock()
	defer regexSpannerCacheMu.Unlock()
	if s, ok := regexSpannerCache[pattern]; ok {
		return s, nil
	}
	s, err := newRegexSpanner(pattern)
	if err != nil {
		return nil, err
	}
	regexSpannerCache[pattern] = s
	return s, nil
}

package tiktoken

import "github.com/agentstation/tiktoken/internal/dfa"

// dfaSpanner is the accelerated backend of spec.md §4.1.2. It delegates
// the actual recognition and whitespace-correction work to
// internal/dfa, which returns plain byte ranges; this file's only job is
// wrapping those ranges as SpanRef and interleaving them with special
// tokens via the same spanSpecials helper the regex backend uses (so the
// two backends can only ever disagree inside internal/dfa, which is
// exactly what spanner_oracle_test.go checks).
type dfaSpanner struct {
	family dfa.Family
}

func newDFASpanner(family dfa.Family) *dfaSpanner {
	return &dfaSpanner{family: family}
}

func (s *dfaSpanner) Spans(v *Vocabulary, text []byte) []SpanRef {
	return spanSpecials(v, text, s.wordSpans)
}

func (s *dfaSpanner) wordSpans(_ *Vocabulary, gap []byte) []SpanRef {
	ranges := dfa.Spans(s.family, gap)
	out := make([]SpanRef, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, SpanRef{Kind: SpanWord, Start: r.Start, End: r.End})
	}
	return out
}

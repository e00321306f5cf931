package tiktoken

// spanner produces the ordered SpanRef sequence for a text (spec.md
// §4.1). Both backends first scan for special-token literals, then
// pre-tokenize the gaps between them; they are required to agree
// byte-range-for-byte-range (testable property 5, "spanner oracle").
type spanner interface {
	Spans(v *Vocabulary, text []byte) []SpanRef
}

// spanSpecials walks text, emitting SpanSpecial for every literal
// special-token match and delegating everything between matches to
// wordSpanner, which produces SpanWord/SpanGap ranges for that gap. Both
// concrete spanners below call this instead of duplicating the
// interleaving logic.
func spanSpecials(v *Vocabulary, text []byte, wordSpanner func(v *Vocabulary, gap []byte) []SpanRef) []SpanRef {
	var out []SpanRef
	pos := 0
	for pos < len(text) {
		start, end, id, found := specialMatch(v, text, pos)
		if !found {
			break
		}
		if start > pos {
			out = appendShifted(out, wordSpanner(v, text[pos:start]), pos)
		}
		out = append(out, SpanRef{Kind: SpanSpecial, Start: start, End: end, TokenID: id})
		pos = end
	}
	if pos < len(text) {
		out = appendShifted(out, wordSpanner(v, text[pos:]), pos)
	}
	return out
}

func appendShifted(out []SpanRef, spans []SpanRef, offset int) []SpanRef {
	for _, s := range spans {
		s.Start += offset
		s.End += offset
		out = append(out, s)
	}
	return out
}

package tiktoken

// SpanKind distinguishes the three flavors of SpanRef.
type SpanKind uint8

const (
	// SpanWord is a normal pre-tokenized slice to be BPE-encoded.
	SpanWord SpanKind = iota
	// SpanSpecial is a literal special-token match; it emits its token
	// directly without BPE.
	SpanSpecial
	// SpanGap is bytes unrecognized by the active backend, passed through
	// as if it were a SpanWord.
	SpanGap
)

// SpanRef is one contiguous byte-range produced by pre-tokenization. Start
// and End are byte offsets into the original text; End is exclusive.
type SpanRef struct {
	Kind    SpanKind
	Start   int
	End     int
	TokenID TokenID // only meaningful when Kind == SpanSpecial
}

func (s SpanRef) Len() int { return s.End - s.Start }

// Bytes returns the slice of text this span covers.
func (s SpanRef) Bytes(text string) string {
	return text[s.Start:s.End]
}

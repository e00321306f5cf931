package tiktoken

import "golang.org/x/text/unicode/norm"

// NormalizationForm selects an optional Unicode normalization pass run on
// input text before pre-tokenization. The tiktoken-compatible core is
// byte-exact by default (NormNone): a vocabulary trained on raw bytes
// must see the same bytes at encode time, so normalization is opt-in
// rather than automatic, unlike gomlx-go-huggingface's hftokenizer,
// which normalizes per the tokenizer.json Normalizer field it loads.
type NormalizationForm int

const (
	// NormNone disables normalization; text reaches the spanner as given.
	NormNone NormalizationForm = iota
	NormNFC
	NormNFD
	NormNFKC
	NormNFKD
)

func (f NormalizationForm) apply(text string) string {
	switch f {
	case NormNFC:
		return norm.NFC.String(text)
	case NormNFD:
		return norm.NFD.String(text)
	case NormNFKC:
		return norm.NFKC.String(text)
	case NormNFKD:
		return norm.NFKD.String(text)
	default:
		return text
	}
}

// WithNormalization runs the given Unicode normalization form over input
// text before pre-tokenization and encoding. Decode output is unaffected:
// normalization is a pre-encode transform only, never reversed.
func WithNormalization(form NormalizationForm) Option {
	return func(cfg *tokenizerConfig) error {
		cfg.normalization = form
		return nil
	}
}

package tiktoken

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizationNFCComposesCombiningMarks(t *testing.T) {
	v := buildTestVocabulary(t)
	tok, err := New(v, WithNormalization(NormNFC))
	require.NoError(t, err)

	// U+0065 U+0301 ("e" + combining acute accent) composes to the
	// single precomposed code point U+00E9 under NFC; the two forms
	// must encode identically once normalized, even though their raw
	// UTF-8 byte sequences differ.
	decomposed := "é"
	precomposed := "é"

	require.NotEqual(t, decomposed, precomposed, "test fixture must exercise distinct byte sequences")
	require.Equal(t, tok.Encode(precomposed), tok.Encode(decomposed))
}

func TestNoNormalizationPreservesRawBytes(t *testing.T) {
	v := buildTestVocabulary(t)
	tok, err := New(v)
	require.NoError(t, err)

	decomposed := "é"
	precomposed := "é"

	require.NotEqual(t, tok.Encode(precomposed), tok.Encode(decomposed),
		"default NormNone must not silently normalize input")
}

package tiktoken

import "unicode/utf8"

// DecodeBytes implements spec.md §4.3: lookup-only reconstruction. For
// each token, a special token's literal name bytes are emitted;
// otherwise the span map's reverse table supplies the byte sequence.
// Unknown token IDs are skipped rather than erroring — decode never
// fails except via DecodeToString's UTF-8 check (spec.md §7 policy).
func (v *Vocabulary) DecodeBytes(tokens []TokenID) []byte {
	var out []byte
	for _, id := range tokens {
		if b, ok := v.tokenToSpan[id]; ok {
			out = append(out, b...)
		}
	}
	return out
}

// DecodeToString decodes tokens and validates the result as UTF-8,
// returning InvalidUTF8Error at the first invalid byte sequence if not.
func (v *Vocabulary) DecodeToString(tokens []TokenID) (string, error) {
	b := v.DecodeBytes(tokens)
	if offset, ok := firstInvalidUTF8(b); !ok {
		return "", &InvalidUTF8Error{ByteOffset: offset}
	}
	return string(b), nil
}

// firstInvalidUTF8 reports the byte offset of the first invalid UTF-8
// sequence in b, and whether b is valid UTF-8 overall.
func firstInvalidUTF8(b []byte) (offset int, valid bool) {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i, false
		}
		i += size
	}
	return 0, true
}

package tiktoken

import (
	"bytes"
	"reflect"
	"testing"
)

func TestEncodeDecodeRoundtrip(t *testing.T) {
	v := buildTestVocabulary(t)
	tok, err := New(v)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, text := range []string{"lowest", "low lowest", "a quick test", "", "z", "lowestlowest"} {
		ids := tok.Encode(text)
		got := tok.Decode(ids)
		if string(got) != text {
			t.Errorf("roundtrip(%q): got %q via tokens %v", text, got, ids)
		}
	}
}

func TestEncodeReducesKnownMerges(t *testing.T) {
	v := buildTestVocabulary(t)
	tok, err := New(v)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ids := tok.Encode("lowest")
	if len(ids) != 1 {
		t.Fatalf("Encode(%q) = %v, want a single token", "lowest", ids)
	}
	if got := string(tok.Decode(ids)); got != "lowest" {
		t.Fatalf("Decode(%v) = %q, want %q", ids, got, "lowest")
	}
}

func TestSpecialTokenLiterality(t *testing.T) {
	v := buildTestVocabulary(t)
	tok, err := New(v)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	text := "lowest<|endoftext|>lowest"
	ids := tok.Encode(text)

	id, ok := v.SpecialToken("<|endoftext|>")
	if !ok {
		t.Fatalf("special token not registered")
	}
	found := false
	for _, got := range ids {
		if got == id {
			found = true
		}
	}
	if !found {
		t.Fatalf("Encode(%q) = %v, expected special token %d present", text, ids, id)
	}

	decoded := tok.Decode(ids)
	if !bytes.Equal(decoded, []byte(text)) {
		t.Fatalf("Decode(%v) = %q, want %q", ids, decoded, text)
	}
}

func TestEncodeBatchMatchesSequentialEncode(t *testing.T) {
	v := buildTestVocabulary(t)
	texts := []string{"lowest", "low", "a b c", "", "lowestlowest", "test"}

	for _, parallel := range []bool{false, true} {
		tok, err := New(v, WithParallel(parallel))
		if err != nil {
			t.Fatalf("New(parallel=%v): %v", parallel, err)
		}
		want := make([][]TokenID, len(texts))
		for i, text := range texts {
			want[i] = tok.Encode(text)
		}
		got := tok.EncodeBatch(texts)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("EncodeBatch(parallel=%v) = %v, want %v", parallel, got, want)
		}
	}
}

func TestDecodeBatchMatchesSequentialDecode(t *testing.T) {
	v := buildTestVocabulary(t)
	tokenLists := [][]TokenID{
		{TokenID('a')},
		{TokenID('b'), TokenID('c')},
		{},
	}

	tok, err := New(v, WithParallel(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	want := make([][]byte, len(tokenLists))
	for i, ids := range tokenLists {
		want[i] = tok.Decode(ids)
	}
	got := tok.DecodeBatch(tokenLists)
	if len(got) != len(want) {
		t.Fatalf("DecodeBatch length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !bytes.Equal(got[i], want[i]) {
			t.Errorf("DecodeBatch[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEmptyInputBoundary(t *testing.T) {
	v := buildTestVocabulary(t)
	tok, err := New(v)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if ids := tok.Encode(""); len(ids) != 0 {
		t.Fatalf("Encode(\"\") = %v, want empty", ids)
	}
	if b := tok.Decode(nil); len(b) != 0 {
		t.Fatalf("Decode(nil) = %q, want empty", b)
	}
}

func TestSingleByteBoundary(t *testing.T) {
	v := buildTestVocabulary(t)
	tok, err := New(v)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ids := tok.Encode("z")
	if len(ids) != 1 || ids[0] != v.ByteToken('z') {
		t.Fatalf("Encode(\"z\") = %v, want single byte token %d", ids, v.ByteToken('z'))
	}
}

func TestDecodeUnknownTokenSkipped(t *testing.T) {
	v := buildTestVocabulary(t)
	out := v.DecodeBytes([]TokenID{TokenID('a'), 999999, TokenID('b')})
	if string(out) != "ab" {
		t.Fatalf("DecodeBytes with unknown id = %q, want %q", out, "ab")
	}
}

func TestDecodeToStringInvalidUTF8(t *testing.T) {
	v := buildTestVocabulary(t)
	// 0x80 alone is an invalid UTF-8 continuation byte with no lead byte.
	_, err := v.DecodeToString([]TokenID{0x80})
	if err == nil {
		t.Fatalf("DecodeToString(invalid UTF-8) succeeded, want InvalidUTF8Error")
	}
	if _, ok := err.(*InvalidUTF8Error); !ok {
		t.Fatalf("DecodeToString error type = %T, want *InvalidUTF8Error", err)
	}
}

func TestCountMatchesEncodeLength(t *testing.T) {
	v := buildTestVocabulary(t)
	tok, err := New(v)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, text := range []string{"lowest", "low lowest test"} {
		if got, want := tok.Count(text), len(tok.Encode(text)); got != want {
			t.Errorf("Count(%q) = %d, want %d", text, got, want)
		}
	}
}

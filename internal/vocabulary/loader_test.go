package vocabulary

import (
	"encoding/base64"
	"strings"
	"testing"
)

func b64(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

func TestParseValidFile(t *testing.T) {
	input := strings.Join([]string{
		b64("a") + " 0",
		b64("b") + " 1",
		b64("ab") + " 256",
	}, "\n") + "\n"

	entries, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}
	if string(entries[0].Bytes) != "a" || entries[0].ID != 0 {
		t.Errorf("entries[0] = %+v, want {a 0}", entries[0])
	}
	if string(entries[2].Bytes) != "ab" || entries[2].ID != 256 {
		t.Errorf("entries[2] = %+v, want {ab 256}", entries[2])
	}
}

func TestParseSkipsBlankLines(t *testing.T) {
	input := b64("a") + " 0\n\n" + b64("b") + " 1\n"
	entries, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
}

func TestParseMissingSeparator(t *testing.T) {
	_, err := Parse(strings.NewReader(b64("a") + "0\n"))
	if err == nil {
		t.Fatal("Parse: want error for missing separator")
	}
	le, ok := err.(*LoadError)
	if !ok {
		t.Fatalf("error type = %T, want *LoadError", err)
	}
	if le.Line != 1 {
		t.Errorf("LoadError.Line = %d, want 1", le.Line)
	}
}

func TestParseInvalidBase64(t *testing.T) {
	_, err := Parse(strings.NewReader("not-valid-base64!! 0\n"))
	if _, ok := err.(*LoadError); !ok {
		t.Fatalf("error type = %T, want *LoadError", err)
	}
}

func TestParseInvalidTokenID(t *testing.T) {
	_, err := Parse(strings.NewReader(b64("a") + " notanumber\n"))
	if _, ok := err.(*LoadError); !ok {
		t.Fatalf("error type = %T, want *LoadError", err)
	}
}

func TestParseDuplicateKey(t *testing.T) {
	input := b64("a") + " 0\n" + b64("a") + " 1\n"
	_, err := Parse(strings.NewReader(input))
	de, ok := err.(*DuplicateError)
	if !ok {
		t.Fatalf("error type = %T, want *DuplicateError", err)
	}
	if de.ByID {
		t.Errorf("DuplicateError.ByID = true, want false (duplicate key)")
	}
	if de.Line != 2 || de.Origin != 1 {
		t.Errorf("DuplicateError = %+v, want Line=2 Origin=1", de)
	}
}

func TestParseDuplicateID(t *testing.T) {
	input := b64("a") + " 0\n" + b64("b") + " 0\n"
	_, err := Parse(strings.NewReader(input))
	de, ok := err.(*DuplicateError)
	if !ok {
		t.Fatalf("error type = %T, want *DuplicateError", err)
	}
	if !de.ByID {
		t.Errorf("DuplicateError.ByID = false, want true (duplicate id)")
	}
}

func TestParseEmptyInput(t *testing.T) {
	entries, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("len(entries) = %d, want 0", len(entries))
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("/nonexistent/path/to/vocab.tiktoken")
	if err == nil {
		t.Fatal("LoadFile: want error for missing file")
	}
}

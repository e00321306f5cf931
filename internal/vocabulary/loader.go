// Package vocabulary parses the "base64 token" vocabulary file format of
// spec.md §6.1: one regular token per line, as
// `<base64-of-byte-sequence> <decimal-token-id>`, LF-terminated, trailing
// newline optional.
package vocabulary

import (
	"bufio"
	"encoding/base64"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Entry is one parsed vocabulary line: a token's byte sequence and its ID.
type Entry struct {
	Bytes []byte
	ID    uint32
}

// LoadError reports the file line a parse failure occurred on, alongside
// the pkg/errors-wrapped cause, following the gomlx-go-huggingface pack's
// errors.Wrapf-at-every-boundary style.
type LoadError struct {
	Line int
	Text string
	Err  error
}

func (e *LoadError) Error() string {
	return errors.Wrapf(e.Err, "parse vocabulary line %d: %q", e.Line, e.Text).Error()
}

func (e *LoadError) Unwrap() error { return e.Err }

// DuplicateError reports a repeated key or token ID across lines.
type DuplicateError struct {
	Line   int
	Key    string
	ID     uint32
	ByID   bool
	Origin int // the line the original entry was defined on
}

func (e *DuplicateError) Error() string {
	if e.ByID {
		return errors.Errorf("line %d: duplicate token id %d (first defined on line %d)", e.Line, e.ID, e.Origin).Error()
	}
	return errors.Errorf("line %d: duplicate key %q (first defined on line %d)", e.Line, e.Key, e.Origin).Error()
}

// LoadFile opens path and parses it as a base64-token vocabulary file.
func LoadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open vocabulary file %q", path)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a base64-token vocabulary file from r.
func Parse(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var entries []Entry
	seenKey := make(map[string]int)
	seenID := make(map[uint32]int)

	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if text == "" {
			continue
		}

		sp := strings.IndexByte(text, ' ')
		if sp < 0 {
			return nil, &LoadError{Line: line, Text: text, Err: errors.New("expected \"<base64> <id>\"")}
		}
		b64, idText := text[:sp], text[sp+1:]

		raw, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return nil, &LoadError{Line: line, Text: text, Err: errors.Wrap(err, "invalid base64")}
		}

		id64, err := strconv.ParseUint(idText, 10, 32)
		if err != nil {
			return nil, &LoadError{Line: line, Text: text, Err: errors.Wrap(err, "invalid decimal token id")}
		}
		id := uint32(id64)

		key := string(raw)
		if origin, dup := seenKey[key]; dup {
			return nil, &DuplicateError{Line: line, Key: key, Origin: origin}
		}
		if origin, dup := seenID[id]; dup {
			return nil, &DuplicateError{Line: line, ID: id, ByID: true, Origin: origin}
		}
		seenKey[key] = line
		seenID[id] = line

		entries = append(entries, Entry{Bytes: raw, ID: id})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read vocabulary file")
	}
	return entries, nil
}

package tiktoken

import (
	"io"

	"github.com/agentstation/tiktoken/internal/vocabulary"
)

// LoadVocabEntriesFile parses a base64-token vocabulary file (spec.md
// §6.1) from path into VocabEntry values suitable for NewVocabulary and
// NewForModel. Special tokens are not in this file; callers get them
// from LookupModel's ModelSpec.Special.
func LoadVocabEntriesFile(path string) ([]VocabEntry, error) {
	raw, err := vocabulary.LoadFile(path)
	if err != nil {
		return nil, translateLoadError(path, err)
	}
	return convertEntries(raw), nil
}

// LoadVocabEntries parses a base64-token vocabulary file from r.
func LoadVocabEntries(r io.Reader) ([]VocabEntry, error) {
	raw, err := vocabulary.Parse(r)
	if err != nil {
		return nil, translateLoadError("", err)
	}
	return convertEntries(raw), nil
}

func convertEntries(raw []vocabulary.Entry) []VocabEntry {
	entries := make([]VocabEntry, len(raw))
	for i, e := range raw {
		entries[i] = VocabEntry{Bytes: e.Bytes, ID: e.ID}
	}
	return entries
}

// translateLoadError maps internal/vocabulary's parse errors onto this
// package's public error taxonomy (spec.md §7), so callers only ever
// need to type-switch on the root package's error types regardless of
// which loader path produced the failure.
func translateLoadError(path string, err error) error {
	switch e := err.(type) {
	case *vocabulary.LoadError:
		return &MalformedVocabError{Op: "parse vocab line", Line: e.Line, Text: e.Text, Err: e.Err}
	case *vocabulary.DuplicateError:
		if e.ByID {
			return &DuplicateVocabEntryError{TokenID: TokenID(e.ID), ByID: true}
		}
		return &DuplicateVocabEntryError{Key: e.Key}
	default:
		return &IOError{Op: "load vocabulary", Path: path, Err: err}
	}
}

package main

import (
	"fmt"

	"github.com/agentstation/tiktoken"
)

// loadTokenizer resolves a model name's pattern/special-token table and
// loads regular-token entries from a base64-token vocabulary file
// (spec.md §6.1), always deriving the pair-merge table from the file's
// entries with DeriveMerges.
func loadTokenizer(model, vocabPath string) (*tiktoken.Tokenizer, error) {
	entries, err := tiktoken.LoadVocabEntriesFile(vocabPath)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}
	merges := tiktoken.DeriveMerges(entries)
	tok, err := tiktoken.NewForModel(model, entries, merges)
	if err != nil {
		return nil, fmt.Errorf("build tokenizer: %w", err)
	}
	return tok, nil
}

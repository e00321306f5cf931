// Package tiktoken implements a tiktoken-compatible byte-pair-encoding
// tokenizer core in pure Go.
//
// It converts text into sequences of integer token IDs (Encode) and
// reverses the mapping (Decode), producing output bit-identical to the
// reference tiktoken implementations for the same vocabulary. Six model
// families are registered out of the box: r50k_base, p50k_base, p50k_edit,
// cl100k_base, o200k_base and o200k_harmony.
//
// # Pipeline
//
// Encoding happens in two phases:
//
//  1. Pre-tokenization ("spanning"): the input is split into coarse
//     byte-ranges using either a backtracking regex or a precompiled DFA,
//     with special tokens recognized and carved out first.
//  2. Per-span BPE encoding: each span's bytes are reduced to the
//     BPE-canonical token sequence by repeatedly merging the
//     lowest-rank adjacent pair, using one of five interchangeable
//     encoder algorithms (see internal/bpe).
//
// # Basic usage
//
//	entries, err := tiktoken.LoadVocabEntriesFile("cl100k_base.tiktoken")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tok, err := tiktoken.NewForModel("cl100k_base", entries, tiktoken.DeriveMerges(entries))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ids := tok.Encode("hello world")
//	text, err := tok.DecodeToString(ids)
//
// # Concurrency
//
// A Vocabulary is immutable after construction and safe to share across
// any number of goroutines without synchronization. Tokenizer.EncodeBatch
// and Tokenizer.DecodeBatch can run elements concurrently over a bounded
// worker pool (see batch.go) while preserving input order in the output.
//
// # Thread safety
//
// Tokenizer, Vocabulary and all exported types are safe for concurrent
// use by multiple goroutines.
package tiktoken

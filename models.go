package tiktoken

import (
	"strings"

	"github.com/agentstation/tiktoken/internal/dfa"
)

// Special token names shared across the OpenAI model families (spec.md
// §6.2). Not every model registers every name.
const (
	EndOfText   = "<|endoftext|>"
	FimPrefix   = "<|fim_prefix|>"
	FimMiddle   = "<|fim_middle|>"
	FimSuffix   = "<|fim_suffix|>"
	EndOfPrompt = "<|endofprompt|>"
)

// Model names recognized by the pattern registry.
const (
	ModelR50kBase     = "r50k_base"
	ModelP50kBase     = "p50k_base"
	ModelP50kEdit     = "p50k_edit"
	ModelCl100kBase   = "cl100k_base"
	ModelO200kBase    = "o200k_base"
	ModelO200kHarmony = "o200k_harmony"
)

// ModelSpec is one row of the per-model pattern registry (spec.md §6.2):
// the pre-tokenization regex (exact bytes, preserved verbatim across
// implementations), the special-token table, and the DFA family the
// accelerated lexer should use when available.
type ModelSpec struct {
	Name    string
	Pattern string
	Special map[string]TokenID
	DFA     dfa.Family
}

// These patterns are copied byte-for-byte from the real tiktoken pattern
// strings (confirmed against other_examples' lancekrogers-go-token-counter
// and richardpark-msft-waza retrievals) — they must never be
// reformatted or simplified, since the DFA/regex oracle property depends
// on matching these exact bytes.
const (
	patternLegacy = `'s|'t|'re|'ve|'m|'ll|'d| ?\p{L}+| ?\p{N}+| ?[^\s\p{L}\p{N}]+|\s+(?!\S)|\s+`
	patternCl100k = `(?i:'s|'t|'re|'ve|'m|'ll|'d)|[^\r\n\p{L}\p{N}]?\p{L}+|\p{N}{1,3}| ?[^\s\p{L}\p{N}]+[\r\n]*|\s*[\r\n]+|\s+(?!\S)|\s+`
	patternO200k  = `[^\r\n\p{L}\p{N}]?[\p{Lu}\p{Lt}\p{Lm}\p{Lo}\p{M}]*[\p{Ll}\p{Lm}\p{Lo}\p{M}]+(?i:'s|'t|'re|'ve|'m|'ll|'d)?` +
		`|[^\r\n\p{L}\p{N}]?[\p{Lu}\p{Lt}\p{Lm}\p{Lo}\p{M}]+[\p{Ll}\p{Lm}\p{Lo}\p{M}]*(?i:'s|'t|'re|'ve|'m|'ll|'d)?` +
		`|\p{N}{1,3}| ?[^\s\p{L}\p{N}]+[\r\n/]*|\s*[\r\n]+|\s+(?!\S)|\s+`
)

var modelRegistry = map[string]ModelSpec{
	ModelR50kBase: {
		Name:    ModelR50kBase,
		Pattern: patternLegacy,
		Special: map[string]TokenID{EndOfText: 50256},
		DFA:     dfa.Legacy,
	},
	ModelP50kBase: {
		Name:    ModelP50kBase,
		Pattern: patternLegacy,
		Special: map[string]TokenID{EndOfText: 50256},
		DFA:     dfa.Legacy,
	},
	ModelP50kEdit: {
		Name:    ModelP50kEdit,
		Pattern: patternLegacy,
		Special: map[string]TokenID{
			EndOfText: 50256,
			FimPrefix: 50281,
			FimMiddle: 50282,
			FimSuffix: 50283,
		},
		DFA: dfa.Legacy,
	},
	ModelCl100kBase: {
		Name:    ModelCl100kBase,
		Pattern: patternCl100k,
		Special: map[string]TokenID{
			EndOfText:   100257,
			FimPrefix:   100258,
			FimMiddle:   100259,
			FimSuffix:   100260,
			EndOfPrompt: 100276,
		},
		DFA: dfa.Cl100k,
	},
	ModelO200kBase: {
		Name:    ModelO200kBase,
		Pattern: patternO200k,
		Special: map[string]TokenID{
			EndOfText:   199999,
			EndOfPrompt: 200018,
		},
		DFA: dfa.O200k,
	},
	ModelO200kHarmony: {
		Name:    ModelO200kHarmony,
		Pattern: patternO200k,
		// TODO: harmony's defining feature is its larger special-token set
		// (<|start|>, <|end|>, <|message|>, <|channel|>, <|constrain|>,
		// and friends, used by the harmony response format) on top of the
		// base o200k table; only EndOfText/EndOfPrompt are registered
		// here. Neither spec.md nor original_source/ enumerate the
		// harmony-specific set, so Encode for this model won't special-case
		// those tokens until it's added.
		Special: map[string]TokenID{
			EndOfText:   199999,
			EndOfPrompt: 200018,
		},
		DFA: dfa.O200k,
	},
}

// LookupModel resolves a model name to its registry entry. Names may
// carry an "openai::" or "openai/" namespace prefix; resolution is
// case-sensitive (spec.md §6.2).
func LookupModel(name string) (ModelSpec, error) {
	trimmed := name
	switch {
	case strings.HasPrefix(name, "openai::"):
		trimmed = name[len("openai::"):]
	case strings.HasPrefix(name, "openai/"):
		trimmed = name[len("openai/"):]
	}
	spec, ok := modelRegistry[trimmed]
	if !ok {
		return ModelSpec{}, &UnknownModelError{Name: name}
	}
	return spec, nil
}

// ListModels returns every registered model name, in a fixed order
// convenient for a "list-models" CLI command.
func ListModels() []string {
	return []string{
		ModelR50kBase,
		ModelP50kBase,
		ModelP50kEdit,
		ModelCl100kBase,
		ModelO200kBase,
		ModelO200kHarmony,
	}
}

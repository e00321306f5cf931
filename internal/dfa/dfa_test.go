package dfa

import "testing"

func spanStrings(text []byte, ranges []Range) []string {
	out := make([]string, len(ranges))
	for i, r := range ranges {
		out[i] = string(text[r.Start:r.End])
	}
	return out
}

func assertSpans(t *testing.T, family Family, text string, want []string) {
	t.Helper()
	got := spanStrings([]byte(text), Spans(family, []byte(text)))
	if len(got) != len(want) {
		t.Fatalf("Spans(%q) = %q, want %q", text, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Spans(%q) = %q, want %q", text, got, want)
		}
	}
}

func TestWhitespaceWordAbsorption(t *testing.T) {
	// A run of leading whitespace gives up its last character to the
	// following word: `\s+(?!\S)` stops one character short of the word,
	// and the cl100k word pattern's `[^\r\n\p{L}\p{N}]?\p{L}+` takes that
	// character as its prefix.
	assertSpans(t, Cl100k, "   world", []string{"  ", " world"})
}

func TestPunctuationAbsorbsOneSpace(t *testing.T) {
	assertSpans(t, Cl100k, "a  !", []string{"a", " ", " !"})
}

func TestPunctuationDoesNotAbsorbTab(t *testing.T) {
	// Only a literal ASCII space is absorbed, never a tab: the tab stays
	// its own whitespace span instead of merging into the punctuation run.
	assertSpans(t, Cl100k, "a\t!", []string{"a", "\t", "!"})
}

func TestContractionSplit(t *testing.T) {
	assertSpans(t, Cl100k, "don't", []string{"don", "'t"})
}

func TestLegacyNumberAbsorbsPrefix(t *testing.T) {
	assertSpans(t, Legacy, "a 123", []string{"a", " 123"})
}

func TestCl100kNumberNeverAbsorbsPrefix(t *testing.T) {
	assertSpans(t, Cl100k, "a 123", []string{"a", " ", "123"})
}

func TestNewlineSequenceStandalone(t *testing.T) {
	assertSpans(t, Cl100k, "a\n\n\nb", []string{"a", "\n\n\n", "b"})
}

func TestO200kCaseBoundarySplitsWord(t *testing.T) {
	// o200k's word alternatives are case-sequence sensitive: a letter run
	// splits at each point a lowercase run is followed by another uppercase
	// letter, unlike cl100k/legacy's single maximal \p{L}+ run.
	assertSpans(t, O200k, "HiWorld", []string{"Hi", "World"})
	assertSpans(t, O200k, "getValue", []string{"get", "Value"})
}

func TestO200kAcronymPrefixStaysWithFollowingWord(t *testing.T) {
	// A run of uppercase letters immediately followed by a lowercase run is
	// absorbed whole by the first alternative's greedy Lu*, same as real
	// tiktoken's o200k pattern does for acronym-prefixed words.
	assertSpans(t, O200k, "HTMLParser", []string{"HTMLParser"})
}

func TestO200kAllCapsHasNoSplit(t *testing.T) {
	assertSpans(t, O200k, "ABC", []string{"ABC"})
}

func TestO200kContractionIsEmbeddedInWord(t *testing.T) {
	// Unlike cl100k, o200k has no standalone leading-contraction
	// alternative: the suffix is optional and attached to the word match.
	assertSpans(t, O200k, "don't", []string{"don't"})
}

func TestO200kPunctuationAbsorbsTrailingSlash(t *testing.T) {
	// o200k's punctuation alternative's trailing class is [\r\n/]*, unlike
	// cl100k's [\r\n]*: a '/' that follows a newline the punctuation run
	// already stopped at gets pulled back in.
	assertSpans(t, O200k, "!!\n/a", []string{"!!\n/", "a"})
}

func TestCl100kPunctuationAbsorbsTrailingNewline(t *testing.T) {
	assertSpans(t, Cl100k, "!!\n\nabc", []string{"!!\n\n", "abc"})
}

func TestLegacyPunctuationDoesNotAbsorbTrailingNewline(t *testing.T) {
	assertSpans(t, Legacy, "!!\n\nabc", []string{"!!", "\n\n", "abc"})
}

func TestCl100kSinglePunctuationPrefixAbsorbedByWord(t *testing.T) {
	// cl100k's word alternative has a one-byte `[^\r\n\p{L}\p{N}]?` prefix,
	// so a single punctuation byte directly touching a following letter run
	// is glued onto it rather than becoming its own span; a run of two or
	// more is not (the prefix only has room for one byte).
	assertSpans(t, Cl100k, "a!b", []string{"a", "!b"})
	assertSpans(t, Cl100k, "a!!b", []string{"a", "!!", "b"})
}

func TestO200kSinglePunctuationPrefixAbsorbedByWord(t *testing.T) {
	assertSpans(t, O200k, "a!b", []string{"a", "!b"})
	assertSpans(t, O200k, "a!!b", []string{"a", "!!", "b"})
}

func TestLegacyPunctuationPrefixNeverAbsorbedByWord(t *testing.T) {
	// legacy's word alternative's prefix is a literal space, not any
	// punctuation byte.
	assertSpans(t, Legacy, "a!b", []string{"a", "!", "b"})
}

func TestCl100kSpaceThenPunctuationDoesNotMergeWithWord(t *testing.T) {
	// A single preceding ASCII space defers to the punctuation
	// alternative's own leading-space absorption rather than the word
	// alternative's prefix, so the punctuation (plus the stolen space)
	// stays its own span and the following word does not merge into it.
	assertSpans(t, Cl100k, "a !b", []string{"a", " !", "b"})
	assertSpans(t, Cl100k, "a   !b", []string{"a", "  ", " !", "b"})
}

func TestCl100kTabThenPunctuationStillMergesWithWord(t *testing.T) {
	// A tab has no competing absorption (the punctuation alternative's
	// prefix is a plain space, not \s), so it becomes its own whitespace
	// span and the punctuation+word merge still applies after it.
	assertSpans(t, Cl100k, "a\t!b", []string{"a", "\t", "!b"})
}

func TestEmptyInput(t *testing.T) {
	assertSpans(t, Cl100k, "", nil)
}

func TestSpansCoverWholeInput(t *testing.T) {
	// Every input byte maps to some span, so the last span ends at the
	// end of the input (here "a!b" scans as "a", "!b").
	got := Spans(Cl100k, []byte("a!b"))
	if len(got) == 0 {
		t.Fatalf("expected at least one span")
	}
	last := got[len(got)-1]
	if last.End != 3 {
		t.Fatalf("spans do not cover the whole input: last end = %d", last.End)
	}
}

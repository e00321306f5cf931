// Command example is a minimal demonstration of the tiktoken library API,
// independent of the cobra-based tokenizer CLI in cmd/tokenizer.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/agentstation/tiktoken"
)

func main() {
	var (
		model       = flag.String("model", "cl100k_base", "model name")
		vocabPath   = flag.String("vocab", "", "path to a base64-token vocabulary file")
		text        = flag.String("text", "", "text to tokenize")
		decode      = flag.String("decode", "", "comma-separated token IDs to decode")
		interactive = flag.Bool("i", false, "interactive mode")
		verbose     = flag.Bool("v", false, "verbose output")
	)
	flag.Parse()

	if *vocabPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -vocab is required")
		os.Exit(1)
	}

	entries, err := tiktoken.LoadVocabEntriesFile(*vocabPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading vocabulary: %v\n", err)
		os.Exit(1)
	}
	tok, err := tiktoken.NewForModel(*model, entries, tiktoken.DeriveMerges(entries))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating tokenizer: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Tokenizer loaded. Vocabulary size: %d\n", tok.Vocabulary().Size())
	}

	if *decode != "" {
		tokens := parseTokens(*decode)
		fmt.Println(string(tok.Decode(tokens)))
		return
	}

	if *interactive {
		runInteractive(tok, *verbose)
		return
	}

	if *text != "" {
		tokens := tok.Encode(*text)
		if *verbose {
			fmt.Printf("Text: %s\n", *text)
			fmt.Printf("Tokens (%d): %v\n", len(tokens), tokens)
			fmt.Printf("Decoded: %s\n", tok.Decode(tokens))
		} else {
			fmt.Println(formatTokens(tokens))
		}
		return
	}

	flag.Usage()
}

func runInteractive(tok *tiktoken.Tokenizer, verbose bool) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("tiktoken interactive mode")
	fmt.Println("Type 'quit' to exit")
	fmt.Println()

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := scanner.Text()
		if line == "quit" || line == "exit" {
			break
		}

		if strings.HasPrefix(line, "decode ") {
			tokens := parseTokens(strings.TrimPrefix(line, "decode "))
			fmt.Printf("Decoded: %s\n", tok.Decode(tokens))
			continue
		}

		tokens := tok.Encode(line)
		if verbose {
			fmt.Printf("Tokens (%d): %v\n", len(tokens), tokens)
			fmt.Printf("Decoded: %s\n", tok.Decode(tokens))
		} else {
			fmt.Println(formatTokens(tokens))
		}
	}
}

func parseTokens(s string) []tiktoken.TokenID {
	parts := strings.Split(s, ",")
	tokens := make([]tiktoken.TokenID, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if v, err := strconv.ParseUint(part, 10, 32); err == nil {
			tokens = append(tokens, tiktoken.TokenID(v))
		}
	}
	return tokens
}

func formatTokens(tokens []tiktoken.TokenID) string {
	strs := make([]string, len(tokens))
	for i, t := range tokens {
		strs[i] = strconv.FormatUint(uint64(t), 10)
	}
	return strings.Join(strs, ", ")
}

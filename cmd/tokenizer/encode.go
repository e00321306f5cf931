package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	encModel  string
	encVocab  string
	encOutput string
	encCount  bool
)

func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [text]",
		Short: "Encode text to token IDs",
		Long: `Encode text into token IDs using a tiktoken-compatible vocabulary.

If no text is provided as an argument, reads from stdin.`,
		Example: `  tokenizer encode --model cl100k_base --vocab cl100k_base.tiktoken "Hello, world!"
  echo "Hello, world!" | tokenizer encode --model cl100k_base --vocab cl100k_base.tiktoken
  tokenizer encode --model cl100k_base --vocab cl100k_base.tiktoken --output json "Hello"`,
		RunE: runEncode,
	}

	cmd.Flags().StringVar(&encModel, "model", "", "model name (required)")
	cmd.Flags().StringVar(&encVocab, "vocab", "", "path to a base64-token vocabulary file (required)")
	cmd.Flags().StringVarP(&encOutput, "output", "o", "space", "output format: space, newline, json")
	cmd.Flags().BoolVar(&encCount, "count", false, "show token count with output")
	cmd.MarkFlagRequired("model")
	cmd.MarkFlagRequired("vocab")

	return cmd
}

func runEncode(_ *cobra.Command, args []string) error {
	tok, err := loadTokenizer(encModel, encVocab)
	if err != nil {
		return err
	}

	var text string
	if len(args) > 0 {
		text = strings.Join(args, " ")
	} else {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(raw)
	}

	tokens := tok.Encode(text)

	switch encOutput {
	case "json":
		output := map[string]any{"tokens": tokens}
		if encCount {
			output["count"] = len(tokens)
		}
		data, err := json.Marshal(output)
		if err != nil {
			return fmt.Errorf("marshal output: %w", err)
		}
		fmt.Println(string(data))
	case "newline":
		if encCount {
			fmt.Printf("count: %d\n", len(tokens))
		}
		for _, t := range tokens {
			fmt.Println(t)
		}
	case "space":
		if encCount {
			fmt.Printf("count: %d\n", len(tokens))
		}
		for i, t := range tokens {
			if i > 0 {
				fmt.Print(" ")
			}
			fmt.Print(t)
		}
		fmt.Println()
	default:
		return fmt.Errorf("unknown output format: %s", encOutput)
	}
	return nil
}

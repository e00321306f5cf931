package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	decModel string
	decVocab string
)

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [token...]",
		Short: "Decode token IDs to text",
		Long:  `Decode a sequence of decimal token IDs back into text.`,
		Example: `  tokenizer decode --model cl100k_base --vocab cl100k_base.tiktoken 9906 11 1917
  tokenizer decode --model cl100k_base --vocab cl100k_base.tiktoken 9906 11 1917 --bytes`,
		Args: cobra.MinimumNArgs(1),
		RunE: runDecode,
	}

	cmd.Flags().StringVar(&decModel, "model", "", "model name (required)")
	cmd.Flags().StringVar(&decVocab, "vocab", "", "path to a base64-token vocabulary file (required)")
	cmd.Flags().Bool("bytes", false, "emit raw bytes even if the result is not valid UTF-8")
	cmd.MarkFlagRequired("model")
	cmd.MarkFlagRequired("vocab")

	return cmd
}

func runDecode(cmd *cobra.Command, args []string) error {
	tok, err := loadTokenizer(decModel, decVocab)
	if err != nil {
		return err
	}

	tokens := make([]uint32, len(args))
	for i, a := range args {
		v, err := strconv.ParseUint(a, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid token id %q: %w", a, err)
		}
		tokens[i] = uint32(v)
	}

	asBytes, _ := cmd.Flags().GetBool("bytes")
	if asBytes {
		os.Stdout.Write(tok.Decode(tokens))
		return nil
	}

	text, err := tok.DecodeToString(tokens)
	if err != nil {
		return fmt.Errorf("decode: %w (use --bytes to bypass UTF-8 validation)", err)
	}
	fmt.Println(text)
	return nil
}

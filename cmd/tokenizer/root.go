package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
// The core library exposes no CLI of its own (spec.md §6.3: "The core
// exposes a library API, not a CLI"); this binary is one of the tool
// front-ends the spec treats as an external collaborator, built only on
// the public github.com/agentstation/tiktoken API.
var rootCmd = &cobra.Command{
	Use:   "tokenizer",
	Short: "A tiktoken-compatible BPE tokenizer CLI",
	Long: `tokenizer encodes and decodes text against tiktoken-compatible BPE
vocabularies (r50k_base, p50k_base, p50k_edit, cl100k_base, o200k_base,
o200k_harmony).

Available commands:
  encode       Convert text to token IDs
  decode       Convert token IDs back to text
  list-models  List registered model names
  info         Display a model's pattern and special tokens`,
	Example: `  # Encode text against cl100k_base
  tokenizer encode --model cl100k_base --vocab cl100k_base.tiktoken "Hello, world!"

  # Decode tokens back to text
  tokenizer decode --model cl100k_base --vocab cl100k_base.tiktoken 9906 11 1917

  # List known models
  tokenizer list-models`,
	SilenceUsage: true,
}

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tokenizer version %s\n", version)
		if commit != "none" {
			fmt.Printf("  commit:     %s\n", commit)
		}
		if buildDate != "unknown" {
			fmt.Printf("  built:      %s\n", buildDate)
		}
		if goVersion != "unknown" {
			fmt.Printf("  go version: %s\n", goVersion)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newEncodeCmd())
	rootCmd.AddCommand(newDecodeCmd())
	rootCmd.AddCommand(newListModelsCmd())
	rootCmd.AddCommand(newInfoCmd())
}

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/agentstation/tiktoken"
)

func newInfoCmd() *cobra.Command {
	var model string
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Display a model's pattern and special tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := tiktoken.LookupModel(model)
			if err != nil {
				return err
			}
			fmt.Printf("model:   %s\n", spec.Name)
			fmt.Printf("pattern: %s\n", spec.Pattern)
			fmt.Printf("dfa:     %v\n", spec.DFA)
			names := make([]string, 0, len(spec.Special))
			for name := range spec.Special {
				names = append(names, name)
			}
			sort.Strings(names)
			fmt.Println("special tokens:")
			for _, name := range names {
				fmt.Printf("  %-16s %d\n", name, spec.Special[name])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&model, "model", "", "model name (required)")
	cmd.MarkFlagRequired("model")
	return cmd
}

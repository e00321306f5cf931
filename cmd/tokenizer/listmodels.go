package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/tiktoken"
)

func newListModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-models",
		Short: "List registered model names",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range tiktoken.ListModels() {
				fmt.Println(name)
			}
			return nil
		},
	}
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/sucre/js/codebase"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := codebase.NewLSPServer(version)
			return server.RunStdio()
		},
	}
}

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

func main() {
	var verbosity int
	var logPath string

	rootCmd := &cobra.Command{
		Use:           "sucre",
		Short:         "A fast JavaScript transpiler that strips TypeScript and Flow types",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var path *string
			if logPath != "" {
				path = &logPath
			}
			commonlog.Configure(verbosity, path)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newTransformCmd())
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newUICmd())

	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

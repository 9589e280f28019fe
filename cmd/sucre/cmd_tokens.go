package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sucre/format"
	"github.com/dhamidi/sucre/js/parser"
	"github.com/dhamidi/sucre/transform"
)

func newTokensCmd() *cobra.Command {
	var transforms []string
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "tokens <file|->",
		Short: "Parse a file and dump its annotated tokens and scopes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			source, err := readSource(filename)
			if err != nil {
				return err
			}
			names, err := resolveTransforms(filename, transforms, cmd.Flags().Changed("transforms"))
			if err != nil {
				return err
			}
			features, err := transform.Features(names)
			if err != nil {
				return err
			}

			file, err := parser.Parse(source, parser.WithFile(filename), parser.WithFeatures(features))
			if err != nil {
				return err
			}

			var encoder format.Encoder
			switch outputFormat {
			case "json":
				encoder = format.NewJSONEncoder(cmd.OutOrStdout())
			case "line":
				encoder = format.NewLineEncoder(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			if err := encoder.Encode(file); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if outputFormat == "json" {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&transforms, "transforms", "t", nil, "syntax extensions to enable (typescript, flow, jsx)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "line", "output format (line, json)")

	return cmd
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sucre/transform"
)

func newTransformCmd() *cobra.Command {
	var transforms []string
	var output string

	cmd := &cobra.Command{
		Use:   "transform <file|->",
		Short: "Transpile one file and print the result",
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

			res, err := transform.Transform(source, transform.Options{
				Transforms: names,
				FilePath:   filename,
			})
			if err != nil {
				return err
			}

			if output == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), res.Code)
				return err
			}
			if err := os.WriteFile(output, []byte(res.Code), 0644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&transforms, "transforms", "t", nil, "transforms to apply (typescript, flow, jsx)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")

	return cmd
}

package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sucre/project"
)

//go:embed init/sucre.toml
var sucreTOMLContent string

//go:embed init/gitignore
var gitignoreContent string

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a sucre.toml project file",
		Long: `Create a sucre.toml project file.

If a directory is provided, creates it and initializes the project there.
Otherwise, initializes in the current directory. An existing project file
is never overwritten.

This command:
  - Creates sucre.toml with src_dir, out_dir and per-extension transforms
  - Creates src/ if it does not exist
  - Creates .gitignore with dist/ and node_modules/ if none exists`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			if err := runInit(dir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized sucre project in %s\n", dir)
			return nil
		},
	}

	return cmd
}

func runInit(dir string) error {
	for _, name := range project.ConfigFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}

	if err := os.MkdirAll(filepath.Join(dir, "src"), 0755); err != nil {
		return fmt.Errorf("create src directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sucre.toml"), []byte(sucreTOMLContent), 0644); err != nil {
		return fmt.Errorf("write sucre.toml: %w", err)
	}

	gitignore := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(gitignore); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(gitignore, []byte(gitignoreContent), 0644); err != nil {
			return fmt.Errorf("write .gitignore: %w", err)
		}
	}

	if _, err := project.LoadFrom(dir); err != nil {
		return fmt.Errorf("check project file: %w", err)
	}
	return nil
}

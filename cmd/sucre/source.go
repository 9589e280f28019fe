package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/sucre/project"
)

// readSource reads path, or standard input when path is "-".
func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(data), nil
}

// resolveTransforms returns the explicit transforms when given, else the
// default transforms for the file extension.
func resolveTransforms(path string, explicit []string, isSet bool) ([]string, error) {
	if isSet {
		return explicit, nil
	}
	if path == "-" {
		return nil, nil
	}
	transforms, ok := (&project.Project{}).TransformsFor(path)
	if !ok {
		return nil, fmt.Errorf("cannot infer transforms for %s; pass --transforms", path)
	}
	return transforms, nil
}

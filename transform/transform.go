package transform

import (
	"fmt"
	"slices"

	"github.com/dhamidi/sucre/js/parser"
)

// Names of the transforms accepted in Options.Transforms.
const (
	TypeScript = "typescript"
	Flow       = "flow"
	JSX        = "jsx"
)

var knownTransforms = []string{TypeScript, Flow, JSX}

type Options struct {
	Transforms []string
	FilePath   string
}

// Result holds transformed code and the parse it was produced from.
type Result struct {
	Code string
	File *parser.File
}

// Features maps transform names to parser syntax extensions.
func Features(transforms []string) (parser.Features, error) {
	var f parser.Features
	for _, name := range transforms {
		switch name {
		case TypeScript:
			f.TypeScript = true
		case Flow:
			f.Flow = true
		case JSX:
			f.JSX = true
		default:
			return f, fmt.Errorf("unknown transform %q (known: %v)", name, knownTransforms)
		}
	}
	if f.TypeScript && f.Flow {
		return f, fmt.Errorf("transforms %q and %q are mutually exclusive", TypeScript, Flow)
	}
	return f, nil
}

// Transform parses source and strips type syntax when typescript or flow
// is enabled. JSX is parsed and passed through unchanged.
func Transform(source string, opts Options) (*Result, error) {
	features, err := Features(opts.Transforms)
	if err != nil {
		return nil, err
	}
	file, err := parser.Parse(source, parser.WithFile(opts.FilePath), parser.WithFeatures(features))
	if err != nil {
		return nil, err
	}

	pass := CopyAll
	if slices.Contains(opts.Transforms, TypeScript) || slices.Contains(opts.Transforms, Flow) {
		pass = EraseTypes
	}
	code, err := Run(source, file.Tokens, pass)
	if err != nil {
		return nil, fmt.Errorf("transform %s: %w", opts.FilePath, err)
	}
	return &Result{Code: code, File: file}, nil
}

package codebase

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/sucre/js/parser"
	"github.com/dhamidi/sucre/project"
	"github.com/dhamidi/sucre/transform"
)

var log = commonlog.GetLogger("sucre.codebase")

// Codebase holds the latest parse of every known source file of a project.
type Codebase struct {
	mu      sync.RWMutex
	project *project.Project
	files   map[string]*FileInfo
}

type FileInfo struct {
	Path       string
	Content    []byte
	Transforms []string
	File       *parser.File
	ParseErr   error
}

// Diagnostic is a syntax error located in a file.
type Diagnostic struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", d.Path, d.Line, d.Column, d.Message)
}

func New(p *project.Project) *Codebase {
	return &Codebase{
		project: p,
		files:   make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.project.SrcDir
}

func (c *Codebase) Project() *project.Project {
	return c.project
}

func (c *Codebase) ScanAll() error {
	files, err := c.project.SourceFiles()
	if err != nil {
		return err
	}
	for _, src := range files {
		if err := c.ScanFile(src.Path); err != nil {
			log.Warningf("scan %s: %s", src.Path, err)
		}
	}
	return nil
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return c.UpdateFile(path, content)
}

// UpdateFile reparses path with content. Paths that are not project sources
// are ignored.
func (c *Codebase) UpdateFile(path string, content []byte) error {
	transforms, ok := c.project.TransformsFor(path)
	if !ok {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.updateFileLocked(path, content, transforms)
}

func (c *Codebase) updateFileLocked(path string, content []byte, transforms []string) error {
	features, err := transform.Features(transforms)
	if err != nil {
		return err
	}
	file, parseErr := parser.Parse(string(content),
		parser.WithFile(filepath.Base(path)),
		parser.WithFeatures(features),
	)
	if parseErr != nil {
		log.Debugf("parse %s: %s", path, parseErr)
	}

	c.files[path] = &FileInfo{
		Path:       path,
		Content:    content,
		Transforms: transforms,
		File:       file,
		ParseErr:   parseErr,
	}
	return nil
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Paths returns the known file paths in sorted order.
func (c *Codebase) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.files))
	for path := range c.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Diagnostics returns the syntax errors of path. A file that parses, or one
// that is unknown, has none.
func (c *Codebase) Diagnostics(path string) []Diagnostic {
	f := c.GetFile(path)
	if f == nil || f.ParseErr == nil {
		return nil
	}

	var se *parser.SyntaxError
	if !errors.As(f.ParseErr, &se) {
		return []Diagnostic{{Path: path, Line: 1, Column: 1, Message: f.ParseErr.Error()}}
	}
	return []Diagnostic{{
		Path:    path,
		Line:    se.Line,
		Column:  se.Column,
		Message: se.Message,
	}}
}

// AllDiagnostics returns the diagnostics of every known file, ordered by path.
func (c *Codebase) AllDiagnostics() []Diagnostic {
	var all []Diagnostic
	for _, path := range c.Paths() {
		all = append(all, c.Diagnostics(path)...)
	}
	return all
}

package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tliron/commonlog"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/sucre/transform"
)

var log = commonlog.GetLogger("sucre.project")

// ConfigFiles lists the project file names Load looks for, in order.
var ConfigFiles = []string{"sucre.toml", "sucre.yaml", "sucre.yml"}

// DefaultExtensions maps source suffixes to the transforms applied when the
// project file does not override them.
var DefaultExtensions = map[string][]string{
	".ts":      {transform.TypeScript},
	".mts":     {transform.TypeScript},
	".cts":     {transform.TypeScript},
	".tsx":     {transform.TypeScript, transform.JSX},
	".jsx":     {transform.JSX},
	".flow.js": {transform.Flow, transform.JSX},
	".js":      {},
	".mjs":     {},
	".cjs":     {},
}

// Config is the content of sucre.toml or sucre.yaml.
type Config struct {
	SrcDir     string              `toml:"src_dir" yaml:"src_dir"`
	OutDir     string              `toml:"out_dir" yaml:"out_dir"`
	Transforms []string            `toml:"transforms" yaml:"transforms"`
	Extensions map[string][]string `toml:"extensions" yaml:"extensions"`
	Exclude    []string            `toml:"exclude" yaml:"exclude"`
}

// Project is a directory of sources transpiled into an output directory.
type Project struct {
	RootDir    string
	SrcDir     string
	OutDir     string
	ConfigFile string
	Config     Config
}

// SourceFile is a file selected for transpiling.
type SourceFile struct {
	Path       string
	RelPath    string
	Transforms []string
}

// Load reads the project in the current directory.
func Load() (*Project, error) {
	return LoadFrom(".")
}

// LoadFrom reads the project file in rootDir. A directory without a project
// file is a project with default settings.
func LoadFrom(rootDir string) (*Project, error) {
	var cfg Config
	var configFile string
	for _, name := range ConfigFiles {
		path := filepath.Join(rootDir, name)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if err := parseConfig(path, data, &cfg); err != nil {
			return nil, err
		}
		configFile = path
		break
	}
	if configFile == "" {
		log.Debugf("no project file in %s, using defaults", rootDir)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configFile, err)
	}

	return &Project{
		RootDir:    rootDir,
		SrcDir:     filepath.Join(rootDir, cfg.SrcDir),
		OutDir:     filepath.Join(rootDir, cfg.OutDir),
		ConfigFile: configFile,
		Config:     cfg,
	}, nil
}

func parseConfig(path string, data []byte, cfg *Config) error {
	switch filepath.Ext(path) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported project file format: %s", path)
	}
	return nil
}

// validate fills in defaults and checks transform names.
func (c *Config) validate() error {
	if c.SrcDir == "" {
		c.SrcDir = "."
	}
	if c.OutDir == "" {
		c.OutDir = "dist"
	}
	if c.Transforms != nil {
		if _, err := transform.Features(c.Transforms); err != nil {
			return fmt.Errorf("transforms: %w", err)
		}
	}
	for ext, names := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extensions: %q must start with a dot", ext)
		}
		if _, err := transform.Features(names); err != nil {
			return fmt.Errorf("extensions %s: %w", ext, err)
		}
	}
	for _, pattern := range c.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("exclude %q: %w", pattern, err)
		}
	}
	return nil
}

// extensions returns the configured suffixes merged over the defaults,
// longest first so ".flow.js" wins over ".js".
func (p *Project) extensions() ([]string, map[string][]string) {
	merged := make(map[string][]string, len(DefaultExtensions)+len(p.Config.Extensions))
	for ext, names := range DefaultExtensions {
		merged[ext] = names
	}
	for ext, names := range p.Config.Extensions {
		merged[ext] = names
	}

	suffixes := make([]string, 0, len(merged))
	for ext := range merged {
		suffixes = append(suffixes, ext)
	}
	sort.Slice(suffixes, func(i, j int) bool {
		if len(suffixes[i]) != len(suffixes[j]) {
			return len(suffixes[i]) > len(suffixes[j])
		}
		return suffixes[i] < suffixes[j]
	})
	return suffixes, merged
}

// TransformsFor reports the transforms for path and whether path is a
// source file at all. Declaration files are never sources.
func (p *Project) TransformsFor(path string) ([]string, bool) {
	if isDeclarationFile(path) {
		return nil, false
	}
	suffixes, merged := p.extensions()
	for _, ext := range suffixes {
		if !strings.HasSuffix(path, ext) {
			continue
		}
		if p.Config.Transforms != nil {
			return p.Config.Transforms, true
		}
		return merged[ext], true
	}
	return nil, false
}

func isDeclarationFile(path string) bool {
	base := filepath.Base(path)
	for _, ext := range []string{".d.ts", ".d.mts", ".d.cts"} {
		if strings.HasSuffix(base, ext) {
			return true
		}
	}
	return false
}

// SourceFiles walks SrcDir and returns the files to transpile, sorted by
// path. Dot directories, node_modules, OutDir and excluded paths are skipped.
func (p *Project) SourceFiles() ([]SourceFile, error) {
	outDir, err := filepath.Abs(p.OutDir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", p.OutDir, err)
	}

	var files []SourceFile
	err = filepath.WalkDir(p.SrcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(p.SrcDir, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == p.SrcDir {
				return nil
			}
			if p.skipDir(path, outDir, d.Name()) || p.Excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if src, ok := p.SourceFile(path); ok {
			files = append(files, src)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan sources in %s: %w", p.SrcDir, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

// SourceFile describes path as a source of the project. It reports false
// for paths outside SrcDir, excluded paths and non-source files.
func (p *Project) SourceFile(path string) (SourceFile, bool) {
	rel, err := filepath.Rel(p.SrcDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return SourceFile{}, false
	}
	if p.Excluded(rel) {
		return SourceFile{}, false
	}
	transforms, ok := p.TransformsFor(path)
	if !ok {
		return SourceFile{}, false
	}
	return SourceFile{
		Path:       path,
		RelPath:    rel,
		Transforms: slices.Clone(transforms),
	}, true
}

func (p *Project) skipDir(path, outDir, name string) bool {
	if strings.HasPrefix(name, ".") || name == "node_modules" {
		return true
	}
	abs, err := filepath.Abs(path)
	return err == nil && abs == outDir
}

// Excluded reports whether rel, a slash or OS separated path relative to
// SrcDir, matches an exclude pattern by full path or by base name.
func (p *Project) Excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	base := filepath.Base(rel)
	for _, pattern := range p.Config.Exclude {
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// OutputPath maps a source file to its location under OutDir. TypeScript,
// JSX and Flow suffixes become .js; module suffixes keep their kind.
func (p *Project) OutputPath(src SourceFile) string {
	return filepath.Join(p.OutDir, outputName(src.RelPath))
}

func outputName(rel string) string {
	replacements := []struct{ from, to string }{
		{".flow.js", ".js"},
		{".tsx", ".js"},
		{".jsx", ".js"},
		{".mts", ".mjs"},
		{".cts", ".cjs"},
		{".ts", ".js"},
	}
	for _, r := range replacements {
		if strings.HasSuffix(rel, r.from) {
			return strings.TrimSuffix(rel, r.from) + r.to
		}
	}
	return rel
}

// Transpile transforms one source file and writes the result to its
// output path.
func (p *Project) Transpile(src SourceFile) error {
	data, err := os.ReadFile(src.Path)
	if err != nil {
		return fmt.Errorf("read %s: %w", src.Path, err)
	}

	res, err := transform.Transform(string(data), transform.Options{
		Transforms: src.Transforms,
		FilePath:   src.Path,
	})
	if err != nil {
		return err
	}

	out := p.OutputPath(src)
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(out), err)
	}
	if err := os.WriteFile(out, []byte(res.Code), 0644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	log.Debugf("wrote %s", out)
	return nil
}

// Build transpiles every source file. It keeps going after a failure and
// returns one error per failed file.
func (p *Project) Build() (int, []error) {
	files, err := p.SourceFiles()
	if err != nil {
		return 0, []error{err}
	}

	var errs []error
	built := 0
	for _, src := range files {
		if err := p.Transpile(src); err != nil {
			errs = append(errs, err)
			continue
		}
		built++
	}
	log.Infof("built %d of %d files into %s", built, len(files), p.OutDir)
	return built, errs
}

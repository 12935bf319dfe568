package tokens

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Default locations relative to the project root.
const (
	DefaultBasePath       = "design-system/tokens/base.tokens.json"
	DefaultAliasesPath    = "design-system/tokens/aliases.tokens.json"
	DefaultTypographyPath = "design-system/tokens/typography.tokens.json"
	DefaultOutputPath     = "design-system/generated/tokens.css"
)

// Paths locates the token inputs and the generated stylesheet.
type Paths struct {
	Root       string
	Base       string
	Aliases    string
	Typography string
	Output     string
}

// DefaultPaths returns the standard layout under root.
func DefaultPaths(root string) Paths {
	return Paths{
		Root:       root,
		Base:       filepath.Join(root, DefaultBasePath),
		Aliases:    filepath.Join(root, DefaultAliasesPath),
		Typography: filepath.Join(root, DefaultTypographyPath),
		Output:     filepath.Join(root, DefaultOutputPath),
	}
}

// Rel returns path relative to Root when possible.
func (p Paths) Rel(path string) string {
	if p.Root == "" {
		return path
	}
	rel, err := filepath.Rel(p.Root, path)
	if err != nil {
		return path
	}
	return rel
}

// SyncReport describes a completed sync.
type SyncReport struct {
	Output string
	Result *Result
}

// Pipeline reads the token files, compiles them, and writes the stylesheet.
type Pipeline struct {
	paths  Paths
	opts   Options
	logger zerolog.Logger
}

// NewPipeline creates a pipeline over the given paths.
func NewPipeline(paths Paths, opts Options, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		paths:  paths,
		opts:   opts,
		logger: logger,
	}
}

// Paths returns the pipeline's file locations.
func (p *Pipeline) Paths() Paths {
	return p.paths
}

// Load reads all three token documents. Every missing input is reported
// before any file is parsed.
func (p *Pipeline) Load() (*Set, error) {
	inputs := []struct {
		layer Layer
		path  string
	}{
		{LayerBase, p.paths.Base},
		{LayerAlias, p.paths.Aliases},
		{LayerTypography, p.paths.Typography},
	}

	var missing []string
	for _, in := range inputs {
		if _, err := os.Stat(in.path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				missing = append(missing, in.path)
				continue
			}
			return nil, fmt.Errorf("stat %s: %w", in.path, err)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingInputError{Paths: missing}
	}

	docs := make([]*Document, len(inputs))
	for i, in := range inputs {
		doc, err := LoadDocument(in.layer, in.path)
		if err != nil {
			return nil, err
		}
		docs[i] = doc
	}

	p.logger.Debug().
		Int("base", docs[0].Len()).
		Int("alias", docs[1].Len()).
		Int("typography", docs[2].Len()).
		Msg("loaded token documents")

	return &Set{Base: docs[0], Alias: docs[1], Typography: docs[2]}, nil
}

// Check loads and compiles without writing anything.
func (p *Pipeline) Check() (*Result, error) {
	set, err := p.Load()
	if err != nil {
		return nil, err
	}
	result, err := Compile(set, p.opts)
	if err != nil {
		return nil, err
	}
	p.logWarnings(result.Warnings)
	return result, nil
}

// Sync compiles the tokens and replaces the output file. Nothing is
// written when loading or validation fails.
func (p *Pipeline) Sync() (*SyncReport, error) {
	result, err := p.Check()
	if err != nil {
		return nil, err
	}

	if err := writeFileAtomic(p.paths.Output, []byte(result.CSS)); err != nil {
		return nil, err
	}

	p.logger.Debug().
		Str("output", p.paths.Output).
		Int("bytes", len(result.CSS)).
		Msg("wrote token stylesheet")

	return &SyncReport{
		Output: p.paths.Rel(p.paths.Output),
		Result: result,
	}, nil
}

func (p *Pipeline) logWarnings(warnings []Warning) {
	for _, w := range warnings {
		p.logger.Warn().
			Str("layer", string(w.Layer)).
			Str("path", w.Path).
			Str("value", w.Value).
			Msg(w.Message)
	}
}

// writeFileAtomic writes data to a temp file beside path and renames it
// into place, creating the parent directory if needed.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Package codegen resolves a metadata type registry into a declaration tree
// and renders that tree as Rust source or JSON.
//
// TypeGenerator and RuntimeGenerator build the tree; Generate wraps them with
// snapshot loading, validation and output.
package codegen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/broady/scalegen"
	"github.com/broady/scalegen/codegen/ir"
	"github.com/broady/scalegen/codegen/rust"
	"github.com/broady/scalegen/codegen/sink"
	"github.com/broady/scalegen/metadata"
)

// Renderer turns a declaration tree into the content of one output file.
// Implementations must not modify the tree; several renderers read it concurrently.
type Renderer interface {
	// Name returns the format identifier (e.g. "rust").
	Name() string

	// FileName returns the output path for a tree rooted at root.
	FileName(root *ir.Namespace) string

	// Render produces the file content.
	Render(root *ir.Namespace) ([]byte, error)
}

// GenerateResult describes a completed run.
type GenerateResult struct {
	// Tree is the generated declaration tree.
	Tree *ir.Namespace

	// Files lists rendered files in format order.
	Files []OutputFile

	// Declarations is the number of struct and enum declarations in Tree.
	Declarations int

	// Modules is the number of modules in the descriptor.
	Modules int
}

// OutputFile is one rendered file.
type OutputFile struct {
	Path    string
	Format  string
	Size    int64
	Content []byte
}

// Generate loads, validates and generates the descriptor once, then renders
// every configured format concurrently into the output sink.
func Generate(ctx context.Context, cfg *Config) (*GenerateResult, error) {
	cfg = applyConfigDefaults(cfg)
	logger := cfg.Logger

	renderers, err := Renderers(cfg)
	if err != nil {
		return nil, err
	}

	p, err := loadMetadata(cfg)
	if err != nil {
		return nil, err
	}
	if !cfg.SkipValidation {
		if err := metadata.Validate(p); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	gen, err := NewRuntimeGenerator(p, WithLogger(logger))
	if err != nil {
		return nil, err
	}
	root, err := gen.Generate(cfg.RootNamespace)
	if err != nil {
		return nil, err
	}

	out := cfg.Sink
	if out == nil {
		if cfg.OutDir != "" {
			out = sink.NewFilesystemSink(cfg.OutDir)
		} else {
			out = sink.NewMemorySink()
		}
	}

	files := make([]OutputFile, len(renderers))
	g, gctx := errgroup.WithContext(ctx)
	for i, r := range renderers {
		g.Go(func() error {
			content, err := r.Render(root)
			if err != nil {
				return fmt.Errorf("render %s: %w", r.Name(), err)
			}
			path := r.FileName(root)
			if err := out.WriteFile(gctx, path, content); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			files[i] = OutputFile{
				Path:    path,
				Format:  r.Name(),
				Size:    int64(len(content)),
				Content: content,
			}
			logger.Debug("wrote output", slog.String("path", path), slog.Int("bytes", len(content)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &GenerateResult{
		Tree:         root,
		Files:        files,
		Declarations: root.CountDecls(),
		Modules:      len(p.V13.Modules),
	}
	logger.Debug("generation complete",
		slog.String("root", cfg.RootNamespace),
		slog.Int("declarations", result.Declarations),
		slog.Int("files", len(files)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

// Renderers returns the renderers for cfg.Formats, in order.
func Renderers(cfg *Config) ([]Renderer, error) {
	cfg = applyConfigDefaults(cfg)
	seen := make(map[string]bool, len(cfg.Formats))
	var out []Renderer
	for _, f := range cfg.Formats {
		if seen[f] {
			continue
		}
		seen[f] = true
		switch f {
		case FormatRust:
			rc := rust.DefaultConfig()
			rc.EmitComments = *cfg.EmitComments
			rc.IndentSize = cfg.IndentSize
			out = append(out, rust.New(rc))
		case FormatJSON:
			out = append(out, jsonRenderer{})
		default:
			return nil, fmt.Errorf("unknown format %q (expected %q or %q)", f, FormatRust, FormatJSON)
		}
	}
	return out, nil
}

func loadMetadata(cfg *Config) (*metadata.Prefixed, error) {
	if cfg.Metadata != nil {
		return cfg.Metadata, nil
	}
	if cfg.Input == "" {
		return nil, scalegen.NewError(scalegen.CodeInvalidMetadata, "no metadata input given")
	}
	return metadata.ReadFile(cfg.Input)
}

// jsonRenderer writes the declaration tree itself as indented JSON.
type jsonRenderer struct{}

func (jsonRenderer) Name() string { return FormatJSON }

func (jsonRenderer) FileName(root *ir.Namespace) string { return root.Name + ".json" }

func (jsonRenderer) Render(root *ir.Namespace) ([]byte, error) {
	data, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

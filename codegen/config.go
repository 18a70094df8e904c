package codegen

import (
	"context"
	"log/slog"

	"github.com/broady/scalegen/codegen/sink"
	"github.com/broady/scalegen/metadata"
)

// Output formats understood by Generate.
const (
	FormatRust = "rust"
	FormatJSON = "json"
)

// Config holds the configuration for a generation run.
type Config struct {
	// Input is the path of a metadata snapshot (.json, .msgpack or .mpk).
	// Ignored when Metadata is set.
	Input string

	// Metadata is an already decoded descriptor.
	Metadata *metadata.Prefixed

	// OutDir is the directory rendered files are written to.
	// When empty and Sink is nil, files are kept in memory and returned in the result.
	OutDir string

	// Sink overrides OutDir as the output destination.
	Sink sink.OutputSink

	// RootNamespace names the outermost namespace and the output files.
	// Default: "runtime"
	RootNamespace string

	// Formats lists the renderers to run: "rust", "json".
	// Default: ["rust"]
	Formats []string

	// EmitComments controls whether documentation is rendered.
	// Default: true
	EmitComments *bool

	// IndentSize is the number of spaces per indentation level in Rust output.
	// Default: 4
	IndentSize int

	// SkipValidation disables metadata.Validate before generation.
	SkipValidation bool

	// Logger receives debug output. Default: slog.Default()
	Logger *slog.Logger
}

// applyConfigDefaults returns a copy of cfg with defaults filled in.
func applyConfigDefaults(cfg *Config) *Config {
	result := *cfg

	if result.RootNamespace == "" {
		result.RootNamespace = "runtime"
	}
	if len(result.Formats) == 0 {
		result.Formats = []string{FormatRust}
	}
	if result.EmitComments == nil {
		emit := true
		result.EmitComments = &emit
	}
	if result.IndentSize <= 0 {
		result.IndentSize = 4
	}
	if result.Logger == nil {
		result.Logger = slog.Default()
	}

	return &result
}

// Generator provides a fluent API over Config.
//
// Example:
//
//	res, err := codegen.FromFile("metadata.json").
//	    RootNamespace("polkadot").
//	    WithFormat(codegen.FormatRust, codegen.FormatJSON).
//	    ToDir(ctx, "./gen")
type Generator struct {
	cfg Config
}

// FromFile starts a Generator reading the snapshot at path.
func FromFile(path string) *Generator {
	return &Generator{cfg: Config{Input: path}}
}

// FromMetadata starts a Generator over an already decoded descriptor.
func FromMetadata(p *metadata.Prefixed) *Generator {
	return &Generator{cfg: Config{Metadata: p}}
}

// RootNamespace sets the outermost namespace name.
func (g *Generator) RootNamespace(name string) *Generator {
	g.cfg.RootNamespace = name
	return g
}

// WithFormat adds output formats. Can be called multiple times.
func (g *Generator) WithFormat(formats ...string) *Generator {
	g.cfg.Formats = append(g.cfg.Formats, formats...)
	return g
}

// EmitComments controls whether documentation is rendered.
func (g *Generator) EmitComments(emit bool) *Generator {
	g.cfg.EmitComments = &emit
	return g
}

// IndentSize sets the Rust indentation width.
func (g *Generator) IndentSize(n int) *Generator {
	g.cfg.IndentSize = n
	return g
}

// SkipValidation disables descriptor validation.
func (g *Generator) SkipValidation() *Generator {
	g.cfg.SkipValidation = true
	return g
}

// WithLogger sets the logger for the run.
func (g *Generator) WithLogger(logger *slog.Logger) *Generator {
	g.cfg.Logger = logger
	return g
}

// ToDir writes rendered files below dir.
func (g *Generator) ToDir(ctx context.Context, dir string) (*GenerateResult, error) {
	cfg := g.cfg
	cfg.OutDir = dir
	return Generate(ctx, &cfg)
}

// Generate renders in memory. The returned files carry their content.
func (g *Generator) Generate(ctx context.Context) (*GenerateResult, error) {
	cfg := g.cfg
	cfg.OutDir = ""
	return Generate(ctx, &cfg)
}

// Package config loads scalegen.toml and merges it with command-line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/broady/scalegen/codegen"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "scalegen.toml"

// File is the decoded scalegen.toml.
//
//	[generate]
//	input = "metadata.json"
//	out_dir = "gen"
//	root = "polkadot"
//	formats = ["rust", "json"]
//	emit_comments = true
//	indent_size = 4
type File struct {
	Generate Generate `toml:"generate"`
}

// Generate holds the [generate] table.
type Generate struct {
	Input        string   `toml:"input"`
	OutDir       string   `toml:"out_dir"`
	Root         string   `toml:"root"`
	Formats      []string `toml:"formats"`
	EmitComments *bool    `toml:"emit_comments"`
	IndentSize   int      `toml:"indent_size"`
}

// Load reads the config file at path. A missing file is not an error when
// required is false; an empty File is returned instead.
// Unknown keys are rejected.
func Load(path string, required bool) (*File, error) {
	f := &File{}
	md, err := toml.DecodeFile(path, f)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return f, nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return nil, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return f, nil
}

// Globals is bound into every command's Run method.
type Globals struct {
	Logger *slog.Logger
	File   *File
	Stdout io.Writer
	Stderr io.Writer
}

// NewGlobals builds Globals writing to the process's standard streams.
// The logger writes text records to stderr at Info, or Debug when verbose.
func NewGlobals(file *File, verbose bool) *Globals {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return &Globals{
		Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
		File:   file,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Flags are the generation options shared by gen, check, dump and serve.
// Zero values fall back to the config file, then to codegen defaults.
type Flags struct {
	Input          string   `arg:"" optional:"" help:"Metadata snapshot (.json, .msgpack or .mpk)." type:"path"`
	Root           string   `help:"Name of the root namespace and output files." short:"r"`
	Format         []string `help:"Output formats (rust, json)." short:"f"`
	NoComments     bool     `help:"Omit documentation comments."`
	Indent         int      `help:"Spaces per indentation level in Rust output."`
	SkipValidation bool     `help:"Do not validate the metadata before generating."`
}

// Config merges the flags over file and returns a codegen configuration.
// The output directory is left to the caller.
func (f *Flags) Config(file *File, logger *slog.Logger) *codegen.Config {
	var g Generate
	if file != nil {
		g = file.Generate
	}

	cfg := &codegen.Config{
		Input:          first(f.Input, g.Input),
		RootNamespace:  first(f.Root, g.Root),
		Formats:        g.Formats,
		EmitComments:   g.EmitComments,
		IndentSize:     g.IndentSize,
		SkipValidation: f.SkipValidation,
		Logger:         logger,
	}
	if len(f.Format) > 0 {
		cfg.Formats = f.Format
	}
	if f.NoComments {
		emit := false
		cfg.EmitComments = &emit
	}
	if f.Indent > 0 {
		cfg.IndentSize = f.Indent
	}
	return cfg
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

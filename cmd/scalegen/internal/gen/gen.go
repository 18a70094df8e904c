package gen

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/broady/scalegen/cmd/scalegen/internal/config"
	"github.com/broady/scalegen/codegen"
	"github.com/broady/scalegen/codegen/sink"
)

var errNoOutDir = errors.New("no output directory: pass --out or set out_dir in [generate]")

type Cmd struct {
	Flags     config.Flags `embed:""`
	Out       string       `help:"Output directory for generated files." short:"o" type:"path"`
	NoClobber bool         `help:"Fail instead of replacing existing files."`
}

func (c *Cmd) Run(g *config.Globals) error {
	cfg := c.Flags.Config(g.File, g.Logger)

	outDir := c.Out
	if outDir == "" && g.File != nil {
		outDir = g.File.Generate.OutDir
	}
	if outDir == "" {
		return errNoOutDir
	}
	out := sink.NewFilesystemSink(outDir)
	out.Overwrite = !c.NoClobber
	cfg.Sink = out

	res, err := codegen.Generate(context.Background(), cfg)
	if err != nil {
		return err
	}

	ok := color.New(color.FgGreen)
	for _, f := range res.Files {
		ok.Fprint(g.Stdout, "✓ ")
		fmt.Fprintf(g.Stdout, "Wrote %s (%d bytes)\n", filepath.Join(outDir, f.Path), f.Size)
	}
	ok.Fprint(g.Stdout, "✓ ")
	fmt.Fprintf(g.Stdout, "%d modules, %d declarations\n", res.Modules, res.Declarations)
	return nil
}

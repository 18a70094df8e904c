package dump

import (
	"context"

	"github.com/broady/scalegen/cmd/scalegen/internal/config"
	"github.com/broady/scalegen/codegen"
)

// Cmd prints the declaration tree as JSON. Format flags are ignored.
type Cmd struct {
	Flags config.Flags `embed:""`
}

func (c *Cmd) Run(g *config.Globals) error {
	cfg := c.Flags.Config(g.File, g.Logger)
	cfg.Formats = []string{codegen.FormatJSON}

	res, err := codegen.Generate(context.Background(), cfg)
	if err != nil {
		return err
	}
	_, err = g.Stdout.Write(res.Files[0].Content)
	return err
}

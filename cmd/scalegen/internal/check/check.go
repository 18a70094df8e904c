package check

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/broady/scalegen"
	"github.com/broady/scalegen/cmd/scalegen/internal/config"
	"github.com/broady/scalegen/codegen"
	"github.com/broady/scalegen/metadata"
)

type Cmd struct {
	Flags config.Flags `embed:""`
}

func (c *Cmd) Run(g *config.Globals) error {
	cfg := c.Flags.Config(g.File, g.Logger)
	if cfg.Input == "" {
		return scalegen.NewError(scalegen.CodeInvalidMetadata, "no metadata input given")
	}

	p, err := metadata.ReadFile(cfg.Input)
	if err != nil {
		return err
	}
	ok := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(g.Stdout, "%s Decoded %s: version %d\n", ok("✓"), cfg.Input, p.Version)
	if p.V13 != nil {
		fmt.Fprintf(g.Stdout, "%s %d types, %d modules\n", ok("✓"), p.V13.Types.Len(), len(p.V13.Modules))
	}

	if cfg.SkipValidation {
		fmt.Fprintf(g.Stdout, "%s Validation skipped\n", color.YellowString("-"))
	} else {
		if err := metadata.Validate(p); err != nil {
			return err
		}
		fmt.Fprintf(g.Stdout, "%s Metadata valid\n", ok("✓"))
		cfg.SkipValidation = true
	}

	cfg.Metadata = p
	res, err := codegen.Generate(context.Background(), cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(g.Stdout, "%s %d declarations\n", ok("✓"), res.Declarations)
	fmt.Fprintf(g.Stdout, "%s All types resolvable\n", ok("✓"))
	return nil
}

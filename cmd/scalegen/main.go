package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/broady/scalegen"
	"github.com/broady/scalegen/cmd/scalegen/internal/check"
	"github.com/broady/scalegen/cmd/scalegen/internal/config"
	"github.com/broady/scalegen/cmd/scalegen/internal/dump"
	"github.com/broady/scalegen/cmd/scalegen/internal/gen"
	"github.com/broady/scalegen/cmd/scalegen/internal/serve"
)

type CLI struct {
	Verbose bool   `help:"Log debug output to stderr." short:"v"`
	Config  string `help:"Path to the config file." placeholder:"FILE"`

	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate declarations from a metadata snapshot."`
	Check   check.Cmd  `cmd:"" help:"Decode, validate and resolve a snapshot without writing files."`
	Dump    dump.Cmd   `cmd:"" help:"Print the declaration tree as JSON."`
	Serve   serve.Cmd  `cmd:"" help:"Serve generated output over HTTP."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run(g *config.Globals) error {
	fmt.Fprintln(g.Stdout, Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("scalegen"),
		kong.Description("Generate type declarations from runtime metadata snapshots."),
		kong.UsageOnError(),
	)
	os.Exit(run(ctx, cli))
}

func run(ctx *kong.Context, cli *CLI) int {
	path, required := cli.Config, true
	if path == "" {
		path, required = config.DefaultPath, false
	}
	file, err := config.Load(path, required)
	if err == nil {
		err = ctx.Run(config.NewGlobals(file, cli.Verbose))
	}
	if err != nil {
		color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "error: ")
		fmt.Fprintln(os.Stderr, err)
		return scalegen.CodeOf(err).ExitCode()
	}
	return 0
}

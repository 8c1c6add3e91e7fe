package main

import (
	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/vault2hugo/cmd/vault2hugo/commands"
	"git.home.luguber.info/inful/vault2hugo/internal/errors"
	"git.home.luguber.info/inful/vault2hugo/internal/version"
)

func main() {
	var cli commands.CLI
	global := &commands.Global{}
	ctx := kong.Parse(&cli,
		kong.Name("vault2hugo"),
		kong.Description("Convert an Obsidian vault into Hugo content"),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
		kong.Bind(global),
	)
	err := ctx.Run(global, &cli)
	errors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
}

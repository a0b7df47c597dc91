package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Config  string           `short:"c" default:"railbird.hcl" help:"Path to the HCL config file"`

	Track  TrackCmd  `cmd:"" default:"1" help:"Track a live hand at the table"`
	Export ExportCmd `cmd:"" help:"Export archived hands as PHH files"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("railbird"),
		kong.Description("Live poker hand tracker for the seat you are sitting in"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}

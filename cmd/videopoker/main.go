package main

import (
	"github.com/alecthomas/kong"
	"github.com/pterm/pterm"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config  string `short:"c" help:"Path to HCL config file" default:"videopoker.hcl" env:"VIDEOPOKER_CONFIG"`
	Debug   bool   `help:"Enable debug logging" env:"VIDEOPOKER_DEBUG"`
	NoColor bool   `help:"Disable colour output" env:"VIDEOPOKER_NO_COLOR"`
}

type CLI struct {
	Globals

	Version     kong.VersionFlag `short:"v" help:"Show version"`
	Play        PlayCmd          `cmd:"" default:"1" help:"Play video poker in the terminal"`
	Simulate    SimulateCmd      `cmd:"" help:"Simulate many rounds with a fixed hold strategy"`
	Score       ScoreCmd         `cmd:"" help:"Score a hand against the paytable"`
	VersionInfo VersionCmd       `cmd:"version" help:"Print version information"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("videopoker"),
		kong.Description("Jacks or Better five card draw video poker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	if cli.NoColor || noColorEnv() {
		pterm.DisableColor()
	}
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// VersionCmd prints the build version
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	pterm.Printfln("videopoker %s", version)
	return nil
}

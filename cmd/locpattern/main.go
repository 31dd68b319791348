package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

// Context represents the global context for commands
type Context struct {
	Config    string
	Verbose   bool
	Quiet     bool
	LogFormat string

	Stdout io.Writer
	Stderr io.Writer
}

// CLI represents the command-line interface
var CLI struct {
	Config    string      `help:"Configuration file path" default:"locpattern.yaml"`
	Verbose   bool        `help:"Enable verbose output" short:"v"`
	Quiet     bool        `help:"Suppress output" short:"q"`
	LogFormat string      `help:"Diagnostic log format (text, json)"`
	Expand    ExpandCmd   `cmd:"" help:"Expand location patterns into a tree"`
	Validate  ValidateCmd `cmd:"" help:"Check location patterns without expanding them"`
	Count     CountCmd    `cmd:"" help:"Print how many locations a pattern produces"`
	Version   VersionCmd  `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Fprintln(ctx.Stdout, "locpattern v0.1.0")
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("locpattern"),
		kong.Description("Expand warehouse location patterns such as A{3}, 20{2}*(+-[4])"),
	)

	appCtx := &Context{
		Config:    CLI.Config,
		Verbose:   CLI.Verbose,
		Quiet:     CLI.Quiet,
		LogFormat: CLI.LogFormat,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/synadia-labs/binarycookies.go/cookiejson/core"
)

// CLI defines the cookiejson command-line interface.
//
// The path is the only required argument; everything else selects an
// alternative rendering of the same decoded cookies.
type CLI struct {
	Path    string `arg:"" help:"Path to a Cookies.binarycookies file"`
	Format  string `short:"f" help:"Output format: json, cbor, msgpack, yaml or netscape" default:"json" enum:"json,cbor,msgpack,yaml,netscape"`
	Domain  string `short:"d" help:"Only emit cookies whose domain matches this regular expression"`
	Pretty  bool   `short:"p" help:"Indent JSON output"`
	Output  string `short:"o" help:"Write output to this file instead of stdout"`
	NoMmap  bool   `name:"no-mmap" help:"Read the file instead of memory-mapping it"`
	Verbose bool   `short:"v" help:"Log page and trailer details to stderr"`
}

func main() {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("cookiejson"),
		kong.Description("Decode a Safari binary cookie file and print its cookies as JSON."),
	)
	if err != nil {
		panic(err)
	}

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		parser.Errorf("%s", err)
		os.Exit(core.ExitBadInvocation)
	}

	os.Exit(run(&cli))
}

func run(cli *CLI) int {
	logger := core.NewLogger(os.Stderr, cli.Verbose)

	format, err := core.ParseFormat(cli.Format)
	if err != nil {
		logger.Error("invalid invocation", "error", err)
		return core.ExitBadInvocation
	}

	return core.Run(core.Options{
		Path:   cli.Path,
		Format: format,
		Domain: cli.Domain,
		Pretty: cli.Pretty,
		Output: cli.Output,
		NoMmap: cli.NoMmap,
	}, os.Stdout, logger)
}

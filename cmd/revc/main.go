// revc is the command-line front end of the ReVision compiler. It currently
// exposes the tokenizer: dumping token streams, an interactive token REPL
// and the effective configuration.
package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"gopkg.in/urfave/cli.v1"

	"github.com/revision-lang/revision/internal/config"
	"github.com/revision-lang/revision/internal/diag"
)

var (
	app = cli.NewApp()

	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value: config.Defaults.Driver.Verbosity,
	}
	colorFlag = cli.StringFlag{
		Name:  "color",
		Usage: "Colorize diagnostics: auto, always or never",
		Value: config.Defaults.Diag.Color,
	}
	jobsFlag = cli.IntFlag{
		Name:  "jobs",
		Usage: "Number of files tokenized in parallel",
		Value: config.Defaults.Driver.Jobs,
	}
)

func init() {
	app.Name = "revc"
	app.Usage = "the ReVision compiler front end"
	app.HideVersion = true
	app.Flags = []cli.Flag{
		configFileFlag,
		verbosityFlag,
		colorFlag,
		jobsFlag,
	}
	app.Commands = []cli.Command{
		tokensCommand,
		replCommand,
		dumpConfigCommand,
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// makeConfig loads the configuration file, applies command-line overrides
// and installs the root log handler.
func makeConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Defaults

	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		if err := config.Load(file, &cfg); err != nil {
			return cfg, err
		}
	}

	if ctx.GlobalIsSet(verbosityFlag.Name) {
		cfg.Driver.Verbosity = ctx.GlobalInt(verbosityFlag.Name)
	}
	if ctx.GlobalIsSet(colorFlag.Name) {
		cfg.Diag.Color = ctx.GlobalString(colorFlag.Name)
	}
	if ctx.GlobalIsSet(jobsFlag.Name) {
		cfg.Driver.Jobs = ctx.GlobalInt(jobsFlag.Name)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	setupLogging(cfg)
	return cfg, nil
}

func setupLogging(cfg config.Config) {
	usecolor := false
	switch cfg.ColorMode() {
	case diag.ColorAlways:
		usecolor = true
	case diag.ColorAuto:
		usecolor = (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
	}
	output := colorable.NewColorableStderr()
	if !usecolor {
		output = colorable.NewNonColorable(os.Stderr)
	}
	glogger := log.NewGlogHandler(log.StreamHandler(output, log.TerminalFormat(usecolor)))
	glogger.Verbosity(log.Lvl(cfg.Driver.Verbosity))
	log.Root().SetHandler(glogger)
}

// newReporter returns the stderr diagnostic printer described by cfg and
// its snippet formatter, which is nil when snippets are disabled.
func newReporter(cfg config.Config) (*diag.Printer, *diag.Formatter) {
	p := diag.NewStderrPrinter(cfg.ColorMode())
	if !cfg.Diag.Snippets {
		return p, nil
	}
	f := diag.NewFormatter(nil)
	return p.WithSnippets(f), f
}

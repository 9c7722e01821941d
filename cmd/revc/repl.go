package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	"github.com/revision-lang/revision/internal/lexer"
	"github.com/revision-lang/revision/internal/unit"
)

const (
	replSource      = "<repl>"
	replPrompt      = "revc> "
	replHistoryFile = ".revc_history"
)

var replCommand = cli.Command{
	Action:    repl,
	Name:      "repl",
	Usage:     "Tokenize lines interactively",
	ArgsUsage: "",
	Description: `
The repl command reads source lines from the terminal and prints the tokens of
each line. Every line is scanned in the same compilation unit, so names
interned on one line keep their identity on the next.`,
}

func repl(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	reporter, formatter := newReporter(cfg)

	u := unit.New(cfg.Unit)
	defer u.Release()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	history := historyPath()
	if f, err := os.Open(history); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	for {
		input, err := line.Prompt(replPrompt)
		if err == liner.ErrPromptAborted || err == io.EOF {
			fmt.Println()
			break
		} else if err != nil {
			return err
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)

		if formatter != nil {
			formatter.AddSource(replSource, []byte(input))
		}
		printTokenLine(os.Stdout, u.Tokenize(replSource, input))
		u.Flush(reporter)
	}

	if f, err := os.Create(history); err != nil {
		log.Warn("Failed to save history", "path", history, "err", err)
	} else {
		line.WriteHistory(f)
		f.Close()
	}
	return nil
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), replHistoryFile)
	}
	return filepath.Join(home, replHistoryFile)
}

// printTokenLine prints toks on one line, without the trailing EOF.
func printTokenLine(w io.Writer, toks []lexer.Token) {
	parts := make([]string, 0, len(toks))
	for _, tok := range toks {
		if tok.Type == lexer.EOF {
			break
		}
		row := newTokenRow(tok)
		switch {
		case row.Value == "":
			parts = append(parts, row.Type)
		case row.Mod != "":
			parts = append(parts, fmt.Sprintf("%s(%s,%s)", row.Type, row.Value, row.Mod))
		default:
			parts = append(parts, fmt.Sprintf("%s(%s)", row.Type, row.Value))
		}
	}
	fmt.Fprintln(w, strings.Join(parts, " "))
}

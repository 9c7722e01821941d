package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unsafe"

	"github.com/davecgh/go-spew/spew"
	"github.com/edsrzf/mmap-go"
	"github.com/ethereum/go-ethereum/log"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/sync/errgroup"
	"gopkg.in/urfave/cli.v1"

	"github.com/revision-lang/revision/internal/config"
	"github.com/revision-lang/revision/internal/diag"
	"github.com/revision-lang/revision/internal/lexer"
	"github.com/revision-lang/revision/internal/unit"
)

var (
	rawFlag = cli.BoolFlag{
		Name:  "raw",
		Usage: "Dump tokens as Go values instead of a table",
	}

	tokensCommand = cli.Command{
		Action:    tokens,
		Name:      "tokens",
		Usage:     "Tokenize source files and print the token streams",
		ArgsUsage: "<file> [<file>...]",
		Flags:     []cli.Flag{rawFlag},
		Description: `
The tokens command scans every file in its own compilation unit, several
files at a time, and prints each token stream in argument order followed
by that file's diagnostics. The exit status is 1 if any file had errors.`,
	}
)

// tokenRow is one printed token. It holds copies of everything it shows so
// it outlives the unit that produced it.
type tokenRow struct {
	Pos   string
	Type  string
	Mod   string
	Value string
}

type fileResult struct {
	name  string
	rows  []tokenRow
	diags []diag.Diagnostic
}

func tokens(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	if ctx.NArg() == 0 {
		return errors.New("no input files")
	}
	files := []string(ctx.Args())

	results := make([]fileResult, len(files))
	var g errgroup.Group
	g.SetLimit(cfg.Driver.Jobs)
	for i, name := range files {
		i, name := i, name
		g.Go(func() error {
			res, err := tokenizeFile(cfg.Unit, name)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	reporter, _ := newReporter(cfg)
	failed := 0
	for _, res := range results {
		if ctx.Bool(rawFlag.Name) {
			dumpRows(os.Stdout, res)
		} else {
			renderRows(os.Stdout, res)
		}
		errs := 0
		for _, d := range res.diags {
			reporter.Report(d)
			if d.IsError() {
				errs++
			}
		}
		if errs > 0 {
			failed++
		}
	}
	if failed > 0 {
		log.Debug("Tokenization failed", "files", failed)
		return cli.NewExitError("", 1)
	}
	return nil
}

// tokenizeFile memory-maps name and scans it in a fresh unit.
func tokenizeFile(cfg config.Unit, name string) (fileResult, error) {
	src, closeSrc, err := mapSource(name)
	if err != nil {
		return fileResult{}, err
	}
	defer closeSrc()

	u := unit.New(cfg, unit.WithLogger(log.New("file", name)))
	defer u.Release()

	toks := u.Tokenize(name, src)
	rows := make([]tokenRow, len(toks))
	for i, tok := range toks {
		rows[i] = newTokenRow(tok)
	}
	return fileResult{name: name, rows: rows, diags: u.Diagnostics()}, nil
}

// mapSource returns the contents of name backed by a read-only mapping. The
// string is only valid until the returned close function is called.
func mapSource(name string) (string, func() error, error) {
	f, err := os.Open(name)
	if err != nil {
		return "", nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return "", nil, err
	}
	if fi.Size() == 0 {
		// Empty files cannot be mapped.
		return "", f.Close, nil
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return "", nil, fmt.Errorf("%s: %v", name, err)
	}
	closeFn := func() error {
		err := m.Unmap()
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		return err
	}
	return unsafe.String(&m[0], len(m)), closeFn, nil
}

func newTokenRow(tok lexer.Token) tokenRow {
	row := tokenRow{
		Pos:  fmt.Sprintf("%d:%d", tok.Span.Line, tok.Span.Column),
		Type: tok.Type.String(),
	}
	if tok.Mod != lexer.ModNone {
		row.Mod = tok.Mod.String()
	}
	switch tok.Type {
	case lexer.INT:
		if tok.Mod == lexer.ModChar {
			row.Value = strconv.QuoteRune(rune(tok.Int))
		} else {
			row.Value = strconv.FormatUint(tok.Int, 10)
		}
	case lexer.FLOAT:
		row.Value = strconv.FormatFloat(tok.Float, 'g', -1, 64)
	case lexer.STR:
		row.Value = strconv.Quote(tok.Name.String())
	case lexer.NAME, lexer.KEYWORD:
		row.Value = strings.Clone(tok.Name.String())
	}
	return row
}

func renderRows(w io.Writer, res fileResult) {
	fmt.Fprintf(w, "%s: %d tokens\n", res.name, len(res.rows))
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Pos", "Type", "Mod", "Value"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	for _, r := range res.rows {
		table.Append([]string{r.Pos, r.Type, r.Mod, r.Value})
	}
	table.Render()
}

var rawConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func dumpRows(w io.Writer, res fileResult) {
	fmt.Fprintf(w, "%s:\n", res.name)
	rawConfig.Fdump(w, res.rows)
}

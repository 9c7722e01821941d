package diag

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	colorable "github.com/mattn/go-colorable"
	isatty "github.com/mattn/go-isatty"
)

// Reporter receives diagnostics as they are produced.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(d Diagnostic)

// Report calls f(d).
func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// Discard drops every diagnostic.
var Discard Reporter = ReporterFunc(func(Diagnostic) {})

// ColorMode selects when a Printer emits ANSI colors.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode parses "auto", "always" or "never". The empty string is auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(s)); m {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways, ColorNever:
		return m, nil
	}
	return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

// Printer writes each diagnostic as one line,
// "<source>(<line>): error: <message>", optionally followed by a snippet.
// It is safe for concurrent use.
type Printer struct {
	mu      sync.Mutex
	w       io.Writer
	snippet *Formatter

	errColor  *color.Color
	warnColor *color.Color
	noteColor *color.Color
}

// NewPrinter returns a printer writing to w. Colors are only used for
// ColorAlways because w may not be a terminal.
func NewPrinter(w io.Writer, mode ColorMode) *Printer {
	return newPrinter(w, mode == ColorAlways)
}

// NewStderrPrinter returns a printer for standard error. In ColorAuto mode
// colors are enabled when stderr is a terminal.
func NewStderrPrinter(mode ColorMode) *Printer {
	fd := os.Stderr.Fd()
	useColor := mode == ColorAlways ||
		(mode == ColorAuto && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)))
	if useColor {
		return newPrinter(colorable.NewColorableStderr(), true)
	}
	return newPrinter(os.Stderr, false)
}

func newPrinter(w io.Writer, useColor bool) *Printer {
	p := &Printer{
		w:         w,
		errColor:  color.New(color.FgRed, color.Bold),
		warnColor: color.New(color.FgYellow, color.Bold),
		noteColor: color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.errColor, p.warnColor, p.noteColor} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// WithSnippets makes the printer render a source snippet under each line.
// f is redirected to the printer's writer.
func (p *Printer) WithSnippets(f *Formatter) *Printer {
	f.w = p.w
	p.snippet = f
	return p
}

// Report writes d.
func (p *Printer) Report(d Diagnostic) {
	p.mu.Lock()
	defer p.mu.Unlock()

	sev := d.severity()
	var label string
	switch sev {
	case SeverityWarning:
		label = p.warnColor.Sprint(sev)
	case SeverityNote:
		label = p.noteColor.Sprint(sev)
	default:
		label = p.errColor.Sprint(sev)
	}
	fmt.Fprintf(p.w, "%s(%d): %s: %s\n", sourceName(d.Span.Filename), d.Span.Line, label, d.Message)
	if p.snippet != nil {
		p.snippet.Format(d)
	}
}

// Collector records diagnostics in the order they were reported.
type Collector struct {
	diags []Diagnostic
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Report appends d.
func (c *Collector) Report(d Diagnostic) {
	c.diags = append(c.diags, d)
}

// Diagnostics returns the recorded diagnostics.
func (c *Collector) Diagnostics() []Diagnostic {
	return c.diags
}

// Len returns the number of recorded diagnostics.
func (c *Collector) Len() int {
	return len(c.diags)
}

// ErrorCount returns the number of error-severity diagnostics.
func (c *Collector) ErrorCount() int {
	n := 0
	for _, d := range c.diags {
		if d.severity() == SeverityError {
			n++
		}
	}
	return n
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (c *Collector) HasErrors() bool {
	return c.ErrorCount() > 0
}

// Flush replays the recorded diagnostics to r and clears the collector.
func (c *Collector) Flush(r Reporter) {
	for _, d := range c.diags {
		r.Report(d)
	}
	c.Reset()
}

// Reset discards the recorded diagnostics.
func (c *Collector) Reset() {
	c.diags = nil
}

// Multi fans each diagnostic out to every non-nil reporter.
func Multi(reporters ...Reporter) Reporter {
	var rs []Reporter
	for _, r := range reporters {
		if r != nil {
			rs = append(rs, r)
		}
	}
	return ReporterFunc(func(d Diagnostic) {
		for _, r := range rs {
			r.Report(d)
		}
	})
}

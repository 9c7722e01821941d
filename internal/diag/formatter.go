package diag

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru"
)

// sourceCacheSize bounds how many source files a Formatter keeps split into lines.
const sourceCacheSize = 64

// Formatter renders diagnostics with source code snippets and underlines.
type Formatter struct {
	w       io.Writer
	sources *lru.ARCCache // filename -> []string (lines)
}

// NewFormatter creates a formatter writing to w.
func NewFormatter(w io.Writer) *Formatter {
	cache, err := lru.NewARC(sourceCacheSize)
	if err != nil {
		panic(err) // only fails for a non-positive size
	}
	return &Formatter{w: w, sources: cache}
}

// AddSource registers in-memory source text for filename, replacing any
// cached copy. Sources not registered are read from disk on demand.
func (f *Formatter) AddSource(filename string, src []byte) {
	f.sources.Add(filename, strings.Split(string(src), "\n"))
}

// lines returns the source lines of filename (cached).
func (f *Formatter) lines(filename string) ([]string, error) {
	if v, ok := f.sources.Get(filename); ok {
		return v.([]string), nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(data), "\n")
	f.sources.Add(filename, lines)
	return lines, nil
}

// Format writes the snippet and help sections of d. The one-line header is
// written by the Printer.
func (f *Formatter) Format(d Diagnostic) {
	spans := collectSpans(d)

	byFile := make(map[string][]LabeledSpan)
	var files []string
	for _, span := range spans {
		name := span.Span.Filename
		if name == "" {
			continue
		}
		if _, ok := byFile[name]; !ok {
			files = append(files, name)
		}
		byFile[name] = append(byFile[name], span)
	}

	for _, name := range files {
		lines, err := f.lines(name)
		if err != nil {
			fmt.Fprintf(f.w, "  --> %s\n", d.Span)
			continue
		}
		f.printFileSpans(name, lines, byFile[name])
	}
	f.printHelp(d)
}

// collectSpans collects all spans from the diagnostic, prioritizing LabeledSpans.
func collectSpans(d Diagnostic) []LabeledSpan {
	if len(d.LabeledSpans) > 0 {
		return d.LabeledSpans
	}
	if d.Span.IsValid() {
		return []LabeledSpan{{Span: d.Span, Style: "primary"}}
	}
	return nil
}

// printFileSpans prints source code with underlines for spans in a file.
func (f *Formatter) printFileSpans(filename string, lines []string, spans []LabeledSpan) {
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Span.Line != spans[j].Span.Line {
			return spans[i].Span.Line < spans[j].Span.Line
		}
		return spans[i].Span.Column < spans[j].Span.Column
	})

	maxLine := len(lines)
	byLine := make(map[int][]LabeledSpan)
	for _, span := range spans {
		if l := span.Span.Line; l > 0 && l <= maxLine {
			byLine[l] = append(byLine[l], span)
		}
	}
	if len(byLine) == 0 {
		return
	}

	first, last := maxLine, 1
	for l := range byLine {
		first = min(first, l)
		last = max(last, l)
	}

	// One line of context on each side.
	contextStart := max(1, first-1)
	contextEnd := min(maxLine, last+1)
	width := len(fmt.Sprintf("%d", contextEnd))
	gutter := strings.Repeat(" ", width)

	fmt.Fprintf(f.w, "  --> %s\n", filename)
	fmt.Fprintf(f.w, "   %s |\n", gutter)
	for n := contextStart; n <= contextEnd; n++ {
		content := lines[n-1]
		fmt.Fprintf(f.w, "%*d | %s\n", width+3, n, content)
		if ls := byLine[n]; len(ls) > 0 {
			f.printUnderlines(gutter, content, ls)
		}
	}
	fmt.Fprintf(f.w, "   %s |\n", gutter)
}

// printUnderlines prints ^ under primary spans and ~ under secondary ones.
func (f *Formatter) printUnderlines(gutter, content string, spans []LabeledSpan) {
	underline := []byte(strings.Repeat(" ", len(content)+1))

	mark := func(span LabeledSpan, c byte) {
		start := max(0, span.Span.Column-1)
		end := min(len(underline), start+max(1, span.Span.End-span.Span.Start))
		for i := start; i < end; i++ {
			if underline[i] == ' ' || c == '^' {
				underline[i] = c
			}
		}
	}
	for _, span := range spans {
		if span.Style != "secondary" {
			mark(span, '^')
		}
	}
	for _, span := range spans {
		if span.Style == "secondary" {
			mark(span, '~')
		}
	}

	fmt.Fprintf(f.w, "   %s | %s", gutter, strings.TrimRight(string(underline), " "))
	var secondary []string
	for _, span := range spans {
		switch {
		case span.Label == "":
		case span.Style == "secondary":
			secondary = append(secondary, span.Label)
		default:
			fmt.Fprintf(f.w, " %s", span.Label)
		}
	}
	fmt.Fprintln(f.w)
	for _, label := range secondary {
		fmt.Fprintf(f.w, "   %s |   %s\n", gutter, label)
	}
}

// printHelp prints notes, then help text or the suggestion.
func (f *Formatter) printHelp(d Diagnostic) {
	for _, note := range d.Notes {
		fmt.Fprintf(f.w, "  = note: %s\n", note)
	}
	switch {
	case d.Help != "":
		fmt.Fprintf(f.w, "help: %s\n", d.Help)
	case d.Suggestion != "":
		fmt.Fprintf(f.w, "help: %s\n", d.Suggestion)
	}
}

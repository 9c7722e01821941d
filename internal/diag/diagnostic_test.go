package diag_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/revision-lang/revision/internal/diag"
)

func TestDiagnosticString(t *testing.T) {
	tests := []struct {
		d    diag.Diagnostic
		want string
	}{
		{
			diag.Errorf(diag.StageLexer, diag.CodeLexerIllegalChar, diag.Span{Filename: "a.rv", Line: 3, Column: 1}, "invalid %s token", "'$'"),
			"a.rv(3): error: invalid '$' token",
		},
		{
			diag.Warningf(diag.StageParser, "", diag.Span{Line: 7, Column: 2}, "unused"),
			"<input>(7): warning: unused",
		},
		{
			diag.Diagnostic{Message: "no severity", Span: diag.Span{Filename: "b", Line: 1}},
			"b(1): error: no severity",
		},
	}
	for i, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Fatalf("tests[%d] - expected %q, got %q", i, tt.want, got)
		}
		if got := tt.d.Error(); got != tt.want {
			t.Fatalf("tests[%d] - Error() should match String(), got %q", i, got)
		}
	}
}

func TestPrinterWritesOneLinePerDiagnostic(t *testing.T) {
	var buf bytes.Buffer
	p := diag.NewPrinter(&buf, diag.ColorNever)

	p.Report(diag.Errorf(diag.StageLexer, diag.CodeLexerIllegalChar, diag.Span{Filename: "x.rv", Line: 2, Column: 4}, "bad"))
	p.Report(diag.Warningf(diag.StageLexer, diag.CodeLexerIllegalChar, diag.Span{Filename: "x.rv", Line: 5, Column: 1}, "meh"))

	want := "x.rv(2): error: bad\nx.rv(5): warning: meh\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestPrinterColorAlways(t *testing.T) {
	var buf bytes.Buffer
	p := diag.NewPrinter(&buf, diag.ColorAlways)
	p.Report(diag.Errorf(diag.StageLexer, "", diag.Span{Filename: "x.rv", Line: 1, Column: 1}, "bad"))

	out := buf.String()
	if !strings.Contains(out, "\x1b[") {
		t.Fatalf("expected ANSI escapes in %q", out)
	}
	if !strings.HasPrefix(out, "x.rv(1): ") || !strings.HasSuffix(out, ": bad\n") {
		t.Fatalf("unexpected colored line %q", out)
	}
}

func TestPrinterWithSnippets(t *testing.T) {
	var buf bytes.Buffer
	f := diag.NewFormatter(nil)
	f.AddSource("s.rv", []byte("first\nx = $;\nlast"))
	p := diag.NewPrinter(&buf, diag.ColorNever).WithSnippets(f)

	d := diag.Errorf(diag.StageLexer, diag.CodeLexerIllegalChar,
		diag.Span{Filename: "s.rv", Line: 2, Column: 5, Start: 10, End: 11},
		"invalid '$' token, skipping").WithHelp("remove the character")
	p.Report(d)

	out := buf.String()
	for _, want := range []string{
		"s.rv(2): error: invalid '$' token, skipping\n",
		"  --> s.rv\n",
		"2 | x = $;\n",
		"  |     ^\n",
		"1 | first\n",
		"3 | last\n",
		"help: remove the character\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestFormatterLabelsAndNotes(t *testing.T) {
	var buf bytes.Buffer
	f := diag.NewFormatter(&buf)
	f.AddSource("l.rv", []byte("foo(bar"))

	d := diag.Errorf(diag.StageParser, diag.CodeParseExpectedToken,
		diag.Span{Filename: "l.rv", Line: 1, Column: 4, Start: 3, End: 4}, "expected token )").
		WithPrimarySpan(diag.Span{Filename: "l.rv", Line: 1, Column: 8, Start: 7, End: 7}, "expected `)`").
		WithSecondarySpan(diag.Span{Filename: "l.rv", Line: 1, Column: 4, Start: 3, End: 4}, "opened here").
		WithNote("parentheses must balance")
	f.Format(d)

	out := buf.String()
	for _, want := range []string{"~   ^ expected `)`", "opened here", "= note: parentheses must balance"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestFormatterFallsBackWithoutSource(t *testing.T) {
	var buf bytes.Buffer
	f := diag.NewFormatter(&buf)
	f.Format(diag.Errorf(diag.StageLexer, "", diag.Span{Filename: "/does/not/exist.rv", Line: 1, Column: 1}, "x"))
	if !strings.Contains(buf.String(), "--> /does/not/exist.rv:1:1") {
		t.Fatalf("expected location fallback, got %q", buf.String())
	}
}

func TestCollector(t *testing.T) {
	c := diag.NewCollector()
	if c.HasErrors() || c.Len() != 0 {
		t.Fatalf("new collector should be empty")
	}

	c.Report(diag.Warningf(diag.StageLexer, "", diag.Span{Line: 1}, "w"))
	if c.HasErrors() {
		t.Fatalf("warnings are not errors")
	}
	c.Report(diag.Errorf(diag.StageLexer, "", diag.Span{Line: 2}, "e1"))
	c.Report(diag.Errorf(diag.StageLexer, "", diag.Span{Line: 3}, "e2"))

	if c.Len() != 3 || c.ErrorCount() != 2 || !c.HasErrors() {
		t.Fatalf("unexpected counts len=%d errors=%d", c.Len(), c.ErrorCount())
	}
	if got := c.Diagnostics()[1].Message; got != "e1" {
		t.Fatalf("expected report order to be kept, got %q", got)
	}

	other := diag.NewCollector()
	c.Flush(other)
	if c.Len() != 0 || other.Len() != 3 {
		t.Fatalf("expected flush to move diagnostics, got %d and %d", c.Len(), other.Len())
	}
}

func TestMulti(t *testing.T) {
	a, b := diag.NewCollector(), diag.NewCollector()
	r := diag.Multi(a, nil, b)
	r.Report(diag.Errorf(diag.StageLexer, "", diag.Span{Line: 1}, "x"))
	if a.Len() != 1 || b.Len() != 1 {
		t.Fatalf("expected both reporters to receive the diagnostic")
	}
	diag.Discard.Report(diag.Diagnostic{})
}

func TestParseColorMode(t *testing.T) {
	tests := map[string]diag.ColorMode{
		"":       diag.ColorAuto,
		"auto":   diag.ColorAuto,
		"ALWAYS": diag.ColorAlways,
		"never":  diag.ColorNever,
	}
	for in, want := range tests {
		got, err := diag.ParseColorMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseColorMode(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := diag.ParseColorMode("sometimes"); err == nil {
		t.Fatalf("expected an error for an unknown mode")
	}
}

package diag

import "fmt"

// Stage identifies which compiler phase produced the diagnostic.
type Stage string

const (
	StageLexer  Stage = "lexer"
	StageParser Stage = "parser"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// LabeledSpan represents a span with an optional label.
type LabeledSpan struct {
	Span  Span
	Label string // Optional label (e.g., "expected `;`")
	Style string // "primary" or "secondary" - primary spans are emphasized
}

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Lexer errors
	CodeLexerIllegalChar              Code = "LEXER_ILLEGAL_CHAR"
	CodeLexerDigitOutOfRange          Code = "LEXER_DIGIT_OUT_OF_RANGE"
	CodeLexerIntegerOverflow          Code = "LEXER_INTEGER_OVERFLOW"
	CodeLexerFloatOverflow            Code = "LEXER_FLOAT_OVERFLOW"
	CodeLexerMissingExponent          Code = "LEXER_MISSING_EXPONENT"
	CodeLexerEmptyChar                Code = "LEXER_EMPTY_CHAR"
	CodeLexerNewlineInChar            Code = "LEXER_NEWLINE_IN_CHAR"
	CodeLexerUnterminatedChar         Code = "LEXER_UNTERMINATED_CHAR"
	CodeLexerInvalidEscape            Code = "LEXER_INVALID_ESCAPE"
	CodeLexerNewlineInString          Code = "LEXER_NEWLINE_IN_STRING"
	CodeLexerUnterminatedString       Code = "LEXER_UNTERMINATED_STRING"
	CodeLexerUnterminatedBlockComment Code = "LEXER_UNTERMINATED_BLOCK_COMMENT"
	CodeLexerMissingDigits            Code = "LEXER_MISSING_DIGITS"

	// Parser errors raised through the token stream
	CodeParseExpectedToken Code = "PARSE_EXPECTED_TOKEN"
)

// Span represents a location in source code.
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Diagnostic is a compiler diagnostic surfaced to end-users.
type Diagnostic struct {
	Stage      Stage
	Severity   Severity
	Code       Code
	Message    string
	Span       Span   // Primary span
	Suggestion string // Optional suggestion for fixing the error
	// LabeledSpans allows multiple spans with labels.
	// The first span is treated as primary, others as secondary
	LabeledSpans []LabeledSpan
	Notes        []string // Additional notes to display
	Help         string   // Help text (alternative to Suggestion, can include code)
}

// Errorf builds an error diagnostic.
func Errorf(stage Stage, code Code, span Span, format string, args ...any) Diagnostic {
	return Diagnostic{
		Stage:    stage,
		Severity: SeverityError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
	}
}

// Warningf builds a warning diagnostic.
func Warningf(stage Stage, code Code, span Span, format string, args ...any) Diagnostic {
	d := Errorf(stage, code, span, format, args...)
	d.Severity = SeverityWarning
	return d
}

// String renders the diagnostic as a single "<source>(<line>): <severity>: <message>" line.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s(%d): %s: %s", sourceName(d.Span.Filename), d.Span.Line, d.severity(), d.Message)
}

// Error makes a Diagnostic usable as an error value.
func (d Diagnostic) Error() string {
	return d.String()
}

// IsError reports whether d has error severity. An unset severity counts as
// an error.
func (d Diagnostic) IsError() bool {
	return d.severity() == SeverityError
}

func (d Diagnostic) severity() Severity {
	if d.Severity == "" {
		return SeverityError
	}
	return d.Severity
}

func sourceName(filename string) string {
	if filename == "" {
		return "<input>"
	}
	return filename
}

// WithSuggestion returns a new diagnostic with the given suggestion.
func (d Diagnostic) WithSuggestion(suggestion string) Diagnostic {
	d.Suggestion = suggestion
	return d
}

// WithLabeledSpan adds a labeled span to the diagnostic.
func (d Diagnostic) WithLabeledSpan(span Span, label string, style string) Diagnostic {
	if style == "" {
		style = "primary"
	}
	d.LabeledSpans = append(d.LabeledSpans, LabeledSpan{
		Span:  span,
		Label: label,
		Style: style,
	})
	return d
}

// WithPrimarySpan adds a primary labeled span.
func (d Diagnostic) WithPrimarySpan(span Span, label string) Diagnostic {
	return d.WithLabeledSpan(span, label, "primary")
}

// WithSecondarySpan adds a secondary labeled span.
func (d Diagnostic) WithSecondarySpan(span Span, label string) Diagnostic {
	return d.WithLabeledSpan(span, label, "secondary")
}

// WithNote adds a note to the diagnostic.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp adds help text to the diagnostic.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

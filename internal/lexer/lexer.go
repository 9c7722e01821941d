package lexer

import (
	"fmt"
	"math"
	"strconv"

	"github.com/revision-lang/revision/internal/diag"
	"github.com/revision-lang/revision/internal/intern"
	"github.com/revision-lang/revision/internal/keyword"
)

type LexerErrorKind int

const (
	ErrIllegalChar LexerErrorKind = iota
	ErrDigitOutOfRange
	ErrIntegerOverflow
	ErrFloatOverflow
	ErrMissingExponent
	ErrEmptyChar
	ErrNewlineInChar
	ErrUnterminatedChar
	ErrInvalidEscape
	ErrNewlineInString
	ErrUnterminatedString
	ErrUnterminatedBlockComment
	ErrMissingDigits
)

type LexerError struct {
	Kind    LexerErrorKind
	Message string
	Span    Span
}

func (e LexerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Span.Pos, e.Message)
}

func (k LexerErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrIllegalChar:
		return diag.CodeLexerIllegalChar
	case ErrDigitOutOfRange:
		return diag.CodeLexerDigitOutOfRange
	case ErrIntegerOverflow:
		return diag.CodeLexerIntegerOverflow
	case ErrFloatOverflow:
		return diag.CodeLexerFloatOverflow
	case ErrMissingExponent:
		return diag.CodeLexerMissingExponent
	case ErrEmptyChar:
		return diag.CodeLexerEmptyChar
	case ErrNewlineInChar:
		return diag.CodeLexerNewlineInChar
	case ErrUnterminatedChar:
		return diag.CodeLexerUnterminatedChar
	case ErrInvalidEscape:
		return diag.CodeLexerInvalidEscape
	case ErrNewlineInString:
		return diag.CodeLexerNewlineInString
	case ErrUnterminatedString:
		return diag.CodeLexerUnterminatedString
	case ErrUnterminatedBlockComment:
		return diag.CodeLexerUnterminatedBlockComment
	case ErrMissingDigits:
		return diag.CodeLexerMissingDigits
	default:
		return diag.Code("LEXER_UNKNOWN_ERROR")
	}
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e LexerError) ToDiagnostic() diag.Diagnostic {
	d := diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span:     e.Span.toDiag(),
	}
	switch e.Kind {
	case ErrInvalidEscape:
		d = d.WithSuggestion(`valid escapes are \n \r \t \v \b \a \0 \\ \' \"`)
	case ErrIntegerOverflow:
		d = d.WithNote("integer literals must fit in 64 bits")
	case ErrNewlineInString:
		d = d.WithHelp(`write \n to put a newline in a string`)
	case ErrUnterminatedBlockComment:
		d = d.WithNote("block comments nest, so every /* needs its own */")
	case ErrMissingDigits:
		d = d.WithHelp("write 0x0 or 0b0 for a zero literal")
	}
	return d
}

func (s Span) toDiag() diag.Span {
	return diag.Span{
		Filename: s.Filename,
		Line:     s.Line,
		Column:   s.Column,
		Start:    s.Start,
		End:      s.End,
	}
}

// SyntaxError is returned by ExpectToken when the current token has the
// wrong type. The stream is left on the offending token.
type SyntaxError struct {
	Expected TokenType
	Found    Token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expected token %s, got %s", e.Expected, e.Found.Text())
}

// ToDiagnostic converts the error into a parser-stage diagnostic.
func (e *SyntaxError) ToDiagnostic() diag.Diagnostic {
	d := diag.Errorf(diag.StageParser, diag.CodeParseExpectedToken, e.Found.Span.toDiag(), "%s", e.Error())
	return d.WithPrimarySpan(d.Span, fmt.Sprintf("expected `%s`", e.Expected))
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithReporter sends every diagnostic to r as soon as it is produced.
func WithReporter(r diag.Reporter) Option {
	return func(l *Lexer) {
		if r != nil {
			l.report = r
		}
	}
}

// Lexer turns one source buffer at a time into a stream of tokens. It holds
// the current token only; there is no lookahead or history.
type Lexer struct {
	table  *intern.Table
	kw     *keyword.Registry
	report diag.Reporter

	filename  string
	src       string
	pos       int // offset of the next unread byte
	line      int // current line number (1-based)
	lineStart int // offset of the first byte of the current line

	tok    Token
	buf    []byte // decoded string literal scratch
	errors []LexerError
}

// New creates a lexer that interns into t and classifies names with kw.
// kw is initialized if it has not been already.
func New(t *intern.Table, kw *keyword.Registry, opts ...Option) *Lexer {
	if t == nil || kw == nil {
		panic("lexer: nil intern table or keyword registry")
	}
	kw.Init()
	l := &Lexer{
		table:  t,
		kw:     kw,
		report: diag.Discard,
		line:   1,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Init resets the lexer over src and scans the first token. filename is
// attached to every position produced afterwards.
func (l *Lexer) Init(filename, src string) {
	l.filename = filename
	l.src = src
	l.pos = 0
	l.line = 1
	l.lineStart = 0
	l.errors = nil
	l.NextToken()
}

// Token returns the current token.
func (l *Lexer) Token() Token {
	return l.tok
}

// Errors returns the lexical errors found since the last Init.
func (l *Lexer) Errors() []LexerError {
	return l.errors
}

// Filename returns the name given to Init.
func (l *Lexer) Filename() string {
	return l.filename
}

// Tokenize scans src and returns every token up to and including EOF.
func (l *Lexer) Tokenize(filename, src string) []Token {
	l.Init(filename, src)
	toks := []Token{l.tok}
	for l.tok.Type != EOF {
		toks = append(toks, l.NextToken())
	}
	return toks
}

// IsToken reports whether the current token has type tt.
func (l *Lexer) IsToken(tt TokenType) bool {
	return l.tok.Type == tt
}

// IsTokenName reports whether the current token is the identifier n.
func (l *Lexer) IsTokenName(n intern.Name) bool {
	return l.tok.Type == NAME && l.tok.Name == n
}

// IsKeyword reports whether the current token is the keyword n.
func (l *Lexer) IsKeyword(n intern.Name) bool {
	return l.tok.Type == KEYWORD && l.tok.Name == n
}

// MatchToken advances past the current token if it has type tt.
func (l *Lexer) MatchToken(tt TokenType) bool {
	if !l.IsToken(tt) {
		return false
	}
	l.NextToken()
	return true
}

// MatchKeyword advances past the current token if it is the keyword n.
func (l *Lexer) MatchKeyword(n intern.Name) bool {
	if !l.IsKeyword(n) {
		return false
	}
	l.NextToken()
	return true
}

// ExpectToken advances past the current token if it has type tt. Otherwise
// it reports a diagnostic and returns a *SyntaxError without advancing.
func (l *Lexer) ExpectToken(tt TokenType) error {
	if l.MatchToken(tt) {
		return nil
	}
	err := &SyntaxError{Expected: tt, Found: l.tok}
	l.report.Report(err.ToDiagnostic())
	return err
}

// ch returns the byte at the cursor, or 0 at end of input.
func (l *Lexer) ch() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// peek returns the byte n positions past the cursor, or 0.
func (l *Lexer) peek(n int) byte {
	if l.pos+n >= len(l.src) {
		return 0
	}
	return l.src[l.pos+n]
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.src)
}

// position returns the position of offset off, which must be on the
// current line.
func (l *Lexer) position(off int) Pos {
	return Pos{Filename: l.filename, Line: l.line, Column: off - l.lineStart + 1}
}

func (l *Lexer) addError(kind LexerErrorKind, span Span, format string, args ...any) {
	e := LexerError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	}
	l.errors = append(l.errors, e)
	l.report.Report(e.ToDiagnostic())
}

// errorAt reports a one-byte error at off on the current line.
func (l *Lexer) errorAt(off int, kind LexerErrorKind, format string, args ...any) {
	end := min(off+1, len(l.src))
	l.addError(kind, Span{Pos: l.position(off), Start: off, End: end}, format, args...)
}

// newline records that the byte at off is a line break.
func (l *Lexer) newline(off int) {
	l.line++
	l.lineStart = off + 1
}

func (l *Lexer) skipWhitespace() {
	for !l.eof() {
		switch l.src[l.pos] {
		case '\n':
			l.newline(l.pos)
		case ' ', '\t', '\r', '\v', '\f':
		default:
			return
		}
		l.pos++
	}
}

// NextToken scans the next token, makes it current and returns it.
func (l *Lexer) NextToken() Token {
	for {
		l.skipWhitespace()
		start := l.pos
		l.tok = Token{Span: Span{Pos: l.position(start), Start: start}}

		if l.eof() {
			l.tok.Type = EOF
			l.tok.Span.End = start
			return l.tok
		}

		switch c := l.src[l.pos]; c {
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			l.scanNumber()
		case '.':
			switch {
			case isDigit(l.peek(1)):
				l.scanFloat()
			case l.peek(1) == '.' && l.peek(2) == '.':
				l.pos += 3
				l.tok.Type = ELLIPSIS
			default:
				l.pos++
				l.tok.Type = DOT
			}
		case '\'':
			l.scanChar()
		case '"':
			l.scanStr()
		case '/':
			switch l.peek(1) {
			case '/':
				l.skipLineComment()
				continue
			case '*':
				l.skipBlockComment()
				continue
			}
			l.tok.Type = l.case2(DIV, '=', DIV_ASSIGN)
		case '<':
			l.tok.Type = l.shift(LT, '<', LSHIFT, LSHIFT_ASSIGN, LTEQ)
		case '>':
			l.tok.Type = l.shift(GT, '>', RSHIFT, RSHIFT_ASSIGN, GTEQ)
		case ':':
			l.tok.Type = l.case1(COLON)
		case '(':
			l.tok.Type = l.case1(LPAREN)
		case ')':
			l.tok.Type = l.case1(RPAREN)
		case '{':
			l.tok.Type = l.case1(LBRACE)
		case '}':
			l.tok.Type = l.case1(RBRACE)
		case '[':
			l.tok.Type = l.case1(LBRACKET)
		case ']':
			l.tok.Type = l.case1(RBRACKET)
		case ',':
			l.tok.Type = l.case1(COMMA)
		case '@':
			l.tok.Type = l.case1(AT)
		case '#':
			l.tok.Type = l.case1(POUND)
		case '?':
			l.tok.Type = l.case1(QUESTION)
		case ';':
			l.tok.Type = l.case1(SEMICOLON)
		case '~':
			l.tok.Type = l.case1(NEG)
		case '!':
			l.tok.Type = l.case2(NOT, '=', NOTEQ)
		case '=':
			l.tok.Type = l.case2(ASSIGN, '=', EQ)
		case '^':
			l.tok.Type = l.case2(XOR, '=', XOR_ASSIGN)
		case '*':
			l.tok.Type = l.case2(MUL, '=', MUL_ASSIGN)
		case '%':
			l.tok.Type = l.case2(MOD, '=', MOD_ASSIGN)
		case '+':
			l.tok.Type = l.case3(ADD, '=', ADD_ASSIGN, '+', INC)
		case '-':
			l.tok.Type = l.case3(SUB, '=', SUB_ASSIGN, '-', DEC)
		case '&':
			l.tok.Type = l.case3(AND, '=', AND_ASSIGN, '&', AND_AND)
		case '|':
			l.tok.Type = l.case3(OR, '=', OR_ASSIGN, '|', OR_OR)
		default:
			if isLetter(c) {
				l.scanName()
				break
			}
			l.errorAt(l.pos, ErrIllegalChar, "invalid %s token, skipping", describe(c))
			l.pos++
			continue
		}
		l.tok.Span.End = l.pos
		return l.tok
	}
}

// case1 consumes a one-byte token.
func (l *Lexer) case1(k TokenType) TokenType {
	l.pos++
	return k
}

// case2 consumes k1, or k2 when the next byte is c2.
func (l *Lexer) case2(k1 TokenType, c2 byte, k2 TokenType) TokenType {
	l.pos++
	if l.ch() == c2 {
		l.pos++
		return k2
	}
	return k1
}

// case3 consumes k1, or k2/k3 when the next byte is c2/c3.
func (l *Lexer) case3(k1 TokenType, c2 byte, k2 TokenType, c3 byte, k3 TokenType) TokenType {
	l.pos++
	switch l.ch() {
	case c2:
		l.pos++
		return k2
	case c3:
		l.pos++
		return k3
	}
	return k1
}

// shift scans <, <=, << and <<= (or their > counterparts).
func (l *Lexer) shift(cmp TokenType, c byte, sh, shAssign, cmpEq TokenType) TokenType {
	l.pos++
	switch l.ch() {
	case c:
		l.pos++
		if l.ch() == '=' {
			l.pos++
			return shAssign
		}
		return sh
	case '=':
		l.pos++
		return cmpEq
	}
	return cmp
}

func (l *Lexer) skipLineComment() {
	for !l.eof() && l.src[l.pos] != '\n' {
		l.pos++
	}
}

// skipBlockComment skips a /* */ comment. Comments nest.
func (l *Lexer) skipBlockComment() {
	start := l.pos
	startPos := l.position(start)
	l.pos += 2
	depth := 1
	for depth > 0 {
		if l.eof() {
			l.addError(ErrUnterminatedBlockComment,
				Span{Pos: startPos, Start: start, End: l.pos},
				"unterminated block comment")
			return
		}
		switch c := l.src[l.pos]; {
		case c == '/' && l.peek(1) == '*':
			l.pos += 2
			depth++
		case c == '*' && l.peek(1) == '/':
			l.pos += 2
			depth--
		default:
			if c == '\n' {
				l.newline(l.pos)
			}
			l.pos++
		}
	}
}

func (l *Lexer) scanName() {
	start := l.pos
	for isLetter(l.ch()) || isDigit(l.ch()) {
		l.pos++
	}
	l.tok.Name = l.table.Intern(l.src[start:l.pos])
	if l.kw.IsKeyword(l.tok.Name) {
		l.tok.Type = KEYWORD
	} else {
		l.tok.Type = NAME
	}
}

// scanNumber looks past the leading digits to decide between an integer
// and a float literal.
func (l *Lexer) scanNumber() {
	end := l.pos
	for end < len(l.src) && isDigit(l.src[end]) {
		end++
	}
	if end < len(l.src) {
		if c := l.src[end]; c == '.' || c == 'e' || c == 'E' {
			l.scanFloat()
			return
		}
	}
	l.scanInt()
}

func (l *Lexer) scanInt() {
	base := uint64(10)
	if l.ch() == '0' {
		l.pos++
		switch c := l.ch(); {
		case c == 'x' || c == 'X':
			l.pos++
			l.tok.Mod = ModHex
			base = 16
		case c == 'b' || c == 'B':
			l.pos++
			l.tok.Mod = ModBin
			base = 2
		case isDigit(c):
			l.tok.Mod = ModOct
			base = 8
		}
		if l.tok.Mod == ModHex || l.tok.Mod == ModBin {
			if _, ok := digitValue(l.ch()); !ok {
				l.errorAt(l.pos, ErrMissingDigits, "expected digits after %s, found %s", l.src[l.pos-2:l.pos], l.found())
			}
		}
	}

	var val uint64
	for {
		c := l.ch()
		digit, ok := digitValue(c)
		if !ok {
			break
		}
		if digit >= base {
			l.errorAt(l.pos, ErrDigitOutOfRange, "digit '%c' out of range for base %d", c, base)
			digit = 0
		}
		if val > (math.MaxUint64-digit)/base {
			l.errorAt(l.pos, ErrIntegerOverflow, "integer literal overflow")
			for isLetter(l.ch()) || isDigit(l.ch()) {
				l.pos++
			}
			val = 0
			break
		}
		val = val*base + digit
		l.pos++
	}
	l.tok.Type = INT
	l.tok.Int = val
}

func (l *Lexer) scanFloat() {
	start := l.pos
	for isDigit(l.ch()) {
		l.pos++
	}
	if l.ch() == '.' {
		l.pos++
	}
	for isDigit(l.ch()) {
		l.pos++
	}
	end := l.pos
	if c := l.ch(); c == 'e' || c == 'E' {
		l.pos++
		if c := l.ch(); c == '+' || c == '-' {
			l.pos++
		}
		if !isDigit(l.ch()) {
			l.errorAt(l.pos, ErrMissingExponent,
				"expected digit after float literal exponent, found %s", l.found())
		} else {
			for isDigit(l.ch()) {
				l.pos++
			}
			end = l.pos
		}
	}

	val, err := strconv.ParseFloat(l.src[start:end], 64)
	if err != nil && !math.IsInf(val, 0) {
		// The lexeme is digits, one dot and a well-formed exponent.
		panic(fmt.Sprintf("lexer: malformed float lexeme %q: %v", l.src[start:end], err))
	}
	if math.IsInf(val, 0) {
		l.addError(ErrFloatOverflow, Span{Pos: l.position(start), Start: start, End: l.pos}, "float literal overflow")
	}
	l.tok.Type = FLOAT
	l.tok.Float = val
}

// scanEscape decodes the byte after a backslash and consumes it. ok is false
// for an unknown escape, in which case the byte itself is returned.
func (l *Lexer) scanEscape() (b byte, ok bool) {
	c := l.src[l.pos]
	l.pos++
	switch c {
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case 'v':
		return '\v', true
	case 'b':
		return '\b', true
	case 'a':
		return '\a', true
	case '0':
		return 0, true
	case '\\', '\'', '"':
		return c, true
	}
	return c, false
}

func (l *Lexer) scanChar() {
	l.tok.Type = INT
	l.tok.Mod = ModChar
	l.pos++ // opening quote

	var val byte
	switch {
	case l.eof():
		l.errorAt(l.pos, ErrUnterminatedChar, "unexpected end of file within char literal")
		return
	case l.ch() == '\'':
		l.errorAt(l.pos, ErrEmptyChar, "char literal cannot be empty")
		l.pos++
		return
	case l.ch() == '\n':
		l.errorAt(l.pos, ErrNewlineInChar, "char literal cannot contain newline")
		return
	case l.ch() == '\\':
		l.pos++
		if l.eof() || l.ch() == '\n' {
			l.errorAt(l.pos, ErrInvalidEscape, "invalid char literal escape at %s", l.found())
			break
		}
		v, ok := l.scanEscape()
		if !ok {
			l.errorAt(l.pos-1, ErrInvalidEscape, "invalid char literal escape '\\%c'", v)
			v = 0
		}
		val = v
	default:
		val = l.src[l.pos]
		l.pos++
	}

	if l.ch() != '\'' {
		l.errorAt(l.pos, ErrUnterminatedChar, "expected closing char quote, found %s", l.found())
	} else {
		l.pos++
	}
	l.tok.Int = uint64(val)
}

func (l *Lexer) scanStr() {
	l.pos++ // opening quote
	l.buf = l.buf[:0]
	for {
		if l.eof() {
			l.errorAt(l.pos, ErrUnterminatedString, "unexpected end of file within string literal")
			break
		}
		c := l.src[l.pos]
		if c == '"' {
			l.pos++
			break
		}
		if c == '\n' {
			l.errorAt(l.pos, ErrNewlineInString, "string literal cannot contain newline")
			break
		}
		if c != '\\' {
			l.buf = append(l.buf, c)
			l.pos++
			continue
		}
		l.pos++
		if l.eof() || l.ch() == '\n' {
			l.errorAt(l.pos, ErrInvalidEscape, "invalid string literal escape at %s", l.found())
			continue
		}
		v, ok := l.scanEscape()
		if !ok {
			l.errorAt(l.pos-1, ErrInvalidEscape, "invalid string literal escape '\\%c'", v)
		}
		l.buf = append(l.buf, v)
	}
	l.tok.Type = STR
	l.tok.Name = l.table.InternBytes(l.buf)
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// digitValue accepts hex digits in every base so that out-of-range digits
// are diagnosed rather than ending the literal.
func digitValue(c byte) (uint64, bool) {
	switch {
	case '0' <= c && c <= '9':
		return uint64(c - '0'), true
	case 'a' <= c && c <= 'f':
		return uint64(c-'a') + 10, true
	case 'A' <= c && c <= 'F':
		return uint64(c-'A') + 10, true
	}
	return 0, false
}

// found describes the byte at the cursor for a diagnostic.
func (l *Lexer) found() string {
	if l.eof() {
		return "end of file"
	}
	return describe(l.src[l.pos])
}

// describe renders c for a diagnostic.
func describe(c byte) string {
	switch {
	case c == '\n':
		return "newline"
	case c < ' ' || c >= 0x7f:
		return fmt.Sprintf("byte 0x%02x", c)
	}
	return fmt.Sprintf("'%c'", c)
}

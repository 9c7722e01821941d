package lexer

import (
	"fmt"

	"github.com/revision-lang/revision/internal/intern"
)

// TokenType represents the type of a token
type TokenType int

// Token type constants. Operators of one precedence class are contiguous.
const (
	EOF TokenType = iota
	COLON
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COMMA
	DOT
	AT
	POUND
	ELLIPSIS
	QUESTION
	SEMICOLON
	KEYWORD
	INT
	FLOAT
	STR
	NAME
	NEG // ~
	NOT // !

	// Multiplicative precedence
	MUL
	DIV
	MOD
	AND
	LSHIFT
	RSHIFT

	// Additive precedence
	ADD
	SUB
	XOR
	OR

	// Comparative precedence
	EQ
	NOTEQ
	LT
	GT
	LTEQ
	GTEQ

	AND_AND
	OR_OR

	// Assignment operators
	ASSIGN
	ADD_ASSIGN
	SUB_ASSIGN
	OR_ASSIGN
	AND_ASSIGN
	XOR_ASSIGN
	LSHIFT_ASSIGN
	RSHIFT_ASSIGN
	MUL_ASSIGN
	DIV_ASSIGN
	MOD_ASSIGN

	INC
	DEC

	// ILLEGAL never comes out of the scanner.
	ILLEGAL
)

var tokenNames = [...]string{
	EOF:           "EOF",
	COLON:         ":",
	LPAREN:        "(",
	RPAREN:        ")",
	LBRACE:        "{",
	RBRACE:        "}",
	LBRACKET:      "[",
	RBRACKET:      "]",
	COMMA:         ",",
	DOT:           ".",
	AT:            "@",
	POUND:         "#",
	ELLIPSIS:      "...",
	QUESTION:      "?",
	SEMICOLON:     ";",
	KEYWORD:       "keyword",
	INT:           "int",
	FLOAT:         "float",
	STR:           "string",
	NAME:          "name",
	NEG:           "~",
	NOT:           "!",
	MUL:           "*",
	DIV:           "/",
	MOD:           "%",
	AND:           "&",
	LSHIFT:        "<<",
	RSHIFT:        ">>",
	ADD:           "+",
	SUB:           "-",
	XOR:           "^",
	OR:            "|",
	EQ:            "==",
	NOTEQ:         "!=",
	LT:            "<",
	GT:            ">",
	LTEQ:          "<=",
	GTEQ:          ">=",
	AND_AND:       "&&",
	OR_OR:         "||",
	ASSIGN:        "=",
	ADD_ASSIGN:    "+=",
	SUB_ASSIGN:    "-=",
	OR_ASSIGN:     "|=",
	AND_ASSIGN:    "&=",
	XOR_ASSIGN:    "^=",
	LSHIFT_ASSIGN: "<<=",
	RSHIFT_ASSIGN: ">>=",
	MUL_ASSIGN:    "*=",
	DIV_ASSIGN:    "/=",
	MOD_ASSIGN:    "%=",
	INC:           "++",
	DEC:           "--",
	ILLEGAL:       "ILLEGAL",
}

// String returns the human-readable name used in diagnostics.
func (t TokenType) String() string {
	if t < 0 || int(t) >= len(tokenNames) {
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
	return tokenNames[t]
}

// IsMulOp reports whether t binds like multiplication.
func (t TokenType) IsMulOp() bool { return t >= MUL && t <= RSHIFT }

// IsAddOp reports whether t binds like addition.
func (t TokenType) IsAddOp() bool { return t >= ADD && t <= OR }

// IsCmpOp reports whether t is a comparison.
func (t TokenType) IsCmpOp() bool { return t >= EQ && t <= GTEQ }

// IsAssignOp reports whether t is = or a compound assignment.
func (t TokenType) IsAssignOp() bool { return t >= ASSIGN && t <= MOD_ASSIGN }

// Mod records how an INT literal was spelled.
type Mod int

const (
	ModNone Mod = iota
	ModHex
	ModBin
	ModOct
	ModChar
)

func (m Mod) String() string {
	switch m {
	case ModHex:
		return "hex"
	case ModBin:
		return "bin"
	case ModOct:
		return "oct"
	case ModChar:
		return "char"
	}
	return ""
}

// Pos is the position attached to diagnostics.
type Pos struct {
	Filename string
	Line     int // 1-based line number
	Column   int // 1-based column number, in bytes
}

func (p Pos) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Span represents the source location of a token
type Span struct {
	Pos
	Start int // byte offset of the first byte
	End   int // exclusive end offset
}

// Token represents a lexical token. Exactly one payload field is meaningful:
// Int for INT, Float for FLOAT, Name for STR, NAME and KEYWORD.
type Token struct {
	Type  TokenType
	Mod   Mod
	Span  Span
	Int   uint64
	Float float64
	Name  intern.Name
}

// Text describes the token for diagnostics: the spelling of a name or
// keyword, otherwise the name of its type.
func (t Token) Text() string {
	if t.Type == NAME || t.Type == KEYWORD {
		return t.Name.String()
	}
	return t.Type.String()
}

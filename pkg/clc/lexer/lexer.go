// Package lexer converts calculator source text into tokens: numeric
// literals in four bases, history references, identifiers, operators,
// parentheses, and line breaks.
package lexer

import (
	"strconv"
	"strings"

	"github.com/aar10n/clc/pkg/clc/clcerr"
)

// TokenType represents different types of tokens
type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Literals and identifiers
	INT       // 10, 0xA, 0o777, 0b00101
	FLOAT     // 3.141, 0.0001, .5, 2.
	REFERENCE // $1, $2, $3
	IDENT     // sin, cos, PI, u32

	// Operators
	UNARY_OP  // -u, +u, !u, ~u
	BINARY_OP // *, /, %, <<, ==, ...

	// Delimiters
	LPAREN  // (
	RPAREN  // )
	NEWLINE // \n
)

// String returns a string representation of the token type
func (tt TokenType) String() string {
	switch tt {
	case ILLEGAL:
		return "ILLEGAL"
	case EOF:
		return "EOF"
	case INT:
		return "INT"
	case FLOAT:
		return "FLOAT"
	case REFERENCE:
		return "REFERENCE"
	case IDENT:
		return "IDENT"
	case UNARY_OP:
		return "UNARY_OP"
	case BINARY_OP:
		return "BINARY_OP"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case NEWLINE:
		return "NEWLINE"
	default:
		return "UNKNOWN"
	}
}

// Token represents a single token. Operator tokens carry their textual
// symbol in Literal, with a "u" suffix distinguishing the unary forms
// ("-u" vs "-") so later stages never re-inspect context.
type Token struct {
	Type    TokenType
	Literal string
	Int     uint64  // payload for INT and REFERENCE
	Float   float64 // payload for FLOAT
	Line    int
	Column  int
}

// String returns a string representation of the token
func (t Token) String() string {
	return t.Type.String() + "(" + t.Literal + ")"
}

// operators holds the fixed operator lexemes, longest first so matching is
// longest-match.
var operators = []string{
	"==", "!=", ">=", "<=", "<<", ">>", "&&", "||",
	"=", ">", "<", "&", "|", "^", "~", "!", "+", "-", "*", "/", "%",
}

// unaryPosition reports whether a '+' or '-' at the current position is
// unary: at the start of input or immediately after another operator, an
// opening parenthesis, or a line break. The previous emitted token is the
// only context consulted.
func unaryPosition(prev TokenType) bool {
	switch prev {
	case NEWLINE, UNARY_OP, BINARY_OP, LPAREN:
		return true
	default:
		return false
	}
}

// Lexer tokenizes calculator input.
type Lexer struct {
	input        string
	position     int  // current position (points to ch)
	readPosition int  // next reading position
	ch           byte // current char (0 == EOF)
	line         int
	column       int
	lastType     TokenType // previous emitted token, for sign disambiguation
}

// New creates a new lexer instance for the given input.
func New(input string) *Lexer {
	l := &Lexer{
		input:    input,
		line:     1,
		column:   0,
		lastType: NEWLINE, // start of input behaves like after a line break
	}
	l.readChar()
	return l
}

// Tokenize converts the whole input into a token stream.
func Tokenize(input string) ([]Token, error) {
	l := New(input)
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}
	l.ch = l.input[l.readPosition]
	l.position = l.readPosition
	l.readPosition++
	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
}

// peekChar returns the next character without consuming it.
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func isDigit(ch byte) bool  { return ch >= '0' && ch <= '9' }
func isLetter(ch byte) bool { return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' }
func isIdentChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}

func digitInBase(ch byte, base int) bool {
	switch base {
	case 2:
		return ch == '0' || ch == '1'
	case 8:
		return ch >= '0' && ch <= '7'
	case 10:
		return isDigit(ch)
	default:
		return isDigit(ch) || ch >= 'a' && ch <= 'f' || ch >= 'A' && ch <= 'F'
	}
}

// NextToken scans and returns the next token, or EOF at end of input.
func (l *Lexer) NextToken() (Token, error) {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}

	line, column := l.line, l.column
	var tok Token
	var err error

	switch {
	case l.ch == 0:
		return Token{Type: EOF, Line: line, Column: column}, nil
	case l.ch == '\n':
		l.readChar()
		tok = Token{Type: NEWLINE, Literal: "\n"}
	case l.ch == '(':
		l.readChar()
		tok = Token{Type: LPAREN, Literal: "("}
	case l.ch == ')':
		l.readChar()
		tok = Token{Type: RPAREN, Literal: ")"}
	case l.ch == '0' && (l.peekChar() == 'b' || l.peekChar() == 'o' || l.peekChar() == 'x'):
		tok, err = l.readPrefixedInteger()
	case isDigit(l.ch) || l.ch == '.':
		tok, err = l.readNumber()
	case l.ch == '$':
		tok, err = l.readReference()
	case isLetter(l.ch):
		tok = l.readIdentifier()
	default:
		tok, err = l.readOperator()
	}
	if err != nil {
		return Token{}, err
	}

	tok.Line = line
	tok.Column = column
	l.lastType = tok.Type
	return tok, nil
}

// readPrefixedInteger reads a 0b/0o/0x-prefixed integer literal.
func (l *Lexer) readPrefixedInteger() (Token, error) {
	start := l.position
	base := 2
	switch l.peekChar() {
	case 'o':
		base = 8
	case 'x':
		base = 16
	}
	l.readChar() // '0'
	l.readChar() // prefix letter

	digits := l.position
	for digitInBase(l.ch, base) {
		l.readChar()
	}
	literal := l.input[start:l.position]
	if l.position == digits || isIdentChar(l.ch) {
		for isIdentChar(l.ch) {
			l.readChar()
		}
		return Token{}, clcerr.NewWithPosition("LEX-0002", l.line, l.column, map[string]any{
			"Literal": l.input[start:l.position],
		})
	}

	v, err := strconv.ParseUint(l.input[digits:l.position], base, 64)
	if err != nil {
		return Token{}, clcerr.NewWithPosition("LEX-0002", l.line, l.column, map[string]any{
			"Literal": literal,
		})
	}
	return Token{Type: INT, Literal: literal, Int: v}, nil
}

// readNumber reads a decimal integer or float literal. A literal is a float
// iff it contains a '.'; either side of the '.' may be empty ("2." and ".5"
// are both valid).
func (l *Lexer) readNumber() (Token, error) {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}

	isFloat := false
	if l.ch == '.' {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	literal := l.input[start:l.position]
	if isIdentChar(l.ch) || literal == "." {
		for isIdentChar(l.ch) {
			l.readChar()
		}
		code := "LEX-0002"
		if isFloat {
			code = "LEX-0003"
		}
		return Token{}, clcerr.NewWithPosition(code, l.line, l.column, map[string]any{
			"Literal": l.input[start:l.position],
		})
	}

	if isFloat {
		v, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return Token{}, clcerr.NewWithPosition("LEX-0003", l.line, l.column, map[string]any{
				"Literal": literal,
			})
		}
		return Token{Type: FLOAT, Literal: literal, Float: v}, nil
	}

	v, err := strconv.ParseUint(literal, 10, 64)
	if err != nil {
		return Token{}, clcerr.NewWithPosition("LEX-0002", l.line, l.column, map[string]any{
			"Literal": literal,
		})
	}
	return Token{Type: INT, Literal: literal, Int: v}, nil
}

// readReference reads a $N history reference. N is decimal with no leading
// zero (except "$0" itself, which is simply out of range at evaluation).
func (l *Lexer) readReference() (Token, error) {
	start := l.position
	l.readChar() // '$'

	digits := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	literal := l.input[start:l.position]

	bad := l.position == digits || isIdentChar(l.ch)
	if !bad && literal[1] == '0' && len(literal) > 2 {
		bad = true // leading zero
	}
	if bad {
		for isIdentChar(l.ch) {
			l.readChar()
		}
		return Token{}, clcerr.NewWithPosition("LEX-0004", l.line, l.column, map[string]any{
			"Literal": l.input[start:l.position],
		})
	}

	v, err := strconv.ParseUint(literal[1:], 10, 64)
	if err != nil {
		return Token{}, clcerr.NewWithPosition("LEX-0004", l.line, l.column, map[string]any{
			"Literal": literal,
		})
	}
	return Token{Type: REFERENCE, Literal: literal, Int: v}, nil
}

// readIdentifier reads [A-Za-z][A-Za-z0-9_]*.
func (l *Lexer) readIdentifier() Token {
	start := l.position
	for isIdentChar(l.ch) {
		l.readChar()
	}
	return Token{Type: IDENT, Literal: l.input[start:l.position]}
}

// readOperator matches the longest operator lexeme at the current position,
// classifying '+' and '-' by look-back at the previous emitted token.
func (l *Lexer) readOperator() (Token, error) {
	rest := l.input[l.position:]
	for _, op := range operators {
		if !strings.HasPrefix(rest, op) {
			continue
		}
		for range op {
			l.readChar()
		}

		switch op {
		case "!", "~":
			// always unary
			return Token{Type: UNARY_OP, Literal: op + "u"}, nil
		case "+", "-":
			if unaryPosition(l.lastType) {
				return Token{Type: UNARY_OP, Literal: op + "u"}, nil
			}
			return Token{Type: BINARY_OP, Literal: op}, nil
		default:
			return Token{Type: BINARY_OP, Literal: op}, nil
		}
	}

	return Token{}, clcerr.NewWithPosition("LEX-0001", l.line, l.column, map[string]any{
		"Char": string(l.ch),
	})
}

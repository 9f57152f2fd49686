// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scan tokenizes set-value binding expressions.
package scan // import "bindkit.dev/setvalue/scan"

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token represents a token or text string returned from the scanner.
type Token struct {
	Type   Type   // The type of this item.
	Offset int    // Byte offset of the token in the input.
	Text   string // The text of this item.
}

// Type identifies the type of lex items.
type Type int

const (
	EOF   Type = iota // zero value so an empty token is EOF
	Error             // error occurred; value is text of error
	// Interesting things
	Assign     // '='
	Char       // printable ASCII character; grab bag for '#' etc.
	Colon      // ':'
	Comma      // ','
	Dot        // '.'
	Identifier // alphanumeric identifier, possibly starting with '$'
	LeftBrack  // '['
	LeftParen  // '('
	Number     // simple number
	Operator   // known operator
	Question   // '?'
	RightBrack // ']'
	RightParen // ')'
	String     // quoted string (includes quotes)
)

var typeNames = [...]string{
	EOF:        "EOF",
	Error:      "Error",
	Assign:     "Assign",
	Char:       "Char",
	Colon:      "Colon",
	Comma:      "Comma",
	Dot:        "Dot",
	Identifier: "Identifier",
	LeftBrack:  "LeftBrack",
	LeftParen:  "LeftParen",
	Number:     "Number",
	Operator:   "Operator",
	Question:   "Question",
	RightBrack: "RightBrack",
	RightParen: "RightParen",
	String:     "String",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

func (i Token) String() string {
	switch {
	case i.Type == EOF:
		return "EOF"
	case i.Type == Error:
		return "error: " + i.Text
	case len(i.Text) > 10:
		return fmt.Sprintf("%s: %.10q...", i.Type, i.Text)
	}
	return fmt.Sprintf("%s: %q", i.Type, i.Text)
}

const eof = -1

// stateFn represents the state of the scanner as a function that returns the next state.
type stateFn func(*Scanner) stateFn

// Scanner holds the state of the scanner.
type Scanner struct {
	input     string // the expression being scanned.
	lastRune  rune   // most recent return from next()
	lastWidth int    // size of that rune
	pos       int    // current position in the input
	start     int    // start position of this item
	token     Token
}

// New creates and returns a new scanner for the expression.
func New(input string) *Scanner {
	return &Scanner{input: input}
}

// All scans the whole input. The returned slice always ends with
// an EOF or an Error token.
func All(input string) []Token {
	l := New(input)
	var toks []Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == EOF || tok.Type == Error {
			return toks
		}
	}
}

// next returns the next rune in the input.
func (l *Scanner) next() rune {
	if l.pos >= len(l.input) {
		l.lastRune, l.lastWidth = eof, 0
		return eof
	}
	l.lastRune, l.lastWidth = utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += l.lastWidth
	return l.lastRune
}

// peek returns but does not consume the next rune in the input.
func (l *Scanner) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// backup steps back one rune. Should only be called once per call of next.
func (l *Scanner) backup() {
	if l.lastRune == eof {
		return
	}
	l.pos -= l.lastWidth
}

// emit passes an item back to the client.
func (l *Scanner) emit(t Type) stateFn {
	l.token = Token{t, l.start, l.input[l.start:l.pos]}
	l.start = l.pos
	return nil
}

// accept consumes the next rune if it's from the valid set.
func (l *Scanner) accept(valid string) bool {
	if strings.ContainsRune(valid, l.next()) {
		return true
	}
	l.backup()
	return false
}

// acceptRun consumes a run of runes from the valid set.
func (l *Scanner) acceptRun(valid string) {
	for strings.ContainsRune(valid, l.next()) {
	}
	l.backup()
}

// errorf returns an error token and empties the input.
func (l *Scanner) errorf(format string, args ...any) stateFn {
	l.token = Token{Error, l.start, fmt.Sprintf(format, args...)}
	l.start = len(l.input)
	l.pos = len(l.input)
	return nil
}

// Next returns the next token.
func (l *Scanner) Next() Token {
	l.lastRune = eof
	l.lastWidth = 0
	l.token = Token{EOF, l.pos, "EOF"}
	state := lexAny
	for {
		state = state(l)
		if state == nil {
			return l.token
		}
	}
}

// state functions

// lexAny scans non-space items.
func lexAny(l *Scanner) stateFn {
	switch r := l.next(); {
	case r == eof:
		return nil
	case isSpace(r):
		return lexSpace
	case r == '\'' || r == '"' || r == '`':
		l.backup() // So lexQuote can read the quote character.
		return lexQuote
	case '0' <= r && r <= '9':
		l.backup()
		return lexNumber
	case r == '.':
		if isDigit(l.peek()) {
			l.backup()
			return lexNumber
		}
		return l.emit(Dot)
	case r == '=':
		if l.peek() != '=' {
			return l.emit(Assign)
		}
		l.backup()
		return lexOperator
	case isOperatorStart(r):
		l.backup()
		return lexOperator
	case r == '$' || isAlphaNumeric(r):
		l.backup()
		return lexIdentifier
	case r == ',':
		return l.emit(Comma)
	case r == '?':
		return l.emit(Question)
	case r == ':':
		return l.emit(Colon)
	case r == '[':
		return l.emit(LeftBrack)
	case r == ']':
		return l.emit(RightBrack)
	case r == '(':
		return l.emit(LeftParen)
	case r == ')':
		return l.emit(RightParen)
	case r <= unicode.MaxASCII && unicode.IsPrint(r):
		return l.emit(Char)
	default:
		return l.errorf("unrecognized character: %#U", r)
	}
}

// lexSpace scans a run of space characters.
// One space has already been seen.
func lexSpace(l *Scanner) stateFn {
	for isSpace(l.peek()) {
		l.next()
	}
	// Skips over the pending input.
	l.start = l.pos
	return lexAny
}

// lexIdentifier scans an alphanumeric, which may be introduced by '$'.
func lexIdentifier(l *Scanner) stateFn {
	l.accept("$")
	for isAlphaNumeric(l.peek()) {
		l.next()
	}
	if l.pos-l.start == 1 && l.input[l.start] == '$' {
		return l.errorf("bad identifier %q", "$")
	}
	return l.emit(Identifier)
}

// lexOperator scans the longest operator at the current position.
func lexOperator(l *Scanner) stateFn {
	rest := l.input[l.pos:]
	for _, op := range operators {
		if strings.HasPrefix(rest, op) {
			l.pos += len(op)
			return l.emit(Operator)
		}
	}
	return l.errorf("unrecognized operator at %q", rest[:1])
}

// operators lists the operators, longest first so scanning is greedy.
var operators = []string{
	"===", "!==",
	"==", "!=", "<=", ">=", "&&", "||",
	"<", ">", "+", "-", "*", "/", "%", "!",
}

// lexNumber scans a decimal number, possibly with a fraction and exponent.
// This isn't a perfect number scanner but when it's wrong the input is
// invalid and the parser (via strconv) will notice.
func lexNumber(l *Scanner) stateFn {
	l.acceptRun(decimal)
	if l.accept(".") {
		l.acceptRun(decimal)
	}
	if l.accept("eE") {
		l.accept("+-")
		l.acceptRun(decimal)
	}
	if r := l.peek(); isAlphaNumeric(r) || r == '.' {
		l.next()
		return l.errorf("bad number syntax: %s", l.input[l.start:l.pos])
	}
	return l.emit(Number)
}

const decimal = "0123456789"

// lexQuote scans a quoted string.
// The next character is the quote.
func lexQuote(l *Scanner) stateFn {
	quote := l.next()
	for {
		switch l.next() {
		case '\\':
			if r := l.next(); r != eof {
				break
			}
			fallthrough
		case eof:
			return l.errorf("unterminated quoted string")
		case quote:
			return l.emit(String)
		}
	}
}

// isSpace reports whether r is a space character.
func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// isOperatorStart reports whether r can begin an operator.
func isOperatorStart(r rune) bool {
	return strings.ContainsRune("!<>&|+-*/%", r)
}

// isAlphaNumeric reports whether r is an alphabetic, digit, or underscore.
func isAlphaNumeric(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isDigit reports whether r is an ASCII digit.
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

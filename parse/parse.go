// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parse compiles set-value binding expressions of the form
// target = source into programs.
//
// Each side is classified by the accessor marker it contains, in priority
// order attr(...), prop(...), $globals; a side without a marker is a
// bound-data path. Only the first matching kind is enabled for a side.
package parse // import "bindkit.dev/setvalue/parse"

import (
	"fmt"
	"strings"

	"bindkit.dev/setvalue/program"
	"bindkit.dev/setvalue/scan"
)

// Kind is the addressing mode of one side of a binding.
type Kind int

const (
	Data   Kind = iota // bound-data path
	Attr               // attr(selector, name[, global])
	Prop               // prop(selector, name[, global])
	Global             // $globals.path
)

func (k Kind) String() string {
	switch k {
	case Data:
		return "data"
	case Attr:
		return "attr"
	case Prop:
		return "prop"
	case Global:
		return "global"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Classify reports the accessor kind of one side of a binding.
func Classify(side string) Kind {
	return classify(scan.All(side))
}

func classify(toks []scan.Token) Kind {
	call := func(name string) bool {
		for i, t := range toks {
			if t.Type == scan.Identifier && t.Text == name && i+1 < len(toks) && toks[i+1].Type == scan.LeftParen {
				return true
			}
		}
		return false
	}
	switch {
	case call("attr"):
		return Attr
	case call("prop"):
		return Prop
	}
	for _, t := range toks {
		if t.Type == scan.Identifier && isGlobalMarker(t.Text) {
			return Global
		}
	}
	return Data
}

func isGlobalMarker(s string) bool {
	return s == "$globals" || s == "$global"
}

// parser parses the tokens of one side.
type parser struct {
	c    *compilation
	toks []scan.Token // Ends with EOF.
	pos  int
	kind Kind
}

func (p *parser) next() scan.Token {
	tok := p.peek()
	if tok.Type != scan.EOF {
		p.pos++
	}
	return tok
}

func (p *parser) peek() scan.Token {
	return p.toks[p.pos]
}

func (p *parser) backup() {
	p.pos--
}

func (p *parser) errorf(tok scan.Token, format string, args ...any) {
	p.c.errorf(tok.Offset, format, args...)
}

func (p *parser) expect(typ scan.Type, what string) scan.Token {
	tok := p.next()
	if tok.Type != typ {
		p.errorf(tok, "expected %s; found %s", what, describe(tok))
	}
	return tok
}

func (p *parser) expectEOF(what string) {
	if tok := p.peek(); tok.Type != scan.EOF {
		p.errorf(tok, "unexpected %s after %s", describe(tok), what)
	}
}

func describe(tok scan.Token) string {
	if tok.Type == scan.EOF {
		return "end of expression"
	}
	return fmt.Sprintf("%q", tok.Text)
}

// target parses the assignment target and returns its statement template.
//
//	target
//		attr '(' selector ',' name [',' flag] ')'
//		prop '(' selector ',' name [',' flag] ')'
//		'$globals' ['.' path]
//		path
func (p *parser) target() program.Stmt {
	var tmpl program.Stmt
	switch p.kind {
	case Attr:
		a := p.accessor("attr")
		tmpl = &program.SetAttribute{Elem: p.c.element(a), Name: a.name, Value: program.Placeholder{}}
	case Prop:
		a := p.accessor("prop")
		tmpl = &program.SetMember{Target: member(p.c.element(a), a.name), Value: program.Placeholder{}}
	case Global:
		tmpl = &program.SetProperty{Scope: program.Global(p.c.globalContext), Path: p.globalPath(), Value: program.Placeholder{}}
	default:
		tok := p.peek()
		if tok.Type != scan.Identifier || strings.HasPrefix(tok.Text, "$") || keywords[tok.Text] {
			p.errorf(tok, "cannot assign to %s", describe(tok))
		}
		path := strings.Join(p.path(), ".")
		tmpl = &program.SetProperty{Scope: program.Bound(p.c.contextID), Path: path, Value: program.Placeholder{}}
	}
	p.expectEOF("assignment target")
	return tmpl
}

// source parses the value expression.
func (p *parser) source() program.Expr {
	x := p.expr()
	p.expectEOF("value")
	return x
}

// reserved is the placeholder name; it may not appear in a binding.
const reserved = "__value__"

// path parses a dotted identifier path.
func (p *parser) path() []string {
	segs := []string{p.segment("property name")}
	for p.peek().Type == scan.Dot {
		p.next()
		segs = append(segs, p.segment("property name after '.'"))
	}
	return segs
}

func (p *parser) segment(what string) string {
	tok := p.expect(scan.Identifier, what)
	if tok.Text == reserved {
		p.errorf(tok, "%s is a reserved name", reserved)
	}
	return tok.Text
}

var keywords = map[string]bool{
	"true":      true,
	"false":     true,
	"null":      true,
	"undefined": true,
	"this":      true,
}

var precedence = map[string]int{
	"||":  1,
	"&&":  2,
	"==":  3,
	"!=":  3,
	"===": 3,
	"!==": 3,
	"<":   4,
	"<=":  4,
	">":   4,
	">=":  4,
	"+":   5,
	"-":   5,
	"*":   6,
	"/":   6,
	"%":   6,
}

// expr
//
//	binary ['?' expr ':' expr]
func (p *parser) expr() program.Expr {
	x := p.binary(1)
	if p.peek().Type != scan.Question {
		return x
	}
	p.next()
	then := p.expr()
	p.expect(scan.Colon, "':' in conditional expression")
	return &program.Cond{Cond: x, Then: then, Else: p.expr()}
}

// binary
//
//	unary [binaryOp binary]...
//
// Operators of equal precedence associate to the left.
func (p *parser) binary(prec int) program.Expr {
	x := p.unary()
	for {
		tok := p.peek()
		if tok.Type != scan.Operator {
			return x
		}
		q, ok := precedence[tok.Text]
		if !ok || q < prec {
			return x
		}
		p.next()
		x = &program.Binary{Op: tok.Text, Left: x, Right: p.binary(q + 1)}
	}
}

// unary
//
//	('!' | '-' | '+') unary
//	postfix
func (p *parser) unary() program.Expr {
	tok := p.peek()
	if tok.Type == scan.Operator {
		switch tok.Text {
		case "!", "-", "+":
			p.next()
			return &program.Unary{Op: tok.Text, X: p.unary()}
		}
	}
	return p.postfix(p.primary())
}

// postfix
//
//	primary ['.' name | '.' name '(' args ')' | '[' expr ']']...
func (p *parser) postfix(x program.Expr) program.Expr {
	for {
		switch tok := p.peek(); tok.Type {
		case scan.Dot:
			p.next()
			name := p.segment("property name after '.'")
			if p.peek().Type == scan.LeftParen {
				x = &program.Call{Recv: x, Method: name, Args: p.args()}
			} else {
				x = &program.Member{X: x, Name: name}
			}
		case scan.LeftBrack:
			p.next()
			ix := p.expr()
			p.expect(scan.RightBrack, "']'")
			x = &program.Index{X: x, Index: ix}
		case scan.LeftParen:
			p.errorf(tok, "%s is not a function", x.ProgString())
		default:
			return x
		}
	}
}

// args parses a parenthesized argument list.
func (p *parser) args() []program.Expr {
	p.expect(scan.LeftParen, "'('")
	if p.peek().Type == scan.RightParen {
		p.next()
		return nil
	}
	var args []program.Expr
	for {
		args = append(args, p.expr())
		switch tok := p.next(); tok.Type {
		case scan.Comma:
		case scan.RightParen:
			return args
		default:
			p.errorf(tok, "expected ',' or ')' in argument list; found %s", describe(tok))
		}
	}
}

// primary
//
//	number
//	string
//	'(' expr ')'
//	identifier
func (p *parser) primary() program.Expr {
	tok := p.next()
	switch tok.Type {
	case scan.Number:
		lit, err := program.NumberLit(tok.Text)
		if err != nil {
			p.errorf(tok, "bad number %q", tok.Text)
		}
		return lit
	case scan.String:
		return program.StringLit(p.unquote(tok))
	case scan.LeftParen:
		x := p.expr()
		p.expect(scan.RightParen, "')'")
		return &program.Paren{X: x}
	case scan.Identifier:
		return p.identifier(tok)
	case scan.EOF:
		p.errorf(tok, "missing operand")
	}
	p.errorf(tok, "unexpected %s", describe(tok))
	panic("not reached")
}

// identifier resolves a name in value position.
//
//	literal name: true false null undefined
//	placeholder: $event $target $element
//	accessor: attr(...) prop(...) $globals.path
//	path
func (p *parser) identifier(tok scan.Token) program.Expr {
	switch tok.Text {
	case "true":
		return program.BoolLit(true)
	case "false":
		return program.BoolLit(false)
	case "null":
		return program.NullLit()
	case "undefined":
		return program.UndefinedLit()
	case "$event":
		return program.EventRef{}
	case "$target":
		return program.TargetRef{}
	case "$element":
		return program.ElementRef{}
	case "attr", "prop":
		if p.peek().Type == scan.LeftParen {
			p.backup()
			return p.accessorGet(tok)
		}
	case "this":
		p.errorf(tok, "this is only valid as a prop(...) selector")
	}
	if isGlobalMarker(tok.Text) {
		if p.kind != Global {
			p.errorf(tok, "cannot mix %s with %s accessors in one side", tok.Text, p.kind)
		}
		p.backup()
		return &program.GetProperty{Scope: program.Global(p.c.globalContext), Path: p.globalPath()}
	}
	if strings.HasPrefix(tok.Text, "$") {
		p.errorf(tok, "unknown placeholder %s", tok.Text)
	}
	p.backup()
	segs := p.path()
	if p.peek().Type == scan.LeftParen {
		if len(segs) == 1 {
			p.errorf(tok, "unknown function %s", segs[0])
		}
		recv := &program.GetProperty{Scope: program.Bound(p.c.contextID), Path: strings.Join(segs[:len(segs)-1], ".")}
		return &program.Call{Recv: recv, Method: segs[len(segs)-1], Args: p.args()}
	}
	return &program.GetProperty{Scope: program.Bound(p.c.contextID), Path: strings.Join(segs, ".")}
}

// member returns x.path as nested member accesses.
func member(x program.Expr, path string) *program.Member {
	parts := strings.Split(path, ".")
	m := &program.Member{X: x, Name: parts[0]}
	for _, name := range parts[1:] {
		m = &program.Member{X: m, Name: name}
	}
	return m
}

// unquote returns the contents of a string token with escapes processed.
func (p *parser) unquote(tok scan.Token) string {
	s, err := unquote(tok.Text)
	if err != nil {
		p.errorf(tok, "%s in string %s", err, tok.Text)
	}
	return s
}

func unquote(s string) (string, error) {
	if len(s) < 2 {
		return "", fmt.Errorf("bad quoting")
	}
	body := s[1 : len(s)-1]
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i == len(body) {
			return "", fmt.Errorf("bad escape")
		}
		switch c = body[i]; c {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case 'x', 'u':
			n := 2
			if c == 'u' {
				n = 4
			}
			if i+1+n > len(body) {
				return "", fmt.Errorf("bad \\%c escape", c)
			}
			var r rune
			for _, h := range body[i+1 : i+1+n] {
				d := strings.IndexRune("0123456789abcdef", toLower(h))
				if d < 0 {
					return "", fmt.Errorf("bad \\%c escape", c)
				}
				r = r<<4 | rune(d)
			}
			b.WriteRune(r)
			i += n
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

func toLower(r rune) rune {
	if 'A' <= r && r <= 'Z' {
		return r + 'a' - 'A'
	}
	return r
}

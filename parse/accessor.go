// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"bindkit.dev/setvalue/program"
	"bindkit.dev/setvalue/scan"
)

// accessor is a parsed attr(...) or prop(...) marker.
type accessor struct {
	fn       string // "attr" or "prop"
	self     bool   // The bound element; no lookup.
	selector string
	global   bool // Search the whole document.
	name     string
}

var (
	attrName = regexp.MustCompile(`^[A-Za-z_:][A-Za-z0-9_:.-]*$`)
	propName = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)*$`)
)

// accessor parses
//
//	fn '(' selector ',' name [',' flag] ')'
//
// The arguments are taken as raw text: the selector must be a string or
// the current-element sentinel, the name may be quoted, and the flag
// selects a document-wide search when its first word is true.
func (p *parser) accessor(fn string) accessor {
	open := p.next()
	if open.Type != scan.Identifier || open.Text != fn {
		p.errorf(open, "assignment target must be %s(...); found %s", fn, describe(open))
	}
	p.expect(scan.LeftParen, "'(' after "+fn)
	var args [][]scan.Token
	var cur []scan.Token
	depth := 0
	for done := false; !done; {
		tok := p.next()
		switch tok.Type {
		case scan.EOF:
			p.errorf(open, "unbalanced parentheses in %s(...)", fn)
		case scan.LeftParen, scan.LeftBrack:
			depth++
		case scan.RightParen, scan.RightBrack:
			if depth > 0 {
				depth--
				break
			}
			if tok.Type == scan.RightBrack {
				p.errorf(tok, "unbalanced brackets in %s(...)", fn)
			}
			args = append(args, cur)
			done = true
			continue
		case scan.Comma:
			if depth == 0 {
				args = append(args, cur)
				cur = nil
				continue
			}
		}
		cur = append(cur, tok)
	}
	switch {
	case len(args) < 2:
		p.errorf(open, "%s(...) needs a selector and a name", fn)
	case len(args) > 3:
		p.errorf(open, "too many arguments to %s(...)", fn)
	}
	for i, arg := range args {
		if len(arg) == 0 {
			p.errorf(open, "empty argument %d to %s(...)", i+1, fn)
		}
	}

	a := accessor{fn: fn}
	sel := args[0]
	switch {
	case len(sel) == 1 && sel[0].Type == scan.String:
		a.selector = p.unquote(sel[0])
		if strings.TrimSpace(a.selector) == "" {
			p.errorf(sel[0], "empty selector in %s(...)", fn)
		}
	case len(sel) == 1 && sel[0].Type == scan.Identifier && sel[0].Text == "$element":
		a.self = true
	case len(sel) == 1 && sel[0].Type == scan.Identifier && sel[0].Text == "this" && fn == "prop":
		a.self = true
	default:
		p.errorf(sel[0], "selector in %s(...) must be a quoted string or $element", fn)
	}

	name := args[1]
	if len(name) == 1 && name[0].Type == scan.String {
		a.name = p.unquote(name[0])
	} else {
		a.name = p.raw(name)
	}
	valid := attrName
	if fn == "prop" {
		valid = propName
	}
	if !valid.MatchString(a.name) {
		p.errorf(name[0], "bad %s name %q", fn, a.name)
	}
	for _, seg := range strings.Split(a.name, ".") {
		if seg == reserved {
			p.errorf(name[0], "%s is a reserved name", reserved)
		}
	}

	if len(args) == 3 {
		// Only a leading "true" selects a global search; anything else is local.
		words := strings.Fields(p.raw(args[2]))
		a.global = len(words) > 0 && words[0] == "true"
	}
	return a
}

// raw returns the source text spanned by toks.
func (p *parser) raw(toks []scan.Token) string {
	first, last := toks[0], toks[len(toks)-1]
	return p.c.expr[first.Offset : last.Offset+len(last.Text)]
}

// accessorGet resolves an attr(...) or prop(...) read. The value is read
// into a local by a setup statement and the marker is replaced by that local,
// so trailing member accesses stay attached.
func (p *parser) accessorGet(tok scan.Token) program.Expr {
	want := Attr
	if tok.Text == "prop" {
		want = Prop
	}
	if p.kind != want {
		p.errorf(tok, "cannot mix %s(...) with %s accessors in one side", tok.Text, p.kind)
	}
	a := p.accessor(tok.Text)
	el := p.c.element(a)
	if a.fn == "attr" {
		return p.c.declare("attr", &program.Attribute{Elem: el, Name: a.name})
	}
	return p.c.declare("prop", member(el, a.name))
}

// globalPath parses '$globals' ['.' path] and returns the path.
// A missing path yields the empty path.
func (p *parser) globalPath() string {
	tok := p.next()
	if tok.Type != scan.Identifier || !isGlobalMarker(tok.Text) {
		p.errorf(tok, "assignment target must be $globals.path; found %s", describe(tok))
	}
	var path string
	if p.peek().Type == scan.Dot {
		p.next()
		if p.peek().Type == scan.Identifier {
			segs := p.path()
			// A call on the last segment is a method of the value, not part of the path.
			if p.peek().Type == scan.LeftParen && len(segs) > 1 {
				p.pos -= 2
				segs = segs[:len(segs)-1]
			}
			path = strings.Join(segs, ".")
		}
	}
	if path == "" {
		p.c.b.logger().Warn("Global accessor has no property path",
			zap.String("expression", p.c.expr),
			zap.Int("offset", tok.Offset))
	}
	return path
}

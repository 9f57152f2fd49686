// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package program

import (
	"fmt"
	"strconv"
	"strings"

	"bindkit.dev/setvalue/dom"
)

// Literal is a constant. Text is its JavaScript spelling.
type Literal struct {
	Text  string
	Value any
}

// StringLit returns the literal for s.
func StringLit(s string) *Literal {
	return &Literal{Text: Quote(s), Value: s}
}

// NumberLit returns the literal for the decimal number text.
func NumberLit(text string) (*Literal, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, err
	}
	return &Literal{Text: text, Value: f}, nil
}

// BoolLit returns the literal true or false.
func BoolLit(b bool) *Literal {
	return &Literal{Text: strconv.FormatBool(b), Value: b}
}

// NullLit returns the literal null.
func NullLit() *Literal {
	return &Literal{Text: "null", Value: nil}
}

// UndefinedLit returns the literal undefined.
func UndefinedLit() *Literal {
	return &Literal{Text: "undefined", Value: Undefined}
}

func (l *Literal) ProgString() string { return l.Text }

func (l *Literal) Eval(*Frame) (any, error) { return l.Value, nil }

// EventRef is the event parameter, written $event in bindings.
type EventRef struct{}

func (EventRef) ProgString() string { return "event" }

func (EventRef) Eval(f *Frame) (any, error) {
	if f.Event == nil {
		return Undefined, nil
	}
	return f.Event, nil
}

// TargetRef is the origin of the event's composed path, written $target.
// Under shadow DOM retargeting this is the real source element.
type TargetRef struct{}

func (TargetRef) ProgString() string { return "event.composedPath()[0]" }

func (TargetRef) Eval(f *Frame) (any, error) {
	if f.Event == nil {
		return nil, typeErrorf("cannot read properties of undefined (reading \"composedPath\")")
	}
	if t := f.Event.Origin(); t != nil {
		return t, nil
	}
	return Undefined, nil
}

// ElementRef is the element parameter: the bound element.
type ElementRef struct{}

func (ElementRef) ProgString() string { return "element" }

func (ElementRef) Eval(f *Frame) (any, error) {
	if f.Element == nil {
		return Undefined, nil
	}
	return f.Element, nil
}

// Var is a local declared by a setup statement.
type Var struct {
	Name string
}

func (v *Var) ProgString() string { return v.Name }

func (v *Var) Eval(f *Frame) (any, error) {
	x, err := f.lookup(v.Name)
	if err != nil {
		return nil, err
	}
	if u, ok := x.(unresolved); ok {
		return nil, &UnresolvedSelectorError{Selector: u.selector, Global: u.global}
	}
	return x, nil
}

// GetProperty reads a bound-data path from the data store.
type GetProperty struct {
	Scope Scope
	Path  string
}

func (g *GetProperty) ProgString() string {
	return fmt.Sprintf("await getProperty(%s, %s)", g.Scope, Quote(g.Path))
}

func (g *GetProperty) Eval(f *Frame) (any, error) {
	data, err := f.data()
	if err != nil {
		return nil, err
	}
	v, err := data.GetProperty(f.Ctx, g.Scope.resolve(f), g.Path)
	if err != nil {
		return nil, fmt.Errorf("getProperty %q: %w", g.Path, err)
	}
	return v, nil
}

// Attribute reads an attribute of an element; a missing attribute is null.
type Attribute struct {
	Elem Expr
	Name string
}

func (a *Attribute) ProgString() string {
	return fmt.Sprintf("%s.getAttribute(%s)", operand(a.Elem), Quote(a.Name))
}

func (a *Attribute) Eval(f *Frame) (any, error) {
	el, err := element(f, a.Elem, "getAttribute")
	if err != nil {
		return nil, err
	}
	if v, ok := el.Attribute(a.Name); ok {
		return v, nil
	}
	return nil, nil
}

// Member is X.Name.
type Member struct {
	X    Expr
	Name string
}

func (m *Member) ProgString() string {
	return operand(m.X) + "." + m.Name
}

func (m *Member) Eval(f *Frame) (any, error) {
	x, err := m.X.Eval(f)
	if err != nil {
		return nil, err
	}
	return getMember(x, m.Name)
}

// Index is X[Index].
type Index struct {
	X     Expr
	Index Expr
}

func (i *Index) ProgString() string {
	return fmt.Sprintf("%s[%s]", operand(i.X), i.Index.ProgString())
}

func (i *Index) Eval(f *Frame) (any, error) {
	x, err := i.X.Eval(f)
	if err != nil {
		return nil, err
	}
	ix, err := i.Index.Eval(f)
	if err != nil {
		return nil, err
	}
	return index(x, ix)
}

// Call is a method call Recv.Method(Args...).
type Call struct {
	Recv   Expr
	Method string
	Args   []Expr
}

func (c *Call) ProgString() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.ProgString()
	}
	return fmt.Sprintf("%s.%s(%s)", operand(c.Recv), c.Method, strings.Join(args, ", "))
}

func (c *Call) Eval(f *Frame) (any, error) {
	recv, err := c.Recv.Eval(f)
	if err != nil {
		return nil, err
	}
	args := make([]any, len(c.Args))
	for i, a := range c.Args {
		if args[i], err = a.Eval(f); err != nil {
			return nil, err
		}
	}
	return callMethod(recv, c.Method, args)
}

// Unary is a prefix operator applied to X.
type Unary struct {
	Op string
	X  Expr
}

func (u *Unary) ProgString() string {
	x := u.X.ProgString()
	// Keep - -x from printing as the decrement --x.
	if (u.Op == "-" || u.Op == "+") && (strings.HasPrefix(x, "-") || strings.HasPrefix(x, "+")) {
		return u.Op + " " + x
	}
	return u.Op + x
}

func (u *Unary) Eval(f *Frame) (any, error) {
	x, err := u.X.Eval(f)
	if err != nil {
		return nil, err
	}
	return unaryOp(u.Op, x)
}

// Binary is Left Op Right.
type Binary struct {
	Op    string
	Left  Expr
	Right Expr
}

func (b *Binary) ProgString() string {
	return fmt.Sprintf("%s %s %s", b.Left.ProgString(), b.Op, b.Right.ProgString())
}

func (b *Binary) Eval(f *Frame) (any, error) {
	lhs, err := b.Left.Eval(f)
	if err != nil {
		return nil, err
	}
	// && and || return an operand and short-circuit.
	switch b.Op {
	case "&&":
		if !truthy(lhs) {
			return lhs, nil
		}
		return b.Right.Eval(f)
	case "||":
		if truthy(lhs) {
			return lhs, nil
		}
		return b.Right.Eval(f)
	}
	rhs, err := b.Right.Eval(f)
	if err != nil {
		return nil, err
	}
	return binaryOp(b.Op, lhs, rhs)
}

// Cond is Cond ? Then : Else.
type Cond struct {
	Cond Expr
	Then Expr
	Else Expr
}

func (c *Cond) ProgString() string {
	return fmt.Sprintf("%s ? %s : %s", c.Cond.ProgString(), c.Then.ProgString(), c.Else.ProgString())
}

func (c *Cond) Eval(f *Frame) (any, error) {
	v, err := c.Cond.Eval(f)
	if err != nil {
		return nil, err
	}
	if truthy(v) {
		return c.Then.Eval(f)
	}
	return c.Else.Eval(f)
}

// Paren is a parenthesized expression from the binding text.
type Paren struct {
	X Expr
}

func (p *Paren) ProgString() string { return "(" + p.X.ProgString() + ")" }

func (p *Paren) Eval(f *Frame) (any, error) { return p.X.Eval(f) }

// Placeholder marks where an assignment template takes its value.
// A finished Program never contains one.
type Placeholder struct{}

func (Placeholder) ProgString() string { return "__value__" }

func (Placeholder) Eval(*Frame) (any, error) {
	return nil, fmt.Errorf("internal error: unfilled value placeholder")
}

// operand returns the source for x as the receiver of a member access,
// parenthesized when it would otherwise bind wrongly.
func operand(x Expr) string {
	switch x := x.(type) {
	case *GetProperty, *Unary, *Binary, *Cond:
		return "(" + x.ProgString() + ")"
	case *Literal:
		if _, ok := x.Value.(float64); ok {
			return "(" + x.Text + ")"
		}
	}
	return x.ProgString()
}

// element evaluates x, which must yield an element.
func element(f *Frame, x Expr, op string) (dom.Element, error) {
	v, err := x.Eval(f)
	if err != nil {
		return nil, err
	}
	if isNullish(v) {
		return nil, typeErrorf("cannot read properties of %s (reading %q)", toString(v), op)
	}
	el, ok := v.(dom.Element)
	if !ok {
		return nil, typeErrorf("%s is not an element", toString(v))
	}
	return el, nil
}

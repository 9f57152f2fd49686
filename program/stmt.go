// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package program

import (
	"fmt"

	"bindkit.dev/setvalue/dom"
)

// Lookup binds Name to the first element matching Selector, searched
// for in the whole document when Global is set and under the bound
// element otherwise.
type Lookup struct {
	Name     string
	Selector string
	Global   bool
}

func (l *Lookup) ProgString() string {
	root := "element"
	if l.Global {
		root = "document"
	}
	return fmt.Sprintf("const %s = %s.querySelector(%s)", l.Name, root, Quote(l.Selector))
}

func (l *Lookup) Exec(f *Frame) error {
	var root dom.Querier
	switch {
	case l.Global:
		if f.Document == nil {
			return &ReferenceError{Name: "document"}
		}
		root = f.Document
	case f.Element == nil:
		return typeErrorf("cannot read properties of undefined (reading \"querySelector\")")
	default:
		root = f.Element
	}
	el, err := root.QuerySelector(l.Selector)
	if err != nil {
		return err
	}
	if el == nil {
		f.declare(l.Name, unresolved{selector: l.Selector, global: l.Global})
		return nil
	}
	f.declare(l.Name, el)
	return nil
}

// Declare binds Name to the value of an expression.
type Declare struct {
	Name  string
	Value Expr
}

func (d *Declare) ProgString() string {
	return fmt.Sprintf("const %s = %s", d.Name, d.Value.ProgString())
}

func (d *Declare) Exec(f *Frame) error {
	v, err := d.Value.Eval(f)
	if err != nil {
		return err
	}
	f.declare(d.Name, v)
	return nil
}

// SetProperty writes Value to a bound-data path.
type SetProperty struct {
	Scope Scope
	Path  string
	Value Expr
}

func (s *SetProperty) ProgString() string {
	return fmt.Sprintf("await setProperty(%s, %s, %s)", s.Scope, Quote(s.Path), s.Value.ProgString())
}

func (s *SetProperty) Exec(f *Frame) error {
	v, err := s.Value.Eval(f)
	if err != nil {
		return err
	}
	data, err := f.data()
	if err != nil {
		return err
	}
	if err := data.SetProperty(f.Ctx, s.Scope.resolve(f), s.Path, v); err != nil {
		return fmt.Errorf("setProperty %q: %w", s.Path, err)
	}
	return nil
}

// SetAttribute sets an attribute of an element to the string form of Value.
type SetAttribute struct {
	Elem  Expr
	Name  string
	Value Expr
}

func (s *SetAttribute) ProgString() string {
	return fmt.Sprintf("%s.setAttribute(%s, %s)", operand(s.Elem), Quote(s.Name), s.Value.ProgString())
}

func (s *SetAttribute) Exec(f *Frame) error {
	el, err := element(f, s.Elem, "setAttribute")
	if err != nil {
		return err
	}
	v, err := s.Value.Eval(f)
	if err != nil {
		return err
	}
	el.SetAttribute(s.Name, toString(v))
	return nil
}

// SetMember assigns Value to a member, typically an element property.
type SetMember struct {
	Target *Member
	Value  Expr
}

func (s *SetMember) ProgString() string {
	return fmt.Sprintf("%s = %s", s.Target.ProgString(), s.Value.ProgString())
}

func (s *SetMember) Exec(f *Frame) error {
	obj, err := s.Target.X.Eval(f)
	if err != nil {
		return err
	}
	v, err := s.Value.Eval(f)
	if err != nil {
		return err
	}
	return setMember(obj, s.Target.Name, v)
}

// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package program holds the code generated for a binding expression:
// an ordered list of setup statements followed by a single assignment.
// A program can be printed as the body of a JavaScript
// async function(event, element) or executed directly.
package program // import "bindkit.dev/setvalue/program"

import (
	"strings"
)

// Expr is the interface for a generated expression.
type Expr interface {
	// ProgString returns the JavaScript source for the expression.
	ProgString() string

	Eval(*Frame) (any, error)
}

// Stmt is the interface for a generated statement.
type Stmt interface {
	// ProgString returns the JavaScript source for the statement,
	// without the trailing semicolon.
	ProgString() string

	Exec(*Frame) error
}

// Program is a compiled binding.
type Program struct {
	Setup  []Stmt // Run in order before Assign.
	Assign Stmt
}

// ProgString returns the function body, one statement per line.
func (p *Program) ProgString() string {
	var b strings.Builder
	for _, s := range p.Setup {
		b.WriteString(s.ProgString())
		b.WriteString(";\n")
	}
	if p.Assign != nil {
		b.WriteString(p.Assign.ProgString())
		b.WriteString(";\n")
	}
	return b.String()
}

func (p *Program) String() string {
	return p.ProgString()
}

// Exec runs the setup statements and then the assignment.
func (p *Program) Exec(f *Frame) error {
	for _, s := range p.Setup {
		if err := s.Exec(f); err != nil {
			return err
		}
	}
	if p.Assign == nil {
		return nil
	}
	return p.Assign.Exec(f)
}

// Fill returns a copy of the assignment template with its placeholder
// replaced by value. The boolean reports whether a placeholder was found.
func Fill(template Stmt, value Expr) (Stmt, bool) {
	switch s := template.(type) {
	case *SetProperty:
		if _, ok := s.Value.(Placeholder); ok {
			t := *s
			t.Value = value
			return &t, true
		}
	case *SetAttribute:
		if _, ok := s.Value.(Placeholder); ok {
			t := *s
			t.Value = value
			return &t, true
		}
	case *SetMember:
		if _, ok := s.Value.(Placeholder); ok {
			t := *s
			t.Value = value
			return &t, true
		}
	}
	return template, false
}

// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"fmt"

	"go.uber.org/zap"

	"bindkit.dev/setvalue/program"
	"bindkit.dev/setvalue/scan"
)

// Builder compiles binding expressions. The zero value is ready to use.
type Builder struct {
	// GlobalContext is the data context $globals paths resolve against.
	GlobalContext int
	Logger        *zap.Logger
}

func (b *Builder) logger() *zap.Logger {
	if b == nil || b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}

// Build compiles expr with the default builder.
func Build(expr string, contextID int) (*program.Program, error) {
	return new(Builder).Build(expr, contextID)
}

// Build compiles "target = source" for the bound context contextID.
// The target side is classified first, so its setup statements precede
// those of the source side; the assignment comes last.
func (b *Builder) Build(expr string, contextID int) (prog *program.Program, err error) {
	toks := scan.All(expr)
	i, err := assignIndex(expr, toks)
	if err != nil {
		return nil, err
	}
	c := &compilation{
		b:             b,
		expr:          expr,
		contextID:     contextID,
		globalContext: b.GlobalContext,
	}
	defer c.recover(&err)

	lhs := append(toks[:i:i], scan.Token{Type: scan.EOF, Offset: toks[i].Offset, Text: "EOF"})
	rhs := toks[i+1:]
	target := (&parser{c: c, toks: lhs, kind: classify(lhs)}).target()
	value := (&parser{c: c, toks: rhs, kind: classify(rhs)}).source()

	assign, ok := program.Fill(target, value)
	if !ok {
		c.errorf(toks[i].Offset, "internal error: assignment template has no value placeholder")
	}
	return &program.Program{Setup: c.setup, Assign: assign}, nil
}

// compilation is the state of one Build.
type compilation struct {
	b             *Builder
	expr          string
	contextID     int
	globalContext int
	setup         []program.Stmt // Append only.
	n             int            // Counter for generated local names.
}

func (c *compilation) errorf(offset int, format string, args ...any) {
	panic(&Error{Expr: c.expr, Offset: offset, Msg: fmt.Sprintf(format, args...)})
}

// recover turns a parse panic into an error return.
func (c *compilation) recover(errp *error) {
	e := recover()
	if e == nil {
		return
	}
	if e, ok := e.(*Error); ok {
		*errp = e
		return
	}
	panic(e)
}

// local returns a fresh local variable name.
func (c *compilation) local(prefix string) string {
	name := fmt.Sprintf("%s%d", prefix, c.n)
	c.n++
	return name
}

// element returns the expression for the element an accessor addresses,
// emitting a lookup unless it is the bound element.
func (c *compilation) element(a accessor) program.Expr {
	if a.self {
		return program.ElementRef{}
	}
	name := c.local("el")
	c.setup = append(c.setup, &program.Lookup{Name: name, Selector: a.selector, Global: a.global})
	return &program.Var{Name: name}
}

// declare emits a setup statement binding x to a fresh local.
func (c *compilation) declare(prefix string, x program.Expr) program.Expr {
	name := c.local(prefix)
	c.setup = append(c.setup, &program.Declare{Name: name, Value: x})
	return &program.Var{Name: name}
}

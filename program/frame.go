// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package program

import (
	"context"
	"fmt"

	"bindkit.dev/setvalue/dom"
	"bindkit.dev/setvalue/store"
)

// Frame is the environment a program executes in. It plays the part of the
// (event, element) parameters of the generated function plus the ambient
// collaborators the generated source refers to by name.
type Frame struct {
	Ctx      context.Context
	Event    *dom.Event
	Element  dom.Element
	Document dom.Querier
	Data     store.DataStore
	// Bound is the context identifier that bound-data paths resolve against.
	Bound int

	vars map[string]any
}

// NewFrame returns a frame ready for execution.
func NewFrame(ctx context.Context, event *dom.Event, element dom.Element, document dom.Querier, data store.DataStore, bound int) *Frame {
	return &Frame{
		Ctx:      ctx,
		Event:    event,
		Element:  element,
		Document: document,
		Data:     data,
		Bound:    bound,
	}
}

func (f *Frame) declare(name string, v any) {
	if f.vars == nil {
		f.vars = make(map[string]any)
	}
	f.vars[name] = v
}

func (f *Frame) lookup(name string) (any, error) {
	v, ok := f.vars[name]
	if !ok {
		return nil, &ReferenceError{Name: name}
	}
	return v, nil
}

func (f *Frame) data() (store.DataStore, error) {
	if f.Data == nil {
		return nil, &ReferenceError{Name: "data store"}
	}
	return f.Data, nil
}

// Scope selects the data context a property path resolves against.
type Scope struct {
	ID     int
	Global bool // Global scopes ignore the frame's bound context.
}

// Bound returns the scope of a binding compiled for context id.
func Bound(id int) Scope { return Scope{ID: id} }

// Global returns the fixed global scope with the given id.
func Global(id int) Scope { return Scope{ID: id, Global: true} }

func (s Scope) resolve(f *Frame) int {
	if s.Global {
		return s.ID
	}
	return f.Bound
}

func (s Scope) String() string {
	return fmt.Sprint(s.ID)
}

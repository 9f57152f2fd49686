// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dom defines the element and event handles a compiled
// binding runs against, and an implementation backed by an HTML tree.
package dom // import "bindkit.dev/setvalue/dom"

import "fmt"

// Object is anything whose members can be read and written by name.
type Object interface {
	// Get returns the named member and whether it exists.
	Get(name string) (any, bool)
	// Set assigns the named member.
	Set(name string, value any) error
}

// Querier resolves CSS selectors. Both documents and elements are queriers;
// an element searches only its descendants.
// A selector that matches nothing returns a nil Element and a nil error.
type Querier interface {
	QuerySelector(selector string) (Element, error)
}

// Element is a bound element.
type Element interface {
	Object
	Querier
	TagName() string
	Attribute(name string) (string, bool)
	SetAttribute(name, value string)
	Property(name string) (any, bool)
	SetProperty(name string, value any)
}

// Event is the event a binding reacts to.
type Event struct {
	Type   string
	Detail any
	// Path is the composed dispatch path, origin first.
	Path []Element
}

// NewEvent returns an event of the given type dispatched from origin.
func NewEvent(typ string, origin Element, detail any) *Event {
	e := &Event{Type: typ, Detail: detail}
	if origin != nil {
		e.Path = []Element{origin}
	}
	return e
}

// ComposedPath returns the dispatch path of the event.
func (e *Event) ComposedPath() []Element {
	return e.Path
}

// Origin returns the element the event was first dispatched on,
// or nil if the path is empty.
func (e *Event) Origin() Element {
	if len(e.Path) == 0 {
		return nil
	}
	return e.Path[0]
}

func (e *Event) Get(name string) (any, bool) {
	switch name {
	case "type":
		return e.Type, true
	case "detail":
		return e.Detail, true
	case "target":
		if t := e.Origin(); t != nil {
			return t, true
		}
		return nil, true
	}
	return nil, false
}

func (e *Event) Set(name string, value any) error {
	return fmt.Errorf("cannot assign to read only property %q of event", name)
}

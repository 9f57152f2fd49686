// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package program

import "fmt"

// UnresolvedSelectorError reports use of an element lookup that matched nothing.
type UnresolvedSelectorError struct {
	Selector string
	Global   bool // Whether the lookup searched the whole document.
}

func (e *UnresolvedSelectorError) Error() string {
	where := "element"
	if e.Global {
		where = "document"
	}
	return fmt.Sprintf("selector %q matched no element in %s", e.Selector, where)
}

// TypeError reports an operation on a value of the wrong kind,
// such as reading a member of null.
type TypeError struct {
	Msg string
}

func (e *TypeError) Error() string {
	return "type error: " + e.Msg
}

func typeErrorf(format string, args ...any) error {
	return &TypeError{Msg: fmt.Sprintf(format, args...)}
}

// RangeError reports a numeric argument outside the range a method allows.
type RangeError struct {
	Msg string
}

func (e *RangeError) Error() string {
	return "range error: " + e.Msg
}

// ReferenceError reports a name with no binding at run time.
type ReferenceError struct {
	Name string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s is not defined", e.Name)
}

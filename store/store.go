// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store provides the data store and event store that compiled
// bindings read from, write to and register with.
package store // import "bindkit.dev/setvalue/store"

import (
	"context"
	"errors"

	"bindkit.dev/setvalue/dom"
)

// ErrEmptyPath is returned when writing to an empty property path.
var ErrEmptyPath = errors.New("empty property path")

// DataStore reads and writes bound data. A context identifies the data
// scope a path resolves against; context 0 is conventionally the global scope.
type DataStore interface {
	GetProperty(ctx context.Context, contextID int, path string) (any, error)
	SetProperty(ctx context.Context, contextID int, path string, value any) error
}

// Setter is a resolved binding callable, invoked when an event fires.
type Setter func(ctx context.Context, event *dom.Event, contextID int) error

// EventStore holds the event registrations for bound elements.
type EventStore interface {
	Register(element dom.Element, event string, setter Setter)
	// Clear releases every registration for element.
	// It is a no-op if there are none.
	Clear(element dom.Element)
}

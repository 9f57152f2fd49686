// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/multierr"

	"bindkit.dev/setvalue/dom"
)

type registration struct {
	event  string
	setter Setter
}

// Events is an in-memory EventStore keyed by element.
type Events struct {
	mu   sync.Mutex
	regs map[dom.Element][]registration
}

var _ EventStore = (*Events)(nil)

// NewEvents returns an empty event store.
func NewEvents() *Events {
	return &Events{regs: make(map[dom.Element][]registration)}
}

func (s *Events) Register(element dom.Element, event string, setter Setter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regs[element] = append(s.regs[element], registration{event: event, setter: setter})
}

func (s *Events) Clear(element dom.Element) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.regs, element)
}

// Len reports how many registrations element holds.
func (s *Events) Len(element dom.Element) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.regs[element])
}

// Dispatch runs, in registration order, every setter element holds for the
// event's type. All setters run even if some fail; the failures are combined.
func (s *Events) Dispatch(ctx context.Context, element dom.Element, event *dom.Event, contextID int) error {
	s.mu.Lock()
	regs := append([]registration(nil), s.regs[element]...)
	s.mu.Unlock()

	var err error
	for _, r := range regs {
		if r.event != event.Type {
			continue
		}
		if e := r.setter(ctx, event, contextID); e != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", r.event, e))
		}
	}
	return err
}

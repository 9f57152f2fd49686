// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Memory is an in-memory DataStore. Each context holds a tree of
// map[string]any addressed by dotted paths.
type Memory struct {
	mu       sync.RWMutex
	contexts map[int]map[string]any
}

var _ DataStore = (*Memory)(nil)

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{contexts: make(map[int]map[string]any)}
}

// GetProperty returns the value at path, or nil if nothing is stored there.
func (m *Memory) GetProperty(ctx context.Context, contextID int, path string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if path == "" {
		return nil, nil
	}
	var cur any = m.contexts[contextID]
	for _, key := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, nil
		}
		cur = obj[key]
	}
	return cur, nil
}

// SetProperty stores value at path, creating intermediate objects.
func (m *Memory) SetProperty(ctx context.Context, contextID int, path string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if path == "" {
		return ErrEmptyPath
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	obj := m.contexts[contextID]
	if obj == nil {
		obj = make(map[string]any)
		m.contexts[contextID] = obj
	}
	keys := strings.Split(path, ".")
	for i, key := range keys[:len(keys)-1] {
		next, ok := obj[key].(map[string]any)
		if !ok {
			if obj[key] != nil {
				return fmt.Errorf("cannot set %q: %q is not an object", path, strings.Join(keys[:i+1], "."))
			}
			next = make(map[string]any)
			obj[key] = next
		}
		obj = next
	}
	obj[keys[len(keys)-1]] = value
	return nil
}

// Load decodes a YAML (or JSON) document into the context, replacing it.
func (m *Memory) Load(contextID int, r io.Reader) error {
	var data map[string]any
	if err := yaml.NewDecoder(r).Decode(&data); err != nil && err != io.EOF {
		return fmt.Errorf("loading context %d: %w", contextID, err)
	}
	if data == nil {
		data = make(map[string]any)
	}
	m.mu.Lock()
	m.contexts[contextID] = data
	m.mu.Unlock()
	return nil
}

// Dump writes the context as YAML.
func (m *Memory) Dump(contextID int, w io.Writer) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data := m.contexts[contextID]
	if data == nil {
		data = map[string]any{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return enc.Close()
}

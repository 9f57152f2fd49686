// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package run provides the execution control for setvalue.
// It is factored out of main so it can be used for tests.
package run // import "bindkit.dev/setvalue/run"

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"bindkit.dev/setvalue/config"
	"bindkit.dev/setvalue/directive"
	"bindkit.dev/setvalue/dom"
	"bindkit.dev/setvalue/store"
)

// Compile compiles each binding in input, one per line, and writes the
// generated function body of each to stdout. Blank lines and lines
// starting with # are skipped. Errors are written to stderr and do not
// stop the run. The return value reports whether every binding compiled.
func Compile(p *directive.Provider, contextID int, input string, stdout, stderr io.Writer) (success bool) {
	success = true
	scanner := bufio.NewScanner(strings.NewReader(input))
	for line := 1; scanner.Scan(); line++ {
		expr := strings.TrimSpace(scanner.Text())
		if expr == "" || strings.HasPrefix(expr, "#") {
			continue
		}
		in, err := p.Parse(expr, contextID)
		if err != nil {
			fmt.Fprintf(stderr, "%d: %s\n", line, err)
			success = false
			continue
		}
		fmt.Fprint(stdout, in.Source)
	}
	return success
}

// Page is a loaded HTML document with its data and event registrations.
type Page struct {
	Doc      *dom.Document
	Data     *store.Memory
	Events   *store.Events
	Provider *directive.Provider

	log *zap.Logger
}

// NewPage returns a page over doc and data with a fresh event store.
func NewPage(conf *config.Config, log *zap.Logger, doc *dom.Document, data *store.Memory) *Page {
	if log == nil {
		log = zap.NewNop()
	}
	events := store.NewEvents()
	p := directive.NewProvider(conf, data, events, doc)
	p.WithLogger(log)
	return &Page{
		Doc:      doc,
		Data:     data,
		Events:   events,
		Provider: p,
		log:      log,
	}
}

// BindMarkup registers every event.setvalue attribute in the document.
// All attributes are tried; the failures are combined.
func (pg *Page) BindMarkup(contextID int) error {
	var err error
	n := 0
	walkErr := pg.Doc.Elements(func(e *dom.Node) error {
		for _, a := range e.Attributes() {
			if !strings.HasSuffix(a.Name, directive.ProviderKey) {
				continue
			}
			if _, e2 := pg.Provider.ParseAttribute(e, a.Name, a.Value, contextID); e2 != nil {
				err = multierr.Append(err, fmt.Errorf("%s %s: %w", e, a.Name, e2))
				continue
			}
			n++
		}
		return nil
	})
	pg.log.Debug("Bound markup", zap.Int("bindings", n))
	return multierr.Append(walkErr, err)
}

// Bind registers expr for eventType on the first element matching selector.
func (pg *Page) Bind(selector, eventType, expr string, contextID int) error {
	el, err := pg.element(selector)
	if err != nil {
		return err
	}
	_, err = pg.Provider.ParseAttribute(el, eventType+directive.ProviderKey, expr, contextID)
	return err
}

// Fire dispatches an event of type eventType, carrying detail, on the
// first element matching selector.
func (pg *Page) Fire(ctx context.Context, selector, eventType string, detail any, contextID int) error {
	el, err := pg.element(selector)
	if err != nil {
		return err
	}
	if pg.Events.Len(el) == 0 {
		pg.log.Warn("No bindings on element", zap.String("selector", selector))
	}
	return pg.Events.Dispatch(ctx, el, dom.NewEvent(eventType, el, detail), contextID)
}

func (pg *Page) element(selector string) (dom.Element, error) {
	el, err := pg.Doc.QuerySelector(selector)
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, fmt.Errorf("no element matches %q", selector)
	}
	return el, nil
}

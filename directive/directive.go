// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package directive is the set-value directive a binding runtime talks to.
// It compiles binding expressions into intents, invokes resolved setters
// when events fire and releases event registrations.
package directive // import "bindkit.dev/setvalue/directive"

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"bindkit.dev/setvalue/config"
	"bindkit.dev/setvalue/dom"
	"bindkit.dev/setvalue/parse"
	"bindkit.dev/setvalue/program"
	"bindkit.dev/setvalue/store"
)

// ProviderKey tags every intent this package produces.
const ProviderKey = ".setvalue"

// Func is a compiled binding: it performs the assignment for one event
// on the element it is called with.
type Func func(ctx context.Context, event *dom.Event, element dom.Element) error

// Intent is a compiled binding expression.
type Intent struct {
	Provider string
	// Context is the bound context the expression was compiled for.
	Context int
	// Source is the body of the equivalent async function(event, element).
	Source  string
	Program *program.Program
	Value   Func

	run func(ctx context.Context, event *dom.Event, element dom.Element, bound int) error
}

// Bind returns the resolved setter for element. The setter runs the
// program with the context identifier it is invoked with as the bound
// context.
func (in *Intent) Bind(element dom.Element) store.Setter {
	return func(ctx context.Context, event *dom.Event, contextID int) error {
		return in.run(ctx, event, element, contextID)
	}
}

// Provider compiles and runs set-value bindings against injected
// collaborators.
type Provider struct {
	Data     store.DataStore
	Events   store.EventStore
	Document dom.Querier
	Logger   *zap.Logger

	conf *config.Config
}

// NewProvider returns a provider. A nil conf uses the zero configuration.
func NewProvider(conf *config.Config, data store.DataStore, events store.EventStore, doc dom.Querier) *Provider {
	if conf == nil {
		conf = new(config.Config)
	}
	return &Provider{
		Data:     data,
		Events:   events,
		Document: doc,
		Logger:   zap.NewNop(),
		conf:     conf,
	}
}

// WithLogger sets the logger used by the provider.
func (p *Provider) WithLogger(log *zap.Logger) {
	p.Logger = log.With(zap.String("provider", ProviderKey))
}

// Key returns the provider identifier.
func (p *Provider) Key() string { return ProviderKey }

func (p *Provider) builder() *parse.Builder {
	return &parse.Builder{GlobalContext: p.conf.GlobalContext(), Logger: p.Logger}
}

// Parse compiles a binding expression for the bound context contextID.
// Compilation errors are returned unchanged and satisfy
// errors.Is(err, parse.ErrMalformedExpression).
func (p *Provider) Parse(expr string, contextID int) (*Intent, error) {
	if _, _, err := parse.Split(expr); err != nil {
		return nil, err
	}
	return p.Generate(expr, contextID)
}

// Generate compiles expr into an intent without the separate split check.
func (p *Provider) Generate(expr string, contextID int) (*Intent, error) {
	prog, err := p.builder().Build(expr, contextID)
	if err != nil {
		return nil, err
	}
	in := &Intent{
		Provider: ProviderKey,
		Context:  contextID,
		Source:   prog.ProgString(),
		Program:  prog,
	}
	in.run = func(ctx context.Context, event *dom.Event, element dom.Element, bound int) error {
		f := program.NewFrame(ctx, event, element, p.Document, p.Data, bound)
		return prog.Exec(f)
	}
	in.Value = func(ctx context.Context, event *dom.Event, element dom.Element) error {
		return in.run(ctx, event, element, contextID)
	}
	if p.conf.Debug("intent") {
		p.Logger.Debug("Compiled binding",
			zap.String("expression", expr),
			zap.Int("context", contextID),
			zap.String("source", in.Source))
	}
	return in, nil
}

// ParseAttribute compiles a markup attribute such as
// click.setvalue="name = $event.detail" and registers the resolved setter
// for the named event on element.
func (p *Provider) ParseAttribute(element dom.Element, name, value string, contextID int) (*Intent, error) {
	event, ok := strings.CutSuffix(name, ProviderKey)
	if !ok || event == "" {
		return nil, fmt.Errorf("attribute %q is not a %s binding", name, ProviderKey)
	}
	in, err := p.Parse(value, contextID)
	if err != nil {
		return nil, err
	}
	if p.Events != nil {
		p.Events.Register(element, event, in.Bind(element))
	}
	return in, nil
}

// OnEvent invokes a resolved setter for event.
func (p *Provider) OnEvent(ctx context.Context, element dom.Element, event *dom.Event, setter store.Setter, contextID int) error {
	if setter == nil {
		return fmt.Errorf("no setter bound on %s", describe(element))
	}
	return setter(ctx, event, contextID)
}

// Clear releases the event registrations held for element.
func (p *Provider) Clear(element dom.Element) {
	if p.Events == nil {
		return
	}
	p.Events.Clear(element)
}

func describe(element dom.Element) string {
	if element == nil {
		return "<nil>"
	}
	return strings.ToLower(element.TagName())
}

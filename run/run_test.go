// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package run

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"bindkit.dev/setvalue/config"
	"bindkit.dev/setvalue/directive"
	"bindkit.dev/setvalue/dom"
	"bindkit.dev/setvalue/store"
)

func TestCompile(t *testing.T) {
	p := directive.NewProvider(nil, nil, nil, nil)
	var stdout, stderr bytes.Buffer
	ok := Compile(p, 1, "# comment\n\nname = $event\ncount = $globals.total\n", &stdout, &stderr)
	assert.True(t, ok)
	assert.Empty(t, stderr.String())
	assert.Equal(t, "await setProperty(1, \"name\", event);\n"+
		"await setProperty(1, \"count\", await getProperty(0, \"total\"));\n", stdout.String())
}

func TestCompileErrors(t *testing.T) {
	p := directive.NewProvider(nil, nil, nil, nil)
	var stdout, stderr bytes.Buffer
	ok := Compile(p, 1, "name\nx = 1\nattr('.a') = 2\n", &stdout, &stderr)
	assert.False(t, ok)
	// Good lines still compile.
	assert.Equal(t, "await setProperty(1, \"x\", 1);\n", stdout.String())
	lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "1: "), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "3: "), lines[1])
}

const page = `<html><body>
<form id="f" click.setvalue="clicks = $event.detail" submit.setvalue="attr($element, 'data-state') = state">
	<input class="name" value="Ada">
</form>
<p id="out"></p>
<div id="bad" click.setvalue="a b"></div>
</body></html>`

func newPage(t *testing.T, log *zap.Logger) *Page {
	t.Helper()
	doc, err := dom.ParseString(page)
	require.NoError(t, err)
	return NewPage(new(config.Config), log, doc, store.NewMemory())
}

func TestBindMarkup(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	pg := newPage(t, zap.New(core))
	err := pg.BindMarkup(1)
	require.Error(t, err)
	errs := multierr.Errors(err)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "<div#bad> click.setvalue")

	entries := logs.FilterMessage("Bound markup").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ContextMap()["bindings"])

	ctx := context.Background()
	require.NoError(t, pg.Fire(ctx, "#f", "click", 3, 1))
	v, err := pg.Data.GetProperty(ctx, 1, "clicks")
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	require.NoError(t, pg.Data.SetProperty(ctx, 1, "state", "sent"))
	require.NoError(t, pg.Fire(ctx, "#f", "submit", nil, 1))
	form, err := pg.Doc.QuerySelector("#f")
	require.NoError(t, err)
	state, _ := form.Attribute("data-state")
	assert.Equal(t, "sent", state)
}

func TestBindFire(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	pg := newPage(t, zap.New(core))
	ctx := context.Background()

	require.NoError(t, pg.Bind("#f", "input", "name = attr('.name', 'value')", 2))
	require.NoError(t, pg.Fire(ctx, "#f", "input", nil, 2))
	v, err := pg.Data.GetProperty(ctx, 2, "name")
	require.NoError(t, err)
	assert.Equal(t, "Ada", v)

	// The resolved setter writes into the context it is fired with.
	require.NoError(t, pg.Fire(ctx, "#f", "input", nil, 5))
	v, err = pg.Data.GetProperty(ctx, 5, "name")
	require.NoError(t, err)
	assert.Equal(t, "Ada", v)

	require.NoError(t, pg.Fire(ctx, "#out", "click", nil, 1))
	assert.Equal(t, 1, logs.FilterMessage("No bindings on element").Len())

	assert.Error(t, pg.Bind("#missing", "click", "a = 1", 1))
	assert.Error(t, pg.Fire(ctx, "#missing", "click", nil, 1))
	assert.Error(t, pg.Bind("#f", "click", "a b", 1))
}

func TestFireErrors(t *testing.T) {
	pg := newPage(t, nil)
	ctx := context.Background()
	require.NoError(t, pg.Bind("#f", "click", "attr('#out', 'title') = 1", 1))
	require.NoError(t, pg.Bind("#f", "click", "ok = true", 1))
	err := pg.Fire(ctx, "#f", "click", nil, 1)
	require.Error(t, err)
	// #out is outside the form; the second binding still runs.
	v, gerr := pg.Data.GetProperty(ctx, 1, "ok")
	require.NoError(t, gerr)
	assert.Equal(t, true, v)
}

// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"bindkit.dev/setvalue/program"
)

var buildTests = []struct {
	expr string
	want string
}{
	// Event into bound data.
	{"name = $event", `await setProperty(1, "name", event);
`},
	// The bound element's attribute needs no lookup.
	{"attr($element, 'title') = label", `element.setAttribute("title", await getProperty(1, "label"));
`},
	// A document-wide property target.
	{"prop('.btn', 'disabled', true) = isBusy", `const el0 = document.querySelector(".btn");
el0.disabled = await getProperty(1, "isBusy");
`},
	// Global source.
	{"count = $globals.total", `await setProperty(1, "count", await getProperty(0, "total"));
`},
	{"count = count", `await setProperty(1, "count", await getProperty(1, "count"));
`},
	{"attr('.sel', 'x', true) = 1", `const el0 = document.querySelector(".sel");
el0.setAttribute("x", 1);
`},
	{"attr('.sel', 'x') = 1", `const el0 = element.querySelector(".sel");
el0.setAttribute("x", 1);
`},
	{"attr('.sel', 'x', yes) = 1", `const el0 = element.querySelector(".sel");
el0.setAttribute("x", 1);
`},
	{"attr('.sel', 'x', true false) = 1", `const el0 = document.querySelector(".sel");
el0.setAttribute("x", 1);
`},
	{"attr($element, data-id) = id", `element.setAttribute("data-id", await getProperty(1, "id"));
`},
	{"prop(this, \"value\") = $target.value", `element.value = event.composedPath()[0].value;
`},
	{"prop($element, style.color) = color", `element.style.color = await getProperty(1, "color");
`},
	{"name = attr('#in', 'value').toUpperCase()", `const el0 = element.querySelector("#in");
const attr1 = el0.getAttribute("value");
await setProperty(1, "name", attr1.toUpperCase());
`},
	{"name = prop('#in', 'value', true)", `const el0 = document.querySelector("#in");
const prop1 = el0.value;
await setProperty(1, "name", prop1);
`},
	{"name = prop($element, textContent).trim()", `const prop0 = element.textContent;
await setProperty(1, "name", prop0.trim());
`},
	// Two accessors on one side get distinct names.
	{"attr($element, 'title') = attr('.a', 'x') + attr('.b', 'y', true)", `const el0 = element.querySelector(".a");
const attr1 = el0.getAttribute("x");
const el2 = document.querySelector(".b");
const attr3 = el2.getAttribute("y");
element.setAttribute("title", attr1 + attr3);
`},
	// Target setup precedes source setup.
	{"attr('.out', 'title') = attr('.in', 'title')", `const el0 = element.querySelector(".out");
const el1 = element.querySelector(".in");
const attr2 = el1.getAttribute("title");
el0.setAttribute("title", attr2);
`},
	{"$globals.user.name = $event.detail", `await setProperty(0, "user.name", event.detail);
`},
	{"$global.flag = true", `await setProperty(0, "flag", true);
`},
	{"title = $globals.name.toUpperCase()", `await setProperty(1, "title", (await getProperty(0, "name")).toUpperCase());
`},
	{"label = $globals.first + ' ' + $globals.last", `await setProperty(1, "label", await getProperty(0, "first") + " " + await getProperty(0, "last"));
`},
	{"x = name.trim()", `await setProperty(1, "x", (await getProperty(1, "name")).trim());
`},
	{"x = $event.detail ? 'on' : 'off'", `await setProperty(1, "x", event.detail ? "on" : "off");
`},
	{"x = !($event.detail.length > 0) || null", `await setProperty(1, "x", !(event.detail.length > 0) || null);
`},
	{"x = -(-1)", `await setProperty(1, "x", -(-1));
`},
	{"a.b.c = 'it\\x27s'", `await setProperty(1, "a.b.c", "it's");
`},
	{"items = $event.detail[0]", `await setProperty(1, "items", event.detail[0]);
`},
	{"s = 'a=b'", `await setProperty(1, "s", "a=b");
`},
	{"x = undefined", `await setProperty(1, "x", undefined);
`},
}

func TestBuild(t *testing.T) {
	for _, test := range buildTests {
		prog, err := Build(test.expr, 1)
		if !assert.NoError(t, err, test.expr) {
			continue
		}
		assert.Equal(t, test.want, prog.ProgString(), test.expr)
	}
}

func TestBuildContext(t *testing.T) {
	prog, err := Build("name = $event", 42)
	require.NoError(t, err)
	assert.Equal(t, "await setProperty(42, \"name\", event);\n", prog.ProgString())

	b := &Builder{GlobalContext: 5, Logger: zaptest.NewLogger(t)}
	prog, err = b.Build("count = $globals.total", 3)
	require.NoError(t, err)
	assert.Equal(t, "await setProperty(3, \"count\", await getProperty(5, \"total\"));\n", prog.ProgString())
}

func TestPathRoundTrip(t *testing.T) {
	for _, path := range []string{"count", "user.name", "a.b.c.d"} {
		prog, err := Build(path+" = "+path, 1)
		require.NoError(t, err)
		assert.Empty(t, prog.Setup, path)
		assert.Contains(t, prog.ProgString(), `getProperty(1, "`+path+`")`)
		assert.Contains(t, prog.ProgString(), `setProperty(1, "`+path+`"`)
	}
}

func TestSentinelSkipsLookup(t *testing.T) {
	for _, expr := range []string{
		"attr($element, 'x') = 1",
		"attr($element, 'x') = $event.detail",
		"attr($element, x, true) = label",
	} {
		prog, err := Build(expr, 1)
		require.NoError(t, err, expr)
		src := prog.ProgString()
		assert.NotContains(t, src, "querySelector", expr)
		assert.Equal(t, 1, strings.Count(src, "element.setAttribute("), expr)
	}
}

func TestGlobalFlagUsesDocument(t *testing.T) {
	for _, expr := range []string{
		"attr('.sel', 'x', true) = 1",
		"prop('.sel', 'x', true) = 1",
		"name = attr('.sel', 'x', true)",
	} {
		prog, err := Build(expr, 1)
		require.NoError(t, err, expr)
		require.NotEmpty(t, prog.Setup, expr)
		lookup, ok := prog.Setup[0].(*program.Lookup)
		require.True(t, ok, "%s: first setup is %T", expr, prog.Setup[0])
		assert.True(t, lookup.Global, expr)
		assert.Contains(t, prog.ProgString(), `document.querySelector(".sel")`, expr)
		assert.NotContains(t, prog.ProgString(), "element.querySelector", expr)
	}
}

func TestIdempotent(t *testing.T) {
	for _, test := range buildTests {
		p1, err := Build(test.expr, 1)
		require.NoError(t, err)
		p2, err := Build(test.expr, 1)
		require.NoError(t, err)
		if diff := cmp.Diff(p1, p2); diff != "" {
			t.Errorf("%s: programs differ (-first +second):\n%s", test.expr, diff)
		}
	}
}

func TestNoPlaceholder(t *testing.T) {
	for _, test := range buildTests {
		prog, err := Build(test.expr, 1)
		require.NoError(t, err)
		assert.NotContains(t, prog.ProgString(), "__value__", test.expr)
	}
}

func TestUniqueLocals(t *testing.T) {
	prog, err := Build("prop('.a', 'x') = prop('.b', 'y') + prop('.c', 'z') + prop('.b', 'y')", 1)
	require.NoError(t, err)
	seen := make(map[string]bool)
	for _, s := range prog.Setup {
		var name string
		switch s := s.(type) {
		case *program.Lookup:
			name = s.Name
		case *program.Declare:
			name = s.Name
		default:
			t.Fatalf("unexpected setup statement %T", s)
		}
		assert.False(t, seen[name], "duplicate local %s", name)
		seen[name] = true
	}
	assert.Len(t, seen, 7)
}

func TestMissingGlobalPath(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	b := &Builder{Logger: zap.New(core)}

	prog, err := b.Build("count = $globals", 1)
	require.NoError(t, err)
	assert.Equal(t, "await setProperty(1, \"count\", await getProperty(0, \"\"));\n", prog.ProgString())

	prog, err = b.Build("$globals. = 1", 1)
	require.NoError(t, err)
	assert.Equal(t, "await setProperty(0, \"\", 1);\n", prog.ProgString())

	entries := logs.FilterMessage("Global accessor has no property path").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "count = $globals", entries[0].ContextMap()["expression"])
}

var errorTests = []struct {
	expr   string
	offset int
	msg    string
}{
	{"name $event", 11, "missing '=' in binding expression"},
	{"", 0, "missing '=' in binding expression"},
	{"= x", 0, "missing assignment target before '='"},
	{"x =", 2, "missing value after '='"},
	{"x = 'abc", 4, "unterminated quoted string"},
	{"attr('.a' = 1", 0, "unbalanced parentheses in attr(...)"},
	{"attr('.a']) = 1", 9, "unbalanced brackets in attr(...)"},
	{"attr('.a') = 1", 0, "attr(...) needs a selector and a name"},
	{"prop('.a', 'x', true, 4) = 1", 0, "too many arguments to prop(...)"},
	{"attr(, 'x') = 1", 0, "empty argument 1 to attr(...)"},
	{"attr(foo, 'x') = 1", 5, "selector in attr(...) must be a quoted string or $element"},
	{"attr(this, 'x') = 1", 5, "selector in attr(...) must be a quoted string or $element"},
	{"attr('  ', 'x') = 1", 5, "empty selector in attr(...)"},
	{"attr('.a', '1bad') = 1", 11, `bad attr name "1bad"`},
	{"prop('.a', 'a-b') = 1", 11, `bad prop name "a-b"`},
	{"'lit' = 1", 0, `cannot assign to "'lit'"`},
	{"$element = 1", 0, `cannot assign to "$element"`},
	{"true = 1", 0, `cannot assign to "true"`},
	{"a.b c = 1", 4, `unexpected "c" after assignment target`},
	{"x == y = z", 2, `unexpected "==" after assignment target`},
	{"x = a b", 6, `unexpected "b" after value`},
	{"x = foo()", 4, "unknown function foo"},
	{"x = $nope", 4, "unknown placeholder $nope"},
	{"x = this", 4, "this is only valid as a prop(...) selector"},
	{"x = (1", 6, "expected ')'; found end of expression"},
	{"x = 1 ? 2", 9, "expected ':' in conditional expression; found end of expression"},
	{"x = $event(1)", 10, "event is not a function"},
	{"x = attr('.a', 'x') + prop('.b', 'y')", 22, "cannot mix prop(...) with attr accessors in one side"},
	{"x = attr('.a', 'x') + $globals.y", 22, "cannot mix $globals with attr accessors in one side"},
	{"x = 'a\\u12'", 4, `bad \u escape in string 'a\u12'`},
	{"x = a.", 6, "expected property name after '.'; found end of expression"},
	{"x = __value__", 4, "__value__ is a reserved name"},
	{"__value__ = 1", 0, "__value__ is a reserved name"},
	{"x = a.__value__.b", 6, "__value__ is a reserved name"},
	{"x = $event.__value__", 11, "__value__ is a reserved name"},
	{"$globals.__value__ = 1", 9, "__value__ is a reserved name"},
	{"attr($element, '__value__') = 1", 15, "__value__ is a reserved name"},
	{"prop($element, style.__value__) = 1", 15, "__value__ is a reserved name"},
}

func TestBuildErrors(t *testing.T) {
	for _, test := range errorTests {
		_, err := Build(test.expr, 1)
		if !assert.Error(t, err, test.expr) {
			continue
		}
		assert.True(t, errors.Is(err, ErrMalformedExpression), "%s: %v", test.expr, err)
		var perr *Error
		if !assert.True(t, errors.As(err, &perr), "%s: %T", test.expr, err) {
			continue
		}
		assert.Equal(t, test.expr, perr.Expr)
		assert.Equal(t, test.offset, perr.Offset, test.expr)
		assert.Equal(t, test.msg, perr.Msg, test.expr)
	}
}

func TestErrorString(t *testing.T) {
	_, err := Build("x = a b", 1)
	assert.EqualError(t, err, `setvalue: "x = a b":6: unexpected "b" after value`)
}

func TestClassify(t *testing.T) {
	for side, want := range map[string]Kind{
		"name":                            Data,
		"a.b + 'attr('":                   Data,
		"attr($element, 'x')":             Attr,
		"prop('.a', 'x')":                 Prop,
		"$globals.x":                      Global,
		"$global.x":                       Global,
		"attr('.a', 'x') + $globals.y":    Attr,
		"prop('.a', 'x') + attr('.b', y)": Attr,
		"$event.detail":                   Data,
	} {
		assert.Equal(t, want, Classify(side), side)
	}
	assert.Equal(t, "global", Global.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

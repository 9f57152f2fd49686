// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package program

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cast"

	"bindkit.dev/setvalue/dom"
)

// Values at run time are plain Go values: nil is null, Undefined is
// undefined, numbers may be any Go numeric type (arithmetic yields float64),
// arrays are []any and objects are map[string]any or dom.Object.

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined is the undefined value.
var Undefined any = undefined{}

// unresolved is the value of a lookup that matched no element.
type unresolved struct {
	selector string
	global   bool
}

func isNullish(v any) bool {
	return v == nil || v == Undefined
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	}
	return false
}

// truthy reports whether v is true in a boolean context.
func truthy(v any) bool {
	switch v := v.(type) {
	case nil, undefined:
		return false
	case bool:
		return v
	case string:
		return v != ""
	}
	if isNumber(v) {
		f := toNumber(v)
		return f != 0 && !math.IsNaN(f)
	}
	return true
}

// toNumber converts v to a number the way unary plus does.
func toNumber(v any) float64 {
	switch v := v.(type) {
	case nil:
		return 0
	case undefined:
		return math.NaN()
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return math.NaN()
	}
	return f
}

// toString converts v to a string the way String(v) does.
func toString(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case undefined:
		return "undefined"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return formatNumber(v)
	case float32:
		return formatNumber(float64(v))
	case []any:
		elems := make([]string, len(v))
		for i, e := range v {
			if !isNullish(e) {
				elems[i] = toString(e)
			}
		}
		return strings.Join(elems, ",")
	case dom.Element:
		return "[object HTML" + htmlName(v.TagName()) + "Element]"
	case map[string]any, dom.Object:
		return "[object Object]"
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

func htmlName(tag string) string {
	if tag == "" {
		return ""
	}
	r, n := utf8.DecodeRuneInString(tag)
	return string(r) + strings.ToLower(tag[n:])
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == math.Trunc(f) && math.Abs(f) < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// strictEqual implements ===.
func strictEqual(a, b any) bool {
	if isNumber(a) && isNumber(b) {
		return toNumber(a) == toNumber(b)
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// looseEqual implements ==.
func looseEqual(a, b any) bool {
	if isNullish(a) || isNullish(b) {
		return isNullish(a) && isNullish(b)
	}
	_, sa := a.(string)
	_, sb := b.(string)
	if sa && sb {
		return a == b
	}
	primitive := func(v any) bool {
		_, s := v.(string)
		_, t := v.(bool)
		return s || t || isNumber(v)
	}
	if primitive(a) && primitive(b) {
		return toNumber(a) == toNumber(b)
	}
	if primitive(a) || primitive(b) {
		return toString(a) == toString(b)
	}
	return strictEqual(a, b)
}

func binaryOp(op string, a, b any) (any, error) {
	switch op {
	case "+":
		_, sa := a.(string)
		_, sb := b.(string)
		if sa || sb || !primitiveValue(a) || !primitiveValue(b) {
			return toString(a) + toString(b), nil
		}
		return toNumber(a) + toNumber(b), nil
	case "-":
		return toNumber(a) - toNumber(b), nil
	case "*":
		return toNumber(a) * toNumber(b), nil
	case "/":
		return toNumber(a) / toNumber(b), nil
	case "%":
		return math.Mod(toNumber(a), toNumber(b)), nil
	case "==":
		return looseEqual(a, b), nil
	case "!=":
		return !looseEqual(a, b), nil
	case "===":
		return strictEqual(a, b), nil
	case "!==":
		return !strictEqual(a, b), nil
	case "<", "<=", ">", ">=":
		return compare(op, a, b), nil
	}
	return nil, fmt.Errorf("unknown binary operator %q", op)
}

// primitiveValue reports whether v converts to a number under +.
func primitiveValue(v any) bool {
	switch v.(type) {
	case nil, undefined, bool, string:
		return true
	}
	return isNumber(v)
}

func compare(op string, a, b any) bool {
	sa, okA := a.(string)
	sb, okB := b.(string)
	if okA && okB {
		switch op {
		case "<":
			return sa < sb
		case "<=":
			return sa <= sb
		case ">":
			return sa > sb
		}
		return sa >= sb
	}
	x, y := toNumber(a), toNumber(b)
	switch op {
	case "<":
		return x < y
	case "<=":
		return x <= y
	case ">":
		return x > y
	}
	return x >= y
}

func unaryOp(op string, v any) (any, error) {
	switch op {
	case "!":
		return !truthy(v), nil
	case "-":
		return -toNumber(v), nil
	case "+":
		return toNumber(v), nil
	}
	return nil, fmt.Errorf("unknown unary operator %q", op)
}

// Quote returns s as a double-quoted JavaScript string literal.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

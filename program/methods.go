// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package program

import (
	"math"
	"strconv"
	"strings"

	"bindkit.dev/setvalue/dom"
)

// getMember reads v.name.
func getMember(v any, name string) (any, error) {
	if isNullish(v) {
		return nil, typeErrorf("cannot read properties of %s (reading %q)", toString(v), name)
	}
	switch v := v.(type) {
	case string:
		if name == "length" {
			return float64(len([]rune(v))), nil
		}
	case []any:
		if name == "length" {
			return float64(len(v)), nil
		}
	case map[string]any:
		if x, ok := v[name]; ok {
			return x, nil
		}
	case dom.Object:
		if x, ok := v.Get(name); ok {
			return x, nil
		}
	}
	return Undefined, nil
}

// setMember assigns v.name = x.
func setMember(v any, name string, x any) error {
	if isNullish(v) {
		return typeErrorf("cannot set properties of %s (setting %q)", toString(v), name)
	}
	switch v := v.(type) {
	case map[string]any:
		v[name] = x
		return nil
	case dom.Object:
		return v.Set(name, x)
	}
	return typeErrorf("cannot create property %q on %s", name, toString(v))
}

// index reads v[i].
func index(v, i any) (any, error) {
	if isNullish(v) {
		return nil, typeErrorf("cannot read properties of %s (reading %q)", toString(v), toString(i))
	}
	switch v := v.(type) {
	case []any:
		if n, ok := arrayIndex(i, len(v)); ok {
			return v[n], nil
		}
		return Undefined, nil
	case string:
		r := []rune(v)
		if n, ok := arrayIndex(i, len(r)); ok {
			return string(r[n]), nil
		}
		return Undefined, nil
	}
	return getMember(v, toString(i))
}

func arrayIndex(i any, n int) (int, bool) {
	f := toNumber(i)
	if f != math.Trunc(f) || f < 0 || f >= float64(n) {
		return 0, false
	}
	return int(f), true
}

// callMethod calls recv.name(args...). Only a fixed set of methods of
// the built-in value kinds is available.
func callMethod(recv any, name string, args []any) (any, error) {
	if isNullish(recv) {
		return nil, typeErrorf("cannot read properties of %s (reading %q)", toString(recv), name)
	}
	arg := func(i int) any {
		if i < len(args) {
			return args[i]
		}
		return Undefined
	}
	switch v := recv.(type) {
	case string:
		if fn, ok := stringMethods[name]; ok {
			return fn(v, arg), nil
		}
	case bool:
		if name == "toString" {
			return strconv.FormatBool(v), nil
		}
	case []any:
		switch name {
		case "includes":
			for _, e := range v {
				if strictEqual(e, arg(0)) {
					return true, nil
				}
			}
			return false, nil
		case "indexOf":
			for i, e := range v {
				if strictEqual(e, arg(0)) {
					return float64(i), nil
				}
			}
			return float64(-1), nil
		case "join":
			sep := ","
			if a := arg(0); a != Undefined {
				sep = toString(a)
			}
			elems := make([]string, len(v))
			for i, e := range v {
				if !isNullish(e) {
					elems[i] = toString(e)
				}
			}
			return strings.Join(elems, sep), nil
		}
	case dom.Element:
		switch name {
		case "getAttribute":
			if s, ok := v.Attribute(toString(arg(0))); ok {
				return s, nil
			}
			return nil, nil
		case "hasAttribute":
			_, ok := v.Attribute(toString(arg(0)))
			return ok, nil
		case "querySelector":
			e, err := v.QuerySelector(toString(arg(0)))
			if err != nil || e == nil {
				return nil, err
			}
			return e, nil
		}
	case *dom.Event:
		if name == "composedPath" {
			path := make([]any, len(v.Path))
			for i, e := range v.Path {
				path[i] = e
			}
			return path, nil
		}
	default:
		if isNumber(v) {
			switch name {
			case "toString":
				return toString(toNumber(v)), nil
			case "toFixed":
				d := toNumber(arg(0))
				if math.IsNaN(d) {
					d = 0
				}
				if d < 0 || d > 100 {
					return nil, &RangeError{Msg: "toFixed() digits argument must be between 0 and 100"}
				}
				digits := int(d)
				return strconv.FormatFloat(toNumber(v), 'f', digits, 64), nil
			}
		}
	}
	return nil, typeErrorf("%s.%s is not a function", kind(recv), name)
}

func kind(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case dom.Element:
		return "element"
	case *dom.Event:
		return "event"
	}
	if isNumber(v) {
		return "number"
	}
	return "object"
}

var stringMethods = map[string]func(s string, arg func(int) any) any{
	"toUpperCase": func(s string, _ func(int) any) any { return strings.ToUpper(s) },
	"toLowerCase": func(s string, _ func(int) any) any { return strings.ToLower(s) },
	"toString":    func(s string, _ func(int) any) any { return s },
	"trim":        func(s string, _ func(int) any) any { return strings.TrimSpace(s) },
	"trimStart":   func(s string, _ func(int) any) any { return strings.TrimLeft(s, " \t\n\r\f\v") },
	"trimEnd":     func(s string, _ func(int) any) any { return strings.TrimRight(s, " \t\n\r\f\v") },
	"includes": func(s string, arg func(int) any) any {
		return strings.Contains(s, toString(arg(0)))
	},
	"startsWith": func(s string, arg func(int) any) any {
		return strings.HasPrefix(s, toString(arg(0)))
	},
	"endsWith": func(s string, arg func(int) any) any {
		return strings.HasSuffix(s, toString(arg(0)))
	},
	"indexOf": func(s string, arg func(int) any) any {
		i := strings.Index(s, toString(arg(0)))
		if i < 0 {
			return float64(-1)
		}
		return float64(len([]rune(s[:i])))
	},
	"charAt": func(s string, arg func(int) any) any {
		r := []rune(s)
		if n, ok := arrayIndex(arg(0), len(r)); ok {
			return string(r[n])
		}
		if arg(0) == Undefined && len(r) > 0 {
			return string(r[0])
		}
		return ""
	},
	"slice": func(s string, arg func(int) any) any {
		r := []rune(s)
		start, end := sliceBounds(len(r), arg(0), arg(1), true)
		if start >= end {
			return ""
		}
		return string(r[start:end])
	},
	"substring": func(s string, arg func(int) any) any {
		r := []rune(s)
		start, end := sliceBounds(len(r), arg(0), arg(1), false)
		if start > end {
			start, end = end, start
		}
		return string(r[start:end])
	},
	"split": func(s string, arg func(int) any) any {
		var parts []string
		if sep := arg(0); sep == Undefined {
			parts = []string{s}
		} else {
			parts = strings.Split(s, toString(sep))
		}
		out := make([]any, len(parts))
		for i, p := range parts {
			out[i] = p
		}
		return out
	},
	"replace": func(s string, arg func(int) any) any {
		return strings.Replace(s, toString(arg(0)), toString(arg(1)), 1)
	},
	"replaceAll": func(s string, arg func(int) any) any {
		return strings.ReplaceAll(s, toString(arg(0)), toString(arg(1)))
	},
}

// sliceBounds clamps the start and end arguments of slice and substring.
// Negative values count from the end for slice and clamp to zero for substring.
func sliceBounds(n int, a, b any, negative bool) (int, int) {
	bound := func(v any, def int) int {
		if v == Undefined {
			return def
		}
		f := toNumber(v)
		switch {
		case math.IsNaN(f), math.IsInf(f, -1):
			return 0
		case math.IsInf(f, 1):
			return n
		}
		i := int(math.Trunc(f))
		if i < 0 {
			if negative {
				i += n
			}
			if i < 0 {
				i = 0
			}
		}
		if i > n {
			i = n
		}
		return i
	}
	return bound(a, 0), bound(b, n)
}

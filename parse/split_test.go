// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	for _, test := range []struct {
		expr           string
		target, source string
	}{
		{"name = $event", "name", "$event"},
		{"  a.b   =c  ", "a.b", "c"},
		{"x = a == b", "x", "a == b"},
		{"s = 'a = b'", "s", "'a = b'"},
		{"attr('.a', 'x') = y !== z", "attr('.a', 'x')", "y !== z"},
		{"a = b = c", "a", "b = c"},
	} {
		target, source, err := Split(test.expr)
		if !assert.NoError(t, err, test.expr) {
			continue
		}
		assert.Equal(t, test.target, target, test.expr)
		assert.Equal(t, test.source, source, test.expr)
	}
}

func TestSplitErrors(t *testing.T) {
	for _, expr := range []string{
		"name",
		"a == b",
		"= b",
		"a =   ",
		"a = 'unterminated",
	} {
		_, _, err := Split(expr)
		assert.True(t, errors.Is(err, ErrMalformedExpression), "Split(%q) = %v", expr, err)
	}
}

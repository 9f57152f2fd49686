// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scan

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

type tok struct {
	typ  Type
	text string
}

func kinds(toks []Token) []tok {
	var out []tok
	for _, t := range toks {
		out = append(out, tok{t.Type, t.Text})
	}
	return out
}

var scanTests = []struct {
	input string
	want  []tok
}{
	{"name = $event", []tok{
		{Identifier, "name"}, {Assign, "="}, {Identifier, "$event"}, {EOF, "EOF"},
	}},
	{"a.b == 'x'", []tok{
		{Identifier, "a"}, {Dot, "."}, {Identifier, "b"}, {Operator, "=="}, {String, "'x'"}, {EOF, "EOF"},
	}},
	{"x===y!==z", []tok{
		{Identifier, "x"}, {Operator, "==="}, {Identifier, "y"}, {Operator, "!=="}, {Identifier, "z"}, {EOF, "EOF"},
	}},
	{"attr('#a', data-id, true)", []tok{
		{Identifier, "attr"}, {LeftParen, "("}, {String, "'#a'"}, {Comma, ","},
		{Identifier, "data"}, {Operator, "-"}, {Identifier, "id"}, {Comma, ","},
		{Identifier, "true"}, {RightParen, ")"}, {EOF, "EOF"},
	}},
	{"a ? 1.5 : .5e3", []tok{
		{Identifier, "a"}, {Question, "?"}, {Number, "1.5"}, {Colon, ":"}, {Number, ".5e3"}, {EOF, "EOF"},
	}},
	{`"a \" b"[0]`, []tok{
		{String, `"a \" b"`}, {LeftBrack, "["}, {Number, "0"}, {RightBrack, "]"}, {EOF, "EOF"},
	}},
	{"x >= 1 && !y || z < 2", []tok{
		{Identifier, "x"}, {Operator, ">="}, {Number, "1"}, {Operator, "&&"}, {Operator, "!"},
		{Identifier, "y"}, {Operator, "||"}, {Identifier, "z"}, {Operator, "<"}, {Number, "2"}, {EOF, "EOF"},
	}},
	{"#", []tok{{Char, "#"}, {EOF, "EOF"}}},
	{"", []tok{{EOF, "EOF"}}},
	{"'open", []tok{{Error, "unterminated quoted string"}}},
	{"a = $", []tok{{Identifier, "a"}, {Assign, "="}, {Error, `bad identifier "$"`}}},
	{"1x", []tok{{Error, "bad number syntax: 1x"}}},
	{"a = \x01", []tok{{Identifier, "a"}, {Assign, "="}, {Error, "unrecognized character: U+0001"}}},
}

func TestScan(t *testing.T) {
	for _, test := range scanTests {
		got := kinds(All(test.input))
		if diff := cmp.Diff(test.want, got, cmp.AllowUnexported(tok{})); diff != "" {
			t.Errorf("All(%q) mismatch (-want +got):\n%s", test.input, diff)
		}
	}
}

func TestOffsets(t *testing.T) {
	toks := All("  count =  total")
	var offsets []int
	for _, tok := range toks[:3] {
		offsets = append(offsets, tok.Offset)
	}
	assert.Equal(t, []int{2, 8, 11}, offsets)
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "Identifier", Identifier.String())
	assert.Equal(t, "Type(99)", Type(99).String())
	assert.Equal(t, `Operator: "=="`, Token{Type: Operator, Text: "=="}.String())
}

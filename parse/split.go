// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"strings"

	"bindkit.dev/setvalue/scan"
)

// Split returns the trimmed text either side of the assignment in a
// binding expression. The split is at the first '=' that is not part of a
// comparison operator or a string literal.
func Split(expr string) (target, source string, err error) {
	toks := scan.All(expr)
	i, err := assignIndex(expr, toks)
	if err != nil {
		return "", "", err
	}
	at := toks[i].Offset
	return strings.TrimSpace(expr[:at]), strings.TrimSpace(expr[at+1:]), nil
}

// assignIndex returns the index of the assignment token in toks,
// which must be the complete scan of expr.
func assignIndex(expr string, toks []scan.Token) (int, error) {
	last := toks[len(toks)-1]
	if last.Type == scan.Error {
		return 0, &Error{Expr: expr, Offset: last.Offset, Msg: last.Text}
	}
	for i, t := range toks {
		if t.Type != scan.Assign {
			continue
		}
		if i == 0 {
			return 0, &Error{Expr: expr, Offset: t.Offset, Msg: "missing assignment target before '='"}
		}
		if toks[i+1].Type == scan.EOF {
			return 0, &Error{Expr: expr, Offset: t.Offset, Msg: "missing value after '='"}
		}
		return i, nil
	}
	return 0, &Error{Expr: expr, Offset: len(expr), Msg: "missing '=' in binding expression"}
}

// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrMalformedExpression matches every error that reports a binding
// expression that cannot be compiled.
var ErrMalformedExpression = errors.New("malformed binding expression")

// Error is a compilation failure at a position in the expression.
type Error struct {
	Expr   string
	Offset int // Byte offset in Expr.
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("setvalue: %s:%d: %s", strconv.Quote(e.Expr), e.Offset, e.Msg)
}

func (e *Error) Is(target error) bool {
	return target == ErrMalformedExpression
}

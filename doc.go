// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Setvalue compiles set-value binding expressions and runs them against HTML pages.

A binding expression has the form

	target = source

and assigns the value of source to target when an event fires on the bound
element. Either side may address one of four things.

	name.path                   bound data, read and written through the data store
	attr(selector, name[, g])   an attribute of an element
	prop(selector, name[, g])   a property of an element
	$globals.path               data in the global context

The selector is a quoted CSS selector, or $element for the bound element
itself (prop also accepts this). Without the third argument, or when its first
word is anything but true, the selector is resolved within the bound element;
with true it is resolved against the whole document. The source side is an
expression that may also use $event, the event, and $target, the element the
event was first dispatched on, together with literals, operators, the
conditional operator and a small set of string and element methods.
A side uses at most one kind of accessor.

Usage:

	setvalue compile [--context N] [expression...]
	setvalue run --page file.html --on selector [--event type] [--data file.yaml] [expression...]
	setvalue version

Compile prints the body of the async function(event, element) generated for
each expression. For instance

	setvalue compile "prop('.btn', 'disabled', true) = isBusy"

prints

	const el0 = document.querySelector(".btn");
	el0.disabled = await getProperty(1, "isBusy");

Run loads the page, registers every attribute of the form event.setvalue in
its markup, fires the event on the selected element and prints the bound data
context as YAML.

Settings may also be given in a configuration file (--config) or in
SETVALUE_* environment variables, such as SETVALUE_GLOBAL_CONTEXT and
SETVALUE_LOG_LEVEL.
*/
package main

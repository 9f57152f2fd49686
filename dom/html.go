// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dom

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Document is an HTML document. Element handles returned from one document
// are stable: the same node always yields the same *Node, so elements can
// be used as map keys.
type Document struct {
	mu        sync.Mutex
	root      *html.Node
	nodes     map[*html.Node]*Node
	selectors map[string]cascadia.Selector
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{
		root:      root,
		nodes:     make(map[*html.Node]*Node),
		selectors: make(map[string]cascadia.Selector),
	}, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// QuerySelector returns the first element in the document matching selector.
func (d *Document) QuerySelector(selector string) (Element, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.query(d.root, selector)
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return html.Render(w, d.root)
}

// Elements calls fn for every element of the document in document order,
// stopping at the first error.
func (d *Document) Elements(fn func(*Node) error) error {
	d.mu.Lock()
	var elems []*Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			elems = append(elems, d.node(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	d.mu.Unlock()

	for _, e := range elems {
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

// query searches the descendants of n. Called with d.mu held.
func (d *Document) query(n *html.Node, selector string) (Element, error) {
	sel, ok := d.selectors[selector]
	if !ok {
		var err error
		sel, err = cascadia.Compile(selector)
		if err != nil {
			return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
		}
		d.selectors[selector] = sel
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if m := sel.MatchFirst(c); m != nil {
			return d.node(m), nil
		}
	}
	return nil, nil
}

// node returns the handle for n. Called with d.mu held.
func (d *Document) node(n *html.Node) *Node {
	e, ok := d.nodes[n]
	if !ok {
		e = &Node{doc: d, n: n}
		d.nodes[n] = e
	}
	return e
}

// Node is an element of a Document.
type Node struct {
	doc   *Document
	n     *html.Node
	props map[string]any
}

var _ Element = (*Node)(nil)

func (e *Node) TagName() string {
	return strings.ToUpper(e.n.Data)
}

func (e *Node) Attribute(name string) (string, bool) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return e.attr(name)
}

func (e *Node) attr(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Attr is a markup attribute.
type Attr struct {
	Name, Value string
}

// Attributes returns the attributes of e in markup order.
func (e *Node) Attributes() []Attr {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	attrs := make([]Attr, 0, len(e.n.Attr))
	for _, a := range e.n.Attr {
		if a.Namespace == "" {
			attrs = append(attrs, Attr{Name: a.Key, Value: a.Val})
		}
	}
	return attrs
}

func (e *Node) SetAttribute(name, value string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.setAttr(name, value)
}

func (e *Node) setAttr(name, value string) {
	name = strings.ToLower(name)
	for i, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
}

// reflectedString maps the properties that read an attribute as a string
// to that attribute.
var reflectedString = map[string]string{
	"title":       "title",
	"value":       "value",
	"name":        "name",
	"type":        "type",
	"href":        "href",
	"src":         "src",
	"alt":         "alt",
	"lang":        "lang",
	"dir":         "dir",
	"placeholder": "placeholder",
	"htmlFor":     "for",
}

// reflectedBool maps the properties that report whether an attribute is
// present to that attribute.
var reflectedBool = map[string]string{
	"disabled": "disabled",
	"checked":  "checked",
	"selected": "selected",
	"hidden":   "hidden",
	"readOnly": "readonly",
	"required": "required",
	"multiple": "multiple",
}

// Property reads a property. Properties set at run time come first. The
// rest reflect the markup: id, className, tagName, textContent and the
// common string and boolean attributes.
func (e *Node) Property(name string) (any, bool) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if v, ok := e.props[name]; ok {
		return v, true
	}
	if attr, ok := reflectedString[name]; ok {
		v, _ := e.attr(attr)
		return v, true
	}
	if attr, ok := reflectedBool[name]; ok {
		_, present := e.attr(attr)
		return present, true
	}
	switch name {
	case "id":
		v, _ := e.attr("id")
		return v, true
	case "className":
		v, _ := e.attr("class")
		return v, true
	case "tagName":
		return strings.ToUpper(e.n.Data), true
	case "textContent":
		var b strings.Builder
		text(&b, e.n)
		return b.String(), true
	}
	return nil, false
}

func (e *Node) SetProperty(name string, value any) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	switch name {
	case "id":
		e.setAttr("id", fmt.Sprint(value))
		return
	case "className":
		e.setAttr("class", fmt.Sprint(value))
		return
	case "textContent":
		for c := e.n.FirstChild; c != nil; c = e.n.FirstChild {
			e.n.RemoveChild(c)
		}
		e.n.AppendChild(&html.Node{Type: html.TextNode, Data: fmt.Sprint(value)})
		return
	}
	if e.props == nil {
		e.props = make(map[string]any)
	}
	e.props[name] = value
}

func (e *Node) Get(name string) (any, bool) {
	return e.Property(name)
}

func (e *Node) Set(name string, value any) error {
	if name == "tagName" {
		return fmt.Errorf("cannot assign to read only property %q of element", name)
	}
	e.SetProperty(name, value)
	return nil
}

// QuerySelector returns the first descendant of e matching selector.
func (e *Node) QuerySelector(selector string) (Element, error) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return e.doc.query(e.n, selector)
}

func (e *Node) String() string {
	id, _ := e.Attribute("id")
	if id != "" {
		return fmt.Sprintf("<%s#%s>", e.n.Data, id)
	}
	return fmt.Sprintf("<%s>", e.n.Data)
}

func text(b *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text(b, c)
	}
}

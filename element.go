// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package sitemark

import (
	"fmt"
	"io"
	"slices"

	"go4.org/bytereplacer"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// An Element is a node in an HTML element tree.
// A leaf element holds a literal value,
// optionally wrapped in a tag.
// A container element always has a tag
// and holds an ordered list of child elements.
type Element struct {
	tag      atom.Atom
	leaf     bool
	value    string
	attrs    []html.Attribute
	children []*Element
}

// NewLeaf returns a leaf element.
// A zero tag means the value is emitted without a wrapping tag,
// in which case the leaf may not have attributes.
func NewLeaf(tag atom.Atom, value string, attrs ...html.Attribute) (*Element, error) {
	if tag == 0 && len(attrs) > 0 {
		return nil, fmt.Errorf("new leaf: attributes on untagged leaf: %w", ErrInvalidElement)
	}
	return &Element{
		tag:   tag,
		leaf:  true,
		value: value,
		attrs: slices.Clone(attrs),
	}, nil
}

// NewContainer returns a container element with the given children.
// The tag must be non-zero and children must be non-nil,
// although it may be empty.
// The container takes ownership of a copy of the children slice.
func NewContainer(tag atom.Atom, children []*Element, attrs ...html.Attribute) (*Element, error) {
	if tag == 0 {
		return nil, fmt.Errorf("new container: missing tag: %w", ErrInvalidElement)
	}
	if children == nil {
		return nil, fmt.Errorf("new container <%v>: nil children: %w", tag, ErrInvalidElement)
	}
	for i, c := range children {
		if c == nil {
			return nil, fmt.Errorf("new container <%v>: child %d is nil: %w", tag, i, ErrInvalidElement)
		}
	}
	return &Element{
		tag:      tag,
		attrs:    slices.Clone(attrs),
		children: slices.Clone(children),
	}, nil
}

// Tag returns the element's tag
// or zero if the element is an untagged leaf or nil.
func (e *Element) Tag() atom.Atom {
	if e == nil {
		return 0
	}
	return e.tag
}

// IsLeaf reports whether the element is a leaf.
func (e *Element) IsLeaf() bool {
	return e != nil && e.leaf
}

// Value returns a leaf's value
// or the empty string for containers.
func (e *Element) Value() string {
	if e == nil {
		return ""
	}
	return e.value
}

// Attrs returns the element's attributes in insertion order.
// The caller must not modify the returned slice.
func (e *Element) Attrs() []html.Attribute {
	if e == nil {
		return nil
	}
	return e.attrs
}

// Attr returns the value of the attribute with the given key.
func (e *Element) Attr(key string) (_ string, ok bool) {
	for _, a := range e.Attrs() {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// ChildCount returns the number of children the element has.
// Calling ChildCount on nil or a leaf returns 0.
func (e *Element) ChildCount() int {
	if e == nil {
		return 0
	}
	return len(e.children)
}

// Child returns the i'th child of the element.
func (e *Element) Child(i int) *Element {
	return e.children[i]
}

// Text returns the concatenated values of all leaves under the element.
func (e *Element) Text() string {
	var buf []byte
	Walk(e, &WalkOptions{
		Pre: func(c *Cursor) bool {
			if el := c.Element(); el.IsLeaf() {
				buf = append(buf, el.value...)
			}
			return true
		},
	})
	return string(buf)
}

// HTML returns the serialized form of the element.
func (e *Element) HTML() string {
	return string(e.AppendHTML(nil))
}

// String returns the serialized form of the element.
func (e *Element) String() string {
	return e.HTML()
}

// WriteTo writes the serialized form of the element to w.
func (e *Element) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(e.AppendHTML(nil))
	if err != nil {
		return int64(n), fmt.Errorf("write html: %w", err)
	}
	return int64(n), nil
}

// AppendHTML appends the serialized form of the element to dst
// and returns the resulting byte slice.
// Tagged elements serialize as <tag attr="val">content</tag>,
// untagged leaves as their value.
// Leaf values are written verbatim;
// attribute values have ampersands and double quotes escaped.
func (e *Element) AppendHTML(dst []byte) []byte {
	if e == nil {
		return dst
	}
	Walk(e, &WalkOptions{
		Pre: func(c *Cursor) bool {
			el := c.Element()
			if el.tag != 0 {
				dst = appendOpenTag(dst, el)
			}
			if el.leaf {
				dst = append(dst, el.value...)
			}
			return true
		},
		Post: func(c *Cursor) bool {
			if tag := c.Element().tag; tag != 0 {
				dst = append(dst, "</"...)
				dst = append(dst, tag.String()...)
				dst = append(dst, '>')
			}
			return true
		},
	})
	return dst
}

var attrEscaper = bytereplacer.New(
	"&", "&amp;",
	`"`, "&quot;",
)

func appendOpenTag(dst []byte, e *Element) []byte {
	dst = append(dst, '<')
	dst = append(dst, e.tag.String()...)
	for _, a := range e.attrs {
		dst = append(dst, ' ')
		dst = append(dst, a.Key...)
		dst = append(dst, `="`...)
		dst = append(dst, attrEscaper.Replace([]byte(a.Val))...)
		dst = append(dst, '"')
	}
	return append(dst, '>')
}

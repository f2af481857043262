// Copyright 2023 Ross Light
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

// Package htmlcheck verifies the structure of serialized element trees.
package htmlcheck

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrMalformed is wrapped by every error returned from [Check].
var ErrMalformed = errors.New("malformed html")

// Check verifies that b is a single <div> whose children are block elements,
// that every start tag has a matching end tag,
// that list items only appear directly inside lists
// (and lists hold nothing else),
// and that block elements only appear directly inside the root.
func Check(b []byte) error {
	tok := html.NewTokenizer(bytes.NewReader(b))
	var stack []atom.Atom
	roots := 0
	for {
		tt := tok.Next()
		switch tt {
		case html.ErrorToken:
			if err := tok.Err(); err != io.EOF {
				return fmt.Errorf("%w: %v", ErrMalformed, err)
			}
			if len(stack) > 0 {
				return fmt.Errorf("%w: <%v> not closed", ErrMalformed, stack[len(stack)-1])
			}
			if roots != 1 {
				return fmt.Errorf("%w: %d root elements; want 1", ErrMalformed, roots)
			}
			return nil
		case html.TextToken:
			if len(stack) == 0 {
				return fmt.Errorf("%w: text %q outside root", ErrMalformed, tok.Text())
			}
			if top := stack[len(stack)-1]; top == atom.Ul || top == atom.Ol {
				return fmt.Errorf("%w: text directly inside <%v>", ErrMalformed, top)
			}
		case html.StartTagToken:
			name, _ := tok.TagName()
			tag := atom.Lookup(name)
			var parent atom.Atom
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}
			if err := checkParent(tag, parent, len(stack)); err != nil {
				return err
			}
			if len(stack) == 0 {
				roots++
			}
			stack = append(stack, tag)
		case html.EndTagToken:
			name, _ := tok.TagName()
			tag := atom.Lookup(name)
			if len(stack) == 0 || stack[len(stack)-1] != tag {
				return fmt.Errorf("%w: unexpected </%s>", ErrMalformed, name)
			}
			stack = stack[:len(stack)-1]
		default:
			return fmt.Errorf("%w: unexpected %v", ErrMalformed, tt)
		}
	}
}

func checkParent(tag, parent atom.Atom, depth int) error {
	switch {
	case tag == 0:
		return fmt.Errorf("%w: unknown tag", ErrMalformed)
	case depth == 0:
		if tag != atom.Div {
			return fmt.Errorf("%w: root is <%v>; want <div>", ErrMalformed, tag)
		}
	case tag == atom.Li:
		if parent != atom.Ul && parent != atom.Ol {
			return fmt.Errorf("%w: <li> inside <%v>", ErrMalformed, parent)
		}
	case tag == atom.Code && parent == atom.Pre:
	case isBlockTag(tag):
		if parent != atom.Div || depth != 1 {
			return fmt.Errorf("%w: <%v> inside <%v>", ErrMalformed, tag, parent)
		}
	case parent == atom.Ul || parent == atom.Ol:
		return fmt.Errorf("%w: <%v> inside <%v>", ErrMalformed, tag, parent)
	}
	return nil
}

var blockTags = map[atom.Atom]struct{}{
	atom.Blockquote: {},
	atom.Div:        {},
	atom.Ol:         {},
	atom.P:          {},
	atom.Pre:        {},
	atom.Ul:         {},
	atom.H1:         {},
	atom.H2:         {},
	atom.H3:         {},
	atom.H4:         {},
	atom.H5:         {},
	atom.H6:         {},
}

func isBlockTag(tag atom.Atom) bool {
	_, ok := blockTags[tag]
	return ok
}

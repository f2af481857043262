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

// A Cursor describes an [*Element] encountered during [Walk].
type Cursor struct {
	element *Element
	parent  *Element
}

// Element returns the current element.
func (c *Cursor) Element() *Element {
	return c.element
}

// Parent returns the parent of the current element
// (as returned by [*Cursor.Element])
// or nil if the current element is the root of the walk.
func (c *Cursor) Parent() *Element {
	return c.parent
}

// WalkOptions is the set of parameters to [Walk].
type WalkOptions struct {
	// If Pre is not nil, it is called for each element before the element's children are traversed (pre-order).
	// If Pre returns false, no children are traversed, and Post is not called for that element.
	Pre func(c *Cursor) bool
	// If Post is not nil, it is called for each element after the element's children are traversed (post-order).
	// If Post returns false, traversal is terminated and Walk returns immediately.
	Post func(c *Cursor) bool
}

// Walk traverses an element tree, starting with root,
// and calling [WalkOptions.Pre] and [WalkOptions.Post].
// Walk uses an explicit stack,
// so deeply nested trees do not grow the call stack.
func Walk(root *Element, opts *WalkOptions) {
	type walkFrame struct {
		element *Element
		parent  *Element
		post    bool
	}

	if root == nil {
		return
	}
	stack := []walkFrame{{element: root}}
	cursor := new(Cursor)
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if curr.post {
			if opts.Post != nil {
				cursor.element = curr.element
				cursor.parent = curr.parent
				if !opts.Post(cursor) {
					break
				}
			}
			continue
		}

		if opts.Pre != nil {
			cursor.element = curr.element
			cursor.parent = curr.parent
			if !opts.Pre(cursor) {
				continue
			}
		}
		curr.post = true
		stack = append(stack, curr)
		for i := curr.element.ChildCount() - 1; i >= 0; i-- {
			stack = append(stack, walkFrame{
				parent:  curr.element,
				element: curr.element.Child(i),
			})
		}
	}
}

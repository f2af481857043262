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

package sitemark

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// SpanElement converts a span into a leaf element.
// Plain text becomes an untagged leaf,
// emphasis and code spans become <b>, <i>, or <code> leaves,
// links become <a href> leaves,
// and images become empty <img src alt> leaves.
func SpanElement(span TextSpan) (*Element, error) {
	switch span.Kind {
	case TextKind:
		return NewLeaf(0, span.Text)
	case BoldKind:
		return NewLeaf(atom.B, span.Text)
	case ItalicKind:
		return NewLeaf(atom.I, span.Text)
	case CodeSpanKind:
		return NewLeaf(atom.Code, span.Text)
	case LinkKind:
		return NewLeaf(atom.A, span.Text, html.Attribute{Key: "href", Val: span.Target})
	case ImageKind:
		return NewLeaf(atom.Img, "",
			html.Attribute{Key: "src", Val: span.Target},
			html.Attribute{Key: "alt", Val: span.Text},
		)
	default:
		return nil, fmt.Errorf("render span: %v: %w", span.Kind, ErrUnknownKind)
	}
}

// inlineElements tokenizes text and converts each span into a leaf element.
// The returned slice is never nil.
func inlineElements(text string) ([]*Element, error) {
	spans, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	elems := make([]*Element, 0, len(spans))
	for _, span := range spans {
		e, err := SpanElement(span)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	return elems, nil
}

// inlineContainer wraps the inline elements of text in a container.
func inlineContainer(tag atom.Atom, text string) (*Element, error) {
	children, err := inlineElements(text)
	if err != nil {
		return nil, err
	}
	return NewContainer(tag, children)
}

var headingTags = [maxHeadingLevel + 1]atom.Atom{
	1: atom.H1,
	2: atom.H2,
	3: atom.H3,
	4: atom.H4,
	5: atom.H5,
	6: atom.H6,
}

// RenderBlock converts a classified block into a single element.
// Inline content is tokenized with [Tokenize],
// except inside code blocks, which are rendered verbatim.
func RenderBlock(block Block) (*Element, error) {
	e, err := renderBlock(block)
	if err != nil {
		return nil, fmt.Errorf("render %v: %w", block.Kind, err)
	}
	return e, nil
}

func renderBlock(block Block) (*Element, error) {
	switch block.Kind {
	case ParagraphKind:
		return inlineContainer(atom.P, strings.Join(strings.Split(block.Source, "\n"), " "))
	case HeadingKind:
		source := strings.TrimLeft(block.Source, whitespace)
		level, contentStart := parseATXHeading(source)
		if level == 0 {
			return nil, errors.New("missing heading marker")
		}
		return inlineContainer(headingTags[level], source[contentStart:])
	case CodeBlockKind:
		source := strings.TrimSpace(block.Source)
		if !isCodeBlock(source) {
			return nil, errors.New("missing code fences")
		}
		text, err := NewLeaf(0, source[len(codeFence):len(source)-len(codeFence)])
		if err != nil {
			return nil, err
		}
		code, err := NewContainer(atom.Code, []*Element{text})
		if err != nil {
			return nil, err
		}
		return NewContainer(atom.Pre, []*Element{code})
	case BlockQuoteKind:
		sb := new(strings.Builder)
		for _, line := range strings.Split(block.Source, "\n") {
			line = strings.TrimSpace(line)
			if end := parseBlockQuote(line); end >= 0 {
				line = line[end:]
			}
			sb.WriteString(line)
			sb.WriteString(" ")
		}
		return inlineContainer(atom.Blockquote, strings.TrimSpace(sb.String()))
	case UnorderedListKind:
		return renderList(atom.Ul, block.Source, func(line string) string {
			return strings.TrimPrefix(line, unorderedListMarker)
		})
	case OrderedListKind:
		return renderList(atom.Ol, block.Source, func(line string) string {
			_, item, _ := strings.Cut(line, ".")
			return strings.TrimSpace(item)
		})
	default:
		return nil, ErrUnknownKind
	}
}

// renderList renders each non-blank line of source as an <li>
// after removing its list marker with trimMarker.
func renderList(tag atom.Atom, source string, trimMarker func(line string) string) (*Element, error) {
	lines := nonBlankLines(source)
	items := make([]*Element, 0, len(lines))
	for _, line := range lines {
		li, err := inlineContainer(atom.Li, trimMarker(line))
		if err != nil {
			return nil, err
		}
		items = append(items, li)
	}
	return NewContainer(tag, items)
}

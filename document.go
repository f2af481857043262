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

// Package sitemark converts a small Markdown dialect into an HTML element tree.
//
// The dialect has six kinds of blocks
// (paragraphs, headings, fenced code, quotes, unordered and ordered lists)
// separated by blank lines,
// and five kinds of inline spans
// (bold, italic, code, links, and images) that do not nest.
package sitemark

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/atom"
	"golang.org/x/sync/errgroup"
)

// A Converter converts Markdown documents into element trees.
// The zero value renders blocks sequentially.
type Converter struct {
	// Concurrency is the maximum number of blocks rendered at once.
	// Values less than 2 render blocks one at a time.
	// Output order is the same regardless of Concurrency.
	Concurrency int
}

// Convert converts a document into a <div> containing one element per block
// using the default options for [Converter].
func Convert(markdown string) (*Element, error) {
	return new(Converter).Convert(markdown)
}

// RenderHTML converts a document and writes its serialized HTML to w.
func RenderHTML(w io.Writer, markdown string) error {
	root, err := Convert(markdown)
	if err != nil {
		return err
	}
	if _, err := root.WriteTo(w); err != nil {
		return fmt.Errorf("render markdown to html: %w", err)
	}
	return nil
}

// Convert converts a document into a <div> containing one element per block.
// If any block fails to render,
// Convert returns the error of the earliest such block and no tree.
func (c *Converter) Convert(markdown string) (*Element, error) {
	blocks := ParseBlocks(markdown)
	elems := make([]*Element, len(blocks))
	errs := make([]error, len(blocks))
	if c.Concurrency < 2 {
		for i, b := range blocks {
			elems[i], errs[i] = RenderBlock(b)
			if errs[i] != nil {
				break
			}
		}
	} else {
		var g errgroup.Group
		g.SetLimit(c.Concurrency)
		for i, b := range blocks {
			g.Go(func() error {
				elems[i], errs[i] = RenderBlock(b)
				return nil
			})
		}
		// Goroutines never fail: errors are collected in errs by position.
		g.Wait()
	}
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("convert markdown: block %d: %w", i+1, err)
		}
	}
	return NewContainer(atom.Div, elems)
}

// titlePrefix is the marker of a level-1 heading.
const titlePrefix = "# "

// ExtractTitle returns the text of the first level-1 heading in the document,
// with inline markup removed.
// Only rendered text is kept, so images contribute nothing.
// It returns [ErrNoTitle] if the document has no level-1 heading.
func ExtractTitle(markdown string) (string, error) {
	for _, b := range ParseBlocks(markdown) {
		if b.Kind != HeadingKind {
			continue
		}
		line, _, _ := strings.Cut(b.Source, "\n")
		rest, ok := strings.CutPrefix(line, titlePrefix)
		if !ok {
			continue
		}
		spans, err := Tokenize(rest)
		if err != nil {
			return "", fmt.Errorf("extract title: %w", err)
		}
		sb := new(strings.Builder)
		for _, span := range spans {
			e, err := SpanElement(span)
			if err != nil {
				return "", fmt.Errorf("extract title: %w", err)
			}
			sb.WriteString(e.Text())
		}
		return strings.TrimSpace(sb.String()), nil
	}
	return "", ErrNoTitle
}

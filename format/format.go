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

// Package format provides a function to format a Markdown document
// that is equivalent to the original Markdown.
package format

import (
	"io"
	"strconv"
	"strings"

	"zombiezen.com/go/sitemark"
)

// Format writes the given blocks as Markdown to the given writer.
// Blocks are separated by a single blank line,
// quote lines are written with a "> " marker,
// and ordered list items are renumbered with a single space after the marker.
func Format(w io.Writer, blocks []sitemark.Block) error {
	ww := &errWriter{w: w}
	for _, b := range blocks {
		if ww.hasWritten {
			ww.WriteString("\n")
		}
		for i, line := range strings.Split(b.Source, "\n") {
			writeLine(ww, b.Kind, i, strings.TrimSpace(line))
		}
	}
	return ww.err
}

// FormatString formats a Markdown document.
func FormatString(markdown string) string {
	sb := new(strings.Builder)
	// Writing in-memory doesn't fail.
	Format(sb, sitemark.ParseBlocks(markdown))
	return sb.String()
}

func writeLine(w *errWriter, kind sitemark.BlockKind, i int, line string) {
	switch kind {
	case sitemark.BlockQuoteKind:
		line = strings.TrimPrefix(line, ">")
		line = strings.TrimPrefix(line, " ")
		w.WriteString(">")
		if line != "" {
			w.WriteString(" ")
			w.WriteString(line)
		}
	case sitemark.OrderedListKind:
		_, item, _ := strings.Cut(line, ".")
		w.WriteString(strconv.Itoa(i + 1))
		w.WriteString(". ")
		w.WriteString(strings.TrimSpace(item))
	default:
		w.WriteString(line)
	}
	w.WriteString("\n")
}

type errWriter struct {
	w          io.Writer
	hasWritten bool
	err        error
}

func (w *errWriter) WriteString(s string) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = io.WriteString(w.w, s)
	w.hasWritten = w.hasWritten || n > 0
	return n, w.err
}

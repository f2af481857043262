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
	"fmt"
	"strconv"
	"strings"
)

// A Block is a run of contiguous non-blank lines in a document.
// Each line of Source has been stripped of leading and trailing whitespace.
type Block struct {
	Source string
	Kind   BlockKind
}

// HeadingLevel returns the 1-based level of a [HeadingKind] block
// or zero for other kinds of blocks.
func (b *Block) HeadingLevel() int {
	if b == nil || b.Kind != HeadingKind {
		return 0
	}
	level, _ := parseATXHeading(strings.TrimLeft(b.Source, whitespace))
	return level
}

// BlockKind is an enumeration of the structural types of a [Block].
type BlockKind uint16

const (
	ParagraphKind BlockKind = 1 + iota
	HeadingKind
	CodeBlockKind
	BlockQuoteKind
	UnorderedListKind
	OrderedListKind

	blockKindEnd
)

func (kind BlockKind) String() string {
	switch kind {
	case ParagraphKind:
		return "ParagraphKind"
	case HeadingKind:
		return "HeadingKind"
	case CodeBlockKind:
		return "CodeBlockKind"
	case BlockQuoteKind:
		return "BlockQuoteKind"
	case UnorderedListKind:
		return "UnorderedListKind"
	case OrderedListKind:
		return "OrderedListKind"
	default:
		return fmt.Sprintf("BlockKind(%d)", uint16(kind))
	}
}

const whitespace = " \t\r\n\v\f"

// ParseBlocks splits a document into blocks and classifies each one.
func ParseBlocks(markdown string) []Block {
	sources := SplitBlocks(markdown)
	blocks := make([]Block, 0, len(sources))
	for _, s := range sources {
		blocks = append(blocks, Block{
			Source: s,
			Kind:   ClassifyBlock(s),
		})
	}
	return blocks
}

// SplitBlocks partitions a document into blocks separated by blank lines.
// A blank line is empty or contains only whitespace.
// Each line of a block is trimmed of surrounding whitespace
// and the lines are rejoined with a single newline.
// SplitBlocks never returns empty blocks.
func SplitBlocks(markdown string) []string {
	var blocks []string
	var lines []string
	flush := func() {
		if len(lines) > 0 {
			blocks = append(blocks, strings.Join(lines, "\n"))
			lines = lines[:0]
		}
	}
	for _, line := range strings.Split(strings.TrimSpace(markdown), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		lines = append(lines, line)
	}
	flush()
	return blocks
}

// ClassifyBlock returns the structural type of a block.
// The checks run in a fixed order and the first match wins:
// heading, fenced code, quote, unordered list, ordered list.
// Anything else, including empty or blank text, is a paragraph.
func ClassifyBlock(block string) BlockKind {
	trimmed := strings.TrimSpace(block)
	lines := nonBlankLines(block)
	switch {
	case isHeading(trimmed):
		return HeadingKind
	case isCodeBlock(trimmed):
		return CodeBlockKind
	case isBlockQuote(lines):
		return BlockQuoteKind
	case isUnorderedList(lines):
		return UnorderedListKind
	case isOrderedList(lines):
		return OrderedListKind
	default:
		return ParagraphKind
	}
}

// codeFence is the marker that opens and closes a code block.
const codeFence = "```"

// unorderedListMarker is the prefix of every unordered list item.
const unorderedListMarker = "- "

// minListItems is the number of items required to form a list.
const minListItems = 2

func isHeading(block string) bool {
	level, _ := parseATXHeading(block)
	return level > 0
}

func isCodeBlock(block string) bool {
	return len(block) >= 2*len(codeFence) &&
		strings.HasPrefix(block, codeFence) &&
		strings.HasSuffix(block, codeFence)
}

func isBlockQuote(lines []string) bool {
	if len(lines) == 0 {
		return false
	}
	for _, line := range lines {
		if parseBlockQuote(line) < 0 {
			return false
		}
	}
	return true
}

func isUnorderedList(lines []string) bool {
	if len(lines) < minListItems {
		return false
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, unorderedListMarker) {
			return false
		}
	}
	return true
}

func isOrderedList(lines []string) bool {
	if len(lines) < minListItems {
		return false
	}
	for i, line := range lines {
		if !strings.HasPrefix(line, orderedListMarker(i+1)) {
			return false
		}
	}
	return true
}

// orderedListMarker returns the prefix expected on the n'th (1-based) item
// of an ordered list.
func orderedListMarker(n int) string {
	return strconv.Itoa(n) + ". "
}

// nonBlankLines returns the trimmed lines of block that are not blank.
func nonBlankLines(block string) []string {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// maxHeadingLevel is the deepest heading level, <h6>.
const maxHeadingLevel = 6

// parseATXHeading attempts to parse a heading marker
// (1-6 '#' characters followed by a space)
// from the beginning of the text.
// It returns the heading level and the offset where the heading content begins,
// or a zero level if the text does not begin with a heading marker.
// parseATXHeading assumes that the caller has stripped any leading whitespace.
func parseATXHeading(text string) (level int, contentStart int) {
	for level < len(text) && text[level] == '#' {
		level++
	}
	if level == 0 || level > maxHeadingLevel || level >= len(text) || text[level] != ' ' {
		return 0, 0
	}
	return level, level + 1
}

// parseBlockQuote attempts to parse a block quote marker from the beginning of the line.
// It returns the end of the block quote marker
// (including a single following space, if present)
// or -1 if the line does not begin with the marker.
// parseBlockQuote assumes that the caller has stripped any leading whitespace.
func parseBlockQuote(line string) (end int) {
	if len(line) == 0 || line[0] != '>' {
		return -1
	}
	if len(line) > 1 && line[1] == ' ' {
		return 2
	}
	return 1
}

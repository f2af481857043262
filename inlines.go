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
	"regexp"
	"strings"
)

// A TextSpan is a typed run of inline text.
type TextSpan struct {
	// Text is the span's content.
	// For images, it is the alternate text.
	Text string
	Kind SpanKind
	// Target is the destination URL of a [LinkKind] or [ImageKind] span.
	// It is empty for all other kinds.
	Target string
}

// SpanKind is an enumeration of values for [TextSpan.Kind].
type SpanKind uint16

const (
	TextKind SpanKind = 1 + iota
	BoldKind
	ItalicKind
	CodeSpanKind
	LinkKind
	ImageKind

	spanKindEnd
)

func (kind SpanKind) String() string {
	switch kind {
	case TextKind:
		return "TextKind"
	case BoldKind:
		return "BoldKind"
	case ItalicKind:
		return "ItalicKind"
	case CodeSpanKind:
		return "CodeSpanKind"
	case LinkKind:
		return "LinkKind"
	case ImageKind:
		return "ImageKind"
	default:
		return fmt.Sprintf("SpanKind(%d)", uint16(kind))
	}
}

var (
	imagePattern = regexp.MustCompile(`!\[([^\[\]]*)\]\(([^()]*)\)`)
	linkPattern  = regexp.MustCompile(`\[([^\[\]]*)\]\(([^()]*)\)`)
)

// delimiterPasses is the order in which delimiter pairs are matched.
// Each pass only looks at spans that are still [TextKind],
// so text inside a code span is never parsed for emphasis.
var delimiterPasses = []struct {
	delim string
	kind  SpanKind
}{
	{"`", CodeSpanKind},
	{"_", ItalicKind},
	{"**", BoldKind},
}

// Tokenize splits inline text into spans.
// Images are split out first, then links,
// then code spans, italics, and bold text.
// Emphasis does not nest.
// Tokenize returns an error wrapping [ErrUnmatchedDelimiter]
// if a delimiter is opened and never closed.
// The empty string produces no spans.
func Tokenize(text string) ([]TextSpan, error) {
	if text == "" {
		return nil, nil
	}
	spans := []TextSpan{{Text: text, Kind: TextKind}}
	spans = splitLinks(spans, imagePattern, ImageKind)
	spans = splitLinks(spans, linkPattern, LinkKind)
	for _, pass := range delimiterPasses {
		var err error
		spans, err = splitDelimiter(spans, pass.delim, pass.kind)
		if err != nil {
			return nil, err
		}
	}
	return spans, nil
}

// splitLinks splits every [TextKind] span around matches of pattern,
// which must have two submatches: the text and the target.
// Link matches immediately preceded by '!' are left alone
// so that image syntax is never read as a link.
func splitLinks(spans []TextSpan, pattern *regexp.Regexp, kind SpanKind) []TextSpan {
	result := make([]TextSpan, 0, len(spans))
	for _, span := range spans {
		if span.Kind != TextKind {
			result = append(result, span)
			continue
		}
		s := span.Text
		plainStart := 0
		for _, m := range pattern.FindAllStringSubmatchIndex(s, -1) {
			if kind == LinkKind && m[0] > 0 && s[m[0]-1] == '!' {
				continue
			}
			if m[0] > plainStart {
				result = append(result, TextSpan{Text: s[plainStart:m[0]], Kind: TextKind})
			}
			result = append(result, TextSpan{
				Text:   s[m[2]:m[3]],
				Kind:   kind,
				Target: s[m[4]:m[5]],
			})
			plainStart = m[1]
		}
		if plainStart < len(s) {
			result = append(result, TextSpan{Text: s[plainStart:], Kind: TextKind})
		}
	}
	return result
}

// splitDelimiter splits every [TextKind] span around pairs of delim,
// turning the text between each pair into a span of the given kind.
// Pairs are matched left to right:
// the first occurrence opens, the next one closes.
func splitDelimiter(spans []TextSpan, delim string, kind SpanKind) ([]TextSpan, error) {
	result := make([]TextSpan, 0, len(spans))
	for _, span := range spans {
		if span.Kind != TextKind {
			result = append(result, span)
			continue
		}
		rest := span.Text
		for rest != "" {
			open := strings.Index(rest, delim)
			if open < 0 {
				result = append(result, TextSpan{Text: rest, Kind: TextKind})
				break
			}
			contentStart := open + len(delim)
			n := strings.Index(rest[contentStart:], delim)
			if n < 0 {
				return nil, &DelimiterError{Delimiter: delim, Text: span.Text}
			}
			contentEnd := contentStart + n
			if open > 0 {
				result = append(result, TextSpan{Text: rest[:open], Kind: TextKind})
			}
			result = append(result, TextSpan{Text: rest[contentStart:contentEnd], Kind: kind})
			rest = rest[contentEnd+len(delim):]
		}
	}
	return result, nil
}

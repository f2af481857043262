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
	"testing"

	"golang.org/x/net/html/atom"
)

func TestSpanElement(t *testing.T) {
	tests := []struct {
		span TextSpan
		tag  atom.Atom
		want string
	}{
		{TextSpan{Text: "This is a text node", Kind: TextKind}, 0, "This is a text node"},
		{TextSpan{Text: "This is bold text", Kind: BoldKind}, atom.B, "<b>This is bold text</b>"},
		{TextSpan{Text: "This is italic text", Kind: ItalicKind}, atom.I, "<i>This is italic text</i>"},
		{TextSpan{Text: "print('Hello World')", Kind: CodeSpanKind}, atom.Code, "<code>print('Hello World')</code>"},
		{
			TextSpan{Text: "Click me", Kind: LinkKind, Target: "https://boot.dev"},
			atom.A,
			`<a href="https://boot.dev">Click me</a>`,
		},
		{
			TextSpan{Text: "An image", Kind: ImageKind, Target: "https://example.com/image.png"},
			atom.Img,
			`<img src="https://example.com/image.png" alt="An image"></img>`,
		},
	}
	for _, test := range tests {
		e, err := SpanElement(test.span)
		if err != nil {
			t.Errorf("SpanElement(%+v): %v", test.span, err)
			continue
		}
		if !e.IsLeaf() || e.Tag() != test.tag {
			t.Errorf("SpanElement(%+v) = <%v> (leaf=%t); want <%v> leaf", test.span, e.Tag(), e.IsLeaf(), test.tag)
		}
		if got := e.HTML(); got != test.want {
			t.Errorf("SpanElement(%+v).HTML() = %q; want %q", test.span, got, test.want)
		}
	}
}

func TestSpanElementImageValue(t *testing.T) {
	e, err := SpanElement(TextSpan{Text: "alt", Kind: ImageKind, Target: "u"})
	if err != nil {
		t.Fatal(err)
	}
	if got := e.Value(); got != "" {
		t.Errorf("Value() = %q; want \"\"", got)
	}
	if got, ok := e.Attr("alt"); got != "alt" || !ok {
		t.Errorf("Attr(\"alt\") = %q, %t; want \"alt\", true", got, ok)
	}
	if got, ok := e.Attr("src"); got != "u" || !ok {
		t.Errorf("Attr(\"src\") = %q, %t; want \"u\", true", got, ok)
	}
}

func TestSpanElementUnknownKind(t *testing.T) {
	for _, kind := range []SpanKind{0, spanKindEnd, 99} {
		_, err := SpanElement(TextSpan{Text: "x", Kind: kind})
		if !errors.Is(err, ErrUnknownKind) {
			t.Errorf("SpanElement(%v span) error = %v; want %v", kind, err, ErrUnknownKind)
		}
	}
}

// TestKindsHandled fails when a kind is added
// without updating the renderers.
func TestKindsHandled(t *testing.T) {
	for kind := TextKind; kind < spanKindEnd; kind++ {
		if _, err := SpanElement(TextSpan{Text: "x", Kind: kind, Target: "u"}); err != nil {
			t.Errorf("SpanElement(%v span): %v", kind, err)
		}
	}
	samples := map[BlockKind]string{
		ParagraphKind:     "text",
		HeadingKind:       "# text",
		CodeBlockKind:     "```text```",
		BlockQuoteKind:    "> text",
		UnorderedListKind: "- a\n- b",
		OrderedListKind:   "1. a\n2. b",
	}
	for kind := ParagraphKind; kind < blockKindEnd; kind++ {
		source, ok := samples[kind]
		if !ok {
			t.Errorf("no sample block for %v", kind)
			continue
		}
		if got := ClassifyBlock(source); got != kind {
			t.Errorf("ClassifyBlock(%q) = %v; want %v", source, got, kind)
		}
		if _, err := RenderBlock(Block{Source: source, Kind: kind}); err != nil {
			t.Errorf("RenderBlock(%v block): %v", kind, err)
		}
	}
	if _, err := RenderBlock(Block{Source: "x", Kind: blockKindEnd}); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("RenderBlock(%v block) error = %v; want %v", blockKindEnd, err, ErrUnknownKind)
	}
}

func TestRenderBlock(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "Paragraph",
			source: "Some **bold** text",
			want:   "<p>Some <b>bold</b> text</p>",
		},
		{
			name:   "MultilineParagraph",
			source: "This is _italic_\nand more text\nacross lines",
			want:   "<p>This is <i>italic</i> and more text across lines</p>",
		},
		{
			name:   "Heading1",
			source: "# Title",
			want:   "<h1>Title</h1>",
		},
		{
			name:   "Heading3",
			source: "### A `code` heading",
			want:   "<h3>A <code>code</code> heading</h3>",
		},
		{
			name:   "Heading6",
			source: "###### Deep",
			want:   "<h6>Deep</h6>",
		},
		{
			name:   "Code",
			source: "```\nfunc main() {\n\tfmt.Println(\"**not bold**\")\n}\n```",
			want:   "<pre><code>\nfunc main() {\n\tfmt.Println(\"**not bold**\")\n}\n</code></pre>",
		},
		{
			name:   "InlineCodeBlock",
			source: "```x_y```",
			want:   "<pre><code>x_y</code></pre>",
		},
		{
			name:   "Quote",
			source: "> This is a quote\n>with _style_\n> and more",
			want:   "<blockquote>This is a quote with <i>style</i> and more</blockquote>",
		},
		{
			name:   "EmptyQuoteLine",
			source: "> first\n>\n> second",
			want:   "<blockquote>first  second</blockquote>",
		},
		{
			name:   "UnorderedList",
			source: "- a\n- b",
			want:   "<ul><li>a</li><li>b</li></ul>",
		},
		{
			name:   "UnorderedListInline",
			source: "- **bold** item\n- [link](https://example.com)",
			want:   `<ul><li><b>bold</b> item</li><li><a href="https://example.com">link</a></li></ul>`,
		},
		{
			name:   "OrderedList",
			source: "1. first\n2. second\n3. _third_",
			want:   "<ol><li>first</li><li>second</li><li><i>third</i></li></ol>",
		},
		{
			name:   "OrderedListTwoDigits",
			source: "1. a\n2. b\n3. c\n4. d\n5. e\n6. f\n7. g\n8. h\n9. i\n10. j",
			want:   "<ol><li>a</li><li>b</li><li>c</li><li>d</li><li>e</li><li>f</li><li>g</li><li>h</li><li>i</li><li>j</li></ol>",
		},
		{
			name:   "Image",
			source: "![logo](/static/logo.png)",
			want:   `<p><img src="/static/logo.png" alt="logo"></img></p>`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			block := Block{Source: test.source, Kind: ClassifyBlock(test.source)}
			e, err := RenderBlock(block)
			if err != nil {
				t.Fatalf("RenderBlock(%q): %v", test.source, err)
			}
			if got := e.HTML(); got != test.want {
				t.Errorf("RenderBlock(%q).HTML() =\n%q\nwant\n%q", test.source, got, test.want)
			}

			again, err := RenderBlock(block)
			if err != nil {
				t.Fatalf("second RenderBlock(%q): %v", test.source, err)
			}
			if got := again.HTML(); got != test.want {
				t.Errorf("second RenderBlock(%q).HTML() = %q; want %q", test.source, got, test.want)
			}
		})
	}
}

func TestRenderBlockUnmatched(t *testing.T) {
	_, err := RenderBlock(Block{Source: "**bold", Kind: ParagraphKind})
	if !errors.Is(err, ErrUnmatchedDelimiter) {
		t.Errorf("RenderBlock(\"**bold\") error = %v; want %v", err, ErrUnmatchedDelimiter)
	}
}

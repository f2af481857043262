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

package format

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"zombiezen.com/go/sitemark"
	"zombiezen.com/go/sitemark/internal/spec"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{
			name:     "Empty",
			markdown: "  \n\n",
			want:     "",
		},
		{
			name:     "BlankLines",
			markdown: "\n\n# Title  \n\n\n\n   Some text\n  more text\n\n",
			want:     "# Title\n\nSome text\nmore text\n",
		},
		{
			name:     "Quote",
			markdown: ">first\n>\n>  indented",
			want:     "> first\n>\n>  indented\n",
		},
		{
			name:     "OrderedList",
			markdown: "1.   one\n2. two",
			want:     "1. one\n2. two\n",
		},
		{
			name:     "NotAList",
			markdown: "1. one\n3. three",
			want:     "1. one\n3. three\n",
		},
		{
			name:     "Code",
			markdown: "```\n  keep\n```",
			want:     "```\nkeep\n```\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if diff := cmp.Diff(test.want, FormatString(test.markdown)); diff != "" {
				t.Errorf("FormatString(%q) (-want +got):\n%s", test.markdown, diff)
			}
		})
	}
}

type failWriter struct{}

var errWrite = errors.New("write failed")

func (failWriter) Write(p []byte) (int, error) {
	return 0, errWrite
}

func TestFormatWriteError(t *testing.T) {
	blocks := sitemark.ParseBlocks("a\n\nb")
	if err := Format(failWriter{}, blocks); !errors.Is(err, errWrite) {
		t.Errorf("Format(failWriter{}, ...) = %v; want %v", err, errWrite)
	}
}

func FuzzFormat(f *testing.F) {
	examples, err := spec.Load()
	if err != nil {
		f.Fatal(err)
	}
	for _, ex := range examples {
		f.Add(ex.Markdown)
	}

	f.Fuzz(func(t *testing.T, markdown string) {
		originalHTML, originalErr := render(markdown)
		got := FormatString(markdown)

		formattedHTML, formattedErr := render(got)
		if (originalErr == nil) != (formattedErr == nil) {
			t.Fatalf("Original:\n%s\nReformatting:\n%s\nerrors: %v vs. %v", markdown, got, originalErr, formattedErr)
		}
		if diff := cmp.Diff(originalHTML, formattedHTML); diff != "" {
			t.Errorf("Reformatting changed semantics. Original:\n%s\nReformatting:\n%s\nHTML diff (-want +got):\n%s", markdown, got, diff)
		}

		if diff := cmp.Diff(got, FormatString(got)); diff != "" {
			t.Errorf("Format not idempotent (-first +second):\n%s", diff)
		}
	})
}

func render(markdown string) (string, error) {
	sb := new(strings.Builder)
	err := sitemark.RenderHTML(sb, markdown)
	return sb.String(), err
}

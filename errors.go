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
	"errors"
	"fmt"
)

var (
	// ErrUnmatchedDelimiter is returned by [Tokenize]
	// when an opening delimiter has no matching closer.
	ErrUnmatchedDelimiter = errors.New("unmatched delimiter")
	// ErrNoTitle is returned by [ExtractTitle]
	// when the document has no level-1 heading.
	ErrNoTitle = errors.New("no title found")
	// ErrInvalidElement is returned when constructing an [Element]
	// that would violate the tree's invariants.
	ErrInvalidElement = errors.New("invalid element")
	// ErrUnknownKind is returned when a [SpanKind] or [BlockKind]
	// is outside the known set.
	ErrUnknownKind = errors.New("unknown kind")
)

// A DelimiterError reports an inline delimiter without a closer.
type DelimiterError struct {
	// Delimiter is the unmatched delimiter, like "**" or "`".
	Delimiter string
	// Text is the run of text the opener was found in.
	Text string
}

func (e *DelimiterError) Error() string {
	return fmt.Sprintf("closing delimiter %q not found in %q", e.Delimiter, e.Text)
}

// Unwrap returns [ErrUnmatchedDelimiter].
func (e *DelimiterError) Unwrap() error {
	return ErrUnmatchedDelimiter
}

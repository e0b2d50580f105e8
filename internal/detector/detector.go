// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Classifier decides whether a single line of text has the shape of a
// particular identifier. Implementations must be pure: the same line always
// yields the same answer and Classify is safe for concurrent use.
type Classifier interface {
	// Name returns the short identifier family name (e.g. "P2PKH")
	Name() string

	// Classify reports whether line matches the identifier shape
	Classify(line string) bool
}

// Alphabet is a fixed set of ASCII symbols an identifier may be built from.
type Alphabet struct {
	symbols string
	table   [utf8.RuneSelf]bool
}

// NewAlphabet builds an Alphabet from the given symbols.
// Bytes outside the ASCII range are ignored.
func NewAlphabet(symbols string) Alphabet {
	a := Alphabet{symbols: symbols}
	for i := 0; i < len(symbols); i++ {
		if c := symbols[i]; c < utf8.RuneSelf {
			a.table[c] = true
		}
	}
	return a
}

// Contains reports whether c is one of the alphabet's symbols
func (a *Alphabet) Contains(c byte) bool {
	return c < utf8.RuneSelf && a.table[c]
}

// ContainsAll reports whether every byte of s is in the alphabet.
// Any multi-byte UTF-8 sequence fails the check.
func (a *Alphabet) ContainsAll(s string) bool {
	for i := 0; i < len(s); i++ {
		if !a.Contains(s[i]) {
			return false
		}
	}
	return true
}

// Size returns the number of distinct symbols
func (a *Alphabet) Size() int {
	n := 0
	for _, ok := range a.table {
		if ok {
			n++
		}
	}
	return n
}

// String returns the symbols the alphabet was built from
func (a *Alphabet) String() string {
	return a.symbols
}

// Shape is a structural description of an identifier family: a fixed
// leading marker, an inclusive length range and a symbol alphabet.
// It performs no checksum or decoding.
type Shape struct {
	Name      string
	Prefix    byte
	MinLength int
	MaxLength int
	Alphabet  Alphabet
}

// Matches evaluates the prefix, length and alphabet checks in that order,
// returning on the first failure. The input is expected to be trimmed.
func (s *Shape) Matches(text string) bool {
	if text == "" {
		return false
	}
	if text[0] != s.Prefix {
		return false
	}
	// Byte length equals character count for anything that can pass the
	// alphabet check, so the result is the same as counting runes.
	if n := len(text); n < s.MinLength || n > s.MaxLength {
		return false
	}
	return s.Alphabet.ContainsAll(text)
}

// TrimSpace removes leading and trailing whitespace. Besides the Unicode
// White_Space set it strips the ASCII separators 0x1C-0x1F, matching what
// line-oriented address tooling treats as blank.
func TrimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

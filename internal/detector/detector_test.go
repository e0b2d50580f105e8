// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

import (
	"strings"
	"testing"
)

func TestAlphabet(t *testing.T) {
	a := NewAlphabet("abc")
	if a.Size() != 3 {
		t.Fatalf("expected size 3, got %d", a.Size())
	}
	if !a.ContainsAll("cab") {
		t.Error("expected 'cab' to be fully contained")
	}
	if a.ContainsAll("abd") {
		t.Error("'d' should not be contained")
	}
	if a.ContainsAll("aé") {
		t.Error("multi-byte characters should never be contained")
	}
	if a.String() != "abc" {
		t.Errorf("expected String() to return the symbols, got %q", a.String())
	}
}

func TestAlphabetIgnoresNonASCII(t *testing.T) {
	a := NewAlphabet("aé")
	if a.Size() != 1 {
		t.Errorf("expected only the ASCII symbol to be kept, got size %d", a.Size())
	}
}

func TestShapeSiblingFamily(t *testing.T) {
	// A second family expressed with the same building blocks.
	p2sh := Shape{
		Name:      "P2SH",
		Prefix:    '3',
		MinLength: 26,
		MaxLength: 35,
		Alphabet:  NewAlphabet("123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"),
	}

	cases := []struct {
		text string
		want bool
	}{
		{"3J98t1WpEZ73CNmQviecrnyiWrnqRhWNLy", true},
		{"1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", false},
		{"3" + strings.Repeat("a", 24), false},
		{"3" + strings.Repeat("a", 25), true},
		{"", false},
	}
	for _, tc := range cases {
		if got := p2sh.Matches(tc.text); got != tc.want {
			t.Errorf("Matches(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestTrimSpace(t *testing.T) {
	cases := map[string]string{
		"  abc\t\r\n":       "abc",
		"\x1cabc\x1f":        "abc",
		"\x1e\x1d a b \x1c": "a b",
		"\u3000abc\u0085":    "abc",
		"\u200babc":          "\u200babc",
		"\x1babc":            "\x1babc",
		"":                   "",
	}
	for in, want := range cases {
		if got := TrimSpace(in); got != want {
			t.Errorf("TrimSpace(%q) = %q, want %q", in, got, want)
		}
	}
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package textio

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// DecodeMode controls how byte sequences that are not valid UTF-8 are handled
type DecodeMode int

const (
	// DecodeBestEffort silently drops invalid bytes and keeps going
	DecodeBestEffort DecodeMode = iota

	// DecodeStrict stops at the first invalid byte with an *InvalidUTF8Error
	DecodeStrict
)

// String returns the configuration name of the mode
func (m DecodeMode) String() string {
	switch m {
	case DecodeBestEffort:
		return "best-effort"
	case DecodeStrict:
		return "strict"
	default:
		return fmt.Sprintf("DecodeMode(%d)", int(m))
	}
}

// ParseDecodeMode converts a configuration value into a DecodeMode
func ParseDecodeMode(s string) (DecodeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "best-effort", "besteffort", "ignore":
		return DecodeBestEffort, nil
	case "strict":
		return DecodeStrict, nil
	default:
		return DecodeBestEffort, fmt.Errorf("unknown decode mode %q (valid: best-effort, strict)", s)
	}
}

// InvalidUTF8Error reports the position of the first invalid byte in strict mode
type InvalidUTF8Error struct {
	Offset int64 // Byte offset in the raw input
	Byte   byte
}

func (e *InvalidUTF8Error) Error() string {
	return fmt.Sprintf("invalid UTF-8 byte 0x%02x at offset %d", e.Byte, e.Offset)
}

// NewDecoder returns a transformer implementing mode
func NewDecoder(mode DecodeMode) transform.Transformer {
	if mode == DecodeStrict {
		return &utf8Decoder{strict: true}
	}
	return &utf8Decoder{}
}

// NewReader wraps r so that reads yield decoded text according to mode
func NewReader(r io.Reader, mode DecodeMode) io.Reader {
	return transform.NewReader(r, NewDecoder(mode))
}

// utf8Decoder copies valid UTF-8 through unchanged. Invalid bytes are
// either skipped or reported depending on strict.
type utf8Decoder struct {
	strict   bool
	consumed int64
}

func (d *utf8Decoder) Reset() {
	d.consumed = 0
}

func (d *utf8Decoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	defer func() { d.consumed += int64(nSrc) }()

	for nSrc < len(src) {
		c := src[nSrc]
		if c < utf8.RuneSelf {
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = c
			nDst++
			nSrc++
			continue
		}

		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && size == 1 {
			// A sequence split across reads is not invalid yet.
			if !atEOF && !utf8.FullRune(src[nSrc:]) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			if d.strict {
				return nDst, nSrc, &InvalidUTF8Error{Offset: d.consumed + int64(nSrc), Byte: c}
			}
			nSrc++
			continue
		}

		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		copy(dst[nDst:], src[nSrc:nSrc+size])
		nDst += size
		nSrc += size
	}
	return nDst, nSrc, nil
}

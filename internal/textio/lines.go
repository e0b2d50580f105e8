// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package textio

import (
	"bufio"
	"bytes"
	"io"
)

// DefaultMaxLineBytes caps the length of a single line held in memory
const DefaultMaxLineBytes = 64 * 1024 * 1024

const initialBufferSize = 64 * 1024

// ScanLines is a bufio.SplitFunc that accepts LF, CRLF and bare CR line
// terminators, in any mix. The terminator is not part of the token and a
// final line without terminator is still returned.
func ScanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// CR is the last byte seen; an LF may follow in the next read.
		return 0, nil, nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// NewScanner returns a line scanner over r that decodes according to mode.
// maxLineBytes <= 0 selects DefaultMaxLineBytes; longer lines stop the scan
// with bufio.ErrTooLong. When reading fails part-way through a line, that
// unterminated fragment is not returned as a line.
func NewScanner(r io.Reader, mode DecodeMode, maxLineBytes int) *bufio.Scanner {
	if maxLineBytes <= 0 {
		maxLineBytes = DefaultMaxLineBytes
	}
	initial := initialBufferSize
	if initial > maxLineBytes {
		initial = maxLineBytes
	}

	src := &failureReader{r: NewReader(r, mode)}
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, initial), maxLineBytes)
	scanner.Split(func(data []byte, atEOF bool) (int, []byte, error) {
		if atEOF && src.err != nil {
			if advance, token, _ := ScanLines(data, false); advance > 0 {
				return advance, token, nil
			}
			return 0, nil, src.err
		}
		return ScanLines(data, atEOF)
	})
	return scanner
}

// failureReader remembers the first read error other than io.EOF
type failureReader struct {
	r   io.Reader
	err error
}

func (f *failureReader) Read(p []byte) (int, error) {
	n, err := f.r.Read(p)
	if err != nil && err != io.EOF && f.err == nil {
		f.err = err
	}
	return n, err
}

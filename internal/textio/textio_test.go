// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package textio

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, r io.Reader, mode DecodeMode, max int) ([]string, error) {
	t.Helper()
	scanner := NewScanner(r, mode, max)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func TestScanLinesTerminators(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"lf", "a\nb\n", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"bare cr", "a\rb\r", []string{"a", "b"}},
		{"mixed", "a\nb\r\nc\rd", []string{"a", "b", "c", "d"}},
		{"no trailing terminator", "a\nb", []string{"a", "b"}},
		{"blank lines count", "\n\r\n\r", []string{"", "", ""}},
		{"cr then lf is one terminator", "a\r\n\nb", []string{"a", "", "b"}},
		{"lf then cr is two terminators", "a\n\rb", []string{"a", "", "b"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := scanAll(t, strings.NewReader(tc.input), DecodeBestEffort, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestScanLinesCRLFSplitAcrossReads(t *testing.T) {
	// OneByteReader forces every CR to be seen without its LF first.
	got, err := scanAll(t, iotest.OneByteReader(strings.NewReader("ab\r\ncd\r\n\ref")), DecodeBestEffort, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", "cd", "", "ef"}, got)
}

func TestBestEffortDropsInvalidBytes(t *testing.T) {
	input := "1A1zP1eP5Q\xffGefi2DMPTfTL5SLmv7DivfNa\nok\xc3\n\xe2\x82\xac\n"
	got, err := scanAll(t, strings.NewReader(input), DecodeBestEffort, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", "ok", "€"}, got)
}

func TestBestEffortKeepsSplitMultiByteRunes(t *testing.T) {
	got, err := scanAll(t, iotest.OneByteReader(strings.NewReader("x€y\n")), DecodeBestEffort, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"x€y"}, got)
}

func TestBestEffortTruncatedRuneAtEOF(t *testing.T) {
	got, err := scanAll(t, strings.NewReader("abc\xe2\x82"), DecodeBestEffort, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc"}, got)
}

func TestStrictReportsOffset(t *testing.T) {
	got, err := scanAll(t, strings.NewReader("good\nba\xffd\n"), DecodeStrict, 0)
	require.Error(t, err)

	var invalid *InvalidUTF8Error
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, int64(7), invalid.Offset)
	assert.Equal(t, byte(0xff), invalid.Byte)
	assert.Equal(t, []string{"good"}, got)
}

func TestStrictAcceptsValidInput(t *testing.T) {
	got, err := scanAll(t, strings.NewReader("a€\nb"), DecodeStrict, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a€", "b"}, got)
}

func TestMaxLineBytes(t *testing.T) {
	_, err := scanAll(t, strings.NewReader(strings.Repeat("x", 100)+"\n"), DecodeBestEffort, 16)
	assert.ErrorIs(t, err, bufio.ErrTooLong)
}

func TestParseDecodeMode(t *testing.T) {
	for in, want := range map[string]DecodeMode{
		"":            DecodeBestEffort,
		"best-effort": DecodeBestEffort,
		"ignore":      DecodeBestEffort,
		"STRICT":      DecodeStrict,
	} {
		got, err := ParseDecodeMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDecodeMode("lenient")
	assert.Error(t, err)
	assert.Equal(t, "strict", DecodeStrict.String())
	assert.Equal(t, "best-effort", DecodeBestEffort.String())
}

func TestReadFailureDropsPartialLine(t *testing.T) {
	boom := errors.New("device error")
	r := io.MultiReader(strings.NewReader("first\nsecond\npart"), iotest.ErrReader(boom))

	got, err := scanAll(t, r, DecodeBestEffort, 0)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"first", "second"}, got)
}

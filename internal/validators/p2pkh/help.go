// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package p2pkh

import (
	"fmt"

	"p2pkh-filter/internal/help"
)

// GetCheckInfo returns standardized information about the P2PKH check
func (v *Validator) GetCheckInfo() help.CheckInfo {
	return help.CheckInfo{
		Name:             CheckName,
		ShortDescription: "Keeps Legacy P2PKH Bitcoin addresses (starting with '1')",
		DetailedDescription: `The P2PKH check keeps lines that have the shape of a Legacy Pay-to-Public-Key-Hash Bitcoin address and drops everything else (P2SH, SegWit, Taproot, noise).

The check is structural only. It does not Base58-decode the address and does not verify the double-SHA256 checksum, so a line with the right shape but a wrong checksum is still kept.

Leading and trailing whitespace is ignored. Kept lines are written trimmed, one per line, terminated by a single linefeed.`,

		Patterns: []string{
			fmt.Sprintf("First character '%c' (mainnet version byte 0x00)", VersionPrefix),
			fmt.Sprintf("Length between %d and %d characters (inclusive)", MinLength, MaxLength),
			"Base58 characters only: " + Base58Alphabet,
		},

		SupportedFormats: []string{
			"Plain text, one address per line",
			"LF, CRLF or CR line endings (mixed endings allowed)",
			"UTF-8; invalid bytes are dropped in best-effort mode",
		},

		ConfigurationInfo: `defaults:
  decode_mode: best-effort   # or strict to abort on invalid UTF-8
  progress_interval: 1000000`,

		Examples: []string{
			"1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa   kept (genesis block address)",
			"112PkhMPGH8xrdpHuKUhueQ2rwJ7uTqzAD   kept",
			"3J98t1WpEZ73CNmQviecrnyiWrnqRhWNLy   dropped (P2SH)",
			"bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh   dropped (SegWit)",
		},
	}
}

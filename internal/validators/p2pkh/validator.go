// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package p2pkh

import (
	"p2pkh-filter/internal/detector"
)

const (
	// CheckName is the family name used in progress and summary text
	CheckName = "P2PKH"

	// VersionPrefix is the leading character of mainnet Legacy P2PKH
	// addresses (version byte 0x00).
	VersionPrefix byte = '1'

	// MinLength and MaxLength bound the trimmed address length, inclusive.
	// The range is a heuristic kept as-is for compatibility with the
	// address lists consumed downstream.
	MinLength = 26
	MaxLength = 35

	// Base58Alphabet is Bitcoin's encoding alphabet: digits and letters
	// without 0, O, I and l.
	Base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
)

// LegacyShape describes a Legacy P2PKH address
var LegacyShape = detector.Shape{
	Name:      CheckName,
	Prefix:    VersionPrefix,
	MinLength: MinLength,
	MaxLength: MaxLength,
	Alphabet:  detector.NewAlphabet(Base58Alphabet),
}

// Validator implements detector.Classifier for Legacy P2PKH addresses.
// It is a shallow structural check: no Base58 decoding and no checksum
// verification are performed.
type Validator struct {
	shape detector.Shape
}

// NewValidator creates a Validator for the Legacy P2PKH shape
func NewValidator() *Validator {
	return &Validator{shape: LegacyShape}
}

// Name implements detector.Classifier
func (v *Validator) Name() string {
	return v.shape.Name
}

// Classify implements detector.Classifier. Surrounding whitespace is
// ignored; any other deviation from the shape is a non-match.
func (v *Validator) Classify(line string) bool {
	return v.shape.Matches(detector.TrimSpace(line))
}

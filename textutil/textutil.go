// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

// Package textutil canonicalizes catalog text and search queries so both sides
// of a comparison go through the exact same folding.
package textutil

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// space also covers \v and NEL, which \s and \p{Z} leave out.
const space = `[\s\p{Z}\v\x{85}]`

var (
	// "4 X 4", "2×4", "4 x 4 x 8" (after lower-casing, so 'X' is already 'x')
	dimensionPattern = regexp.MustCompile(`\d(?:` + space + `*[x×]` + space + `*\d)+`)
	spacePattern     = regexp.MustCompile(space + `+`)
)

// LowerASCIIFolding normalizes a string by removing accents, lowercasing, and trimming spaces.
func LowerASCIIFolding(s string) string {
	s, _, _ = transform.String(
		transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			norm.NFC,
		),
		strings.TrimSpace(strings.ToLower(s)),
	)

	return s
}

// Normalize folds accents and case, rewrites dimensions to the "<n>x<n>" form
// and collapses whitespace. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = LowerASCIIFolding(s)
	s = dimensionPattern.ReplaceAllStringFunc(s, canonicalDimension)

	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}

// canonicalDimension turns a whole "4 x 4 × 8" chain into "4x4x8".
func canonicalDimension(m string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '×':
			return 'x'
		case unicode.IsSpace(r):
			return -1
		default:
			return r
		}
	}, m)
}

// Tokenize returns the normalized, non-empty, whitespace separated tokens of
// query in their original order.
func Tokenize(query string) []string {
	normalized := Normalize(query)
	if normalized == "" {
		return []string{}
	}

	return strings.Split(normalized, " ")
}

// FormatInt formats an integer with commas for human readability.
func FormatInt(n int64) string {
	in := strconv.FormatInt(n, 10)

	numOfDigits := len(in)
	if n < 0 {
		numOfDigits-- // First character is the - sign (not a digit)
	}

	numOfCommas := (numOfDigits - 1) / 3

	out := make([]byte, len(in)+numOfCommas)
	if n < 0 {
		in, out[0] = in[1:], '-'
	}

	for i, j, k := len(in)-1, len(out)-1, 0; ; i, j = i-1, j-1 {
		out[j] = in[i]
		if i == 0 {
			return string(out)
		}

		if k++; k == 3 {
			j, k = j-1, 0
			out[j] = ','
		}
	}
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// # Usage
//
// Slugs are the human-readable identifiers for series, categories and
// chapters (e.g. "dao-hai-tac", "chuong-mo-dau-1"). The pipeline is pure and
// total: every input, including the empty string, yields a slug.
package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
//  1. Normalizes to NFD (decomposes accented chars: ế → e + marks).
//  2. Removes combining marks and folds đ/Đ, which has no decomposition.
//  3. Converts to lowercase.
//  4. Collapses every run of characters outside [a-z0-9] into one hyphen.
//  5. Trims leading and trailing hyphens.
//
// The output is a fixed point: From(From(s)) == From(s).
func From(s string) string {
	// 1. Normalize and remove accents
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}

	// 2. Fold letters and collapse separators in a single pass
	var builder strings.Builder
	builder.Grow(len(result))

	pendingHyphen := false
	for _, r := range result {
		r = fold(unicode.ToLower(r))

		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			pendingHyphen = false
			builder.WriteRune(r)
			continue
		}

		pendingHyphen = true
	}

	return builder.String()
}

// WithIndex derives a chapter slug: the title slug suffixed with its ordinal
// so that chapters sharing a title stay distinct within a series.
func WithIndex(title string, index int) string {
	base := From(title)
	suffix := strconv.Itoa(index)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}

// fold maps letters that survive NFD untouched onto their ASCII base.
func fold(r rune) rune {
	switch r {
	case 'đ':
		return 'd'
	case 'ø':
		return 'o'
	case 'ł':
		return 'l'
	case 'ß':
		return 's'
	}
	return r
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

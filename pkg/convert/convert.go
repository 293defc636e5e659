// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package convert parses query values leniently: malformed input yields the
// caller's fallback. Use [strconv] where a bad value must be reported.
package convert

import (
	"strconv"
	"strings"
)

// IntOr parses raw as a base-10 int, or returns fallback.
func IntOr(raw string, fallback int) int {
	if value, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
		return value
	}
	return fallback
}

// BoundedInt parses raw and keeps the result in [1, max]. Missing, malformed
// or non-positive values yield fallback; values above max yield max.
func BoundedInt(raw string, fallback, max int) int {
	value := IntOr(raw, fallback)
	switch {
	case value < 1:
		return fallback
	case value > max:
		return max
	default:
		return value
	}
}

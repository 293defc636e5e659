// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer holds generic helpers for the optional fields used by
// patch inputs and nullable columns.
package pointer

import "strings"

// To returns a pointer to a copy of value.
func To[T any](value T) *T {
	return &value
}

// Deref returns *p, or fallback when p is nil.
func Deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// Trimmed returns a pointer to the trimmed text, or nil when p is nil or
// holds only whitespace. Nullable text columns store NULL instead of "".
func Trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*p)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

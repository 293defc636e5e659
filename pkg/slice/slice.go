// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slice adds the few generic helpers the standard [slices] package
// lacks. Every helper keeps input order.
package slice

// Map applies transform to every element.
func Map[T, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}
	out := make([]U, len(input))
	for i, item := range input {
		out[i] = transform(item)
	}
	return out
}

// Filter returns the elements for which keep reports true.
func Filter[T any](input []T, keep func(T) bool) []T {
	var out []T
	for _, item := range input {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Unique drops repeated elements and zero values, keeping the first occurrence.
func Unique[T comparable](input []T) []T {
	var zero T
	seen := make(map[T]struct{}, len(input))
	out := make([]T, 0, len(input))
	for _, item := range input {
		if item == zero {
			continue
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

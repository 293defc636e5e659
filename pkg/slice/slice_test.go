// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/truyenmoi/pkg/slice"
)

func TestMap(t *testing.T) {
	assert.Nil(t, slice.Map[string, int](nil, func(s string) int { return len(s) }))
	assert.Equal(t, []string{"A", "B"}, slice.Map([]string{"a", "b"}, strings.ToUpper))
}

func TestFilter(t *testing.T) {
	even := slice.Filter([]int{1, 2, 3, 4}, func(n int) bool { return n%2 == 0 })
	assert.Equal(t, []int{2, 4}, even)
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"b", "a"}, slice.Unique([]string{"b", "", "a", "b", "a"}))
	assert.Empty(t, slice.Unique[string](nil))
}

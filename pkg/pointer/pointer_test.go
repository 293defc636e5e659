// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/truyenmoi/pkg/pointer"
)

func TestDeref(t *testing.T) {
	assert.Equal(t, 7, pointer.Deref(pointer.To(7), 1))
	assert.Equal(t, 1, pointer.Deref[int](nil, 1))
}

func TestTrimmed(t *testing.T) {
	cases := []struct {
		name  string
		input *string
		want  *string
	}{
		{"nil", nil, nil},
		{"blank", pointer.To("   "), nil},
		{"trims", pointer.To("  Tô Hoài "), pointer.To("Tô Hoài")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, pointer.Trimmed(tc.input))
		})
	}
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/truyenmoi/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  pagination.Params
	}{
		{"defaults", "", pagination.Params{Page: 1, Limit: 20}},
		{"explicit", "?page=3&limit=10", pagination.Params{Page: 3, Limit: 10}},
		{"garbage", "?page=abc&limit=-4", pagination.Params{Page: 1, Limit: 20}},
		{"over_max_is_capped", "?limit=1000", pagination.Params{Page: 1, Limit: 100}},
		{"page_zero", "?page=0", pagination.Params{Page: 1, Limit: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/api/v1/admin/users"+tt.query, nil)
			assert.Equal(t, tt.want, pagination.FromRequest(request))
		})
	}
}

func TestMeta(t *testing.T) {
	params := pagination.Params{Page: 2, Limit: 10}

	assert.Equal(t, 10, params.Offset())
	meta := pagination.NewMeta(params, 21)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)

	empty := pagination.NewMeta(params, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination parses page/limit for the admin user list. Reader-facing
// listings are bounded by a limit alone.
package pagination

import (
	"net/http"

	"github.com/taibuivan/truyenmoi/pkg/convert"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a 1-indexed page request.
type Params struct {
	Page  int
	Limit int
}

// Offset is the SQL OFFSET for the page.
func (p Params) Offset() int {
	return max(p.Page-1, 0) * p.Limit
}

// Meta accompanies every paginated response.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
}

func NewMeta(params Params, total int) Meta {
	meta := Meta{Page: params.Page, Limit: params.Limit, Total: total}
	if params.Limit > 0 {
		meta.TotalPages = (total + params.Limit - 1) / params.Limit
	}
	meta.HasNext = params.Page < meta.TotalPages
	return meta
}

// FromRequest reads ?page= and ?limit=. Bad values fall back to the
// defaults and limit is capped at MaxLimit.
func FromRequest(request *http.Request) Params {
	query := request.URL.Query()
	return Params{
		Page:  max(convert.IntOr(query.Get("page"), DefaultPage), DefaultPage),
		Limit: convert.BoundedInt(query.Get("limit"), DefaultLimit, MaxLimit),
	}
}

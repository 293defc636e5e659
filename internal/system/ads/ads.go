// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ads manages the site-wide advertising configuration.

The configuration is a single row holding the ads.txt body, a script
injected into every page header and a list of insert directives placed
between chapter pages. Insert code is trusted admin HTML and is stored
and served verbatim.
*/
package ads

import (
	"context"
	"time"
)

// Insert places an HTML fragment before page Position of a chapter
// (0 is before the first page).
type Insert struct {
	Position int    `json:"position"`
	Code     string `json:"code"`
	Enabled  bool   `json:"enabled"`
}

// Config is the singleton ads configuration.
type Config struct {
	AdsTxt       string    `json:"ads_txt"`
	HeaderScript string    `json:"header_script"`
	AdInserts    []Insert  `json:"ad_inserts"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ConfigPatch updates only the fields that are set.
type ConfigPatch struct {
	AdsTxt       *string   `json:"ads_txt"`
	HeaderScript *string   `json:"header_script"`
	AdInserts    *[]Insert `json:"ad_inserts"`
}

const (
	FieldAdInserts = "ad_inserts"
)

// ConfigRepository persists the singleton.
type ConfigRepository interface {
	// Get returns the configuration, creating the empty row on first use.
	Get(context context.Context) (*Config, error)

	// Save overwrites the configuration and stamps UpdatedAt.
	Save(context context.Context, config *Config) error
}

// ConfigCache holds a short-lived copy of the configuration.
type ConfigCache interface {
	// Get returns nil without error on a miss.
	Get(context context.Context) (*Config, error)

	// Store caches config unless the cached copy has a later UpdatedAt.
	// A reader that loaded the row before an update can never overwrite
	// the updated copy.
	Store(context context.Context, config *Config) error

	Invalidate(context context.Context) error
}

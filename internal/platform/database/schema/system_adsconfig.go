// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// SystemAdsConfigTable represents the 'system.adsconfig' singleton table
type SystemAdsConfigTable struct {
	Table        string
	ID           string
	AdsTxt       string
	HeaderScript string
	AdInserts    string
	UpdatedAt    string
}

// SystemAdsConfig is the schema definition for system.adsconfig
var SystemAdsConfig = SystemAdsConfigTable{
	Table:        "system.adsconfig",
	ID:           "id",
	AdsTxt:       "adstxt",
	HeaderScript: "headerscript",
	AdInserts:    "adinserts",
	UpdatedAt:    "updatedat",
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package filestore stores cover and page images behind a public base URL.

Two backends implement [Store]: [Local] writes to a directory served by the
API itself under /uploads, and [S3] writes to an S3-compatible bucket.

Stored URLs are resolved back to storage keys with [KeyFromURL], which takes
the final path segment and drops any query string. Keys are therefore flat:
every object lives at the root of its backend.
*/
package filestore

import (
	"context"
	"errors"
	"net/url"
	"path"
	"strings"
)

// ErrInvalidKey is returned for keys that are empty or would escape the store root.
var ErrInvalidKey = errors.New("filestore: invalid key")

// Object describes a stored file.
type Object struct {
	Key string `json:"filename"`
	URL string `json:"url"`
}

// Store is the file storage contract consumed by uploads and series deletion.
type Store interface {
	// Save persists data under key and returns its public location.
	Save(context context.Context, key string, data []byte, contentType string) (Object, error)

	// Delete removes the object stored under key.
	Delete(context context.Context, key string) error
}

// KeyFromURL resolves a stored URL (absolute or relative) to its storage key:
// the basename of the path with any query string or fragment removed.
// It returns "" when nothing usable remains.
func KeyFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	// Drop query and fragment even when the URL does not parse
	if index := strings.IndexAny(raw, "?#"); index >= 0 {
		raw = raw[:index]
	}

	if parsed, err := url.Parse(raw); err == nil {
		// A bare origin names no object
		if parsed.Host != "" && parsed.Path == "" {
			return ""
		}
		if parsed.Path != "" {
			raw = parsed.Path
		}
	}

	key := path.Base(raw)
	if key == "." || key == "/" || key == ".." {
		return ""
	}
	return key
}

// validKey rejects keys that are not a single path element.
func validKey(key string) bool {
	return key != "" && key != "." && key != ".." && !strings.ContainsAny(key, `/\`)
}

// joinURL appends key to base with exactly one separator.
func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}

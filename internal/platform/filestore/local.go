// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
)

// Local stores files in a directory on disk.
type Local struct {
	dir     string
	baseURL string
}

// NewLocal creates the upload directory if needed. baseURL is the public
// prefix files are served from, e.g. "https://cdn.truyenmoi.vn/uploads".
func NewLocal(dir, baseURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: failed to create %s: %w", dir, err)
	}
	return &Local{dir: dir, baseURL: baseURL}, nil
}

// Save writes data to dir/key.
func (store *Local) Save(_ context.Context, key string, data []byte, _ string) (Object, error) {
	if !validKey(key) {
		return Object{}, ErrInvalidKey
	}

	if err := os.WriteFile(filepath.Join(store.dir, key), data, 0o644); err != nil {
		return Object{}, fmt.Errorf("filestore: failed to write %s: %w", key, err)
	}

	return Object{Key: key, URL: joinURL(store.baseURL, key)}, nil
}

// Delete removes dir/key. A missing file is reported as an error so the
// caller can log it.
func (store *Local) Delete(_ context.Context, key string) error {
	if !validKey(key) {
		return ErrInvalidKey
	}

	if err := os.Remove(filepath.Join(store.dir, key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("filestore: %s does not exist: %w", key, err)
		}
		return fmt.Errorf("filestore: failed to delete %s: %w", key, err)
	}
	return nil
}

// Handler serves stored files. Mount it under the upload route prefix.
func (store *Local) Handler(prefix string) http.Handler {
	return http.StripPrefix(prefix, http.FileServer(http.Dir(store.dir)))
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package media accepts image uploads for covers and chapter pages.

Uploads are sniffed from their content, never trusted by extension or
declared type, and stored under a fresh time-ordered name so that stored
URLs are never reused.
*/
package media

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gabriel-vasile/mimetype"

	"github.com/taibuivan/truyenmoi/internal/platform/apperr"
	"github.com/taibuivan/truyenmoi/internal/platform/constants"
	"github.com/taibuivan/truyenmoi/internal/platform/filestore"
	"github.com/taibuivan/truyenmoi/pkg/uuid"
)

// FieldFile is the multipart field carrying the upload.
const FieldFile = "file"

// allowedTypes maps accepted MIME types to the extension of the stored file.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Service stores uploaded images.
type Service struct {
	store  filestore.Store
	logger *slog.Logger
}

// NewService constructs a media [Service].
func NewService(store filestore.Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

/*
Upload validates and stores an image.

Parameters:
  - context: context.Context
  - data: []byte (entire file)

Returns:
  - filestore.Object: Stored name and public URL
  - error: ValidationError for empty, oversized or non-image content
*/
func (service *Service) Upload(context context.Context, data []byte) (filestore.Object, error) {
	if len(data) == 0 {
		return filestore.Object{}, apperr.ValidationError("File is empty",
			apperr.FieldError{Field: FieldFile, Message: "is required"})
	}
	if len(data) > constants.MaxUploadSize {
		return filestore.Object{}, apperr.ValidationError("File is too large",
			apperr.FieldError{Field: FieldFile, Message: fmt.Sprintf("must be at most %d bytes", constants.MaxUploadSize)})
	}

	detected := mimetype.Detect(data)
	extension, ok := allowedTypes[detected.String()]
	if !ok {
		return filestore.Object{}, apperr.ValidationError("Unsupported file type",
			apperr.FieldError{Field: FieldFile, Message: "must be a JPEG, PNG, GIF or WebP image"})
	}

	key := uuid.New() + extension
	object, err := service.store.Save(context, key, data, detected.String())
	if err != nil {
		return filestore.Object{}, apperr.StoreUnavailable("save upload", err)
	}

	service.logger.Info("media_uploaded",
		slog.String("key", object.Key),
		slog.String("content_type", detected.String()),
		slog.Int("size", len(data)),
	)

	return object, nil
}

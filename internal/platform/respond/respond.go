// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond writes the API's HTTP responses.
//
// JSON bodies use {"data": ...} on success and {"error", "code", "details"}
// on failure. Plain text is reserved for files crawlers fetch directly, such
// as ads.txt.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/taibuivan/truyenmoi/internal/platform/apperr"
	"github.com/taibuivan/truyenmoi/internal/platform/ctxutil"
	"github.com/taibuivan/truyenmoi/pkg/pagination"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"
)

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type PaginatedEnvelope struct {
	Data any             `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// ErrorEnvelope mirrors the JSON form of [apperr.AppError].
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON encodes payload with the given status.
func JSON(writer http.ResponseWriter, status int, payload any) {
	writer.Header().Set("Content-Type", contentTypeJSON)
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(payload)
}

func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

func Created(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{Data: data})
}

// Paginated writes one page of a list plus its meta block.
func Paginated(writer http.ResponseWriter, data any, meta pagination.Meta) {
	JSON(writer, http.StatusOK, PaginatedEnvelope{Data: data, Meta: meta})
}

func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Text writes body as text/plain with status 200.
func Text(writer http.ResponseWriter, body string) {
	writer.Header().Set("Content-Type", contentTypeText)
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write([]byte(body))
}

/*
Error writes err as the JSON error envelope.

Description: Errors that are not an [*apperr.AppError] become a generic 500
so storage details never reach the client. Only 5xx outcomes are logged;
the request logger already records every status.
*/
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	appErr := apperr.As(err)
	if appErr == nil {
		appErr = apperr.Internal(err)
	}

	if appErr.HTTPStatus >= http.StatusInternalServerError {
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appErr.Code),
			slog.Any("cause", appErr.Cause),
		)
	}
	if appErr.RetryAfter > 0 {
		writer.Header().Set("Retry-After", strconv.Itoa(appErr.RetryAfter))
	}

	JSON(writer, appErr.HTTPStatus, ErrorEnvelope{
		Error:   appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	})
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate collects field-level input errors and reports them as a
// single VALIDATION_ERROR.
//
// Services validate; handlers only decode. Lengths are counted in runes so
// Vietnamese titles are measured the way readers see them.
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/truyenmoi/internal/platform/apperr"
	"github.com/taibuivan/truyenmoi/pkg/uuid"
)

var (
	// slugPattern is the shape slug.From produces.
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// Validator accumulates failures from a chain of rules. It is not safe for
// concurrent use; create one per operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if value has more than max runes.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// MinLen fails if value has fewer than min runes.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, fmt.Sprintf("Minimum %d characters", min))
	}
	return v
}

// NonNegative fails if value is below zero.
func (v *Validator) NonNegative(field string, value int) *Validator {
	if value < 0 {
		v.add(field, "Must be zero or greater")
	}
	return v
}

// NoBlank fails once if any element of values is blank.
func (v *Validator) NoBlank(field string, values []string) *Validator {
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			v.add(field, "Must not contain empty entries")
			break
		}
	}
	return v
}

// Email fails if value is not a bare address. Display-name forms such as
// "Tai <tai@example.com>" are rejected.
func (v *Validator) Email(field, value string) *Validator {
	address, err := mail.ParseAddress(value)
	if err != nil || address.Address != value {
		v.add(field, "Must be a valid email address")
	}
	return v
}

// Slug fails if value is not lowercase alphanumerics joined by single hyphens.
func (v *Validator) Slug(field, value string) *Validator {
	if !slugPattern.MatchString(value) {
		v.add(field, "Must contain at least one letter or digit")
	}
	return v
}

// UUID fails if value is not a canonical UUID.
func (v *Validator) UUID(field, value string) *Validator {
	if !uuid.IsValid(value) {
		v.add(field, "Must be a valid UUID")
	}
	return v
}

// OneOf fails if value is not one of allowed.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, candidate := range allowed {
		if value == candidate {
			return v
		}
	}
	v.add(field, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom adds message for field when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns the collected failures as one VALIDATION_ERROR, or nil.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// RequiredError builds a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Message: message,
	})
}

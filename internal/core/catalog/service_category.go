// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/taibuivan/truyenmoi/internal/platform/validate"
	"github.com/taibuivan/truyenmoi/pkg/pointer"
	"github.com/taibuivan/truyenmoi/pkg/slug"
	"github.com/taibuivan/truyenmoi/pkg/uuid"
)

// CategoryPatch carries a partial category update.
type CategoryPatch struct {
	Name        *string
	Description *string
}

// ListCategories returns every category by name.
func (service *Service) ListCategories(context context.Context) ([]*Category, error) {
	return service.categoryRepo.List(context)
}

/*
FindCategoryBySlugOrName resolves user input to a category.

Description: The input is normalised through the slug generator, then
matched case-insensitively against stored slugs and names, so both
"Hành Động" and "hanh-dong" find the same category. Absence is not an
error.

Returns:
  - *Category: nil for empty input or when nothing matches
  - error: Store failures only
*/
func (service *Service) FindCategoryBySlugOrName(context context.Context, input string) (*Category, error) {
	value := slug.From(input)
	if value == "" {
		return nil, nil
	}

	category, err := service.categoryRepo.FindBySlugOrName(context, value)
	if errors.Is(err, ErrCategoryNotFound) {
		return nil, nil
	}
	return category, err
}

// GetCategory returns a category by id.
func (service *Service) GetCategory(context context.Context, id string) (*Category, error) {
	if !isID(id) {
		return nil, ErrCategoryNotFound
	}
	return service.categoryRepo.FindByID(context, id)
}

// CreateCategory stores a category whose slug is derived from its name.
func (service *Service) CreateCategory(context context.Context, category *Category) error {
	category.Name = strings.TrimSpace(category.Name)
	category.Slug = slug.From(category.Name)
	category.Description = pointer.Trimmed(category.Description)

	if err := validateCategory(category); err != nil {
		return err
	}

	category.ID = uuid.New()
	if err := service.categoryRepo.Create(context, category); err != nil {
		return err
	}

	service.logger.Info("category_created",
		slog.String("category_id", category.ID),
		slog.String("slug", category.Slug),
	)
	return nil
}

// UpdateCategory applies a partial update. Renaming re-derives the slug.
func (service *Service) UpdateCategory(context context.Context, id string, patch CategoryPatch) (*Category, error) {
	category, err := service.GetCategory(context, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		category.Name = strings.TrimSpace(*patch.Name)
		category.Slug = slug.From(category.Name)
	}
	if patch.Description != nil {
		category.Description = pointer.Trimmed(patch.Description)
	}

	if err := validateCategory(category); err != nil {
		return nil, err
	}

	if err := service.categoryRepo.Update(context, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory unlinks and removes a category. Series are untouched.
func (service *Service) DeleteCategory(context context.Context, id string) error {
	if !isID(id) {
		return ErrCategoryNotFound
	}

	if err := service.categoryRepo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("category_deleted", slog.String("category_id", id))
	return nil
}

func validateCategory(category *Category) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, category.Name).MaxLen(FieldName, category.Name, 100)
	if strings.TrimSpace(category.Name) != "" {
		validator.Slug(FieldSlug, category.Slug)
	}
	return validator.Err()
}

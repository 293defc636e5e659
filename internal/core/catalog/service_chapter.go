// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/truyenmoi/internal/platform/validate"
	"github.com/taibuivan/truyenmoi/pkg/pointer"
	"github.com/taibuivan/truyenmoi/pkg/uuid"
)

// backfillBatchSize bounds one pass of the startup slug sweep.
const backfillBatchSize = 500

// ChapterPatch carries a partial chapter update. nil fields are left as is.
type ChapterPatch struct {
	Title   *string
	Index   *int
	Summary *string
	Pages   *[]string
}

// # Resolution Engine

/*
ResolveChapter resolves a chapter for reading and records one view.

Description: The series is matched by slug. Within it the identifier is
tried as a chapter slug first, then, when it is UUID shaped, as a chapter
id so links minted before slugs existed keep working. Prev and Next are
the chapters at exactly Index-1 and Index+1; a gap in the numbering
yields nil rather than the nearest chapter. Each success adds one view to
the chapter and one to its series.

Parameters:
  - context: context.Context
  - seriesSlug: string
  - identifier: string (chapter slug or legacy id)

Returns:
  - *ChapterView: The chapter with its series and siblings
  - error: ErrSeriesNotFound or ErrChapterNotFound
*/
func (service *Service) ResolveChapter(context context.Context, seriesSlug, identifier string) (*ChapterView, error) {
	series, err := service.ResolveSeriesBySlug(context, seriesSlug, FindOptions{})
	if err != nil {
		return nil, err
	}

	chapter, err := service.matchChapter(context, series.ID, strings.TrimSpace(identifier))
	if err != nil {
		return nil, err
	}

	view := &ChapterView{Series: series, Chapter: chapter}

	// Siblings
	group, groupContext := errgroup.WithContext(context)
	group.Go(func() error {
		prev, err := service.siblingAt(groupContext, series.ID, chapter.Index-1)
		view.Prev = prev
		return err
	})
	group.Go(func() error {
		next, err := service.siblingAt(groupContext, series.ID, chapter.Index+1)
		view.Next = next
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	// View counters
	if err := service.chapterRepo.IncrementViewCount(context, chapter.ID, 1); err != nil {
		return nil, err
	}
	if err := service.seriesRepo.IncrementViewCount(context, series.ID, 1); err != nil {
		return nil, err
	}
	chapter.ViewCount++
	series.ViewCount++

	return view, nil
}

// matchChapter applies slug-then-id matching within one series.
func (service *Service) matchChapter(context context.Context, seriesID, identifier string) (*Chapter, error) {
	if identifier == "" {
		return nil, ErrChapterNotFound
	}

	chapter, err := service.chapterRepo.FindBySlug(context, seriesID, identifier)
	if err == nil {
		return chapter, nil
	}
	if !errors.Is(err, ErrChapterNotFound) || !isID(identifier) {
		return nil, err
	}

	return service.chapterRepo.FindByID(context, seriesID, identifier)
}

// siblingAt returns the chapter at index, or nil when there is none.
func (service *Service) siblingAt(context context.Context, seriesID string, index int) (*Chapter, error) {
	if index < 0 {
		return nil, nil
	}

	chapter, err := service.chapterRepo.FindByIndex(context, seriesID, index)
	if errors.Is(err, ErrChapterNotFound) {
		return nil, nil
	}
	return chapter, err
}

/*
ListChapters returns the chapters of a series ordered by index.

Description: Chapters without a slug are given their derived slug with a
conditional write that only fills empty values, then the list is read
again so the result reflects what is stored. Repeating the call changes
nothing.

Parameters:
  - context: context.Context
  - seriesID: string

Returns:
  - []*Chapter: Every chapter of the series, slugs populated
  - error: Store failures
*/
func (service *Service) ListChapters(context context.Context, seriesID string) ([]*Chapter, error) {
	chapters, err := service.chapterRepo.ListBySeries(context, seriesID)
	if err != nil {
		return nil, err
	}

	missing, written := 0, 0
	for _, chapter := range chapters {
		if chapter.Slug != nil {
			continue
		}
		missing++

		ok, err := service.chapterRepo.SetSlugIfMissing(context, chapter.ID, chapter.DerivedSlug())
		if err != nil {
			return nil, err
		}
		if ok {
			written++
		}
	}

	if missing == 0 {
		return chapters, nil
	}

	if written > 0 {
		service.logger.Info("chapter_slugs_backfilled",
			slog.String("series_id", seriesID),
			slog.Int("count", written),
		)
	}

	return service.chapterRepo.ListBySeries(context, seriesID)
}

// ListChaptersBySeriesSlug is [Service.ListChapters] keyed by series slug.
func (service *Service) ListChaptersBySeriesSlug(context context.Context, seriesSlug string) ([]*Chapter, error) {
	series, err := service.ResolveSeriesBySlug(context, seriesSlug, FindOptions{})
	if err != nil {
		return nil, err
	}
	return service.ListChapters(context, series.ID)
}

/*
BackfillChapterSlugs fills every missing chapter slug across the catalogue.

Description: Runs in batches until no chapter lacks a slug. Safe to run
alongside traffic since each write only fills an empty slug.

Returns:
  - int: Number of slugs written by this call
  - error: Store failures or context cancellation
*/
func (service *Service) BackfillChapterSlugs(context context.Context) (int, error) {
	total := 0

	for {
		if err := context.Err(); err != nil {
			return total, err
		}

		chapters, err := service.chapterRepo.ListMissingSlug(context, backfillBatchSize)
		if err != nil {
			return total, err
		}
		if len(chapters) == 0 {
			break
		}

		written := 0
		for _, chapter := range chapters {
			ok, err := service.chapterRepo.SetSlugIfMissing(context, chapter.ID, chapter.DerivedSlug())
			if err != nil {
				return total, err
			}
			if ok {
				written++
			}
		}
		total += written

		if written == 0 {
			break
		}
	}

	service.logger.Info("chapter_slug_sweep_finished", slog.Int("count", total))
	return total, nil
}

/*
IncrementRead records one completed read of a chapter and of its series.
Views are not touched.

Returns:
  - error: ErrChapterNotFound for an unknown chapter
*/
func (service *Service) IncrementRead(context context.Context, chapterID string) error {
	if !isID(chapterID) {
		return ErrChapterNotFound
	}

	seriesID, err := service.chapterRepo.IncrementReadCount(context, chapterID, 1)
	if err != nil {
		return err
	}

	return service.seriesRepo.IncrementReadCount(context, seriesID, 1)
}

// # Chapter Management

// GetChapter returns a chapter by id regardless of series.
func (service *Service) GetChapter(context context.Context, id string) (*Chapter, error) {
	if !isID(id) {
		return nil, ErrChapterNotFound
	}
	return service.chapterRepo.Get(context, id)
}

/*
CreateChapter adds a chapter to a series.

Description: The slug is derived from title and index. A second chapter
with the same index in the series is rejected as a Conflict by the store.

Returns:
  - error: ErrSeriesNotFound, ValidationError or Conflict
*/
func (service *Service) CreateChapter(context context.Context, seriesID string, chapter *Chapter) error {
	series, err := service.GetSeries(context, seriesID, FindOptions{})
	if err != nil {
		return err
	}

	chapter.SeriesID = series.ID
	chapter.Title = strings.TrimSpace(chapter.Title)
	chapter.Summary = pointer.Trimmed(chapter.Summary)
	if chapter.Pages == nil {
		chapter.Pages = []string{}
	}

	if err := validateChapter(chapter); err != nil {
		return err
	}

	derived := chapter.DerivedSlug()
	chapter.Slug = &derived
	chapter.ID = uuid.New()

	if err := service.chapterRepo.Create(context, chapter); err != nil {
		return err
	}

	service.logger.Info("chapter_created",
		slog.String("chapter_id", chapter.ID),
		slog.String("series_id", chapter.SeriesID),
		slog.Int("index", chapter.Index),
	)
	return nil
}

// UpdateChapter applies a partial update. A new title or index re-derives the slug.
func (service *Service) UpdateChapter(context context.Context, id string, patch ChapterPatch) (*Chapter, error) {
	chapter, err := service.GetChapter(context, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		chapter.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Index != nil {
		chapter.Index = *patch.Index
	}
	if patch.Summary != nil {
		chapter.Summary = pointer.Trimmed(patch.Summary)
	}
	if patch.Pages != nil {
		chapter.Pages = *patch.Pages
		if chapter.Pages == nil {
			chapter.Pages = []string{}
		}
	}

	if err := validateChapter(chapter); err != nil {
		return nil, err
	}

	if patch.Title != nil || patch.Index != nil || chapter.Slug == nil {
		derived := chapter.DerivedSlug()
		chapter.Slug = &derived
	}

	if err := service.chapterRepo.Update(context, chapter); err != nil {
		return nil, err
	}

	service.logger.Info("chapter_updated", slog.String("chapter_id", chapter.ID))
	return chapter, nil
}

// DeleteChapter removes a chapter and its comments. Page files are kept.
func (service *Service) DeleteChapter(context context.Context, id string) error {
	if !isID(id) {
		return ErrChapterNotFound
	}

	if err := service.chapterRepo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("chapter_deleted", slog.String("chapter_id", id))
	return nil
}

func validateChapter(chapter *Chapter) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, chapter.Title).MaxLen(FieldTitle, chapter.Title, 500)
	validator.NonNegative(FieldIndex, chapter.Index)
	validator.NoBlank(FieldPages, chapter.Pages)
	return validator.Err()
}

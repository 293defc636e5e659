// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/truyenmoi/internal/platform/constants"
	"github.com/taibuivan/truyenmoi/internal/platform/filestore"
	"github.com/taibuivan/truyenmoi/internal/platform/validate"
	"github.com/taibuivan/truyenmoi/pkg/pointer"
	"github.com/taibuivan/truyenmoi/pkg/slice"
	"github.com/taibuivan/truyenmoi/pkg/slug"
	"github.com/taibuivan/truyenmoi/pkg/uuid"
)

// SeriesPatch carries a partial series update. nil fields are left as is.
type SeriesPatch struct {
	Title       *string
	Description *string
	Author      *string
	CoverImage  *string
	Status      *Status
	Tags        *[]string
	CategoryIDs *[]string
}

// # Listings

// ListRecent returns the newest series first.
func (service *Service) ListRecent(context context.Context, limit int) ([]*Series, error) {
	return service.seriesRepo.List(context, ListOptions{
		Order: OrderRecent,
		Limit: clampLimit(limit, constants.DefaultSeriesLimit),
	})
}

// ListTrending orders by views, then reads.
func (service *Service) ListTrending(context context.Context, limit int) ([]*Series, error) {
	return service.seriesRepo.List(context, ListOptions{
		Order: OrderTrending,
		Limit: clampLimit(limit, constants.TrendingLimit),
	})
}

// ListFeatured orders by reads, then views.
func (service *Service) ListFeatured(context context.Context, limit int) ([]*Series, error) {
	return service.seriesRepo.List(context, ListOptions{
		Order: OrderPopular,
		Limit: clampLimit(limit, 1),
	})
}

/*
ListRanking returns a ranking board for a period.

Description: The period is validated and echoed back but does not change
the ordering; every board is all-time popularity.

Parameters:
  - context: context.Context
  - period: RankingPeriod (day, week or month)
  - limit: int

Returns:
  - *Ranking: The board
  - error: ValidationError for an unknown period
*/
func (service *Service) ListRanking(context context.Context, period RankingPeriod, limit int) (*Ranking, error) {
	validator := &validate.Validator{}
	validator.OneOf(FieldPeriod, string(period), string(PeriodDay), string(PeriodWeek), string(PeriodMonth))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	series, err := service.seriesRepo.List(context, ListOptions{
		Order: OrderPopular,
		Limit: clampLimit(limit, constants.RankingLimit),
	})
	if err != nil {
		return nil, err
	}

	return &Ranking{Period: period, Series: series}, nil
}

/*
Home assembles the landing page.

Description: The recent list, the trending list and the single featured
series are fetched concurrently. Any failure fails the whole page.

Parameters:
  - context: context.Context
  - limit: int (size of the recent list)

Returns:
  - *Home: Featured is nil when the catalogue is empty
  - error: The first store failure
*/
func (service *Service) Home(context context.Context, limit int) (*Home, error) {
	home := &Home{}
	group, groupContext := errgroup.WithContext(context)

	group.Go(func() error {
		series, err := service.ListRecent(groupContext, limit)
		home.Series = series
		return err
	})

	group.Go(func() error {
		trending, err := service.ListTrending(groupContext, constants.TrendingLimit)
		home.Trending = trending
		return err
	})

	group.Go(func() error {
		featured, err := service.ListFeatured(groupContext, 1)
		if len(featured) > 0 {
			home.Featured = featured[0]
		}
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return home, nil
}

/*
ListByCategory resolves a category by slug or name and lists its series.

Returns:
  - *CategoryListing: Category is nil and Series empty when nothing matched
  - error: Store failures only
*/
func (service *Service) ListByCategory(context context.Context, value string, limit int) (*CategoryListing, error) {
	category, err := service.FindCategoryBySlugOrName(context, value)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return &CategoryListing{Series: []*Series{}}, nil
	}

	series, err := service.seriesRepo.List(context, ListOptions{
		Order:      OrderRecent,
		CategoryID: category.ID,
		Limit:      clampLimit(limit, constants.CategorySeriesLimit),
	})
	if err != nil {
		return nil, err
	}

	return &CategoryListing{Category: category, Series: series}, nil
}

// # Lookups

/*
ResolveSeriesBySlug finds a series by exact slug.

Parameters:
  - context: context.Context
  - seriesSlug: string
  - options: FindOptions (IncludeChapters loads the ordered chapter list,
    backfilling missing chapter slugs)

Returns:
  - *Series: The series
  - error: ErrSeriesNotFound
*/
func (service *Service) ResolveSeriesBySlug(context context.Context, seriesSlug string, options FindOptions) (*Series, error) {
	seriesSlug = strings.TrimSpace(seriesSlug)
	if seriesSlug == "" {
		return nil, ErrSeriesNotFound
	}

	series, err := service.seriesRepo.FindBySlug(context, seriesSlug)
	if err != nil {
		return nil, err
	}

	if options.IncludeChapters {
		chapters, err := service.ListChapters(context, series.ID)
		if err != nil {
			return nil, err
		}
		series.Chapters = chapters
	}

	return series, nil
}

// GetSeries returns a series by id, with its chapters when requested.
func (service *Service) GetSeries(context context.Context, id string, options FindOptions) (*Series, error) {
	if !isID(id) {
		return nil, ErrSeriesNotFound
	}

	series, err := service.seriesRepo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if options.IncludeChapters {
		if series.Chapters, err = service.ListChapters(context, series.ID); err != nil {
			return nil, err
		}
	}
	return series, nil
}

// # Series Management

/*
CreateSeries validates and persists a new series.

Description: The slug is always derived from the title. Status defaults to
ongoing and missing tags become an empty list.

Parameters:
  - context: context.Context
  - series: *Series (Title required; CategoryIDs optional)

Returns:
  - *Series: The stored series with categories hydrated
  - error: ValidationError, or Conflict on a duplicate slug
*/
func (service *Service) CreateSeries(context context.Context, series *Series) (*Series, error) {
	series.Title = strings.TrimSpace(series.Title)
	if series.Status == "" {
		series.Status = StatusOngoing
	}
	series.Description = pointer.Trimmed(series.Description)
	series.Author = pointer.Trimmed(series.Author)
	series.CoverImage = pointer.Trimmed(series.CoverImage)
	series.Tags = normalizeTags(series.Tags)
	series.CategoryIDs = slice.Unique(series.CategoryIDs)
	series.Slug = slug.From(series.Title)

	if err := validateSeries(series); err != nil {
		return nil, err
	}

	series.ID = uuid.New()
	if err := service.seriesRepo.Create(context, series); err != nil {
		return nil, err
	}

	service.logger.Info("series_created",
		slog.String("series_id", series.ID),
		slog.String("slug", series.Slug),
	)

	return service.seriesRepo.FindByID(context, series.ID)
}

/*
UpdateSeries applies a partial update.

Description: A new title re-derives the slug. Category links are replaced
only when CategoryIDs is present in the patch.

Returns:
  - *Series: The updated series
  - error: ErrSeriesNotFound, ValidationError or Conflict
*/
func (service *Service) UpdateSeries(context context.Context, id string, patch SeriesPatch) (*Series, error) {
	series, err := service.GetSeries(context, id, FindOptions{})
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		series.Title = strings.TrimSpace(*patch.Title)
		series.Slug = slug.From(series.Title)
	}
	if patch.Description != nil {
		series.Description = pointer.Trimmed(patch.Description)
	}
	if patch.Author != nil {
		series.Author = pointer.Trimmed(patch.Author)
	}
	if patch.CoverImage != nil {
		series.CoverImage = pointer.Trimmed(patch.CoverImage)
	}
	if patch.Status != nil {
		series.Status = *patch.Status
	}
	if patch.Tags != nil {
		series.Tags = normalizeTags(*patch.Tags)
	}

	series.CategoryIDs = nil
	if patch.CategoryIDs != nil {
		series.CategoryIDs = slice.Unique(*patch.CategoryIDs)
	}

	if err := validateSeries(series); err != nil {
		return nil, err
	}

	if err := service.seriesRepo.Update(context, series); err != nil {
		return nil, err
	}

	service.logger.Info("series_updated", slog.String("series_id", series.ID))

	return service.seriesRepo.FindByID(context, series.ID)
}

/*
DeleteSeries removes a series, its chapters, their comments and its
category links.

Description: Cover and page files are deleted first on a best-effort
basis. A file that cannot be removed is logged and skipped; it never
blocks the database delete.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: ErrSeriesNotFound, or store failures from the database delete
*/
func (service *Service) DeleteSeries(context context.Context, id string) error {
	series, err := service.GetSeries(context, id, FindOptions{})
	if err != nil {
		return err
	}

	chapters, err := service.chapterRepo.ListBySeries(context, series.ID)
	if err != nil {
		return err
	}

	removed, failed := service.removeSeriesFiles(context, series, chapters)

	if err := service.seriesRepo.Delete(context, series.ID); err != nil {
		return err
	}

	service.logger.Info("series_deleted",
		slog.String("series_id", series.ID),
		slog.Int("chapters", len(chapters)),
		slog.Int("files_removed", removed),
		slog.Int("files_failed", failed),
	)
	return nil
}

// removeSeriesFiles deletes the cover and every page image, once per key.
func (service *Service) removeSeriesFiles(context context.Context, series *Series, chapters []*Chapter) (removed, failed int) {
	if service.files == nil {
		return 0, 0
	}

	var urls []string
	if series.CoverImage != nil {
		urls = append(urls, *series.CoverImage)
	}
	for _, chapter := range chapters {
		urls = append(urls, chapter.Pages...)
	}

	for _, key := range slice.Unique(slice.Map(urls, filestore.KeyFromURL)) {
		if err := service.files.Delete(context, key); err != nil {
			failed++
			service.logger.Warn("series_file_delete_failed",
				slog.String("series_id", series.ID),
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			continue
		}
		removed++
	}

	return removed, failed
}

// normalizeTags trims every tag and drops blanks and repeats.
func normalizeTags(tags []string) []string {
	return slice.Unique(slice.Map(tags, strings.TrimSpace))
}

func validateSeries(series *Series) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, series.Title).MaxLen(FieldTitle, series.Title, 500)
	if strings.TrimSpace(series.Title) != "" {
		validator.Slug(FieldSlug, series.Slug)
	}
	validator.Required(FieldStatus, string(series.Status)).MaxLen(FieldStatus, string(series.Status), 32)

	for _, id := range series.CategoryIDs {
		validator.UUID(FieldCategoryIDs, id)
	}

	return validator.Err()
}

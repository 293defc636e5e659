// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/taibuivan/truyenmoi/internal/core/catalog"
	"github.com/taibuivan/truyenmoi/internal/platform/apperr"
	"github.com/taibuivan/truyenmoi/pkg/uuid"
)

// memDB is an in-memory catalogue shared by the three fake repositories.
type memDB struct {
	mu         sync.Mutex
	series     map[string]*catalog.Series
	chapters   map[string]*catalog.Chapter
	categories map[string]*catalog.Category
	links      map[string][]string
	comments   map[string]string // comment id -> chapter id
	slugWrites int
	clock      time.Time
}

func newMemDB() *memDB {
	return &memDB{
		series:     map[string]*catalog.Series{},
		chapters:   map[string]*catalog.Chapter{},
		categories: map[string]*catalog.Category{},
		links:      map[string][]string{},
		comments:   map[string]string{},
		clock:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (db *memDB) tick() time.Time {
	db.clock = db.clock.Add(time.Minute)
	return db.clock
}

func copySeries(in *catalog.Series) *catalog.Series {
	out := *in
	out.Tags = append([]string{}, in.Tags...)
	out.CategoryIDs = nil
	out.Chapters = nil
	return &out
}

func copyChapter(in *catalog.Chapter) *catalog.Chapter {
	out := *in
	if in.Slug != nil {
		value := *in.Slug
		out.Slug = &value
	}
	out.Pages = append([]string{}, in.Pages...)
	return &out
}

func (db *memDB) hydrate(series *catalog.Series) *catalog.Series {
	out := copySeries(series)
	out.Categories = []*catalog.Category{}
	for _, id := range db.links[series.ID] {
		if category, ok := db.categories[id]; ok {
			value := *category
			out.Categories = append(out.Categories, &value)
		}
	}
	return out
}

// # Fixtures

func (db *memDB) addSeries(title, slug string, views, reads int64) *catalog.Series {
	db.mu.Lock()
	defer db.mu.Unlock()

	series := &catalog.Series{
		ID: uuid.New(), Title: title, Slug: slug, Status: catalog.StatusOngoing,
		Tags: []string{}, ViewCount: views, ReadCount: reads, CreatedAt: db.tick(),
	}
	db.series[series.ID] = series
	return copySeries(series)
}

func (db *memDB) addChapter(seriesID, title string, index int, slug *string, pages ...string) *catalog.Chapter {
	db.mu.Lock()
	defer db.mu.Unlock()

	chapter := &catalog.Chapter{
		ID: uuid.New(), SeriesID: seriesID, Title: title, Index: index, Slug: slug,
		Pages: append([]string{}, pages...), CreatedAt: db.tick(),
	}
	db.chapters[chapter.ID] = chapter
	return copyChapter(chapter)
}

// addComment stores a comment row on chapterID. Deletes must remove it
// first, as the social.comment foreign key has no cascade.
func (db *memDB) addComment(chapterID string) string {
	db.mu.Lock()
	defer db.mu.Unlock()

	id := uuid.New()
	db.comments[id] = chapterID
	return id
}

func (db *memDB) commentExists(id string) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	_, ok := db.comments[id]
	return ok
}

// deleteCommentsOf removes every comment on chapterID. Callers hold db.mu.
func (db *memDB) deleteCommentsOf(chapterID string) {
	for id, owner := range db.comments {
		if owner == chapterID {
			delete(db.comments, id)
		}
	}
}

func (db *memDB) addCategory(name, slug string) *catalog.Category {
	db.mu.Lock()
	defer db.mu.Unlock()

	category := &catalog.Category{ID: uuid.New(), Name: name, Slug: slug, CreatedAt: db.tick()}
	db.categories[category.ID] = category
	value := *category
	return &value
}

func (db *memDB) link(seriesID, categoryID string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.links[seriesID] = append(db.links[seriesID], categoryID)
}

func (db *memDB) chapter(id string) *catalog.Chapter {
	db.mu.Lock()
	defer db.mu.Unlock()
	if chapter, ok := db.chapters[id]; ok {
		return copyChapter(chapter)
	}
	return nil
}

func (db *memDB) seriesByID(id string) *catalog.Series {
	db.mu.Lock()
	defer db.mu.Unlock()
	if series, ok := db.series[id]; ok {
		return copySeries(series)
	}
	return nil
}

// # Series Repository

type fakeSeries struct{ db *memDB }

func (repository fakeSeries) List(_ context.Context, options catalog.ListOptions) ([]*catalog.Series, error) {
	db := repository.db
	db.mu.Lock()
	defer db.mu.Unlock()

	result := []*catalog.Series{}
	for _, series := range db.series {
		if options.CategoryID != "" && !contains(db.links[series.ID], options.CategoryID) {
			continue
		}
		result = append(result, db.hydrate(series))
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		switch options.Order {
		case catalog.OrderTrending:
			if a.ViewCount != b.ViewCount {
				return a.ViewCount > b.ViewCount
			}
			return a.ReadCount > b.ReadCount
		case catalog.OrderPopular:
			if a.ReadCount != b.ReadCount {
				return a.ReadCount > b.ReadCount
			}
			return a.ViewCount > b.ViewCount
		default:
			return a.CreatedAt.After(b.CreatedAt)
		}
	})

	if len(result) > options.Limit {
		result = result[:options.Limit]
	}
	return result, nil
}

func (repository fakeSeries) FindByID(_ context.Context, id string) (*catalog.Series, error) {
	db := repository.db
	db.mu.Lock()
	defer db.mu.Unlock()

	if series, ok := db.series[id]; ok {
		return db.hydrate(series), nil
	}
	return nil, catalog.ErrSeriesNotFound
}

func (repository fakeSeries) FindBySlug(_ context.Context, slug string) (*catalog.Series, error) {
	db := repository.db
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, series := range db.series {
		if series.Slug == slug {
			return db.hydrate(series), nil
		}
	}
	return nil, catalog.ErrSeriesNotFound
}

func (repository fakeSeries) Create(_ context.Context, series *catalog.Series) error {
	db := repository.db
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, existing := range db.series {
		if existing.Slug == series.Slug {
			return apperr.Conflict("Duplicate value violates series_slug_key")
		}
	}

	series.CreatedAt = db.tick()
	series.UpdatedAt = series.CreatedAt
	db.series[series.ID] = copySeries(series)
	db.links[series.ID] = append([]string{}, series.CategoryIDs...)
	return nil
}

func (repository fakeSeries) Update(_ context.Context, series *catalog.Series) error {
	db := repository.db
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.series[series.ID]; !ok {
		return catalog.ErrSeriesNotFound
	}

	series.UpdatedAt = db.tick()
	db.series[series.ID] = copySeries(series)
	if series.CategoryIDs != nil {
		db.links[series.ID] = append([]string{}, series.CategoryIDs...)
	}
	return nil
}

func (repository fakeSeries) Delete(_ context.Context, id string) error {
	db := repository.db
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.series[id]; !ok {
		return catalog.ErrSeriesNotFound
	}
	for chapterID, chapter := range db.chapters {
		if chapter.SeriesID == id {
			db.deleteCommentsOf(chapterID)
			delete(db.chapters, chapterID)
		}
	}
	delete(db.links, id)
	delete(db.series, id)
	return nil
}

func (repository fakeSeries) IncrementViewCount(_ context.Context, id string, delta int64) error {
	return repository.db.bumpSeries(id, delta, func(series *catalog.Series) *int64 { return &series.ViewCount })
}

func (repository fakeSeries) IncrementReadCount(_ context.Context, id string, delta int64) error {
	return repository.db.bumpSeries(id, delta, func(series *catalog.Series) *int64 { return &series.ReadCount })
}

func (db *memDB) bumpSeries(id string, delta int64, field func(*catalog.Series) *int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	series, ok := db.series[id]
	if !ok {
		return catalog.ErrSeriesNotFound
	}
	*field(series) += delta
	return nil
}

// # Chapter Repository

type fakeChapters struct{ db *memDB }

func (repository fakeChapters) filter(keep func(*catalog.Chapter) bool) []*catalog.Chapter {
	db := repository.db
	db.mu.Lock()
	defer db.mu.Unlock()

	result := []*catalog.Chapter{}
	for _, chapter := range db.chapters {
		if keep(chapter) {
			result = append(result, copyChapter(chapter))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SeriesID != result[j].SeriesID {
			return result[i].SeriesID < result[j].SeriesID
		}
		return result[i].Index < result[j].Index
	})
	return result
}

func (repository fakeChapters) first(keep func(*catalog.Chapter) bool) (*catalog.Chapter, error) {
	if found := repository.filter(keep); len(found) > 0 {
		return found[0], nil
	}
	return nil, catalog.ErrChapterNotFound
}

func (repository fakeChapters) ListBySeries(_ context.Context, seriesID string) ([]*catalog.Chapter, error) {
	return repository.filter(func(chapter *catalog.Chapter) bool { return chapter.SeriesID == seriesID }), nil
}

func (repository fakeChapters) ListMissingSlug(_ context.Context, limit int) ([]*catalog.Chapter, error) {
	result := repository.filter(func(chapter *catalog.Chapter) bool { return chapter.Slug == nil })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (repository fakeChapters) FindBySlug(_ context.Context, seriesID, slug string) (*catalog.Chapter, error) {
	return repository.first(func(chapter *catalog.Chapter) bool {
		return chapter.SeriesID == seriesID && chapter.Slug != nil && *chapter.Slug == slug
	})
}

func (repository fakeChapters) FindByID(_ context.Context, seriesID, id string) (*catalog.Chapter, error) {
	return repository.first(func(chapter *catalog.Chapter) bool {
		return chapter.SeriesID == seriesID && chapter.ID == id
	})
}

func (repository fakeChapters) Get(_ context.Context, id string) (*catalog.Chapter, error) {
	return repository.first(func(chapter *catalog.Chapter) bool { return chapter.ID == id })
}

func (repository fakeChapters) FindByIndex(_ context.Context, seriesID string, index int) (*catalog.Chapter, error) {
	return repository.first(func(chapter *catalog.Chapter) bool {
		return chapter.SeriesID == seriesID && chapter.Index == index
	})
}

func (repository fakeChapters) SetSlugIfMissing(_ context.Context, id, slug string) (bool, error) {
	db := repository.db
	db.mu.Lock()
	defer db.mu.Unlock()

	chapter, ok := db.chapters[id]
	if !ok || chapter.Slug != nil {
		return false, nil
	}
	chapter.Slug = &slug
	db.slugWrites++
	return true, nil
}

func (repository fakeChapters) indexTaken(chapter *catalog.Chapter) bool {
	for _, existing := range repository.db.chapters {
		if existing.ID != chapter.ID && existing.SeriesID == chapter.SeriesID && existing.Index == chapter.Index {
			return true
		}
	}
	return false
}

func (repository fakeChapters) Create(_ context.Context, chapter *catalog.Chapter) error {
	db := repository.db
	db.mu.Lock()
	defer db.mu.Unlock()

	if repository.indexTaken(chapter) {
		return apperr.Conflict("Duplicate value violates chapter_seriesid_index_key")
	}
	chapter.CreatedAt = db.tick()
	db.chapters[chapter.ID] = copyChapter(chapter)
	return nil
}

func (repository fakeChapters) Update(_ context.Context, chapter *catalog.Chapter) error {
	db := repository.db
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.chapters[chapter.ID]; !ok {
		return catalog.ErrChapterNotFound
	}
	if repository.indexTaken(chapter) {
		return apperr.Conflict("Duplicate value violates chapter_seriesid_index_key")
	}
	db.chapters[chapter.ID] = copyChapter(chapter)
	return nil
}

func (repository fakeChapters) Delete(_ context.Context, id string) error {
	db := repository.db
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.chapters[id]; !ok {
		return catalog.ErrChapterNotFound
	}
	db.deleteCommentsOf(id)
	delete(db.chapters, id)
	return nil
}

func (repository fakeChapters) IncrementViewCount(_ context.Context, id string, delta int64) error {
	db := repository.db
	db.mu.Lock()
	defer db.mu.Unlock()

	chapter, ok := db.chapters[id]
	if !ok {
		return catalog.ErrChapterNotFound
	}
	chapter.ViewCount += delta
	return nil
}

func (repository fakeChapters) IncrementReadCount(_ context.Context, id string, delta int64) (string, error) {
	db := repository.db
	db.mu.Lock()
	defer db.mu.Unlock()

	chapter, ok := db.chapters[id]
	if !ok {
		return "", catalog.ErrChapterNotFound
	}
	chapter.ReadCount += delta
	return chapter.SeriesID, nil
}

// # Category Repository

type fakeCategories struct{ db *memDB }

func (repository fakeCategories) List(_ context.Context) ([]*catalog.Category, error) {
	db := repository.db
	db.mu.Lock()
	defer db.mu.Unlock()

	result := []*catalog.Category{}
	for _, category := range db.categories {
		value := *category
		result = append(result, &value)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (repository fakeCategories) FindBySlugOrName(_ context.Context, value string) (*catalog.Category, error) {
	db := repository.db
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, category := range db.categories {
		if strings.EqualFold(category.Slug, value) || strings.EqualFold(category.Name, value) {
			found := *category
			return &found, nil
		}
	}
	return nil, catalog.ErrCategoryNotFound
}

func (repository fakeCategories) FindByID(_ context.Context, id string) (*catalog.Category, error) {
	db := repository.db
	db.mu.Lock()
	defer db.mu.Unlock()

	if category, ok := db.categories[id]; ok {
		found := *category
		return &found, nil
	}
	return nil, catalog.ErrCategoryNotFound
}

func (repository fakeCategories) Create(_ context.Context, category *catalog.Category) error {
	db := repository.db
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, existing := range db.categories {
		if existing.Slug == category.Slug || existing.Name == category.Name {
			return apperr.Conflict("Duplicate value violates category_slug_key")
		}
	}
	category.CreatedAt = db.tick()
	value := *category
	db.categories[category.ID] = &value
	return nil
}

func (repository fakeCategories) Update(_ context.Context, category *catalog.Category) error {
	db := repository.db
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.categories[category.ID]; !ok {
		return catalog.ErrCategoryNotFound
	}
	value := *category
	db.categories[category.ID] = &value
	return nil
}

func (repository fakeCategories) Delete(_ context.Context, id string) error {
	db := repository.db
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.categories[id]; !ok {
		return catalog.ErrCategoryNotFound
	}
	for seriesID, ids := range db.links {
		kept := ids[:0]
		for _, linked := range ids {
			if linked != id {
				kept = append(kept, linked)
			}
		}
		db.links[seriesID] = kept
	}
	delete(db.categories, id)
	return nil
}

// # File Store

// fakeFiles records deletions and fails for keys listed in failOn.
type fakeFiles struct {
	mu      sync.Mutex
	deleted []string
	failOn  map[string]bool
}

func (files *fakeFiles) Delete(_ context.Context, key string) error {
	files.mu.Lock()
	defer files.mu.Unlock()

	files.deleted = append(files.deleted, key)
	if files.failOn[key] {
		return errors.New("disk: permission denied")
	}
	return nil
}

// # Helpers

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

func newService(t *testing.T) (*catalog.Service, *memDB, *fakeFiles) {
	t.Helper()

	db := newMemDB()
	files := &fakeFiles{failOn: map[string]bool{}}
	service := catalog.NewService(fakeSeries{db}, fakeChapters{db}, fakeCategories{db}, files, discardLogger())
	return service, db, files
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

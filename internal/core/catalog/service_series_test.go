// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/truyenmoi/internal/core/catalog"
	"github.com/taibuivan/truyenmoi/internal/platform/apperr"
	"github.com/taibuivan/truyenmoi/pkg/pointer"
	"github.com/taibuivan/truyenmoi/pkg/uuid"
)

func seriesIDs(series []*catalog.Series) []string {
	ids := make([]string, 0, len(series))
	for _, item := range series {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestListings_Orderings(t *testing.T) {
	service, db, _ := newService(t)
	oldest := db.addSeries("Oldest", "oldest", 10, 90)
	viewed := db.addSeries("Viewed", "viewed", 500, 5)
	newest := db.addSeries("Newest", "newest", 10, 20)

	recent, err := service.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{newest.ID, viewed.ID, oldest.ID}, seriesIDs(recent))

	trending, err := service.ListTrending(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{viewed.ID, oldest.ID, newest.ID}, seriesIDs(trending))

	featured, err := service.ListFeatured(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{oldest.ID, newest.ID}, seriesIDs(featured))

	limited, err := service.ListRecent(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestHome(t *testing.T) {
	service, db, _ := newService(t)

	empty, err := service.Home(context.Background(), 20)
	require.NoError(t, err)
	assert.Empty(t, empty.Series)
	assert.Empty(t, empty.Trending)
	assert.Nil(t, empty.Featured)

	for i := 0; i < 10; i++ {
		db.addSeries("S", "s-"+string(rune('a'+i)), int64(i), int64(10-i))
	}

	home, err := service.Home(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, home.Series, 3)
	assert.Len(t, home.Trending, 8)
	require.NotNil(t, home.Featured)
	assert.EqualValues(t, 10, home.Featured.ReadCount)
	assert.EqualValues(t, 9, home.Trending[0].ViewCount)
}

func TestListRanking(t *testing.T) {
	service, db, _ := newService(t)
	db.addSeries("Low", "low", 0, 1)
	top := db.addSeries("Top", "top", 0, 9)

	for _, period := range []catalog.RankingPeriod{catalog.PeriodDay, catalog.PeriodWeek, catalog.PeriodMonth} {
		ranking, err := service.ListRanking(context.Background(), period, 0)
		require.NoError(t, err)
		assert.Equal(t, period, ranking.Period)
		assert.Equal(t, top.ID, ranking.Series[0].ID, "every period uses the same ordering")
	}

	_, err := service.ListRanking(context.Background(), "year", 10)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeValidation, apperr.As(err).Code)
}

func TestListByCategory(t *testing.T) {
	service, db, _ := newService(t)
	action := db.addCategory("Hành động", "hanh-dong")
	fighting := db.addSeries("Fight", "fight", 0, 0)
	db.addSeries("Romance", "romance", 0, 0)
	db.link(fighting.ID, action.ID)

	for _, input := range []string{"hanh-dong", "HANH-DONG", "Hành Động", " hành động "} {
		listing, err := service.ListByCategory(context.Background(), input, 0)
		require.NoError(t, err, input)
		require.NotNil(t, listing.Category, input)
		assert.Equal(t, action.ID, listing.Category.ID)
		assert.Equal(t, []string{fighting.ID}, seriesIDs(listing.Series))
	}

	missing, err := service.ListByCategory(context.Background(), "kinh-di", 0)
	require.NoError(t, err)
	assert.Nil(t, missing.Category)
	assert.NotNil(t, missing.Series)
	assert.Empty(t, missing.Series)
}

func TestCreateSeries(t *testing.T) {
	service, db, _ := newService(t)
	category := db.addCategory("Action", "action")

	created, err := service.CreateSeries(context.Background(), &catalog.Series{
		Title:       "  Tôi Là Đại Hiệp!  ",
		CategoryIDs: []string{category.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, "Tôi Là Đại Hiệp!", created.Title)
	assert.Equal(t, "toi-la-dai-hiep", created.Slug)
	assert.Equal(t, catalog.StatusOngoing, created.Status)
	assert.Equal(t, []string{}, created.Tags)
	require.Len(t, created.Categories, 1)
	assert.Equal(t, "action", created.Categories[0].Slug)

	_, err = service.CreateSeries(context.Background(), &catalog.Series{Title: "Toi la dai hiep"})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeConflict, apperr.As(err).Code)

	_, err = service.CreateSeries(context.Background(), &catalog.Series{Title: "???"})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeValidation, apperr.As(err).Code)

	_, err = service.CreateSeries(context.Background(), &catalog.Series{Title: "Bad Link", CategoryIDs: []string{"nope"}})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeValidation, apperr.As(err).Code)
}

func TestCreateSeries_NormalisesOptionalFields(t *testing.T) {
	service, db, _ := newService(t)
	category := db.addCategory("Action", "action")

	created, err := service.CreateSeries(context.Background(), &catalog.Series{
		Title:       "Kiếm Khách",
		Description: pointer.To("   "),
		Author:      pointer.To(" Kim Dung "),
		Tags:        []string{" vo hiep", "", "vo hiep", "co trang "},
		CategoryIDs: []string{category.ID, category.ID},
	})
	require.NoError(t, err)

	assert.Nil(t, created.Description)
	assert.Equal(t, "Kim Dung", pointer.Deref(created.Author, ""))
	assert.Equal(t, []string{"vo hiep", "co trang"}, created.Tags)
	assert.Len(t, created.Categories, 1)
}

func TestUpdateSeries(t *testing.T) {
	service, db, _ := newService(t)
	first := db.addCategory("Action", "action")
	second := db.addCategory("Drama", "drama")
	series := db.addSeries("Old Name", "old-name", 0, 0)
	db.link(series.ID, first.ID)

	updated, err := service.UpdateSeries(context.Background(), series.ID, catalog.SeriesPatch{
		Author: pointer.To("Someone"),
	})
	require.NoError(t, err)
	assert.Equal(t, "old-name", updated.Slug)
	assert.Equal(t, "Someone", pointer.Deref(updated.Author, ""))
	require.Len(t, updated.Categories, 1, "links kept when category ids are omitted")

	updated, err = service.UpdateSeries(context.Background(), series.ID, catalog.SeriesPatch{
		Title:       pointer.To("New Name"),
		CategoryIDs: &[]string{second.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "new-name", updated.Slug)
	require.Len(t, updated.Categories, 1)
	assert.Equal(t, second.ID, updated.Categories[0].ID)

	_, err = service.UpdateSeries(context.Background(), uuid.New(), catalog.SeriesPatch{})
	assert.ErrorIs(t, err, catalog.ErrSeriesNotFound)
}

func TestDeleteSeries_BestEffortFileCleanup(t *testing.T) {
	service, db, files := newService(t)
	series := db.addSeries("Doomed", "doomed", 0, 0)
	cover := "https://cdn.example.com/uploads/cover.jpg?v=3"
	require.NoError(t, fakeSeries{db}.Update(context.Background(), &catalog.Series{
		ID: series.ID, Title: series.Title, Slug: series.Slug, Status: series.Status,
		Tags: []string{}, CoverImage: &cover,
	}))

	first := db.addChapter(series.ID, "One", 0, nil, "/uploads/p1.png", "/uploads/p2.png")
	second := db.addChapter(series.ID, "Two", 1, nil, "/uploads/p3.png#frag", "/uploads/p1.png")
	files.failOn["p2.png"] = true

	require.NoError(t, service.DeleteSeries(context.Background(), series.ID))

	assert.ElementsMatch(t, []string{"cover.jpg", "p1.png", "p2.png", "p3.png"}, files.deleted,
		"every distinct key is attempted once, even after a failure")
	assert.Nil(t, db.seriesByID(series.ID))
	assert.Nil(t, db.chapter(first.ID))
	assert.Nil(t, db.chapter(second.ID))

	assert.ErrorIs(t, service.DeleteSeries(context.Background(), series.ID), catalog.ErrSeriesNotFound)
}

func TestDeleteSeries_RemovesChapterComments(t *testing.T) {
	service, db, _ := newService(t)
	doomed := db.addSeries("Doomed", "doomed", 0, 0)
	kept := db.addSeries("Kept", "kept", 0, 0)

	first := db.addChapter(doomed.ID, "One", 0, nil)
	second := db.addChapter(doomed.ID, "Two", 1, nil)
	other := db.addChapter(kept.ID, "Other", 0, nil)

	gone := []string{db.addComment(first.ID), db.addComment(first.ID), db.addComment(second.ID)}
	survivor := db.addComment(other.ID)

	require.NoError(t, service.DeleteSeries(context.Background(), doomed.ID))

	for _, id := range gone {
		assert.False(t, db.commentExists(id), "comment %s outlived its series", id)
	}
	assert.True(t, db.commentExists(survivor))
	assert.NotNil(t, db.chapter(other.ID))
}

func TestDeleteSeries_WithoutFileStore(t *testing.T) {
	db := newMemDB()
	service := catalog.NewService(fakeSeries{db}, fakeChapters{db}, fakeCategories{db}, nil, discardLogger())
	series := db.addSeries("Plain", "plain", 0, 0)

	require.NoError(t, service.DeleteSeries(context.Background(), series.ID))
	assert.Nil(t, db.seriesByID(series.ID))
}

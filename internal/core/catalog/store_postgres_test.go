// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/truyenmoi/internal/core/catalog"
	"github.com/taibuivan/truyenmoi/internal/platform/migration"
	"github.com/taibuivan/truyenmoi/internal/platform/postgres"
	"github.com/taibuivan/truyenmoi/pkg/uuid"
)

// testDatabaseEnv names a disposable database for repository tests.
const testDatabaseEnv = "TEST_DATABASE_URL"

// openTestPool migrates the database named by TEST_DATABASE_URL and returns
// a pool on it. The test is skipped when the variable is unset.
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(testDatabaseEnv)
	if dsn == "" {
		t.Skipf("%s not set", testDatabaseEnv)
	}

	ctx := context.Background()
	migrations, err := filepath.Abs(filepath.Join("..", "..", "..", "data", "migrations"))
	require.NoError(t, err)
	require.NoError(t, migration.RunUp(ctx, dsn, migrations, discardLogger()))

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolSize{MaxConns: 4, MinConns: 1}, discardLogger())
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func createSeriesRow(t *testing.T, repository catalog.SeriesRepository) *catalog.Series {
	t.Helper()

	id := uuid.New()
	series := &catalog.Series{
		ID: id, Title: "Cascade " + id, Slug: "cascade-" + id,
		Status: catalog.StatusOngoing, Tags: []string{}, CategoryIDs: []string{},
	}
	require.NoError(t, repository.Create(context.Background(), series))
	return series
}

func createChapterRow(t *testing.T, repository catalog.ChapterRepository, seriesID string, index int) *catalog.Chapter {
	t.Helper()

	chapter := &catalog.Chapter{ID: uuid.New(), SeriesID: seriesID, Title: "Chapter", Index: index, Pages: []string{}}
	require.NoError(t, repository.Create(context.Background(), chapter))
	return chapter
}

func insertComment(t *testing.T, pool *pgxpool.Pool, chapterID string) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		"INSERT INTO social.comment (id, chapterid, content) VALUES ($1, $2, $3)", uuid.New(), chapterID, "hay quá")
	require.NoError(t, err)
}

func countComments(t *testing.T, pool *pgxpool.Pool, chapterIDs ...string) int {
	t.Helper()

	var count int
	require.NoError(t, pool.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM social.comment WHERE chapterid = ANY($1::uuid[])", chapterIDs).Scan(&count))
	return count
}

func TestPostgresSeriesDelete_RemovesChaptersAndComments(t *testing.T) {
	pool := openTestPool(t)
	seriesRepo := catalog.NewSeriesRepository(pool)
	chapterRepo := catalog.NewChapterRepository(pool)
	ctx := context.Background()

	doomed := createSeriesRow(t, seriesRepo)
	first := createChapterRow(t, chapterRepo, doomed.ID, 0)
	second := createChapterRow(t, chapterRepo, doomed.ID, 1)
	insertComment(t, pool, first.ID)
	insertComment(t, pool, second.ID)

	kept := createSeriesRow(t, seriesRepo)
	other := createChapterRow(t, chapterRepo, kept.ID, 0)
	insertComment(t, pool, other.ID)

	require.NoError(t, seriesRepo.Delete(ctx, doomed.ID))

	assert.Zero(t, countComments(t, pool, first.ID, second.ID))
	assert.Equal(t, 1, countComments(t, pool, other.ID))

	_, err := chapterRepo.Get(ctx, first.ID)
	assert.ErrorIs(t, err, catalog.ErrChapterNotFound)
	assert.ErrorIs(t, seriesRepo.Delete(ctx, doomed.ID), catalog.ErrSeriesNotFound)

	require.NoError(t, seriesRepo.Delete(ctx, kept.ID))
}

func TestPostgresChapterDelete_RemovesComments(t *testing.T) {
	pool := openTestPool(t)
	seriesRepo := catalog.NewSeriesRepository(pool)
	chapterRepo := catalog.NewChapterRepository(pool)
	ctx := context.Background()

	series := createSeriesRow(t, seriesRepo)
	chapter := createChapterRow(t, chapterRepo, series.ID, 0)
	sibling := createChapterRow(t, chapterRepo, series.ID, 1)
	insertComment(t, pool, chapter.ID)
	insertComment(t, pool, sibling.ID)

	require.NoError(t, chapterRepo.Delete(ctx, chapter.ID))

	assert.Zero(t, countComments(t, pool, chapter.ID))
	assert.Equal(t, 1, countComments(t, pool, sibling.ID))
	assert.ErrorIs(t, chapterRepo.Delete(ctx, chapter.ID), catalog.ErrChapterNotFound)

	require.NoError(t, seriesRepo.Delete(ctx, series.ID))
}

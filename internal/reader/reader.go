// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reader assembles the chapter reading view.

It resolves the chapter through the catalogue and interleaves the enabled
ad inserts with the chapter's pages, producing the ordered slot list the
reading page renders top to bottom.
*/
package reader

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/truyenmoi/internal/core/catalog"
	"github.com/taibuivan/truyenmoi/internal/system/ads"
)

// SlotKind distinguishes page images from ad fragments.
type SlotKind string

const (
	SlotPage SlotKind = "page"
	SlotAd   SlotKind = "ad"
)

// Slot is one vertical block of the reading page.
type Slot struct {
	Kind SlotKind `json:"kind"`
	// Page is the zero-based page index for page slots, or the page the ad
	// precedes for ad slots (len(pages) when it trails the chapter).
	Page int    `json:"page"`
	URL  string `json:"url,omitempty"`
	Code string `json:"code,omitempty"`
}

// View is the reading page payload.
type View struct {
	*catalog.ChapterView
	Slots []Slot `json:"slots"`
}

// ChapterResolver resolves and counts a chapter view.
type ChapterResolver interface {
	ResolveChapter(context context.Context, seriesSlug, identifier string) (*catalog.ChapterView, error)
}

// InsertSource lists the enabled ad directives.
type InsertSource interface {
	EnabledInserts(context context.Context) ([]ads.Insert, error)
}

// Service builds reading views.
type Service struct {
	chapters ChapterResolver
	inserts  InsertSource
	logger   *slog.Logger
}

// NewService constructs a reader [Service].
func NewService(chapters ChapterResolver, inserts InsertSource, logger *slog.Logger) *Service {
	return &Service{chapters: chapters, inserts: inserts, logger: logger}
}

/*
Build resolves a chapter and merges the ad inserts into its pages.

Description: Chapter resolution and the ads lookup run concurrently. A
failed ads lookup is logged and the chapter is served without ads; a
failed chapter resolution fails the whole view.

Parameters:
  - context: context.Context
  - seriesSlug: string
  - identifier: string (chapter slug or legacy id)

Returns:
  - *View: Chapter, siblings and slots
  - error: catalog.ErrSeriesNotFound, catalog.ErrChapterNotFound
*/
func (service *Service) Build(context context.Context, seriesSlug, identifier string) (*View, error) {
	var (
		chapterView *catalog.ChapterView
		inserts     []ads.Insert
	)

	group, groupContext := errgroup.WithContext(context)

	group.Go(func() error {
		var err error
		chapterView, err = service.chapters.ResolveChapter(groupContext, seriesSlug, identifier)
		return err
	})

	group.Go(func() error {
		found, err := service.inserts.EnabledInserts(groupContext)
		if err != nil {
			service.logger.Warn("reader_ads_unavailable", slog.String("error", err.Error()))
			return nil
		}
		inserts = found
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return &View{
		ChapterView: chapterView,
		Slots:       Interleave(chapterView.Chapter.Pages, inserts),
	}, nil
}

/*
Interleave places each insert before the page at its position.

Inserts sharing a position all render, in the order given. Positions at or
beyond the page count render after the last page, again in the order given.
Only enabled inserts should be passed in.
*/
func Interleave(pages []string, inserts []ads.Insert) []Slot {
	before := make(map[int][]ads.Insert)
	var trailing []ads.Insert

	for _, insert := range inserts {
		if insert.Position >= len(pages) {
			trailing = append(trailing, insert)
			continue
		}
		before[insert.Position] = append(before[insert.Position], insert)
	}

	slots := make([]Slot, 0, len(pages)+len(inserts))
	for index, page := range pages {
		for _, insert := range before[index] {
			slots = append(slots, Slot{Kind: SlotAd, Page: index, Code: insert.Code})
		}
		slots = append(slots, Slot{Kind: SlotPage, Page: index, URL: page})
	}

	for _, insert := range trailing {
		slots = append(slots, Slot{Kind: SlotAd, Page: len(pages), Code: insert.Code})
	}

	return slots
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fu-news-go/internal/model"
	"fu-news-go/internal/repository/repositorytest"
	"fu-news-go/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type newsFixture struct {
	store     *repositorytest.Store
	svc       *newsService
	publisher *recordingPublisher
	author    model.Account
	category  model.Category
}

func newNewsFixture(t *testing.T) *newsFixture {
	t.Helper()
	store := repositorytest.NewStore()
	publisher := &recordingPublisher{}
	clock := newFakeClock(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))
	return &newsFixture{
		store:     store,
		svc:       newNewsService(store, publisher, clock.Now),
		publisher: publisher,
		author:    seedAccount(t, store, "staff@x.com", model.RoleStaff),
		category:  seedCategory(t, store, "Campus", nil),
	}
}

func (f *newsFixture) create(t *testing.T, title string, published bool, tagIDs ...uint) *NewsArticleResponse {
	t.Helper()
	resp, err := f.svc.Create(context.Background(), NewsArticleRequest{
		NewsTitle:   title,
		NewsContent: "content of " + title,
		CategoryID:  f.category.ID,
		NewsStatus:  &published,
		TagIDs:      tagIDs,
	}, f.author.ID)
	require.NoError(t, err)
	return resp
}

func TestNewsService_CreateDropsUnknownTags(t *testing.T) {
	f := newNewsFixture(t)
	tag := seedTag(t, f.store, "events")

	created := f.create(t, "Open day", true, tag.ID, 999999, tag.ID)
	require.Len(t, created.Tags, 1)
	assert.Equal(t, tag.ID, created.Tags[0].TagID)
	assert.Equal(t, "Campus", created.CategoryName)
	assert.Equal(t, "User staff@x.com", created.CreatedByName)
	assert.Nil(t, created.ModifiedDate)

	updated, err := f.svc.Update(context.Background(), created.NewsArticleID, NewsArticleUpdateRequest{
		NewsTitle:   "Open day",
		NewsContent: "new body",
		CategoryID:  f.category.ID,
		NewsStatus:  true,
		TagIDs:      []uint{999999},
	}, f.author.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Tags)
	assert.NotNil(t, updated.ModifiedDate)
	require.NotNil(t, updated.UpdatedByName)
	assert.Equal(t, "User staff@x.com", *updated.UpdatedByName)
}

func TestNewsService_CreateDefaultsToPublished(t *testing.T) {
	f := newNewsFixture(t)
	resp, err := f.svc.Create(context.Background(), NewsArticleRequest{
		NewsTitle:   "t",
		NewsContent: "c",
		CategoryID:  f.category.ID,
	}, f.author.ID)
	require.NoError(t, err)
	assert.True(t, resp.NewsStatus)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.ArticleCreated, f.publisher.events[0].Type)
	assert.Equal(t, resp.NewsArticleID, f.publisher.events[0].ArticleID)
}

func TestNewsService_CreateRejectsBadReferences(t *testing.T) {
	f := newNewsFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, NewsArticleRequest{NewsTitle: "t", NewsContent: "c", CategoryID: 999}, f.author.ID)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Create(ctx, NewsArticleRequest{NewsTitle: "t", NewsContent: "c", CategoryID: f.category.ID}, 999)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Create(ctx, NewsArticleRequest{NewsTitle: " ", NewsContent: "c", CategoryID: f.category.ID}, f.author.ID)
	assert.ErrorIs(t, err, ErrValidation)

	all, err := f.svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, f.publisher.events)
}

func TestNewsService_TagFailureRollsBackArticle(t *testing.T) {
	f := newNewsFixture(t)
	tag := seedTag(t, f.store, "x")
	boom := errors.New("boom")
	f.store.Fail("NewsArticles.ReplaceTags", boom)

	_, err := f.svc.Create(context.Background(), NewsArticleRequest{
		NewsTitle: "t", NewsContent: "c", CategoryID: f.category.ID, TagIDs: []uint{tag.ID},
	}, f.author.ID)
	assert.ErrorIs(t, err, boom)

	all, err := f.svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestNewsService_GetActiveOrderedAndPublishedOnly(t *testing.T) {
	f := newNewsFixture(t)
	first := f.create(t, "first", true)
	draft := f.create(t, "draft", false)
	third := f.create(t, "third", true)

	active, err := f.svc.GetActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, third.NewsArticleID, active[0].NewsArticleID)
	assert.Equal(t, first.NewsArticleID, active[1].NewsArticleID)
	for _, a := range active {
		assert.True(t, a.NewsStatus)
	}

	_, err = f.svc.GetActiveByID(context.Background(), draft.NewsArticleID)
	assert.ErrorIs(t, err, ErrNotFound)
	got, err := f.svc.GetByID(context.Background(), draft.NewsArticleID)
	require.NoError(t, err)
	assert.False(t, got.NewsStatus)
}

func TestNewsService_SoftDelete(t *testing.T) {
	f := newNewsFixture(t)
	ctx := context.Background()
	article := f.create(t, "going away", true)

	deleted, err := f.svc.Delete(ctx, article.NewsArticleID)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := f.svc.GetByID(ctx, article.NewsArticleID)
	require.NoError(t, err)
	assert.False(t, got.NewsStatus)
	assert.NotNil(t, got.ModifiedDate)

	last := f.publisher.events[len(f.publisher.events)-1]
	assert.Equal(t, events.ArticleDeleted, last.Type)

	deleted, err = f.svc.Delete(ctx, 999)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = f.svc.Update(ctx, 999, NewsArticleUpdateRequest{NewsTitle: "t", NewsContent: "c", CategoryID: f.category.ID}, f.author.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewsService_PublishFailureDoesNotFailWrite(t *testing.T) {
	f := newNewsFixture(t)
	f.publisher.err = errors.New("broker down")

	created := f.create(t, "still saved", true)
	assert.NotZero(t, created.NewsArticleID)
}

func TestNewsService_SearchAndMine(t *testing.T) {
	f := newNewsFixture(t)
	ctx := context.Background()
	other := seedAccount(t, f.store, "other@x.com", model.RoleLecturer)

	f.create(t, "Library reopens", true)
	_, err := f.svc.Create(ctx, NewsArticleRequest{NewsTitle: "Exam schedule", NewsContent: "library hours", CategoryID: f.category.ID}, other.ID)
	require.NoError(t, err)

	found, err := f.svc.Search(ctx, "LIBRARY")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	all, err := f.svc.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := f.svc.GetByCreator(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Exam schedule", mine[0].NewsTitle)
}

func TestNewsService_Counts(t *testing.T) {
	f := newNewsFixture(t)
	ctx := context.Background()
	other := seedAccount(t, f.store, "other@x.com", model.RoleLecturer)

	f.create(t, "a", true)
	f.create(t, "b", false)
	_, err := f.svc.Create(ctx, NewsArticleRequest{NewsTitle: "c", NewsContent: "c", CategoryID: f.category.ID}, other.ID)
	require.NoError(t, err)

	counts, err := f.svc.Counts(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, NewsCounts{TotalArticles: 3, PublishedArticles: 2, DraftArticles: 1, TotalAuthors: 2}, *counts)

	// 只提供一个日期时不过滤
	past := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	total, err := f.svc.TotalCount(ctx, &past, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	// 结束日期包含当天
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	total, err = f.svc.TotalCount(ctx, &day, &day)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	before := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	total, err = f.svc.PublishedCount(ctx, &before, &before)
	require.NoError(t, err)
	assert.Zero(t, total)

	_, err = f.svc.Counts(ctx, &day, &before)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewsService_StatisticsByDateRange(t *testing.T) {
	f := newNewsFixture(t)
	ctx := context.Background()
	f.create(t, "a", true)
	f.create(t, "b", false)

	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	stats, err := f.svc.StatisticsByDateRange(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	for _, s := range stats {
		created := time.Time(s.CreatedDate)
		assert.False(t, created.Before(start))
		assert.False(t, created.After(endOfDay(end)))
		assert.Equal(t, "Campus", s.CategoryName)
	}

	f.store.Fail("NewsArticles.Find", errors.New("must not query"))
	_, err = f.svc.StatisticsByDateRange(ctx, end.Add(24*time.Hour), start)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEndOfDay(t *testing.T) {
	got := endOfDay(time.Date(2024, 5, 1, 13, 20, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 5, 1, 23, 59, 59, 999999999, time.UTC), got)
}

package service

import (
	"context"
	"testing"
	"time"

	"fu-news-go/internal/model"
	"fu-news-go/internal/repository/repositorytest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_Counts(t *testing.T) {
	ctx := context.Background()
	store := repositorytest.NewStore()
	news := newNewsService(store, nil, newFakeClock(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)).Now)
	reports := NewReportService(news, NewAccountService(store, nil), NewCategoryService(store), NewTagService(store))

	author := seedAccount(t, store, "s@x.com", model.RoleStaff)
	seedAccount(t, store, "l@x.com", model.RoleLecturer)
	category := seedCategory(t, store, "General", nil)
	seedTag(t, store, "a")
	seedTag(t, store, "b")
	seedTag(t, store, "c")

	draft := false
	_, err := news.Create(ctx, NewsArticleRequest{NewsTitle: "t", NewsContent: "c", CategoryID: category.ID}, author.ID)
	require.NoError(t, err)
	_, err = news.Create(ctx, NewsArticleRequest{NewsTitle: "t", NewsContent: "c", CategoryID: category.ID, NewsStatus: &draft}, author.ID)
	require.NoError(t, err)

	counts, err := reports.Counts(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.TotalArticles)
	assert.Equal(t, int64(1), counts.PublishedArticles)
	assert.Equal(t, int64(1), counts.DraftArticles)
	assert.Equal(t, int64(1), counts.TotalAuthors)
	assert.Equal(t, int64(2), counts.TotalUsers)
	assert.Equal(t, int64(1), counts.TotalCategories)
	assert.Equal(t, int64(3), counts.TotalTags)

	allNews, err := reports.AllNews(ctx)
	require.NoError(t, err)
	assert.Len(t, allNews, 2)

	allTags, err := reports.AllTags(ctx)
	require.NoError(t, err)
	assert.Len(t, allTags, 3)

	allAccounts, err := reports.AllAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, allAccounts, 2)

	allCategories, err := reports.AllCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, allCategories, 1)

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	stats, err := reports.Statistics(ctx, day, day)
	require.NoError(t, err)
	assert.Len(t, stats, 2)
}

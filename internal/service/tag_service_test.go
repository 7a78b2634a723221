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

func TestTagService_NameUniqueness(t *testing.T) {
	ctx := context.Background()
	svc := NewTagService(repositorytest.NewStore())

	a, err := svc.Create(ctx, TagRequest{TagName: "Go"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, TagRequest{TagName: "Rust", Note: strPtr("systems")})
	require.NoError(t, err)

	_, err = svc.Create(ctx, TagRequest{TagName: "Go"})
	assert.ErrorIs(t, err, ErrConflict)

	// 区分大小写
	_, err = svc.Create(ctx, TagRequest{TagName: "go"})
	assert.NoError(t, err)

	renamed, err := svc.Update(ctx, a.TagID, TagRequest{TagName: "Go", Note: strPtr("kept")})
	require.NoError(t, err)
	assert.Equal(t, "kept", *renamed.Note)

	_, err = svc.Update(ctx, a.TagID, TagRequest{TagName: b.TagName})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Update(ctx, 999, TagRequest{TagName: "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Create(ctx, TagRequest{TagName: "  "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTagService_Delete(t *testing.T) {
	ctx := context.Background()
	store := repositorytest.NewStore()
	svc := NewTagService(store)
	news := newNewsService(store, nil, newFakeClock(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)).Now)

	author := seedAccount(t, store, "s@x.com", model.RoleStaff)
	category := seedCategory(t, store, "General", nil)
	used := seedTag(t, store, "used")
	free := seedTag(t, store, "free")

	_, err := news.Create(ctx, NewsArticleRequest{NewsTitle: "t", NewsContent: "c", CategoryID: category.ID, TagIDs: []uint{used.ID}}, author.ID)
	require.NoError(t, err)

	_, err = svc.Delete(ctx, used.ID)
	assert.ErrorIs(t, err, ErrConflict)

	deleted, err := svc.Delete(ctx, free.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(ctx, free.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	total, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

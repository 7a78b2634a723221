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

func uintPtr(v uint) *uint { return &v }

func TestCategoryService_CreateWithParent(t *testing.T) {
	ctx := context.Background()
	store := repositorytest.NewStore()
	svc := NewCategoryService(store)

	root, err := svc.Create(ctx, CategoryRequest{CategoryName: "News"})
	require.NoError(t, err)
	assert.True(t, root.IsActive)
	assert.Nil(t, root.ParentCategoryName)

	child, err := svc.Create(ctx, CategoryRequest{CategoryName: "Sports", ParentCategoryID: &root.CategoryID, IsActive: boolPtr(false)})
	require.NoError(t, err)
	require.NotNil(t, child.ParentCategoryName)
	assert.Equal(t, "News", *child.ParentCategoryName)
	assert.False(t, child.IsActive)

	_, err = svc.Create(ctx, CategoryRequest{CategoryName: "Orphan", ParentCategoryID: uintPtr(999)})
	assert.ErrorIs(t, err, ErrValidation)

	active, err := svc.GetActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "News", active[0].CategoryName)
}

func TestCategoryService_UpdateRejectsCycles(t *testing.T) {
	ctx := context.Background()
	store := repositorytest.NewStore()
	svc := NewCategoryService(store)

	a := seedCategory(t, store, "A", nil)
	b := seedCategory(t, store, "B", &a.ID)
	c := seedCategory(t, store, "C", &b.ID)

	tests := []struct {
		name     string
		id       uint
		parentID *uint
		wantErr  error
	}{
		{"self parent", a.ID, &a.ID, ErrValidation},
		{"descendant parent", a.ID, &c.ID, ErrValidation},
		{"missing parent", b.ID, uintPtr(999), ErrValidation},
		{"missing category", 999, nil, ErrNotFound},
		{"move to root", c.ID, nil, nil},
		{"reparent under former descendant", b.ID, &c.ID, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(ctx, tt.id, CategoryRequest{CategoryName: "renamed", ParentCategoryID: tt.parentID})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCategoryService_Delete(t *testing.T) {
	ctx := context.Background()
	store := repositorytest.NewStore()
	svc := NewCategoryService(store)
	news := newNewsService(store, nil, newFakeClock(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)).Now)

	author := seedAccount(t, store, "s@x.com", model.RoleStaff)
	used := seedCategory(t, store, "Used", nil)
	free := seedCategory(t, store, "Free", nil)
	child := seedCategory(t, store, "Child", &free.ID)

	_, err := news.Create(ctx, NewsArticleRequest{NewsTitle: "t", NewsContent: "c", CategoryID: used.ID}, author.ID)
	require.NoError(t, err)

	_, err = svc.Delete(ctx, used.ID)
	assert.ErrorIs(t, err, ErrConflict)

	deleted, err := svc.Delete(ctx, free.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// 子分类被提升为顶级分类
	reloaded, err := svc.GetByID(ctx, child.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.ParentCategoryID)

	deleted, err = svc.Delete(ctx, 999)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCategoryService_Search(t *testing.T) {
	ctx := context.Background()
	store := repositorytest.NewStore()
	svc := NewCategoryService(store)
	_, err := svc.Create(ctx, CategoryRequest{CategoryName: "Campus", CategoryDescription: strPtr("student life")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CategoryRequest{CategoryName: "Research"})
	require.NoError(t, err)

	found, err := svc.Search(ctx, "STUDENT")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Campus", found[0].CategoryName)

	total, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

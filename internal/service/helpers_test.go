package service

import (
	"context"
	"testing"
	"time"

	"fu-news-go/internal/model"
	"fu-news-go/internal/repository/repositorytest"
	"fu-news-go/pkg/events"
	"fu-news-go/pkg/hash"

	"github.com/stretchr/testify/require"
)

func seedAccount(t *testing.T, store *repositorytest.Store, email string, role model.Role) model.Account {
	t.Helper()
	hashed, err := hash.HashPassword("secret123")
	require.NoError(t, err)
	name := "User " + email
	account := model.Account{Name: &name, Email: email, Password: hashed, Role: role, IsActive: true}
	require.NoError(t, store.Accounts().Create(context.Background(), &account))
	return account
}

func seedCategory(t *testing.T, store *repositorytest.Store, name string, parentID *uint) model.Category {
	t.Helper()
	category := model.Category{Name: name, ParentID: parentID, IsActive: true}
	require.NoError(t, store.Categories().Create(context.Background(), &category))
	return category
}

func seedTag(t *testing.T, store *repositorytest.Store, name string) model.Tag {
	t.Helper()
	tag := model.Tag{Name: name}
	require.NoError(t, store.Tags().Create(context.Background(), &tag))
	return tag
}

// recordingPublisher 记录发布过的事件。
type recordingPublisher struct {
	events []events.ArticleEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.ArticleEvent) error {
	p.events = append(p.events, event)
	return p.err
}

// fakeClock 每次调用前进一分钟，保证文章创建时间严格递增。
type fakeClock struct {
	current time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{current: start}
}

func (c *fakeClock) Now() time.Time {
	now := c.current
	c.current = c.current.Add(time.Minute)
	return now
}

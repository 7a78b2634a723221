package service

import (
	"context"
	"testing"

	"fu-news-go/internal/model"
	"fu-news-go/pkg/es"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	gotQuery string
	gotSize  int
	hits     []es.ArticleHit
}

func (s *stubSearcher) SearchArticles(_ context.Context, query string, size int) ([]es.ArticleHit, error) {
	s.gotQuery, s.gotSize = query, size
	return s.hits, nil
}

func TestSearchService_FullText(t *testing.T) {
	searcher := &stubSearcher{hits: []es.ArticleHit{{
		Document: model.ArticleDocument{NewsArticleID: 4, Title: "Robotics club", CategoryName: "Campus", CreatedByName: "Alice", CreatedDate: "2024-03-10T09:00:00"},
		Score:    2.5,
	}}}
	svc := NewSearchService(searcher)

	hits, err := svc.FullText(context.Background(), "  robots ", 500)
	require.NoError(t, err)
	assert.Equal(t, "robots", searcher.gotQuery)
	assert.Equal(t, maxSearchSize, searcher.gotSize)
	require.Len(t, hits, 1)
	assert.Equal(t, uint(4), hits[0].NewsArticleID)
	assert.Equal(t, "Robotics club", hits[0].NewsTitle)
	assert.Equal(t, 2.5, hits[0].Score)

	_, err = svc.FullText(context.Background(), "robots", 0)
	require.NoError(t, err)
	assert.Equal(t, defaultSearchSize, searcher.gotSize)
}

func TestSearchService_Errors(t *testing.T) {
	_, err := NewSearchService(&stubSearcher{}).FullText(context.Background(), " ", 10)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewSearchService(nil).FullText(context.Background(), "q", 10)
	assert.ErrorIs(t, err, ErrSearchUnavailable)
}

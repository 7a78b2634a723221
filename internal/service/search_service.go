package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fu-news-go/pkg/es"
	"fu-news-go/pkg/log"
)

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
)

// ErrSearchUnavailable 表示全文检索未启用。
var ErrSearchUnavailable = errors.New("full-text search is not enabled")

// ArticleSearcher 是全文检索后端的抽象，由 *es.ArticleIndex 实现。
type ArticleSearcher interface {
	SearchArticles(ctx context.Context, query string, size int) ([]es.ArticleHit, error)
}

// SearchService 接口定义了已发布文章的全文检索。
type SearchService interface {
	FullText(ctx context.Context, query string, size int) ([]SearchHit, error)
}

type searchService struct {
	index ArticleSearcher
}

// NewSearchService 创建一个新的 SearchService 实例。index 为 nil 表示未启用 Elasticsearch。
func NewSearchService(index ArticleSearcher) SearchService {
	return &searchService{index: index}
}

func (s *searchService) FullText(ctx context.Context, query string, size int) ([]SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, validationError(msgInvalidInput)
	}
	if s.index == nil {
		return nil, ErrSearchUnavailable
	}
	if size <= 0 {
		size = defaultSearchSize
	}
	if size > maxSearchSize {
		size = maxSearchSize
	}

	log.Infof("[SearchService] 开始全文检索, query: '%s', size: %d", query, size)
	hits, err := s.index.SearchArticles(ctx, query, size)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}

	out := make([]SearchHit, 0, len(hits))
	for _, h := range hits {
		doc := h.Document
		out = append(out, SearchHit{
			NewsArticleID: doc.NewsArticleID,
			NewsTitle:     doc.Title,
			Headline:      doc.Headline,
			CategoryName:  doc.CategoryName,
			CreatedByName: doc.CreatedByName,
			CreatedDate:   doc.CreatedDate,
			Score:         h.Score,
		})
	}
	log.Infof("[SearchService] 检索完成, 命中 %d 条", len(out))
	return out, nil
}

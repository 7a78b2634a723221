// Package pipeline 定义了文章事件的后台处理流程。
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fu-news-go/internal/live"
	"fu-news-go/internal/model"
	"fu-news-go/internal/service"
	"fu-news-go/pkg/events"
	"fu-news-go/pkg/log"
	"fu-news-go/pkg/metrics"
)

const documentDateFormat = "2006-01-02T15:04:05"

// ArticleLoader 按 ID 重新读取文章，由 service.NewsService 实现。
type ArticleLoader interface {
	GetByID(ctx context.Context, articleID uint) (*service.NewsArticleResponse, error)
}

// ArticleIndex 是检索索引的写入端，由 *es.ArticleIndex 实现。
type ArticleIndex interface {
	IndexArticle(ctx context.Context, doc model.ArticleDocument) error
	DeleteArticle(ctx context.Context, articleID uint) error
}

// Broadcaster 将上线的文章推送给在线订阅者，由 *live.Hub 实现。
type Broadcaster interface {
	Broadcast(msg live.Message)
}

// Indexer 消费文章事件，保持检索索引与数据库一致，并推送新发布的文章。
type Indexer struct {
	articles ArticleLoader
	index    ArticleIndex
	hub      Broadcaster
}

var _ events.Handler = (*Indexer)(nil)

// NewIndexer 创建一个新的 Indexer 实例。index 和 hub 都可以为 nil。
func NewIndexer(articles ArticleLoader, index ArticleIndex, hub Broadcaster) *Indexer {
	return &Indexer{articles: articles, index: index, hub: hub}
}

// Handle 处理一条事件。以数据库中的当前状态为准，不看事件类型。
func (p *Indexer) Handle(ctx context.Context, event events.ArticleEvent) (err error) {
	defer func() {
		metrics.RecordArticleEvent(string(event.Type), err == nil)
	}()
	log.Infof("[Indexer] 开始处理文章事件, type: %s, articleID: %d", event.Type, event.ArticleID)

	article, err := p.articles.GetByID(ctx, event.ArticleID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return p.remove(ctx, event.ArticleID)
		}
		return fmt.Errorf("load article %d: %w", event.ArticleID, err)
	}
	if !article.NewsStatus {
		return p.remove(ctx, event.ArticleID)
	}

	if p.index != nil {
		if err := p.index.IndexArticle(ctx, toDocument(article)); err != nil {
			return fmt.Errorf("index article %d: %w", event.ArticleID, err)
		}
	}
	if p.hub != nil && event.Type != events.ArticleDeleted {
		p.hub.Broadcast(live.Message{Type: live.MessagePublished, Article: article})
	}
	log.Infof("[Indexer] 文章已同步, articleID: %d", event.ArticleID)
	return nil
}

func (p *Indexer) remove(ctx context.Context, articleID uint) error {
	if p.index == nil {
		return nil
	}
	if err := p.index.DeleteArticle(ctx, articleID); err != nil {
		return fmt.Errorf("remove article %d from index: %w", articleID, err)
	}
	log.Infof("[Indexer] 文章已从索引移除, articleID: %d", articleID)
	return nil
}

func toDocument(a *service.NewsArticleResponse) model.ArticleDocument {
	doc := model.ArticleDocument{
		NewsArticleID: a.NewsArticleID,
		Title:         a.NewsTitle,
		Content:       a.NewsContent,
		CategoryID:    a.CategoryID,
		CategoryName:  a.CategoryName,
		CreatedByName: a.CreatedByName,
		Tags:          make([]string, 0, len(a.Tags)),
		NewsStatus:    a.NewsStatus,
		CreatedDate:   time.Time(a.CreatedDate).Format(documentDateFormat),
	}
	if a.Headline != nil {
		doc.Headline = *a.Headline
	}
	for _, t := range a.Tags {
		doc.Tags = append(doc.Tags, t.TagName)
	}
	return doc
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fu-news-go/internal/model"
	"fu-news-go/internal/repository"
	"fu-news-go/pkg/events"
	"fu-news-go/pkg/log"

	"gorm.io/gorm"
)

// NewsService 接口定义了新闻文章相关的业务操作。
type NewsService interface {
	// Create 保存文章及其标签，不存在的标签 ID 会被忽略。
	Create(ctx context.Context, req NewsArticleRequest, creatorID uint) (*NewsArticleResponse, error)
	// Update 覆盖所有可变字段并整体替换标签集合。
	Update(ctx context.Context, articleID uint, req NewsArticleUpdateRequest, updaterID uint) (*NewsArticleResponse, error)
	// Delete 是软删除：文章转为草稿并记录修改时间。文章不存在时返回 false。
	Delete(ctx context.Context, articleID uint) (bool, error)
	ListAll(ctx context.Context) ([]NewsArticleResponse, error)
	// GetActive 只返回已发布文章，按创建时间倒序。
	GetActive(ctx context.Context) ([]NewsArticleResponse, error)
	GetActiveByID(ctx context.Context, articleID uint) (*NewsArticleResponse, error)
	GetByID(ctx context.Context, articleID uint) (*NewsArticleResponse, error)
	Search(ctx context.Context, term string) ([]NewsArticleResponse, error)
	GetByCreator(ctx context.Context, creatorID uint) ([]NewsArticleResponse, error)

	TotalCount(ctx context.Context, from, to *time.Time) (int64, error)
	PublishedCount(ctx context.Context, from, to *time.Time) (int64, error)
	DraftCount(ctx context.Context, from, to *time.Time) (int64, error)
	DistinctAuthorCount(ctx context.Context, from, to *time.Time) (int64, error)
	Counts(ctx context.Context, from, to *time.Time) (*NewsCounts, error)
	// StatisticsByDateRange 返回创建时间落在 [start, end 当天结束] 内的文章。
	StatisticsByDateRange(ctx context.Context, start, end time.Time) ([]NewsArticleStatistic, error)
}

type newsService struct {
	uow       repository.UnitOfWork
	publisher events.Publisher
	now       func() time.Time
}

// NewNewsService 创建一个新的 NewsService 实例。publisher 为 nil 时不发布事件。
func NewNewsService(uow repository.UnitOfWork, publisher events.Publisher) NewsService {
	return newNewsService(uow, publisher, time.Now)
}

func newNewsService(uow repository.UnitOfWork, publisher events.Publisher, now func() time.Time) *newsService {
	if publisher == nil {
		publisher = events.Discard
	}
	return &newsService{uow: uow, publisher: publisher, now: now}
}

func (s *newsService) Create(ctx context.Context, req NewsArticleRequest, creatorID uint) (*NewsArticleResponse, error) {
	if isBlank(req.NewsTitle) || isBlank(req.NewsContent) {
		return nil, validationError(msgInvalidInput)
	}

	article := &model.NewsArticle{
		Title:       req.NewsTitle,
		Headline:    req.Headline,
		Content:     req.NewsContent,
		Source:      req.NewsSource,
		CategoryID:  req.CategoryID,
		Status:      boolOrDefault(req.NewsStatus, true),
		CreatedByID: creatorID,
		CreatedDate: s.now(),
	}
	err := s.uow.Transaction(ctx, func(tx repository.UnitOfWork) error {
		if err := checkReferences(ctx, tx, req.CategoryID, creatorID); err != nil {
			return err
		}
		tags, err := tx.Tags().FindByIDs(ctx, uniqueIDs(req.TagIDs))
		if err != nil {
			return fmt.Errorf("resolve tags: %w", err)
		}
		if err := tx.NewsArticles().Create(ctx, article); err != nil {
			return translateArticleWriteError(err, "create news article")
		}
		if err := tx.NewsArticles().ReplaceTags(ctx, article, tags); err != nil {
			return fmt.Errorf("attach tags: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Infof("[NewsService] 文章创建成功, articleID: %d, creatorID: %d", article.ID, creatorID)
	s.publish(ctx, events.ArticleCreated, article.ID)
	return s.GetByID(ctx, article.ID)
}

func (s *newsService) Update(ctx context.Context, articleID uint, req NewsArticleUpdateRequest, updaterID uint) (*NewsArticleResponse, error) {
	if isBlank(req.NewsTitle) || isBlank(req.NewsContent) {
		return nil, validationError(msgInvalidInput)
	}

	err := s.uow.Transaction(ctx, func(tx repository.UnitOfWork) error {
		article, err := tx.NewsArticles().FindByID(ctx, articleID)
		if err != nil {
			if isRecordNotFound(err) {
				return notFoundError(msgNewsNotFound)
			}
			return fmt.Errorf("find news article: %w", err)
		}
		if err := checkReferences(ctx, tx, req.CategoryID, updaterID); err != nil {
			return err
		}
		tags, err := tx.Tags().FindByIDs(ctx, uniqueIDs(req.TagIDs))
		if err != nil {
			return fmt.Errorf("resolve tags: %w", err)
		}

		modified := s.now()
		article.Title = req.NewsTitle
		article.Headline = req.Headline
		article.Content = req.NewsContent
		article.Source = req.NewsSource
		article.CategoryID = req.CategoryID
		article.Status = req.NewsStatus
		article.UpdatedByID = &updaterID
		article.ModifiedDate = &modified
		if err := tx.NewsArticles().Update(ctx, article); err != nil {
			return translateArticleWriteError(err, "update news article")
		}
		if err := tx.NewsArticles().ReplaceTags(ctx, article, tags); err != nil {
			return fmt.Errorf("replace tags: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.ArticleUpdated, articleID)
	return s.GetByID(ctx, articleID)
}

func (s *newsService) Delete(ctx context.Context, articleID uint) (bool, error) {
	article, err := s.uow.NewsArticles().FindByID(ctx, articleID)
	if err != nil {
		if isRecordNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("find news article: %w", err)
	}

	modified := s.now()
	article.Status = false
	article.ModifiedDate = &modified
	if err := s.uow.NewsArticles().Update(ctx, article); err != nil {
		return false, fmt.Errorf("soft delete news article: %w", err)
	}

	log.Infof("[NewsService] 文章已下线, articleID: %d", articleID)
	s.publish(ctx, events.ArticleDeleted, articleID)
	return true, nil
}

func (s *newsService) find(ctx context.Context, q repository.ArticleQuery) ([]NewsArticleResponse, error) {
	articles, err := s.uow.NewsArticles().Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("find news articles: %w", err)
	}
	return toNewsArticleResponses(articles), nil
}

func (s *newsService) ListAll(ctx context.Context) ([]NewsArticleResponse, error) {
	return s.find(ctx, repository.ArticleQuery{})
}

func (s *newsService) GetActive(ctx context.Context) ([]NewsArticleResponse, error) {
	published := true
	return s.find(ctx, repository.ArticleQuery{Status: &published})
}

func (s *newsService) GetActiveByID(ctx context.Context, articleID uint) (*NewsArticleResponse, error) {
	resp, err := s.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	// 草稿对公开接口不可见
	if !resp.NewsStatus {
		return nil, notFoundError(msgNewsNotFound)
	}
	return resp, nil
}

func (s *newsService) GetByID(ctx context.Context, articleID uint) (*NewsArticleResponse, error) {
	article, err := s.uow.NewsArticles().FindByIDWithDetails(ctx, articleID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, notFoundError(msgNewsNotFound)
		}
		return nil, fmt.Errorf("find news article: %w", err)
	}
	resp := toNewsArticleResponse(article)
	return &resp, nil
}

func (s *newsService) Search(ctx context.Context, term string) ([]NewsArticleResponse, error) {
	return s.find(ctx, repository.ArticleQuery{Term: term})
}

func (s *newsService) GetByCreator(ctx context.Context, creatorID uint) ([]NewsArticleResponse, error) {
	return s.find(ctx, repository.ArticleQuery{CreatedByID: &creatorID})
}

// countQuery 只有起止日期同时提供时才按日期过滤，结束日期扩展到当天结束。
func countQuery(from, to *time.Time) (repository.ArticleQuery, error) {
	if from == nil || to == nil {
		return repository.ArticleQuery{}, nil
	}
	if from.After(*to) {
		return repository.ArticleQuery{}, validationError(msgDateRange)
	}
	start := *from
	end := endOfDay(*to)
	return repository.ArticleQuery{From: &start, To: &end}, nil
}

func (s *newsService) count(ctx context.Context, from, to *time.Time, status *bool) (int64, error) {
	q, err := countQuery(from, to)
	if err != nil {
		return 0, err
	}
	q.Status = status
	total, err := s.uow.NewsArticles().Count(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("count news articles: %w", err)
	}
	return total, nil
}

func (s *newsService) TotalCount(ctx context.Context, from, to *time.Time) (int64, error) {
	return s.count(ctx, from, to, nil)
}

func (s *newsService) PublishedCount(ctx context.Context, from, to *time.Time) (int64, error) {
	published := true
	return s.count(ctx, from, to, &published)
}

func (s *newsService) DraftCount(ctx context.Context, from, to *time.Time) (int64, error) {
	draft := false
	return s.count(ctx, from, to, &draft)
}

func (s *newsService) DistinctAuthorCount(ctx context.Context, from, to *time.Time) (int64, error) {
	q, err := countQuery(from, to)
	if err != nil {
		return 0, err
	}
	total, err := s.uow.NewsArticles().CountDistinctAuthors(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("count authors: %w", err)
	}
	return total, nil
}

func (s *newsService) Counts(ctx context.Context, from, to *time.Time) (*NewsCounts, error) {
	var (
		counts NewsCounts
		err    error
	)
	if counts.TotalArticles, err = s.TotalCount(ctx, from, to); err != nil {
		return nil, err
	}
	if counts.PublishedArticles, err = s.PublishedCount(ctx, from, to); err != nil {
		return nil, err
	}
	if counts.DraftArticles, err = s.DraftCount(ctx, from, to); err != nil {
		return nil, err
	}
	if counts.TotalAuthors, err = s.DistinctAuthorCount(ctx, from, to); err != nil {
		return nil, err
	}
	return &counts, nil
}

func (s *newsService) StatisticsByDateRange(ctx context.Context, start, end time.Time) ([]NewsArticleStatistic, error) {
	if start.After(end) {
		return nil, validationError(msgDateRange)
	}
	to := endOfDay(end)
	articles, err := s.uow.NewsArticles().Find(ctx, repository.ArticleQuery{From: &start, To: &to})
	if err != nil {
		return nil, fmt.Errorf("find news statistics: %w", err)
	}

	out := make([]NewsArticleStatistic, 0, len(articles))
	for i := range articles {
		a := &articles[i]
		out = append(out, NewsArticleStatistic{
			NewsArticleID: a.ID,
			NewsTitle:     a.Title,
			CreatedDate:   model.LocalTime(a.CreatedDate),
			CategoryName:  a.Category.Name,
			CreatedByName: a.CreatedBy.DisplayName(),
			NewsStatus:    a.Status,
		})
	}
	return out, nil
}

// publish 发布文章事件，失败只记录日志，不影响已提交的写入。
func (s *newsService) publish(ctx context.Context, eventType events.ArticleEventType, articleID uint) {
	event := events.ArticleEvent{Type: eventType, ArticleID: articleID, At: s.now()}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Warnf("[NewsService] 发布文章事件失败, type: %s, articleID: %d, error: %v", eventType, articleID, err)
	}
}

// checkReferences 校验分类和操作账号存在，避免写入悬空外键。
func checkReferences(ctx context.Context, tx repository.UnitOfWork, categoryID, accountID uint) error {
	if _, err := tx.Categories().FindByID(ctx, categoryID); err != nil {
		if isRecordNotFound(err) {
			return validationError(msgCategoryNotFound)
		}
		return fmt.Errorf("find category: %w", err)
	}
	if _, err := tx.Accounts().FindByID(ctx, accountID); err != nil {
		if isRecordNotFound(err) {
			return validationError(msgAuthorNotFound)
		}
		return fmt.Errorf("find account: %w", err)
	}
	return nil
}

// translateArticleWriteError 将外键冲突（例如分类在校验后被并发删除）转换为校验错误。
func translateArticleWriteError(err error, action string) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return validationError(msgCategoryNotFound)
	}
	return fmt.Errorf("%s: %w", action, err)
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

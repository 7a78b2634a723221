package repository

import (
	"context"
	"time"

	"fu-news-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ArticleQuery 描述了文章列表与计数的过滤条件，零值表示不过滤。
type ArticleQuery struct {
	Status      *bool
	CreatedByID *uint
	// Term 在标题、摘要和正文中做模糊匹配。
	Term string
	// From/To 是创建时间的闭区间。
	From *time.Time
	To   *time.Time
}

// NewsArticleRepository 接口定义了新闻文章的数据操作方法。
type NewsArticleRepository interface {
	// Create 和 Update 只写入文章本身，标签关联通过 ReplaceTags 维护。
	Create(ctx context.Context, article *model.NewsArticle) error
	Update(ctx context.Context, article *model.NewsArticle) error
	ReplaceTags(ctx context.Context, article *model.NewsArticle, tags []model.Tag) error
	FindByID(ctx context.Context, articleID uint) (*model.NewsArticle, error)
	// FindByIDWithDetails 预加载分类、作者、最后修改者和标签。
	FindByIDWithDetails(ctx context.Context, articleID uint) (*model.NewsArticle, error)
	// Find 返回带完整关联的文章，按创建时间倒序。
	Find(ctx context.Context, q ArticleQuery) ([]model.NewsArticle, error)
	Count(ctx context.Context, q ArticleQuery) (int64, error)
	CountDistinctAuthors(ctx context.Context, q ArticleQuery) (int64, error)
	ExistsByCategory(ctx context.Context, categoryID uint) (bool, error)
	ExistsByCreator(ctx context.Context, accountID uint) (bool, error)
	// ClearUpdater 将指定账号作为最后修改者的引用置空。
	ClearUpdater(ctx context.Context, accountID uint) error
}

type newsArticleRepository struct {
	db *gorm.DB
}

// NewNewsArticleRepository 创建一个新的 NewsArticleRepository 实例。
func NewNewsArticleRepository(db *gorm.DB) NewsArticleRepository {
	return &newsArticleRepository{db: db}
}

func (r *newsArticleRepository) Create(ctx context.Context, article *model.NewsArticle) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(article).Error
}

func (r *newsArticleRepository) Update(ctx context.Context, article *model.NewsArticle) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(article).Error
}

// ReplaceTags 清空旧的标签关联并写入新集合，不会改动标签表本身。
func (r *newsArticleRepository) ReplaceTags(ctx context.Context, article *model.NewsArticle, tags []model.Tag) error {
	assoc := r.db.WithContext(ctx).Model(article).Omit("Tags.*").Association("Tags")
	if len(tags) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(tags)
}

func (r *newsArticleRepository) FindByID(ctx context.Context, articleID uint) (*model.NewsArticle, error) {
	var article model.NewsArticle
	err := r.db.WithContext(ctx).First(&article, articleID).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *newsArticleRepository) FindByIDWithDetails(ctx context.Context, articleID uint) (*model.NewsArticle, error) {
	var article model.NewsArticle
	err := r.withDetails(ctx).First(&article, articleID).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *newsArticleRepository) Find(ctx context.Context, q ArticleQuery) ([]model.NewsArticle, error) {
	var articles []model.NewsArticle
	err := applyArticleQuery(r.withDetails(ctx), q).
		Order("created_date DESC").
		Find(&articles).Error
	return articles, err
}

func (r *newsArticleRepository) Count(ctx context.Context, q ArticleQuery) (int64, error) {
	var total int64
	err := applyArticleQuery(r.db.WithContext(ctx).Model(&model.NewsArticle{}), q).Count(&total).Error
	return total, err
}

func (r *newsArticleRepository) CountDistinctAuthors(ctx context.Context, q ArticleQuery) (int64, error) {
	var total int64
	err := applyArticleQuery(r.db.WithContext(ctx).Model(&model.NewsArticle{}), q).
		Distinct("created_by_id").
		Count(&total).Error
	return total, err
}

func (r *newsArticleRepository) ExistsByCategory(ctx context.Context, categoryID uint) (bool, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.NewsArticle{}).Where("category_id = ?", categoryID).Count(&total).Error
	return total > 0, err
}

func (r *newsArticleRepository) ExistsByCreator(ctx context.Context, accountID uint) (bool, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.NewsArticle{}).Where("created_by_id = ?", accountID).Count(&total).Error
	return total > 0, err
}

func (r *newsArticleRepository) ClearUpdater(ctx context.Context, accountID uint) error {
	return r.db.WithContext(ctx).Model(&model.NewsArticle{}).
		Where("updated_by_id = ?", accountID).
		Update("updated_by_id", nil).Error
}

func (r *newsArticleRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Category").
		Preload("CreatedBy").
		Preload("UpdatedBy").
		Preload("Tags")
}

func applyArticleQuery(db *gorm.DB, q ArticleQuery) *gorm.DB {
	if q.Status != nil {
		db = db.Where("news_status = ?", *q.Status)
	}
	if q.CreatedByID != nil {
		db = db.Where("created_by_id = ?", *q.CreatedByID)
	}
	if q.Term != "" {
		like := "%" + q.Term + "%"
		db = db.Where("(news_title LIKE ? OR headline LIKE ? OR news_content LIKE ?)", like, like, like)
	}
	if q.From != nil {
		db = db.Where("created_date >= ?", *q.From)
	}
	if q.To != nil {
		db = db.Where("created_date <= ?", *q.To)
	}
	return db
}

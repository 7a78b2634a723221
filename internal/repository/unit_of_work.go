package repository

import (
	"context"

	"gorm.io/gorm"
)

// UnitOfWork 聚合了所有仓储，并提供一个事务边界。
// 在 Transaction 回调中拿到的 UnitOfWork 上的所有操作共享同一个事务。
type UnitOfWork interface {
	Accounts() AccountRepository
	Categories() CategoryRepository
	Tags() TagRepository
	NewsArticles() NewsArticleRepository
	// Transaction 在事务中执行 fn，fn 返回错误时回滚。
	Transaction(ctx context.Context, fn func(tx UnitOfWork) error) error
}

type gormUnitOfWork struct {
	db           *gorm.DB
	accounts     AccountRepository
	categories   CategoryRepository
	tags         TagRepository
	newsArticles NewsArticleRepository
}

// NewUnitOfWork 基于一个 gorm 连接创建 UnitOfWork。
func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{
		db:           db,
		accounts:     NewAccountRepository(db),
		categories:   NewCategoryRepository(db),
		tags:         NewTagRepository(db),
		newsArticles: NewNewsArticleRepository(db),
	}
}

func (u *gormUnitOfWork) Accounts() AccountRepository         { return u.accounts }
func (u *gormUnitOfWork) Categories() CategoryRepository      { return u.categories }
func (u *gormUnitOfWork) Tags() TagRepository                 { return u.tags }
func (u *gormUnitOfWork) NewsArticles() NewsArticleRepository { return u.newsArticles }

func (u *gormUnitOfWork) Transaction(ctx context.Context, fn func(tx UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewUnitOfWork(tx))
	})
}

// Package repository 定义了与数据库进行数据交换的接口和实现。
package repository

import (
	"context"

	"fu-news-go/internal/model"

	"gorm.io/gorm"
)

// AccountRepository 接口定义了账号数据的持久化操作。
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	Update(ctx context.Context, account *model.Account) error
	Delete(ctx context.Context, accountID uint) error
	FindByID(ctx context.Context, accountID uint) (*model.Account, error)
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	FindAll(ctx context.Context) ([]model.Account, error)
	// Search 按名称或邮箱进行模糊匹配，term 为空时等价于 FindAll。
	Search(ctx context.Context, term string) ([]model.Account, error)
	Count(ctx context.Context) (int64, error)
}

// accountRepository 是 AccountRepository 接口的 GORM 实现。
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository 创建一个新的 AccountRepository 实例。
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create 在数据库中创建一个新的账号记录。
func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// Update 更新数据库中一个已存在的账号记录。
func (r *accountRepository) Update(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// Delete 根据账号 ID 删除记录。
func (r *accountRepository) Delete(ctx context.Context, accountID uint) error {
	return r.db.WithContext(ctx).Delete(&model.Account{}, accountID).Error
}

// FindByID 根据账号 ID 查找一个账号，不存在时返回 gorm.ErrRecordNotFound。
func (r *accountRepository) FindByID(ctx context.Context, accountID uint) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).First(&account, accountID).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByEmail 根据邮箱精确查找一个账号。
func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).Where("account_email = ?", email).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// FindAll 从数据库中检索所有账号记录。
func (r *accountRepository) FindAll(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	err := r.db.WithContext(ctx).Order("account_id").Find(&accounts).Error
	return accounts, err
}

func (r *accountRepository) Search(ctx context.Context, term string) ([]model.Account, error) {
	if term == "" {
		return r.FindAll(ctx)
	}
	var accounts []model.Account
	like := "%" + term + "%"
	err := r.db.WithContext(ctx).
		Where("account_name LIKE ? OR account_email LIKE ?", like, like).
		Order("account_id").
		Find(&accounts).Error
	return accounts, err
}

// Count 返回账号总数。
func (r *accountRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Account{}).Count(&total).Error
	return total, err
}

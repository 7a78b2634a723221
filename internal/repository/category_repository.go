// Package repository 包含了所有与数据库交互的逻辑。
package repository

import (
	"context"

	"fu-news-go/internal/model"

	"gorm.io/gorm"
)

// CategoryRepository 接口定义了新闻分类的数据操作方法。
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, categoryID uint) error
	// FindByID 返回分类及其父分类，父分类仅用于展示名称。
	FindByID(ctx context.Context, categoryID uint) (*model.Category, error)
	FindAll(ctx context.Context) ([]model.Category, error)
	FindActive(ctx context.Context) ([]model.Category, error)
	Search(ctx context.Context, term string) ([]model.Category, error)
	Count(ctx context.Context) (int64, error)
	// DetachChildren 将所有直接子分类的父分类置空。
	DetachChildren(ctx context.Context, parentID uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建一个新的 CategoryRepository 实例。
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create 在数据库中插入一个新的分类记录。
func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Omit("Parent").Create(category).Error
}

// Update 更新数据库中一个已存在的分类记录。
func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Omit("Parent").Save(category).Error
}

// Delete 根据给定的 categoryID 删除一个分类记录。
func (r *categoryRepository) Delete(ctx context.Context, categoryID uint) error {
	return r.db.WithContext(ctx).Delete(&model.Category{}, categoryID).Error
}

func (r *categoryRepository) FindByID(ctx context.Context, categoryID uint) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).Preload("Parent").First(&category, categoryID).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindAll 从数据库中检索所有的分类记录。
func (r *categoryRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Preload("Parent").Order("category_id").Find(&categories).Error
	return categories, err
}

// FindActive 只返回启用状态的分类。
func (r *categoryRepository) FindActive(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Preload("Parent").
		Where("is_active = ?", true).
		Order("category_id").
		Find(&categories).Error
	return categories, err
}

// Search 按名称或描述模糊匹配，term 为空时返回全部分类。
func (r *categoryRepository) Search(ctx context.Context, term string) ([]model.Category, error) {
	if term == "" {
		return r.FindAll(ctx)
	}
	var categories []model.Category
	like := "%" + term + "%"
	err := r.db.WithContext(ctx).Preload("Parent").
		Where("category_name LIKE ? OR category_description LIKE ?", like, like).
		Order("category_id").
		Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).Count(&total).Error
	return total, err
}

func (r *categoryRepository) DetachChildren(ctx context.Context, parentID uint) error {
	return r.db.WithContext(ctx).Model(&model.Category{}).
		Where("parent_category_id = ?", parentID).
		Update("parent_category_id", nil).Error
}

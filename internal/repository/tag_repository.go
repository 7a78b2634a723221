package repository

import (
	"context"

	"fu-news-go/internal/model"

	"gorm.io/gorm"
)

// TagRepository 接口定义了标签的数据操作方法。
type TagRepository interface {
	Create(ctx context.Context, tag *model.Tag) error
	Update(ctx context.Context, tag *model.Tag) error
	Delete(ctx context.Context, tagID uint) error
	FindByID(ctx context.Context, tagID uint) (*model.Tag, error)
	// FindByName 按名称精确匹配（区分大小写）。
	FindByName(ctx context.Context, name string) (*model.Tag, error)
	// FindByIDs 返回存在的标签，不存在的 ID 会被忽略。
	FindByIDs(ctx context.Context, tagIDs []uint) ([]model.Tag, error)
	FindAll(ctx context.Context) ([]model.Tag, error)
	Count(ctx context.Context) (int64, error)
	// IsUsed 判断是否有文章仍关联该标签。
	IsUsed(ctx context.Context, tagID uint) (bool, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository 创建一个新的 TagRepository 实例。
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepository) Update(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

func (r *tagRepository) Delete(ctx context.Context, tagID uint) error {
	return r.db.WithContext(ctx).Delete(&model.Tag{}, tagID).Error
}

func (r *tagRepository) FindByID(ctx context.Context, tagID uint) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.WithContext(ctx).First(&tag, tagID).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) FindByName(ctx context.Context, name string) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.WithContext(ctx).Where("tag_name = ?", name).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindByIDs finds tags by a slice of IDs.
func (r *tagRepository) FindByIDs(ctx context.Context, tagIDs []uint) ([]model.Tag, error) {
	var tags []model.Tag
	if len(tagIDs) == 0 {
		return tags, nil
	}
	err := r.db.WithContext(ctx).Where("tag_id IN ?", tagIDs).Find(&tags).Error
	return tags, err
}

func (r *tagRepository) FindAll(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.WithContext(ctx).Order("tag_id").Find(&tags).Error
	return tags, err
}

func (r *tagRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Tag{}).Count(&total).Error
	return total, err
}

func (r *tagRepository) IsUsed(ctx context.Context, tagID uint) (bool, error) {
	var total int64
	err := r.db.WithContext(ctx).Table("news_tags").Where("tag_id = ?", tagID).Count(&total).Error
	return total > 0, err
}

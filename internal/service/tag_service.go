package service

import (
	"context"
	"errors"
	"fmt"

	"fu-news-go/internal/model"
	"fu-news-go/internal/repository"
	"fu-news-go/pkg/log"

	"gorm.io/gorm"
)

// TagService 接口定义了标签管理相关的业务操作。
type TagService interface {
	List(ctx context.Context) ([]TagResponse, error)
	GetByID(ctx context.Context, tagID uint) (*TagResponse, error)
	Create(ctx context.Context, req TagRequest) (*TagResponse, error)
	Update(ctx context.Context, tagID uint, req TagRequest) (*TagResponse, error)
	// Delete 标签不存在时返回 false，仍被文章使用时返回 Conflict。
	Delete(ctx context.Context, tagID uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type tagService struct {
	uow repository.UnitOfWork
}

// NewTagService 创建一个新的 TagService 实例。
func NewTagService(uow repository.UnitOfWork) TagService {
	return &tagService{uow: uow}
}

func (s *tagService) List(ctx context.Context) ([]TagResponse, error) {
	tags, err := s.uow.Tags().FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return toTagResponses(tags), nil
}

func (s *tagService) GetByID(ctx context.Context, tagID uint) (*TagResponse, error) {
	tag, err := s.uow.Tags().FindByID(ctx, tagID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, notFoundError(msgTagNotFound)
		}
		return nil, fmt.Errorf("find tag: %w", err)
	}
	resp := toTagResponse(tag)
	return &resp, nil
}

// Create 创建标签，名称（区分大小写）已存在时返回 Conflict。
func (s *tagService) Create(ctx context.Context, req TagRequest) (*TagResponse, error) {
	if isBlank(req.TagName) {
		return nil, validationError(msgInvalidInput)
	}
	if err := s.ensureNameFree(ctx, req.TagName, 0); err != nil {
		return nil, err
	}

	tag := &model.Tag{Name: req.TagName, Note: req.Note}
	if err := s.uow.Tags().Create(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflictError(msgTagNameTaken)
		}
		return nil, fmt.Errorf("create tag: %w", err)
	}
	log.Infof("[TagService] 标签创建成功, tagID: %d", tag.ID)
	resp := toTagResponse(tag)
	return &resp, nil
}

// Update 重命名为自身当前名称是允许的，与其他标签重名时返回 Conflict。
func (s *tagService) Update(ctx context.Context, tagID uint, req TagRequest) (*TagResponse, error) {
	if isBlank(req.TagName) {
		return nil, validationError(msgInvalidInput)
	}
	tag, err := s.uow.Tags().FindByID(ctx, tagID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, notFoundError(msgTagNotFound)
		}
		return nil, fmt.Errorf("find tag: %w", err)
	}
	if err := s.ensureNameFree(ctx, req.TagName, tagID); err != nil {
		return nil, err
	}

	tag.Name = req.TagName
	tag.Note = req.Note
	if err := s.uow.Tags().Update(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflictError(msgTagNameTaken)
		}
		return nil, fmt.Errorf("update tag: %w", err)
	}
	resp := toTagResponse(tag)
	return &resp, nil
}

// ensureNameFree 检查名称是否被 selfID 以外的标签占用。
func (s *tagService) ensureNameFree(ctx context.Context, name string, selfID uint) error {
	existing, err := s.uow.Tags().FindByName(ctx, name)
	if err != nil {
		if isRecordNotFound(err) {
			return nil
		}
		return fmt.Errorf("find tag by name: %w", err)
	}
	if existing.ID != selfID {
		return conflictError(msgTagNameTaken)
	}
	return nil
}

func (s *tagService) Delete(ctx context.Context, tagID uint) (bool, error) {
	deleted := false
	err := s.uow.Transaction(ctx, func(tx repository.UnitOfWork) error {
		if _, err := tx.Tags().FindByID(ctx, tagID); err != nil {
			if isRecordNotFound(err) {
				return nil
			}
			return fmt.Errorf("find tag: %w", err)
		}
		used, err := tx.Tags().IsUsed(ctx, tagID)
		if err != nil {
			return fmt.Errorf("check tag usage: %w", err)
		}
		if used {
			return conflictError(msgTagInUse)
		}
		if err := tx.Tags().Delete(ctx, tagID); err != nil {
			return fmt.Errorf("delete tag: %w", err)
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

func (s *tagService) Count(ctx context.Context) (int64, error) {
	total, err := s.uow.Tags().Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count tags: %w", err)
	}
	return total, nil
}

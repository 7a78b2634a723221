package service

import (
	"context"
	"fmt"

	"fu-news-go/internal/model"
	"fu-news-go/internal/repository"
	"fu-news-go/pkg/log"
)

// maxCategoryDepth 限制了沿父链向上查找的层数。
const maxCategoryDepth = 32

// CategoryService 接口定义了分类管理相关的业务操作。
type CategoryService interface {
	List(ctx context.Context) ([]CategoryResponse, error)
	GetActive(ctx context.Context) ([]CategoryResponse, error)
	GetByID(ctx context.Context, categoryID uint) (*CategoryResponse, error)
	Search(ctx context.Context, term string) ([]CategoryResponse, error)
	Create(ctx context.Context, req CategoryRequest) (*CategoryResponse, error)
	Update(ctx context.Context, categoryID uint, req CategoryRequest) (*CategoryResponse, error)
	// Delete 分类不存在时返回 false，仍被文章引用时返回 Conflict。
	Delete(ctx context.Context, categoryID uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type categoryService struct {
	uow repository.UnitOfWork
}

// NewCategoryService 创建一个新的 CategoryService 实例。
func NewCategoryService(uow repository.UnitOfWork) CategoryService {
	return &categoryService{uow: uow}
}

func (s *categoryService) List(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.uow.Categories().FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return toCategoryResponses(categories), nil
}

func (s *categoryService) GetActive(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.uow.Categories().FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active categories: %w", err)
	}
	return toCategoryResponses(categories), nil
}

func (s *categoryService) GetByID(ctx context.Context, categoryID uint) (*CategoryResponse, error) {
	category, err := s.uow.Categories().FindByID(ctx, categoryID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, notFoundError(msgCategoryNotFound)
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	resp := toCategoryResponse(category)
	return &resp, nil
}

func (s *categoryService) Search(ctx context.Context, term string) ([]CategoryResponse, error) {
	categories, err := s.uow.Categories().Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search categories: %w", err)
	}
	return toCategoryResponses(categories), nil
}

// Create 创建分类，分类名称不要求唯一。
func (s *categoryService) Create(ctx context.Context, req CategoryRequest) (*CategoryResponse, error) {
	if isBlank(req.CategoryName) {
		return nil, validationError(msgInvalidInput)
	}
	if err := s.validateParent(ctx, 0, req.ParentCategoryID); err != nil {
		return nil, err
	}

	category := &model.Category{
		Name:        req.CategoryName,
		Description: req.CategoryDescription,
		ParentID:    req.ParentCategoryID,
		IsActive:    boolOrDefault(req.IsActive, true),
	}
	if err := s.uow.Categories().Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	log.Infof("[CategoryService] 分类创建成功, categoryID: %d", category.ID)
	return s.GetByID(ctx, category.ID)
}

func (s *categoryService) Update(ctx context.Context, categoryID uint, req CategoryRequest) (*CategoryResponse, error) {
	if isBlank(req.CategoryName) {
		return nil, validationError(msgInvalidInput)
	}
	category, err := s.uow.Categories().FindByID(ctx, categoryID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, notFoundError(msgCategoryNotFound)
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	if err := s.validateParent(ctx, categoryID, req.ParentCategoryID); err != nil {
		return nil, err
	}

	category.Name = req.CategoryName
	category.Description = req.CategoryDescription
	category.ParentID = req.ParentCategoryID
	category.Parent = nil
	category.IsActive = boolOrDefault(req.IsActive, true)
	if err := s.uow.Categories().Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return s.GetByID(ctx, categoryID)
}

// validateParent 保证分类树中不出现环：父分类必须存在，且沿父链向上不能回到自身。
// selfID 为 0 表示正在创建新分类。
func (s *categoryService) validateParent(ctx context.Context, selfID uint, parentID *uint) error {
	if parentID == nil {
		return nil
	}
	if selfID != 0 && *parentID == selfID {
		return validationError(msgParentIsSelf)
	}

	current := parentID
	for depth := 0; current != nil; depth++ {
		if depth >= maxCategoryDepth {
			return validationError(msgCategoryTooDeep)
		}
		ancestor, err := s.uow.Categories().FindByID(ctx, *current)
		if err != nil {
			if isRecordNotFound(err) {
				if depth == 0 {
					return validationError(msgParentNotFound)
				}
				// 父链中断，视为到达根节点
				return nil
			}
			return fmt.Errorf("walk category ancestors: %w", err)
		}
		if selfID != 0 && ancestor.ID == selfID {
			return validationError(msgCategoryCycle)
		}
		current = ancestor.ParentID
	}
	return nil
}

// Delete 删除未被文章引用的分类，其直接子分类变为顶级分类。
func (s *categoryService) Delete(ctx context.Context, categoryID uint) (bool, error) {
	deleted := false
	err := s.uow.Transaction(ctx, func(tx repository.UnitOfWork) error {
		if _, err := tx.Categories().FindByID(ctx, categoryID); err != nil {
			if isRecordNotFound(err) {
				return nil
			}
			return fmt.Errorf("find category: %w", err)
		}
		used, err := tx.NewsArticles().ExistsByCategory(ctx, categoryID)
		if err != nil {
			return fmt.Errorf("check category articles: %w", err)
		}
		if used {
			return conflictError(msgCategoryHasArticles)
		}
		if err := tx.Categories().DetachChildren(ctx, categoryID); err != nil {
			return fmt.Errorf("detach child categories: %w", err)
		}
		if err := tx.Categories().Delete(ctx, categoryID); err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if deleted {
		log.Infof("[CategoryService] 分类已删除, categoryID: %d", categoryID)
	}
	return deleted, nil
}

func (s *categoryService) Count(ctx context.Context) (int64, error) {
	total, err := s.uow.Categories().Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return total, nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"fu-news-go/internal/model"
	"fu-news-go/internal/repository"
	"fu-news-go/pkg/hash"
	"fu-news-go/pkg/log"

	"gorm.io/gorm"
)

// AccountService 接口定义了账号管理相关的业务操作。
type AccountService interface {
	List(ctx context.Context) ([]AccountResponse, error)
	GetByID(ctx context.Context, accountID uint) (*AccountResponse, error)
	// Search 按名称或邮箱搜索，term 为空时返回全部账号。
	Search(ctx context.Context, term string) ([]AccountResponse, error)
	Create(ctx context.Context, req AccountRequest) (*AccountResponse, error)
	Update(ctx context.Context, accountID uint, req AccountUpdateRequest) (*AccountResponse, error)
	// Delete 账号不存在时返回 false 且不报错。
	Delete(ctx context.Context, accountID uint) (bool, error)
	// Profile 返回调用者本人的投影，内置管理员同样适用。
	Profile(ctx context.Context, accountID uint) (*AccountResponse, error)
	// UpdateProfile 只能修改名称和密码，角色与启用状态保持不变。
	UpdateProfile(ctx context.Context, accountID uint, req ProfileUpdateRequest) (*AccountResponse, error)
	Count(ctx context.Context) (int64, error)
}

type accountService struct {
	uow   repository.UnitOfWork
	admin *BootstrapAdmin
}

// NewAccountService 创建一个新的 AccountService 实例。
func NewAccountService(uow repository.UnitOfWork, admin *BootstrapAdmin) AccountService {
	return &accountService{uow: uow, admin: admin}
}

func (s *accountService) List(ctx context.Context) ([]AccountResponse, error) {
	accounts, err := s.uow.Accounts().FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return toAccountResponses(accounts), nil
}

func (s *accountService) GetByID(ctx context.Context, accountID uint) (*AccountResponse, error) {
	account, err := s.uow.Accounts().FindByID(ctx, accountID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, notFoundError(msgAccountNotFound)
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	resp := toAccountResponse(account)
	return &resp, nil
}

func (s *accountService) Search(ctx context.Context, term string) ([]AccountResponse, error) {
	accounts, err := s.uow.Accounts().Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search accounts: %w", err)
	}
	return toAccountResponses(accounts), nil
}

// Create 创建账号，邮箱已被占用时返回 Conflict。
func (s *accountService) Create(ctx context.Context, req AccountRequest) (*AccountResponse, error) {
	if isBlank(req.AccountEmail) || isBlank(req.AccountPassword) {
		return nil, validationError(msgInvalidInput)
	}
	if !req.AccountRole.Valid() {
		return nil, validationError(msgInvalidRole)
	}

	_, err := s.uow.Accounts().FindByEmail(ctx, req.AccountEmail)
	if err == nil {
		return nil, conflictError(msgEmailTaken)
	}
	if !isRecordNotFound(err) {
		return nil, fmt.Errorf("find account by email: %w", err)
	}

	hashed, err := hash.HashPassword(req.AccountPassword)
	if err != nil {
		return nil, err
	}
	name := req.AccountName
	account := &model.Account{
		Name:     &name,
		Email:    req.AccountEmail,
		Password: hashed,
		Role:     req.AccountRole,
		IsActive: boolOrDefault(req.IsActive, true),
	}
	if err := s.uow.Accounts().Create(ctx, account); err != nil {
		// 并发创建时由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflictError(msgEmailTaken)
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	log.Infof("[AccountService] 账号创建成功, accountID: %d, role: %s", account.ID, account.Role)
	resp := toAccountResponse(account)
	return &resp, nil
}

// Update 覆盖名称、角色和启用状态，密码仅在提供了非空新密码时更新。
func (s *accountService) Update(ctx context.Context, accountID uint, req AccountUpdateRequest) (*AccountResponse, error) {
	if !req.AccountRole.Valid() {
		return nil, validationError(msgInvalidRole)
	}
	account, err := s.uow.Accounts().FindByID(ctx, accountID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, notFoundError(msgAccountNotFound)
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	name := req.AccountName
	account.Name = &name
	account.Role = req.AccountRole
	account.IsActive = req.IsActive
	if err := applyPassword(account, req.AccountPassword); err != nil {
		return nil, err
	}
	if err := s.uow.Accounts().Update(ctx, account); err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}

	resp := toAccountResponse(account)
	return &resp, nil
}

// Delete 删除没有撰写过文章的账号，并清理其作为最后修改者的引用。
func (s *accountService) Delete(ctx context.Context, accountID uint) (bool, error) {
	deleted := false
	err := s.uow.Transaction(ctx, func(tx repository.UnitOfWork) error {
		if _, err := tx.Accounts().FindByID(ctx, accountID); err != nil {
			if isRecordNotFound(err) {
				return nil
			}
			return fmt.Errorf("find account: %w", err)
		}
		authored, err := tx.NewsArticles().ExistsByCreator(ctx, accountID)
		if err != nil {
			return fmt.Errorf("check authored articles: %w", err)
		}
		if authored {
			return conflictError(msgAccountHasArticles)
		}
		if err := tx.NewsArticles().ClearUpdater(ctx, accountID); err != nil {
			return fmt.Errorf("clear updater references: %w", err)
		}
		if err := tx.Accounts().Delete(ctx, accountID); err != nil {
			return fmt.Errorf("delete account: %w", err)
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if deleted {
		log.Infof("[AccountService] 账号已删除, accountID: %d", accountID)
	}
	return deleted, nil
}

func (s *accountService) Profile(ctx context.Context, accountID uint) (*AccountResponse, error) {
	if accountID == model.BootstrapAdminID && s.admin != nil {
		admin := s.admin.Account()
		resp := toAccountResponse(&admin)
		return &resp, nil
	}
	return s.GetByID(ctx, accountID)
}

func (s *accountService) UpdateProfile(ctx context.Context, accountID uint, req ProfileUpdateRequest) (*AccountResponse, error) {
	account, err := s.uow.Accounts().FindByID(ctx, accountID)
	if err != nil {
		// 内置管理员没有库内记录，同样走 NotFound
		if isRecordNotFound(err) {
			return nil, notFoundError(msgAccountNotFound)
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	name := req.AccountName
	account.Name = &name
	if err := applyPassword(account, req.AccountPassword); err != nil {
		return nil, err
	}
	if err := s.uow.Accounts().Update(ctx, account); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	resp := toAccountResponse(account)
	return &resp, nil
}

func (s *accountService) Count(ctx context.Context) (int64, error) {
	total, err := s.uow.Accounts().Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return total, nil
}

// applyPassword 在 password 非空时替换账号密码哈希。
func applyPassword(account *model.Account, password *string) error {
	if password == nil || isBlank(*password) {
		return nil
	}
	hashed, err := hash.HashPassword(*password)
	if err != nil {
		return err
	}
	account.Password = hashed
	return nil
}

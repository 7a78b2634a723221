// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"errors"
	"fmt"

	"fu-news-go/internal/config"
	"fu-news-go/internal/model"
	"fu-news-go/internal/repository"
	"fu-news-go/pkg/hash"
	"fu-news-go/pkg/log"
	"fu-news-go/pkg/token"
)

// BootstrapAdmin 是由配置定义、不落库的内置管理员，在进程启动时物化一次。
type BootstrapAdmin struct {
	account model.Account
}

// NewBootstrapAdmin 根据配置物化内置管理员，Email 为空时返回 nil 表示不启用。
func NewBootstrapAdmin(cfg config.BootstrapAdminConfig) (*BootstrapAdmin, error) {
	if cfg.Email == "" {
		return nil, nil
	}
	role := model.Role(cfg.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("bootstrap admin role %d is invalid", cfg.Role)
	}
	hashed, err := hash.HashPassword(cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("hash bootstrap admin password: %w", err)
	}
	name := cfg.Name
	if name == "" {
		name = "Administrator"
	}
	return &BootstrapAdmin{account: model.Account{
		ID:       model.BootstrapAdminID,
		Name:     &name,
		Email:    cfg.Email,
		Password: hashed,
		Role:     role,
		IsActive: true,
	}}, nil
}

// Account 返回内置管理员账号的副本。
func (b *BootstrapAdmin) Account() model.Account {
	return b.account
}

// matches 邮箱与存储账号一样精确匹配（utf8mb4_bin），并校验密码。
func (b *BootstrapAdmin) matches(email, password string) bool {
	if b == nil {
		return false
	}
	return email == b.account.Email && hash.CheckPasswordHash(password, b.account.Password)
}

// AuthService 接口定义了认证相关的业务操作。
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	Logout(ctx context.Context, claims *token.CustomClaims) error
}

type authService struct {
	uow        repository.UnitOfWork
	admin      *BootstrapAdmin
	jwtManager *token.JWTManager
	blacklist  repository.TokenBlacklist
}

// NewAuthService 创建一个新的 AuthService 实例，admin 可以为 nil。
func NewAuthService(uow repository.UnitOfWork, admin *BootstrapAdmin, jwtManager *token.JWTManager, blacklist repository.TokenBlacklist) AuthService {
	return &authService{
		uow:        uow,
		admin:      admin,
		jwtManager: jwtManager,
		blacklist:  blacklist,
	}
}

// Login 先匹配内置管理员，再查询账号库。凭证错误统一返回 ErrInvalidCredentials。
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	account, err := s.resolve(ctx, email, password)
	if err != nil {
		return nil, err
	}

	displayName := account.DisplayName()
	tokenString, err := s.jwtManager.GenerateToken(account.ID, displayName, account.Email, int(account.Role))
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	log.Infof("[AuthService] 账号登录成功, accountID: %d, role: %s", account.ID, account.Role)
	return &LoginResponse{
		AccountID:    account.ID,
		AccountName:  displayName,
		AccountEmail: account.Email,
		AccountRole:  account.Role,
		Token:        tokenString,
	}, nil
}

// resolve 将凭证解析为内置管理员或数据库中的账号。
// 内置管理员密码错误时继续查询账号库。
func (s *authService) resolve(ctx context.Context, email, password string) (*model.Account, error) {
	if s.admin.matches(email, password) {
		admin := s.admin.Account()
		return &admin, nil
	}

	account, err := s.uow.Accounts().FindByEmail(ctx, email)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	if !hash.CheckPasswordHash(password, account.Password) || !account.IsActive {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

// Logout 将 token 的 jti 加入黑名单，直到 token 自然过期。
func (s *authService) Logout(ctx context.Context, claims *token.CustomClaims) error {
	if claims == nil || claims.ID == "" {
		return errors.New("token has no id")
	}
	if err := s.blacklist.Add(ctx, claims.ID, s.jwtManager.RemainingTTL(claims)); err != nil {
		return err
	}
	log.Infof("[AuthService] 账号已登出, accountID: %d", claims.AccountID)
	return nil
}

// Package model 定义了与数据库表对应的 Go 结构体。
package model

import "strings"

// Role 是账号角色，数值与前端及 token 中的 role 声明保持一致。
type Role int

const (
	RoleStaff    Role = 1
	RoleLecturer Role = 2
	RoleAdmin    Role = 3
)

// Valid 判断角色是否为已知取值。
func (r Role) Valid() bool {
	return r == RoleStaff || r == RoleLecturer || r == RoleAdmin
}

func (r Role) String() string {
	switch r {
	case RoleStaff:
		return "Staff"
	case RoleLecturer:
		return "Lecturer"
	case RoleAdmin:
		return "Admin"
	default:
		return "Unknown"
	}
}

// BootstrapAdminID 是内置管理员的固定 ID，数据库自增主键从 1 开始，不会与之冲突。
const BootstrapAdminID uint = 0

// Account 对应于数据库中的 'system_accounts' 表。
type Account struct {
	ID uint `gorm:"primaryKey;autoIncrement;column:account_id"`
	// Name 可以为空，展示时回退为 Email。
	Name     *string `gorm:"type:varchar(100);column:account_name"`
	Email    string  `gorm:"type:varchar(255) COLLATE utf8mb4_bin;uniqueIndex;not null;column:account_email"`
	Password string  `gorm:"type:varchar(255);not null;column:account_password"`
	Role     Role    `gorm:"type:int;not null;column:account_role"`
	// 布尔列不设置 gorm default，否则 false 会在插入时被默认值覆盖。
	IsActive bool `gorm:"not null;column:is_active"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Account) TableName() string {
	return "system_accounts"
}

// DisplayName 返回账号的展示名称：优先使用 Name，为空时回退为 Email。
func (a *Account) DisplayName() string {
	if a == nil {
		return ""
	}
	if a.Name != nil && strings.TrimSpace(*a.Name) != "" {
		return *a.Name
	}
	return a.Email
}

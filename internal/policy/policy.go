// Package policy 集中定义每个业务操作允许的角色。
package policy

import (
	"fmt"

	"fu-news-go/internal/model"
)

// Operation 是一个受授权控制的业务操作。
type Operation string

const (
	AuthLogin  Operation = "auth.login"
	AuthLogout Operation = "auth.logout"

	AccountList          Operation = "account.list"
	AccountGet           Operation = "account.get"
	AccountSearch        Operation = "account.search"
	AccountCreate        Operation = "account.create"
	AccountUpdate        Operation = "account.update"
	AccountDelete        Operation = "account.delete"
	AccountCount         Operation = "account.count"
	AccountProfileGet    Operation = "account.profile.get"
	AccountProfileUpdate Operation = "account.profile.update"

	CategoryList   Operation = "category.list"
	CategoryActive Operation = "category.active"
	CategoryGet    Operation = "category.get"
	CategorySearch Operation = "category.search"
	CategoryCreate Operation = "category.create"
	CategoryUpdate Operation = "category.update"
	CategoryDelete Operation = "category.delete"
	CategoryCount  Operation = "category.count"

	TagList   Operation = "tag.list"
	TagGet    Operation = "tag.get"
	TagCreate Operation = "tag.create"
	TagUpdate Operation = "tag.update"
	TagDelete Operation = "tag.delete"
	TagCount  Operation = "tag.count"

	NewsActive     Operation = "news.active"
	NewsActiveGet  Operation = "news.active.get"
	NewsFullText   Operation = "news.fulltext"
	NewsLive       Operation = "news.live"
	NewsList       Operation = "news.list"
	NewsGet        Operation = "news.get"
	NewsSearch     Operation = "news.search"
	NewsMine       Operation = "news.mine"
	NewsCreate     Operation = "news.create"
	NewsUpdate     Operation = "news.update"
	NewsDelete     Operation = "news.delete"
	NewsStatistics Operation = "news.statistics"
	NewsCounts     Operation = "news.counts"

	ReportStatistics    Operation = "report.statistics"
	ReportCounts        Operation = "report.counts"
	ReportAllNews       Operation = "report.all-news"
	ReportAllCategories Operation = "report.all-categories"
	ReportAllTags       Operation = "report.all-tags"
	ReportAllAccounts   Operation = "report.all-accounts"

	MediaUpload Operation = "media.upload"
	MediaGet    Operation = "media.get"
)

// Rule 描述一个操作的访问规则。Anonymous 为 true 时不需要 token。
type Rule struct {
	Anonymous bool
	Roles     []model.Role
}

// Allows 判断某个角色是否可以执行该操作。
func (r Rule) Allows(role model.Role) bool {
	if r.Anonymous {
		return true
	}
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

var (
	anonymous     = Rule{Anonymous: true}
	anyRole       = Rule{Roles: []model.Role{model.RoleStaff, model.RoleLecturer, model.RoleAdmin}}
	staffOnly     = Rule{Roles: []model.Role{model.RoleStaff}}
	adminOnly     = Rule{Roles: []model.Role{model.RoleAdmin}}
	staffLecturer = Rule{Roles: []model.Role{model.RoleStaff, model.RoleLecturer}}
)

var table = map[Operation]Rule{
	AuthLogin:  anonymous,
	AuthLogout: anyRole,

	AccountList:          adminOnly,
	AccountGet:           adminOnly,
	AccountSearch:        adminOnly,
	AccountCreate:        adminOnly,
	AccountUpdate:        adminOnly,
	AccountDelete:        adminOnly,
	AccountCount:         adminOnly,
	AccountProfileGet:    anyRole,
	AccountProfileUpdate: anyRole,

	CategoryList:   anyRole,
	CategoryActive: anyRole,
	CategoryGet:    staffOnly,
	CategorySearch: staffOnly,
	CategoryCreate: staffOnly,
	CategoryUpdate: staffOnly,
	CategoryDelete: staffOnly,
	CategoryCount:  adminOnly,

	TagList:   anyRole,
	TagGet:    staffOnly,
	TagCreate: staffOnly,
	TagUpdate: staffOnly,
	TagDelete: staffOnly,
	TagCount:  adminOnly,

	NewsActive:     anonymous,
	NewsActiveGet:  anonymous,
	NewsFullText:   anonymous,
	NewsLive:       anonymous,
	NewsList:       staffOnly,
	NewsGet:        staffLecturer,
	NewsSearch:     staffLecturer,
	NewsMine:       staffLecturer,
	NewsCreate:     staffLecturer,
	NewsUpdate:     staffLecturer,
	NewsDelete:     staffLecturer,
	NewsStatistics: adminOnly,
	NewsCounts:     adminOnly,

	ReportStatistics:    adminOnly,
	ReportCounts:        adminOnly,
	ReportAllNews:       adminOnly,
	ReportAllCategories: adminOnly,
	ReportAllTags:       adminOnly,
	ReportAllAccounts:   adminOnly,

	MediaUpload: staffLecturer,
	MediaGet:    anonymous,
}

// Lookup 返回操作的访问规则。
func Lookup(op Operation) (Rule, bool) {
	rule, ok := table[op]
	return rule, ok
}

// MustKnow 在路由注册时调用，未登记的操作会直接 panic。
func MustKnow(op Operation) Rule {
	rule, ok := table[op]
	if !ok {
		panic(fmt.Sprintf("policy: operation %q is not registered", op))
	}
	return rule
}

// Operations 返回已登记的全部操作。
func Operations() []Operation {
	ops := make([]Operation, 0, len(table))
	for op := range table {
		ops = append(ops, op)
	}
	return ops
}

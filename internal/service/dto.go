package service

import (
	"strings"

	"fu-news-go/internal/model"
)

// ---- 账号 ----

// AccountRequest 是管理员创建账号的请求体。
type AccountRequest struct {
	AccountName     string     `json:"accountName" binding:"required,max=100"`
	AccountEmail    string     `json:"accountEmail" binding:"required,email,max=255"`
	AccountRole     model.Role `json:"accountRole" binding:"required"`
	AccountPassword string     `json:"accountPassword" binding:"required,min=6,max=255"`
	// IsActive 省略时默认为 true。
	IsActive *bool `json:"isActive"`
}

// AccountUpdateRequest 是管理员更新账号的请求体，密码为空表示保持不变。
type AccountUpdateRequest struct {
	AccountName     string     `json:"accountName" binding:"required,max=100"`
	AccountRole     model.Role `json:"accountRole" binding:"required"`
	AccountPassword *string    `json:"accountPassword" binding:"omitempty,min=6,max=255"`
	IsActive        bool       `json:"isActive"`
}

// ProfileUpdateRequest 只包含本人可以修改的字段。
type ProfileUpdateRequest struct {
	AccountName     string  `json:"accountName" binding:"required,max=100"`
	AccountPassword *string `json:"accountPassword" binding:"omitempty,min=6,max=255"`
}

// AccountResponse 是账号的公开投影，不包含密码。
type AccountResponse struct {
	AccountID    uint       `json:"accountId"`
	AccountName  *string    `json:"accountName"`
	AccountEmail string     `json:"accountEmail"`
	AccountRole  model.Role `json:"accountRole"`
	IsActive     bool       `json:"isActive"`
}

func toAccountResponse(a *model.Account) AccountResponse {
	return AccountResponse{
		AccountID:    a.ID,
		AccountName:  a.Name,
		AccountEmail: a.Email,
		AccountRole:  a.Role,
		IsActive:     a.IsActive,
	}
}

func toAccountResponses(accounts []model.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, toAccountResponse(&accounts[i]))
	}
	return out
}

// ---- 登录 ----

// LoginRequest 定义了登录请求体。
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 定义了登录成功后返回的数据。
type LoginResponse struct {
	AccountID    uint       `json:"accountId"`
	AccountName  string     `json:"accountName"`
	AccountEmail string     `json:"accountEmail"`
	AccountRole  model.Role `json:"accountRole"`
	Token        string     `json:"token"`
}

// ---- 分类 ----

// CategoryRequest 同时用于创建和更新分类。
type CategoryRequest struct {
	CategoryName        string  `json:"categoryName" binding:"required,max=150"`
	CategoryDescription *string `json:"categoryDescription" binding:"omitempty,max=500"`
	ParentCategoryID    *uint   `json:"parentCategoryId"`
	// IsActive 省略时默认为 true。
	IsActive *bool `json:"isActive"`
}

// CategoryResponse 是分类的投影，附带父分类名称。
type CategoryResponse struct {
	CategoryID          uint    `json:"categoryId"`
	CategoryName        string  `json:"categoryName"`
	CategoryDescription *string `json:"categoryDescription"`
	ParentCategoryID    *uint   `json:"parentCategoryId"`
	ParentCategoryName  *string `json:"parentCategoryName"`
	IsActive            bool    `json:"isActive"`
}

func toCategoryResponse(c *model.Category) CategoryResponse {
	resp := CategoryResponse{
		CategoryID:          c.ID,
		CategoryName:        c.Name,
		CategoryDescription: c.Description,
		ParentCategoryID:    c.ParentID,
		IsActive:            c.IsActive,
	}
	if c.Parent != nil {
		name := c.Parent.Name
		resp.ParentCategoryName = &name
	}
	return resp
}

func toCategoryResponses(categories []model.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, toCategoryResponse(&categories[i]))
	}
	return out
}

// ---- 标签 ----

// TagRequest 同时用于创建和更新标签。
type TagRequest struct {
	TagName string  `json:"tagName" binding:"required,max=100"`
	Note    *string `json:"note" binding:"omitempty,max=255"`
}

type TagResponse struct {
	TagID   uint    `json:"tagId"`
	TagName string  `json:"tagName"`
	Note    *string `json:"note"`
}

func toTagResponse(t *model.Tag) TagResponse {
	return TagResponse{TagID: t.ID, TagName: t.Name, Note: t.Note}
}

func toTagResponses(tags []model.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for i := range tags {
		out = append(out, toTagResponse(&tags[i]))
	}
	return out
}

// ---- 文章 ----

// NewsArticleRequest 是创建文章的请求体，NewsStatus 省略时默认为已发布。
type NewsArticleRequest struct {
	NewsTitle   string  `json:"newsTitle" binding:"required,max=255"`
	Headline    *string `json:"headline" binding:"omitempty,max=500"`
	NewsContent string  `json:"newsContent" binding:"required"`
	NewsSource  *string `json:"newsSource" binding:"omitempty,max=255"`
	CategoryID  uint    `json:"categoryId" binding:"required"`
	NewsStatus  *bool   `json:"newsStatus"`
	TagIDs      []uint  `json:"tagIds"`
}

// NewsArticleUpdateRequest 是更新文章的请求体，会整体覆盖可变字段和标签集合。
type NewsArticleUpdateRequest struct {
	NewsTitle   string  `json:"newsTitle" binding:"required,max=255"`
	Headline    *string `json:"headline" binding:"omitempty,max=500"`
	NewsContent string  `json:"newsContent" binding:"required"`
	NewsSource  *string `json:"newsSource" binding:"omitempty,max=255"`
	CategoryID  uint    `json:"categoryId" binding:"required"`
	NewsStatus  bool    `json:"newsStatus"`
	TagIDs      []uint  `json:"tagIds"`
}

// NewsArticleResponse 是关联了分类、作者和标签的文章投影。
type NewsArticleResponse struct {
	NewsArticleID uint             `json:"newsArticleId"`
	NewsTitle     string           `json:"newsTitle"`
	Headline      *string          `json:"headline"`
	CreatedDate   model.LocalTime  `json:"createdDate"`
	NewsContent   string           `json:"newsContent"`
	NewsSource    *string          `json:"newsSource"`
	CategoryID    uint             `json:"categoryId"`
	CategoryName  string           `json:"categoryName"`
	NewsStatus    bool             `json:"newsStatus"`
	CreatedByID   uint             `json:"createdById"`
	CreatedByName string           `json:"createdByName"`
	UpdatedByID   *uint            `json:"updatedById"`
	UpdatedByName *string          `json:"updatedByName"`
	ModifiedDate  *model.LocalTime `json:"modifiedDate"`
	Tags          []TagResponse    `json:"tags"`
}

func toNewsArticleResponse(n *model.NewsArticle) NewsArticleResponse {
	resp := NewsArticleResponse{
		NewsArticleID: n.ID,
		NewsTitle:     n.Title,
		Headline:      n.Headline,
		CreatedDate:   model.LocalTime(n.CreatedDate),
		NewsContent:   n.Content,
		NewsSource:    n.Source,
		CategoryID:    n.CategoryID,
		CategoryName:  n.Category.Name,
		NewsStatus:    n.Status,
		CreatedByID:   n.CreatedByID,
		CreatedByName: n.CreatedBy.DisplayName(),
		UpdatedByID:   n.UpdatedByID,
		ModifiedDate:  model.NewLocalTimePtr(n.ModifiedDate),
		Tags:          toTagResponses(n.Tags),
	}
	if n.UpdatedBy != nil {
		name := n.UpdatedBy.DisplayName()
		resp.UpdatedByName = &name
	}
	return resp
}

func toNewsArticleResponses(articles []model.NewsArticle) []NewsArticleResponse {
	out := make([]NewsArticleResponse, 0, len(articles))
	for i := range articles {
		out = append(out, toNewsArticleResponse(&articles[i]))
	}
	return out
}

// NewsArticleStatistic 是报表使用的轻量投影。
type NewsArticleStatistic struct {
	NewsArticleID uint            `json:"newsArticleId"`
	NewsTitle     string          `json:"newsTitle"`
	CreatedDate   model.LocalTime `json:"createdDate"`
	CategoryName  string          `json:"categoryName"`
	CreatedByName string          `json:"createdByName"`
	NewsStatus    bool            `json:"newsStatus"`
}

// NewsCounts 是文章统计数字。
type NewsCounts struct {
	TotalArticles     int64 `json:"totalArticles"`
	PublishedArticles int64 `json:"publishedArticles"`
	DraftArticles     int64 `json:"draftArticles"`
	TotalAuthors      int64 `json:"totalAuthors"`
}

// DashboardCounts 在文章统计之外附加账号、分类和标签总数。
type DashboardCounts struct {
	NewsCounts
	TotalUsers      int64 `json:"totalUsers"`
	TotalCategories int64 `json:"totalCategories"`
	TotalTags       int64 `json:"totalTags"`
}

// ---- 全文检索 ----

// SearchHit 是全文检索的单条结果。
type SearchHit struct {
	NewsArticleID uint    `json:"newsArticleId"`
	NewsTitle     string  `json:"newsTitle"`
	Headline      string  `json:"headline"`
	CategoryName  string  `json:"categoryName"`
	CreatedByName string  `json:"createdByName"`
	CreatedDate   string  `json:"createdDate"`
	Score         float64 `json:"score"`
}

// ---- 媒体 ----

// ImageUploadResponse 是图片上传后的返回值。
type ImageUploadResponse struct {
	ObjectName string `json:"objectName"`
	URL        string `json:"url"`
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func boolOrDefault(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

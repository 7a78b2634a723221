package model

import "time"

// NewsArticle 对应于数据库中的 'news_articles' 表。
// Status 为 true 表示已发布，false 表示草稿（软删除同样落到草稿状态）。
type NewsArticle struct {
	ID       uint    `gorm:"primaryKey;autoIncrement;column:news_article_id"`
	Title    string  `gorm:"type:varchar(255);not null;column:news_title"`
	Headline *string `gorm:"type:varchar(500);column:headline"`
	// Content 为富文本 HTML，原样存储。
	Content     string   `gorm:"type:longtext;not null;column:news_content"`
	Source      *string  `gorm:"type:varchar(255);column:news_source"`
	CategoryID  uint     `gorm:"not null;index;column:category_id"`
	Category    Category `gorm:"foreignKey:CategoryID;references:ID"`
	Status      bool     `gorm:"not null;index;column:news_status"`
	CreatedByID uint     `gorm:"not null;index;column:created_by_id"`
	CreatedBy   Account  `gorm:"foreignKey:CreatedByID;references:ID"`
	UpdatedByID *uint    `gorm:"index;column:updated_by_id"`
	UpdatedBy   *Account `gorm:"foreignKey:UpdatedByID;references:ID"`
	// CreatedDate 由服务端时钟在创建时写入。
	CreatedDate  time.Time  `gorm:"not null;index;column:created_date"`
	ModifiedDate *time.Time `gorm:"column:modified_date"`
	Tags         []Tag      `gorm:"many2many:news_tags;joinForeignKey:NewsArticleID;joinReferences:TagID"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (NewsArticle) TableName() string {
	return "news_articles"
}

// TagIDs 返回文章当前关联的标签 ID。
func (n *NewsArticle) TagIDs() []uint {
	ids := make([]uint, 0, len(n.Tags))
	for _, t := range n.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

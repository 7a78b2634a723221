package model

// ArticleDocument 定义了存储在 Elasticsearch 中的文章文档结构。
type ArticleDocument struct {
	NewsArticleID uint     `json:"news_article_id"`
	Title         string   `json:"news_title"`
	Headline      string   `json:"headline"`
	Content       string   `json:"news_content"`
	CategoryID    uint     `json:"category_id"`
	CategoryName  string   `json:"category_name"`
	CreatedByName string   `json:"created_by_name"`
	Tags          []string `json:"tags"`
	NewsStatus    bool     `json:"news_status"`
	CreatedDate   string   `json:"created_date"`
}

package model

// Tag 对应于数据库中的 'tags' 表，标签名称全局唯一且区分大小写。
type Tag struct {
	ID   uint    `gorm:"primaryKey;autoIncrement;column:tag_id"`
	Name string  `gorm:"type:varchar(100) COLLATE utf8mb4_bin;uniqueIndex;not null;column:tag_name"`
	Note *string `gorm:"type:varchar(255);column:note"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Tag) TableName() string {
	return "tags"
}

package model

// Category 对应于数据库中的 'categories' 表。
// 通过 ParentID 自关联形成树形结构，顶级分类的 ParentID 为 NULL。
type Category struct {
	ID          uint    `gorm:"primaryKey;autoIncrement;column:category_id"`
	Name        string  `gorm:"type:varchar(150);not null;column:category_name"`
	Description *string `gorm:"type:varchar(500);column:category_description"`
	// ParentID 指向父级分类，使用指针以接受 NULL 值。
	ParentID *uint     `gorm:"index;column:parent_category_id"`
	Parent   *Category `gorm:"foreignKey:ParentID;references:ID"`
	IsActive bool      `gorm:"not null;column:is_active"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Category) TableName() string {
	return "categories"
}

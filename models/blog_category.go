package models

import "time"

// BlogCategory groups blog posts. Ordered by Order, then Name.
type BlogCategory struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null;uniqueIndex:idx_blog_categories_name"`
	Slug      string    `json:"slug" gorm:"type:varchar(255);not null;uniqueIndex:idx_blog_categories_slug"`
	Order     int       `json:"order" gorm:"column:sort_order;not null;default:0;index"`
	IsActive  bool      `json:"isActive" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (BlogCategory) TableName() string {
	return "blog_categories"
}

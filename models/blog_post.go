package models

import (
	"time"
)

// Post statuses. Any status may be set to any other by direct update.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"
)

// PostStatuses lists the accepted values of BlogPost.Status.
var PostStatuses = []string{PostStatusDraft, PostStatusPublished, PostStatusArchived}

// BlogPost represents a complete blog post with metadata
type BlogPost struct {
	ID            uint          `json:"id" gorm:"primaryKey;autoIncrement"`
	Title         string        `json:"title" gorm:"type:varchar(255);not null"`
	Slug          string        `json:"slug" gorm:"type:varchar(255);not null;uniqueIndex:idx_blog_posts_slug"`
	Content       string        `json:"content" gorm:"type:text;not null"`
	Excerpt       *string       `json:"excerpt" gorm:"type:text"`
	FeaturedImage *string       `json:"featuredImage" gorm:"type:varchar(500)"`
	CategoryID    uint          `json:"categoryId" gorm:"not null;index:idx_blog_posts_category_id"`
	Category      *BlogCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:RESTRICT"`
	Status        string        `json:"status" gorm:"type:varchar(20);not null;index:idx_blog_posts_status"`
	PublishedAt   *time.Time    `json:"publishedAt" gorm:"index"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func (BlogPost) TableName() string {
	return "blog_posts"
}

// IsPublished reports whether the post is currently visible on the public blog.
func (p BlogPost) IsPublished() bool {
	return p.Status == PostStatusPublished
}

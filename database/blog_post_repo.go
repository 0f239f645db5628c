package database

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gbur-rwanda/gbur-backend/models"
	"github.com/gbur-rwanda/gbur-backend/query"
)

// blogListOrder mirrors query.BlogPostLess so a page cut in SQL holds the right rows.
const blogListOrder = "CASE WHEN published_at IS NULL THEN 1 ELSE 0 END, published_at DESC, created_at DESC, id DESC"

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

// FindAll returns one page of posts matching opts, with categories loaded.
func (r *BlogPostRepo) FindAll(ctx context.Context, opts query.BlogListOptions) ([]models.BlogPost, error) {
	tx := r.db.WithContext(ctx).Preload("Category")
	if opts.Status != "" {
		tx = tx.Where("status = ?", opts.Status)
	}
	if opts.CategoryID != nil {
		tx = tx.Where("category_id = ?", *opts.CategoryID)
	}
	if opts.Limit > 0 {
		tx = tx.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		tx = tx.Offset(opts.Offset)
	}

	posts := []models.BlogPost{}
	err := tx.Order(blogListOrder).Find(&posts).Error
	return posts, err
}

// FindByID returns a blog post by its ID
func (r *BlogPostRepo) FindByID(ctx context.Context, id uint) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.WithContext(ctx).Preload("Category").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *BlogPostRepo) FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.WithContext(ctx).Preload("Category").Where("slug = ?", slug).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// SlugTaken reports whether another post than exceptID already uses slug.
func (r *BlogPostRepo) SlugTaken(ctx context.Context, slug string, exceptID uint) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&models.BlogPost{}).Where("slug = ?", slug)
	if exceptID != 0 {
		tx = tx.Where("id <> ?", exceptID)
	}
	err := tx.Count(&count).Error
	return count > 0, err
}

// CountByCategory counts the posts referencing a category.
func (r *BlogPostRepo) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BlogPost{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

// Add inserts a new blog post into the database
func (r *BlogPostRepo) Add(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
}

// Update writes every column of post. Relations are not touched.
func (r *BlogPostRepo) Update(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(post).Error
}

// Delete removes a post and returns the number of rows removed.
func (r *BlogPostRepo) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.BlogPost{}, id)
	return res.RowsAffected, res.Error
}

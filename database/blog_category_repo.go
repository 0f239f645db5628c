package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/gbur-rwanda/gbur-backend/models"
)

type BlogCategoryRepo struct {
	db *gorm.DB
}

func NewBlogCategoryRepo(db *gorm.DB) *BlogCategoryRepo {
	return &BlogCategoryRepo{db}
}

// FindAll returns categories ordered by order then name.
func (r *BlogCategoryRepo) FindAll(ctx context.Context, activeOnly bool) ([]models.BlogCategory, error) {
	tx := r.db.WithContext(ctx)
	if activeOnly {
		tx = tx.Where("is_active = ?", true)
	}
	categories := []models.BlogCategory{}
	err := tx.Order("sort_order ASC").Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *BlogCategoryRepo) FindByID(ctx context.Context, id uint) (*models.BlogCategory, error) {
	var category models.BlogCategory
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *BlogCategoryRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BlogCategory{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Conflicts reports whether a category other than exceptID already uses name or slug.
func (r *BlogCategoryRepo) Conflicts(ctx context.Context, name, slug string, exceptID uint) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&models.BlogCategory{}).Where("name = ? OR slug = ?", name, slug)
	if exceptID != 0 {
		tx = tx.Where("id <> ?", exceptID)
	}
	err := tx.Count(&count).Error
	return count > 0, err
}

func (r *BlogCategoryRepo) Add(ctx context.Context, category *models.BlogCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *BlogCategoryRepo) Update(ctx context.Context, category *models.BlogCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *BlogCategoryRepo) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.BlogCategory{}, id)
	return res.RowsAffected, res.Error
}

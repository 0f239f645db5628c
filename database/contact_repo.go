package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/gbur-rwanda/gbur-backend/models"
)

type ContactMessageRepo struct {
	db *gorm.DB
}

func NewContactMessageRepo(db *gorm.DB) *ContactMessageRepo {
	return &ContactMessageRepo{db}
}

func (r *ContactMessageRepo) Add(ctx context.Context, msg *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// FindAll returns messages newest first, optionally restricted to one status.
func (r *ContactMessageRepo) FindAll(ctx context.Context, status string) ([]models.ContactMessage, error) {
	tx := r.db.WithContext(ctx)
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	messages := []models.ContactMessage{}
	err := tx.Order("created_at DESC").Find(&messages).Error
	return messages, err
}

type SubscriptionRepo struct {
	db *gorm.DB
}

func NewSubscriptionRepo(db *gorm.DB) *SubscriptionRepo {
	return &SubscriptionRepo{db}
}

func (r *SubscriptionRepo) FindByEmail(ctx context.Context, email string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepo) Add(ctx context.Context, sub *models.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *SubscriptionRepo) Update(ctx context.Context, sub *models.Subscription) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

func (r *SubscriptionRepo) CountByEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Subscription{}).Where("email = ?", email).Count(&count).Error
	return count, err
}

package database

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gbur-rwanda/gbur-backend/models"
)

type RegionRepo struct {
	db *gorm.DB
}

func NewRegionRepo(db *gorm.DB) *RegionRepo {
	return &RegionRepo{db}
}

func (r *RegionRepo) FindAll(ctx context.Context) ([]models.Region, error) {
	regions := []models.Region{}
	err := r.db.WithContext(ctx).Order("name ASC").Find(&regions).Error
	return regions, err
}

func (r *RegionRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Region{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *RegionRepo) NameTaken(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Region{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *RegionRepo) Add(ctx context.Context, region *models.Region) error {
	return r.db.WithContext(ctx).Create(region).Error
}

type UniversityRepo struct {
	db *gorm.DB
}

func NewUniversityRepo(db *gorm.DB) *UniversityRepo {
	return &UniversityRepo{db}
}

// FindAll returns universities with their region, optionally for one region.
func (r *UniversityRepo) FindAll(ctx context.Context, regionID *uint) ([]models.University, error) {
	tx := r.db.WithContext(ctx).Preload("Region")
	if regionID != nil {
		tx = tx.Where("region_id = ?", *regionID)
	}
	universities := []models.University{}
	err := tx.Order("name ASC").Find(&universities).Error
	return universities, err
}

func (r *UniversityRepo) FindByID(ctx context.Context, id uint) (*models.University, error) {
	var university models.University
	if err := r.db.WithContext(ctx).Preload("Region").First(&university, id).Error; err != nil {
		return nil, err
	}
	return &university, nil
}

func (r *UniversityRepo) Add(ctx context.Context, university *models.University) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(university).Error
}

func (r *UniversityRepo) Update(ctx context.Context, university *models.University) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(university).Error
}

func (r *UniversityRepo) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.University{}, id)
	return res.RowsAffected, res.Error
}

type RegionalStaffRepo struct {
	db *gorm.DB
}

func NewRegionalStaffRepo(db *gorm.DB) *RegionalStaffRepo {
	return &RegionalStaffRepo{db}
}

func (r *RegionalStaffRepo) FindAll(ctx context.Context, regionID *uint) ([]models.RegionalStaff, error) {
	tx := r.db.WithContext(ctx).Preload("Region")
	if regionID != nil {
		tx = tx.Where("region_id = ?", *regionID)
	}
	staff := []models.RegionalStaff{}
	err := tx.Order("name ASC").Find(&staff).Error
	return staff, err
}

func (r *RegionalStaffRepo) FindByID(ctx context.Context, id uint) (*models.RegionalStaff, error) {
	var staff models.RegionalStaff
	if err := r.db.WithContext(ctx).Preload("Region").First(&staff, id).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *RegionalStaffRepo) Add(ctx context.Context, staff *models.RegionalStaff) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(staff).Error
}

type SmallGroupRepo struct {
	db *gorm.DB
}

func NewSmallGroupRepo(db *gorm.DB) *SmallGroupRepo {
	return &SmallGroupRepo{db}
}

// FindAll returns small groups, optionally of one type, ordered by name.
func (r *SmallGroupRepo) FindAll(ctx context.Context, groupType string) ([]models.SmallGroup, error) {
	tx := r.db.WithContext(ctx)
	if groupType != "" {
		tx = tx.Where("type = ?", groupType)
	}
	groups := []models.SmallGroup{}
	err := tx.Order("name ASC").Find(&groups).Error
	return groups, err
}

func (r *SmallGroupRepo) FindByID(ctx context.Context, id uint) (*models.SmallGroup, error) {
	var group models.SmallGroup
	if err := r.db.WithContext(ctx).First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *SmallGroupRepo) Add(ctx context.Context, group *models.SmallGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *SmallGroupRepo) Update(ctx context.Context, group *models.SmallGroup) error {
	return r.db.WithContext(ctx).Save(group).Error
}

func (r *SmallGroupRepo) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.SmallGroup{}, id)
	return res.RowsAffected, res.Error
}

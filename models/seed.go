package models

import (
	"gorm.io/gorm"
)

// DefaultCategories is the bootstrap list of blog categories.
var DefaultCategories = []BlogCategory{
	{Name: "News", Slug: "news", Order: 0, IsActive: true},
	{Name: "Events", Slug: "events", Order: 1, IsActive: true},
	{Name: "Testimonies", Slug: "testimonies", Order: 2, IsActive: true},
	{Name: "Bible Study", Slug: "bible-study", Order: 3, IsActive: true},
	{Name: "Missions", Slug: "missions", Order: 4, IsActive: true},
	{Name: "Leadership", Slug: "leadership", Order: 5, IsActive: true},
	{Name: "Graduates", Slug: "graduates", Order: 6, IsActive: true},
	{Name: "Announcements", Slug: "announcements", Order: 7, IsActive: true},
}

// SeedCategories inserts DefaultCategories when the categories table is empty.
// It returns the number of rows inserted.
func SeedCategories(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&BlogCategory{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	categories := make([]BlogCategory, len(DefaultCategories))
	copy(categories, DefaultCategories)
	if err := db.Create(&categories).Error; err != nil {
		return 0, err
	}
	return len(categories), nil
}

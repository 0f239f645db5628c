package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gbur-rwanda/gbur-backend/database/dbtest"
	"github.com/gbur-rwanda/gbur-backend/models"
)

func TestSeedCategoriesOnlyFillsEmptyTable(t *testing.T) {
	db := dbtest.Open(t)

	inserted, err := models.SeedCategories(db)
	require.NoError(t, err)
	assert.Equal(t, len(models.DefaultCategories), inserted)

	inserted, err = models.SeedCategories(db)
	require.NoError(t, err)
	assert.Zero(t, inserted)

	var count int64
	require.NoError(t, db.Model(&models.BlogCategory{}).Count(&count).Error)
	assert.Equal(t, int64(len(models.DefaultCategories)), count)

	assert.Zero(t, models.DefaultCategories[0].ID)
}

func TestColumnMismatches(t *testing.T) {
	db := dbtest.Open(t)
	require.NoError(t, db.Exec("ALTER TABLE regions ADD COLUMN legacy_code text").Error)
	require.NoError(t, db.Migrator().DropTable(&models.Subscription{}))

	mismatches, err := models.ColumnMismatches(db)
	require.NoError(t, err)

	assert.Equal(t, []string{"legacy_code"}, mismatches["regions"])
	assert.Empty(t, mismatches["blog_posts"])
	assert.NotContains(t, mismatches, "subscriptions")
	assert.Contains(t, mismatches, "small_groups")
}

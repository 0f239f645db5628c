package query

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gbur-rwanda/gbur-backend/models"
)

func at(day int) *time.Time {
	t := time.Date(2025, time.June, day, 12, 0, 0, 0, time.UTC)
	return &t
}

func TestParseBlogListOptions(t *testing.T) {
	opts := ParseBlogListOptions(url.Values{})
	assert.Equal(t, DefaultBlogLimit, opts.Limit)
	assert.Equal(t, 0, opts.Offset)
	assert.Nil(t, opts.CategoryID)
	assert.Equal(t, "", opts.Status)

	opts = ParseBlogListOptions(url.Values{
		"status":     {"published"},
		"categoryId": {"4"},
		"limit":      {"2"},
		"offset":     {"6"},
	})
	assert.Equal(t, "published", opts.Status)
	require.NotNil(t, opts.CategoryID)
	assert.Equal(t, uint(4), *opts.CategoryID)
	assert.Equal(t, 2, opts.Limit)
	assert.Equal(t, 6, opts.Offset)
}

func TestParseBlogListOptionsTreatsGarbageAsAbsent(t *testing.T) {
	opts := ParseBlogListOptions(url.Values{
		"status":     {"bogus"},
		"categoryId": {"abc"},
		"limit":      {"-5"},
		"offset":     {"x"},
	})
	assert.Equal(t, "", opts.Status)
	assert.Nil(t, opts.CategoryID)
	assert.Equal(t, DefaultBlogLimit, opts.Limit)
	assert.Equal(t, 0, opts.Offset)
}

func TestSortBlogPostsTwoTier(t *testing.T) {
	p1 := models.BlogPost{ID: 1, CreatedAt: *at(1)}
	p2 := models.BlogPost{ID: 2, CreatedAt: *at(2), PublishedAt: at(3)}
	p3 := models.BlogPost{ID: 3, CreatedAt: *at(5)}

	orders := [][]models.BlogPost{
		{p1, p2, p3},
		{p3, p1, p2},
		{p2, p3, p1},
		{p1, p3, p2},
	}
	for _, posts := range orders {
		SortBlogPosts(posts)
		ids := []uint{posts[0].ID, posts[1].ID, posts[2].ID}
		assert.Equal(t, []uint{2, 3, 1}, ids)
	}
}

func TestSortBlogPostsPublishedDescending(t *testing.T) {
	posts := []models.BlogPost{
		{ID: 1, PublishedAt: at(1), CreatedAt: *at(28)},
		{ID: 2, CreatedAt: *at(30)},
		{ID: 3, PublishedAt: at(9)},
		{ID: 4, PublishedAt: at(4)},
	}
	SortBlogPosts(posts)
	var ids []uint
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []uint{3, 4, 1, 2}, ids)
}

type uni struct {
	name   string
	region uint
}

func TestFilterByNameAndRegion(t *testing.T) {
	items := []uni{
		{"University of Rwanda", 1},
		{"UR Huye Campus", 2},
		{"Kigali Independent University", 1},
	}
	name := func(u uni) string { return u.name }
	region := func(u uni) uint { return u.region }

	assert.Len(t, FilterByNameAndRegion(items, name, region, "", nil), 3)
	assert.Len(t, FilterByNameAndRegion(items, name, region, "UNIVERSITY", nil), 2)

	one := uint(1)
	got := FilterByNameAndRegion(items, name, region, "kigali", &one)
	require.Len(t, got, 1)
	assert.Equal(t, "Kigali Independent University", got[0].name)

	two := uint(2)
	assert.Empty(t, FilterByNameAndRegion(items, name, region, "kigali", &two))
}

func TestParseSmallGroupAndOrgFilters(t *testing.T) {
	assert.Equal(t, "graduate", ParseSmallGroupFilter(url.Values{"type": {"graduate"}}).Type)
	assert.Equal(t, "", ParseSmallGroupFilter(url.Values{"type": {"alumni"}}).Type)
	assert.Nil(t, ParseOrgFilter(url.Values{"regionId": {"x1"}}).RegionID)
	assert.True(t, ParseCategoryFilter(url.Values{"active": {"TRUE"}}).ActiveOnly)
}

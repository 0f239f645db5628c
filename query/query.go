// Package query resolves list requests into filters, ordering and pages.
package query

import (
	"net/url"
	"sort"
	"strings"

	"github.com/gbur-rwanda/gbur-backend/models"
	"github.com/gbur-rwanda/gbur-backend/validation"
)

// DefaultBlogLimit is the blog page size when no limit is given.
const DefaultBlogLimit = 100

// BlogListOptions are the filters of GET /blog. Zero values mean "not filtered".
type BlogListOptions struct {
	Status     string
	CategoryID *uint
	Limit      int
	Offset     int
}

// ParseBlogListOptions reads status, categoryId, limit and offset. Malformed
// values are treated as absent rather than rejected.
func ParseBlogListOptions(v url.Values) BlogListOptions {
	opts := BlogListOptions{
		Status:     validation.ParsePostStatus(v.Get("status")),
		CategoryID: validation.ParseOptionalID(v.Get("categoryId")),
		Limit:      DefaultBlogLimit,
	}
	if limit, ok := validation.ParseNumeric(v.Get("limit")); ok && limit > 0 {
		opts.Limit = limit
	}
	if offset, ok := validation.ParseNumeric(v.Get("offset")); ok {
		opts.Offset = offset
	}
	return opts
}

// OrgFilter is the optional regionId equality filter of organization lists.
type OrgFilter struct {
	RegionID *uint
}

func ParseOrgFilter(v url.Values) OrgFilter {
	return OrgFilter{RegionID: validation.ParseOptionalID(v.Get("regionId"))}
}

// SmallGroupFilter filters by type; an unknown type leaves it empty.
type SmallGroupFilter struct {
	Type string
}

func ParseSmallGroupFilter(v url.Values) SmallGroupFilter {
	return SmallGroupFilter{Type: validation.ParseSmallGroupType(v.Get("type"))}
}

// CategoryFilter restricts the category list to active rows when ActiveOnly is set.
type CategoryFilter struct {
	ActiveOnly bool
}

func ParseCategoryFilter(v url.Values) CategoryFilter {
	return CategoryFilter{ActiveOnly: strings.EqualFold(v.Get("active"), "true")}
}

// BlogPostLess orders posts with a publishedAt before posts without one,
// published posts by publishedAt descending and the rest by createdAt descending.
func BlogPostLess(a, b models.BlogPost) bool {
	switch {
	case a.PublishedAt != nil && b.PublishedAt == nil:
		return true
	case a.PublishedAt == nil && b.PublishedAt != nil:
		return false
	case a.PublishedAt != nil:
		return a.PublishedAt.After(*b.PublishedAt)
	default:
		return a.CreatedAt.After(b.CreatedAt)
	}
}

// SortBlogPosts applies BlogPostLess in place, keeping the input order of ties.
func SortBlogPosts(posts []models.BlogPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		return BlogPostLess(posts[i], posts[j])
	})
}

// MatchesName is a case-insensitive substring test. An empty search matches everything.
func MatchesName(name, search string) bool {
	search = strings.TrimSpace(search)
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(search))
}

// FilterByNameAndRegion keeps items whose name contains search and whose
// region equals regionID when one is given. Both conditions must hold.
func FilterByNameAndRegion[T any](items []T, name func(T) string, region func(T) uint, search string, regionID *uint) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if regionID != nil && region(item) != *regionID {
			continue
		}
		if !MatchesName(name(item), search) {
			continue
		}
		out = append(out, item)
	}
	return out
}

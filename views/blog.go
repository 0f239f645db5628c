// Package views turns stored records into the shapes the site renders.
package views

import (
	"regexp"
	"strings"
	"time"

	"github.com/gbur-rwanda/gbur-backend/models"
)

const (
	DefaultFeaturedImage = "/Gbur/DSC_9972.jpg"
	UncategorizedLabel   = "Uncategorized"
	DisplayDateLayout    = "January 2, 2006"
)

// DisplayLocation is the zone dates are rendered in.
var DisplayLocation = time.UTC

// Author is a fixed byline; posts have no author relation.
type Author struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

var DefaultAuthor = Author{Name: "GBUR Team", Avatar: "/Gbur/logo.png"}

// BlogPostView is the display model of a post.
type BlogPostView struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       []string   `json:"excerpt"`
	Content       []string   `json:"content"`
	Image         string     `json:"image"`
	FeaturedImage *string    `json:"featuredImage"`
	Category      string     `json:"category"`
	CategoryID    uint       `json:"categoryId"`
	CategorySlug  string     `json:"categorySlug,omitempty"`
	Status        string     `json:"status"`
	Date          string     `json:"date"`
	PublishedAt   *time.Time `json:"publishedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	Author        Author     `json:"author"`
}

var lineBreak = regexp.MustCompile(`\r?\n`)

// SplitParagraphs splits free text on newlines and drops every blank segment.
// The result is never nil and applying it to its own joined output is a no-op.
func SplitParagraphs(text string) []string {
	paragraphs := []string{}
	for _, segment := range lineBreak.Split(text, -1) {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		paragraphs = append(paragraphs, segment)
	}
	return paragraphs
}

// DisplayDate formats publishedAt when set, createdAt otherwise.
func DisplayDate(publishedAt *time.Time, createdAt time.Time) string {
	t := createdAt
	if publishedAt != nil {
		t = *publishedAt
	}
	return t.In(DisplayLocation).Format(DisplayDateLayout)
}

// ImageOrDefault applies the featured image fallback.
func ImageOrDefault(featuredImage *string) string {
	if featuredImage == nil || *featuredImage == "" {
		return DefaultFeaturedImage
	}
	return *featuredImage
}

// CategoryLabel upper-cases the category name and tolerates a missing relation.
func CategoryLabel(category *models.BlogCategory) string {
	if category == nil || category.Name == "" {
		return UncategorizedLabel
	}
	return strings.ToUpper(category.Name)
}

// NewBlogPostView builds the display model of p.
func NewBlogPostView(p models.BlogPost) BlogPostView {
	view := BlogPostView{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       []string{},
		Content:       SplitParagraphs(p.Content),
		Image:         ImageOrDefault(p.FeaturedImage),
		FeaturedImage: p.FeaturedImage,
		Category:      CategoryLabel(p.Category),
		CategoryID:    p.CategoryID,
		Status:        p.Status,
		Date:          DisplayDate(p.PublishedAt, p.CreatedAt),
		PublishedAt:   p.PublishedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Author:        DefaultAuthor,
	}
	if p.Excerpt != nil {
		view.Excerpt = SplitParagraphs(*p.Excerpt)
	}
	if p.Category != nil {
		view.CategorySlug = p.Category.Slug
	}
	return view
}

// NewBlogPostViews maps posts in order. It returns an empty slice, never nil.
func NewBlogPostViews(posts []models.BlogPost) []BlogPostView {
	out := make([]BlogPostView, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewBlogPostView(p))
	}
	return out
}

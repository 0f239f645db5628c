package views

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gbur-rwanda/gbur-backend/models"
)

func TestSplitParagraphsDropsBlankSegments(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"only newlines", "\n\n\n", []string{}},
		{"whitespace lines", "  \n\t\n   ", []string{}},
		{"single", "One paragraph", []string{"One paragraph"}},
		{"consecutive newlines", "First\n\n\nSecond", []string{"First", "Second"}},
		{"leading and trailing blank lines", "\n  \nFirst\nSecond\n \n", []string{"First", "Second"}},
		{"crlf", "First\r\n\r\nSecond\r\n", []string{"First", "Second"}},
		{"inner spaces kept", "  indented line\nnext", []string{"  indented line", "next"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitParagraphs(tt.in)
			assert.Equal(t, tt.want, got)
			for _, p := range got {
				assert.NotEmpty(t, strings.TrimSpace(p))
			}
		})
	}
}

func TestSplitParagraphsIsIdempotent(t *testing.T) {
	inputs := []string{"a\n\nb\n  \nc", "\n\nx\n", "one"}
	for _, in := range inputs {
		once := SplitParagraphs(in)
		twice := SplitParagraphs(strings.Join(once, "\n"))
		assert.Equal(t, once, twice)
	}
}

func TestDisplayDate(t *testing.T) {
	created := time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
	published := time.Date(2025, time.October, 31, 8, 30, 0, 0, time.UTC)

	assert.Equal(t, "October 31, 2025", DisplayDate(&published, created))
	assert.Equal(t, "March 3, 2025", DisplayDate(nil, created))
}

func TestNewBlogPostViewFallbacks(t *testing.T) {
	created := time.Date(2025, time.January, 9, 0, 0, 0, 0, time.UTC)
	post := models.BlogPost{
		ID:        7,
		Title:     "Welcome",
		Slug:      "welcome",
		Content:   "Hello\n\nWorld",
		Status:    models.PostStatusDraft,
		CreatedAt: created,
	}

	view := NewBlogPostView(post)
	assert.Equal(t, DefaultFeaturedImage, view.Image)
	assert.Equal(t, UncategorizedLabel, view.Category)
	assert.Equal(t, []string{"Hello", "World"}, view.Content)
	assert.Equal(t, []string{}, view.Excerpt)
	assert.Equal(t, "January 9, 2025", view.Date)
	assert.Equal(t, DefaultAuthor, view.Author)
}

func TestNewBlogPostViewWithRelations(t *testing.T) {
	img := "https://cdn.example.org/cover.jpg"
	excerpt := "Short intro\n\n"
	published := time.Date(2025, time.October, 31, 0, 0, 0, 0, time.UTC)
	post := models.BlogPost{
		Title:         "Retreat",
		Content:       "Body",
		Excerpt:       &excerpt,
		FeaturedImage: &img,
		Category:      &models.BlogCategory{Name: "Events", Slug: "events"},
		PublishedAt:   &published,
	}

	view := NewBlogPostView(post)
	assert.Equal(t, img, view.Image)
	assert.Equal(t, "EVENTS", view.Category)
	assert.Equal(t, "events", view.CategorySlug)
	assert.Equal(t, []string{"Short intro"}, view.Excerpt)
	assert.Equal(t, "October 31, 2025", view.Date)
}

func TestNewBlogPostViewsNeverNil(t *testing.T) {
	views := NewBlogPostViews(nil)
	assert.NotNil(t, views)
	assert.Len(t, views, 0)
}

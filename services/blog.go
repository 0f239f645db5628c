package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gbur-rwanda/gbur-backend/cache"
	"github.com/gbur-rwanda/gbur-backend/database"
	"github.com/gbur-rwanda/gbur-backend/errs"
	"github.com/gbur-rwanda/gbur-backend/models"
	"github.com/gbur-rwanda/gbur-backend/query"
	"github.com/gbur-rwanda/gbur-backend/validation"
	"github.com/gbur-rwanda/gbur-backend/views"
)

const duplicatePostSlug = "A blog post with this slug already exists"

// BlogList is the body of GET /blog. Total is the size of Posts, not the
// number of matching rows.
type BlogList struct {
	Posts []views.BlogPostView `json:"posts"`
	Total int                  `json:"total"`
}

type BlogService struct {
	posts      *database.BlogPostRepo
	categories *database.BlogCategoryRepo
	cache      cache.Cache
	logger     zerolog.Logger
	clock      clock
}

func NewBlogService(db database.Database, c cache.Cache) *BlogService {
	return &BlogService{
		posts:      db.BlogPostRepo(),
		categories: db.BlogCategoryRepo(),
		cache:      c,
		logger:     serviceLogger("blog"),
	}
}

func blogListKey(opts query.BlogListOptions) string {
	var category uint
	if opts.CategoryID != nil {
		category = *opts.CategoryID
	}
	return fmt.Sprintf("%slist:%s:%d:%d:%d", cache.PrefixBlog, opts.Status, category, opts.Limit, opts.Offset)
}

// List returns one page of posts in display order.
func (s *BlogService) List(ctx context.Context, opts query.BlogListOptions) (BlogList, error) {
	return cache.Fetch(ctx, s.cache, blogListKey(opts), func() (BlogList, error) {
		posts, err := s.posts.FindAll(ctx, opts)
		posts, err = listResult(s.logger, "blog posts", posts, err)
		if err != nil {
			return BlogList{}, err
		}
		query.SortBlogPosts(posts)
		return BlogList{Posts: views.NewBlogPostViews(posts), Total: len(posts)}, nil
	})
}

func (s *BlogService) GetByID(ctx context.Context, id uint) (views.BlogPostView, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return views.BlogPostView{}, findError("Blog post", err)
	}
	return views.NewBlogPostView(*post), nil
}

func (s *BlogService) GetBySlug(ctx context.Context, slug string) (views.BlogPostView, error) {
	post, err := s.posts.FindBySlug(ctx, slug)
	if err != nil {
		return views.BlogPostView{}, findError("Blog post", err)
	}
	return views.NewBlogPostView(*post), nil
}

// Lookup resolves a path segment that is either a numeric id or a slug.
func (s *BlogService) Lookup(ctx context.Context, slugOrID string) (views.BlogPostView, error) {
	if !validation.IsNumeric(slugOrID) {
		return s.GetBySlug(ctx, slugOrID)
	}
	id, ok := validation.ParseNumeric(slugOrID)
	if !ok {
		return views.BlogPostView{}, errs.NewNotFound("Blog post")
	}
	return s.GetByID(ctx, uint(id))
}

func (s *BlogService) requireCategory(ctx context.Context, id uint) error {
	ok, err := s.categories.Exists(ctx, id)
	if err != nil && !database.IsMissingTable(err) {
		return errs.NewDatabaseError("check", "category", err)
	}
	if !ok {
		return errs.NewForeignKeyMissing("Category")
	}
	return nil
}

func (s *BlogService) requireFreeSlug(ctx context.Context, slug string, exceptID uint) error {
	taken, err := s.posts.SlugTaken(ctx, slug, exceptID)
	if err != nil {
		return errs.NewDatabaseError("check", "blog post", err)
	}
	if taken {
		return errs.NewAlreadyExists(duplicatePostSlug)
	}
	return nil
}

// Create validates in, derives a slug from the title when none is given and
// stamps publishedAt when the post is created published.
func (s *BlogService) Create(ctx context.Context, in validation.PostInput) (views.BlogPostView, error) {
	if err := in.ValidateCreate(); err != nil {
		return views.BlogPostView{}, err
	}

	slug := validation.Slugify(*in.Title)
	if in.Slug != nil {
		slug = *in.Slug
	}
	if slug == "" {
		return views.BlogPostView{}, errs.NewValidationError([]errs.FieldError{{Field: "slug", Message: "slug is required"}})
	}

	if err := s.requireCategory(ctx, *in.CategoryID); err != nil {
		return views.BlogPostView{}, err
	}
	if err := s.requireFreeSlug(ctx, slug, 0); err != nil {
		return views.BlogPostView{}, err
	}

	post := models.BlogPost{
		Title:         *in.Title,
		Slug:          slug,
		Content:       *in.Content,
		Excerpt:       in.Excerpt.Ptr(),
		FeaturedImage: in.FeaturedImage.Ptr(),
		CategoryID:    *in.CategoryID,
		Status:        *in.Status,
	}
	if post.IsPublished() {
		now := s.clock.now()
		post.PublishedAt = &now
	}

	if err := s.posts.Add(ctx, &post); err != nil {
		return views.BlogPostView{}, writeError("create", "Category", duplicatePostSlug, err)
	}
	s.logger.Info().Uint("postId", post.ID).Str("slug", post.Slug).Msg("blog post created")
	cache.Invalidate(ctx, s.cache, cache.PrefixBlog)

	return s.GetByID(ctx, post.ID)
}

// Update applies the fields present in in. Status may move between any two
// values; publishedAt is stamped the first time a post becomes published.
func (s *BlogService) Update(ctx context.Context, id uint, in validation.PostInput) (views.BlogPostView, error) {
	if err := in.ValidateUpdate(); err != nil {
		return views.BlogPostView{}, err
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return views.BlogPostView{}, findError("Blog post", err)
	}

	if in.CategoryID != nil && *in.CategoryID != post.CategoryID {
		if err := s.requireCategory(ctx, *in.CategoryID); err != nil {
			return views.BlogPostView{}, err
		}
		post.CategoryID = *in.CategoryID
		post.Category = nil
	}
	if in.Slug != nil && *in.Slug != post.Slug {
		if err := s.requireFreeSlug(ctx, *in.Slug, post.ID); err != nil {
			return views.BlogPostView{}, err
		}
		post.Slug = *in.Slug
	}
	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	if in.Excerpt.Set {
		post.Excerpt = in.Excerpt.Ptr()
	}
	if in.FeaturedImage.Set {
		post.FeaturedImage = in.FeaturedImage.Ptr()
	}
	if in.Status != nil {
		wasPublished := post.IsPublished()
		post.Status = *in.Status
		if post.IsPublished() && !wasPublished && post.PublishedAt == nil {
			now := s.clock.now()
			post.PublishedAt = &now
		}
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return views.BlogPostView{}, writeError("update", "Category", duplicatePostSlug, err)
	}
	cache.Invalidate(ctx, s.cache, cache.PrefixBlog)

	return s.GetByID(ctx, post.ID)
}

func (s *BlogService) Delete(ctx context.Context, id uint) error {
	n, err := s.posts.Delete(ctx, id)
	if err := deleteError("Blog post", n, err); err != nil {
		return err
	}
	s.logger.Info().Uint("postId", id).Msg("blog post deleted")
	cache.Invalidate(ctx, s.cache, cache.PrefixBlog)
	return nil
}

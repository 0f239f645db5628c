package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gbur-rwanda/gbur-backend/cache"
	"github.com/gbur-rwanda/gbur-backend/database"
	"github.com/gbur-rwanda/gbur-backend/errs"
	"github.com/gbur-rwanda/gbur-backend/models"
	"github.com/gbur-rwanda/gbur-backend/query"
	"github.com/gbur-rwanda/gbur-backend/validation"
)

const duplicateCategory = "A category with this name or slug already exists"

type CategoryService struct {
	categories *database.BlogCategoryRepo
	posts      *database.BlogPostRepo
	cache      cache.Cache
	logger     zerolog.Logger
}

func NewCategoryService(db database.Database, c cache.Cache) *CategoryService {
	return &CategoryService{
		categories: db.BlogCategoryRepo(),
		posts:      db.BlogPostRepo(),
		cache:      c,
		logger:     serviceLogger("categories"),
	}
}

func (s *CategoryService) List(ctx context.Context, filter query.CategoryFilter) ([]models.BlogCategory, error) {
	key := cache.PrefixCategories + "all"
	if filter.ActiveOnly {
		key = cache.PrefixCategories + "active"
	}
	return cache.Fetch(ctx, s.cache, key, func() ([]models.BlogCategory, error) {
		categories, err := s.categories.FindAll(ctx, filter.ActiveOnly)
		return listResult(s.logger, "categories", categories, err)
	})
}

func (s *CategoryService) requireUnique(ctx context.Context, name, slug string, exceptID uint) error {
	conflict, err := s.categories.Conflicts(ctx, name, slug, exceptID)
	if err != nil {
		return errs.NewDatabaseError("check", "category", err)
	}
	if conflict {
		return errs.NewAlreadyExists(duplicateCategory)
	}
	return nil
}

// invalidate drops category lists and blog lists, which embed category names.
func (s *CategoryService) invalidate(ctx context.Context) {
	cache.Invalidate(ctx, s.cache, cache.PrefixCategories, cache.PrefixBlog)
}

func (s *CategoryService) Create(ctx context.Context, in validation.CategoryInput) (models.BlogCategory, error) {
	if err := in.ValidateCreate(); err != nil {
		return models.BlogCategory{}, err
	}

	slug := validation.Slugify(*in.Name)
	if in.Slug != nil {
		slug = *in.Slug
	}
	if slug == "" {
		return models.BlogCategory{}, errs.NewValidationError([]errs.FieldError{{Field: "slug", Message: "slug is required"}})
	}
	if err := s.requireUnique(ctx, *in.Name, slug, 0); err != nil {
		return models.BlogCategory{}, err
	}

	category := models.BlogCategory{
		Name:     *in.Name,
		Slug:     slug,
		Order:    *in.Order,
		IsActive: *in.IsActive,
	}
	if err := s.categories.Add(ctx, &category); err != nil {
		return models.BlogCategory{}, writeError("create", "Category", duplicateCategory, err)
	}
	s.logger.Info().Uint("categoryId", category.ID).Str("slug", category.Slug).Msg("category created")
	s.invalidate(ctx)
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, in validation.CategoryInput) (models.BlogCategory, error) {
	if err := in.ValidateUpdate(); err != nil {
		return models.BlogCategory{}, err
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return models.BlogCategory{}, findError("Category", err)
	}

	name, slug := category.Name, category.Slug
	if in.Name != nil {
		name = *in.Name
	}
	if in.Slug != nil {
		slug = *in.Slug
	}
	if name != category.Name || slug != category.Slug {
		if err := s.requireUnique(ctx, name, slug, category.ID); err != nil {
			return models.BlogCategory{}, err
		}
	}

	category.Name = name
	category.Slug = slug
	if in.Order != nil {
		category.Order = *in.Order
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return models.BlogCategory{}, writeError("update", "Category", duplicateCategory, err)
	}
	s.invalidate(ctx)
	return *category, nil
}

// Delete refuses while any post still references the category.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return findError("Category", err)
	}

	count, err := s.posts.CountByCategory(ctx, id)
	if err != nil && !database.IsMissingTable(err) {
		return errs.NewDatabaseError("count", "blog posts", err)
	}
	if count > 0 {
		return errs.NewDependentsExist("Category", count, "blog post")
	}

	n, err := s.categories.Delete(ctx, id)
	if err := deleteError("Category", n, err); err != nil {
		return err
	}
	s.logger.Info().Uint("categoryId", id).Msg("category deleted")
	s.invalidate(ctx)
	return nil
}

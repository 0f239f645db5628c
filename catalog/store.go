package catalog

import (
	"context"
	"sync"

	"github.com/gbur-rwanda/gbur-backend/models"
	"github.com/gbur-rwanda/gbur-backend/validation"
	"github.com/gbur-rwanda/gbur-backend/views"
)

func universityID(u models.University) uint { return u.ID }
func smallGroupID(g models.SmallGroup) uint { return g.ID }
func categoryID(c models.BlogCategory) uint { return c.ID }
func postID(p views.BlogPostView) uint { return p.ID }

// Store holds the lists the directory and blog pages edit and applies each
// successful write locally instead of refetching. Category creates refetch
// because the server decides their position.
type Store struct {
	client *Client

	mu         sync.RWMutex
	directory  Directory
	categories []models.BlogCategory
	posts      []views.BlogPostView
}

func NewStore(client *Client) *Store {
	return &Store{client: client}
}

// Refresh reloads the directory. Collections that fail keep their previous
// contents so a flaky fetch does not blank the page.
func (s *Store) Refresh(ctx context.Context) Directory {
	fresh := LoadDirectory(ctx, s.client)

	s.mu.Lock()
	defer s.mu.Unlock()
	if fresh.Err(CollectionRegions) != nil && s.directory.Regions != nil {
		fresh.Regions = s.directory.Regions
	}
	if fresh.Err(CollectionUniversities) != nil && s.directory.Universities != nil {
		fresh.Universities = s.directory.Universities
	}
	if fresh.Err(CollectionRegionalStaff) != nil && s.directory.RegionalStaff != nil {
		fresh.RegionalStaff = s.directory.RegionalStaff
	}
	if fresh.Err(CollectionSmallGroups) != nil && s.directory.SmallGroups != nil {
		fresh.SmallGroups = s.directory.SmallGroups
	}
	s.directory = fresh
	return fresh
}

func (s *Store) Directory() Directory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.directory
}

func (s *Store) AddUniversity(ctx context.Context, in validation.UniversityInput) (models.University, error) {
	uni, err := s.client.CreateUniversity(ctx, in)
	if err != nil {
		return uni, err
	}
	s.mu.Lock()
	s.directory.Universities = Prepend(s.directory.Universities, uni)
	s.mu.Unlock()
	return uni, nil
}

func (s *Store) EditUniversity(ctx context.Context, id uint, in validation.UniversityInput) (models.University, error) {
	uni, err := s.client.UpdateUniversity(ctx, id, in)
	if err != nil {
		return uni, err
	}
	s.mu.Lock()
	s.directory.Universities = ReplaceByID(s.directory.Universities, uni, universityID)
	s.mu.Unlock()
	return uni, nil
}

func (s *Store) RemoveUniversity(ctx context.Context, id uint) error {
	if err := s.client.DeleteUniversity(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	s.directory.Universities = RemoveByID(s.directory.Universities, id, universityID)
	s.mu.Unlock()
	return nil
}

func (s *Store) AddSmallGroup(ctx context.Context, in validation.SmallGroupInput) (models.SmallGroup, error) {
	group, err := s.client.CreateSmallGroup(ctx, in)
	if err != nil {
		return group, err
	}
	s.mu.Lock()
	s.directory.SmallGroups = Prepend(s.directory.SmallGroups, group)
	s.mu.Unlock()
	return group, nil
}

func (s *Store) EditSmallGroup(ctx context.Context, id uint, in validation.SmallGroupInput) (models.SmallGroup, error) {
	group, err := s.client.UpdateSmallGroup(ctx, id, in)
	if err != nil {
		return group, err
	}
	s.mu.Lock()
	s.directory.SmallGroups = ReplaceByID(s.directory.SmallGroups, group, smallGroupID)
	s.mu.Unlock()
	return group, nil
}

func (s *Store) RemoveSmallGroup(ctx context.Context, id uint) error {
	if err := s.client.DeleteSmallGroup(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	s.directory.SmallGroups = RemoveByID(s.directory.SmallGroups, id, smallGroupID)
	s.mu.Unlock()
	return nil
}

func (s *Store) Categories() []models.BlogCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories
}

func (s *Store) RefreshCategories(ctx context.Context) ([]models.BlogCategory, error) {
	categories, err := s.client.Categories(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()
	return categories, nil
}

// AddCategory creates a category and refetches the list, since its place in
// the order is decided by the server.
func (s *Store) AddCategory(ctx context.Context, in validation.CategoryInput) (models.BlogCategory, error) {
	category, err := s.client.CreateCategory(ctx, in)
	if err != nil {
		return category, err
	}
	if _, err := s.RefreshCategories(ctx); err != nil {
		s.mu.Lock()
		s.categories = Prepend(s.categories, category)
		s.mu.Unlock()
	}
	return category, nil
}

// EditCategory replaces the category in place. A changed order takes effect
// on the next RefreshCategories.
func (s *Store) EditCategory(ctx context.Context, id uint, in validation.CategoryInput) (models.BlogCategory, error) {
	category, err := s.client.UpdateCategory(ctx, id, in)
	if err != nil {
		return category, err
	}
	s.mu.Lock()
	s.categories = ReplaceByID(s.categories, category, categoryID)
	s.mu.Unlock()
	return category, nil
}

func (s *Store) RemoveCategory(ctx context.Context, id uint) error {
	if err := s.client.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	s.categories = RemoveByID(s.categories, id, categoryID)
	s.mu.Unlock()
	return nil
}

func (s *Store) Posts() []views.BlogPostView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.posts
}

// RefreshPosts loads one page of the blog list. Zero limit leaves the server default.
func (s *Store) RefreshPosts(ctx context.Context, status string, categoryID *uint, limit, offset int) ([]views.BlogPostView, error) {
	list, err := s.client.BlogPosts(ctx, status, categoryID, limit, offset)
	if err != nil {
		return nil, err
	}
	posts := list.Posts
	if posts == nil {
		posts = []views.BlogPostView{}
	}
	s.mu.Lock()
	s.posts = posts
	s.mu.Unlock()
	return posts, nil
}

func (s *Store) AddPost(ctx context.Context, in validation.PostInput) (views.BlogPostView, error) {
	post, err := s.client.CreatePost(ctx, in)
	if err != nil {
		return post, err
	}
	s.mu.Lock()
	s.posts = Prepend(s.posts, post)
	s.mu.Unlock()
	return post, nil
}

func (s *Store) EditPost(ctx context.Context, id uint, in validation.PostInput) (views.BlogPostView, error) {
	post, err := s.client.UpdatePost(ctx, id, in)
	if err != nil {
		return post, err
	}
	s.mu.Lock()
	s.posts = ReplaceByID(s.posts, post, postID)
	s.mu.Unlock()
	return post, nil
}

func (s *Store) RemovePost(ctx context.Context, id uint) error {
	if err := s.client.DeletePost(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	s.posts = RemoveByID(s.posts, id, postID)
	s.mu.Unlock()
	return nil
}

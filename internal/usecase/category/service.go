// Package category provides use cases for the per-site category trees,
// including descendant-aware article listings.
package category

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vnnews/internal/domain/entity"
	"vnnews/internal/repository"
	"vnnews/internal/utils/slug"
)

// Sentinel errors for category use case operations.
var (
	// ErrCategoryNotFound indicates that the requested category was not found.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrSlugTaken indicates that a category with the derived slug already
	// exists on the site.
	ErrSlugTaken = errors.New("category with this slug already exists")
)

// CreateInput represents the input parameters for creating a category.
// The slug is derived from the name.
type CreateInput struct {
	Site         entity.Site
	Name         string
	ParentID     *int64
	Description  string
	Icon         string
	DisplayOrder int
	Visible      bool
}

// Service provides category management use cases.
type Service struct {
	Repo     repository.CategoryRepository
	Articles repository.ArticleRepository
}

// Node is a category with its resolved children, used to render the
// navigation tree.
type Node struct {
	Category *entity.Category
	Children []*Node
}

// Create validates the input and inserts a new category.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Category, error) {
	if !in.Site.Valid() {
		return nil, &entity.ValidationError{Field: "site", Message: "must be vn or en"}
	}
	if in.Name == "" {
		return nil, &entity.ValidationError{Field: "name", Message: "is required"}
	}

	c := &entity.Category{
		Site:         in.Site,
		Name:         in.Name,
		Slug:         slug.Make(in.Name),
		ParentID:     in.ParentID,
		Description:  in.Description,
		Icon:         in.Icon,
		DisplayOrder: in.DisplayOrder,
		Visible:      in.Visible,
		CreatedAt:    time.Now(),
	}
	if c.Slug == "" {
		return nil, &entity.ValidationError{Field: "name", Message: "yields an empty slug"}
	}

	if err := s.Repo.Create(ctx, c); err != nil {
		if errors.Is(err, entity.ErrDuplicate) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

// Get retrieves a category by ID. Returns ErrCategoryNotFound if absent.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Category, error) {
	c, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

// Tree returns the visible category tree for a site. Categories whose
// parent is hidden or missing surface as roots rather than vanishing.
func (s *Service) Tree(ctx context.Context, site entity.Site) ([]*Node, error) {
	categories, err := s.Repo.ListVisibleOrdered(ctx, site)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	nodes := make(map[int64]*Node, len(categories))
	for _, c := range categories {
		nodes[c.ID] = &Node{Category: c}
	}

	// Listing order is display order, so children keep it too.
	var roots []*Node
	for _, c := range categories {
		node := nodes[c.ID]
		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots, nil
}

// SetParent reassigns a category's parent. Cycle protection lives in the
// repository; the typed error passes through untouched.
func (s *Service) SetParent(ctx context.Context, id int64, parentID *int64) error {
	if err := s.Repo.SetParent(ctx, id, parentID); err != nil {
		if errors.Is(err, entity.ErrCategoryCycle) || errors.Is(err, entity.ErrNotFound) {
			return err
		}
		return fmt.Errorf("set category parent: %w", err)
	}
	return nil
}

// ArticlesBySlug returns published articles in the category identified by
// slug and in all of its descendants.
func (s *Service) ArticlesBySlug(ctx context.Context, site entity.Site, sl string, limit, offset int) ([]*entity.Article, error) {
	c, err := s.Repo.GetBySlug(ctx, site, sl)
	if err != nil {
		return nil, fmt.Errorf("get category by slug: %w", err)
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}

	descendants, err := s.Repo.DescendantIDs(ctx, site, c.ID)
	if err != nil {
		return nil, fmt.Errorf("category descendants: %w", err)
	}
	ids := append([]int64{c.ID}, descendants...)

	articles, err := s.Articles.ListByCategories(ctx, site, ids, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("articles by category: %w", err)
	}
	return articles, nil
}

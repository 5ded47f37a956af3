package repository

import (
	"context"

	"vnnews/internal/domain/entity"
)

type CategoryRepository interface {
	// Create inserts a category. Assigning a parent that is a descendant
	// of the node surfaces entity.ErrCategoryCycle.
	Create(ctx context.Context, category *entity.Category) error
	// Get returns (nil, nil) if the category does not exist.
	Get(ctx context.Context, id int64) (*entity.Category, error)
	GetBySlug(ctx context.Context, site entity.Site, slug string) (*entity.Category, error)
	// ListVisibleOrdered returns visible categories for a site in display
	// order.
	ListVisibleOrdered(ctx context.Context, site entity.Site) ([]*entity.Category, error)
	// DescendantIDs returns all transitive children of a category. The
	// traversal tracks visited ids and terminates even on a cyclic parent
	// graph.
	DescendantIDs(ctx context.Context, site entity.Site, parentID int64) ([]int64, error)
	// SetParent reassigns a category's parent with the same cycle check
	// as Create.
	SetParent(ctx context.Context, id int64, parentID *int64) error
}

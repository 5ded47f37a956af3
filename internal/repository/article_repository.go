// Package repository defines the persistence interfaces consumed by the
// use case layer. Implementations live under internal/infra/adapter.
package repository

import (
	"context"

	"vnnews/internal/domain/entity"
)

// ArticleListFilters contains optional filters for article listings.
type ArticleListFilters struct {
	Status         *entity.Status // Optional: filter by editorial status
	Limit          int            // 0 means no pagination
	Offset         int
	IncludeDeleted bool // Admin context only: include soft-deleted rows
}

// CreatorFilters narrows the per-creator listing used by the editor
// workspace. Search matches title and summary case-insensitively.
type CreatorFilters struct {
	Status         *entity.Status
	Search         string
	Limit          int
	Offset         int
	IncludeDeleted bool
}

// ArticlePatch is a typed partial update. Nil fields are left untouched,
// so unknown field names are unrepresentable by construction.
type ArticlePatch struct {
	Title      *string
	Content    *string
	Summary    *string
	Thumbnail  *string
	CategoryID *int64
	Status     *entity.Status
	IsFeatured *bool
	IsHot      *bool
}

type ArticleRepository interface {
	// Create inserts a new article. A slug collision surfaces as
	// entity.ErrDuplicate.
	Create(ctx context.Context, article *entity.Article) error
	// Get retrieves an article by ID. Soft-deleted rows are excluded
	// unless includeDeleted is set (admin context).
	// Returns (nil, nil) if not found.
	Get(ctx context.Context, id int64, includeDeleted bool) (*entity.Article, error)
	// GetBySlug retrieves a live article by site and slug. Soft-deleted
	// articles are never returned here.
	GetBySlug(ctx context.Context, site entity.Site, slug string) (*entity.Article, error)
	// List returns articles for a site ordered newest-created-first.
	List(ctx context.Context, site entity.Site, filters ArticleListFilters) ([]*entity.Article, error)
	// ListByCreator returns a creator's articles plus the total count
	// matching the filters before pagination is applied.
	ListByCreator(ctx context.Context, creatorID int64, filters CreatorFilters) ([]*entity.Article, int64, error)
	// ListByCategories returns published, live articles in any of the given
	// categories. An empty id list yields an empty result without querying.
	ListByCategories(ctx context.Context, site entity.Site, categoryIDs []int64, limit, offset int) ([]*entity.Article, error)
	// Featured returns published, live flagged articles, newest first.
	Featured(ctx context.Context, site entity.Site, limit int) ([]*entity.Article, error)
	// Hot returns published, live flagged articles ordered by view count.
	Hot(ctx context.Context, site entity.Site, limit int) ([]*entity.Article, error)
	// Search matches keyword against title, content and summary of
	// published, live articles.
	Search(ctx context.Context, site entity.Site, keyword string, limit int) ([]*entity.Article, error)
	// Update applies the patch and stamps updated_at.
	Update(ctx context.Context, id int64, patch ArticlePatch) error
	// Approve publishes an article: status, approver and published_at in
	// one statement.
	Approve(ctx context.Context, id, approverID int64) error
	// Reject sets status=rejected and the approver; a non-nil reason
	// appends one rejection-log row in the same transaction.
	Reject(ctx context.Context, id, approverID int64, reason *string) error
	// Rejections returns the append-only rejection log for an article,
	// newest first.
	Rejections(ctx context.Context, articleID int64) ([]*entity.Rejection, error)
	// SoftDelete hides the article from all user-facing queries.
	SoftDelete(ctx context.Context, id int64) error
	// IncrementView bumps the approximate view counter.
	IncrementView(ctx context.Context, id int64) error
	// CountByStatus returns article counts per status for a site,
	// excluding soft-deleted rows.
	CountByStatus(ctx context.Context, site entity.Site) (map[entity.Status]int64, error)
}

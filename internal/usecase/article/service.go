package article

import (
	"context"
	"fmt"
	"time"

	"vnnews/internal/domain/entity"
	"vnnews/internal/repository"
	"vnnews/internal/utils/slug"
)

// DefaultListLimit caps public listings when the caller does not supply
// an explicit page size.
const DefaultListLimit = 20

// CreateInput represents the input parameters for creating a new article.
// The slug is derived from the title; new articles always start as drafts.
type CreateInput struct {
	Site       entity.Site
	Title      string
	Content    string
	Summary    string
	Thumbnail  string
	CategoryID int64
	CreatedBy  int64
}

// UpdateInput represents the input parameters for updating an existing
// article. Fields with nil values will not be updated. Status is not part
// of the patch: status changes go through Submit, Approve, Reject, Hide
// and Unhide so the workflow table is always consulted.
type UpdateInput struct {
	ID         int64
	EditorID   int64
	Title      *string
	Content    *string
	Summary    *string
	Thumbnail  *string
	CategoryID *int64
	IsFeatured *bool
	IsHot      *bool
}

// Service provides article management use cases. It enforces the
// editorial workflow and delegates persistence to the repositories.
type Service struct {
	Repo       repository.ArticleRepository
	Categories repository.CategoryRepository
}

// Create validates the input and inserts a new draft article.
// Returns a ValidationError for bad fields, ErrCategoryNotFound when the
// category does not exist on the site, and ErrSlugTaken on a slug
// collision.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Article, error) {
	if !in.Site.Valid() {
		return nil, &entity.ValidationError{Field: "site", Message: "must be vn or en"}
	}
	if in.Title == "" {
		return nil, &entity.ValidationError{Field: "title", Message: "is required"}
	}
	if in.Content == "" {
		return nil, &entity.ValidationError{Field: "content", Message: "is required"}
	}
	if in.CategoryID <= 0 {
		return nil, &entity.ValidationError{Field: "categoryID", Message: "must be positive"}
	}

	category, err := s.Categories.Get(ctx, in.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if category == nil || category.Site != in.Site {
		return nil, ErrCategoryNotFound
	}

	now := time.Now()
	art := &entity.Article{
		Site:       in.Site,
		Slug:       slug.Make(in.Title),
		Title:      in.Title,
		Content:    in.Content,
		Summary:    in.Summary,
		Thumbnail:  in.Thumbnail,
		CategoryID: in.CategoryID,
		CreatedBy:  in.CreatedBy,
		Status:     entity.StatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if art.Slug == "" {
		return nil, &entity.ValidationError{Field: "title", Message: "yields an empty slug"}
	}

	if err := s.Repo.Create(ctx, art); err != nil {
		if isDuplicate(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("create article: %w", err)
	}
	return art, nil
}

// Get retrieves a single article by its ID.
// Returns ErrInvalidArticleID if the ID is not positive.
// Returns ErrArticleNotFound if the article does not exist.
func (s *Service) Get(ctx context.Context, id int64, includeDeleted bool) (*entity.Article, error) {
	if id <= 0 {
		return nil, ErrInvalidArticleID
	}
	art, err := s.Repo.Get(ctx, id, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return nil, ErrArticleNotFound
	}
	return art, nil
}

// GetBySlug retrieves a live article by its site and slug.
// Returns ErrArticleNotFound if no live article carries the slug.
func (s *Service) GetBySlug(ctx context.Context, site entity.Site, sl string) (*entity.Article, error) {
	art, err := s.Repo.GetBySlug(ctx, site, sl)
	if err != nil {
		return nil, fmt.Errorf("get article by slug: %w", err)
	}
	if art == nil {
		return nil, ErrArticleNotFound
	}
	return art, nil
}

// ListPublished returns published articles for a site, newest first.
func (s *Service) ListPublished(ctx context.Context, site entity.Site, limit, offset int) ([]*entity.Article, error) {
	status := entity.StatusPublished
	arts, err := s.Repo.List(ctx, site, repository.ArticleListFilters{
		Status: &status,
		Limit:  clampLimit(limit),
		Offset: offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list published articles: %w", err)
	}
	return arts, nil
}

// ListForReview returns pending articles awaiting moderation.
func (s *Service) ListForReview(ctx context.Context, site entity.Site, limit, offset int) ([]*entity.Article, error) {
	status := entity.StatusPending
	arts, err := s.Repo.List(ctx, site, repository.ArticleListFilters{
		Status: &status,
		Limit:  clampLimit(limit),
		Offset: offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list pending articles: %w", err)
	}
	return arts, nil
}

// ListByCreator returns an editor's own articles plus the total count
// before pagination.
func (s *Service) ListByCreator(ctx context.Context, creatorID int64, filters repository.CreatorFilters) ([]*entity.Article, int64, error) {
	if filters.Limit <= 0 {
		filters.Limit = DefaultListLimit
	}
	arts, total, err := s.Repo.ListByCreator(ctx, creatorID, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("list articles by creator: %w", err)
	}
	return arts, total, nil
}

// Featured returns the published articles flagged for the front page.
func (s *Service) Featured(ctx context.Context, site entity.Site, limit int) ([]*entity.Article, error) {
	arts, err := s.Repo.Featured(ctx, site, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("featured articles: %w", err)
	}
	return arts, nil
}

// Hot returns the published articles flagged as hot, most viewed first.
func (s *Service) Hot(ctx context.Context, site entity.Site, limit int) ([]*entity.Article, error) {
	arts, err := s.Repo.Hot(ctx, site, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("hot articles: %w", err)
	}
	return arts, nil
}

// Search finds published articles matching the keyword against title,
// content and summary.
func (s *Service) Search(ctx context.Context, site entity.Site, keyword string, limit int) ([]*entity.Article, error) {
	if keyword == "" {
		return []*entity.Article{}, nil
	}
	arts, err := s.Repo.Search(ctx, site, keyword, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	return arts, nil
}

// Update applies a partial edit to an article's content fields. Only the
// creator may edit; admins bypass the ownership check by passing
// EditorID 0. The slug is fixed at creation and never rewritten here,
// so title edits cannot collide.
func (s *Service) Update(ctx context.Context, in UpdateInput) error {
	if in.ID <= 0 {
		return ErrInvalidArticleID
	}

	art, err := s.Repo.Get(ctx, in.ID, false)
	if err != nil {
		return fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return ErrArticleNotFound
	}
	if in.EditorID != 0 && art.CreatedBy != in.EditorID {
		return ErrNotOwner
	}

	patch := repository.ArticlePatch{
		Content:    in.Content,
		Summary:    in.Summary,
		Thumbnail:  in.Thumbnail,
		IsFeatured: in.IsFeatured,
		IsHot:      in.IsHot,
	}
	if in.Title != nil {
		if *in.Title == "" {
			return &entity.ValidationError{Field: "title", Message: "cannot be empty"}
		}
		patch.Title = in.Title
	}
	if in.CategoryID != nil {
		category, err := s.Categories.Get(ctx, *in.CategoryID)
		if err != nil {
			return fmt.Errorf("get category: %w", err)
		}
		if category == nil || category.Site != art.Site {
			return ErrCategoryNotFound
		}
		patch.CategoryID = in.CategoryID
	}

	if err := s.Repo.Update(ctx, in.ID, patch); err != nil {
		if isDuplicate(err) {
			return ErrSlugTaken
		}
		return fmt.Errorf("update article: %w", err)
	}
	return nil
}

// Submit moves an article into the review queue. Allowed from draft only;
// a rejected article must first be reworked back to draft.
func (s *Service) Submit(ctx context.Context, id, editorID int64) error {
	art, err := s.owned(ctx, id, editorID)
	if err != nil {
		return err
	}
	return s.transition(ctx, art, entity.StatusPending)
}

// Revise returns an article to draft so its owner can rework it. The
// workflow table permits this from every status.
func (s *Service) Revise(ctx context.Context, id, editorID int64) error {
	art, err := s.owned(ctx, id, editorID)
	if err != nil {
		return err
	}
	return s.transition(ctx, art, entity.StatusDraft)
}

// Hide takes a published article off the site without deleting it.
func (s *Service) Hide(ctx context.Context, id int64) error {
	art, err := s.Get(ctx, id, false)
	if err != nil {
		return err
	}
	return s.transition(ctx, art, entity.StatusHidden)
}

// Unhide restores a hidden article to published.
func (s *Service) Unhide(ctx context.Context, id int64) error {
	art, err := s.Get(ctx, id, false)
	if err != nil {
		return err
	}
	return s.transition(ctx, art, entity.StatusPublished)
}

// Approve publishes a pending article, recording the approver and the
// publication time. Only pending articles can be approved.
func (s *Service) Approve(ctx context.Context, id, approverID int64) error {
	art, err := s.Get(ctx, id, false)
	if err != nil {
		return err
	}
	if art.Status != entity.StatusPending {
		return &entity.TransitionError{From: art.Status, To: entity.StatusPublished}
	}
	if err := s.Repo.Approve(ctx, id, approverID); err != nil {
		return fmt.Errorf("approve article: %w", err)
	}
	return nil
}

// Reject declines a pending article. A non-nil reason is recorded in the
// rejection log together with the status change.
func (s *Service) Reject(ctx context.Context, id, approverID int64, reason *string) error {
	art, err := s.Get(ctx, id, false)
	if err != nil {
		return err
	}
	if art.Status != entity.StatusPending {
		return &entity.TransitionError{From: art.Status, To: entity.StatusRejected}
	}
	if err := s.Repo.Reject(ctx, id, approverID, reason); err != nil {
		return fmt.Errorf("reject article: %w", err)
	}
	return nil
}

// Rejections returns the rejection history of an article, newest first.
func (s *Service) Rejections(ctx context.Context, id int64) ([]*entity.Rejection, error) {
	if id <= 0 {
		return nil, ErrInvalidArticleID
	}
	rejections, err := s.Repo.Rejections(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("article rejections: %w", err)
	}
	return rejections, nil
}

// Delete soft-deletes an article. It disappears from all user-facing
// queries but stays in the store.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidArticleID
	}
	if err := s.Repo.SoftDelete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrArticleNotFound
		}
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

// RecordView bumps the article's view counter. Lost precision under
// concurrency is acceptable; the counter is approximate by contract.
func (s *Service) RecordView(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidArticleID
	}
	if err := s.Repo.IncrementView(ctx, id); err != nil {
		return fmt.Errorf("record view: %w", err)
	}
	return nil
}

// CountByStatus returns per-status article counts for the admin
// dashboard and the worker's gauge refresh.
func (s *Service) CountByStatus(ctx context.Context, site entity.Site) (map[entity.Status]int64, error) {
	counts, err := s.Repo.CountByStatus(ctx, site)
	if err != nil {
		return nil, fmt.Errorf("count articles by status: %w", err)
	}
	return counts, nil
}

// owned fetches an article and verifies the caller created it. EditorID 0
// bypasses the check for admin callers.
func (s *Service) owned(ctx context.Context, id, editorID int64) (*entity.Article, error) {
	art, err := s.Get(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if editorID != 0 && art.CreatedBy != editorID {
		return nil, ErrNotOwner
	}
	return art, nil
}

// transition applies a status change after consulting the workflow table.
func (s *Service) transition(ctx context.Context, art *entity.Article, to entity.Status) error {
	if !entity.CanTransition(art.Status, to) {
		return &entity.TransitionError{From: art.Status, To: to}
	}
	if err := s.Repo.Update(ctx, art.ID, repository.ArticlePatch{Status: &to}); err != nil {
		return fmt.Errorf("set article status: %w", err)
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

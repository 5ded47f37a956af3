// Package comment provides the reader comment use cases. Comments only
// attach to published, non-deleted articles.
package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vnnews/internal/domain/entity"
	"vnnews/internal/repository"
)

// maxContentLen caps a single comment body.
const maxContentLen = 2000

// DefaultListLimit applies when a caller does not specify a page size.
const DefaultListLimit = 20

// ErrArticleNotFound indicates that the target article does not exist or
// is not publicly visible.
var ErrArticleNotFound = errors.New("article not found")

// Service provides the comment use cases.
type Service struct {
	Comments repository.CommentRepository
	Articles repository.ArticleRepository

	// Now is swappable in tests. Nil means time.Now.
	Now func() time.Time
}

func (s *Service) clock() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Add creates a comment by userID on the given article.
func (s *Service) Add(ctx context.Context, articleID, userID int64, content string) (*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, &entity.ValidationError{Field: "content", Message: "content is required"}
	}
	if len(content) > maxContentLen {
		return nil, &entity.ValidationError{Field: "content", Message: "content is too long"}
	}

	art, err := s.visibleArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}

	c := &entity.Comment{
		ArticleID: art.ID,
		UserID:    userID,
		Content:   content,
		CreatedAt: s.clock(),
	}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}

// List returns comments on the given article, newest first.
func (s *Service) List(ctx context.Context, articleID int64, limit, offset int) ([]*entity.Comment, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if _, err := s.visibleArticle(ctx, articleID); err != nil {
		return nil, err
	}
	comments, err := s.Comments.ListByArticle(ctx, articleID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// visibleArticle resolves an article readers are allowed to comment on.
func (s *Service) visibleArticle(ctx context.Context, articleID int64) (*entity.Article, error) {
	if articleID <= 0 {
		return nil, ErrArticleNotFound
	}
	art, err := s.Articles.Get(ctx, articleID, false)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if art == nil || art.Status != entity.StatusPublished {
		return nil, ErrArticleNotFound
	}
	return art, nil
}

package repository

import (
	"context"

	"vnnews/internal/domain/entity"
)

type CommentRepository interface {
	// Create inserts a comment and fills in the generated id.
	Create(ctx context.Context, comment *entity.Comment) error
	// ListByArticle returns comments for one article, newest first.
	// limit == 0 disables pagination.
	ListByArticle(ctx context.Context, articleID int64, limit, offset int) ([]*entity.Comment, error)
}

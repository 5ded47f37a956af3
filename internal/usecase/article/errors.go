// Package article provides use cases for the editorial article workflow.
// It validates input, enforces the status transition table and delegates
// persistence to the repository layer.
package article

import (
	"errors"

	"vnnews/internal/domain/entity"
)

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that the requested article was not found.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidArticleID indicates that the provided article ID is invalid.
	// Article IDs must be positive integers.
	ErrInvalidArticleID = errors.New("invalid article ID")

	// ErrCategoryNotFound indicates that the target category does not exist
	// on the article's site.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrSlugTaken indicates that an article with the derived slug already
	// exists on the site.
	ErrSlugTaken = errors.New("article with this slug already exists")

	// ErrNotOwner indicates that the caller is not the creator of the
	// article being modified.
	ErrNotOwner = errors.New("article belongs to another editor")
)

func isDuplicate(err error) bool { return errors.Is(err, entity.ErrDuplicate) }

func isNotFound(err error) bool { return errors.Is(err, entity.ErrNotFound) }

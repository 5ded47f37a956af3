package postgres

import (
	"fmt"
	"strings"

	"vnnews/internal/repository"
)

// buildCreatorWhere builds the WHERE clause and arguments for the
// per-creator listing. The same clause backs both the COUNT and the
// SELECT query so the total always matches the page contents.
func buildCreatorWhere(creatorID int64, filters repository.CreatorFilters) (clause string, args []any) {
	args = []any{creatorID}
	conditions := []string{"created_by = $1"}

	if !filters.IncludeDeleted {
		conditions = append(conditions, "is_deleted = FALSE")
	}
	if filters.Status != nil {
		args = append(args, *filters.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filters.Search != "" {
		args = append(args, likePattern(filters.Search))
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR summary ILIKE $%d)", n, n))
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

// buildPatchSet turns a typed patch into SET fragments. updated_at is
// always stamped, even for an empty patch.
func buildPatchSet(patch repository.ArticlePatch) (sets []string, args []any) {
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Content != nil {
		add("content", *patch.Content)
	}
	if patch.Summary != nil {
		add("summary", *patch.Summary)
	}
	if patch.Thumbnail != nil {
		add("thumbnail", *patch.Thumbnail)
	}
	if patch.CategoryID != nil {
		add("category_id", *patch.CategoryID)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.IsFeatured != nil {
		add("is_featured", *patch.IsFeatured)
	}
	if patch.IsHot != nil {
		add("is_hot", *patch.IsHot)
	}

	sets = append(sets, "updated_at = now()")
	return sets, args
}

// likePattern escapes ILIKE metacharacters in user input and wraps it
// for substring matching.
func likePattern(keyword string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(keyword)
	return "%" + escaped + "%"
}

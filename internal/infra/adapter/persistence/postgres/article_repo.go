// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"vnnews/internal/domain/entity"
	"vnnews/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// articleColumns is the scan order shared by every article query.
const articleColumns = `id, site, slug, title, content, summary, thumbnail, category_id,
created_by, approved_by, status, is_featured, is_hot, view_count, is_deleted,
published_at, created_at, updated_at`

type ArticleRepo struct {
	db *sql.DB
}

func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

func scanArticle(row interface{ Scan(...any) error }) (*entity.Article, error) {
	var a entity.Article
	err := row.Scan(&a.ID, &a.Site, &a.Slug, &a.Title, &a.Content, &a.Summary,
		&a.Thumbnail, &a.CategoryID, &a.CreatedBy, &a.ApprovedBy, &a.Status,
		&a.IsFeatured, &a.IsHot, &a.ViewCount, &a.IsDeleted,
		&a.PublishedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectArticles(rows *sql.Rows) ([]*entity.Article, error) {
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, 20)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("Scan: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// isUniqueViolation reports whether the driver error is a unique
// constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles
       (site, slug, title, content, summary, thumbnail, category_id,
        created_by, status, is_featured, is_hot, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		article.Site, article.Slug, article.Title, article.Content,
		article.Summary, article.Thumbnail, article.CategoryID,
		article.CreatedBy, article.Status, article.IsFeatured, article.IsHot,
		article.CreatedAt, article.UpdatedAt,
	).Scan(&article.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("Create: slug %q: %w", article.Slug, entity.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) Get(ctx context.Context, id int64, includeDeleted bool) (*entity.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE id = $1`, articleColumns)
	if !includeDeleted {
		query += ` AND is_deleted = FALSE`
	}
	article, err := scanArticle(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return article, nil
}

func (repo *ArticleRepo) GetBySlug(ctx context.Context, site entity.Site, slug string) (*entity.Article, error) {
	query := fmt.Sprintf(`
SELECT %s FROM articles
WHERE site = $1 AND slug = $2 AND is_deleted = FALSE
LIMIT 1`, articleColumns)
	article, err := scanArticle(repo.db.QueryRowContext(ctx, query, site, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetBySlug: %w", err)
	}
	return article, nil
}

func (repo *ArticleRepo) List(ctx context.Context, site entity.Site, filters repository.ArticleListFilters) ([]*entity.Article, error) {
	conditions := []string{"site = $1"}
	args := []any{site}

	if !filters.IncludeDeleted {
		conditions = append(conditions, "is_deleted = FALSE")
	}
	if filters.Status != nil {
		args = append(args, *filters.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM articles WHERE %s ORDER BY created_at DESC`,
		articleColumns, strings.Join(conditions, " AND "))
	// Pagination applies only when a limit is given.
	if filters.Limit > 0 {
		args = append(args, filters.Limit, filters.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return collectArticles(rows)
}

func (repo *ArticleRepo) ListByCreator(ctx context.Context, creatorID int64, filters repository.CreatorFilters) ([]*entity.Article, int64, error) {
	whereClause, args := buildCreatorWhere(creatorID, filters)

	// Total is counted before pagination so callers can build page controls.
	var total int64
	countQuery := "SELECT COUNT(*) FROM articles " + whereClause
	if err := repo.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ListByCreator: count: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM articles %s ORDER BY created_at DESC`,
		articleColumns, whereClause)
	if filters.Limit > 0 {
		args = append(args, filters.Limit, filters.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ListByCreator: %w", err)
	}
	articles, err := collectArticles(rows)
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

func (repo *ArticleRepo) ListByCategories(ctx context.Context, site entity.Site, categoryIDs []int64, limit, offset int) ([]*entity.Article, error) {
	if len(categoryIDs) == 0 {
		return []*entity.Article{}, nil
	}

	args := []any{site}
	placeholders := make([]string, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		args = append(args, id)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	query := fmt.Sprintf(`
SELECT %s FROM articles
WHERE site = $1 AND category_id IN (%s)
  AND status = 'published' AND is_deleted = FALSE
ORDER BY created_at DESC`, articleColumns, strings.Join(placeholders, ", "))
	if limit > 0 {
		args = append(args, limit, offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListByCategories: %w", err)
	}
	return collectArticles(rows)
}

func (repo *ArticleRepo) Featured(ctx context.Context, site entity.Site, limit int) ([]*entity.Article, error) {
	query := fmt.Sprintf(`
SELECT %s FROM articles
WHERE site = $1 AND is_featured = TRUE
  AND status = 'published' AND is_deleted = FALSE
ORDER BY created_at DESC
LIMIT $2`, articleColumns)
	rows, err := repo.db.QueryContext(ctx, query, site, limit)
	if err != nil {
		return nil, fmt.Errorf("Featured: %w", err)
	}
	return collectArticles(rows)
}

func (repo *ArticleRepo) Hot(ctx context.Context, site entity.Site, limit int) ([]*entity.Article, error) {
	query := fmt.Sprintf(`
SELECT %s FROM articles
WHERE site = $1 AND is_hot = TRUE
  AND status = 'published' AND is_deleted = FALSE
ORDER BY view_count DESC
LIMIT $2`, articleColumns)
	rows, err := repo.db.QueryContext(ctx, query, site, limit)
	if err != nil {
		return nil, fmt.Errorf("Hot: %w", err)
	}
	return collectArticles(rows)
}

func (repo *ArticleRepo) Search(ctx context.Context, site entity.Site, keyword string, limit int) ([]*entity.Article, error) {
	query := fmt.Sprintf(`
SELECT %s FROM articles
WHERE site = $1
  AND (title ILIKE $2 OR content ILIKE $2 OR summary ILIKE $2)
  AND status = 'published' AND is_deleted = FALSE
ORDER BY created_at DESC
LIMIT $3`, articleColumns)
	rows, err := repo.db.QueryContext(ctx, query, site, likePattern(keyword), limit)
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}
	return collectArticles(rows)
}

func (repo *ArticleRepo) Update(ctx context.Context, id int64, patch repository.ArticlePatch) error {
	sets, args := buildPatchSet(patch)
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE articles SET %s WHERE id = $%d AND is_deleted = FALSE`,
		strings.Join(sets, ", "), len(args))

	res, err := repo.db.ExecContext(ctx, query, args...)
	if isUniqueViolation(err) {
		return fmt.Errorf("Update: %w", entity.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *ArticleRepo) Approve(ctx context.Context, id, approverID int64) error {
	const query = `
UPDATE articles SET
       status       = 'published',
       approved_by  = $1,
       published_at = now(),
       updated_at   = now()
WHERE id = $2 AND is_deleted = FALSE`
	res, err := repo.db.ExecContext(ctx, query, approverID, id)
	if err != nil {
		return fmt.Errorf("Approve: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Approve: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *ArticleRepo) Reject(ctx context.Context, id, approverID int64, reason *string) error {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Reject: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const update = `
UPDATE articles SET
       status      = 'rejected',
       approved_by = $1,
       updated_at  = now()
WHERE id = $2 AND is_deleted = FALSE`
	res, err := tx.ExecContext(ctx, update, approverID, id)
	if err != nil {
		return fmt.Errorf("Reject: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Reject: %w", entity.ErrNotFound)
	}

	// No reason, no log row. The status change stands either way.
	if reason != nil {
		const insert = `
INSERT INTO article_rejections (article_id, rejected_by, reason, created_at)
VALUES ($1, $2, $3, now())`
		if _, err := tx.ExecContext(ctx, insert, id, approverID, *reason); err != nil {
			return fmt.Errorf("Reject: log: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Reject: commit: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) Rejections(ctx context.Context, articleID int64) ([]*entity.Rejection, error) {
	const query = `
SELECT id, article_id, rejected_by, reason, created_at
FROM article_rejections
WHERE article_id = $1
ORDER BY created_at DESC`
	rows, err := repo.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("Rejections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	rejections := make([]*entity.Rejection, 0, 4)
	for rows.Next() {
		var r entity.Rejection
		if err := rows.Scan(&r.ID, &r.ArticleID, &r.RejectedBy, &r.Reason, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("Rejections: Scan: %w", err)
		}
		rejections = append(rejections, &r)
	}
	return rejections, rows.Err()
}

func (repo *ArticleRepo) SoftDelete(ctx context.Context, id int64) error {
	const query = `
UPDATE articles SET is_deleted = TRUE, updated_at = now()
WHERE id = $1 AND is_deleted = FALSE`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("SoftDelete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("SoftDelete: %w", entity.ErrNotFound)
	}
	return nil
}

// IncrementView bumps the counter in a single statement, so concurrent
// views never lose updates.
func (repo *ArticleRepo) IncrementView(ctx context.Context, id int64) error {
	const query = `
UPDATE articles SET view_count = view_count + 1
WHERE id = $1 AND is_deleted = FALSE`
	if _, err := repo.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("IncrementView: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) CountByStatus(ctx context.Context, site entity.Site) (map[entity.Status]int64, error) {
	const query = `
SELECT status, COUNT(*)
FROM articles
WHERE site = $1 AND is_deleted = FALSE
GROUP BY status`
	rows, err := repo.db.QueryContext(ctx, query, site)
	if err != nil {
		return nil, fmt.Errorf("CountByStatus: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[entity.Status]int64)
	for rows.Next() {
		var status entity.Status
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("CountByStatus: Scan: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"vnnews/internal/domain/entity"
	"vnnews/internal/repository"
)

const categoryColumns = `id, site, name, slug, parent_id, description, icon,
display_order, visible, created_at`

type CategoryRepo struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) repository.CategoryRepository {
	return &CategoryRepo{db: db}
}

func scanCategory(row interface{ Scan(...any) error }) (*entity.Category, error) {
	var c entity.Category
	err := row.Scan(&c.ID, &c.Site, &c.Name, &c.Slug, &c.ParentID,
		&c.Description, &c.Icon, &c.DisplayOrder, &c.Visible, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (repo *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	if category.ParentID != nil {
		// Write-time cycle protection: the parent must not already be a
		// descendant of this node. A brand-new category has no children,
		// but creation shares the check with SetParent via the parent's
		// existence on the same site tree.
		parent, err := repo.Get(ctx, *category.ParentID)
		if err != nil {
			return fmt.Errorf("Create: %w", err)
		}
		if parent == nil || parent.Site != category.Site {
			return fmt.Errorf("Create: parent %d: %w", *category.ParentID, entity.ErrNotFound)
		}
	}

	const query = `
INSERT INTO categories
       (site, name, slug, parent_id, description, icon, display_order, visible, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		category.Site, category.Name, category.Slug, category.ParentID,
		category.Description, category.Icon, category.DisplayOrder,
		category.Visible, category.CreatedAt,
	).Scan(&category.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("Create: slug %q: %w", category.Slug, entity.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *CategoryRepo) Get(ctx context.Context, id int64) (*entity.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE id = $1 LIMIT 1`, categoryColumns)
	category, err := scanCategory(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return category, nil
}

func (repo *CategoryRepo) GetBySlug(ctx context.Context, site entity.Site, slug string) (*entity.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE site = $1 AND slug = $2 LIMIT 1`, categoryColumns)
	category, err := scanCategory(repo.db.QueryRowContext(ctx, query, site, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetBySlug: %w", err)
	}
	return category, nil
}

func (repo *CategoryRepo) ListVisibleOrdered(ctx context.Context, site entity.Site) ([]*entity.Category, error) {
	query := fmt.Sprintf(`
SELECT %s FROM categories
WHERE site = $1 AND visible = TRUE
ORDER BY display_order, id`, categoryColumns)
	rows, err := repo.db.QueryContext(ctx, query, site)
	if err != nil {
		return nil, fmt.Errorf("ListVisibleOrdered: %w", err)
	}
	defer func() { _ = rows.Close() }()

	categories := make([]*entity.Category, 0, 20)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("ListVisibleOrdered: Scan: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// DescendantIDs loads the visible adjacency list for the site once, then
// walks it with an explicit stack. The visited set guarantees termination
// even if stored data contains a parent cycle.
func (repo *CategoryRepo) DescendantIDs(ctx context.Context, site entity.Site, parentID int64) ([]int64, error) {
	return repo.descendantIDs(ctx, site, parentID, true)
}

func (repo *CategoryRepo) descendantIDs(ctx context.Context, site entity.Site, parentID int64, visibleOnly bool) ([]int64, error) {
	query := `SELECT id, parent_id FROM categories WHERE site = $1`
	if visibleOnly {
		query += ` AND visible = TRUE`
	}
	rows, err := repo.db.QueryContext(ctx, query, site)
	if err != nil {
		return nil, fmt.Errorf("DescendantIDs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	children := make(map[int64][]int64)
	for rows.Next() {
		var id int64
		var parent *int64
		if err := rows.Scan(&id, &parent); err != nil {
			return nil, fmt.Errorf("DescendantIDs: Scan: %w", err)
		}
		if parent != nil {
			children[*parent] = append(children[*parent], id)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("DescendantIDs: %w", err)
	}

	descendants := []int64{}
	visited := map[int64]bool{parentID: true}
	stack := []int64{parentID}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range children[current] {
			if visited[child] {
				continue
			}
			visited[child] = true
			descendants = append(descendants, child)
			stack = append(stack, child)
		}
	}
	return descendants, nil
}

func (repo *CategoryRepo) SetParent(ctx context.Context, id int64, parentID *int64) error {
	category, err := repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("SetParent: %w", err)
	}
	if category == nil {
		return fmt.Errorf("SetParent: %w", entity.ErrNotFound)
	}

	if parentID != nil {
		if *parentID == id {
			return fmt.Errorf("SetParent: %w", entity.ErrCategoryCycle)
		}
		// Hidden categories still parent rows, so the cycle check must
		// walk the whole tree, not just the visible part.
		descendants, err := repo.descendantIDs(ctx, category.Site, id, false)
		if err != nil {
			return fmt.Errorf("SetParent: %w", err)
		}
		for _, d := range descendants {
			if d == *parentID {
				return fmt.Errorf("SetParent: %w", entity.ErrCategoryCycle)
			}
		}
	}

	const query = `UPDATE categories SET parent_id = $1 WHERE id = $2`
	if _, err := repo.db.ExecContext(ctx, query, parentID, id); err != nil {
		return fmt.Errorf("SetParent: %w", err)
	}
	return nil
}

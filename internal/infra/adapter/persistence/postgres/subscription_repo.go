package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"vnnews/internal/domain/entity"
	"vnnews/internal/repository"
)

const subscriptionColumns = `id, email, active, unsubscribe_token, created_at, updated_at`

type SubscriptionRepo struct {
	db *sql.DB
}

func NewSubscriptionRepo(db *sql.DB) repository.SubscriptionRepository {
	return &SubscriptionRepo{db: db}
}

// Upsert inserts a subscription or, when the email already exists,
// reactivates it. The original unsubscribe token is kept on conflict so
// links in previously sent mail stay valid.
func (repo *SubscriptionRepo) Upsert(ctx context.Context, sub *entity.Subscription) error {
	const query = `
INSERT INTO newsletter_subscriptions
       (email, active, unsubscribe_token, created_at, updated_at)
VALUES ($1, TRUE, $2, $3, $3)
ON CONFLICT (email) DO UPDATE SET active = TRUE, updated_at = EXCLUDED.updated_at
RETURNING id, unsubscribe_token`
	err := repo.db.QueryRowContext(ctx, query,
		sub.Email, sub.UnsubscribeToken, sub.CreatedAt,
	).Scan(&sub.ID, &sub.UnsubscribeToken)
	if err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}
	sub.Active = true
	return nil
}

func (repo *SubscriptionRepo) GetByEmail(ctx context.Context, email string) (*entity.Subscription, error) {
	query := fmt.Sprintf(`SELECT %s FROM newsletter_subscriptions WHERE email = $1 LIMIT 1`, subscriptionColumns)
	var s entity.Subscription
	err := repo.db.QueryRowContext(ctx, query, email).
		Scan(&s.ID, &s.Email, &s.Active, &s.UnsubscribeToken, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByEmail: %w", err)
	}
	return &s, nil
}

func (repo *SubscriptionRepo) Unsubscribe(ctx context.Context, token string) error {
	const query = `
UPDATE newsletter_subscriptions SET active = FALSE, updated_at = now()
WHERE unsubscribe_token = $1`
	res, err := repo.db.ExecContext(ctx, query, token)
	if err != nil {
		return fmt.Errorf("Unsubscribe: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Unsubscribe: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *SubscriptionRepo) ListActive(ctx context.Context) ([]*entity.Subscription, error) {
	query := fmt.Sprintf(`SELECT %s FROM newsletter_subscriptions WHERE active = TRUE ORDER BY id`, subscriptionColumns)
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListActive: %w", err)
	}
	defer func() { _ = rows.Close() }()

	subs := make([]*entity.Subscription, 0, 50)
	for rows.Next() {
		var s entity.Subscription
		if err := rows.Scan(&s.ID, &s.Email, &s.Active, &s.UnsubscribeToken, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("ListActive: Scan: %w", err)
		}
		subs = append(subs, &s)
	}
	return subs, rows.Err()
}

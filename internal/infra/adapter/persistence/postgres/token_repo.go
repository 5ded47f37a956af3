package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vnnews/internal/domain/entity"
	"vnnews/internal/repository"
)

type TokenRepo struct {
	db *sql.DB
}

func NewTokenRepo(db *sql.DB) repository.TokenRepository {
	return &TokenRepo{db: db}
}

// Issue invalidates all prior unused tokens for the user and inserts the
// new one inside a single transaction, so a crash can never leave two
// live tokens.
func (repo *TokenRepo) Issue(ctx context.Context, token *entity.PasswordResetToken) error {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Issue: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const invalidate = `
UPDATE password_reset_tokens SET used = TRUE
WHERE user_id = $1 AND used = FALSE`
	if _, err := tx.ExecContext(ctx, invalidate, token.UserID); err != nil {
		return fmt.Errorf("Issue: invalidate: %w", err)
	}

	const insert = `
INSERT INTO password_reset_tokens (user_id, token, expires_at, used, created_at)
VALUES ($1, $2, $3, FALSE, $4)
RETURNING id`
	err = tx.QueryRowContext(ctx, insert,
		token.UserID, token.Token, token.ExpiresAt, token.CreatedAt,
	).Scan(&token.ID)
	if err != nil {
		return fmt.Errorf("Issue: insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Issue: commit: %w", err)
	}
	return nil
}

// Consume atomically claims a live token. The UPDATE only matches tokens
// that are unused and unexpired, so double redemption is impossible.
func (repo *TokenRepo) Consume(ctx context.Context, token string, now time.Time) (*entity.PasswordResetToken, error) {
	const query = `
UPDATE password_reset_tokens SET used = TRUE
WHERE token = $1 AND used = FALSE AND expires_at > $2
RETURNING id, user_id, token, expires_at, used, created_at`
	var t entity.PasswordResetToken
	err := repo.db.QueryRowContext(ctx, query, token, now).
		Scan(&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.Used, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Consume: %w", err)
	}
	return &t, nil
}

func (repo *TokenRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM password_reset_tokens WHERE expires_at <= $1`
	res, err := repo.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("PurgeExpired: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("PurgeExpired: %w", err)
	}
	return n, nil
}

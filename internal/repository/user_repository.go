package repository

import (
	"context"

	"vnnews/internal/domain/entity"
)

type UserRepository interface {
	// Create inserts a new user. The password hash must already be
	// computed; plaintext never reaches this layer.
	Create(ctx context.Context, user *entity.User) error
	// Get* lookups return (nil, nil) when no row matches.
	Get(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// SetActive locks or unlocks an account.
	SetActive(ctx context.Context, id int64, active bool) error
	// UpdatePasswordHash replaces the stored hash (password reset flow).
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}

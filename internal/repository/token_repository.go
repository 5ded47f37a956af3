package repository

import (
	"context"
	"time"

	"vnnews/internal/domain/entity"
)

type TokenRepository interface {
	// Issue marks every prior unused token for the user as used and
	// inserts the new token, all inside a single transaction, so at most
	// one token per user is live at any time.
	Issue(ctx context.Context, token *entity.PasswordResetToken) error
	// Consume looks up a token that is unused and unexpired at the given
	// instant and marks it used. Returns (nil, nil) if no such token.
	Consume(ctx context.Context, token string, now time.Time) (*entity.PasswordResetToken, error)
	// PurgeExpired deletes tokens whose expiry is in the past and returns
	// the number removed. Run by the maintenance worker.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

package repository

import (
	"context"

	"vnnews/internal/domain/entity"
)

type SubscriptionRepository interface {
	// Upsert inserts a subscription or reactivates an inactive one for
	// the same email, keeping the email unique.
	Upsert(ctx context.Context, sub *entity.Subscription) error
	GetByEmail(ctx context.Context, email string) (*entity.Subscription, error)
	// Unsubscribe deactivates the subscription carrying the token.
	// Returns entity.ErrNotFound if the token is unknown.
	Unsubscribe(ctx context.Context, token string) error
	ListActive(ctx context.Context) ([]*entity.Subscription, error)
}

// SettingsRepository reads and writes the generic key-value settings
// store. The mailer consumes category "smtp".
type SettingsRepository interface {
	GetCategory(ctx context.Context, category string) (map[string]string, error)
	Upsert(ctx context.Context, setting *entity.Setting) error
}

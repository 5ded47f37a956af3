package mailer

import (
	"context"

	"vnnews/internal/domain/entity"
)

// Noop discards all mail. Used in tests and in environments where
// outbound mail is deliberately disabled.
type Noop struct{}

func (Noop) SendPasswordReset(context.Context, entity.Site, string, string) error { return nil }

func (Noop) SendSubscriptionConfirmation(context.Context, entity.Site, string, string) error {
	return nil
}

func (Noop) SendDigest(context.Context, entity.Site, string, string, []*entity.Article) error {
	return nil
}

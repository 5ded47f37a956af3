// Package newsletter provides use cases for newsletter subscriptions and
// the periodic digest mailing.
package newsletter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"vnnews/internal/domain/entity"
	"vnnews/internal/repository"
)

const (
	// digestArticles is how many recent published articles a digest carries.
	digestArticles = 10
	// digestConcurrency bounds parallel SMTP sends during a digest run.
	digestConcurrency = 5
)

// ErrUnknownToken indicates an unsubscribe token that matches no
// subscription.
var ErrUnknownToken = errors.New("unknown unsubscribe token")

// Mailer delivers subscription mail. Failures are treated as soft: the
// subscription state always wins over the mail.
type Mailer interface {
	SendSubscriptionConfirmation(ctx context.Context, site entity.Site, to, unsubscribeToken string) error
	SendDigest(ctx context.Context, site entity.Site, to, unsubscribeToken string, articles []*entity.Article) error
}

// Service provides newsletter use cases.
type Service struct {
	Subs     repository.SubscriptionRepository
	Articles repository.ArticleRepository
	Mailer   Mailer
}

// Subscribe registers an email address, reactivating it if it had
// unsubscribed before. The confirmation mail is best effort.
func (s *Service) Subscribe(ctx context.Context, site entity.Site, email string) (*entity.Subscription, error) {
	if err := entity.ValidateEmail(email); err != nil {
		return nil, err
	}

	now := time.Now()
	sub := &entity.Subscription{
		Email:            email,
		UnsubscribeToken: uuid.NewString(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.Subs.Upsert(ctx, sub); err != nil {
		return nil, fmt.Errorf("upsert subscription: %w", err)
	}

	if err := s.Mailer.SendSubscriptionConfirmation(ctx, site, sub.Email, sub.UnsubscribeToken); err != nil {
		slog.Warn("subscription confirmation not delivered",
			slog.String("error", err.Error()))
	}
	return sub, nil
}

// Unsubscribe deactivates the subscription carrying the token.
func (s *Service) Unsubscribe(ctx context.Context, token string) error {
	if err := s.Subs.Unsubscribe(ctx, token); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrUnknownToken
		}
		return fmt.Errorf("unsubscribe: %w", err)
	}
	return nil
}

// SendDigest mails the latest published articles to every active
// subscriber. Sends run concurrently with a bounded group; individual
// failures are logged and counted but do not abort the run.
func (s *Service) SendDigest(ctx context.Context, site entity.Site) (sent, failed int, err error) {
	status := entity.StatusPublished
	articles, err := s.Articles.List(ctx, site, repository.ArticleListFilters{
		Status: &status,
		Limit:  digestArticles,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("digest articles: %w", err)
	}
	if len(articles) == 0 {
		return 0, 0, nil
	}

	subs, err := s.Subs.ListActive(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("active subscriptions: %w", err)
	}

	results := make([]bool, len(subs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(digestConcurrency)
	for i, sub := range subs {
		g.Go(func() error {
			if err := s.Mailer.SendDigest(gctx, site, sub.Email, sub.UnsubscribeToken, articles); err != nil {
				slog.Warn("digest mail not delivered",
					slog.String("error", err.Error()))
				return nil
			}
			results[i] = true
			return nil
		})
	}
	_ = g.Wait()

	for _, ok := range results {
		if ok {
			sent++
		} else {
			failed++
		}
	}
	return sent, failed, nil
}

package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"

	"vnnews/internal/domain/entity"
	"vnnews/internal/observability/metrics"
	"vnnews/internal/resilience/circuitbreaker"
	"vnnews/internal/resilience/retry"
)

// SMTP sends mail through the configured relay. Delivery is wrapped in a
// circuit breaker and a retry loop: a relay outage fails fast instead of
// stalling every request that happens to send mail.
type SMTP struct {
	Resolver *Resolver
	// BaseURL is the public site root used in links, e.g. https://vnnews.vn.
	BaseURL string

	breaker  *circuitbreaker.CircuitBreaker
	retryCfg retry.Config
}

// NewSMTP builds the production mailer.
func NewSMTP(resolver *Resolver, baseURL string) *SMTP {
	return &SMTP{
		Resolver: resolver,
		BaseURL:  baseURL,
		breaker:  circuitbreaker.New(circuitbreaker.SMTPConfig()),
		retryCfg: retry.SMTPConfig(),
	}
}

// SendPasswordReset mails a reset link valid for one hour.
func (s *SMTP) SendPasswordReset(ctx context.Context, site entity.Site, to, token string) error {
	return s.send(ctx, to, passwordResetMessage(site, s.BaseURL, token))
}

// SendSubscriptionConfirmation mails a newsletter welcome with the
// unsubscribe link.
func (s *SMTP) SendSubscriptionConfirmation(ctx context.Context, site entity.Site, to, unsubscribeToken string) error {
	return s.send(ctx, to, subscriptionMessage(site, s.BaseURL, unsubscribeToken))
}

// SendDigest mails the article digest to one subscriber.
func (s *SMTP) SendDigest(ctx context.Context, site entity.Site, to, unsubscribeToken string, articles []*entity.Article) error {
	return s.send(ctx, to, digestMessage(site, s.BaseURL, unsubscribeToken, articles))
}

func (s *SMTP) send(ctx context.Context, to string, msg message) error {
	cfg := s.Resolver.Resolve(ctx)
	if !cfg.Configured() {
		slog.Info("mail skipped, smtp not configured",
			slog.String("subject", msg.subject))
		metrics.MailSkipped.Inc()
		return ErrNotConfigured
	}

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", msg.subject)
	m.SetBody("text/plain", msg.body)

	dialer := gomail.NewDialer(cfg.Server, cfg.Port, cfg.Username, cfg.Password)
	// Port 465 is implicit TLS; 587 negotiates STARTTLS on its own.
	dialer.SSL = cfg.UseTLS && cfg.Port == 465

	err := retry.WithBackoff(ctx, s.retryCfg, func() error {
		_, err := s.breaker.Execute(func() (interface{}, error) {
			return nil, dialer.DialAndSend(m)
		})
		return err
	})
	if err != nil {
		metrics.MailFailed.Inc()
		return fmt.Errorf("send mail via %s: %w", cfg.Server, err)
	}
	metrics.MailSent.Inc()
	return nil
}

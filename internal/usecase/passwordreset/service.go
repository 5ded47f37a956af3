// Package passwordreset provides the forgot-password flow: issuing
// one-time tokens, mailing them out and redeeming them for a new hash.
package passwordreset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"vnnews/internal/domain/entity"
	"vnnews/internal/repository"
)

// TokenTTL is the lifetime of a reset token.
const TokenTTL = time.Hour

// ErrInvalidToken indicates a token that is unknown, already used or
// expired. The three cases are deliberately indistinguishable.
var ErrInvalidToken = errors.New("invalid or expired reset token")

// Mailer delivers the reset link. Implementations may refuse when SMTP is
// not configured; the service treats that as a soft failure.
type Mailer interface {
	SendPasswordReset(ctx context.Context, site entity.Site, to, token string) error
}

// Service provides the password reset use cases.
type Service struct {
	Users  repository.UserRepository
	Tokens repository.TokenRepository
	Mailer Mailer

	// Now is swappable in tests. Nil means time.Now.
	Now func() time.Time
}

func (s *Service) clock() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Request starts a reset for the given email address. Unknown addresses
// succeed silently so the endpoint cannot be used to enumerate accounts,
// and mail delivery failures are logged but never surfaced either: from
// the outside every request looks the same.
func (s *Service) Request(ctx context.Context, site entity.Site, email string) error {
	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("lookup email: %w", err)
	}
	if user == nil {
		return nil
	}

	now := s.clock()
	token := &entity.PasswordResetToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(TokenTTL),
		CreatedAt: now,
	}
	if err := s.Tokens.Issue(ctx, token); err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	if err := s.Mailer.SendPasswordReset(ctx, site, user.Email, token.Token); err != nil {
		slog.Warn("password reset mail not delivered",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()))
	}
	return nil
}

// Reset redeems a token and installs the new password. The token is
// consumed even if it turns out the new password is the same as the old;
// one token, one attempt.
func (s *Service) Reset(ctx context.Context, site entity.Site, token, newPassword string) error {
	if err := entity.ValidatePassword(site, newPassword); err != nil {
		return err
	}

	claimed, err := s.Tokens.Consume(ctx, token, s.clock())
	if err != nil {
		return fmt.Errorf("consume token: %w", err)
	}
	if claimed == nil {
		return ErrInvalidToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Users.UpdatePasswordHash(ctx, claimed.UserID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

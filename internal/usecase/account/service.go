// Package account provides use cases for user registration, authentication
// and account locking.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"vnnews/internal/domain/entity"
	"vnnews/internal/repository"
)

// Sentinel errors for account use case operations.
var (
	// ErrInvalidCredentials covers every authentication failure: unknown
	// identifier, wrong password and locked account all collapse into this
	// one error so callers cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound indicates that the requested user was not found.
	ErrUserNotFound = errors.New("user not found")
)

// RegistrationErrors is the full list of validation failures for a
// registration attempt. All fields are checked before returning so the
// caller can show every problem at once, localized for the site.
type RegistrationErrors []*entity.ValidationError

// Error joins the collected messages.
func (e RegistrationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Message
	}
	return strings.Join(msgs, "; ")
}

// RegisterInput represents the input parameters for registering a user.
type RegisterInput struct {
	Site     entity.Site
	Username string
	Email    string
	Password string
	FullName string
	Phone    string
}

// Service provides account management use cases.
type Service struct {
	Users repository.UserRepository
}

// Register validates the input, collects all failures, and creates the
// account with role "user". The password is hashed with bcrypt before it
// reaches the repository.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	var errs RegistrationErrors
	collect := func(err error) {
		var verr *entity.ValidationError
		if errors.As(err, &verr) {
			errs = append(errs, verr)
		}
	}

	if err := entity.ValidateUsername(in.Site, in.Username); err != nil {
		collect(err)
	}
	if err := entity.ValidateEmail(in.Email); err != nil {
		collect(err)
	}
	if err := entity.ValidatePassword(in.Site, in.Password); err != nil {
		collect(err)
	}
	phone := in.Phone
	if in.Phone != "" {
		normalized, err := entity.NormalizePhone(in.Site, in.Phone)
		if err != nil {
			collect(err)
		} else {
			phone = normalized
		}
	}

	// Duplicate checks join the same list so the form shows everything in
	// one round trip.
	if in.Username != "" {
		existing, err := s.Users.GetByUsername(ctx, in.Username)
		if err != nil {
			return nil, fmt.Errorf("check username: %w", err)
		}
		if existing != nil {
			errs = append(errs, &entity.ValidationError{Field: "username",
				Message: localize(in.Site, "Tên đăng nhập đã tồn tại", "Username already exists")})
		}
	}
	if in.Email != "" {
		existing, err := s.Users.GetByEmail(ctx, in.Email)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if existing != nil {
			errs = append(errs, &entity.ValidationError{Field: "email",
				Message: localize(in.Site, "Email đã được sử dụng", "Email is already in use")})
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Phone:        phone,
		Role:         entity.RoleUser,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		if errors.Is(err, entity.ErrDuplicate) {
			// Raced with another registration; same answer as the precheck.
			return nil, RegistrationErrors{{Field: "username",
				Message: localize(in.Site, "Tài khoản đã tồn tại", "Account already exists")}}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate verifies an identifier/password pair. The identifier is
// tried as a username first, then as an email address. Unknown accounts,
// wrong passwords and locked accounts are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, identifier, password string) (*entity.User, error) {
	user, err := s.lookup(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IsLocked reports whether the identified account exists and cannot sign
// in. An unknown identifier is simply not locked. Used by the admin
// panel, never exposed on the public surface.
func (s *Service) IsLocked(ctx context.Context, identifier string) (bool, error) {
	user, err := s.lookup(ctx, identifier)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}
	return !user.Active, nil
}

// SetActive locks or unlocks an account.
func (s *Service) SetActive(ctx context.Context, id int64, active bool) error {
	if err := s.Users.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("set active: %w", err)
	}
	return nil
}

// Get returns a user by id. Returns ErrUserNotFound if absent.
func (s *Service) Get(ctx context.Context, id int64) (*entity.User, error) {
	user, err := s.Users.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *Service) lookup(ctx context.Context, identifier string) (*entity.User, error) {
	user, err := s.Users.GetByUsername(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("lookup by username: %w", err)
	}
	if user != nil {
		return user, nil
	}
	user, err = s.Users.GetByEmail(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("lookup by email: %w", err)
	}
	return user, nil
}

func localize(site entity.Site, vn, en string) string {
	if site == entity.SiteEN {
		return en
	}
	return vn
}

// Package account provides HTTP handlers for registration, login, the
// forgot-password flow and admin account locking.
package account

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"vnnews/internal/domain/entity"
	httphandler "vnnews/internal/handler/http"
	"vnnews/internal/handler/http/auth"
	"vnnews/internal/handler/http/pathutil"
	"vnnews/internal/handler/http/requestid"
	"vnnews/internal/handler/http/respond"
	"vnnews/internal/observability/metrics"
	accUC "vnnews/internal/usecase/account"
	resetUC "vnnews/internal/usecase/passwordreset"
)

// userDTO is the sanitized user representation. The password hash never
// leaves this layer.
type userDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}

func toUserDTO(u *entity.User) userDTO {
	return userDTO{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Phone:    u.Phone,
		Role:     string(u.Role),
		Active:   u.Active,
	}
}

// RegisterHandler creates a new reader account. Validation failures come
// back as one localized message per field.
type RegisterHandler struct{ Svc *accUC.Service }

func (h RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
		Phone    string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	user, err := h.Svc.Register(r.Context(), accUC.RegisterInput{
		Site:     httphandler.ResolveSite(r),
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	if err != nil {
		var regErrs accUC.RegistrationErrors
		if errors.As(err, &regErrs) {
			fields := make(map[string]string, len(regErrs))
			for _, v := range regErrs {
				fields[v.Field] = v.Message
			}
			respond.FieldErrors(w, fields)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	metrics.RegistrationsTotal.Inc()
	respond.JSON(w, http.StatusCreated, toUserDTO(user))
}

// TokenHandler authenticates a user by username or email and issues a JWT.
type TokenHandler struct{ Svc *accUC.Service }

func (h TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := slog.With(slog.String("request_id", requestid.FromContext(r.Context())))

	var req struct {
		Identifier string `json:"identifier"` // username or email
		Password   string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request"))
		return
	}

	user, err := h.Svc.Authenticate(r.Context(), req.Identifier, req.Password)
	if err != nil {
		logger.Warn("authentication failed",
			slog.String("reason", "invalid_credentials"),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		metrics.LoginFailuresTotal.Inc()
		respond.SafeError(w, http.StatusUnauthorized, accUC.ErrInvalidCredentials)
		return
	}

	signed, err := auth.IssueToken(user, []byte(os.Getenv("JWT_SECRET")), time.Now())
	if err != nil {
		logger.Error("token generation failed", slog.String("error", err.Error()))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	logger.Info("authentication successful",
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	respond.JSON(w, http.StatusOK, map[string]string{"token": signed})
}

// MeHandler returns the authenticated user's profile.
type MeHandler struct{ Svc *accUC.Service }

func (h MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims := auth.FromContext(r.Context())
	if claims == nil {
		respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	user, err := h.Svc.Get(r.Context(), claims.UserID)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, accUC.ErrUserNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}
	respond.JSON(w, http.StatusOK, toUserDTO(user))
}

// ForgotPasswordHandler starts the reset flow. The response is identical
// for known and unknown addresses.
type ForgotPasswordHandler struct{ Svc *resetUC.Service }

func (h ForgotPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Request(r.Context(), httphandler.ResolveSite(r), req.Email); err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusAccepted, map[string]string{
		"message": "if the address is registered, a reset link has been sent",
	})
}

// ResetPasswordHandler redeems a token for a new password.
type ResetPasswordHandler struct{ Svc *resetUC.Service }

func (h ResetPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Reset(r.Context(), httphandler.ResolveSite(r), req.Token, req.Password); err != nil {
		var vErr *entity.ValidationError
		switch {
		case errors.As(err, &vErr):
			respond.SafeError(w, http.StatusBadRequest, err)
		case errors.Is(err, resetUC.ErrInvalidToken):
			respond.SafeError(w, http.StatusBadRequest, err)
		default:
			respond.SafeError(w, http.StatusInternalServerError, err)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetActiveHandler locks or unlocks an account (admin only). Locked
// accounts fail authentication with the same error as a bad password.
type SetActiveHandler struct {
	Svc    *accUC.Service
	Active bool
}

func (h SetActiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.SetActive(r.Context(), id, h.Active); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, accUC.ErrUserNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Register registers all account endpoints with the given mux. The
// credential endpoints go through the supplied rate limiter.
func Register(mux *http.ServeMux, accounts *accUC.Service, resets *resetUC.Service, limiter *httphandler.RateLimiter) {
	admin := auth.Require(entity.RoleAdmin)
	authed := auth.Require()

	mux.Handle("POST   /auth/register", limiter.Limit(RegisterHandler{accounts}))
	mux.Handle("POST   /auth/token", limiter.Limit(TokenHandler{accounts}))
	mux.Handle("POST   /auth/forgot-password", limiter.Limit(ForgotPasswordHandler{resets}))
	mux.Handle("POST   /auth/reset-password", limiter.Limit(ResetPasswordHandler{resets}))
	mux.Handle("GET    /auth/me", authed(MeHandler{accounts}))

	mux.Handle("POST   /admin/users/{id}/lock", admin(SetActiveHandler{Svc: accounts, Active: false}))
	mux.Handle("POST   /admin/users/{id}/unlock", admin(SetActiveHandler{Svc: accounts, Active: true}))
}

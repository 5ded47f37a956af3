// Package auth provides JWT issuance and validation for the HTTP API.
// Tokens are signed with HS256 using the JWT_SECRET environment variable.
package auth

import (
	"errors"
	"time"

	"vnnews/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the lifetime of issued access tokens.
const TokenTTL = 24 * time.Hour

// Claims is the decoded identity carried by a validated token.
type Claims struct {
	UserID   int64
	Username string
	Role     entity.Role
}

// IssueToken signs a JWT for the authenticated user.
func IssueToken(user *entity.User, secret []byte, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.Username,
		"uid":  user.ID,
		"role": string(user.Role),
		"exp":  now.Add(TokenTTL).Unix(),
		"iat":  now.Unix(),
	})
	return token.SignedString(secret)
}

// ValidateToken parses and verifies a signed token string, returning the
// embedded claims. Expired or tampered tokens return an error.
func ValidateToken(tokenString string, secret []byte) (*Claims, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	if exp, ok := claims["exp"].(float64); !ok || int64(exp) < time.Now().Unix() {
		return nil, errors.New("token expired")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("invalid sub claim")
	}
	uid, ok := claims["uid"].(float64)
	if !ok || uid <= 0 {
		return nil, errors.New("invalid uid claim")
	}
	role, ok := claims["role"].(string)
	if !ok || !entity.Role(role).Valid() {
		return nil, errors.New("invalid role claim")
	}

	return &Claims{
		UserID:   int64(uid),
		Username: sub,
		Role:     entity.Role(role),
	}, nil
}

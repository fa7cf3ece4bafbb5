package security

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"calapan-rental-backend/internal/domain"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// UserClaims defines the claims issued by the auth service for this backend.
type UserClaims struct {
	UserID     int32  `json:"user_id"`
	CustomerID int32  `json:"customer_id,omitempty"`
	Email      string `json:"email,omitempty"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager validates bearer tokens. Token issuance lives with the
// external auth service; this backend only verifies signatures and expiry.
type TokenManager interface {
	ValidateToken(tokenString string) (*UserClaims, error)
}

type tokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) TokenManager {
	return &tokenManager{secret: []byte(secret)}
}

func (m *tokenManager) ValidateToken(tokenString string) (*UserClaims, error) {
	claims := &UserClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Principal carries the validated claims into every lifecycle operation as an
// explicit argument.
func (c *UserClaims) Principal() Principal {
	return Principal{
		UserID:     c.UserID,
		CustomerID: c.CustomerID,
		Role:       domain.Role(c.Role),
	}
}

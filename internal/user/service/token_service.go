package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/codeOfTheFuture/mern-stack-authentication/internal/user/service TokenGenerator

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenGenerator interface {
	Issue(userID string) (string, error)
	Verify(tokenString string) (*SessionClaims, error)
	Expiry() time.Duration
}

// TokenService mints and verifies the stateless session tokens carried in the
// jwt cookie. No session table exists; signature and expiry are the only
// validity checks.
type TokenService struct {
	secret string
	expiry time.Duration
}

type SessionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

func NewTokenService(secret string, expiryDays int) *TokenService {
	return &TokenService{
		secret: secret,
		expiry: time.Duration(expiryDays) * 24 * time.Hour,
	}
}

func (ts *TokenService) Issue(userID string) (string, error) {
	now := time.Now()

	claims := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.secret))
	if err != nil {
		return "", err
	}

	return token, nil
}

// Verify parses and validates the given session token string.
func (ts *TokenService) Verify(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

func (ts *TokenService) Expiry() time.Duration {
	return ts.expiry
}

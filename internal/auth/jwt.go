package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token kinds carried in the subject-type claim
const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type Claims struct {
	OwnerID string `json:"uid"`
	Email   string `json:"email"`
	Kind    string `json:"typ"`
	jwt.RegisteredClaims
}

func MintTokens(ownerID, email, secret string, accessTTL, refreshTTL time.Duration) (TokenPair, error) {
	now := time.Now()
	at, err := sign(ownerID, email, TokenAccess, secret, now, accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	rt, err := sign(ownerID, email, TokenRefresh, secret, now, refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: at, RefreshToken: rt, ExpiresAt: now.Add(accessTTL)}, nil
}

func sign(ownerID, email, kind, secret string, now time.Time, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		OwnerID: ownerID,
		Email:   email,
		Kind:    kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ownerID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	return token.SignedString([]byte(secret))
}

// ParseClaims validates an access token.
func ParseClaims(tokenStr, secret string) (*Claims, error) {
	return parse(tokenStr, secret, TokenAccess)
}

// ParseRefreshClaims validates a refresh token.
func ParseRefreshClaims(tokenStr, secret string) (*Claims, error) {
	return parse(tokenStr, secret, TokenRefresh)
}

func parse(tokenStr, secret, kind string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if c.Kind != kind {
		return nil, fmt.Errorf("%w: expected %s token", jwt.ErrTokenInvalidClaims, kind)
	}
	if c.OwnerID == "" {
		return nil, errors.New("token has no owner")
	}
	return c, nil
}

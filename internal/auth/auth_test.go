package auth

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestMintAndParse(t *testing.T) {
	pair, err := MintTokens("owner-1", "owner@example.com", "s3cret", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("MintTokens() error = %v", err)
	}

	claims, err := ParseClaims(pair.AccessToken, "s3cret")
	if err != nil {
		t.Fatalf("ParseClaims() error = %v", err)
	}
	if claims.OwnerID != "owner-1" || claims.Email != "owner@example.com" {
		t.Errorf("ParseClaims() = %+v", claims)
	}

	if _, err := ParseRefreshClaims(pair.RefreshToken, "s3cret"); err != nil {
		t.Errorf("ParseRefreshClaims() error = %v", err)
	}
}

func TestParseClaims_Rejects(t *testing.T) {
	pair, _ := MintTokens("owner-1", "owner@example.com", "s3cret", time.Minute, time.Hour)
	expired, _ := MintTokens("owner-1", "owner@example.com", "s3cret", -time.Minute, time.Hour)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{name: "wrong secret", token: pair.AccessToken, secret: "other"},
		{name: "refresh used as access", token: pair.RefreshToken, secret: "s3cret"},
		{name: "expired", token: expired.AccessToken, secret: "s3cret"},
		{name: "garbage", token: "not-a-jwt", secret: "s3cret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseClaims(tt.token, tt.secret); err == nil {
				t.Error("ParseClaims() accepted an invalid token")
			}
		})
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if err := CheckPassword(hash, "correct horse"); err != nil {
		t.Errorf("CheckPassword() error = %v", err)
	}
	if err := CheckPassword(hash, "battery staple"); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("CheckPassword() error = %v, want ErrPasswordMismatch", err)
	}
}

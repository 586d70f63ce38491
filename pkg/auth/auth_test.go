package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/upahaar/upahaar/config"
	"github.com/upahaar/upahaar/pkg/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := auth.GenerateToken("64a000000000000000000001", "admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != "64a000000000000000000001" {
		t.Fatalf("user id = %q", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Fatalf("role = %q", claims.Role)
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	token, err := auth.GenerateToken("64a000000000000000000001", "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := auth.ValidateToken(token + "x"); err == nil {
		t.Fatal("tampered signature accepted")
	}
}

// A token signed with the right secret but a different HMAC variant must be
// rejected; only HS256 is accepted.
func TestValidateTokenRejectsWrongAlg(t *testing.T) {
	claims := auth.Claims{
		UserID: "64a000000000000000000001",
		Role:   "user",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).
		SignedString([]byte(config.JWTSecret()))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := auth.ValidateToken(token); err == nil {
		t.Fatal("HS384 token accepted")
	}
}

func TestGenerateOTPFormat(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		otp, err := auth.GenerateOTP()
		if err != nil {
			t.Fatalf("generate otp: %v", err)
		}
		if len(otp) != 6 || strings.Trim(otp, "0123456789") != "" {
			t.Fatalf("otp = %q, want 6 digits", otp)
		}
		seen[otp] = true
	}
	if len(seen) < 2 {
		t.Fatal("otp generator returned a constant value")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !auth.CheckPassword(hash, "s3cret-pass") {
		t.Fatal("correct password rejected")
	}
	if auth.CheckPassword(hash, "wrong-pass") {
		t.Fatal("wrong password accepted")
	}
}

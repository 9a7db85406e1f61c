package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func hs256Token(t *testing.T, secret string, claims *Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return signed
}

func baseClaims(subject string) *Claims {
	return &Claims{
		SessionID: "sess-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestValidateHS256(t *testing.T) {
	v, err := NewJWTValidator("topsecret", "")
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	claims, err := v.Validate(hs256Token(t, "topsecret", baseClaims("user-1")))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Subject != "user-1" || claims.SessionID != "sess-1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := v.Validate(""); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
	if _, err := v.Validate(hs256Token(t, "wrongsecret", baseClaims("user-1"))); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for bad signature, got %v", err)
	}

	expired := baseClaims("user-1")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	if _, err := v.Validate(hs256Token(t, "topsecret", expired)); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}

	anonymous := baseClaims("")
	if _, err := v.Validate(hs256Token(t, "topsecret", anonymous)); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for missing subject, got %v", err)
	}
}

func TestValidateRS256(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal key: %v", err)
	}
	pemKey := string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))

	v, err := NewJWTValidator("unusedsecret", pemKey)
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, baseClaims("user-2")).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := v.Validate(signed)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Subject != "user-2" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}

	// An HS256 token is rejected once a public key is configured.
	if _, err := v.Validate(hs256Token(t, "unusedsecret", baseClaims("user-2"))); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for HS256 token, got %v", err)
	}

	if _, err := NewJWTValidator("s", "not a pem block"); err == nil {
		t.Fatal("expected error for malformed public key")
	}
}

func TestValidateFillsSessionID(t *testing.T) {
	v, err := NewJWTValidator("topsecret", "")
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	claims := baseClaims("user-3")
	claims.SessionID = ""
	claims.ID = "jti-9"
	got, err := v.Validate(hs256Token(t, "topsecret", claims))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.SessionID != "jti-9" {
		t.Fatalf("expected session id from jti, got %q", got.SessionID)
	}
}

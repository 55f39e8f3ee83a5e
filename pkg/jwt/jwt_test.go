package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParse(t *testing.T) {
	secret := []byte("s3cret")
	tok, err := GenerateToken("admin", AdminRole, secret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	sub, role, err := ParseToken(tok, secret)
	if err != nil || sub != "admin" || role != AdminRole {
		t.Errorf("got %q %q %v", sub, role, err)
	}

	if _, _, err := ParseToken(tok, []byte("other")); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong secret: err = %v", err)
	}

	expired, _ := GenerateToken("admin", AdminRole, secret, -time.Minute)
	if _, _, err := ParseToken(expired, secret); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired: err = %v", err)
	}

	if _, err := GenerateToken("admin", AdminRole, nil, time.Hour); err == nil {
		t.Error("expected an error without a secret")
	}
}

func TestParseToken_EmptySecret(t *testing.T) {
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "anyone",
		"role": AdminRole,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte{})
	if err != nil {
		t.Fatal(err)
	}

	for _, secret := range [][]byte{nil, {}} {
		if _, _, err := ParseToken(forged, secret); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("secret %q: err = %v", secret, err)
		}
	}
}

package util

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-with-at-least-32-characters"

func TestJWTRoundTrip(t *testing.T) {
	token, issued, err := GenerateJWT(7, "google_1234", "asha@example.com", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if issued.ID == "" {
		t.Fatalf("token id should be set")
	}

	claims, err := ParseJWT(token, testSecret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.IdentityID != 7 || claims.Key != "google_1234" || claims.Email != "asha@example.com" || claims.ID != issued.ID {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestParseJWTRejects(t *testing.T) {
	expired, _, _ := GenerateJWT(1, "k", "", testSecret, -time.Minute)
	other, _, _ := GenerateJWT(1, "k", "", "another-secret-with-at-least-32-chars", time.Hour)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{IdentityID: 1})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	for name, tok := range map[string]string{
		"expired":      expired,
		"wrong secret": other,
		"alg none":     unsigned,
		"garbage":      "abc.def.ghi",
	} {
		if _, err := ParseJWT(tok, testSecret); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testClientID = "client-123.apps.googleusercontent.com"

func newTestGoogleVerifier(t *testing.T) (*GoogleVerifier, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"issuer":   "https://accounts.google.com",
			"jwks_uri": srv.URL + "/certs",
		})
	})
	mux.HandleFunc("/certs", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"keys": []map[string]string{{
				"kty": "RSA",
				"kid": "kid-1",
				"n":   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
			}},
		})
	})

	v, err := NewGoogleVerifier(srv.Client(), testClientID)
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	v.discoveryURL = srv.URL + "/.well-known/openid-configuration"
	return v, key
}

func signIDToken(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = kid
	s, err := tok.SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"iss":            "https://accounts.google.com",
		"aud":            testClientID,
		"sub":            "1234",
		"email":          "asha@example.com",
		"email_verified": true,
		"name":           "Asha",
		"picture":        "https://example.com/a.png",
		"exp":            time.Now().Add(time.Hour).Unix(),
		"iat":            time.Now().Unix(),
	}
}

func TestGoogleVerifierAcceptsValidToken(t *testing.T) {
	v, key := newTestGoogleVerifier(t)

	ext, err := v.VerifyGoogleIDToken(context.Background(), signIDToken(t, key, "kid-1", validClaims()))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ext.Subject != "1234" || ext.Email != "asha@example.com" || !ext.EmailVerified || ext.Name != "Asha" {
		t.Fatalf("unexpected identity %+v", ext)
	}
}

func TestGoogleVerifierRejects(t *testing.T) {
	v, key := newTestGoogleVerifier(t)
	otherKey, _ := rsa.GenerateKey(rand.Reader, 2048)

	mutate := func(f func(jwt.MapClaims)) jwt.MapClaims {
		c := validClaims()
		f(c)
		return c
	}

	cases := map[string]string{
		"wrong audience": signIDToken(t, key, "kid-1", mutate(func(c jwt.MapClaims) { c["aud"] = "someone-else" })),
		"wrong issuer":   signIDToken(t, key, "kid-1", mutate(func(c jwt.MapClaims) { c["iss"] = "https://evil.example.com" })),
		"expired":        signIDToken(t, key, "kid-1", mutate(func(c jwt.MapClaims) { c["exp"] = time.Now().Add(-time.Hour).Unix() })),
		"missing exp":    signIDToken(t, key, "kid-1", mutate(func(c jwt.MapClaims) { delete(c, "exp") })),
		"unknown kid":    signIDToken(t, key, "kid-2", validClaims()),
		"wrong key":      signIDToken(t, otherKey, "kid-1", validClaims()),
		"empty":          "",
	}
	for name, token := range cases {
		if _, err := v.VerifyGoogleIDToken(context.Background(), token); err == nil {
			t.Fatalf("%s: expected verification to fail", name)
		}
	}
}

package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/oauth2"
)

func newTestLinkedInClient(t *testing.T, withEmail bool) *LinkedInClient {
	t.Helper()
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/oauth/v2/accessToken", func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.Form.Get("code") != "good-code" || r.Form.Get("client_secret") != "secret" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"access_token": "at-1", "token_type": "Bearer", "expires_in": 3600})
	})
	mux.HandleFunc("/v2/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"id":"li-9","localizedFirstName":"Meera","localizedLastName":"Rao",
			"profilePicture":{"displayImage~":{"elements":[
				{"identifiers":[{"identifier":"https://img/small"}]},
				{"identifiers":[{"identifier":"https://img/large"}]}]}}}`))
	})
	mux.HandleFunc("/v2/emailAddress", func(w http.ResponseWriter, r *http.Request) {
		if !withEmail {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Write([]byte(`{"elements":[{"handle~":{"emailAddress":"meera@example.com"}}]}`))
	})

	return &LinkedInClient{
		clientID:     "client",
		clientSecret: "secret",
		endpoint: oauth2.Endpoint{
			AuthURL:   srv.URL + "/oauth/v2/authorization",
			TokenURL:  srv.URL + "/oauth/v2/accessToken",
			AuthStyle: oauth2.AuthStyleInParams,
		},
		apiBaseURL: srv.URL,
	}
}

func TestLinkedInExchange(t *testing.T) {
	c := newTestLinkedInClient(t, true)

	ext, err := c.Exchange(context.Background(), "good-code", "http://localhost:8080/auth/linkedin/callback")
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if ext.Subject != "li-9" || ext.Name != "Meera Rao" || ext.Email != "meera@example.com" {
		t.Fatalf("unexpected identity %+v", ext)
	}
	if ext.Picture != "https://img/large" {
		t.Fatalf("expected the largest picture, got %q", ext.Picture)
	}
}

func TestLinkedInExchangeWithoutEmailScope(t *testing.T) {
	c := newTestLinkedInClient(t, false)

	ext, err := c.Exchange(context.Background(), "good-code", "http://localhost/cb")
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if ext.Email != "" || ext.EmailVerified {
		t.Fatalf("email should be empty when not granted, got %+v", ext)
	}
}

func TestLinkedInExchangeBadCode(t *testing.T) {
	c := newTestLinkedInClient(t, true)

	_, err := c.Exchange(context.Background(), "bad-code", "http://localhost/cb")
	if err == nil || !strings.Contains(err.Error(), "exchange code") {
		t.Fatalf("expected exchange failure, got %v", err)
	}
	if _, err := c.Exchange(context.Background(), " ", "http://localhost/cb"); err == nil {
		t.Fatalf("expected empty code to fail")
	}
}

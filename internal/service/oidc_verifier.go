package service

import (
	"career_advisor_backend/internal/model"
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const googleDiscoveryURL = "https://accounts.google.com/.well-known/openid-configuration"

var googleIssuers = []string{"accounts.google.com", "https://accounts.google.com"}

// ExternalIdentity 第三方身份提供方返回的用户信息
type ExternalIdentity struct {
	Provider      string
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

type GoogleTokenVerifier interface {
	VerifyGoogleIDToken(ctx context.Context, idToken string) (*ExternalIdentity, error)
}

// GoogleVerifier 通过 OIDC discovery 取得 JWKS，校验 Google ID token 的签名、iss、aud 与有效期
type GoogleVerifier struct {
	httpClient   *http.Client
	discoveryURL string
	clientID     string

	discoveryOnce sync.Once
	discoveryErr  error

	mu        sync.RWMutex
	jwksURL   string
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
	ttl       time.Duration
}

func NewGoogleVerifier(httpClient *http.Client, clientID string) (*GoogleVerifier, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, fmt.Errorf("oauth.google_client_id is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &GoogleVerifier{
		httpClient:   httpClient,
		discoveryURL: googleDiscoveryURL,
		clientID:     clientID,
		keys:         map[string]*rsa.PublicKey{},
		ttl:          6 * time.Hour,
	}, nil
}

func (v *GoogleVerifier) VerifyGoogleIDToken(ctx context.Context, idToken string) (*ExternalIdentity, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, fmt.Errorf("id_token is empty")
	}
	if err := v.ensureDiscovery(ctx); err != nil {
		return nil, fmt.Errorf("oidc discovery error: %w", err)
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithAudience(v.clientID),
		jwt.WithExpirationRequired(),
	)
	tok, err := parser.ParseWithClaims(idToken, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("missing kid")
		}
		return v.key(ctx, kid)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid id_token: %w", err)
	}
	if !tok.Valid {
		return nil, fmt.Errorf("invalid id_token")
	}

	iss, _ := claims.GetIssuer()
	if !containsString(googleIssuers, iss) {
		return nil, fmt.Errorf("issuer mismatch: %q", iss)
	}
	sub, _ := claims.GetSubject()
	if sub == "" {
		return nil, fmt.Errorf("missing sub")
	}

	out := &ExternalIdentity{Provider: model.ProviderGoogle, Subject: sub}
	out.Email, _ = claims["email"].(string)
	out.Name, _ = claims["name"].(string)
	out.Picture, _ = claims["picture"].(string)
	switch ev := claims["email_verified"].(type) {
	case bool:
		out.EmailVerified = ev
	case string:
		out.EmailVerified = strings.EqualFold(ev, "true")
	}
	return out, nil
}

type oidcDiscovery struct {
	Issuer  string `json:"issuer"`
	JWKSURI string `json:"jwks_uri"`
}

func (v *GoogleVerifier) ensureDiscovery(ctx context.Context) error {
	v.discoveryOnce.Do(func() {
		var d oidcDiscovery
		if err := v.getJSON(ctx, v.discoveryURL, &d); err != nil {
			v.discoveryErr = err
			return
		}
		if strings.TrimSpace(d.JWKSURI) == "" {
			v.discoveryErr = fmt.Errorf("discovery missing jwks_uri")
			return
		}
		v.mu.Lock()
		v.jwksURL = d.JWKSURI
		v.mu.Unlock()
	})
	return v.discoveryErr
}

func (v *GoogleVerifier) key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	key := v.keys[kid]
	stale := time.Since(v.fetchedAt) > v.ttl
	url := v.jwksURL
	v.mu.RUnlock()

	if key != nil && !stale {
		return key, nil
	}
	if url == "" {
		return nil, errors.New("jwks url not set")
	}

	if err := v.refresh(ctx, url); err != nil {
		// 刷新失败时沿用缓存中的旧 key
		if key != nil {
			return key, nil
		}
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	if key = v.keys[kid]; key == nil {
		return nil, fmt.Errorf("kid not found in jwks: %s", kid)
	}
	return key, nil
}

type jwkSet struct {
	Keys []struct {
		Kty string `json:"kty"`
		Kid string `json:"kid"`
		N   string `json:"n"`
		E   string `json:"e"`
	} `json:"keys"`
}

func (v *GoogleVerifier) refresh(ctx context.Context, url string) error {
	var set jwkSet
	if err := v.getJSON(ctx, url, &set); err != nil {
		return err
	}

	next := map[string]*rsa.PublicKey{}
	for _, k := range set.Keys {
		if k.Kty != "RSA" || k.Kid == "" {
			continue
		}
		pub, err := rsaFromModExp(k.N, k.E)
		if err == nil {
			next[k.Kid] = pub
		}
	}
	if len(next) == 0 {
		return fmt.Errorf("jwks contained no usable keys")
	}

	v.mu.Lock()
	v.keys = next
	v.fetchedAt = time.Now()
	v.mu.Unlock()
	return nil
}

func (v *GoogleVerifier) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	res, err := v.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("GET %s failed: %s", url, res.Status)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func rsaFromModExp(nB64, eB64 string) (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(nB64)
	if err != nil {
		return nil, err
	}
	eb, err := base64.RawURLEncoding.DecodeString(eB64)
	if err != nil {
		return nil, err
	}

	e := 0
	for _, b := range eb {
		e = e<<8 + int(b)
	}
	if e == 0 {
		return nil, fmt.Errorf("invalid exponent")
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(nb), E: e}, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

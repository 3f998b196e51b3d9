package service

import (
	"career_advisor_backend/internal/config"
	"career_advisor_backend/internal/model"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

var linkedInEndpoint = oauth2.Endpoint{
	AuthURL:   "https://www.linkedin.com/oauth/v2/authorization",
	TokenURL:  "https://www.linkedin.com/oauth/v2/accessToken",
	AuthStyle: oauth2.AuthStyleInParams,
}

type LinkedInExchanger interface {
	Exchange(ctx context.Context, code, redirectURI string) (*ExternalIdentity, error)
}

// LinkedInClient 用授权码换取 access token，再由服务端读取资料，不信任客户端提交的用户信息
type LinkedInClient struct {
	clientID     string
	clientSecret string
	endpoint     oauth2.Endpoint
	apiBaseURL   string
}

func NewLinkedInClient(cfg config.OAuthConfig) (*LinkedInClient, error) {
	if cfg.LinkedInClientID == "" || cfg.LinkedInClientSecret == "" {
		return nil, fmt.Errorf("linkedin client id and secret are required")
	}
	return &LinkedInClient{
		clientID:     cfg.LinkedInClientID,
		clientSecret: cfg.LinkedInClientSecret,
		endpoint:     linkedInEndpoint,
		apiBaseURL:   "https://api.linkedin.com",
	}, nil
}

type linkedInProfile struct {
	ID                 string `json:"id"`
	LocalizedFirstName string `json:"localizedFirstName"`
	LocalizedLastName  string `json:"localizedLastName"`
	ProfilePicture     struct {
		DisplayImage struct {
			Elements []struct {
				Identifiers []struct {
					Identifier string `json:"identifier"`
				} `json:"identifiers"`
			} `json:"elements"`
		} `json:"displayImage~"`
	} `json:"profilePicture"`
}

type linkedInEmail struct {
	Elements []struct {
		Handle struct {
			EmailAddress string `json:"emailAddress"`
		} `json:"handle~"`
	} `json:"elements"`
}

func (l *LinkedInClient) Exchange(ctx context.Context, code, redirectURI string) (*ExternalIdentity, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("authorization code is empty")
	}

	conf := &oauth2.Config{
		ClientID:     l.clientID,
		ClientSecret: l.clientSecret,
		Endpoint:     l.endpoint,
		RedirectURL:  redirectURI,
		Scopes:       []string{"r_liteprofile", "r_emailaddress"},
	}
	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}
	client := conf.Client(ctx, tok)

	var profile linkedInProfile
	if err := l.get(ctx, client, "/v2/me?projection=(id,localizedFirstName,localizedLastName,profilePicture(displayImage~:playableStreams))", &profile); err != nil {
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	if profile.ID == "" {
		return nil, fmt.Errorf("linkedin profile missing id")
	}

	out := &ExternalIdentity{
		Provider: model.ProviderLinkedIn,
		Subject:  profile.ID,
		Name:     strings.TrimSpace(profile.LocalizedFirstName + " " + profile.LocalizedLastName),
	}
	// 取最大尺寸的头像
	if els := profile.ProfilePicture.DisplayImage.Elements; len(els) > 0 {
		if ids := els[len(els)-1].Identifiers; len(ids) > 0 {
			out.Picture = ids[0].Identifier
		}
	}

	// 邮箱权限可能未授予，失败时留空
	var email linkedInEmail
	if err := l.get(ctx, client, "/v2/emailAddress?q=members&projection=(elements*(handle~))", &email); err == nil && len(email.Elements) > 0 {
		out.Email = email.Elements[0].Handle.EmailAddress
		out.EmailVerified = out.Email != ""
	}
	return out, nil
}

func (l *LinkedInClient) get(ctx context.Context, client *http.Client, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.apiBaseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("linkedin api status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

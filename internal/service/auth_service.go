package service

import (
	"career_advisor_backend/internal/config"
	"career_advisor_backend/internal/model"
	"career_advisor_backend/internal/repository"
	"career_advisor_backend/internal/util"
	"career_advisor_backend/pkg/logger"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IdentityView 返回给前端的登录用户信息
// swagger:model IdentityView
type IdentityView struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	UserID  *uint  `json:"user_id,omitempty"`
}

// SignInResult 第三方登录结果
// swagger:model SignInResult
type SignInResult struct {
	User      IdentityView `json:"user"`
	Token     string       `json:"token"`
	IsNewUser bool         `json:"isNewUser"`
}

// AuthStatus /auth/check 的返回
// swagger:model AuthStatus
type AuthStatus struct {
	Authenticated   bool          `json:"authenticated"`
	User            *IdentityView `json:"user,omitempty"`
	ProfileComplete bool          `json:"profile_complete"`
}

type AuthService struct {
	IdentityRepo *repository.SocialIdentityRepository
	UserRepo     *repository.UserRepository
	Sessions     SessionStore
	Google       GoogleTokenVerifier
	LinkedIn     LinkedInExchanger
	Cfg          *config.Config
}

func NewAuthService(
	identityRepo *repository.SocialIdentityRepository,
	userRepo *repository.UserRepository,
	sessions SessionStore,
	google GoogleTokenVerifier,
	linkedIn LinkedInExchanger,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		IdentityRepo: identityRepo,
		UserRepo:     userRepo,
		Sessions:     sessions,
		Google:       google,
		LinkedIn:     linkedIn,
		Cfg:          cfg,
	}
}

func (s *AuthService) SignInWithGoogle(ctx context.Context, idToken string) (*SignInResult, error) {
	if s.Google == nil {
		return nil, util.ErrProviderDisabled
	}
	ext, err := s.Google.VerifyGoogleIDToken(ctx, idToken)
	if err != nil {
		logger.Log.Info("google token rejected", zap.Error(err))
		return nil, errors.Join(util.ErrInvalidToken, err)
	}
	return s.signIn(ctx, ext)
}

func (s *AuthService) SignInWithLinkedIn(ctx context.Context, code, redirectURI string) (*SignInResult, error) {
	if s.LinkedIn == nil {
		return nil, util.ErrProviderDisabled
	}
	ext, err := s.LinkedIn.Exchange(ctx, code, redirectURI)
	if err != nil {
		logger.Log.Info("linkedin code exchange failed", zap.Error(err))
		return nil, errors.Join(util.ErrInvalidToken, err)
	}
	return s.signIn(ctx, ext)
}

// signIn 写入身份、签发令牌并登记会话。邮箱与已有档案一致时自动关联
func (s *AuthService) signIn(ctx context.Context, ext *ExternalIdentity) (*SignInResult, error) {
	identity := &model.SocialIdentity{
		Provider:  ext.Provider,
		Subject:   ext.Subject,
		Email:     strings.ToLower(strings.TrimSpace(ext.Email)),
		Name:      ext.Name,
		Picture:   ext.Picture,
		LastLogin: time.Now(),
	}

	if identity.Email != "" {
		user, err := s.UserRepo.FindByEmail(identity.Email)
		switch {
		case err == nil:
			identity.UserID = &user.ID
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
	}

	isNew, err := s.IdentityRepo.Upsert(identity)
	if err != nil {
		return nil, fmt.Errorf("save identity: %w", err)
	}

	token, claims, err := util.GenerateJWT(identity.ID, identity.Key(), identity.Email, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	if err := s.Sessions.Save(ctx, claims.ID, identity.ID, s.Cfg.JWT.ExpireTime); err != nil {
		return nil, err
	}

	logger.Log.Info("social sign-in",
		zap.String("provider", identity.Provider),
		zap.Uint("identity_id", identity.ID),
		zap.Bool("new_user", isNew),
	)

	return &SignInResult{
		User:      viewOf(identity),
		Token:     token,
		IsNewUser: isNew,
	}, nil
}

// Authenticate 校验令牌签名并确认会话未被注销
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*util.Claims, error) {
	claims, err := util.ParseJWT(tokenString, s.Cfg.JWT.Secret)
	if err != nil {
		return nil, err
	}
	ok, err := s.Sessions.Exists(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrSessionRevoked
	}
	return claims, nil
}

func (s *AuthService) Logout(ctx context.Context, claims *util.Claims) error {
	if claims == nil {
		return nil
	}
	return s.Sessions.Revoke(ctx, claims.ID)
}

// Check claims 为 nil 时返回未登录
func (s *AuthService) Check(ctx context.Context, claims *util.Claims) (*AuthStatus, error) {
	if claims == nil {
		return &AuthStatus{}, nil
	}
	identity, err := s.IdentityRepo.FindByID(claims.IdentityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &AuthStatus{}, nil
		}
		return nil, err
	}
	view := viewOf(identity)
	return &AuthStatus{
		Authenticated:   true,
		User:            &view,
		ProfileComplete: identity.UserID != nil,
	}, nil
}

func viewOf(identity *model.SocialIdentity) IdentityView {
	return IdentityView{
		ID:      identity.Key(),
		Email:   identity.Email,
		Name:    identity.Name,
		Picture: identity.Picture,
		UserID:  identity.UserID,
	}
}

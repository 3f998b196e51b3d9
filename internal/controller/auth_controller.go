package controller

import (
	"career_advisor_backend/internal/service"
	"career_advisor_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// GoogleSignInRequest Google ID token
// swagger:model GoogleSignInRequest
type GoogleSignInRequest struct {
	Token string `json:"token" binding:"required"`
}

// LinkedInExchangeRequest 授权码与回调地址
// swagger:model LinkedInExchangeRequest
type LinkedInExchangeRequest struct {
	Code        string `json:"code" binding:"required"`
	RedirectURI string `json:"redirect_uri" binding:"required"`
}

// GoogleSignIn godoc
// @Summary Google 登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body GoogleSignInRequest true "ID token"
// @Success 200 {object} util.Response{data=service.SignInResult}
// @Failure 401 {object} util.Response "令牌无效"
// @Router /auth/google [post]
func (c *AuthController) GoogleSignIn(ctx *gin.Context) {
	var req GoogleSignInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AuthService.SignInWithGoogle(ctx.Request.Context(), req.Token)
	if err != nil {
		c.handleSignInError(ctx, err, "Invalid Google token")
		return
	}
	util.Success(ctx, result)
}

// LinkedInExchange godoc
// @Summary LinkedIn 登录（授权码换取）
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body LinkedInExchangeRequest true "授权码"
// @Success 200 {object} util.Response{data=service.SignInResult}
// @Failure 401 {object} util.Response "授权码无效"
// @Router /auth/linkedin/exchange [post]
func (c *AuthController) LinkedInExchange(ctx *gin.Context) {
	var req LinkedInExchangeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AuthService.SignInWithLinkedIn(ctx.Request.Context(), req.Code, req.RedirectURI)
	if err != nil {
		c.handleSignInError(ctx, err, "Failed to exchange code")
		return
	}
	util.Success(ctx, result)
}

// Logout godoc
// @Summary 退出登录
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.AuthService.Logout(ctx.Request.Context(), util.GetClaimsFromContext(ctx)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Logged out successfully"})
}

// Check godoc
// @Summary 检查登录状态
// @Tags 认证
// @Produce json
// @Success 200 {object} util.Response{data=service.AuthStatus}
// @Router /auth/check [get]
func (c *AuthController) Check(ctx *gin.Context) {
	status, err := c.AuthService.Check(ctx.Request.Context(), util.GetClaimsFromContext(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, status)
}

func (c *AuthController) handleSignInError(ctx *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, util.ErrProviderDisabled):
		util.NotFound(ctx, "Sign-in provider not configured")
	case errors.Is(err, util.ErrInvalidToken):
		util.Error(ctx, 401, message)
	default:
		util.LogInternalError(ctx, err)
	}
}

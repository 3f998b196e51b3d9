package middleware

import (
	"career_advisor_backend/internal/service"
	"career_advisor_backend/internal/util"
	"career_advisor_backend/pkg/logger"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// AuthMiddleware 要求有效且未注销的会话令牌
func AuthMiddleware(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := auth.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			logger.Log.Debug("JWT rejected", zap.Error(err))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}

// TryAuthMiddleware 令牌有效时写入 claims，否则按未登录继续
func TryAuthMiddleware(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := bearerToken(c); tokenString != "" {
			if claims, err := auth.Authenticate(c.Request.Context(), tokenString); err == nil {
				c.Set("claims", claims)
			}
		}
		c.Next()
	}
}

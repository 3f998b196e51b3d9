package app

import (
	"career_advisor_backend/internal/middleware"
	"career_advisor_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 第三方登录
	if c.auth != nil {
		a.registerAuthRoutes(router, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		// 学生档案
		public.POST("/register", c.user.Register)
		public.GET("/profiles/:id", c.user.GetProfile)
		public.PUT("/profiles/:id/skills", c.user.UpdateSkills)

		// 职业目录
		public.GET("/careers", c.catalog.ListCareers)
		public.GET("/careers/:id", c.catalog.GetCareer)
		public.GET("/skills", c.catalog.ListSkills)

		// 测评与学习路径
		public.POST("/assess", c.assessment.Assess)
		public.POST("/learning-path", c.learningPath.Generate)
	}
}

func (a *App) registerAuthRoutes(router *gin.Engine, c *controllers) {
	auth := router.Group("/auth")
	{
		auth.POST("/google", c.auth.GoogleSignIn)
		auth.POST("/linkedin/exchange", c.auth.LinkedInExchange)
		auth.GET("/check", middleware.TryAuthMiddleware(c.auth.AuthService), c.auth.Check)
		auth.POST("/logout", middleware.AuthMiddleware(c.auth.AuthService), c.auth.Logout)
	}
}

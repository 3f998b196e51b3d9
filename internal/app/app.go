package app

import (
	"career_advisor_backend/internal/catalog"
	"career_advisor_backend/internal/config"
	"career_advisor_backend/internal/controller"
	"career_advisor_backend/internal/repository"
	"career_advisor_backend/internal/service"
	"career_advisor_backend/pkg/configwatcher"
	"career_advisor_backend/pkg/database"
	"career_advisor_backend/pkg/logger"
	"career_advisor_backend/pkg/messaging"
	"career_advisor_backend/pkg/monitoring"
	"career_advisor_backend/pkg/security"
	"career_advisor_backend/pkg/tracing"
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	publisher       *messaging.Publisher
	tracerProvider  *sdktrace.TracerProvider
	stopWatch       context.CancelFunc
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	catalog    *repository.CatalogRepository
	assessment *repository.AssessmentRepository
	identity   *repository.SocialIdentityRepository
}

type services struct {
	user         *service.UserService
	catalog      *service.CatalogService
	matcher      *service.CareerMatcher
	assessment   *service.AssessmentService
	learningPath *service.LearningPathService
	auth         *service.AuthService
}

type controllers struct {
	user         *controller.UserController
	catalog      *controller.CatalogController
	assessment   *controller.AssessmentController
	learningPath *controller.LearningPathController
	auth         *controller.AuthController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		catalog:    repository.NewCatalogRepository(db),
		assessment: repository.NewAssessmentRepository(db),
		identity:   repository.NewSocialIdentityRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	generator, err := service.NewTextGenerator(context.Background(), cfg.AI)
	if err != nil {
		logger.Log.Warn("AI provider unavailable, using skill overlap only", zap.Error(err))
		generator = nil
	}

	s.user = service.NewUserService(repos.user)
	s.catalog = service.NewCatalogService(repos.catalog)
	s.matcher = service.NewCareerMatcher(generator, cfg.Matching)

	// 避免把 nil 指针装进接口
	var publisher service.AuditPublisher
	if a.publisher != nil {
		publisher = a.publisher
	}
	s.assessment = service.NewAssessmentService(repos.assessment, repos.user, repos.catalog, s.matcher, publisher)
	s.learningPath = service.NewLearningPathService(repos.catalog, repos.user)

	if cfg.OAuth.Enabled {
		s.auth = a.initAuthService(repos, cfg, rdb)
	}

	a.RegisterConfigCallback(func(c *config.Config) {
		s.matcher.UpdateConfig(c.Matching)
	})

	return s
}

func (a *App) initAuthService(repos *repositories, cfg *config.Config, rdb *redis.Client) *service.AuthService {
	var google service.GoogleTokenVerifier
	if cfg.OAuth.GoogleClientID != "" {
		v, err := service.NewGoogleVerifier(nil, cfg.OAuth.GoogleClientID)
		if err != nil {
			logger.Log.Fatal("Failed to initialize google verifier", zap.Error(err))
		}
		google = v
	}

	var linkedIn service.LinkedInExchanger
	if cfg.OAuth.LinkedInClientID != "" {
		l, err := service.NewLinkedInClient(cfg.OAuth)
		if err != nil {
			logger.Log.Fatal("Failed to initialize linkedin client", zap.Error(err))
		}
		linkedIn = l
	}

	return service.NewAuthService(
		repos.identity,
		repos.user,
		service.NewRedisSessionStore(rdb),
		google,
		linkedIn,
		cfg,
	)
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	c := &controllers{
		user:         controller.NewUserController(s.user, s.assessment),
		catalog:      controller.NewCatalogController(s.catalog),
		assessment:   controller.NewAssessmentController(s.assessment),
		learningPath: controller.NewLearningPathController(s.learningPath),
		health:       controller.NewHealthController(db, a.Redis, s.matcher.AIEnabled()),
	}
	if s.auth != nil {
		c.auth = controller.NewAuthController(s.auth)
	}
	return c
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startConfigWatcher() {
	ctx, cancel := context.WithCancel(context.Background())
	a.stopWatch = cancel

	file := filepath.Join(a.Config.ConfigDir, "config.yaml")
	if err := configwatcher.WatchConfig(ctx, file, a.applyConfig); err != nil {
		logger.Log.Warn("Config hot reload disabled", zap.Error(err))
	}
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == "debug")
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	repos := app.initRepositories(db)

	if _, err := catalog.Seed(repos.catalog, cfg.Catalog.SeedPath, cfg.Catalog.Strict); err != nil {
		logger.Log.Fatal("Failed to seed catalog", zap.Error(err))
	}

	if cfg.MigrateOnly {
		return app
	}

	// 会话登记只在开启第三方登录时需要
	if cfg.OAuth.Enabled {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
		app.Redis = rdb
	}

	if cfg.Messaging.Enabled {
		pub, err := messaging.NewPublisher(cfg.Messaging)
		if err != nil {
			// 审计事件是附加能力，连接失败不阻止启动
			logger.Log.Error("Failed to initialize messaging, assessment events disabled", zap.Error(err))
		} else {
			app.publisher = pub
		}
	}

	services := app.initServices(repos, cfg, app.Redis)
	app.services = services
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers)
	app.startConfigWatcher()

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close()
	logger.Log.Info("Server exiting")
}

// Close 释放后台资源
func (a *App) Close() {
	if a.stopWatch != nil {
		a.stopWatch()
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			logger.Log.Error("Failed to close messaging connection", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}
}

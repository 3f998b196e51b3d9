package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Tracing   TracingConfig `mapstructure:"tracing"`
	Redis     RedisConfig
	AI        AIConfig
	OAuth     OAuthConfig     `mapstructure:"oauth"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Matching  MatchingConfig  `mapstructure:"matching"`
	Messaging MessagingConfig `mapstructure:"messaging"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	MigrateOnly bool   `mapstructure:"-"`
	ConfigDir   string `mapstructure:"-"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

// AIConfig selects the text-generation provider. An empty provider disables
// the AI path and every career is scored by the overlap heuristic.
type AIConfig struct {
	Provider string `mapstructure:"provider"` // "", "gemini", "openai"
	BaseURL  string `mapstructure:"base_url"`
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Driver    string // mysql, postgres, sqlite
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
	Path      string // sqlite file
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type OAuthConfig struct {
	Enabled              bool   `mapstructure:"enabled"`
	GoogleClientID       string `mapstructure:"google_client_id"`
	LinkedInClientID     string `mapstructure:"linkedin_client_id"`
	LinkedInClientSecret string `mapstructure:"linkedin_client_secret"`
}

type CatalogConfig struct {
	SeedPath string `mapstructure:"seed_path"` // empty = embedded default catalog
	Strict   bool   `mapstructure:"strict"`
}

type MatchingConfig struct {
	AIBonus     float64       `mapstructure:"ai_bonus"`
	TopN        int           `mapstructure:"top_n"`
	PersistTop  int           `mapstructure:"persist_top"`
	Concurrency int           `mapstructure:"concurrency"`
	AITimeout   time.Duration `mapstructure:"ai_timeout"`
}

type MessagingConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

// DefaultMatching mirrors the behaviour of the first release: +20 on the AI
// path, top five returned, top three recorded.
func DefaultMatching() MatchingConfig {
	return MatchingConfig{
		AIBonus:     20,
		TopN:        5,
		PersistTop:  3,
		Concurrency: 4,
		AITimeout:   15 * time.Second,
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultMatching()
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "database/career_advisor.db")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parsetime", true)
	v.SetDefault("jwt.expire_hours", 24*7)
	v.SetDefault("matching.ai_bonus", d.AIBonus)
	v.SetDefault("matching.top_n", d.TopN)
	v.SetDefault("matching.persist_top", d.PersistTop)
	v.SetDefault("matching.concurrency", d.Concurrency)
	v.SetDefault("matching.ai_timeout", d.AITimeout)
	v.SetDefault("ai.model", "gemini-pro")
	v.SetDefault("messaging.exchange", "career_advisor.audit")
	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.window_minutes", 1)
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("CAREER_ADVISOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Database
	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")
	v.BindEnv("database.path", "DATABASE_PATH")

	// JWT
	v.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	v.BindEnv("server.mode", "SERVER_MODE")
	v.BindEnv("server.port", "PORT")

	// AI
	v.BindEnv("ai.provider", "AI_PROVIDER")
	v.BindEnv("ai.base_url", "AI_BASE_URL")
	v.BindEnv("ai.api_key", "GEMINI_API_KEY", "AI_API_KEY")
	v.BindEnv("ai.model", "AI_MODEL")

	// OAuth
	v.BindEnv("oauth.enabled", "OAUTH_ENABLED")
	v.BindEnv("oauth.google_client_id", "GOOGLE_CLIENT_ID")
	v.BindEnv("oauth.linkedin_client_id", "LINKEDIN_CLIENT_ID")
	v.BindEnv("oauth.linkedin_client_secret", "LINKEDIN_CLIENT_SECRET")

	// Messaging
	v.BindEnv("messaging.enabled", "MESSAGING_ENABLED")
	v.BindEnv("messaging.url", "RABBITMQ_URL")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.ConfigDir = path
	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour
	cfg.Matching = normalizeMatching(cfg.Matching)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func normalizeMatching(m MatchingConfig) MatchingConfig {
	d := DefaultMatching()
	if m.AIBonus < 0 {
		m.AIBonus = 0
	}
	if m.TopN <= 0 {
		m.TopN = d.TopN
	}
	if m.PersistTop < 0 {
		m.PersistTop = 0
	}
	if m.Concurrency <= 0 {
		m.Concurrency = 1
	}
	if m.AITimeout <= 0 {
		m.AITimeout = d.AITimeout
	}
	return m
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	switch c.AI.Provider {
	case "", "gemini", "openai":
	default:
		return fmt.Errorf("unsupported ai provider %q", c.AI.Provider)
	}

	if c.OAuth.Enabled {
		// 生产环境校验 JWT Secret 强度
		if c.Server.Mode == "release" && len(c.JWT.Secret) < 32 {
			return fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(c.JWT.Secret))
		}
		if c.JWT.Secret == "" {
			return fmt.Errorf("jwt.secret is required when oauth is enabled")
		}
	}

	if c.Messaging.Enabled && c.Messaging.URL == "" {
		return fmt.Errorf("messaging.url is required when messaging is enabled")
	}

	return nil
}

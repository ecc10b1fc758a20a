package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix scopes every environment variable consumed by the gateway.
const EnvPrefix = "FLOWO"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv  = "FLOWO_APP_ENV"
	EnvAppPort = "FLOWO_APP_PORT"
)

type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	Redis    RedisConfig
	Cart     CartConfig
	CORS     CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Upstream.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FLOWO_APP_ENV" required:"true"`
	Port         string `envconfig:"FLOWO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FLOWO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FLOWO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UpstreamConfig points at the remote Flowo REST API that owns products,
// orders, users and pricing rules.
type UpstreamConfig struct {
	BaseURL string        `envconfig:"FLOWO_API_BASE_URL" default:"http://localhost:8081/api/v1"`
	Timeout time.Duration `envconfig:"FLOWO_API_TIMEOUT" default:"15s"`
}

func (u UpstreamConfig) validate() error {
	parsed, err := url.Parse(u.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid upstream base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("upstream base url must be http(s), got %q", u.BaseURL)
	}
	return nil
}

// RedisConfig is optional; when URL is empty the gateway keeps session carts
// in process memory only.
type RedisConfig struct {
	URL          string        `envconfig:"FLOWO_REDIS_URL"`
	PoolSize     int           `envconfig:"FLOWO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FLOWO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FLOWO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FLOWO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FLOWO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type CartConfig struct {
	SessionTTL time.Duration `envconfig:"FLOWO_CART_SESSION_TTL" default:"72h"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"FLOWO_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

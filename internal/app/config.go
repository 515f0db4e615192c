package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete application configuration, loadable from
// environment variables (WEARWOW_ prefix), flags, or YAML config files.
type Config struct {
	Addr      string `default:"0.0.0.0:8080" usage:"API server listen address"`
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Session   SessionConfig
	Auth      AuthConfig
	Banner    BannerConfig
	Graceful  GracefulConfig
}

// RateLimitConfig controls the per-client rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"300" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"true" usage:"Allow credentials (cookies)" flag:"cors-credentials"`
}

// SessionConfig controls in-memory shopper sessions.
type SessionConfig struct {
	TTL time.Duration `default:"30m"   usage:"Idle time before a session is evicted"`
	Max int           `default:"10000" usage:"Maximum live sessions" flag:"session-max"`
}

// AuthConfig controls the demo login flow.
type AuthConfig struct {
	LoginDelay time.Duration `default:"1500ms" usage:"Simulated auth backend latency" flag:"login-delay"`
}

// BannerConfig controls the home screen banner carousel.
type BannerConfig struct {
	RotateInterval time.Duration `default:"4s" usage:"Banner rotation interval" flag:"banner-interval"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and platform defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "WEARWOW",
		Files:     []string{"config.yaml", "/etc/wearwow/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()
	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables
// (Railway, Render, etc.) onto the WEARWOW_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}

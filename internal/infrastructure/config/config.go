package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend  BackendConfig
	Identity IdentityConfig
	Media    MediaConfig
	Redis    RedisConfig
	Session  SessionConfig
	Poll     PollConfig
}

type BackendConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=http://localhost:8000/api/v1"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=30s"`
}

// IdentityConfig points the console at its OAuth identity provider.
type IdentityConfig struct {
	Domain       string `env:"AUTH_DOMAIN"`
	ClientID     string `env:"AUTH_CLIENT_ID"`
	ClientSecret string `env:"AUTH_CLIENT_SECRET"`
	Audience     string `env:"AUTH_AUDIENCE"`
	CallbackURL  string `env:"AUTH_CALLBACK_URL, default=http://localhost:8080/callback"`
	RolesClaim   string `env:"AUTH_ROLES_CLAIM,  default=https://spendflow.com/roles"`
}

// MediaConfig targets the unsigned-upload endpoint receipts go to.
type MediaConfig struct {
	UploadURL string `env:"MEDIA_UPLOAD_URL"`
	Preset    string `env:"MEDIA_UPLOAD_PRESET, default=spendflow_receipts"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type SessionConfig struct {
	TTL          time.Duration `env:"SESSION_TTL,           default=24h"`
	CookieName   string        `env:"SESSION_COOKIE,        default=spendflow_session"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE, default=false"`
}

// PollConfig sets the refresh timers for the notification surfaces.
type PollConfig struct {
	Notifications time.Duration `env:"POLL_NOTIFICATIONS, default=30s"`
	UnreadBadge   time.Duration `env:"POLL_UNREAD_BADGE,  default=60s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

package app

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"60s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"60s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	PGDSN      string `envconfig:"PG_DSN" default:""`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"4"`

	RedisAddr string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`

	GotenbergURL string `envconfig:"GOTENBERG_URL" default:"http://127.0.0.1:3000"`

	UpstreamBaseURL string `envconfig:"UPSTREAM_BASE_URL" required:"true"`
	UpstreamToken   string `envconfig:"UPSTREAM_TOKEN" default:""`

	ReportsDir      string        `envconfig:"REPORTS_DIR" default:"./data/reports"`
	ShareDir        string        `envconfig:"SHARE_DIR" default:""`
	OpenCooldown    time.Duration `envconfig:"OPEN_COOLDOWN" default:"3s"`
	ReportRetention time.Duration `envconfig:"REPORT_RETENTION" default:"720h"`
	CleanupCron     string        `envconfig:"CLEANUP_CRON" default:"30 2 * * *"`

	AnalyticsCacheTTL time.Duration `envconfig:"ANALYTICS_CACHE_TTL" default:"10m"`

	// APIKeyHash is the bcrypt hash of the bearer key protecting the report
	// endpoints. Empty disables authentication (development only).
	APIKeyHash string `envconfig:"API_KEY_HASH" default:""`

	SMTPHost string `envconfig:"SMTP_HOST" default:""`
	SMTPPort int    `envconfig:"SMTP_PORT" default:"1025"`
	SMTPFrom string `envconfig:"SMTP_FROM" default:"no-reply@atlas.local"`
	SMTPTo   string `envconfig:"SMTP_TO" default:""`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.UpstreamBaseURL == "" {
		return nil, errors.New("upstream base URL must be provided")
	}
	if cfg.IsProduction() && cfg.APIKeyHash == "" {
		return nil, errors.New("api key hash must be provided in production")
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

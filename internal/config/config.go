package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	Version     string `env:"VERSION" envDefault:"dev"`
	Port        int    `env:"PORT" envDefault:"8080"`

	TrustedProxies  []string `env:"TRUSTED_PROXIES" envSeparator:","`
	RateLimitPer5m  int      `env:"RATE_LIMIT_PER_5M" envDefault:"1000"`
	MaxRequestBytes int64    `env:"MAX_REQUEST_BYTES" envDefault:"1048576"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogDir    string `env:"LOG_DIR" envDefault:"logs"`

	APIKey    string        `env:"API_KEY,required,notEmpty"`
	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"12h"`

	DBURL             string        `env:"DB_URL"`
	DBUser            string        `env:"DB_USER" envDefault:"postgres"`
	DBPassword        string        `env:"DB_PASSWORD" envDefault:"postgres"`
	DBHost            string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort            string        `env:"DB_PORT" envDefault:"5432"`
	DBName            string        `env:"DB_NAME" envDefault:"pokemonkey"`
	DBMaxConns        int           `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"5m"`
	DBMaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBAutoMigrate     bool          `env:"DB_AUTO_MIGRATE" envDefault:"true"`

	LocalStorePath string `env:"LOCAL_STORE_PATH" envDefault:"data/local.db"`
	CatalogDir     string `env:"CATALOG_DIR" envDefault:"configs"`

	CloudURL          string        `env:"CLOUD_URL"`
	CloudTimeout      time.Duration `env:"CLOUD_TIMEOUT" envDefault:"15s"`
	CloudPollInterval time.Duration `env:"CLOUD_POLL_INTERVAL" envDefault:"60s"`

	GameTimezone         string        `env:"GAME_TIMEZONE" envDefault:"Asia/Jakarta"`
	EnforcePrerequisites bool          `env:"ENFORCE_MISSION_PREREQUISITES" envDefault:"true"`
	StaminaTickInterval  time.Duration `env:"STAMINA_TICK_INTERVAL" envDefault:"60s"`

	WorkerCount      int           `env:"WORKER_COUNT" envDefault:"4"`
	WorkerQueueSize  int           `env:"WORKER_QUEUE_SIZE" envDefault:"100"`
	WorkerJobTimeout time.Duration `env:"WORKER_JOB_TIMEOUT" envDefault:"5m"`

	TeamCacheSize int           `env:"TEAM_CACHE_SIZE" envDefault:"128"`
	TeamCacheTTL  time.Duration `env:"TEAM_CACHE_TTL" envDefault:"30s"`

	EventMaxRetries     int           `env:"EVENT_MAX_RETRIES" envDefault:"5"`
	EventRetryDelay     time.Duration `env:"EVENT_RETRY_DELAY" envDefault:"2s"`
	EventDeadLetterPath string        `env:"EVENT_DEADLETTER_PATH" envDefault:"logs/event_deadletter.jsonl"`
	EventLogRetention   int           `env:"EVENT_LOG_RETENTION_DAYS" envDefault:"90"`

	DiscordWebhookID    string `env:"DISCORD_WEBHOOK_ID"`
	DiscordWebhookToken string `env:"DISCORD_WEBHOOK_TOKEN"`

	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	location *time.Location
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		var aggErr env.AggregateError
		if errors.As(err, &aggErr) {
			return nil, fmt.Errorf("invalid configuration: %w", aggErr)
		}
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT value: %d", c.Port)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid LOG_FORMAT value: %q", c.LogFormat)
	}
	if c.WorkerCount <= 0 || c.WorkerQueueSize <= 0 {
		return fmt.Errorf("WORKER_COUNT and WORKER_QUEUE_SIZE must be positive")
	}
	if c.StaminaTickInterval <= 0 || c.CloudPollInterval <= 0 {
		return fmt.Errorf("STAMINA_TICK_INTERVAL and CLOUD_POLL_INTERVAL must be positive")
	}
	if c.TeamCacheSize <= 0 {
		return fmt.Errorf("TEAM_CACHE_SIZE must be positive")
	}
	if c.RateLimitPer5m <= 0 || c.MaxRequestBytes <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_5M and MAX_REQUEST_BYTES must be positive")
	}

	loc, err := time.LoadLocation(c.GameTimezone)
	if err != nil {
		return fmt.Errorf("invalid GAME_TIMEZONE value: %w", err)
	}
	c.location = loc
	return nil
}

// Location is the time zone the stamina clock runs in.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// CloudEnabled reports whether a remote endpoint is configured.
func (c *Config) CloudEnabled() bool {
	return strings.TrimSpace(c.CloudURL) != ""
}

// DiscordEnabled reports whether webhook notifications are configured.
func (c *Config) DiscordEnabled() bool {
	return c.DiscordWebhookID != "" && c.DiscordWebhookToken != ""
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	if c.DBURL != "" {
		return c.DBURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

package config

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	LLM      LLMConfig
	Watcher  WatcherConfig
	Storage  StorageConfig
	Metrics  MetricsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host          string `envconfig:"DB_HOST" default:"localhost"`
	Port          string `envconfig:"DB_PORT" default:"5432"`
	User          string `envconfig:"DB_USER" default:"postgres"`
	Password      string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name          string `envconfig:"DB_NAME" default:"meeting_notes"`
	SSLMode       string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns      int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns      int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate   bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
	MigrationsDir string `envconfig:"DB_MIGRATIONS_DIR"` // empty uses the embedded set
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// LLMConfig holds settings for the OpenAI-compatible completion endpoint
type LLMConfig struct {
	APIKey            string        `envconfig:"LLM_API_KEY"`
	BaseURL           string        `envconfig:"LLM_BASE_URL" default:"https://api.openai.com"`
	Model             string        `envconfig:"LLM_MODEL" default:"gpt-4o-mini"`
	ChatModel         string        `envconfig:"LLM_CHAT_MODEL"`
	Temperature       float64       `envconfig:"LLM_TEMPERATURE" default:"0.3"`
	MaxTokens         int           `envconfig:"LLM_MAX_TOKENS" default:"2000"`
	Timeout           time.Duration `envconfig:"LLM_TIMEOUT" default:"60s"`
	RequestsPerSecond float64       `envconfig:"LLM_REQUESTS_PER_SECOND" default:"5"`
	MaxRetryElapsed   time.Duration `envconfig:"LLM_MAX_RETRY_ELAPSED" default:"45s"`
}

// WatcherConfig holds settings for the transcript change watcher
type WatcherConfig struct {
	Enabled              bool          `envconfig:"WATCHER_ENABLED" default:"true"`
	Channel              string        `envconfig:"WATCHER_CHANNEL" default:"transcript_changes"`
	MaxConcurrent        int           `envconfig:"WATCHER_MAX_CONCURRENT" default:"4"`
	JobTimeout           time.Duration `envconfig:"WATCHER_JOB_TIMEOUT" default:"5m"`
	LockBackend          string        `envconfig:"WATCHER_LOCK_BACKEND" default:"memory"` // "memory" or "redis"
	LockTTL              time.Duration `envconfig:"WATCHER_LOCK_TTL" default:"10m"`
	ResummarizeProcessed bool          `envconfig:"WATCHER_RESUMMARIZE_PROCESSED" default:"false"`
	ReconnectMaxInterval time.Duration `envconfig:"WATCHER_RECONNECT_MAX_INTERVAL" default:"30s"`
}

// StorageConfig holds object storage configuration for archived model responses
type StorageConfig struct {
	Enabled         bool   `envconfig:"STORAGE_ENABLED" default:"false"`
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"meeting-notes"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
}

// MetricsConfig holds Prometheus exposition settings
type MetricsConfig struct {
	Enabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
	Path    string `envconfig:"METRICS_PATH" default:"/metrics"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg, err := LoadWithoutValidation()
	if err != nil {
		return nil, err
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadWithoutValidation reads .env and the environment but skips Validate.
// Used by commands that never reach the model, such as migrations.
func LoadWithoutValidation() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}
	return FromEnv()
}

// FromEnv populates a Config from the current process environment without validation
func FromEnv() (*Config, error) {
	var cfg Config
	sections := []struct {
		name string
		dst  interface{}
	}{
		{"server", &cfg.Server},
		{"database", &cfg.Database},
		{"redis", &cfg.Redis},
		{"llm", &cfg.LLM},
		{"watcher", &cfg.Watcher},
		{"storage", &cfg.Storage},
		{"metrics", &cfg.Metrics},
	}
	for _, s := range sections {
		if err := envconfig.Process("", s.dst); err != nil {
			return nil, fmt.Errorf("failed to load %s config: %w", s.name, err)
		}
	}
	if cfg.LLM.ChatModel == "" {
		cfg.LLM.ChatModel = cfg.LLM.Model
	}
	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" && !c.LLM.IsLocal() {
		return fmt.Errorf("LLM_API_KEY is required")
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("LLM_MODEL is required")
	}
	if c.Watcher.MaxConcurrent < 1 {
		return fmt.Errorf("WATCHER_MAX_CONCURRENT must be at least 1")
	}
	if c.Watcher.LockTTL < c.Watcher.JobTimeout {
		return fmt.Errorf("WATCHER_LOCK_TTL (%s) must be at least WATCHER_JOB_TIMEOUT (%s)", c.Watcher.LockTTL, c.Watcher.JobTimeout)
	}
	switch c.Watcher.LockBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("WATCHER_LOCK_BACKEND must be memory or redis, got %q", c.Watcher.LockBackend)
	}
	return nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// IsLocal reports whether the completion endpoint is served from the local machine
func (l LLMConfig) IsLocal() bool {
	u, err := url.Parse(l.BaseURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

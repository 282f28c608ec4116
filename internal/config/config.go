package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	RunMigrations  bool   `toml:"run_migrations"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// auth
	SessionTTL                  Duration `toml:"session_ttl"`
	AuthRateLimitAllowedPerMin  int      `toml:"auth_rate_limit_allowed_per_min"`
	AllowedOrigins              []string `toml:"allowed_origins"`
	SessionCleanupIntervalHours int      `toml:"session_cleanup_interval_hours"`

	// local day resolution
	DefaultTimezone string `toml:"default_timezone"`
	IpInfoEnabled   bool   `toml:"ipinfo_enabled"`

	// activity events
	KafkaEnabled     bool     `toml:"kafka_enabled"`
	KafkaBrokers     []string `toml:"kafka_brokers"`
	KafkaTopicPrefix string   `toml:"kafka_topic_prefix"`

	// exercise media
	MediaS3Enabled   bool     `toml:"media_s3_enabled"`
	MediaS3Endpoint  string   `toml:"media_s3_endpoint"`
	MediaS3Region    string   `toml:"media_s3_region"`
	MediaS3Bucket    string   `toml:"media_s3_bucket"`
	MediaURLValidity Duration `toml:"media_url_validity"`

	// mcp
	McpEnabled bool `toml:"mcp_enabled"`
}

// Duration decodes TOML strings such as "168h" or "15m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration [%s]: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] missing", env)
	}
	return cfg, nil
}

// Load decodes the TOML file at path and returns the config for env,
// with defaults applied to the optional fields.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config [%s]: %w", env, err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 3000
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.SessionTTL.Duration == 0 {
		c.SessionTTL.Duration = 7 * 24 * time.Hour
	}
	if c.SessionCleanupIntervalHours == 0 {
		c.SessionCleanupIntervalHours = 8
	}
	if c.AuthRateLimitAllowedPerMin == 0 {
		c.AuthRateLimitAllowedPerMin = 15
	}
	if c.DefaultTimezone == "" {
		c.DefaultTimezone = "UTC"
	}
	if c.KafkaTopicPrefix == "" {
		c.KafkaTopicPrefix = "gymapp"
	}
	if c.MediaURLValidity.Duration == 0 {
		c.MediaURLValidity.Duration = 15 * time.Minute
	}
}

func (c *Config) Validate() error {
	if c.PostgresHost == "" || c.PostgresPort == "" || c.PostgresDBName == "" {
		return fmt.Errorf("postgres host, port and db name are required")
	}
	if c.RedisHost == "" || c.RedisPort == "" {
		return fmt.Errorf("redis host and port are required")
	}
	if _, err := time.LoadLocation(c.DefaultTimezone); err != nil {
		return fmt.Errorf("default timezone: %w", err)
	}
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("kafka enabled but no brokers set")
	}
	if c.MediaS3Enabled && c.MediaS3Bucket == "" {
		return fmt.Errorf("media s3 enabled but no bucket set")
	}
	return nil
}

package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application settings.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Email    EmailConfig
	Media    MediaConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis connection settings. Modes: single, sentinel, cluster.
type RedisConfig struct {
	Mode       string   `mapstructure:"mode"`
	Addrs      []string `mapstructure:"addrs"`
	Addr       string   `mapstructure:"addr"`
	Password   string   `mapstructure:"password"`
	DB         int      `mapstructure:"db"`
	MasterName string   `mapstructure:"master_name"`
}

// JWTConfig holds token settings.
type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	ExpirationHrs int    `mapstructure:"expirationHrs"`
}

// EmailConfig holds delivery channel settings. Any channel with missing
// credentials is treated as unconfigured and skipped by the pipeline.
type EmailConfig struct {
	From string `mapstructure:"from"`

	ResendAPIKey        string `mapstructure:"resend_api_key"`
	ResendTestRecipient string `mapstructure:"resend_test_recipient"`
	ResendTestFrom      string `mapstructure:"resend_test_from"`

	BrevoAPIKey string `mapstructure:"brevo_api_key"`

	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`

	// HTTPTimeoutSec bounds each HTTPS delivery attempt. Default 10s.
	HTTPTimeoutSec int `mapstructure:"http_timeout_sec"`

	// CodeTTLMin is the verification code validity window. Default 10 minutes.
	CodeTTLMin int `mapstructure:"code_ttl_min"`
}

// MediaConfig holds local file storage settings.
type MediaConfig struct {
	Root string `mapstructure:"root"`
}

// PostgresConnectionString builds the PostgreSQL DSN.
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// HTTPTimeout returns the per-attempt delivery timeout.
func (e *EmailConfig) HTTPTimeout() time.Duration {
	if e.HTTPTimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(e.HTTPTimeoutSec) * time.Second
}

// CodeTTL returns the verification code validity window.
func (e *EmailConfig) CodeTTL() time.Duration {
	if e.CodeTTLMin <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(e.CodeTTLMin) * time.Minute
}

// Load reads configuration from an optional file plus bound env vars.
func Load(configPath string) (*Config, error) {
	vip := viper.New()

	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("jwt.secret", "JWT_SECRET")
	vip.BindEnv("jwt.expirationHrs", "JWT_EXPIRATIONHRS")

	vip.BindEnv("email.from", "EMAIL_FROM")
	vip.BindEnv("email.resend_api_key", "RESEND_API_KEY")
	vip.BindEnv("email.resend_test_recipient", "RESEND_TEST_RECIPIENT")
	vip.BindEnv("email.resend_test_from", "RESEND_TEST_FROM")
	vip.BindEnv("email.brevo_api_key", "BREVO_API_KEY")
	vip.BindEnv("email.smtp_host", "SMTP_HOST")
	vip.BindEnv("email.smtp_port", "SMTP_PORT")
	vip.BindEnv("email.smtp_user", "SMTP_USER")
	vip.BindEnv("email.smtp_password", "SMTP_PASSWORD")
	vip.BindEnv("email.http_timeout_sec", "EMAIL_HTTP_TIMEOUT_SEC")
	vip.BindEnv("email.code_ttl_min", "EMAIL_CODE_TTL_MIN")

	vip.BindEnv("media.root", "MEDIA_ROOT")

	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("server.readtimeout", "SERVER_READTIMEOUT")
	vip.BindEnv("server.writetimeout", "SERVER_WRITETIMEOUT")

	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Config file '%s' not found, relying on env vars and defaults.", configPath)
			} else {
				log.Printf("Warning: could not read config file '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Media.Root == "" {
		cfg.Media.Root = "media"
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT secret is required in config (check JWT_SECRET env var)")
	}
	if cfg.Database.Host == "" || cfg.Database.DBName == "" || cfg.Database.User == "" {
		return nil, fmt.Errorf("database configuration (host, dbname, user) is incomplete (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	if cfg.Email.From == "" {
		cfg.Email.From = "onboarding@resend.dev"
	}

	return &cfg, nil
}

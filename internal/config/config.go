package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	JWT      JWTConfig
	S3       S3Config
	Log      LogConfig
	Webhook  WebhookConfig
	Matching MatchingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	// AllowedOrigins is the comma-separated CORS allowlist.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpen         int           `mapstructure:"max_open"`
	MaxIdle         int           `mapstructure:"max_idle"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// WebhookConfig holds inbound webhook verification settings. The replay
// window and secret are explicit configuration, never ambient flags.
type WebhookConfig struct {
	Secret       string        `mapstructure:"secret"`
	ReplayWindow time.Duration `mapstructure:"replay_window"`
}

// MatchingConfig holds match engine settings.
type MatchingConfig struct {
	// BatchLimit bounds how many résumés a single batch-match request will
	// process. Zero means unbounded.
	BatchLimit int `mapstructure:"batch_limit"`
}

// splitCSV splits a comma-separated value, trimming whitespace and dropping
// empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Load reads configuration from environment variables with the DOCUFLOW_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCUFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "docuflow")
	v.SetDefault("db.password", "docuflow_secret")
	v.SetDefault("db.name", "docuflow_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)
	v.SetDefault("db.conn_max_lifetime", "30m")

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "24h")
	v.SetDefault("jwt.issuer", "docuflow")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "docuflow-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Webhook defaults
	v.SetDefault("webhook.secret", "")
	v.SetDefault("webhook.replay_window", "5m")

	// Matching defaults
	v.SetDefault("matching.batch_limit", 500)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "DOCUFLOW_SERVER_PORT",
		"server.read_timeout":    "DOCUFLOW_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "DOCUFLOW_SERVER_WRITE_TIMEOUT",
		"server.environment":     "DOCUFLOW_SERVER_ENVIRONMENT",
		"server.allowed_origins": "DOCUFLOW_SERVER_ALLOWED_ORIGINS",
		"db.host":                "DOCUFLOW_DB_HOST",
		"db.port":                "DOCUFLOW_DB_PORT",
		"db.user":                "DOCUFLOW_DB_USER",
		"db.password":            "DOCUFLOW_DB_PASSWORD",
		"db.name":                "DOCUFLOW_DB_NAME",
		"db.sslmode":             "DOCUFLOW_DB_SSLMODE",
		"db.max_open":            "DOCUFLOW_DB_MAX_OPEN",
		"db.max_idle":            "DOCUFLOW_DB_MAX_IDLE",
		"db.conn_max_lifetime":   "DOCUFLOW_DB_CONN_MAX_LIFETIME",
		"jwt.secret":             "DOCUFLOW_JWT_SECRET",
		"jwt.access_expiry":      "DOCUFLOW_JWT_ACCESS_EXPIRY",
		"jwt.issuer":             "DOCUFLOW_JWT_ISSUER",
		"s3.region":              "DOCUFLOW_S3_REGION",
		"s3.bucket":              "DOCUFLOW_S3_BUCKET",
		"s3.endpoint":            "DOCUFLOW_S3_ENDPOINT",
		"s3.access_key":          "DOCUFLOW_S3_ACCESS_KEY",
		"s3.secret_key":          "DOCUFLOW_S3_SECRET_KEY",
		"s3.max_file_size_mb":    "DOCUFLOW_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":      "DOCUFLOW_S3_PRESIGN_EXPIRY",
		"log.level":              "DOCUFLOW_LOG_LEVEL",
		"log.format":             "DOCUFLOW_LOG_FORMAT",
		"webhook.secret":         "DOCUFLOW_WEBHOOK_SECRET",
		"webhook.replay_window":  "DOCUFLOW_WEBHOOK_REPLAY_WINDOW",
		"matching.batch_limit":   "DOCUFLOW_MATCHING_BATCH_LIMIT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DOCUFLOW_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCUFLOW_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:           serverPort,
		ReadTimeout:    v.GetDuration("server.read_timeout"),
		WriteTimeout:   v.GetDuration("server.write_timeout"),
		Environment:    v.GetString("server.environment"),
		AllowedOrigins: splitCSV(v.GetString("server.allowed_origins")),
	}
	cfg.DB = DBConfig{
		Host:            v.GetString("db.host"),
		Port:            v.GetInt("db.port"),
		User:            v.GetString("db.user"),
		Password:        v.GetString("db.password"),
		Name:            v.GetString("db.name"),
		SSLMode:         v.GetString("db.sslmode"),
		MaxOpen:         v.GetInt("db.max_open"),
		MaxIdle:         v.GetInt("db.max_idle"),
		ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
	}
	cfg.JWT = JWTConfig{
		Secret:            v.GetString("jwt.secret"),
		AccessTokenExpiry: v.GetDuration("jwt.access_expiry"),
		Issuer:            v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Webhook = WebhookConfig{
		Secret:       v.GetString("webhook.secret"),
		ReplayWindow: v.GetDuration("webhook.replay_window"),
	}
	cfg.Matching = MatchingConfig{
		BatchLimit: v.GetInt("matching.batch_limit"),
	}

	if cfg.Webhook.Secret == "" {
		return nil, fmt.Errorf("DOCUFLOW_WEBHOOK_SECRET must be set")
	}

	return cfg, nil
}
